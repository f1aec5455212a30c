package storage

import (
	"github.com/starkstore/node/internal/codec"
	nodeerrors "github.com/starkstore/node/pkg/errors"
)

// AppendHeader requires header_marker == number, then inserts h at
// number in Headers, strict-inserts (h.BlockHash -> number) into
// BlockHashIndex, and advances header_marker to number+1 — all within
// ws's single underlying transaction. On any failure ws is poisoned.
func AppendHeader(ws *WriteScope, number uint64, h *BlockHeader) error {
	tx, err := ws.tx()
	if err != nil {
		return err
	}
	if err := requireMarker(tx, MarkerHeader, number); err != nil {
		return ws.fail(err)
	}

	numKey := codec.EncodeBlockNumber(number)
	if err := tx.Put(TableHeaders, numKey, h.Marshal()); err != nil {
		return ws.fail(&nodeerrors.SubstrateError{Op: "put_header", Err: err})
	}

	existed, err := strictPut(tx, TableBlockHashIndex, h.BlockHash.Bytes(), numKey)
	if err != nil {
		return ws.fail(&nodeerrors.SubstrateError{Op: "put_block_hash_index", Err: err})
	}
	if existed {
		return ws.fail(&nodeerrors.BlockHashAlreadyExists{BlockHash: h.BlockHash, BlockNumber: number})
	}

	if err := advanceMarker(tx, MarkerHeader, number+1); err != nil {
		return ws.fail(err)
	}
	return nil
}

// GetBlockHeader returns the header at number, or nil if it hasn't been
// appended yet.
func (s *ReadScope) GetBlockHeader(number uint64) (*BlockHeader, error) {
	tx, err := s.tx()
	if err != nil {
		return nil, err
	}
	v, err := tx.GetOne(TableHeaders, codec.EncodeBlockNumber(number))
	if err != nil {
		return nil, &nodeerrors.SubstrateError{Op: "get_header", Err: err}
	}
	if v == nil {
		return nil, nil
	}
	h, err := UnmarshalBlockHeader(v)
	if err != nil {
		return nil, &nodeerrors.CodecError{Table: TableHeaders, Err: err}
	}
	return h, nil
}

// GetBlockNumberByHash resolves a block hash to its number, ok=false if
// the hash is not indexed.
func (s *ReadScope) GetBlockNumberByHash(hash Felt) (number uint64, ok bool, err error) {
	tx, err := s.tx()
	if err != nil {
		return 0, false, err
	}
	v, err := tx.GetOne(TableBlockHashIndex, hash.Bytes())
	if err != nil {
		return 0, false, &nodeerrors.SubstrateError{Op: "get_block_hash_index", Err: err}
	}
	if v == nil {
		return 0, false, nil
	}
	n, err := codec.DecodeBlockNumber(v)
	if err != nil {
		return 0, false, &nodeerrors.CodecError{Table: TableBlockHashIndex, Err: err}
	}
	return n, true, nil
}

// GetHeaderMarker returns the next expected header block number.
func (s *ReadScope) GetHeaderMarker() (uint64, error) {
	return s.GetMarker(MarkerHeader)
}
