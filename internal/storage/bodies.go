package storage

import (
	"github.com/starkstore/node/internal/codec"
	nodeerrors "github.com/starkstore/node/pkg/errors"
)

// txLookupValue encodes (block_number, index) as 8+8 big-endian bytes.
func txLookupValue(number uint64, index uint64) []byte {
	v := make([]byte, 16)
	copy(v[0:8], codec.EncodeBlockNumber(number))
	copy(v[8:16], codec.EncodeBlockNumber(index))
	return v
}

func decodeTxLookupValue(v []byte) (number uint64, index uint64, err error) {
	if len(v) != 16 {
		return 0, 0, nodeerrors.Errorf("codec: tx lookup value must be 16 bytes, got %d", len(v))
	}
	number, err = codec.DecodeBlockNumber(v[0:8])
	if err != nil {
		return 0, 0, err
	}
	index, err = codec.DecodeBlockNumber(v[8:16])
	return number, index, err
}

// AppendBody requires body_marker == number and number < header_marker,
// strict-inserts a TxHashIndex entry for every transaction, stores the
// body, and advances body_marker.
func AppendBody(ws *WriteScope, number uint64, body *Body) error {
	tx, err := ws.tx()
	if err != nil {
		return err
	}
	if err := requireMarker(tx, MarkerBody, number); err != nil {
		return ws.fail(err)
	}
	headerMarker, err := getMarker(tx, MarkerHeader)
	if err != nil {
		return ws.fail(err)
	}
	if number >= headerMarker {
		return ws.fail(&nodeerrors.MarkerMismatch{Expected: headerMarker, Found: number + 1})
	}

	for i, t := range body.Transactions {
		lookup := txLookupValue(number, uint64(i))
		existed, err := strictPut(tx, TableTxHashIndex, t.Hash.Bytes(), lookup)
		if err != nil {
			return ws.fail(&nodeerrors.SubstrateError{Op: "put_tx_hash_index", Err: err})
		}
		if existed {
			return ws.fail(&nodeerrors.TransactionHashAlreadyExists{TxHash: t.Hash})
		}
	}

	if err := tx.Put(TableBodies, codec.EncodeBlockNumber(number), body.Marshal()); err != nil {
		return ws.fail(&nodeerrors.SubstrateError{Op: "put_body", Err: err})
	}

	if err := advanceMarker(tx, MarkerBody, number+1); err != nil {
		return ws.fail(err)
	}
	return nil
}

// GetBlockBody returns the body at number, or nil if it hasn't been
// appended yet.
func (s *ReadScope) GetBlockBody(number uint64) (*Body, error) {
	tx, err := s.tx()
	if err != nil {
		return nil, err
	}
	v, err := tx.GetOne(TableBodies, codec.EncodeBlockNumber(number))
	if err != nil {
		return nil, &nodeerrors.SubstrateError{Op: "get_body", Err: err}
	}
	if v == nil {
		return nil, nil
	}
	body, err := UnmarshalBody(v)
	if err != nil {
		return nil, &nodeerrors.CodecError{Table: TableBodies, Err: err}
	}
	return body, nil
}

// GetTransactionByHash resolves a transaction hash to its containing
// block number and index.
func (s *ReadScope) GetTransactionByHash(hash Felt) (number uint64, index uint64, found bool, err error) {
	tx, err := s.tx()
	if err != nil {
		return 0, 0, false, err
	}
	v, err := tx.GetOne(TableTxHashIndex, hash.Bytes())
	if err != nil {
		return 0, 0, false, &nodeerrors.SubstrateError{Op: "get_tx_hash_index", Err: err}
	}
	if v == nil {
		return 0, 0, false, nil
	}
	number, index, err = decodeTxLookupValue(v)
	if err != nil {
		return 0, 0, false, &nodeerrors.CodecError{Table: TableTxHashIndex, Err: err}
	}
	return number, index, true, nil
}

// GetTransactionByBlockIDAndIndex fetches the body at number and returns
// the transaction at index, or ErrInvalidTransactionIndex if out of
// range.
func (s *ReadScope) GetTransactionByBlockIDAndIndex(number uint64, index uint64) (*Transaction, error) {
	body, err := s.GetBlockBody(number)
	if err != nil {
		return nil, err
	}
	if body == nil || index >= uint64(len(body.Transactions)) {
		return nil, nodeerrors.ErrInvalidTransactionIndex
	}
	tx := body.Transactions[index]
	return &tx, nil
}

// GetBodyMarker returns the next expected body block number.
func (s *ReadScope) GetBodyMarker() (uint64, error) {
	return s.GetMarker(MarkerBody)
}
