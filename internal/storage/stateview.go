package storage

import (
	"bytes"

	"github.com/starkstore/node/internal/codec"
	nodekv "github.com/starkstore/node/internal/kv"
	nodeerrors "github.com/starkstore/node/pkg/errors"
)

// resolveBlockID turns a BlockID into a concrete, committed block number.
// Latest resolves against header_marker (the next expected block number is
// one past the latest committed block); NoBlocks if nothing has been
// committed yet. Number and Hash are validated against header_marker /
// BlockHashIndex and fail with ErrInvalidBlockID if unresolved.
func resolveBlockID(tx nodekv.Tx, id BlockID) (uint64, error) {
	headerMarker, err := getMarker(tx, MarkerHeader)
	if err != nil {
		return 0, err
	}
	switch id.Kind {
	case BlockIDLatest:
		if headerMarker == 0 {
			return 0, nodeerrors.ErrNoBlocks
		}
		return headerMarker - 1, nil
	case BlockIDNumber:
		if id.Number >= headerMarker {
			return 0, nodeerrors.ErrInvalidBlockID
		}
		return id.Number, nil
	case BlockIDHash:
		v, err := tx.GetOne(TableBlockHashIndex, id.Hash.Bytes())
		if err != nil {
			return 0, &nodeerrors.SubstrateError{Op: "get_block_hash_index", Err: err}
		}
		if v == nil {
			return 0, nodeerrors.ErrInvalidBlockID
		}
		n, err := codec.DecodeBlockNumber(v)
		if err != nil {
			return 0, &nodeerrors.CodecError{Table: TableBlockHashIndex, Err: err}
		}
		return n, nil
	default:
		return 0, nodeerrors.ErrInvalidBlockID
	}
}

// seekLastAtOrBefore positions a cursor at the greatest key strictly less
// than upperBound (an exclusive bound one past the caller's target block
// number), returning (nil, nil, nil) if no such key exists. It trades a
// reverse-scan for two cursor operations: Seek lands on the first key
// >= upperBound, then Prev steps back one slot (or, if Seek found no
// such key, Last lands on the table's final key).
func seekLastAtOrBefore(cur nodekv.Cursor, upperBound []byte) (key, value []byte, err error) {
	k, _, err := cur.Seek(upperBound)
	if err != nil {
		return nil, nil, err
	}
	if k == nil {
		return cur.Last()
	}
	return cur.Prev()
}

// GetStorageAt resolves the value written to (address, storageKey) as of
// blockID: the contract must be deployed at or before the resolved block,
// then the greatest StorageHistory entry at or before that block is
// returned, or ZeroFelt if the contract has never written that key.
func (s *ReadScope) GetStorageAt(address, storageKey Felt, blockID BlockID) (Felt, error) {
	tx, err := s.tx()
	if err != nil {
		return ZeroFelt, err
	}
	number, err := resolveBlockID(tx, blockID)
	if err != nil {
		return ZeroFelt, err
	}

	deployedAt, ok, err := getDeployedAt(tx, address)
	if err != nil {
		return ZeroFelt, err
	}
	if !ok || deployedAt > number {
		return ZeroFelt, &nodeerrors.ContractNotFound{ContractAddress: address}
	}

	cur, err := tx.Cursor(TableStorageHistory)
	if err != nil {
		return ZeroFelt, &nodeerrors.SubstrateError{Op: "cursor_storage_history", Err: err}
	}
	defer cur.Close()

	upperBound := codec.StorageHistoryUpperBound(address, storageKey, number)
	prefix := codec.StorageHistoryPrefix(upperBound)
	k, v, err := seekLastAtOrBefore(cur, upperBound)
	if err != nil {
		return ZeroFelt, &nodeerrors.SubstrateError{Op: "cursor_seek_storage_history", Err: err}
	}
	if k == nil || !bytes.Equal(codec.StorageHistoryPrefix(k), prefix) {
		return ZeroFelt, nil
	}
	value, err := codec.FeltFromBytes(v)
	if err != nil {
		return ZeroFelt, &nodeerrors.CodecError{Table: TableStorageHistory, Err: err}
	}
	return value, nil
}

// GetNonceAt resolves a contract's nonce as of blockID, the same way
// GetStorageAt resolves a storage slot.
func (s *ReadScope) GetNonceAt(address Felt, blockID BlockID) (Felt, error) {
	tx, err := s.tx()
	if err != nil {
		return ZeroFelt, err
	}
	number, err := resolveBlockID(tx, blockID)
	if err != nil {
		return ZeroFelt, err
	}

	deployedAt, ok, err := getDeployedAt(tx, address)
	if err != nil {
		return ZeroFelt, err
	}
	if !ok || deployedAt > number {
		return ZeroFelt, &nodeerrors.ContractNotFound{ContractAddress: address}
	}

	cur, err := tx.Cursor(TableNonces)
	if err != nil {
		return ZeroFelt, &nodeerrors.SubstrateError{Op: "cursor_nonces", Err: err}
	}
	defer cur.Close()

	upperBound := codec.NonceKeyUpperBound(address, number)
	k, v, err := seekLastAtOrBefore(cur, upperBound)
	if err != nil {
		return ZeroFelt, &nodeerrors.SubstrateError{Op: "cursor_seek_nonces", Err: err}
	}
	if k == nil || !bytes.HasPrefix(k, address[:]) {
		return ZeroFelt, nil
	}
	value, err := codec.FeltFromBytes(v)
	if err != nil {
		return ZeroFelt, &nodeerrors.CodecError{Table: TableNonces, Err: err}
	}
	return value, nil
}

// BlockNumber resolves blockID to a concrete, committed block number.
func (s *ReadScope) BlockNumber(blockID BlockID) (uint64, error) {
	tx, err := s.tx()
	if err != nil {
		return 0, err
	}
	return resolveBlockID(tx, blockID)
}

func getDeployedAt(tx nodekv.Tx, address Felt) (uint64, bool, error) {
	v, err := tx.GetOne(TableDeployedAt, address.Bytes())
	if err != nil {
		return 0, false, &nodeerrors.SubstrateError{Op: "get_deployed_at", Err: err}
	}
	if v == nil {
		return 0, false, nil
	}
	n, err := codec.DecodeBlockNumber(v)
	if err != nil {
		return 0, false, &nodeerrors.CodecError{Table: TableDeployedAt, Err: err}
	}
	return n, true, nil
}
