package storage

import nodeerrors "github.com/starkstore/node/pkg/errors"

// BlockWithTxHashes pairs a header with only its transactions' hashes —
// the cheap shape an RPC block-by-id call returns by default.
type BlockWithTxHashes struct {
	Header   BlockHeader
	TxHashes []Felt
}

// BlockWithTxs pairs a header with its full transaction bodies.
type BlockWithTxs struct {
	Header       BlockHeader
	Transactions []Transaction
}

// GetBlockWithTxHashes resolves blockID and returns its header alongside
// the hashes of every transaction in its body.
func (s *ReadScope) GetBlockWithTxHashes(blockID BlockID) (*BlockWithTxHashes, error) {
	tx, err := s.tx()
	if err != nil {
		return nil, err
	}
	number, err := resolveBlockID(tx, blockID)
	if err != nil {
		return nil, err
	}
	h, err := s.GetBlockHeader(number)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nodeerrors.ErrInvalidBlockID
	}
	body, err := s.GetBlockBody(number)
	if err != nil {
		return nil, err
	}
	result := &BlockWithTxHashes{Header: *h}
	if body != nil {
		result.TxHashes = make([]Felt, len(body.Transactions))
		for i, t := range body.Transactions {
			result.TxHashes[i] = t.Hash
		}
	}
	return result, nil
}

// GetBlockWithTxs resolves blockID and returns its header alongside its
// full transaction bodies.
func (s *ReadScope) GetBlockWithTxs(blockID BlockID) (*BlockWithTxs, error) {
	tx, err := s.tx()
	if err != nil {
		return nil, err
	}
	number, err := resolveBlockID(tx, blockID)
	if err != nil {
		return nil, err
	}
	h, err := s.GetBlockHeader(number)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nodeerrors.ErrInvalidBlockID
	}
	body, err := s.GetBlockBody(number)
	if err != nil {
		return nil, err
	}
	result := &BlockWithTxs{Header: *h}
	if body != nil {
		result.Transactions = body.Transactions
	}
	return result, nil
}
