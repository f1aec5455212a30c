package codec

import (
	"encoding/binary"
	"fmt"
)

// BlockNumberSize is the encoded width of a block number.
const BlockNumberSize = 8

// EncodeBlockNumber encodes a block number as 8-byte big-endian, so
// lexicographic byte order over keys matches numeric order.
func EncodeBlockNumber(number uint64) []byte {
	b := make([]byte, BlockNumberSize)
	binary.BigEndian.PutUint64(b, number)
	return b
}

// DecodeBlockNumber decodes an 8-byte big-endian block number.
func DecodeBlockNumber(b []byte) (uint64, error) {
	if len(b) != BlockNumberSize {
		return 0, fmt.Errorf("codec: block number key must be %d bytes, got %d", BlockNumberSize, len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// StorageHistoryKey encodes the StorageHistory composite key
// (contract_address, storage_key, block_number) as the concatenation of
// its fixed-width big-endian components, so a lexicographic scan orders
// first by address, then by storage key, then by block number.
func StorageHistoryKey(address, storageKey Felt, blockNumber uint64) []byte {
	key := make([]byte, 2*FeltSize+BlockNumberSize)
	copy(key[0:FeltSize], address[:])
	copy(key[FeltSize:2*FeltSize], storageKey[:])
	copy(key[2*FeltSize:], EncodeBlockNumber(blockNumber))
	return key
}

// SplitStorageHistoryKey decodes a StorageHistoryKey back into its
// components. It is the left inverse of StorageHistoryKey.
func SplitStorageHistoryKey(key []byte) (address, storageKey Felt, blockNumber uint64, err error) {
	if len(key) != 2*FeltSize+BlockNumberSize {
		return Felt{}, Felt{}, 0, fmt.Errorf("codec: storage history key must be %d bytes, got %d", 2*FeltSize+BlockNumberSize, len(key))
	}
	copy(address[:], key[0:FeltSize])
	copy(storageKey[:], key[FeltSize:2*FeltSize])
	blockNumber = binary.BigEndian.Uint64(key[2*FeltSize:])
	return address, storageKey, blockNumber, nil
}

// StorageHistoryPrefix returns the (address, storage_key) prefix of a
// StorageHistoryKey, used to verify a cursor landed on the right slot
// after a bounded lower_bound positioning.
func StorageHistoryPrefix(key []byte) []byte {
	if len(key) < 2*FeltSize {
		return nil
	}
	return key[:2*FeltSize]
}

// NonceKey encodes the Nonces composite key (contract_address,
// block_number).
func NonceKey(address Felt, blockNumber uint64) []byte {
	key := make([]byte, FeltSize+BlockNumberSize)
	copy(key[0:FeltSize], address[:])
	copy(key[FeltSize:], EncodeBlockNumber(blockNumber))
	return key
}

// SplitNonceKey decodes a NonceKey back into its components.
func SplitNonceKey(key []byte) (address Felt, blockNumber uint64, err error) {
	if len(key) != FeltSize+BlockNumberSize {
		return Felt{}, 0, fmt.Errorf("codec: nonce key must be %d bytes, got %d", FeltSize+BlockNumberSize, len(key))
	}
	copy(address[:], key[0:FeltSize])
	blockNumber = binary.BigEndian.Uint64(key[FeltSize:])
	return address, blockNumber, nil
}

// NonceKeyUpperBound returns the smallest key strictly greater than any
// NonceKey(address, N) for N <= blockNumber, used to position a
// descending-style search ("greatest key <= target"): a Seek to this
// bound followed by one step back (Prev, or Last if the Seek ran off the
// end of the table).
func NonceKeyUpperBound(address Felt, blockNumber uint64) []byte {
	return NonceKey(address, blockNumber+1)
}

// StorageHistoryUpperBound returns the smallest key strictly greater than
// any StorageHistoryKey(address, storageKey, N) for N <= blockNumber.
func StorageHistoryUpperBound(address, storageKey Felt, blockNumber uint64) []byte {
	return StorageHistoryKey(address, storageKey, blockNumber+1)
}
