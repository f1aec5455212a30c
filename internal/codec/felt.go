// Package codec implements the bijective byte encoding for the storage
// core's keys and values: fixed-width big-endian components for ordered
// composite keys, and a small self-describing tag format for values.
package codec

import (
	"fmt"

	"github.com/holiman/uint256"
)

// FeltSize is the encoded width of a 252-bit Starknet field element.
const FeltSize = 32

// Felt is a 252-bit Starknet field element, stored and compared as a
// 32-byte big-endian buffer.
type Felt [FeltSize]byte

// ZeroFelt is the implicit value of uninitialized contract storage.
var ZeroFelt = Felt{}

// FeltFromUint256 encodes u as a big-endian Felt.
func FeltFromUint256(u *uint256.Int) Felt {
	var f Felt
	b := u.Bytes32()
	copy(f[:], b[:])
	return f
}

// Uint256 decodes f as a uint256.Int for arithmetic.
func (f Felt) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes(f[:])
}

// Bytes returns the 32-byte big-endian encoding.
func (f Felt) Bytes() []byte { return f[:] }

// FeltFromBytes decodes a 32-byte big-endian buffer into a Felt.
func FeltFromBytes(b []byte) (Felt, error) {
	var f Felt
	if len(b) != FeltSize {
		return f, fmt.Errorf("codec: felt must be %d bytes, got %d", FeltSize, len(b))
	}
	copy(f[:], b)
	return f, nil
}

// String renders f as a 0x-prefixed hex string.
func (f Felt) String() string {
	return fmt.Sprintf("0x%x", f[:])
}

// IsZero reports whether f is the zero felt.
func (f Felt) IsZero() bool { return f == ZeroFelt }
