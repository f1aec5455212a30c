// Package errors defines the error taxonomy shared by the storage core.
// It provides a centralized location for error definitions to ensure
// consistency and avoid duplication across packages.
package errors

import (
	"errors"
	"fmt"
)

// =====================
// Append protocol errors
// =====================

// ErrMarkerMismatch is the category sentinel for MarkerMismatch; compare with
// errors.Is, recover fields with errors.As(&MarkerMismatch{}).
var ErrMarkerMismatch = errors.New("marker mismatch")

// MarkerMismatch is returned when an append's block number does not equal the
// stream's current marker.
type MarkerMismatch struct {
	Expected uint64
	Found    uint64
}

func (e *MarkerMismatch) Error() string {
	return fmt.Sprintf("marker mismatch: expected %d, found %d", e.Expected, e.Found)
}

func (e *MarkerMismatch) Unwrap() error { return ErrMarkerMismatch }

// =====================
// Duplicate unique-key errors
// =====================

var (
	// ErrBlockHashAlreadyExists is the category sentinel for BlockHashAlreadyExists.
	ErrBlockHashAlreadyExists = errors.New("block hash already exists")

	// ErrTransactionHashAlreadyExists is the category sentinel for TransactionHashAlreadyExists.
	ErrTransactionHashAlreadyExists = errors.New("transaction hash already exists")

	// ErrContractAlreadyExists is the category sentinel for ContractAlreadyExists.
	ErrContractAlreadyExists = errors.New("contract already exists")
)

// BlockHashAlreadyExists is returned by append_header when the block hash
// being indexed already maps to a different block number.
type BlockHashAlreadyExists struct {
	BlockHash   [32]byte
	BlockNumber uint64
}

func (e *BlockHashAlreadyExists) Error() string {
	return fmt.Sprintf("block hash %x already exists (attempted at block %d)", e.BlockHash, e.BlockNumber)
}

func (e *BlockHashAlreadyExists) Unwrap() error { return ErrBlockHashAlreadyExists }

// TransactionHashAlreadyExists is returned by append_body for a duplicate
// transaction hash.
type TransactionHashAlreadyExists struct {
	TxHash [32]byte
}

func (e *TransactionHashAlreadyExists) Error() string {
	return fmt.Sprintf("transaction hash %x already exists", e.TxHash)
}

func (e *TransactionHashAlreadyExists) Unwrap() error { return ErrTransactionHashAlreadyExists }

// ContractAlreadyExists is returned by append_state_diff when a contract
// address has already been deployed at an earlier block.
type ContractAlreadyExists struct {
	ContractAddress [32]byte
}

func (e *ContractAlreadyExists) Error() string {
	return fmt.Sprintf("contract %x already exists", e.ContractAddress)
}

func (e *ContractAlreadyExists) Unwrap() error { return ErrContractAlreadyExists }

// =====================
// Lookup failures (surfaced to RPC callers)
// =====================

var (
	// ErrInvalidBlockID is returned when a block_id (number or hash) does not
	// resolve to a committed block.
	ErrInvalidBlockID = errors.New("invalid block id")

	// ErrInvalidTransactionHash is returned when a transaction hash is not indexed.
	ErrInvalidTransactionHash = errors.New("invalid transaction hash")

	// ErrInvalidTransactionIndex is returned when a transaction index is out of
	// range for the requested block's body.
	ErrInvalidTransactionIndex = errors.New("invalid transaction index")

	// ErrContractNotFound is returned when a contract has not been deployed as
	// of the requested block.
	ErrContractNotFound = errors.New("contract not found")

	// ErrNoBlocks is returned when a query needs at least one committed block
	// and the store is empty.
	ErrNoBlocks = errors.New("no blocks")
)

// ContractNotFound is returned by point-in-time state lookups when the
// contract has not been deployed as of the requested block.
type ContractNotFound struct {
	ContractAddress [32]byte
}

func (e *ContractNotFound) Error() string {
	return fmt.Sprintf("contract %x not found at requested block", e.ContractAddress)
}

func (e *ContractNotFound) Unwrap() error { return ErrContractNotFound }

// =====================
// Substrate / codec errors
// =====================

var (
	// ErrScopeClosed is returned by Tx and Commit on a WriteScope that has
	// already committed, aborted, or been poisoned by a prior failed append
	// (Abort on such a scope returns nil).
	ErrScopeClosed = errors.New("transaction scope is closed")

	// ErrKeyExists marks a raw substrate insert-on-existing-key failure before
	// it is re-mapped to a domain-specific duplicate error by the caller.
	ErrKeyExists = errors.New("key already exists")
)

// SubstrateError wraps an underlying KV store failure (IO, map-full,
// corruption). It bubbles up verbatim per the propagation policy.
type SubstrateError struct {
	Op  string
	Err error
}

func (e *SubstrateError) Error() string { return fmt.Sprintf("substrate: %s: %v", e.Op, e.Err) }
func (e *SubstrateError) Unwrap() error { return e.Err }

// CodecError marks a stored value that failed to decode; treated as
// corruption and fatal to the operation that triggered it.
type CodecError struct {
	Table string
	Err   error
}

func (e *CodecError) Error() string { return fmt.Sprintf("codec: decoding %s: %v", e.Table, e.Err) }
func (e *CodecError) Unwrap() error { return e.Err }

// =====================
// Helper functions
// =====================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Errorf formats according to a format specifier and returns the string as a
// value that satisfies error.
func Errorf(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}
