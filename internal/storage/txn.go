package storage

import (
	"context"

	nodekv "github.com/starkstore/node/internal/kv"
)

// ReadScope is a snapshot-isolated read transaction over every table in
// the schema. Its snapshot is the set of commits made before it began;
// Close releases it without side effects.
type ReadScope struct {
	inner *nodekv.ReadScope
}

func (s *ReadScope) tx() (nodekv.Tx, error) { return s.inner.Tx() }

// Close releases the scope's snapshot. Safe to call once.
func (s *ReadScope) Close() { s.inner.Close() }

// WriteScope is the single read-write transaction allowed at a time. Its
// append operations (§4.6) take the scope and return only an error; any
// failure poisons it (rolling back and releasing the write slot) so a
// caller cannot later Commit a transaction whose intermediate step errored.
type WriteScope struct {
	inner *nodekv.WriteScope
}

func (s *WriteScope) tx() (nodekv.RwTx, error) {
	return s.inner.Tx()
}

// fail poisons the scope and returns err unchanged, so every append
// function can `return ws.fail(err)` as its one error path.
func (s *WriteScope) fail(err error) error {
	s.inner.Poison()
	return err
}

// Commit durably installs every change made through the scope.
func (s *WriteScope) Commit() error {
	return s.inner.Commit()
}

// Abort discards every change made through the scope.
func (s *WriteScope) Abort() error {
	return s.inner.Abort()
}

// Reader opens read scopes against a storage environment. Safe for
// concurrent use by multiple goroutines.
type Reader struct {
	inner *nodekv.Reader
}

// BeginRead opens a new snapshot-isolated ReadScope.
func (r *Reader) BeginRead(ctx context.Context) (*ReadScope, error) {
	inner, err := r.inner.BeginRead(ctx)
	if err != nil {
		return nil, err
	}
	return &ReadScope{inner: inner}, nil
}

// Writer serializes write access to a storage environment: at most one
// WriteScope may be open at a time. Safe for concurrent use by multiple
// goroutines; BeginWrite blocks until any prior scope releases.
type Writer struct {
	inner *nodekv.Writer
}

// BeginWrite blocks (honoring ctx) until exclusive write access is
// available, then opens a new WriteScope.
func (w *Writer) BeginWrite(ctx context.Context) (*WriteScope, error) {
	inner, err := w.inner.BeginWrite(ctx)
	if err != nil {
		return nil, err
	}
	return &WriteScope{inner: inner}, nil
}

// Close releases the underlying environment. Callers must ensure no
// scope from either handle remains open.
func (w *Writer) Close() { w.inner.Close() }
