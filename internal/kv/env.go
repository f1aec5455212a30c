// Package kv adapts the storage core onto an MDBX-backed ordered key/value
// substrate (github.com/ledgerwatch/erigon-lib/kv and its mdbx backend),
// the memory-mapped B-tree every table in internal/storage is built on.
package kv

import (
	"context"
	"path/filepath"

	"github.com/erigontech/mdbx-go/mdbx"
	"github.com/ledgerwatch/erigon-lib/kv"
	erigonmdbx "github.com/ledgerwatch/erigon-lib/kv/mdbx"
	"golang.org/x/sync/semaphore"

	"github.com/starkstore/node/conf"
	"github.com/starkstore/node/log"
	nodeerrors "github.com/starkstore/node/pkg/errors"
)

// Tx, RwTx and Cursor re-export the erigon-lib kv transaction types so
// callers outside this package never import erigon-lib directly.
type (
	Tx     = kv.Tx
	RwTx   = kv.RwTx
	Cursor = kv.Cursor
)

// OpenEnv opens (creating if absent) an MDBX environment at cfg.Path,
// reserving a DBI slot for every name in tables. dataDir anchors a
// relative cfg.Path; an absolute cfg.Path is used as-is.
func OpenEnv(dataDir string, cfg conf.StorageConfig, tables []string) (kv.RwDB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := cfg.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}

	cfgCopy := make(kv.TableCfg, len(tables))
	for _, t := range tables {
		cfgCopy[t] = kv.TableCfgItem{}
	}

	opts := erigonmdbx.NewMDBX(log.New("component", "kv")).
		Path(path).
		MapSize(cfg.MaxSize).
		GrowthStep(cfg.GrowthStep).
		WithTableCfg(func(kv.TableCfg) kv.TableCfg { return cfgCopy })

	if cfg.SyncMode == conf.SyncNoSync {
		opts = opts.Flags(func(f uint) uint { return f | mdbx.UtterlyNoSync })
	}

	db, err := opts.Open()
	if err != nil {
		return nil, &nodeerrors.SubstrateError{Op: "open", Err: err}
	}
	return db, nil
}

// Writer serializes access to a single RwTx at a time: the storage core
// allows at most one WriteScope live against an environment.
type Writer struct {
	db  kv.RwDB
	sem *semaphore.Weighted
}

// NewWriter wraps db with single-writer exclusivity.
func NewWriter(db kv.RwDB) *Writer {
	return &Writer{db: db, sem: semaphore.NewWeighted(1)}
}

// BeginWrite blocks (honoring ctx) until any prior WriteScope has
// released, then opens a new one.
func (w *Writer) BeginWrite(ctx context.Context) (*WriteScope, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	tx, err := w.db.BeginRw(ctx)
	if err != nil {
		w.sem.Release(1)
		return nil, &nodeerrors.SubstrateError{Op: "begin_rw", Err: err}
	}
	return &WriteScope{tx: tx, release: func() { w.sem.Release(1) }}, nil
}

// Close closes the underlying environment. Callers must ensure no
// WriteScope or ReadScope remains open.
func (w *Writer) Close() { w.db.Close() }

// WriteScope wraps a single read-write transaction. Once Commit or Abort
// has been called — or any append operation has failed — the scope is
// poisoned: every further Tx or Commit call returns ErrScopeClosed, and
// Abort is a no-op that returns nil.
type WriteScope struct {
	tx      kv.RwTx
	release func()
	done    bool
}

// Tx returns the underlying transaction, or ErrScopeClosed if the scope
// has already been committed, aborted, or poisoned.
func (s *WriteScope) Tx() (kv.RwTx, error) {
	if s.done {
		return nil, nodeerrors.ErrScopeClosed
	}
	return s.tx, nil
}

// Poison marks the scope closed, rolls back the transaction and releases
// the write slot; callers use this after an append fails so the
// caller-visible scope cannot be reused, matching the "poison on error"
// append lifetime in the storage core.
func (s *WriteScope) Poison() {
	if s.done {
		return
	}
	s.done = true
	s.tx.Rollback()
	s.release()
}

// Commit commits the underlying transaction and releases the write slot.
func (s *WriteScope) Commit() error {
	if s.done {
		return nodeerrors.ErrScopeClosed
	}
	s.done = true
	defer s.release()
	if err := s.tx.Commit(); err != nil {
		return &nodeerrors.SubstrateError{Op: "commit", Err: err}
	}
	return nil
}

// Abort rolls back the underlying transaction and releases the write slot.
func (s *WriteScope) Abort() error {
	if s.done {
		return nil
	}
	s.done = true
	defer s.release()
	s.tx.Rollback()
	return nil
}

// Reader opens read-only transactions against an environment. Any number
// of ReadScopes may be open concurrently with each other and with a
// single in-flight WriteScope (MDBX's MVCC readers never block the writer
// and vice versa).
type Reader struct {
	db kv.RoDB
}

// NewReader wraps db for read-only access.
func NewReader(db kv.RoDB) *Reader { return &Reader{db: db} }

// BeginRead opens a new snapshot-isolated read transaction.
func (r *Reader) BeginRead(ctx context.Context) (*ReadScope, error) {
	tx, err := r.db.BeginRo(ctx)
	if err != nil {
		return nil, &nodeerrors.SubstrateError{Op: "begin_ro", Err: err}
	}
	return &ReadScope{tx: tx}, nil
}

// ReadScope wraps a single read-only transaction pinned to one
// point-in-time snapshot of the environment.
type ReadScope struct {
	tx   kv.Tx
	done bool
}

// Tx returns the underlying transaction.
func (s *ReadScope) Tx() (kv.Tx, error) {
	if s.done {
		return nil, nodeerrors.ErrScopeClosed
	}
	return s.tx, nil
}

// Close releases the read transaction's snapshot.
func (s *ReadScope) Close() {
	if s.done {
		return
	}
	s.done = true
	s.tx.Rollback()
}
