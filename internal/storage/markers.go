package storage

import (
	"github.com/starkstore/node/internal/codec"
	nodekv "github.com/starkstore/node/internal/kv"
	nodeerrors "github.com/starkstore/node/pkg/errors"
)

func markerKey(kind MarkerKind) []byte { return []byte{byte(kind)} }

// strictPut inserts (key, value) into table, reporting existed=true and
// leaving the table untouched if key is already present. erigon-lib's
// RwTx.Put is a plain upsert — it never fails on a duplicate key — so
// every strict-insert path in this package must check first, the same
// way ensureSchemaVersion and the teacher's params.SetN42Version guard a
// single key with Has/Get before Put.
func strictPut(tx nodekv.RwTx, table string, key, value []byte) (existed bool, err error) {
	has, err := tx.Has(table, key)
	if err != nil {
		return false, err
	}
	if has {
		return true, nil
	}
	if err := tx.Put(table, key, value); err != nil {
		return false, err
	}
	return false, nil
}

// getMarker returns the next expected block number for kind, 0 if the
// stream has never been written to.
func getMarker(tx nodekv.Tx, kind MarkerKind) (uint64, error) {
	v, err := tx.GetOne(TableMarkers, markerKey(kind))
	if err != nil {
		return 0, &nodeerrors.SubstrateError{Op: "get_marker", Err: err}
	}
	if v == nil {
		return 0, nil
	}
	return codec.DecodeBlockNumber(v)
}

// requireMarker fails with MarkerMismatch unless the stream's current
// marker equals want, per the append protocol in §4.5.
func requireMarker(tx nodekv.Tx, kind MarkerKind, want uint64) error {
	got, err := getMarker(tx, kind)
	if err != nil {
		return err
	}
	if got != want {
		return &nodeerrors.MarkerMismatch{Expected: got, Found: want}
	}
	return nil
}

// advanceMarker upserts kind's marker to next. Callers invoke this in the
// same write transaction as the data it guards, so both land in one
// underlying commit.
func advanceMarker(tx nodekv.RwTx, kind MarkerKind, next uint64) error {
	if err := tx.Put(TableMarkers, markerKey(kind), codec.EncodeBlockNumber(next)); err != nil {
		return &nodeerrors.SubstrateError{Op: "advance_marker", Err: err}
	}
	return nil
}

// GetMarker returns the next expected block number for kind.
func (s *ReadScope) GetMarker(kind MarkerKind) (uint64, error) {
	tx, err := s.tx()
	if err != nil {
		return 0, err
	}
	return getMarker(tx, kind)
}
