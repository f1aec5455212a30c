package storage

import (
	"context"
	"testing"

	"github.com/c2h5oh/datasize"

	"github.com/starkstore/node/conf"
	"github.com/starkstore/node/internal/codec"
)

func TestOpenStorageStampsAndReopensSchemaVersion(t *testing.T) {
	nodeCfg := conf.NodeConfig{DataDir: t.TempDir(), ChainID: "test"}
	storageCfg := conf.StorageConfig{
		Path:       "chaindata",
		MaxSize:    256 * datasize.MB,
		GrowthStep: 16 * datasize.MB,
		MaxTables:  64,
		SyncMode:   conf.SyncNoSync,
	}

	_, w, err := OpenStorage(nodeCfg, storageCfg)
	if err != nil {
		t.Fatalf("OpenStorage (first open): %v", err)
	}
	w.Close()

	_, w2, err := OpenStorage(nodeCfg, storageCfg)
	if err != nil {
		t.Fatalf("OpenStorage (reopen, same schema version): %v", err)
	}
	w2.Close()
	t.Log("✓ schema version survives a reopen")
}

func TestOpenStorageRejectsMismatchedSchemaVersion(t *testing.T) {
	nodeCfg := conf.NodeConfig{DataDir: t.TempDir(), ChainID: "test"}
	storageCfg := conf.StorageConfig{
		Path:       "chaindata",
		MaxSize:    256 * datasize.MB,
		GrowthStep: 16 * datasize.MB,
		MaxTables:  64,
		SyncMode:   conf.SyncNoSync,
	}

	_, w, err := OpenStorage(nodeCfg, storageCfg)
	if err != nil {
		t.Fatalf("OpenStorage: %v", err)
	}

	ws, err := w.BeginWrite(context.Background())
	if err != nil {
		t.Fatalf("BeginWrite: %v", err)
	}
	tx, err := ws.tx()
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	if err := tx.Put(TableDatabaseInfo, []byte(schemaVersionKey), codec.EncodeBlockNumber(SchemaVersion+1)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := ws.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	w.Close()

	_, _, err = OpenStorage(nodeCfg, storageCfg)
	if err == nil {
		t.Fatal("OpenStorage should reject a future schema version")
	}
	t.Log("✓ rejected an on-disk schema version this binary doesn't understand")
}
