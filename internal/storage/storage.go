package storage

import (
	"context"
	"fmt"

	"github.com/starkstore/node/conf"
	"github.com/starkstore/node/internal/codec"
	nodekv "github.com/starkstore/node/internal/kv"
	nodeerrors "github.com/starkstore/node/pkg/errors"
)

// OpenStorage opens (creating if absent) the storage environment at
// nodeCfg.DataDir/cfg.Path, stamps or checks its schema version, and
// returns the Reader/Writer handles consumers use for the lifetime of
// the process.
func OpenStorage(nodeCfg conf.NodeConfig, cfg conf.StorageConfig) (*Reader, *Writer, error) {
	db, err := nodekv.OpenEnv(nodeCfg.DataDir, cfg, Tables())
	if err != nil {
		return nil, nil, err
	}
	writer := nodekv.NewWriter(db)
	if err := ensureSchemaVersion(writer); err != nil {
		db.Close()
		return nil, nil, err
	}
	return &Reader{inner: nodekv.NewReader(db)}, &Writer{inner: writer}, nil
}

// ensureSchemaVersion stamps SchemaVersion into a freshly created
// environment, or fails loudly if an existing environment was written by
// a different schema version than this binary understands.
func ensureSchemaVersion(writer *nodekv.Writer) error {
	ws, err := writer.BeginWrite(context.Background())
	if err != nil {
		return err
	}
	tx, err := ws.Tx()
	if err != nil {
		return err
	}
	v, err := tx.GetOne(TableDatabaseInfo, []byte(schemaVersionKey))
	if err != nil {
		ws.Poison()
		return &nodeerrors.SubstrateError{Op: "get_schema_version", Err: err}
	}
	if v == nil {
		if err := tx.Put(TableDatabaseInfo, []byte(schemaVersionKey), codec.EncodeBlockNumber(SchemaVersion)); err != nil {
			ws.Poison()
			return &nodeerrors.SubstrateError{Op: "put_schema_version", Err: err}
		}
		return ws.Commit()
	}
	found, err := codec.DecodeBlockNumber(v)
	if err != nil {
		ws.Poison()
		return &nodeerrors.CodecError{Table: TableDatabaseInfo, Err: err}
	}
	if found != SchemaVersion {
		ws.Poison()
		return fmt.Errorf("storage: on-disk schema version %d does not match binary schema version %d", found, SchemaVersion)
	}
	return ws.Abort()
}
