package storage

import (
	"testing"

	"github.com/c2h5oh/datasize"

	"github.com/starkstore/node/conf"
)

// newTestStorage opens a fresh storage environment rooted at a temp
// directory, small enough to exercise quickly, and registers cleanup.
func newTestStorage(t *testing.T) (*Reader, *Writer) {
	t.Helper()
	nodeCfg := conf.NodeConfig{DataDir: t.TempDir(), ChainID: "test"}
	storageCfg := conf.StorageConfig{
		Path:       "chaindata",
		MaxSize:    256 * datasize.MB,
		GrowthStep: 16 * datasize.MB,
		MaxTables:  64,
		SyncMode:   conf.SyncNoSync,
	}
	r, w, err := OpenStorage(nodeCfg, storageCfg)
	if err != nil {
		t.Fatalf("OpenStorage: %v", err)
	}
	t.Cleanup(w.Close)
	return r, w
}

func feltN(n byte) Felt {
	var f Felt
	f[31] = n
	return f
}
