package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// acquireDataDirLock takes an exclusive, non-blocking lock on dataDir's
// LOCK file. MDBX already refuses two writers in the same process group,
// but a dedicated top-level lock turns that into a clear CLI error
// instead of an opaque MDBX failure. Only `run` takes this lock; the
// inspect subcommands do not.
func acquireDataDirLock(dataDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	lockPath := filepath.Join(dataDir, "LOCK")
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("data directory %s is already locked by another process", dataDir)
	}
	return fl, nil
}
