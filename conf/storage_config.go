package conf

import (
	"fmt"

	"github.com/c2h5oh/datasize"
)

// SyncMode controls the MDBX durability/sync policy for a storage
// environment.
type SyncMode string

const (
	// SyncDurable fsyncs on every commit. Safe across a power loss, slower.
	SyncDurable SyncMode = "durable"

	// SyncNoSync relies on the OS page cache and never calls fsync.
	// A crash can lose recent commits; only meant for throwaway/test
	// environments, never for a node tracking real chain state.
	SyncNoSync SyncMode = "no-sync"
)

// StorageConfig configures the on-disk MDBX environment backing the
// storage core.
type StorageConfig struct {
	// Path is the directory holding the MDBX data and lock files.
	// Relative paths are resolved against NodeConfig.DataDir by the
	// component that opens the environment.
	Path string `json:"path" yaml:"path"`

	// MaxSize is the MDBX map size ceiling, e.g. "64GB". The map cannot
	// grow past this without reopening the environment.
	MaxSize datasize.ByteSize `json:"max_size" yaml:"max_size"`

	// GrowthStep is how much the map size grows each time MDBX needs
	// more room, up to MaxSize.
	GrowthStep datasize.ByteSize `json:"growth_step" yaml:"growth_step"`

	// MaxTables is the expected number of named tables. Validate only
	// defaults a non-positive value to 64; the environment opener does not
	// pass it to MDBX, and it is not checked against the schema's table
	// count.
	MaxTables int `json:"max_tables" yaml:"max_tables"`

	// SyncMode selects the durability/sync policy.
	SyncMode SyncMode `json:"sync_mode" yaml:"sync_mode"`
}

// DefaultStorageConfig returns sane defaults for a production node.
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Path:       "chaindata",
		MaxSize:    64 * datasize.GB,
		GrowthStep: 2 * datasize.GB,
		MaxTables:  64,
		SyncMode:   SyncDurable,
	}
}

// Validate fills in defaults and rejects values that cannot produce a
// usable environment.
func (c *StorageConfig) Validate() error {
	if c.Path == "" {
		c.Path = "chaindata"
	}
	if c.MaxSize == 0 {
		c.MaxSize = 64 * datasize.GB
	}
	if c.GrowthStep == 0 {
		c.GrowthStep = 2 * datasize.GB
	}
	if c.MaxTables <= 0 {
		c.MaxTables = 64
	}
	switch c.SyncMode {
	case "":
		c.SyncMode = SyncDurable
	case SyncDurable, SyncNoSync:
	default:
		return fmt.Errorf("storage: unknown sync mode %q", c.SyncMode)
	}
	if c.GrowthStep > c.MaxSize {
		return fmt.Errorf("storage: growth_step (%s) exceeds max_size (%s)", c.GrowthStep, c.MaxSize)
	}
	return nil
}
