package conf

import (
	"testing"

	"github.com/c2h5oh/datasize"
)

func TestStorageConfigDefaults(t *testing.T) {
	c := DefaultStorageConfig()
	if c.Path != "chaindata" {
		t.Errorf("expected default path chaindata, got %s", c.Path)
	}
	if c.MaxSize != 64*datasize.GB {
		t.Errorf("expected default max_size 64GB, got %s", c.MaxSize)
	}
	if c.SyncMode != SyncDurable {
		t.Errorf("expected default sync mode durable, got %s", c.SyncMode)
	}
	t.Log("✓ default storage config is sane")
}

func TestStorageConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      StorageConfig
		wantErr bool
	}{
		{"zero value fills defaults", StorageConfig{}, false},
		{"explicit no-sync accepted", StorageConfig{SyncMode: SyncNoSync}, false},
		{"unknown sync mode rejected", StorageConfig{SyncMode: "fast"}, true},
		{"growth step larger than max size rejected", StorageConfig{MaxSize: 1 * datasize.GB, GrowthStep: 2 * datasize.GB}, true},
	}

	for _, tt := range tests {
		c := tt.in
		err := c.Validate()
		if tt.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
	t.Log("✓ storage config validation covers defaulting and rejection cases")
}

func TestStorageConfigDefaultFieldsPopulated(t *testing.T) {
	c := DefaultStorageConfig()
	if c.Path == "" || c.MaxTables == 0 {
		t.Error("default config should have non-zero path and max_tables")
	}
	t.Log("✓ storage config fields are populated")
}
