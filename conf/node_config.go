package conf

// NodeConfig carries process-wide settings shared by every subsystem:
// where the node keeps its on-disk state, and which network it follows.
type NodeConfig struct {
	// DataDir is the root directory for the storage environment, log
	// files, and the process lock file. Subsystems derive their own
	// paths from it (e.g. DataDir/log, DataDir/chaindata).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ChainID identifies the Starknet network being followed (e.g.
	// "mainnet", "sepolia"). Purely informational at the storage layer;
	// `run` reports it in its startup log line.
	ChainID string `json:"chain_id" yaml:"chain_id"`
}

// DefaultNodeConfig returns the baseline node configuration.
func DefaultNodeConfig() NodeConfig {
	return NodeConfig{
		DataDir: "./data",
		ChainID: "mainnet",
	}
}

// Validate fills in zero-valued fields with their defaults.
func (c *NodeConfig) Validate() error {
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	if c.ChainID == "" {
		c.ChainID = "mainnet"
	}
	return nil
}
