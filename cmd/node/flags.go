package main

import (
	"github.com/c2h5oh/datasize"
	"github.com/urfave/cli/v2"

	"github.com/starkstore/node/conf"
)

var (
	dataDirFlag = &cli.StringFlag{
		Name:     "data.dir",
		Usage:    "data directory for the storage environment, logs, and lock file",
		Category: "NODE",
		Value:    conf.DefaultNodeConfig().DataDir,
	}
	chainIDFlag = &cli.StringFlag{
		Name:     "chain.id",
		Usage:    "Starknet network identifier (e.g. mainnet, sepolia)",
		Category: "NODE",
		Value:    conf.DefaultNodeConfig().ChainID,
	}
	lockFlag = &cli.BoolFlag{
		Name:     "lock",
		Usage:    "guard the data directory with a process lock file",
		Category: "NODE",
		Value:    true,
	}

	storagePathFlag = &cli.StringFlag{
		Name:     "storage.path",
		Usage:    "storage environment directory, relative to data.dir",
		Category: "STORAGE",
		Value:    conf.DefaultStorageConfig().Path,
	}
	storageMaxSizeFlag = &cli.StringFlag{
		Name:     "storage.max-size",
		Usage:    "MDBX map size ceiling (e.g. 64GB)",
		Category: "STORAGE",
		Value:    conf.DefaultStorageConfig().MaxSize.String(),
	}
	storageSyncModeFlag = &cli.StringFlag{
		Name:     "storage.sync-mode",
		Usage:    "MDBX durability policy: durable or no-sync",
		Category: "STORAGE",
		Value:    string(conf.DefaultStorageConfig().SyncMode),
	}

	logLevelFlag = &cli.StringFlag{
		Name:     "log.level",
		Usage:    "log level: trace, debug, info, warn, error",
		Category: "LOG",
		Value:    "info",
	}
	logFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "log file name under data.dir/log (empty: console only)",
		Category: "LOG",
		Value:    "",
	}

	metricsAddrFlag = &cli.StringFlag{
		Name:     "metrics.addr",
		Usage:    "listen address for the Prometheus metrics endpoint",
		Category: "METRICS",
		Value:    ":6060",
	}
)

var rootFlags = []cli.Flag{
	dataDirFlag,
	chainIDFlag,
	lockFlag,
	storagePathFlag,
	storageMaxSizeFlag,
	storageSyncModeFlag,
	logLevelFlag,
	logFileFlag,
	metricsAddrFlag,
}

// nodeConfigFromContext builds the ambient NodeConfig/StorageConfig/LoggerConfig
// triple from the flags common to every subcommand.
func nodeConfigFromContext(c *cli.Context) (conf.NodeConfig, conf.StorageConfig, conf.LoggerConfig, error) {
	nodeCfg := conf.NodeConfig{
		DataDir: c.String(dataDirFlag.Name),
		ChainID: c.String(chainIDFlag.Name),
	}
	if err := nodeCfg.Validate(); err != nil {
		return nodeCfg, conf.StorageConfig{}, conf.LoggerConfig{}, err
	}

	var maxSize datasize.ByteSize
	if err := maxSize.UnmarshalText([]byte(c.String(storageMaxSizeFlag.Name))); err != nil {
		return nodeCfg, conf.StorageConfig{}, conf.LoggerConfig{}, err
	}
	storageCfg := conf.StorageConfig{
		Path:       c.String(storagePathFlag.Name),
		MaxSize:    maxSize,
		GrowthStep: conf.DefaultStorageConfig().GrowthStep,
		MaxTables:  conf.DefaultStorageConfig().MaxTables,
		SyncMode:   conf.SyncMode(c.String(storageSyncModeFlag.Name)),
	}
	if err := storageCfg.Validate(); err != nil {
		return nodeCfg, storageCfg, conf.LoggerConfig{}, err
	}

	loggerCfg := conf.DefaultLoggerConfig()
	loggerCfg.Level = c.String(logLevelFlag.Name)
	loggerCfg.LogFile = c.String(logFileFlag.Name)
	if err := loggerCfg.Validate(); err != nil {
		return nodeCfg, storageCfg, loggerCfg, err
	}

	return nodeCfg, storageCfg, loggerCfg, nil
}
