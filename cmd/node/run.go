package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/starkstore/node/internal/metrics"
	"github.com/starkstore/node/internal/storage"
	"github.com/starkstore/node/log"
)

const shutdownTimeout = 5 * time.Second

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "open storage and serve metrics until signaled",
	UsageText: "node run [options]",
	Action:    runAction,
}

func runAction(c *cli.Context) error {
	nodeCfg, storageCfg, loggerCfg, err := nodeConfigFromContext(c)
	if err != nil {
		return err
	}
	log.Init(nodeCfg, loggerCfg)
	defer log.Close()

	if c.Bool(lockFlag.Name) {
		fl, err := acquireDataDirLock(nodeCfg.DataDir)
		if err != nil {
			return err
		}
		defer fl.Unlock()
	}

	reader, writer, err := storage.OpenStorage(nodeCfg, storageCfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer writer.Close()

	log.Info("storage environment opened", "data_dir", nodeCfg.DataDir, "chain_id", nodeCfg.ChainID)

	markers := metrics.NewMarkers(reader)
	addr := c.String(metricsAddrFlag.Name)

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		markers.WritePrometheus(&buf)
		w.Write(buf.Bytes())
	})
	server := &http.Server{Addr: addr, Handler: mux}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("metrics endpoint listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-serveErr:
		log.Error("metrics endpoint failed", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
