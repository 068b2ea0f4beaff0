package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/melatron/hft-service/internal/aggregate"
	"github.com/melatron/hft-service/internal/config"
	"github.com/melatron/hft-service/internal/httpapi"
	"github.com/melatron/hft-service/internal/logging"
	"github.com/melatron/hft-service/internal/metrics"
	"github.com/melatron/hft-service/internal/registry"
)

// shutdownTimeout bounds how long in-flight requests are given to drain on
// SIGINT/SIGTERM, the same 5s budget the teacher's cmd/node.main() gives
// http.Server.Shutdown.
const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to an optional config file (TOML/YAML/JSON)")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Service:  "hft-service",
		LogPath:  cfg.LogPath,
		LogLevel: cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := registry.New(cfg.ShardCount, aggregate.DefaultCapacity)
	m := metrics.New(prometheus.DefaultRegisterer)
	srv := httpapi.NewServer(reg, m, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr()), zap.Int("shard_count", reg.ShardCount()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		logger.Info("shutdown signal received")
	case <-gctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
