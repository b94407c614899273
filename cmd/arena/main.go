// Package main runs the arena client against a local SQLite ledger.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"okinoko-arena/contract"
	"okinoko-arena/internal/cli"
	"okinoko-arena/internal/config"
	"okinoko-arena/internal/ledger"
	"okinoko-arena/internal/logging"
	arenaotel "okinoko-arena/internal/otel"
	"okinoko-arena/internal/storage/sqlite"
	"okinoko-arena/sdk"
)

func main() {
	if err := run(); err != nil {
		exit(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	programID, err := sdk.ParseAddress(cfg.ProgramID)
	if err != nil {
		return fmt.Errorf("ARENA_PROGRAM_ID: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := arenaotel.Setup(ctx, "arena", cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	}
	defer func() { _ = shutdown(context.Background()) }()

	store, err := sqlite.Open(ctx, cfg.DBPath, cfg.AccountCacheSize)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", cfg.DBPath, err)
	}
	defer store.Close()

	rt := ledger.New(store,
		ledger.WithLogger(logger.Named("ledger")),
		ledger.WithMetrics(ledger.NewMetrics(prometheus.DefaultRegisterer)),
	)
	rt.Deploy(programID, contract.New(programID))

	app := &cli.App{
		Ledger:    rt,
		ProgramID: programID,
		Out:       os.Stdout,
		Logger:    logger.Named("cli"),
	}
	return app.Run(ctx, os.Args[1:])
}

func exit(err error) {
	if errors.Is(err, cli.ErrUsage) {
		config.Exitf("%v", err)
	}
	if code := contract.CodeOf(err); code != 0 {
		config.Exitf("program error %d: %v", code, err)
	}
	config.Exitf("error: %v", err)
}
