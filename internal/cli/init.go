// Package cli provides common CLI initialization utilities shared by the
// gastos subcommands.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gastos/internal/config"
	"gastos/internal/log"
	"gastos/internal/storage"
)

// SetupLogger builds the application logger from the configured level and
// format, and installs it as the slog default.
func SetupLogger(cfg *config.Config, w io.Writer) *log.Logger {
	lc := log.DefaultConfig()
	lc.Level = log.ParseLevel(cfg.LogLevel)
	lc.Format = cfg.LogFormat
	if w != nil {
		lc.Writer = w
	}
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads the .env file if present, then the
// configuration, applies overrides in order and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	config.LoadEnvFile()
	cfg := config.Load()
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenLedgerStore opens the SQLite ledger store at dbPath, running migrations.
func OpenLedgerStore(logger *log.Logger, dbPath string) (*storage.Store, error) {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open ledger store", log.FieldPath, dbPath, log.FieldError, err)
		return nil, err
	}
	return store, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
