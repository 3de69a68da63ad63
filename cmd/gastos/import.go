package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gastos/internal/cli"
	"gastos/internal/config"
	"gastos/internal/services"
	"gastos/internal/sources/csvfile"
)

type importCmd struct {
	File string `short:"f" required:"" help:"Delimited ledger file to import."`
	DB   string `help:"SQLite ledger store path. Overrides SQLITE_DB_PATH."`
	Name string `help:"Name to store the ledger under. Defaults to the file name without extension."`
}

func (c *importCmd) apply(cfg *config.Config) {
	cfg.LedgerSource = config.SourceCSV
	cfg.LedgerPath = c.File
	if c.DB != "" {
		cfg.SQLiteDBPath = c.DB
	}
}

func (c *importCmd) Run(g *globals) error {
	cfg, err := cli.LoadAndValidateConfig(c.apply)
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg, g.Stderr)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	store, err := cli.OpenLedgerStore(logger, cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	name := c.Name
	if name == "" {
		base := filepath.Base(cfg.LedgerPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	src := csvfile.New(cfg.LedgerPath,
		csvfile.WithDelimiter(cfg.Delimiter()),
		csvfile.WithEncoding(cfg.LedgerEncoding),
		csvfile.WithLogger(logger),
	)
	n, err := services.NewImportService(store, logger).Import(ctx, src, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Stdout, "Importadas %d filas como %q en %s\n", n, name, cfg.SQLiteDBPath)
	return err
}
