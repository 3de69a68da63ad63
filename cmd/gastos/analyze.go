package main

import (
	"context"
	"errors"
	"fmt"

	"gastos/internal/amqp"
	"gastos/internal/cli"
	"gastos/internal/config"
	"gastos/internal/core"
	"gastos/internal/ledger"
	"gastos/internal/log"
	"gastos/internal/report"
	"gastos/internal/services"
	"gastos/internal/sources"
	"gastos/internal/sources/csvfile"
	"gastos/internal/sources/sheets"
)

type analyzeCmd struct {
	Source  string `help:"Ledger source: csv, sheets or sqlite. Overrides LEDGER_SOURCE."`
	File    string `short:"f" help:"Ledger file for the csv source. Overrides LEDGER_PATH."`
	Name    string `help:"Imported ledger name for the sqlite source. All imported rows when empty."`
	Top     int    `short:"k" help:"Number of largest expenses to rank. Overrides TOP_K."`
	XLSX    string `name:"xlsx" help:"Write an XLSX workbook with charts to this path."`
	JSON    string `name:"json" help:"Write the report as JSON to this path, or - for stdout."`
	Publish bool   `help:"Publish the report to the AMQP exchange configured by AMQP_URL."`
	Quiet   bool   `short:"q" help:"Do not print the console report."`
}

func (a *analyzeCmd) apply(cfg *config.Config) {
	if a.Source != "" {
		cfg.LedgerSource = a.Source
	}
	if a.File != "" {
		cfg.LedgerPath = a.File
	}
	if a.Top != 0 {
		cfg.TopK = a.Top
	}
	if a.XLSX != "" {
		cfg.ReportXLSXPath = a.XLSX
	}
}

func (a *analyzeCmd) Run(g *globals) error {
	cfg, err := cli.LoadAndValidateConfig(a.apply)
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg, g.Stderr)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	src, closeSource, err := openSource(ctx, cfg, a.Name, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	presenters, closePresenters, err := a.presenters(cfg, g, logger)
	if err != nil {
		return err
	}
	defer closePresenters()

	parser := ledger.NewParser(ledger.WithCurrencyPrefix(cfg.CurrencyPrefix))
	_, err = services.NewAnalysisService(src, parser, cfg.TopK, logger, presenters...).Run(ctx)
	return err
}

func (a *analyzeCmd) presenters(cfg *config.Config, g *globals, logger *log.Logger) ([]report.Presenter, func(), error) {
	var out []report.Presenter
	closeAll := func() {}

	// Everything bound to stdout runs in order: console first, then JSON.
	var stdout report.Sequence
	if !a.Quiet {
		stdout = append(stdout, report.NewConsole(g.Stdout, cfg.CurrencyPrefix))
	}
	switch a.JSON {
	case "":
	case "-":
		stdout = append(stdout, report.NewJSON(g.Stdout))
	default:
		out = append(out, report.NewJSONFile(a.JSON))
	}
	switch len(stdout) {
	case 0:
	case 1:
		out = append(out, stdout[0])
	default:
		out = append(out, stdout)
	}
	if cfg.ReportXLSXPath != "" {
		out = append(out, report.NewXLSX(cfg.ReportXLSXPath))
	}
	if a.Publish {
		if cfg.AMQPURL == "" {
			return nil, closeAll, errors.New("--publish requires AMQP_URL")
		}
		pub, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
		if err != nil {
			return nil, closeAll, fmt.Errorf("connect report publisher: %w", err)
		}
		out = append(out, pub)
		closeAll = func() { pub.Close() }
	}
	return out, closeAll, nil
}

// openSource builds the configured ledger source. The returned func releases
// any resource the source holds.
func openSource(ctx context.Context, cfg *config.Config, name string, logger *log.Logger) (sources.RowSource, func(), error) {
	noop := func() {}
	switch cfg.LedgerSource {
	case config.SourceSheets:
		c, err := sheets.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetRange, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
		}
		return c, noop, nil
	case config.SourceSQLite:
		store, err := cli.OpenLedgerStore(logger, cfg.SQLiteDBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
		}
		closeStore := func() { store.Close() }
		if name != "" {
			return store.Source(name), closeStore, nil
		}
		return store, closeStore, nil
	default:
		return csvfile.New(cfg.LedgerPath,
			csvfile.WithDelimiter(cfg.Delimiter()),
			csvfile.WithEncoding(cfg.LedgerEncoding),
			csvfile.WithLogger(logger),
		), noop, nil
	}
}
