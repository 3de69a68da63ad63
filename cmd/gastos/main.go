// Command gastos analyzes a personal expense ledger.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"gastos/internal/core"
)

var version = "dev"

const (
	exitOK           = 0
	exitFailure      = 1
	exitEmptyDataset = 2
)

// globals is bound to every command's Run method.
type globals struct {
	Stdout io.Writer
	Stderr io.Writer
}

type rootCLI struct {
	Analyze analyzeCmd `cmd:"" default:"withargs" help:"Analyze a ledger and print the report."`
	Import  importCmd  `cmd:"" help:"Copy a delimited ledger into the SQLite ledger store."`
	Version versionCmd `cmd:"" help:"Print the version."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var c rootCLI
	parser, err := kong.New(&c,
		kong.Name("gastos"),
		kong.Description("Expense ledger normalization and aggregation."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(stderr, "gastos: %v\n", err)
		return exitFailure
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "gastos: %v\n", err)
		return exitFailure
	}

	err = kctx.Run(&globals{Stdout: stdout, Stderr: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "gastos: %v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, core.ErrEmptyDataset):
		return exitEmptyDataset
	default:
		return exitFailure
	}
}

type versionCmd struct{}

func (v *versionCmd) Run(g *globals) error {
	_, err := fmt.Fprintf(g.Stdout, "gastos %s\n", version)
	return err
}
