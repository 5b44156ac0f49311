// Package cmd implements the CLI application analyzing portfolio drift.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/smicfund/drift"
)

// Register the subcommands.
// A main package calls Register() and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&weightsCmd{}, "reports")
	c.Register(&driftCmd{}, "reports")
	c.Register(&breakdownCmd{}, "reports")

	c.Register(&fetchCmd{}, "data")
	c.Register(&fmtCmd{}, "data")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger", "transactions.csv", "Path to the transaction ledger (CSV format)")
var pricesFile = flag.String("prices", "prices.jsonl", "Path to the price file (JSONL, or long-form CSV by extension)")
var registryFile = flag.String("registry", "", "Path to a sector registry file (YAML format). Empty picks the built-in registry.")

// LoadLedger reads the app ledger file.
func LoadLedger() (*drift.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return drift.DecodeLedger(f)
}

// LoadPrices reads the app price file. A .csv extension selects the
// long-form CSV codec, anything else the JSONL one.
func LoadPrices() (*drift.PriceTable, error) {
	f, err := os.Open(*pricesFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open prices %q: %w", *pricesFile, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(*pricesFile), ".csv") {
		return drift.DecodePriceCSV(f)
	}
	return drift.DecodePriceTable(f)
}

// LoadRegistry reads the app registry file, or the built-in registry
// when no file is configured.
func LoadRegistry() (*drift.Registry, error) {
	return drift.LoadRegistry(*registryFile)
}

// analyze runs the full analysis from the app files.
func analyze(opts *drift.Options) (*drift.Analysis, subcommands.ExitStatus) {
	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	prices, err := LoadPrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load prices: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	registry, err := LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load registry: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	a, err := drift.Analyze(ledger, prices, registry, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: analysis failed: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	for _, skip := range a.Skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped %s\n", skip)
	}
	return a, subcommands.ExitSuccess
}
