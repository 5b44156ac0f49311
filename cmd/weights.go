package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/drift"
	"github.com/smicfund/drift/renderer"
)

// weightsCmd holds the flags for the 'weights' subcommand.
type weightsCmd struct {
	benchmark string
	csvFile   string
	fundStock bool
}

func (*weightsCmd) Name() string     { return "weights" }
func (*weightsCmd) Synopsis() string { return "display the daily sector weight table" }
func (*weightsCmd) Usage() string {
	return `pda weights [-csv <file>] [-fund-stock]

  Displays the daily sector weights of the portfolio. The terminal view
  samples long histories; -csv exports every day with full precision.
  -fund-stock splits each sector into its ETF and stock portions.
`
}

func (c *weightsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark ticker. Empty picks the registry's benchmark.")
	f.StringVar(&c.csvFile, "csv", "", "Write the full weight table to this CSV file instead of the terminal.")
	f.BoolVar(&c.fundStock, "fund-stock", false, "Split sectors into fund and stock columns.")
}

func (c *weightsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := analyze(&drift.Options{Benchmark: c.benchmark})
	if a == nil {
		return status
	}

	table, title := a.Weights, "Sector Weights"
	if c.fundStock {
		table, title = a.FundStock, "Fund vs Stock Weights"
	}

	if c.csvFile != "" {
		file, err := os.Create(c.csvFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.csvFile, err)
			return subcommands.ExitFailure
		}
		err = renderer.WeightsCSV(file, table)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.csvFile, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Wrote %d days to %s\n", len(table.Days()), c.csvFile)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.WeightsMarkdown(title, table, false))
	return subcommands.ExitSuccess
}
