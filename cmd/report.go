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

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	benchmark  string
	cashSector string
	valuesCSV  string
	summaryCSV string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the full drift analysis report" }
func (*reportCmd) Usage() string {
	return `pda report [-benchmark <ticker>] [-values-csv <file>]

  Reconstructs the portfolio from the ledger and price file and displays
  the full report: summary statistics, benchmark comparison, drawdown,
  sector weights, drift and the fund-vs-stock breakdown.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark ticker. Empty picks the registry's benchmark.")
	f.StringVar(&c.cashSector, "cash-sector", "", "Ledger sector marking cash rows. Defaults to \"Cash\".")
	f.StringVar(&c.valuesCSV, "values-csv", "", "Also write the daily value series to this CSV file.")
	f.StringVar(&c.summaryCSV, "summary-csv", "", "Also write the summary statistics to this CSV file.")
}

// writeCSV creates path and hands it to write, reporting errors on stderr.
func writeCSV(path string, write func(f *os.File) error) subcommands.ExitStatus {
	file, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	err = write(file)
	file.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := analyze(&drift.Options{Benchmark: c.benchmark, CashSector: c.cashSector})
	if a == nil {
		return status
	}

	if c.valuesCSV != "" {
		if status := writeCSV(c.valuesCSV, func(f *os.File) error {
			return renderer.ValuesCSV(f, a.Values, a.Benchmark)
		}); status != subcommands.ExitSuccess {
			return status
		}
	}
	if c.summaryCSV != "" {
		if status := writeCSV(c.summaryCSV, func(f *os.File) error {
			return renderer.SummaryCSV(f, a.Stats)
		}); status != subcommands.ExitSuccess {
			return status
		}
	}

	printMarkdown(renderer.ReportMarkdown(a))
	return subcommands.ExitSuccess
}
