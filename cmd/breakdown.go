package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/drift"
	"github.com/smicfund/drift/renderer"
)

// breakdownCmd holds the flags for the 'breakdown' subcommand.
type breakdownCmd struct {
	benchmark string
	csv       string
}

func (*breakdownCmd) Name() string { return "breakdown" }
func (*breakdownCmd) Synopsis() string {
	return "display the per-sector fund vs stock decomposition"
}
func (*breakdownCmd) Usage() string {
	return `pda breakdown [-csv <file>]

  Displays, per sector, how the weight split between the sector ETF and
  the individually bought stocks changed over the analysis period.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark ticker. Empty picks the registry's benchmark.")
	f.StringVar(&c.csv, "csv", "", "Also write the breakdown to this CSV file.")
}

func (c *breakdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := analyze(&drift.Options{Benchmark: c.benchmark})
	if a == nil {
		return status
	}

	if c.csv != "" {
		if status := writeCSV(c.csv, func(f *os.File) error {
			return renderer.BreakdownCSV(f, a.Breakdown)
		}); status != subcommands.ExitSuccess {
			return status
		}
	}

	printMarkdown(renderer.BreakdownMarkdown(a.Breakdown))
	return subcommands.ExitSuccess
}
