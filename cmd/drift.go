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

// driftCmd holds the flags for the 'drift' subcommand.
type driftCmd struct {
	benchmark string
	csvFile   string
}

func (*driftCmd) Name() string     { return "drift" }
func (*driftCmd) Synopsis() string { return "display each category's weight change from day 0" }
func (*driftCmd) Usage() string {
	return `pda drift [-csv <file>]

  Displays how far each category's weight has moved from its starting
  value. Categories that never move more than half a point are omitted.
`
}

func (c *driftCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark ticker. Empty picks the registry's benchmark.")
	f.StringVar(&c.csvFile, "csv", "", "Write the full drift table to this CSV file instead of the terminal.")
}

func (c *driftCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := analyze(&drift.Options{Benchmark: c.benchmark})
	if a == nil {
		return status
	}

	if len(a.Drift.Categories()) == 0 {
		fmt.Println("No category drifted beyond the noise floor.")
		return subcommands.ExitSuccess
	}

	if c.csvFile != "" {
		file, err := os.Create(c.csvFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.csvFile, err)
			return subcommands.ExitFailure
		}
		err = renderer.WeightsCSV(file, a.Drift)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.csvFile, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.WeightsMarkdown("Weight Drift", a.Drift, true))
	return subcommands.ExitSuccess
}
