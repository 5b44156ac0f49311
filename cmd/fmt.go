package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/drift"
)

// fmtCmd holds the flags for the 'fmt' subcommand.
type fmtCmd struct {
	write bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pda fmt [-w]

  Validates and formats the transaction ledger. Rows are sorted by date,
  sector names normalized, and columns written in canonical order. By
  default the result goes to stdout; -w rewrites the ledger in place.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "Rewrite the ledger file in place instead of printing.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.write {
		if err := drift.EncodeLedger(os.Stdout, ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	file, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q for writing: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	if err := drift.EncodeLedger(file, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing formatted ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d transactions in %s\n", ledger.Len(), *ledgerFile)
	return subcommands.ExitSuccess
}
