package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/drift"
	"github.com/smicfund/drift/date"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	intraday bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download daily prices from EODHD" }
func (*fetchCmd) Usage() string {
	return `pda fetch [-intraday]

  Downloads daily adjusted closes for every ticker the analysis needs:
  ledger tickers, registry funds and the benchmark. History starts ten
  days before the first transaction. The result overwrites the price
  file.

  Requires an EODHD API key via -eodhd-api-key or the EODHD_API_KEY
  environment variable.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.intraday, "intraday", false, "Append the latest real-time quote as today's price.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key := drift.EodhdAPIKey()
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: EODHD API key is not set. Use -eodhd-api-key flag or EODHD_API_KEY environment variable\n")
		return subcommands.ExitFailure
	}

	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	registry, err := LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load registry: %v\n", err)
		return subcommands.ExitFailure
	}

	table := drift.NewPriceTable()
	if err := drift.FetchUniverse(table, key, ledger, registry, registry.Benchmark()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch from eodhd.com: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.intraday {
		today := date.Today()
		for _, ticker := range table.Tickers() {
			quote, err := drift.FetchLatestQuote(key, ticker)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				continue
			}
			table.Add(ticker, today, quote)
		}
	}

	file, err := os.Create(*pricesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening price file %q for writing: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	if err := drift.EncodePriceTable(file, table); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing price file: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Fetched %d tickers into %s\n", len(table.Tickers()), *pricesFile)
	return subcommands.ExitSuccess
}
