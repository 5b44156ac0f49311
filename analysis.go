package drift

import (
	"fmt"

	"github.com/smicfund/drift/date"
)

// Options tunes an analysis run. The zero value picks the registry's
// benchmark and the default cash sector label.
type Options struct {
	Benchmark  string // overrides the registry benchmark ticker
	CashSector string // ledger sector marking cash rows, default "Cash"
}

func (o *Options) benchmark(registry *Registry) string {
	if o != nil && o.Benchmark != "" {
		return o.Benchmark
	}
	return registry.Benchmark()
}

func (o *Options) cashSector() string {
	if o != nil && o.CashSector != "" {
		return o.CashSector
	}
	return CashCategory
}

// Analysis is the complete result of one run: reconstructed values,
// weights, statistics and the per-transaction diagnostics.
type Analysis struct {
	Range date.Range

	Values           *date.History[float64]
	Benchmark        *date.History[float64]
	Returns          *date.History[float64]
	BenchmarkReturns *date.History[float64]

	Weights   *WeightTable
	FundStock *WeightTable
	Drift     *WeightTable

	Stats     *Stats
	Breakdown []SectorBreakdown

	Cash    float64
	Skipped []Skip
}

// Analyze reconstructs the portfolio from the ledger and price table
// and derives all statistics. It is a pure function of its inputs:
// running it twice on the same data yields identical results, and
// independent runs are safe to execute concurrently.
//
// Fatal conditions abort before any partial result: an empty ledger or
// price table, missing benchmark coverage, a non-positive portfolio
// value, or a time range too short to annualize. Per-transaction data
// issues never abort; they are collected in Skipped.
func Analyze(ledger *Ledger, prices *PriceTable, registry *Registry, opts *Options) (*Analysis, error) {
	if ledger == nil || ledger.Len() == 0 {
		return nil, fmt.Errorf("ledger is empty")
	}
	if prices == nil || prices.IsEmpty() {
		return nil, fmt.Errorf("price table is empty")
	}
	benchmark := opts.benchmark(registry)
	cashSector := opts.cashSector()

	// The analysis starts on the trading day nearest to the earliest
	// transaction; everything before is cut off. Truncation is a view,
	// the caller's table is untouched.
	start, ok := prices.NearestTradingDay(ledger.StartDate())
	if !ok {
		return nil, fmt.Errorf("price table has no trading days")
	}
	prices = prices.Truncate(start)

	units, skipped := BuildPositions(ledger, prices, registry, cashSector)

	valuation, err := Valuate(units, prices, ledger, registry, benchmark, cashSector)
	if err != nil {
		return nil, err
	}

	stats, err := NewStats(valuation)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Range:            date.NewRange(stats.Start, stats.End),
		Values:           valuation.Values,
		Benchmark:        valuation.Benchmark,
		Returns:          valuation.Returns,
		BenchmarkReturns: valuation.BenchmarkReturns,
		Weights:          valuation.Weights,
		FundStock:        valuation.FundStock,
		Drift:            valuation.Weights.Drift(),
		Stats:            stats,
		Breakdown:        Breakdown(valuation.FundStock, registry),
		Cash:             valuation.Cash,
		Skipped:          skipped,
	}, nil
}
