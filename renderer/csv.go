package renderer

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/smicfund/drift"
	"github.com/smicfund/drift/date"
)

// WeightsCSV writes the full weight table, one row per day, with full
// float precision. Markdown tables sample; CSV is the complete export.
func WeightsCSV(w io.Writer, table *drift.WeightTable) error {
	cw := csv.NewWriter(w)
	categories := table.Categories()

	header := append([]string{"date"}, categories...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, on := range table.Days() {
		row := make([]string, 0, len(header))
		row = append(row, on.String())
		for _, category := range categories {
			row = append(row, strconv.FormatFloat(table.At(category, i), 'f', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SummaryCSV writes the summary statistics as metric,value pairs with
// full float precision.
func SummaryCSV(w io.Writer, s *drift.Stats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	rows := [][2]string{
		{"start", s.Start.String()},
		{"end", s.End.String()},
		{"days", strconv.Itoa(s.Days)},
		{"years", f(s.Years)},
		{"initial_value", f(s.Initial)},
		{"final_value", f(s.Final)},
		{"absolute_change", f(s.AbsoluteChange)},
		{"total_return_pct", f(float64(s.TotalReturn))},
		{"cagr_pct", f(float64(s.CAGR))},
		{"benchmark_initial", f(s.BenchmarkInitial)},
		{"benchmark_final", f(s.BenchmarkFinal)},
		{"benchmark_total_return_pct", f(float64(s.BenchmarkTotalReturn))},
		{"benchmark_cagr_pct", f(float64(s.BenchmarkCAGR))},
		{"outperformance_pct", f(float64(s.Outperformance))},
		{"max_drawdown_pct", f(float64(s.MaxDrawdown))},
		{"peak_value", f(s.Peak)},
		{"peak_date", s.PeakDate.String()},
		{"trough_value", f(s.Trough)},
		{"trough_date", s.TroughDate.String()},
	}
	for _, row := range rows {
		if err := cw.Write(row[:]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BreakdownCSV writes the per-sector start and end weights, one row
// per sector, with full float precision.
func BreakdownCSV(w io.Writer, rows []drift.SectorBreakdown) error {
	cw := csv.NewWriter(w)
	header := []string{
		"sector",
		"fund_start", "fund_end", "fund_change",
		"stocks_start", "stocks_end", "stocks_change",
		"total_start", "total_end", "total_change",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, row := range rows {
		if err := cw.Write([]string{
			row.Sector,
			f(row.FundStart), f(row.FundEnd), f(row.FundChange),
			f(row.StocksStart), f(row.StocksEnd), f(row.StocksChange),
			f(row.TotalStart), f(row.TotalEnd), f(row.TotalChange),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ValuesCSV writes the portfolio and benchmark value series side by
// side, aligned on the portfolio's days.
func ValuesCSV(w io.Writer, values, benchmark *date.History[float64]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "portfolio", "benchmark"}); err != nil {
		return err
	}
	for on, value := range values.Values() {
		bench, _ := benchmark.ValueAsOf(on)
		if err := cw.Write([]string{
			on.String(),
			strconv.FormatFloat(value, 'f', -1, 64),
			strconv.FormatFloat(bench, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
