package drift

import (
	"fmt"
	"math"

	"github.com/smicfund/drift/date"
)

// Stats is the summary derived from the value series. Percentages keep
// full precision; rounding happens at the reporting boundary only.
type Stats struct {
	Start date.Date
	End   date.Date

	Days   int
	Years  float64
	Months float64

	Initial        float64
	Final          float64
	AbsoluteChange float64
	TotalReturn    Percent

	BenchmarkInitial        float64
	BenchmarkFinal          float64
	BenchmarkAbsoluteChange float64
	BenchmarkTotalReturn    Percent

	CAGR           Percent
	BenchmarkCAGR  Percent
	Outperformance Percent

	MaxDrawdown Percent
	Peak        float64
	PeakDate    date.Date
	Trough      float64
	TroughDate  date.Date
}

// NewStats derives summary statistics from a valuation. A degenerate
// time range (zero or negative elapsed years) is a fatal input error:
// annualized metrics are undefined on it.
func NewStats(v *Valuation) (*Stats, error) {
	start, initial := v.Values.First()
	end, final := v.Values.Latest()
	_, benchInitial := v.Benchmark.First()
	_, benchFinal := v.Benchmark.Latest()

	s := &Stats{
		Start:                   start,
		End:                     end,
		Initial:                 initial,
		Final:                   final,
		AbsoluteChange:          final - initial,
		BenchmarkInitial:        benchInitial,
		BenchmarkFinal:          benchFinal,
		BenchmarkAbsoluteChange: benchFinal - benchInitial,
	}

	s.Days = end.Sub(start)
	s.Years = float64(s.Days) / 365.25
	s.Months = float64(s.Days) / 30.44
	if s.Years <= 0 {
		return nil, fmt.Errorf("date range %s to %s is too short for annualized metrics", start, end)
	}

	s.TotalReturn = Percent((final/initial - 1) * 100)
	s.BenchmarkTotalReturn = Percent((benchFinal/benchInitial - 1) * 100)
	s.CAGR = cagr(initial, final, s.Years)
	s.BenchmarkCAGR = cagr(benchInitial, benchFinal, s.Years)
	s.Outperformance = s.CAGR - s.BenchmarkCAGR

	s.MaxDrawdown = maxDrawdown(v.Values)
	s.Peak, s.PeakDate, s.Trough, s.TroughDate = peakTrough(v.Values)

	return s, nil
}

// cagr is the constant annual rate producing the observed total growth
// over the elapsed years, in percent.
func cagr(initial, final, years float64) Percent {
	return Percent((math.Pow(final/initial, 1/years) - 1) * 100)
}

// maxDrawdown is the deepest decline from the running maximum, in
// percent. It is never positive, and zero exactly when the series never
// falls below an earlier value.
func maxDrawdown(values *date.History[float64]) Percent {
	worst := 0.0
	peak := math.Inf(-1)
	for _, value := range values.Values() {
		if value > peak {
			peak = value
		}
		if dd := value/peak - 1; dd < worst {
			worst = dd
		}
	}
	return Percent(worst * 100)
}

// peakTrough finds the highest and lowest values of the series and the
// first day each occurs on.
func peakTrough(values *date.History[float64]) (peak float64, peakDate date.Date, trough float64, troughDate date.Date) {
	peak, trough = math.Inf(-1), math.Inf(1)
	for on, value := range values.Values() {
		if value > peak {
			peak, peakDate = value, on
		}
		if value < trough {
			trough, troughDate = value, on
		}
	}
	return peak, peakDate, trough, troughDate
}

// SectorBreakdown is the start/end decomposition of one sector's weight
// into its fund portion and its individual-stock portion.
type SectorBreakdown struct {
	Sector string

	FundStart  float64
	FundEnd    float64
	FundChange float64

	StocksStart  float64
	StocksEnd    float64
	StocksChange float64

	TotalStart  float64
	TotalEnd    float64
	TotalChange float64
}

// Breakdown summarizes the fund-vs-stock decomposition per sector, in
// registry order.
func Breakdown(fundStock *WeightTable, registry *Registry) []SectorBreakdown {
	rows := make([]SectorBreakdown, 0, len(registry.Sectors()))
	for _, sector := range registry.Sectors() {
		fundCol, stockCol := fundStockColumns(sector)
		row := SectorBreakdown{
			Sector:      sector,
			FundStart:   fundStock.First(fundCol),
			FundEnd:     fundStock.Last(fundCol),
			StocksStart: fundStock.First(stockCol),
			StocksEnd:   fundStock.Last(stockCol),
		}
		row.FundChange = row.FundEnd - row.FundStart
		row.StocksChange = row.StocksEnd - row.StocksStart
		row.TotalStart = row.FundStart + row.StocksStart
		row.TotalEnd = row.FundEnd + row.StocksEnd
		row.TotalChange = row.TotalEnd - row.TotalStart
		rows = append(rows, row)
	}
	return rows
}
