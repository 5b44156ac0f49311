package drift

import (
	"math"
	"testing"

	"github.com/smicfund/drift/date"
)

// series builds a value history from consecutive business days.
func series(t *testing.T, from string, values ...float64) *date.History[float64] {
	t.Helper()
	h := &date.History[float64]{}
	on := D(from)
	for _, v := range values {
		for !on.IsBusinessDay() {
			on = on.Add(1)
		}
		h.Append(on, v)
		on = on.Add(1)
	}
	return h
}

func statsOf(t *testing.T, values, bench *date.History[float64]) *Stats {
	t.Helper()
	s, err := NewStats(&Valuation{Values: values, Benchmark: bench})
	if err != nil {
		t.Fatalf("NewStats() error = %v", err)
	}
	return s
}

func TestNewStats_CAGR(t *testing.T) {
	// a clean doubling over exactly one year
	values := &date.History[float64]{}
	values.Append(D("2023-09-01"), 10000)
	values.Append(D("2024-08-31"), 20000)
	bench := &date.History[float64]{}
	bench.Append(D("2023-09-01"), 10000)
	bench.Append(D("2024-08-31"), 11000)

	s := statsOf(t, values, bench)
	if s.Days != 365 {
		t.Errorf("Days = %d, want 365", s.Days)
	}
	if !s.TotalReturn.Equal(Percent(100)) {
		t.Errorf("TotalReturn = %v, want 100%%", s.TotalReturn)
	}
	// (2)^(1/(365/365.25)) - 1
	wantCAGR := (math.Pow(2, 365.25/365) - 1) * 100
	if !approx(float64(s.CAGR), wantCAGR, 0.001) {
		t.Errorf("CAGR = %v, want %v", s.CAGR, wantCAGR)
	}
	if !approx(float64(s.Outperformance), float64(s.CAGR-s.BenchmarkCAGR), 1e-12) {
		t.Errorf("Outperformance = %v, want CAGR minus benchmark CAGR", s.Outperformance)
	}
}

func TestNewStats_DegenerateRangeIsFatal(t *testing.T) {
	values := &date.History[float64]{}
	values.Append(D("2024-08-27"), 10000)
	bench := &date.History[float64]{}
	bench.Append(D("2024-08-27"), 10000)

	if _, err := NewStats(&Valuation{Values: values, Benchmark: bench}); err == nil {
		t.Error("NewStats() expected fatal error for a single-day range")
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"never falls", []float64{100, 100, 110, 120}, 0},
		{"single dip", []float64{100, 120, 90, 130}, -25},
		{"recovers but keeps worst", []float64{100, 80, 150, 120}, -20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := maxDrawdown(series(t, "2024-08-27", tc.values...))
			if !got.Equal(Percent(tc.want)) {
				t.Errorf("maxDrawdown(%v) = %v, want %v%%", tc.values, got, tc.want)
			}
			if got > 0 {
				t.Errorf("maxDrawdown(%v) = %v, must never be positive", tc.values, got)
			}
		})
	}
}

func TestPeakTrough_FirstOccurrence(t *testing.T) {
	// the peak value 120 and trough value 90 both occur twice
	values := series(t, "2024-08-26", 100, 120, 90, 120, 90)
	peak, peakDate, trough, troughDate := peakTrough(values)

	if peak != 120 || peakDate != D("2024-08-27") {
		t.Errorf("peak = %v on %s, want 120 on 2024-08-27", peak, peakDate)
	}
	if trough != 90 || troughDate != D("2024-08-28") {
		t.Errorf("trough = %v on %s, want 90 on 2024-08-28", trough, troughDate)
	}
}

func TestBreakdown(t *testing.T) {
	reg := NewRegistry("^GSPC",
		[2]string{"Technology", "VGT"},
		[2]string{"Healthcare", "VHT"},
	)
	days := []date.Date{D("2024-08-27"), D("2024-08-28")}
	fs := NewWeightTable(days)
	techFund, techStocks := fundStockColumns("Technology")
	fs.SetColumn(techFund, []float64{80, 60})
	fs.SetColumn(techStocks, []float64{0, 20})

	rows := Breakdown(fs, reg)
	if len(rows) != 2 {
		t.Fatalf("Breakdown() returned %d rows, want one per registry sector", len(rows))
	}
	tech := rows[0]
	if tech.Sector != "Technology" {
		t.Fatalf("rows[0].Sector = %s, want Technology (registry order)", tech.Sector)
	}
	if tech.FundChange != -20 || tech.StocksChange != 20 {
		t.Errorf("fund change = %v, stocks change = %v, want -20 and +20", tech.FundChange, tech.StocksChange)
	}
	if tech.TotalStart != 80 || tech.TotalEnd != 80 || tech.TotalChange != 0 {
		t.Errorf("total %v -> %v (change %v), want a constant 80", tech.TotalStart, tech.TotalEnd, tech.TotalChange)
	}
	// Healthcare never traded: all zero
	if hc := rows[1]; hc.TotalEnd != 0 {
		t.Errorf("Healthcare total = %v, want 0", hc.TotalEnd)
	}
}
