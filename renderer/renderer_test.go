package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smicfund/drift"
	"github.com/smicfund/drift/date"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func analysisFixture(t *testing.T) *drift.Analysis {
	t.Helper()
	prices := drift.NewPriceTable()
	for on := range date.BusinessDays(date.MustParse("2024-08-27"), date.MustParse("2024-09-10")) {
		prices.Add("VGT", on, 500)
		prices.Add("AAPL", on, 200)
		prices.Add("^GSPC", on, 5600)
	}
	ledger := &drift.Ledger{}
	ledger.Append(
		drift.Transaction{Sector: "Technology", Ticker: "VGT", Date: date.MustParse("2024-08-27"), Amount: dec(10000)},
		drift.Transaction{Sector: "Technology", Ticker: "AAPL", Date: date.MustParse("2024-09-02"), Amount: dec(2000)},
		drift.Transaction{Sector: "Cash", Ticker: drift.CashTicker, Date: date.MustParse("2024-08-27"), Amount: dec(1500)},
	)
	reg := drift.NewRegistry("^GSPC", [2]string{"Technology", "VGT"})
	a, err := drift.Analyze(ledger, prices, reg, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return a
}

func TestReportMarkdown(t *testing.T) {
	report := ReportMarkdown(analysisFixture(t))

	for _, want := range []string{
		"# Portfolio Drift Report 2024-08-27 to 2024-09-10",
		"## Summary",
		"## Performance vs Benchmark",
		"## Drawdown",
		"## Sector Weights",
		"## Fund vs Stock Breakdown",
		"$11,500.00", // final value: 10000 VGT + 1500 cash, flat prices
		"Technology",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("ReportMarkdown() missing %q\n%s", want, report)
		}
	}
	if strings.Contains(report, "Skipped Transactions") {
		t.Error("ReportMarkdown() rendered a skipped section for a clean run")
	}
}

func TestWeightsMarkdown(t *testing.T) {
	a := analysisFixture(t)
	out := WeightsMarkdown("Sector Weights", a.Weights, false)

	if !strings.Contains(out, "# Sector Weights") {
		t.Errorf("WeightsMarkdown() missing title:\n%s", out)
	}
	if !strings.Contains(out, "| Date") || !strings.Contains(out, "Technology") {
		t.Errorf("WeightsMarkdown() missing table header:\n%s", out)
	}
	if !strings.Contains(out, "2024-08-27") || !strings.Contains(out, "2024-09-10") {
		t.Errorf("WeightsMarkdown() must include the first and last day:\n%s", out)
	}
}

func TestWeightsCSV(t *testing.T) {
	a := analysisFixture(t)
	var buf bytes.Buffer
	if err := WeightsCSV(&buf, a.Weights); err != nil {
		t.Fatalf("WeightsCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got, want := len(lines), 1+len(a.Weights.Days()); got != want {
		t.Fatalf("WeightsCSV() wrote %d lines, want %d", got, want)
	}
	if got := lines[0]; !strings.HasPrefix(got, "date,") {
		t.Errorf("header = %q, want a date column first", got)
	}
}

func TestValuesCSV(t *testing.T) {
	a := analysisFixture(t)
	var buf bytes.Buffer
	if err := ValuesCSV(&buf, a.Values, a.Benchmark); err != nil {
		t.Fatalf("ValuesCSV() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "date,portfolio,benchmark\n") {
		t.Errorf("ValuesCSV() header = %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
}

func TestSummaryCSV(t *testing.T) {
	a := analysisFixture(t)
	var buf bytes.Buffer
	if err := SummaryCSV(&buf, a.Stats); err != nil {
		t.Fatalf("SummaryCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got := lines[0]; got != "metric,value" {
		t.Errorf("header = %q, want metric,value", got)
	}
	for _, want := range []string{
		"start,2024-08-27",
		"end,2024-09-10",
		"final_value,11500",
	} {
		if !strings.Contains(buf.String(), want+"\n") {
			t.Errorf("SummaryCSV() missing row %q:\n%s", want, buf.String())
		}
	}
}

func TestBreakdownCSV(t *testing.T) {
	a := analysisFixture(t)
	var buf bytes.Buffer
	if err := BreakdownCSV(&buf, a.Breakdown); err != nil {
		t.Fatalf("BreakdownCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got, want := len(lines), 1+len(a.Breakdown); got != want {
		t.Fatalf("BreakdownCSV() wrote %d lines, want %d", got, want)
	}
	if got := lines[0]; !strings.HasPrefix(got, "sector,fund_start,") {
		t.Errorf("header = %q, want sector and weight columns", got)
	}
	if !strings.HasPrefix(lines[1], "Technology,") {
		t.Errorf("row = %q, want the Technology sector", lines[1])
	}
}

func TestSampleIndexes(t *testing.T) {
	tests := []struct {
		n, max int
		want   int
	}{
		{5, 20, 5},
		{20, 20, 20},
		{250, 20, 20},
	}
	for _, tc := range tests {
		got := sampleIndexes(tc.n, tc.max)
		if len(got) != tc.want {
			t.Errorf("sampleIndexes(%d, %d) has %d indexes, want %d", tc.n, tc.max, len(got), tc.want)
		}
		if got[0] != 0 || got[len(got)-1] != tc.n-1 {
			t.Errorf("sampleIndexes(%d, %d) = %v, want first and last included", tc.n, tc.max, got)
		}
	}
}
