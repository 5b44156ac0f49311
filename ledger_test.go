package drift

import (
	"testing"
)

func TestLedger_AppendKeepsChronology(t *testing.T) {
	l := L(
		TX("Technology", "AAPL", "2024-09-01", 2000),
		TX("Technology", "VGT", "2024-08-27", 10000),
	)
	var dates []string
	for tx := range l.Transactions() {
		dates = append(dates, tx.Date.String())
	}
	if dates[0] != "2024-08-27" || dates[1] != "2024-09-01" {
		t.Errorf("Transactions() order = %v, want chronological", dates)
	}
	if got, want := l.StartDate(), D("2024-08-27"); got != want {
		t.Errorf("StartDate() = %v, want %v", got, want)
	}
}

func TestLedger_AppendStableForSameDay(t *testing.T) {
	l := L(
		TX("Technology", "VGT", "2024-08-27", 10000),
		TX("Healthcare", "VHT", "2024-08-27", 5000),
		TX("Energy", "VDE", "2024-08-27", 3000),
	)
	var tickers []string
	for tx := range l.Transactions() {
		tickers = append(tickers, tx.Ticker)
	}
	want := []string{"VGT", "VHT", "VDE"}
	for i := range want {
		if tickers[i] != want[i] {
			t.Errorf("Transactions()[%d] = %s, want %s (ingestion order)", i, tickers[i], want[i])
		}
	}
}

func TestLedger_CashBalance(t *testing.T) {
	l := L(
		TX("Cash", "CASH", "2024-08-27", 5000),
		TX("Cash", "CASH", "2024-09-15", 1500),
		TX("Technology", "VGT", "2024-08-27", 10000),
	)
	if got, want := l.CashBalance("Cash"), 6500.0; got != want {
		t.Errorf("CashBalance() = %v, want %v", got, want)
	}
}

func TestLedger_Tickers(t *testing.T) {
	l := L(
		TX("Cash", "CASH", "2024-08-27", 5000),
		TX("Technology", "VGT", "2024-08-27", 10000),
		TX("Technology", "AAPL", "2024-09-01", 2000),
		TX("Technology", "AAPL", "2024-09-15", 1000),
	)
	got := l.Tickers()
	want := []string{"VGT", "AAPL"}
	if len(got) != len(want) {
		t.Fatalf("Tickers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tickers()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLedger_SectorTickers(t *testing.T) {
	l := L(
		TX("Technology", "VGT", "2024-08-27", 10000),
		TX("Technology", "AAPL", "2024-09-01", 2000),
		TX("Healthcare", "VHT", "2024-08-27", 5000),
	)
	got := l.SectorTickers("Technology")
	if len(got) != 2 || got[0] != "VGT" || got[1] != "AAPL" {
		t.Errorf("SectorTickers() = %v, want [VGT AAPL]", got)
	}
}

func TestTransaction_IsFixedIncome(t *testing.T) {
	if !TX("Fixed_Income", "BND", "2024-08-27", 1000).IsFixedIncome() {
		t.Error("underscore spelling should be fixed income")
	}
	if !TX("Fixed Income", "BND", "2024-08-27", 1000).IsFixedIncome() {
		t.Error("space spelling should be fixed income")
	}
	if TX("Technology", "VGT", "2024-08-27", 1000).IsFixedIncome() {
		t.Error("Technology should not be fixed income")
	}
}
