package drift

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodePriceTable(t *testing.T) {
	in := `{"ticker":"VGT","history":{"2024-08-27":500.25,"2024-08-28":502}}
{"ticker":"^GSPC","history":{"2024-08-27":5625.8}}
`
	table, err := DecodePriceTable(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodePriceTable() error = %v", err)
	}
	if price, ok := table.Price("VGT", D("2024-08-28")); !ok || price != 502 {
		t.Errorf("Price(VGT) = %v, %v; want 502, true", price, ok)
	}
	if !table.Has("^GSPC") {
		t.Error("benchmark ticker missing after decode")
	}
}

func TestDecodePriceTable_BadLine(t *testing.T) {
	in := `{"ticker":"VGT","history":{"not-a-date":500}}`
	if _, err := DecodePriceTable(strings.NewReader(in)); err == nil {
		t.Error("DecodePriceTable() expected error for invalid date key")
	}
}

func TestEncodePriceTable_RoundTrip(t *testing.T) {
	table := NewPriceTable()
	table.Add("VGT", D("2024-08-27"), 500.25)
	table.Add("VGT", D("2024-08-28"), 502)
	table.Add("AAPL", D("2024-08-27"), 228.5)

	var buf bytes.Buffer
	if err := EncodePriceTable(&buf, table); err != nil {
		t.Fatalf("EncodePriceTable() error = %v", err)
	}
	// reproducible output: tickers alphabetical, days sorted
	first := strings.Split(buf.String(), "\n")[0]
	if !strings.Contains(first, `"ticker":"AAPL"`) {
		t.Errorf("first line = %q, want AAPL first", first)
	}

	decoded, err := DecodePriceTable(&buf)
	if err != nil {
		t.Fatalf("DecodePriceTable() error = %v", err)
	}
	if price, ok := decoded.Price("VGT", D("2024-08-27")); !ok || price != 500.25 {
		t.Errorf("round trip Price(VGT) = %v, %v; want 500.25, true", price, ok)
	}
}

func TestDecodePriceCSV(t *testing.T) {
	in := `date,ticker,adj_close
2024-08-27,VGT,500.25
2024-08-27,AAPL,228.5
2024-08-28,VGT,
2024-08-29,VGT,504
`
	table, err := DecodePriceCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodePriceCSV() error = %v", err)
	}
	if price, ok := table.Price("AAPL", D("2024-08-27")); !ok || price != 228.5 {
		t.Errorf("Price(AAPL) = %v, %v; want 228.5, true", price, ok)
	}
	// the blank quote forward-fills from the 27th
	if price, ok := table.Price("VGT", D("2024-08-28")); !ok || price != 500.25 {
		t.Errorf("Price(VGT) on blank = %v, %v; want 500.25, true", price, ok)
	}
}

func TestDecodePriceCSV_MissingColumn(t *testing.T) {
	in := "date,ticker\n2024-08-27,VGT\n"
	if _, err := DecodePriceCSV(strings.NewReader(in)); err == nil {
		t.Error("DecodePriceCSV() expected error for missing adj_close")
	}
}
