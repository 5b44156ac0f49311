package drift

import (
	"testing"
)

func TestPriceTable_ForwardFill(t *testing.T) {
	table := NewPriceTable()
	table.Add("VGT", D("2024-08-27"), 500)
	table.Add("VGT", D("2024-08-30"), 510)

	// a quoted day
	if price, ok := table.Price("VGT", D("2024-08-27")); !ok || price != 500 {
		t.Errorf("Price() = %v, %v; want 500, true", price, ok)
	}
	// a gap day forward-fills from the previous quote
	if price, ok := table.Price("VGT", D("2024-08-29")); !ok || price != 500 {
		t.Errorf("Price() on gap = %v, %v; want 500, true", price, ok)
	}
	// before the first quote there is nothing to fill from
	if _, ok := table.Price("VGT", D("2024-08-26")); ok {
		t.Error("Price() before first quote should be missing")
	}
	if _, ok := table.Price("MISSING", D("2024-08-27")); ok {
		t.Error("Price() for unknown ticker should be missing")
	}
}

func TestPriceTable_AddRejectsNonPositive(t *testing.T) {
	table := NewPriceTable()
	table.Add("VGT", D("2024-08-27"), 0)
	table.Add("VGT", D("2024-08-27"), -3)
	if table.Has("VGT") {
		t.Error("non-positive prices should not be recorded")
	}
}

func TestPriceTable_DaysAreBusinessDays(t *testing.T) {
	table := NewPriceTable()
	table.Add("VGT", D("2024-08-30"), 500) // Friday
	table.Add("VGT", D("2024-09-03"), 505) // Tuesday

	days := table.Days()
	want := []string{"2024-08-30", "2024-09-02", "2024-09-03"}
	if len(days) != len(want) {
		t.Fatalf("Days() = %v, want %v", days, want)
	}
	for i, on := range days {
		if on.String() != want[i] {
			t.Errorf("Days()[%d] = %v, want %v", i, on, want[i])
		}
	}
}

func TestPriceTable_NearestTradingDay(t *testing.T) {
	table := NewPriceTable()
	table.Add("VGT", D("2024-08-27"), 500) // Tuesday
	table.Add("VGT", D("2024-09-06"), 505) // Friday

	tests := []struct {
		in   string
		want string
	}{
		{"2024-08-27", "2024-08-27"}, // exact
		{"2024-08-31", "2024-08-30"}, // Saturday resolves back to Friday
		{"2024-09-01", "2024-09-02"}, // Sunday resolves forward to Monday
		{"2024-08-20", "2024-08-27"}, // before range clamps to first
		{"2024-09-20", "2024-09-06"}, // after range clamps to last
	}
	for _, tt := range tests {
		got, ok := table.NearestTradingDay(D(tt.in))
		if !ok || got.String() != tt.want {
			t.Errorf("NearestTradingDay(%s) = %v, %v; want %s", tt.in, got, ok, tt.want)
		}
	}
}

func TestPriceTable_Truncate(t *testing.T) {
	table := NewPriceTable()
	table.Add("VGT", D("2024-08-26"), 495)
	table.Add("VGT", D("2024-09-06"), 505)

	view := table.Truncate(D("2024-08-28"))
	days := view.Days()
	if days[0].String() != "2024-08-28" {
		t.Errorf("Days()[0] after Truncate = %v, want 2024-08-28", days[0])
	}
	// forward-fill still reaches the quote before the cut
	if price, ok := view.Price("VGT", D("2024-08-28")); !ok || price != 495 {
		t.Errorf("Price() after Truncate = %v, %v; want 495, true", price, ok)
	}
	// the receiver keeps its full grid
	if got := table.Days()[0]; got.String() != "2024-08-26" {
		t.Errorf("Days()[0] on the original = %v, want 2024-08-26", got)
	}
}
