package drift

import (
	"slices"

	"github.com/smicfund/drift/date"
)

// PriceTable holds the adjusted close price history of every ticker the
// analysis touches, resolved onto a business-day grid.
//
// Storage is sparse: each ticker keeps only the days it actually traded
// on, and lookups forward-fill, so a price set on day d answers for any
// later day until the next quote. That matches a dense business-day
// table that was forward-filled, without the dense writes.
type PriceTable struct {
	days   []date.Date // the business-day grid, ascending
	series map[string]*date.History[float64]
}

// NewPriceTable creates an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{series: make(map[string]*date.History[float64])}
}

// Add records an adjusted close for a ticker on a day. Non-positive
// prices are ignored: a zero or negative close is bad data, not a quote.
func (p *PriceTable) Add(ticker string, on date.Date, price float64) {
	if price <= 0 {
		return
	}
	h, ok := p.series[ticker]
	if !ok {
		h = &date.History[float64]{}
		p.series[ticker] = h
	}
	h.Append(on, price)
	p.days = nil // invalidate the grid
}

// Has reports whether the table has any price for the ticker.
func (p *PriceTable) Has(ticker string) bool {
	h, ok := p.series[ticker]
	return ok && h.Len() > 0
}

// Tickers returns all tickers present in the table, sorted.
func (p *PriceTable) Tickers() []string {
	tickers := make([]string, 0, len(p.series))
	for t, h := range p.series {
		if h.Len() > 0 {
			tickers = append(tickers, t)
		}
	}
	slices.Sort(tickers)
	return tickers
}

// IsEmpty reports whether the table holds no price at all.
func (p *PriceTable) IsEmpty() bool { return len(p.Tickers()) == 0 }

// Days returns the business-day grid spanning from the earliest to the
// latest quote in the table. The grid is computed once and cached until
// the table changes.
func (p *PriceTable) Days() []date.Date {
	if p.days != nil {
		return p.days
	}
	var from, to date.Date
	for _, h := range p.series {
		if h.Len() == 0 {
			continue
		}
		first, _ := h.First()
		last, _ := h.Latest()
		if from.IsZero() || first.Before(from) {
			from = first
		}
		if to.IsZero() || last.After(to) {
			to = last
		}
	}
	if from.IsZero() {
		return nil
	}
	for on := range date.BusinessDays(from, to) {
		p.days = append(p.days, on)
	}
	return p.days
}

// Price returns the forward-filled price of a ticker on a day: the
// quote of that day, or the most recent one before it. It returns false
// when the ticker is unknown or has no quote on or before the day.
func (p *PriceTable) Price(ticker string, on date.Date) (float64, bool) {
	h, ok := p.series[ticker]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(on)
}

// NearestTradingDay resolves an arbitrary calendar date to the closest
// day of the grid, in either direction. Ties go to the later day.
func (p *PriceTable) NearestTradingDay(on date.Date) (date.Date, bool) {
	days := p.Days()
	if len(days) == 0 {
		return date.Date{}, false
	}
	i, found := slices.BinarySearchFunc(days, on, date.Date.Compare)
	if found {
		return days[i], true
	}
	if i == 0 {
		return days[0], true
	}
	if i == len(days) {
		return days[len(days)-1], true
	}
	before, after := days[i-1], days[i]
	if on.Sub(before) < after.Sub(on) {
		return before, true
	}
	return after, true
}

// Truncate returns a view of the table whose grid starts at 'from'.
// The receiver is left untouched, so one table can back several
// analyses with different start days. Per-ticker histories are shared
// whole with the view: forward-fill can still reach back to a quote set
// before the analysis start.
func (p *PriceTable) Truncate(from date.Date) *PriceTable {
	days := p.Days()
	i, _ := slices.BinarySearchFunc(days, from, date.Date.Compare)
	return &PriceTable{days: days[i:], series: p.series}
}
