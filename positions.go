package drift

import (
	"fmt"
	"slices"

	"github.com/smicfund/drift/date"
)

// UnitsMatrix is the reconstructed holding: for every ticker, the unit
// count held on every day of the analysis range.
//
// Holdings are step functions: a balance set on day d persists until
// the next transaction touches the ticker. The matrix stores only the
// steps; Units forward-fills, and days before the first step are zero.
// A fund ticker's balance may go negative, representing the portion of
// the tracked fund position sold off to fund stock purchases.
type UnitsMatrix struct {
	balances map[string]*date.History[float64]
}

// Units returns the unit count held on a day. Days before the first
// event for the ticker, and unknown tickers, hold zero.
func (u *UnitsMatrix) Units(ticker string, on date.Date) float64 {
	h, ok := u.balances[ticker]
	if !ok {
		return 0
	}
	units, _ := h.ValueAsOf(on)
	return units
}

// Tickers returns every ticker with at least one holding event, sorted.
// The order fixes the float summation order in valuation, keeping runs
// on identical inputs bit-identical.
func (u *UnitsMatrix) Tickers() []string {
	tickers := make([]string, 0, len(u.balances))
	for t := range u.balances {
		tickers = append(tickers, t)
	}
	slices.Sort(tickers)
	return tickers
}

// Skip records one transaction the reconstruction could not apply, or
// could only partially apply. Skips are diagnostics, not errors: the
// run continues without the transaction.
type Skip struct {
	Tx     Transaction
	Reason string
}

func (s Skip) String() string { return fmt.Sprintf("%s: %s", s.Tx, s.Reason) }

// positionBuilder accumulates per-ticker unit deltas while replaying
// the ledger, then seals them into running balances.
type positionBuilder struct {
	deltas  map[string]*date.History[float64]
	skipped []Skip
}

func (b *positionBuilder) add(ticker string, on date.Date, units float64) {
	h, ok := b.deltas[ticker]
	if !ok {
		h = &date.History[float64]{}
		b.deltas[ticker] = h
	}
	h.AppendAdd(on, units)
}

func (b *positionBuilder) skip(tx Transaction, format string, args ...any) {
	b.skipped = append(b.skipped, Skip{Tx: tx, Reason: fmt.Sprintf(format, args...)})
}

// seal converts the dated deltas into running balances: each ticker's
// events are replayed in order, accumulating into the step series the
// matrix serves lookups from.
func (b *positionBuilder) seal() *UnitsMatrix {
	matrix := &UnitsMatrix{balances: make(map[string]*date.History[float64], len(b.deltas))}
	for ticker, deltas := range b.deltas {
		balance := &date.History[float64]{}
		run := 0.0
		for on, delta := range deltas.Values() {
			run += delta
			balance.Append(on, run)
		}
		matrix.balances[ticker] = balance
	}
	return matrix
}

// BuildPositions replays the ledger against the price table and
// produces the units matrix, applying the swap rule for individual
// stock purchases. The price table must already be truncated to the
// analysis start.
//
// Each transaction's date is resolved to the nearest trading day. Cash
// rows, rows without a positive amount, and rows whose ticker has no
// price data are skipped. A fund or fixed-income purchase adds units of
// that ticker. An individual stock purchase adds units of the stock and
// removes the same dollar amount, at that day's fund price, from the
// sector's fund position: the swap is self-funding, no external cash
// moves. When the fund price on the day is missing or non-positive only
// the sale leg is dropped, the stock purchase still applies.
func BuildPositions(ledger *Ledger, prices *PriceTable, registry *Registry, cashSector string) (*UnitsMatrix, []Skip) {
	b := &positionBuilder{deltas: make(map[string]*date.History[float64])}

	for tx := range ledger.Transactions() {
		if tx.IsCash(cashSector) {
			continue // cash is a static balance, it never buys units
		}
		if !tx.Amount.IsPositive() {
			b.skip(tx, "amount invested is missing or not positive")
			continue
		}
		if !prices.Has(tx.Ticker) {
			b.skip(tx, "ticker %q has no price data", tx.Ticker)
			continue
		}
		on, ok := prices.NearestTradingDay(tx.Date)
		if !ok {
			b.skip(tx, "no trading day available")
			continue
		}

		amount := tx.Amount.InexactFloat64()
		shares := tx.Shares.InexactFloat64()

		// Fund or fixed-income purchase: units accrue directly.
		if registry.IsFund(tx.Ticker) || tx.IsFixedIncome() {
			if shares > 0 {
				b.add(tx.Ticker, on, shares)
				continue
			}
			price, ok := prices.Price(tx.Ticker, on)
			if !ok || price <= 0 {
				b.skip(tx, "no usable price for %q on %s", tx.Ticker, on)
				continue
			}
			b.add(tx.Ticker, on, amount/price)
			continue
		}

		// Individual stock purchase: a swap funded by selling the
		// sector's fund.
		_, fund, ok := registry.Resolve(tx.Sector)
		if !ok {
			b.skip(tx, "sector %q does not resolve to a registered fund", tx.Sector)
			continue
		}
		if !prices.Has(fund) {
			b.skip(tx, "fund %q has no price data", fund)
			continue
		}

		if shares > 0 {
			b.add(tx.Ticker, on, shares)
		} else {
			price, ok := prices.Price(tx.Ticker, on)
			if !ok || price <= 0 {
				b.skip(tx, "no usable price for %q on %s", tx.Ticker, on)
				continue
			}
			b.add(tx.Ticker, on, amount/price)
		}

		fundPrice, ok := prices.Price(fund, on)
		if !ok || fundPrice <= 0 {
			// The stock leg stays applied. Dropping only the sale leg
			// creates value from nothing; it is surfaced rather than
			// silently corrected.
			b.skip(tx, "fund %q has no usable price on %s, sale leg dropped", fund, on)
			continue
		}
		b.add(fund, on, -amount/fundPrice)
	}

	return b.seal(), b.skipped
}
