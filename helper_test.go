package drift

import (
	"github.com/shopspring/decimal"
	"github.com/smicfund/drift/date"
)

// D is a helper for tests to parse a date from a literal.
func D(s string) date.Date { return date.MustParse(s) }

// TX is a helper for tests to build a buy transaction.
func TX(sector, ticker, on string, amount float64) Transaction {
	return Transaction{
		Sector: sector,
		Ticker: ticker,
		Date:   D(on),
		Amount: decimal.NewFromFloat(amount),
	}
}

// TXS is like TX with an explicit share count.
func TXS(sector, ticker, on string, amount, shares float64) Transaction {
	tx := TX(sector, ticker, on, amount)
	tx.Shares = decimal.NewFromFloat(shares)
	return tx
}

// L builds a ledger from transactions.
func L(txs ...Transaction) *Ledger {
	l := NewLedger()
	l.Append(txs...)
	return l
}

// flatPrices builds a price table where each ticker holds a constant
// price on every business day from 'from' to 'to' inclusive.
func flatPrices(from, to string, prices map[string]float64) *PriceTable {
	table := NewPriceTable()
	for on := range date.BusinessDays(D(from), D(to)) {
		for ticker, price := range prices {
			table.Add(ticker, on, price)
		}
	}
	return table
}

// techRegistry is a minimal registry for single-sector tests.
func techRegistry() *Registry {
	return NewRegistry("^GSPC", [2]string{"Technology", "VGT"})
}

// approx reports whether two floats agree within tolerance.
func approx(a, b, tol float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}
