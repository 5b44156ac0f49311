package drift

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smicfund/drift/date"
)

// CashTicker is the pseudo-ticker marking a cash deposit row.
const CashTicker = "CASH"

// Transaction is a single buy recorded in the ledger. It is immutable
// once ingested.
//
// Amount is the dollar amount invested. Shares is optional: when
// positive it is the exact unit count bought, otherwise units are
// derived from Amount and the price on the resolved trading day.
type Transaction struct {
	Sector string
	Ticker string
	Date   date.Date
	Amount decimal.Decimal
	Shares decimal.Decimal
}

// IsCash reports whether the transaction contributes to the static cash
// balance instead of the units matrix.
func (t Transaction) IsCash(cashSector string) bool {
	return t.Sector == cashSector || t.Ticker == CashTicker
}

// IsFixedIncome reports whether the transaction is tagged with the
// fixed-income sector (underscore and space spellings both accepted).
func (t Transaction) IsFixedIncome() bool {
	return normalizeSector(t.Sector) == FixedIncomeCategory
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s $%s", t.Date, t.Sector, t.Ticker, t.Amount)
}

// normalizeSector maps underscore spellings ("Fixed_Income",
// "Real_Estate") to their space-separated form.
func normalizeSector(sector string) string {
	return strings.ReplaceAll(sector, "_", " ")
}

// Ledger is the ordered record of all buy transactions.
//
// Transactions are kept in chronological order; same-day transactions
// keep their ingestion order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append adds transactions to the ledger, keeping it sorted by date.
// The sort is stable: rows sharing a date stay in ingestion order.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// StartDate returns the earliest transaction date, or the zero date for
// an empty ledger.
func (l *Ledger) StartDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].Date
}

// Tickers returns every distinct non-cash ticker referenced by the
// ledger, in first-seen order.
func (l *Ledger) Tickers() []string {
	var tickers []string
	for _, tx := range l.transactions {
		if tx.Ticker == CashTicker {
			continue
		}
		if !slices.Contains(tickers, tx.Ticker) {
			tickers = append(tickers, tx.Ticker)
		}
	}
	return tickers
}

// SectorTickers returns the distinct tickers ledger-tagged to the given
// sector, in first-seen order.
func (l *Ledger) SectorTickers(sector string) []string {
	var tickers []string
	for _, tx := range l.transactions {
		if tx.Sector != sector {
			continue
		}
		if !slices.Contains(tickers, tx.Ticker) {
			tickers = append(tickers, tx.Ticker)
		}
	}
	return tickers
}

// FixedIncomeTickers returns the distinct tickers tagged fixed income.
func (l *Ledger) FixedIncomeTickers() []string {
	var tickers []string
	for _, tx := range l.transactions {
		if !tx.IsFixedIncome() {
			continue
		}
		if !slices.Contains(tickers, tx.Ticker) {
			tickers = append(tickers, tx.Ticker)
		}
	}
	return tickers
}

// CashBalance returns the static cash balance: the sum of all amounts
// recorded under the cash sector. Cash never buys units, so the balance
// is constant over the whole analysis range.
func (l *Ledger) CashBalance(cashSector string) float64 {
	total := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Sector == cashSector {
			total = total.Add(tx.Amount)
		}
	}
	return total.InexactFloat64()
}
