package drift

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smicfund/drift/date"
)

// The ledger lives in a CSV file, one buy per row. Required columns are
// sector, ticker, invest_date and amount_invested; shares is optional.
// Column order is free, extra columns are ignored.

var requiredColumns = []string{"sector", "ticker", "invest_date", "amount_invested"}

// DecodeLedger reads a ledger from CSV data. A missing required column
// or an empty ledger is a fatal ingestion error: no analysis can start
// from it.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("ledger is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("ledger is missing required columns: %s", strings.Join(missing, ", "))
	}
	sharesCol, hasShares := col["shares"]

	ledger := NewLedger()
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("cannot read ledger line %d: %w", line, err)
		}

		tx := Transaction{
			Sector: strings.TrimSpace(record[col["sector"]]),
			Ticker: strings.TrimSpace(record[col["ticker"]]),
		}
		tx.Date, err = date.Parse(strings.TrimSpace(record[col["invest_date"]]))
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}
		// A blank amount decodes to zero; whether that is acceptable is
		// decided per transaction by the reconstruction engine.
		tx.Amount, err = parseDecimal(record[col["amount_invested"]])
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: invalid amount_invested %q: %w", line, record[col["amount_invested"]], err)
		}
		if hasShares {
			tx.Shares, err = parseDecimal(record[sharesCol])
			if err != nil {
				return nil, fmt.Errorf("ledger line %d: invalid shares %q: %w", line, record[sharesCol], err)
			}
		}
		ledger.Append(tx)
	}

	if ledger.Len() == 0 {
		return nil, fmt.Errorf("ledger is empty")
	}
	return ledger, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// EncodeLedger writes the ledger back in canonical CSV form: sorted by
// date, all columns present, shares written only when set.
func EncodeLedger(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"sector", "ticker", "invest_date", "amount_invested", "shares"}); err != nil {
		return err
	}
	for tx := range l.Transactions() {
		shares := ""
		if !tx.Shares.IsZero() {
			shares = tx.Shares.String()
		}
		row := []string{tx.Sector, tx.Ticker, tx.Date.String(), tx.Amount.String(), shares}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
