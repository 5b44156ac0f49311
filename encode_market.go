package drift

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/smicfund/drift/date"
)

// Price data persists as a JSONL file, one ticker per line, each line a
// single object with the ticker and its dated history. The format is
// human readable and merges well in git.

// jticker is one line of the price file.
type jticker struct {
	Ticker  string             `json:"ticker"`
	History map[string]float64 `json:"history"`
}

// DecodePriceTable reads price histories from JSONL data.
func DecodePriceTable(r io.Reader) (*PriceTable, error) {
	table := NewPriceTable()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jt jticker
		if err := json.Unmarshal(line, &jt); err != nil {
			return nil, fmt.Errorf("cannot parse price line %q: %w", string(line), err)
		}
		for day, price := range jt.History {
			on, err := date.Parse(day)
			if err != nil {
				return nil, fmt.Errorf("ticker %q: %w", jt.Ticker, err)
			}
			table.Add(jt.Ticker, on, price)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// EncodePriceTable writes the table as JSONL, tickers in alphabetical
// order and history keys sorted, so the output is reproducible.
func EncodePriceTable(w io.Writer, p *PriceTable) error {
	for _, ticker := range p.Tickers() {
		history := make(map[string]float64)
		for on, price := range p.series[ticker].Values() {
			history[on.String()] = price
		}
		line, err := json.Marshal(orderedTicker{Ticker: ticker, History: history})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// orderedTicker marshals its history with sorted keys.
type orderedTicker struct {
	Ticker  string
	History map[string]float64
}

func (t orderedTicker) MarshalJSON() ([]byte, error) {
	days := make([]string, 0, len(t.History))
	for day := range t.History {
		days = append(days, day)
	}
	sort.Strings(days)

	var b strings.Builder
	b.WriteString(`{"ticker":`)
	ticker, _ := json.Marshal(t.Ticker)
	b.Write(ticker)
	b.WriteString(`,"history":{`)
	for i, day := range days {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%q:%s", day, strconv.FormatFloat(t.History[day], 'f', -1, 64))
	}
	b.WriteString("}}")
	return []byte(b.String()), nil
}

// DecodePriceCSV reads price histories from long-form CSV with columns
// {date,ticker,adj_close}, the shape price exports commonly come in.
func DecodePriceCSV(r io.Reader) (*PriceTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("price table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read price header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"date", "ticker", "adj_close"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("price table is missing required column %q", name)
		}
	}

	table := NewPriceTable()
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("cannot read price line %d: %w", line, err)
		}
		on, err := date.Parse(strings.TrimSpace(record[col["date"]]))
		if err != nil {
			return nil, fmt.Errorf("price line %d: %w", line, err)
		}
		raw := strings.TrimSpace(record[col["adj_close"]])
		if raw == "" {
			continue // genuinely missing quote
		}
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("price line %d: invalid adj_close %q: %w", line, raw, err)
		}
		table.Add(strings.TrimSpace(record[col["ticker"]]), on, price)
	}
	return table, nil
}
