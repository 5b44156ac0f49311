package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/smicfund/drift"
)

// maxWeightRows caps the number of daily rows rendered in a markdown
// weight table. Full tables go to CSV; markdown shows first, last and
// an evenly spaced sample in between.
const maxWeightRows = 20

// WeightsMarkdown renders a weight table under the given title. Signed
// controls whether cells carry an explicit sign, which drift tables do.
func WeightsMarkdown(title string, table *drift.WeightTable, signed bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)
	weightsTable(doc, table, signed)
	return doc.String()
}

// BreakdownMarkdown renders the per-sector fund-vs-stock decomposition.
func BreakdownMarkdown(rows []drift.SectorBreakdown) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Fund vs Stock Breakdown")
	breakdownTable(doc, rows)
	return doc.String()
}

func weightsTable(doc *md.Markdown, table *drift.WeightTable, signed bool) {
	categories := table.Categories()
	days := table.Days()
	if len(days) == 0 || len(categories) == 0 {
		doc.PlainText("No data.")
		return
	}

	header := append([]string{"Date"}, categories...)
	alignment := make([]md.TableAlignment, len(header))
	alignment[0] = md.AlignLeft
	for i := 1; i < len(alignment); i++ {
		alignment[i] = md.AlignRight
	}

	rows := [][]string{}
	for _, i := range sampleIndexes(len(days), maxWeightRows) {
		row := []string{days[i].String()}
		for _, category := range categories {
			row = append(row, formatPoint(table.At(category, i), signed))
		}
		rows = append(rows, row)
	}

	doc.Table(md.TableSet{Alignment: alignment, Header: header, Rows: rows})
}

func breakdownTable(doc *md.Markdown, rows []drift.SectorBreakdown) {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Sector", "Fund Start", "Fund End", "Fund Δ", "Stocks Start", "Stocks End", "Stocks Δ", "Total Δ"},
	}
	for _, row := range rows {
		if row.TotalStart == 0 && row.TotalEnd == 0 {
			continue
		}
		table.Rows = append(table.Rows, []string{
			row.Sector,
			formatPoint(row.FundStart, false),
			formatPoint(row.FundEnd, false),
			formatPoint(row.FundChange, true),
			formatPoint(row.StocksStart, false),
			formatPoint(row.StocksEnd, false),
			formatPoint(row.StocksChange, true),
			formatPoint(row.TotalChange, true),
		})
	}
	if len(table.Rows) == 0 {
		doc.PlainText("No sector activity.")
		return
	}
	doc.Table(table)
}

// formatPoint renders a weight in percentage points, rounded to two
// decimals at this boundary only.
func formatPoint(v float64, signed bool) string {
	if signed {
		return drift.Percent(v).SignedString()
	}
	return drift.Percent(v).String()
}

// sampleIndexes picks up to max evenly spaced indexes out of n, always
// including the first and last.
func sampleIndexes(n, max int) []int {
	if n <= max {
		indexes := make([]int, n)
		for i := range indexes {
			indexes[i] = i
		}
		return indexes
	}
	indexes := make([]int, 0, max)
	step := float64(n-1) / float64(max-1)
	prev := -1
	for i := 0; i < max; i++ {
		idx := int(float64(i)*step + 0.5)
		if idx == prev {
			continue
		}
		indexes = append(indexes, idx)
		prev = idx
	}
	if indexes[len(indexes)-1] != n-1 {
		indexes = append(indexes, n-1)
	}
	return indexes
}
