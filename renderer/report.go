// Package renderer turns analysis results into markdown and CSV
// reports. It never computes; every figure is taken from the analysis
// and only formatted here.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/smicfund/drift"
)

// ReportMarkdown renders the full analysis report: the summary
// statistics, the benchmark comparison, the drawdown section and the
// fund-vs-stock breakdown, followed by any skipped transactions.
func ReportMarkdown(a *drift.Analysis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Drift Report %s to %s", a.Range.From, a.Range.To))

	s := a.Stats
	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Period", fmt.Sprintf("%d days (%.1f months)", s.Days, s.Months)},
			{"Initial Value", drift.USD(s.Initial).String()},
			{"Final Value", drift.USD(s.Final).String()},
			{"Change", drift.USD(s.AbsoluteChange).SignedString()},
			{"Total Return", s.TotalReturn.SignedString()},
			{"Cash Balance", drift.USD(a.Cash).String()},
		},
	})

	doc.H2("Performance vs Benchmark")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Metric", "Portfolio", "Benchmark"},
		Rows: [][]string{
			{"Total Return", s.TotalReturn.SignedString(), s.BenchmarkTotalReturn.SignedString()},
			{"CAGR", s.CAGR.SignedString(), s.BenchmarkCAGR.SignedString()},
		},
	})
	doc.PlainText(fmt.Sprintf("Annualized outperformance: %s", s.Outperformance.SignedString()))

	doc.H2("Drawdown")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Max Drawdown", s.MaxDrawdown.String()},
			{"Peak", fmt.Sprintf("%s on %s", drift.USD(s.Peak), s.PeakDate)},
			{"Trough", fmt.Sprintf("%s on %s", drift.USD(s.Trough), s.TroughDate)},
		},
	})

	doc.H2("Sector Weights")
	weightsTable(doc, a.Weights, false)

	if len(a.Drift.Categories()) > 0 {
		doc.H2("Weight Drift")
		weightsTable(doc, a.Drift, true)
	}

	doc.H2("Fund vs Stock Breakdown")
	breakdownTable(doc, a.Breakdown)

	if len(a.Skipped) > 0 {
		doc.H2("Skipped Transactions")
		items := make([]string, 0, len(a.Skipped))
		for _, skip := range a.Skipped {
			items = append(items, skip.String())
		}
		doc.BulletList(items...)
	}

	return doc.String()
}
