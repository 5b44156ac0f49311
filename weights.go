package drift

import (
	"math"
	"sort"

	"github.com/smicfund/drift/date"
)

// FixedIncomeCategory is the weight category holding bond-like tickers.
const FixedIncomeCategory = "Fixed Income"

// CashCategory is the weight category of the static cash balance, and
// the default ledger sector marking cash rows.
const CashCategory = "Cash"

// WeightTable is a date-indexed table of category weights in percent:
// one row per trading day, one column per category. Rows sum to ~100.
type WeightTable struct {
	days       []date.Date
	categories []string
	cells      map[string][]float64 // per category, one value per day
}

// NewWeightTable creates a table over the given days with no columns.
func NewWeightTable(days []date.Date) *WeightTable {
	return &WeightTable{days: days, cells: make(map[string][]float64)}
}

// SetColumn adds or replaces a category column. The column must have
// one value per day of the table.
func (w *WeightTable) SetColumn(category string, values []float64) {
	if _, ok := w.cells[category]; !ok {
		w.categories = append(w.categories, category)
	}
	w.cells[category] = values
}

// Days returns the table's day axis.
func (w *WeightTable) Days() []date.Date { return w.days }

// Categories returns the column names in their current order.
func (w *WeightTable) Categories() []string { return w.categories }

// Column returns the category's weight series, or nil if absent.
func (w *WeightTable) Column(category string) []float64 { return w.cells[category] }

// At returns the weight of a category on the i-th day.
func (w *WeightTable) At(category string, i int) float64 {
	col, ok := w.cells[category]
	if !ok || i < 0 || i >= len(col) {
		return 0
	}
	return col[i]
}

// First returns the first-day weight of a category.
func (w *WeightTable) First(category string) float64 { return w.At(category, 0) }

// Last returns the final-day weight of a category.
func (w *WeightTable) Last(category string) float64 { return w.At(category, len(w.days)-1) }

// RowSum returns the sum of all category weights on the i-th day.
func (w *WeightTable) RowSum(i int) float64 {
	var sum float64
	for _, category := range w.categories {
		sum += w.At(category, i)
	}
	return sum
}

// SortColumns orders the columns for reporting: equity sectors by
// descending final-day weight, then Fixed Income, then Cash always
// last regardless of its numeric weight.
func (w *WeightTable) SortColumns() {
	var equity, tail []string
	for _, category := range w.categories {
		switch category {
		case FixedIncomeCategory, CashCategory:
		default:
			equity = append(equity, category)
		}
	}
	sort.SliceStable(equity, func(i, j int) bool {
		return w.Last(equity[i]) > w.Last(equity[j])
	})
	if _, ok := w.cells[FixedIncomeCategory]; ok {
		tail = append(tail, FixedIncomeCategory)
	}
	if _, ok := w.cells[CashCategory]; ok {
		tail = append(tail, CashCategory)
	}
	w.categories = append(equity, tail...)
}

// Normalize rescales every row to sum to exactly 100, but only when the
// final day's row sum has drifted more than one percentage point from
// 100. The trigger is global on purpose: intermediate days may sum
// slightly off 100 without correction.
func (w *WeightTable) Normalize() {
	last := len(w.days) - 1
	if last < 0 {
		return
	}
	if math.Abs(w.RowSum(last)-100) <= 1 {
		return
	}
	for i := range w.days {
		sum := w.RowSum(i)
		if sum == 0 {
			continue
		}
		for _, category := range w.categories {
			w.cells[category][i] = w.cells[category][i] / sum * 100
		}
	}
}

// DriftNoiseFloor is the maximum absolute drift, in percentage points,
// below which a category is left out of drift reporting.
const DriftNoiseFloor = 0.5

// Drift returns a table of each category's weight change from day 0.
// Categories whose drift never exceeds the noise floor in either
// direction are excluded.
func (w *WeightTable) Drift() *WeightTable {
	drift := NewWeightTable(w.days)
	for _, category := range w.categories {
		col := w.cells[category]
		if len(col) == 0 {
			continue
		}
		initial := col[0]
		changes := make([]float64, len(col))
		maxAbs := 0.0
		for i, v := range col {
			changes[i] = v - initial
			if a := math.Abs(changes[i]); a > maxAbs {
				maxAbs = a
			}
		}
		if maxAbs <= DriftNoiseFloor {
			continue
		}
		drift.SetColumn(category, changes)
	}
	return drift
}
