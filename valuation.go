package drift

import (
	"fmt"
	"math"
	"slices"

	"github.com/smicfund/drift/date"
)

// Valuation is the daily value and composition of the portfolio over
// the analysis range.
type Valuation struct {
	Values           *date.History[float64] // portfolio value, cash included
	Benchmark        *date.History[float64] // benchmark rescaled to the same starting capital
	Returns          *date.History[float64] // cumulative return in percent
	BenchmarkReturns *date.History[float64]
	Weights          *WeightTable // per category weight in percent
	FundStock        *WeightTable // per sector, fund portion vs individual stock portion
	Cash             float64      // the static cash balance
}

// fundStockColumns names the decomposition columns of a sector.
func fundStockColumns(sector string) (fund, stocks string) {
	return sector + " ETF", sector + " Stocks"
}

// Valuate combines the units matrix with the price table into the
// portfolio value series, the rescaled benchmark, and the weight
// tables.
//
// A portfolio value of zero or less on any day is a data-integrity
// failure: weights are undefined there, so the whole run aborts.
// Per-day division issues inside weight columns (a missing price, an
// empty position) degrade to zero instead of propagating NaN.
func Valuate(units *UnitsMatrix, prices *PriceTable, ledger *Ledger, registry *Registry, benchmark, cashSector string) (*Valuation, error) {
	days := prices.Days()
	if len(days) == 0 {
		return nil, fmt.Errorf("price table has no trading days")
	}
	if !prices.Has(benchmark) {
		return nil, fmt.Errorf("benchmark ticker %q has no price data", benchmark)
	}

	v := &Valuation{
		Values:           &date.History[float64]{},
		Benchmark:        &date.History[float64]{},
		Returns:          &date.History[float64]{},
		BenchmarkReturns: &date.History[float64]{},
		Cash:             ledger.CashBalance(cashSector),
	}

	// marketValue is the value of one ticker's position on a day; zero
	// when the price is missing.
	marketValue := func(ticker string, on date.Date) float64 {
		held := units.Units(ticker, on)
		if held == 0 {
			return 0
		}
		price, ok := prices.Price(ticker, on)
		if !ok {
			return 0
		}
		return held * price
	}

	// Portfolio value: units times price summed across tickers, plus
	// the constant cash balance.
	tickers := units.Tickers()
	for _, on := range days {
		value := v.Cash
		for _, ticker := range tickers {
			value += marketValue(ticker, on)
		}
		if value <= 0 {
			return nil, fmt.Errorf("portfolio value is %.2f on %s, cannot compute weights", value, on)
		}
		v.Values.Append(on, value)
	}
	_, initial := v.Values.First()

	// Benchmark: the benchmark price series rescaled so its first-day
	// value equals the portfolio's, the same-starting-capital view.
	benchFirst, ok := prices.Price(benchmark, days[0])
	if !ok || benchFirst <= 0 {
		return nil, fmt.Errorf("benchmark ticker %q has no usable price on %s", benchmark, days[0])
	}
	for _, on := range days {
		price, ok := prices.Price(benchmark, on)
		if !ok {
			price = benchFirst
		}
		v.Benchmark.Append(on, price/benchFirst*initial)
	}

	// Cumulative returns for both series.
	for on, value := range v.Values.Values() {
		v.Returns.Append(on, (value/initial-1)*100)
	}
	for on, value := range v.Benchmark.Values() {
		v.BenchmarkReturns.Append(on, (value/initial-1)*100)
	}

	v.Weights = NewWeightTable(days)
	v.FundStock = NewWeightTable(days)

	portfolioAt := func(on date.Date) float64 {
		value, _ := v.Values.ValueAsOf(on)
		return value
	}

	// asWeight turns a market value into a percent of portfolio value,
	// degrading division trouble to zero.
	asWeight := func(value, portfolio float64) float64 {
		if portfolio == 0 {
			return 0
		}
		w := value / portfolio * 100
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return 0
		}
		return w
	}

	// Group individual stocks by their resolved sector, so variant
	// ledger spellings land in the same column the swap rule used.
	stocksBySector := make(map[string][]string)
	for tx := range ledger.Transactions() {
		if tx.Ticker == CashTicker || tx.IsFixedIncome() || registry.IsFund(tx.Ticker) {
			continue
		}
		matched, _, ok := registry.Resolve(tx.Sector)
		if !ok {
			continue
		}
		if !slices.Contains(stocksBySector[matched], tx.Ticker) {
			stocksBySector[matched] = append(stocksBySector[matched], tx.Ticker)
		}
	}

	// Per-sector weights: the fund's market value plus every individual
	// stock resolved to the sector. The decomposition keeps the two
	// portions apart for drift analysis.
	for _, sector := range registry.Sectors() {
		fund, _ := registry.Fund(sector)
		stocks := stocksBySector[sector]

		total := make([]float64, len(days))
		fundCol := make([]float64, len(days))
		stockCol := make([]float64, len(days))
		for i, on := range days {
			portfolio := portfolioAt(on)
			fundValue := marketValue(fund, on)
			stockValue := 0.0
			for _, ticker := range stocks {
				stockValue += marketValue(ticker, on)
			}
			fundCol[i] = asWeight(fundValue, portfolio)
			stockCol[i] = asWeight(stockValue, portfolio)
			total[i] = asWeight(fundValue+stockValue, portfolio)
		}
		v.Weights.SetColumn(sector, total)
		fundName, stockName := fundStockColumns(sector)
		v.FundStock.SetColumn(fundName, fundCol)
		v.FundStock.SetColumn(stockName, stockCol)
	}

	// Fixed income: every ticker tagged with the fixed-income sector.
	fiCol := make([]float64, len(days))
	for i, on := range days {
		portfolio := portfolioAt(on)
		value := 0.0
		for _, ticker := range ledger.FixedIncomeTickers() {
			value += marketValue(ticker, on)
		}
		fiCol[i] = asWeight(value, portfolio)
	}
	v.Weights.SetColumn(FixedIncomeCategory, fiCol)

	// Cash: fixed numerator over a moving denominator, so the weight
	// still changes daily.
	cashCol := make([]float64, len(days))
	for i, on := range days {
		cashCol[i] = asWeight(v.Cash, portfolioAt(on))
	}
	v.Weights.SetColumn(CashCategory, cashCol)

	v.Weights.SortColumns()
	v.Weights.Normalize()

	return v, nil
}
