package cashflow

import (
	"maps"
	"slices"

	"github.com/etnz/cashflow/date"
	"github.com/shopspring/decimal"
)

// movingWindow is the number of months in the spending moving average.
const movingWindow = 3

// TrendPoint is the spending of one month compared to the previous one.
type TrendPoint struct {
	Month    date.Range
	Spending Money
	// Change and ChangePct are nil for the first month, ChangePct is also nil
	// when the previous month had no spending.
	Change    *Money
	ChangePct *float64
	MovingAvg Money // average over the last three months, or fewer at the start
}

func (p TrendPoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("month", p.Month.Identifier())
	w.Append("spending", p.Spending)
	w.Append("change", p.Change)
	w.Append("change_pct", p.ChangePct)
	w.Append("moving_avg_3m", p.MovingAvg)
	return w.MarshalJSON()
}

// monthlySpending returns the absolute spending per month, for months with spending.
func monthlySpending(txs Transactions) []PeriodSummary {
	return Summarize(txs.Spending(), date.Monthly)
}

// Trends computes the month over month spending evolution.
func Trends(txs Transactions) []TrendPoint {
	months := monthlySpending(txs)
	res := make([]TrendPoint, 0, len(months))
	for i, m := range months {
		p := TrendPoint{Month: m.Range, Spending: m.Spending}
		if i > 0 {
			prev := months[i-1].Spending
			change := m.Spending.Sub(prev)
			p.Change = &change
			if !prev.IsZero() {
				pct := change.Decimal().Div(prev.Decimal()).Shift(2).InexactFloat64()
				p.ChangePct = &pct
			}
		}
		window := months[max(0, i-movingWindow+1) : i+1]
		sum := M(0, ReportingCurrency)
		for _, w := range window {
			sum = sum.Add(w.Spending)
		}
		p.MovingAvg = sum.DivInt(len(window))
		res = append(res, p)
	}
	return res
}

// CategoryTrend is the monthly spending of the top categories.
type CategoryTrend struct {
	Categories []string // sorted by name
	Rows       []CategoryTrendRow
}

// CategoryTrendRow is one month of a CategoryTrend.
type CategoryTrendRow struct {
	Month  date.Range
	Totals map[string]Money // absolute spending, zero when a category has none
}

func (r CategoryTrendRow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("year_month", r.Month.Identifier())
	for _, c := range slices.Sorted(maps.Keys(r.Totals)) {
		w.Append(c, r.Totals[c])
	}
	return w.MarshalJSON()
}

func (t CategoryTrend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("categories", t.Categories)
	w.Append("rows", t.Rows)
	return w.MarshalJSON()
}

// Series returns the monthly values of a category, one per row.
func (t CategoryTrend) Series(category string) []float64 {
	res := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		res[i] = r.Totals[category].Float()
	}
	return res
}

// Labels returns the month identifiers of the rows.
func (t CategoryTrend) Labels() []string {
	res := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		res[i] = r.Month.Identifier()
	}
	return res
}

// CategoryTrends pivots the monthly spending of the n largest spending categories.
func CategoryTrends(txs Transactions, n int) CategoryTrend {
	top := Categories(txs)
	if len(top) > n {
		top = top[:n]
	}
	names := make([]string, len(top))
	for i, c := range top {
		names[i] = c.Category
	}
	slices.Sort(names)

	spending := txs.Spending().Filter(func(tx Transaction) bool { return slices.Contains(names, tx.Category) })
	sums := make(map[date.Date]map[string]decimal.Decimal)
	for _, tx := range spending {
		start := tx.Date.StartOf(date.Monthly)
		if sums[start] == nil {
			sums[start] = make(map[string]decimal.Decimal)
		}
		sums[start][tx.Category] = sums[start][tx.Category].Add(tx.Amount.Decimal())
	}

	res := CategoryTrend{Categories: names}
	for _, start := range slices.SortedFunc(maps.Keys(sums), date.Date.Compare) {
		row := CategoryTrendRow{Month: date.NewRange(start, date.Monthly), Totals: make(map[string]Money, len(names))}
		for _, name := range names {
			row.Totals[name] = M(sums[start][name].Abs(), ReportingCurrency)
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}
