package cashflow

import (
	"cmp"
	"errors"
	"maps"
	"slices"

	"github.com/etnz/cashflow/date"
	"github.com/shopspring/decimal"
)

// ErrNoData is returned when an analysis needs at least one transaction.
var ErrNoData = errors.New("no data loaded")

// PeriodSummary holds the cash flow of a single period.
type PeriodSummary struct {
	Range    date.Range
	Spending Money // absolute value of the sum of outgoing transactions
	Income   Money
	Net      Money // Income - Spending
}

// Label is the period identifier: "2025-03-14", "2025-W11", "2025-03", "2025-Q1" or "2025".
func (s PeriodSummary) Label() string { return s.Range.Identifier() }

// periodKey returns the name of the json key for the period label.
func periodKey(r date.Range) string {
	p, _ := r.Period()
	switch p {
	case date.Weekly:
		return "week"
	case date.Monthly:
		return "month"
	case date.Quarterly:
		return "quarter"
	case date.Yearly:
		return "year"
	default:
		return "date"
	}
}

// MarshalJSON names the period key after the period: {"month": "2025-03", ...}.
// Years are written as numbers.
func (s PeriodSummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	k := periodKey(s.Range)
	if k == "year" {
		w.Append(k, s.Range.From.Year())
	} else {
		w.Append(k, s.Label())
	}
	w.Append("spending", s.Spending)
	w.Append("income", s.Income)
	w.Append("net", s.Net)
	return w.MarshalJSON()
}

// Summarize groups transactions by period. Only periods holding at least one
// transaction are returned, in chronological order.
func Summarize(txs Transactions, period date.Period) []PeriodSummary {
	byStart := make(map[date.Date]*PeriodSummary)
	spent := make(map[date.Date]Money)
	for _, tx := range txs {
		start := tx.Date.StartOf(period)
		s, ok := byStart[start]
		if !ok {
			zero := M(0, ReportingCurrency)
			s = &PeriodSummary{Range: date.NewRange(tx.Date, period), Spending: zero, Income: zero}
			byStart[start] = s
			spent[start] = zero
		}
		if tx.Income {
			s.Income = s.Income.Add(tx.Amount)
		} else {
			spent[start] = spent[start].Add(tx.Amount)
		}
	}

	starts := slices.SortedFunc(maps.Keys(byStart), date.Date.Compare)
	res := make([]PeriodSummary, 0, len(starts))
	for _, start := range starts {
		s := byStart[start]
		s.Spending = spent[start].Abs()
		s.Net = s.Income.Sub(s.Spending)
		res = append(res, *s)
	}
	return res
}

// CategoryTotal is the spending of one category.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Total      Money           `json:"total"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// Categories returns the spending per category, largest first. Percentages are
// relative to the total spending and rounded to one decimal.
func Categories(txs Transactions) []CategoryTotal {
	sums := make(map[string]Money)
	counts := make(map[string]int)
	for _, tx := range txs.Spending() {
		if _, ok := sums[tx.Category]; !ok {
			sums[tx.Category] = M(0, ReportingCurrency)
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
		counts[tx.Category]++
	}

	res := make([]CategoryTotal, 0, len(sums))
	total := decimal.Zero
	for name, sum := range sums {
		res = append(res, CategoryTotal{Category: name, Total: sum.Abs(), Count: counts[name]})
		total = total.Add(sum.Abs().Decimal())
	}
	for i := range res {
		if !total.IsZero() {
			res[i].Percentage = res[i].Total.Decimal().Div(total).Shift(2).Round(1).InexactFloat64()
		}
	}
	sortTotals(res, func(c CategoryTotal) (Money, string) { return c.Total, c.Category })
	return res
}

// sortTotals sorts by decreasing total then increasing name.
func sortTotals[T any](list []T, by func(T) (Money, string)) {
	slices.SortFunc(list, func(a, b T) int {
		ta, na := by(a)
		tb, nb := by(b)
		if c := tb.Decimal().Cmp(ta.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(na, nb)
	})
}

// MerchantTotal is the spending at one merchant.
type MerchantTotal struct {
	Merchant string `json:"merchant"`
	Total    Money  `json:"total"`
	Count    int    `json:"count"`
}

// TopMerchants returns the n merchants where most money was spent.
func TopMerchants(txs Transactions, n int) []MerchantTotal {
	sums := make(map[string]Money)
	counts := make(map[string]int)
	for _, tx := range txs.Spending() {
		if _, ok := sums[tx.Merchant]; !ok {
			sums[tx.Merchant] = M(0, ReportingCurrency)
		}
		sums[tx.Merchant] = sums[tx.Merchant].Add(tx.Amount)
		counts[tx.Merchant]++
	}
	res := make([]MerchantTotal, 0, len(sums))
	for name, sum := range sums {
		res = append(res, MerchantTotal{Merchant: name, Total: sum.Abs(), Count: counts[name]})
	}
	sortTotals(res, func(m MerchantTotal) (Money, string) { return m.Total, m.Merchant })
	if n >= 0 && len(res) > n {
		res = res[:n]
	}
	return res
}

// OverviewSummary compares income and spending over all transactions.
type OverviewSummary struct {
	TotalSpending    Money
	TotalIncome      Money
	NetCashFlow      Money
	SpendingCount    int
	IncomeCount      int
	AverageSpending  Money
	AverageIncome    Money
	Range            date.Range
	TransactionCount int
}

// Overview computes the overall figures. Averages divide by at least one.
func Overview(txs Transactions) OverviewSummary {
	spending, income := txs.Spending(), txs.Income()
	spent, earned := spending.Sum(), income.Sum()
	return OverviewSummary{
		TotalSpending:    spent.Abs(),
		TotalIncome:      earned,
		NetCashFlow:      earned.Add(spent),
		SpendingCount:    len(spending),
		IncomeCount:      len(income),
		AverageSpending:  spent.Abs().DivInt(max(1, len(spending))),
		AverageIncome:    earned.DivInt(max(1, len(income))),
		Range:            txs.Range(),
		TransactionCount: len(txs),
	}
}

func (o OverviewSummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("total_spending", o.TotalSpending)
	w.Append("total_income", o.TotalIncome)
	w.Append("net_cash_flow", o.NetCashFlow)
	w.Append("spending_count", o.SpendingCount)
	w.Append("income_count", o.IncomeCount)
	w.Append("average_spending", o.AverageSpending)
	w.Append("average_income", o.AverageIncome)
	w.Optional("date_from", o.Range.From.String())
	w.Optional("date_to", o.Range.To.String())
	w.Append("transaction_count", o.TransactionCount)
	return w.MarshalJSON()
}

// CategoryNames returns the distinct categories, sorted.
func (txs Transactions) CategoryNames() []string {
	set := make(map[string]bool)
	for _, tx := range txs {
		set[tx.Category] = true
	}
	return slices.Sorted(maps.Keys(set))
}
