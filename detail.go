package cashflow

import (
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/cashflow/date"
)

// ErrUnknownCategory is returned when no transaction belongs to a category.
var ErrUnknownCategory = errors.New("category not found")

// PeriodAmount is an absolute amount attached to a period label.
type PeriodAmount struct {
	Period string `json:"period"`
	Amount Money  `json:"amount"`
}

// CategoryReport details the transactions of a single category.
type CategoryReport struct {
	Category     string
	Periods      []PeriodAmount
	Transactions Transactions
	Total        Money // sum of absolute amounts
	Count        int
}

func (c CategoryReport) MarshalJSON() ([]byte, error) {
	rows := make([]categoryRow, len(c.Transactions))
	for i, tx := range c.Transactions {
		rows[i] = categoryRow{Date: tx.Date, Merchant: tx.Merchant, Amount: tx.Amount, Type: tx.Type}
	}
	var w jsonObjectWriter
	w.Append("chart_data", c.Periods)
	w.Append("transactions", rows)
	w.Append("total", c.Total)
	w.Append("count", c.Count)
	return w.MarshalJSON()
}

type categoryRow struct {
	Date     date.Date `json:"date"`
	Merchant string    `json:"merchant"`
	Amount   Money     `json:"amount_gbp"`
	Type     string    `json:"type"`
}

// CategoryDetail groups a category's transactions by period. The category name
// is case insensitive.
func CategoryDetail(txs Transactions, category string, period date.Period) (CategoryReport, error) {
	in := txs.InCategory(category)
	if len(in) == 0 {
		return CategoryReport{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	res := CategoryReport{Category: in[0].Category, Transactions: in, Count: len(in), Total: M(0, ReportingCurrency)}

	// A category mixing income and spending is summed with signs, per period.
	var order []date.Date
	sums := make(map[date.Date]Money)
	for _, tx := range in {
		res.Total = res.Total.Add(tx.Amount.Abs())
		start := tx.Date.StartOf(period)
		if _, ok := sums[start]; !ok {
			order = append(order, start)
			sums[start] = M(0, ReportingCurrency)
		}
		sums[start] = sums[start].Add(tx.Amount)
	}
	slices.SortFunc(order, date.Date.Compare)
	for _, start := range order {
		res.Periods = append(res.Periods, PeriodAmount{
			Period: date.NewRange(start, period).Identifier(),
			Amount: sums[start].Abs(),
		})
	}
	return res, nil
}
