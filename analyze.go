package cashflow

import "github.com/etnz/cashflow/date"

// Default sizes of the ranked lists of an Analysis.
const (
	TopMerchantCount = 10
	TopCategoryCount = 5
)

// Analysis bundles every figure computed over a set of transactions.
type Analysis struct {
	Transactions   Transactions
	Overview       OverviewSummary
	Daily          []PeriodSummary
	Weekly         []PeriodSummary
	Monthly        []PeriodSummary
	Quarterly      []PeriodSummary
	Yearly         []PeriodSummary
	Categories     []CategoryTotal
	Merchants      []MerchantTotal
	Trends         []TrendPoint
	CategoryTrends CategoryTrend
}

// Analyze computes the full analysis. It fails with ErrNoData on an empty set.
func Analyze(txs Transactions) (*Analysis, error) {
	if len(txs) == 0 {
		return nil, ErrNoData
	}
	return &Analysis{
		Transactions:   txs,
		Overview:       Overview(txs),
		Daily:          Summarize(txs, date.Daily),
		Weekly:         Summarize(txs, date.Weekly),
		Monthly:        Summarize(txs, date.Monthly),
		Quarterly:      Summarize(txs, date.Quarterly),
		Yearly:         Summarize(txs, date.Yearly),
		Categories:     Categories(txs),
		Merchants:      TopMerchants(txs, TopMerchantCount),
		Trends:         Trends(txs),
		CategoryTrends: CategoryTrends(txs, TopCategoryCount),
	}, nil
}

// Summary returns the summaries of a period.
func (a *Analysis) Summary(p date.Period) []PeriodSummary {
	switch p {
	case date.Daily:
		return a.Daily
	case date.Weekly:
		return a.Weekly
	case date.Monthly:
		return a.Monthly
	case date.Quarterly:
		return a.Quarterly
	default:
		return a.Yearly
	}
}
