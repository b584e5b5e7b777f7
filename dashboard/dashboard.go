// Package dashboard builds the cash flow charts of an analysis.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/chart"
)

// ErrUnknownChart is returned for a chart name not in Names.
var ErrUnknownChart = errors.New("unknown chart")

// Chart names, also used as canvas ids and png file names.
const (
	MonthlySpendingIncome = "monthly_spending_income"
	CashFlowTrend         = "cash_flow_trend"
	CategoryBreakdown     = "category_breakdown"
	QuarterlyComparison   = "quarterly_comparison"
	TopMerchants          = "top_merchants"
	CategoryTrends        = "category_trends"
)

// Colors of the series common to several charts.
const (
	SpendingColor = "#e74c3c"
	IncomeColor   = "#2ecc71"
	NetColor      = "#3498db"
)

// BreakdownSlices is the number of categories of the breakdown chart before
// the remaining ones are grouped as Other.
const BreakdownSlices = 8

// Dashboard builds charts from an analysis with a theme.
type Dashboard struct {
	Analysis *cashflow.Analysis
	Theme    chart.Theme
}

// New returns a dashboard over a.
func New(a *cashflow.Analysis, theme chart.Theme) *Dashboard {
	return &Dashboard{Analysis: a, Theme: theme}
}

// Names returns every chart name in display order.
func Names() []string {
	return []string{MonthlySpendingIncome, CashFlowTrend, CategoryBreakdown, QuarterlyComparison, TopMerchants, CategoryTrends}
}

// Titles of the charts, by name.
var titles = map[string]string{
	MonthlySpendingIncome: "Monthly Spending vs Income",
	CashFlowTrend:         "Cash Flow Trend Over Time",
	CategoryBreakdown:     "Spending by Category",
	QuarterlyComparison:   "Quarterly Financial Summary",
	TopMerchants:          "Top 10 Merchants by Spending",
	CategoryTrends:        "Spending Trends by Category",
}

// Title returns the human title of a chart.
func Title(name string) string { return titles[name] }

// Chart returns the chart called name.
func (d *Dashboard) Chart(name string) (*chart.Chart, error) {
	switch name {
	case MonthlySpendingIncome:
		return d.MonthlySpendingIncome(), nil
	case CashFlowTrend:
		return d.CashFlowTrend(), nil
	case CategoryBreakdown:
		return d.CategoryBreakdown(), nil
	case QuarterlyComparison:
		return d.QuarterlyComparison(), nil
	case TopMerchants:
		return d.TopMerchants(), nil
	case CategoryTrends:
		return d.CategoryTrends(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
}

// periodColumns splits summaries into labels and spending, income and net values.
func periodColumns(list []cashflow.PeriodSummary) (labels []string, spending, income, net []float64) {
	for _, s := range list {
		labels = append(labels, s.Label())
		spending = append(spending, s.Spending.Float())
		income = append(income, s.Income.Float())
		net = append(net, s.Net.Float())
	}
	return
}

// MonthlySpendingIncome compares spending and income month by month.
func (d *Dashboard) MonthlySpendingIncome() *chart.Chart {
	labels, spending, income, _ := periodColumns(d.Analysis.Monthly)
	return d.Theme.Bar(MonthlySpendingIncome, labels, []chart.Dataset{
		{Label: "Spending", Data: spending, BorderColor: SpendingColor},
		{Label: "Income", Data: income, BorderColor: IncomeColor},
	})
}

// CashFlowTrend draws spending, income and net cash flow over the months.
func (d *Dashboard) CashFlowTrend() *chart.Chart {
	labels, spending, income, net := periodColumns(d.Analysis.Monthly)
	return d.Theme.Line(CashFlowTrend, labels, []chart.Dataset{
		{Label: "Spending", Data: spending, BorderColor: SpendingColor},
		{Label: "Income", Data: income, BorderColor: IncomeColor},
		{Label: "Net Cash Flow", Data: net, BorderColor: NetColor, Fill: chart.Bool(false)},
	})
}

// CategoryBreakdown shares the spending between the largest categories.
func (d *Dashboard) CategoryBreakdown() *chart.Chart {
	var labels []string
	var data []float64
	other := cashflow.M(0, cashflow.ReportingCurrency)
	for i, c := range d.Analysis.Categories {
		if i < BreakdownSlices {
			labels = append(labels, c.Category)
			data = append(data, c.Total.Float())
			continue
		}
		other = other.Add(c.Total)
	}
	if len(d.Analysis.Categories) > BreakdownSlices {
		labels = append(labels, cashflow.CategoryOther)
		data = append(data, other.Float())
	}
	return d.Theme.Doughnut(CategoryBreakdown, labels, data)
}

// QuarterlyComparison draws spending, income and net per quarter.
func (d *Dashboard) QuarterlyComparison() *chart.Chart {
	labels, spending, income, net := periodColumns(d.Analysis.Quarterly)
	return d.Theme.Bar(QuarterlyComparison, labels, []chart.Dataset{
		{Label: "Spending", Data: spending, BorderColor: SpendingColor},
		{Label: "Income", Data: income, BorderColor: IncomeColor},
		{Label: "Net", Data: net, BorderColor: NetColor},
	})
}

// TopMerchants ranks the merchants by spending.
func (d *Dashboard) TopMerchants() *chart.Chart {
	var labels []string
	var data []float64
	for _, m := range d.Analysis.Merchants {
		labels = append(labels, m.Merchant)
		data = append(data, m.Total.Float())
	}
	return d.Theme.Bar(TopMerchants, labels, []chart.Dataset{
		{Label: "Spending", Data: data, BorderColor: SpendingColor},
	})
}

// CategoryTrends draws the monthly spending of the top categories.
func (d *Dashboard) CategoryTrends() *chart.Chart {
	t := d.Analysis.CategoryTrends
	datasets := make([]chart.Dataset, len(t.Categories))
	for i, c := range t.Categories {
		datasets[i] = chart.Dataset{Label: c, Data: t.Series(c), Fill: chart.Bool(false)}
	}
	return d.Theme.Line(CategoryTrends, t.Labels(), datasets)
}
