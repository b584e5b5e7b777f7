package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// ReportCategoryCount is the number of categories listed in a Report.
const ReportCategoryCount = 15

// Report renders the overall figures, the monthly summary, the top categories
// and the top merchants of an analysis.
func Report(a *cashflow.Analysis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	o := a.Overview
	doc.H1("Cash Flow Report")
	if !o.Range.From.IsZero() {
		doc.PlainText(fmt.Sprintf("From %s to %s, %d transactions.", o.Range.From, o.Range.To, o.TransactionCount))
	}

	doc.H2("Overall")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"", "Total", "Count"},
		Rows: [][]string{
			{"Income", o.TotalIncome.String(), fmt.Sprint(o.IncomeCount)},
			{"Spending", o.TotalSpending.String(), fmt.Sprint(o.SpendingCount)},
			{md.Bold("Net Cash Flow"), md.Bold(o.NetCashFlow.SignedString()), ""},
		},
	})

	if len(a.Monthly) > 0 {
		doc.H2("Monthly Summary")
		doc.Table(periodTable("Month", a.Monthly))
	}

	if len(a.Categories) > 0 {
		doc.H2("Spending by Category")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Category", "Total", "Count", "Share"},
		}
		for i, c := range a.Categories {
			if i == ReportCategoryCount {
				break
			}
			table.Rows = append(table.Rows, []string{c.Category, c.Total.String(), fmt.Sprint(c.Count), fmt.Sprintf("%.1f%%", c.Percentage)})
		}
		doc.Table(table)
	}

	if len(a.Merchants) > 0 {
		doc.H2("Top Merchants")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Merchant", "Total", "Count"},
		}
		for _, m := range a.Merchants {
			table.Rows = append(table.Rows, []string{m.Merchant, m.Total.String(), fmt.Sprint(m.Count)})
		}
		doc.Table(table)
	}

	return doc.String()
}

// AdvancedReport renders the quarterly and yearly summaries and the spending trends.
func AdvancedReport(a *cashflow.Analysis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Advanced Analytics")
	if len(a.Quarterly) > 0 {
		doc.H2("Quarterly Summary")
		doc.Table(periodTable("Quarter", a.Quarterly))
	}
	if len(a.Yearly) > 0 {
		doc.H2("Yearly Summary")
		doc.Table(periodTable("Year", a.Yearly))
	}
	res := doc.String()

	var out bytes.Buffer
	out.WriteString(res)
	ConditionalBlock(&out, func(w io.Writer) bool { return trendsSection(w, a.Trends) })
	return out.String()
}

// trendsSection writes the spending trend highlights. It needs at least two months.
func trendsSection(w io.Writer, trends []cashflow.TrendPoint) bool {
	if len(trends) < 2 {
		return false
	}
	highest := trends[0]
	var lowest *cashflow.TrendPoint
	sum := cashflow.M(0, cashflow.ReportingCurrency)
	for i, p := range trends {
		if p.Spending.GreaterThan(highest.Spending) {
			highest = p
		}
		if p.Spending.IsPositive() && (lowest == nil || p.Spending.LessThan(lowest.Spending)) {
			lowest = &trends[i]
		}
		sum = sum.Add(p.Spending)
	}

	doc := md.NewMarkdown(w)
	doc.H2("Spending Trends")
	rows := [][]string{
		{"Highest spending month", highest.Month.Identifier(), highest.Spending.String()},
	}
	if lowest != nil {
		rows = append(rows, []string{"Lowest spending month", lowest.Month.Identifier(), lowest.Spending.String()})
	}
	rows = append(rows,
		[]string{"Average monthly spend", "", sum.DivInt(len(trends)).String()},
		[]string{"Current 3-month average", trends[len(trends)-1].Month.Identifier(), trends[len(trends)-1].MovingAvg.String()},
	)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Month", "Spending"},
		Rows:      rows,
	})
	return doc.Build() == nil
}

// PeriodMarkdown renders a list of period summaries under a title.
func PeriodMarkdown(title, column string, list []cashflow.PeriodSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)
	if len(list) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}
	doc.Table(periodTable(column, list))
	return doc.String()
}

func periodTable(column string, list []cashflow.PeriodSummary) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{column, "Spending", "Income", "Net"},
	}
	for _, s := range list {
		table.Rows = append(table.Rows, []string{s.Label(), s.Spending.String(), s.Income.String(), s.Net.SignedString()})
	}
	return table
}
