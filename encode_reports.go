package cashflow

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/etnz/cashflow/date"
	"github.com/gocarina/gocsv"
	"github.com/google/renameio/v2"
)

type csvPeriod struct {
	Period   string `csv:"period"`
	Spending string `csv:"spending"`
	Income   string `csv:"income"`
	Net      string `csv:"net"`
}

type csvCategory struct {
	Category   string `csv:"category"`
	Total      string `csv:"total"`
	Count      int    `csv:"count"`
	Percentage string `csv:"percentage"`
}

type csvMerchant struct {
	Merchant string `csv:"merchant"`
	Total    string `csv:"total"`
	Count    int    `csv:"count"`
}

func amount(m Money) string { return m.Round().Decimal().StringFixed(2) }

func periodRows(list []PeriodSummary) []*csvPeriod {
	rows := make([]*csvPeriod, len(list))
	for i, s := range list {
		rows[i] = &csvPeriod{Period: s.Label(), Spending: amount(s.Spending), Income: amount(s.Income), Net: amount(s.Net)}
	}
	return rows
}

// EncodeReports writes the csv reports of an analysis into dir and returns the
// written paths. Files are named <prefix>_monthly.csv, <prefix>_categories.csv,
// and so on. Empty tables are not written.
func EncodeReports(dir, prefix string, a *Analysis) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	categories := make([]*csvCategory, len(a.Categories))
	for i, c := range a.Categories {
		categories[i] = &csvCategory{Category: c.Category, Total: amount(c.Total), Count: c.Count, Percentage: strconv.FormatFloat(c.Percentage, 'f', 1, 64)}
	}
	merchants := make([]*csvMerchant, len(a.Merchants))
	for i, m := range a.Merchants {
		merchants[i] = &csvMerchant{Merchant: m.Merchant, Total: amount(m.Total), Count: m.Count}
	}

	tables := []struct {
		name string
		rows any
		size int
	}{
		{"monthly", periodRows(a.Summary(date.Monthly)), len(a.Monthly)},
		{"categories", categories, len(categories)},
		{"merchants", merchants, len(merchants)},
		{"daily", periodRows(a.Summary(date.Daily)), len(a.Daily)},
		{"quarterly", periodRows(a.Summary(date.Quarterly)), len(a.Quarterly)},
		{"yearly", periodRows(a.Summary(date.Yearly)), len(a.Yearly)},
	}

	var saved []string
	for _, t := range tables {
		if t.size == 0 {
			continue
		}
		var buf bytes.Buffer
		if err := gocsv.Marshal(t.rows, &buf); err != nil {
			return saved, fmt.Errorf("cannot encode %s report: %w", t.name, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, t.name))
		if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return saved, fmt.Errorf("cannot write %s report: %w", t.name, err)
		}
		saved = append(saved, path)
	}
	return saved, nil
}
