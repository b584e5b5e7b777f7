package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/chart"
	"github.com/etnz/cashflow/date"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func tx(day, merchant, category string, v float64) cashflow.Transaction {
	m := cashflow.M(v, cashflow.ReportingCurrency)
	return cashflow.Transaction{
		Date:     date.MustParse(day),
		Bank:     "Monzo",
		Merchant: merchant,
		Category: category,
		Amount:   m,
		Original: m,
		Income:   v > 0,
	}
}

func newDashboard(t *testing.T, txs cashflow.Transactions) *Dashboard {
	t.Helper()
	a, err := cashflow.Analyze(txs)
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	return New(a, chart.DefaultTheme())
}

func sample() cashflow.Transactions {
	return cashflow.Transactions{
		tx("2025-01-05", "Tesco", "groceries", -40),
		tx("2025-01-28", "ACME Ltd", "Income", 2000),
		tx("2025-02-03", "Tesco", "groceries", -60),
		tx("2025-02-14", "Odeon", "entertainment", -25),
		tx("2025-04-01", "Pret", "eating_out", -50),
	}
}

func TestMonthlySpendingIncome(t *testing.T) {
	c := newDashboard(t, sample()).MonthlySpendingIncome()
	if c.Type != chart.Bar || c.Target != MonthlySpendingIncome {
		t.Fatalf("MonthlySpendingIncome() = %s %q, want bar %q", c.Type, c.Target, MonthlySpendingIncome)
	}
	if diff := cmp.Diff([]string{"2025-01", "2025-02", "2025-04"}, c.Data.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{40, 85, 50}, c.Data.Datasets[0].Data); diff != "" {
		t.Errorf("spending mismatch (-want +got):\n%s", diff)
	}
	if got := c.Data.Datasets[1].BorderColor; got != IncomeColor {
		t.Errorf("income color = %q, want %q", got, IncomeColor)
	}
}

func TestCashFlowTrend(t *testing.T) {
	c := newDashboard(t, sample()).CashFlowTrend()
	if len(c.Data.Datasets) != 3 {
		t.Fatalf("CashFlowTrend() has %d datasets, want 3", len(c.Data.Datasets))
	}
	net := c.Data.Datasets[2]
	if net.Fill == nil || *net.Fill {
		t.Errorf("net dataset fill = %v, want false", net.Fill)
	}
	if diff := cmp.Diff([]float64{1960, -85, -50}, net.Data); diff != "" {
		t.Errorf("net mismatch (-want +got):\n%s", diff)
	}
	if spending := c.Data.Datasets[0]; spending.Fill == nil || !*spending.Fill {
		t.Errorf("spending dataset fill = %v, want the theme default true", spending.Fill)
	}
}

func TestCategoryBreakdown_GroupsOther(t *testing.T) {
	var txs cashflow.Transactions
	for i := range 10 {
		txs = append(txs, tx("2025-01-05", "Shop", fmt.Sprintf("cat%02d", i), -float64(100-i)))
	}
	c := newDashboard(t, txs).CategoryBreakdown()
	if got := len(c.Data.Labels); got != BreakdownSlices+1 {
		t.Fatalf("CategoryBreakdown() has %d slices, want %d", got, BreakdownSlices+1)
	}
	if got := c.Data.Labels[BreakdownSlices]; got != cashflow.CategoryOther {
		t.Errorf("last slice = %q, want %q", got, cashflow.CategoryOther)
	}
	if got := c.Data.Datasets[0].Data[BreakdownSlices]; got != 92+91 {
		t.Errorf("Other slice = %v, want %v", got, 92+91)
	}
	if got := len(c.Data.Datasets[0].BackgroundColors); got != BreakdownSlices+1 {
		t.Errorf("slice colors = %d, want %d", got, BreakdownSlices+1)
	}
}

func TestCategoryBreakdown_NoOther(t *testing.T) {
	c := newDashboard(t, sample()).CategoryBreakdown()
	for _, l := range c.Data.Labels {
		if l == cashflow.CategoryOther {
			t.Errorf("CategoryBreakdown() with few categories has an Other slice: %v", c.Data.Labels)
		}
	}
}

func TestCategoryTrends(t *testing.T) {
	c := newDashboard(t, sample()).CategoryTrends()
	var labels []string
	for _, ds := range c.Data.Datasets {
		labels = append(labels, ds.Label)
		if ds.Fill == nil || *ds.Fill {
			t.Errorf("dataset %q fill = %v, want false", ds.Label, ds.Fill)
		}
	}
	if diff := cmp.Diff([]string{"eating_out", "entertainment", "groceries"}, labels); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestChart_Unknown(t *testing.T) {
	_, err := newDashboard(t, sample()).Chart("pie")
	if !errors.Is(err, ErrUnknownChart) {
		t.Errorf("Chart(%q) error = %v, want %v", "pie", err, ErrUnknownChart)
	}
}

func TestChart_AllNames(t *testing.T) {
	d := newDashboard(t, sample())
	for _, name := range Names() {
		c, err := d.Chart(name)
		if err != nil {
			t.Errorf("Chart(%q) unexpected error: %v", name, err)
			continue
		}
		if c.Target != name {
			t.Errorf("Chart(%q).Target = %q", name, c.Target)
		}
		if Title(name) == "" {
			t.Errorf("Title(%q) is empty", name)
		}
	}
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	saved, err := newDashboard(t, sample()).SavePNG(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("SavePNG() unexpected error: %v", err)
	}
	if len(saved) == 0 {
		t.Fatal("SavePNG() saved no chart")
	}
	for _, path := range saved {
		b, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("cannot read %s: %v", path, err)
			continue
		}
		if !bytes.HasPrefix(b, []byte("\x89PNG")) {
			t.Errorf("%s is not a png file", path)
		}
	}
}
