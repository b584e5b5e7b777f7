package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"google.golang.org/genai"
)

func source() (cashflow.Transactions, error) {
	gbp := func(v float64) cashflow.Money { return cashflow.M(v, cashflow.ReportingCurrency) }
	return cashflow.Transactions{
		{Date: date.New(2025, 1, 5), Bank: "Monzo", Merchant: "Tesco", Category: "groceries", Amount: gbp(-40), Original: gbp(-40)},
		{Date: date.New(2025, 1, 28), Bank: "Monzo", Merchant: "ACME Ltd", Category: "Income", Amount: gbp(2000), Original: gbp(2000), Income: true},
		{Date: date.New(2025, 2, 3), Bank: "Monzo", Merchant: "Tesco", Category: "groceries", Amount: gbp(-60), Original: gbp(-60)},
	}, nil
}

func call(t *testing.T, name string, args map[string]any) map[string]any {
	t.Helper()
	lib := NewLibrary(AnalystFunctions(source))
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if resp.ID != "1" || resp.Name != name {
		t.Errorf("%s response id, name = %q, %q", name, resp.ID, resp.Name)
	}
	return resp.Response
}

func TestAnalyst_Overview(t *testing.T) {
	resp := call(t, "Overview", nil)
	var got struct {
		Spending float64 `json:"total_spending"`
		Net      float64 `json:"net_cash_flow"`
	}
	if err := json.Unmarshal([]byte(resp["output"].(string)), &got); err != nil {
		t.Fatalf("Overview output is not json: %v", err)
	}
	if got.Spending != 100 || got.Net != 1900 {
		t.Errorf("Overview = %+v, want spending 100, net 1900", got)
	}
}

func TestAnalyst_Periods(t *testing.T) {
	out := call(t, "Periods", map[string]any{"period": "quarter"})["output"].(string)
	if !strings.Contains(out, `"quarter":"2025-Q1"`) {
		t.Errorf("Periods(quarter) = %s", out)
	}
	resp := call(t, "Periods", map[string]any{"period": "fortnight"})
	if _, ok := resp["error"]; !ok {
		t.Errorf("Periods(fortnight) = %v, want an error", resp)
	}
}

func TestAnalyst_Category(t *testing.T) {
	out := call(t, "Category", map[string]any{"name": "Groceries"})["output"].(string)
	if !strings.Contains(out, "# groceries") || !strings.Contains(out, "| 2025-02 | £60.00 |") {
		t.Errorf("Category(Groceries) =\n%s", out)
	}
	resp := call(t, "Category", map[string]any{"name": "travel"})
	if msg, _ := resp["error"].(string); !strings.Contains(msg, "category not found") {
		t.Errorf("Category(travel) error = %v", resp["error"])
	}
}

func TestLibrary_Unknown(t *testing.T) {
	resp := call(t, "Budget", nil)
	if msg, _ := resp["error"].(string); msg != "unknown function Budget" {
		t.Errorf("unknown function error = %v", resp["error"])
	}
}

func TestAnalyst_SourceError(t *testing.T) {
	lib := NewLibrary(AnalystFunctions(func() (cashflow.Transactions, error) { return nil, errors.New("disk full") }))
	resp := lib(context.Background(), &genai.FunctionCall{Name: "Overview"})
	if msg, _ := resp.Response["error"].(string); !strings.Contains(msg, "disk full") {
		t.Errorf("error = %v, want the source error", resp.Response["error"])
	}
}

func TestNewAnalyst(t *testing.T) {
	e := NewAnalyst(DefaultModel, source)
	decls := e.Config.Tools[0].FunctionDeclarations
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	if got := strings.Join(names, ","); got != "Overview,Categories,Merchants,Periods,Category" {
		t.Errorf("analyst tools = %s", got)
	}
	f := NewFacilitator(DefaultModel, e, NewAdvisor(DefaultModel))
	if got := len(f.Config.Tools[0].FunctionDeclarations); got != 2 {
		t.Errorf("facilitator knows %d experts, want 2", got)
	}
}
