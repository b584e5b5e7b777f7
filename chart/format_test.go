package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/etnz/cashflow"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		v    *float64
		want string
	}{
		{"nil", nil, "£0.00"},
		{"zero", Float(0), "£0.00"},
		{"grouping", Float(1234.5), "£1,234.50"},
		{"negative", Float(-7), "-£7.00"},
		{"millions", Float(-1234567.891), "-£1,234,567.89"},
		{"half up", Float(2.675), "£2.68"},
		{"small", Float(0.4), "£0.40"},
		{"negative rounding to zero", Float(-0.001), "-£0.00"},
		{"negative zero", Float(math.Copysign(0, -1)), "£0.00"},
		{"beyond int64 pence", Float(1e17), "£100,000,000,000,000,000.00"},
		{"large", Float(1e18), "£1,000,000,000,000,000,000.00"},
		{"large negative", Float(-9.3e16), "-£93,000,000,000,000,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatCurrency(tt.v)
			if err != nil {
				t.Fatalf("FormatCurrency() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatCurrency() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCurrency_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := FormatCurrency(&v); !errors.Is(err, cashflow.ErrInvalidAmount) {
			t.Errorf("FormatCurrency(%v) error = %v, want ErrInvalidAmount", v, err)
		}
	}
}

func TestTheme_TooltipLabel(t *testing.T) {
	th := DefaultTheme()
	tests := []struct {
		label string
		raw   *float64
		want  string
	}{
		{"Spending", Float(42), "Spending: £42.00"},
		{"", Float(-3.5), "-£3.50"},
		{"Income", nil, "Income: £0.00"},
	}
	for _, tt := range tests {
		got, err := th.TooltipLabel(tt.label, tt.raw)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("TooltipLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
