package cashflow

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRates_Convert(t *testing.T) {
	r := DefaultRates().Set("EUR", decimal.RequireFromString("1.2"))
	tests := []struct {
		m       Money
		to      string
		want    float64
		wantErr bool
	}{
		{KRW(17500), "GBP", 10, false},
		{GBP(2), "KRW", 3500, false},
		{GBP(2), "GBP", 2, false},
		{M(12, "EUR"), "GBP", 10, false},
		{KRW(1750), "EUR", 1.2, false},
		{M(1, "USD"), "GBP", 0, true},
	}
	for _, tt := range tests {
		got, err := r.Convert(tt.m, tt.to)
		if (err != nil) != tt.wantErr {
			t.Errorf("Convert(%v %s, %s) error = %v", tt.m.Decimal(), tt.m.Currency(), tt.to, err)
			continue
		}
		if !tt.wantErr && (got.Float() != tt.want || got.Currency() != tt.to) {
			t.Errorf("Convert(%v %s, %s) = %v %s, want %v", tt.m.Decimal(), tt.m.Currency(), tt.to, got.Float(), got.Currency(), tt.want)
		}
	}
}

func TestFetchRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base":"GBP","rates":{"KRW":1812.5,"EUR":"1.17"}}`)
	}))
	defer srv.Close()

	got, err := FetchRate(context.Background(), srv.Client(), srv.URL, "$.rates.KRW")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.RequireFromString("1812.5")) {
		t.Errorf("FetchRate(KRW) = %v, want 1812.5", got)
	}
	got, err = FetchRate(context.Background(), srv.Client(), srv.URL, "$.rates.EUR")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.RequireFromString("1.17")) {
		t.Errorf("FetchRate(EUR) = %v, want 1.17", got)
	}
	if _, err := FetchRate(context.Background(), srv.Client(), srv.URL, "$.base"); err == nil {
		t.Error("FetchRate($.base) error = nil, want not a number")
	}
}
