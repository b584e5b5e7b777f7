package cashflow

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Rates holds exchange rates relative to a base currency: for each currency,
// how many units are worth one unit of the base (1 GBP = 1750 KRW).
type Rates struct {
	base  string
	units map[string]decimal.Decimal
}

// NewRates returns an empty set of rates for base.
func NewRates(base string) *Rates {
	return &Rates{base: base, units: make(map[string]decimal.Decimal)}
}

// DefaultRates returns the rates used when none are configured.
func DefaultRates() *Rates {
	return NewRates(ReportingCurrency).Set("KRW", decimal.NewFromInt(1750))
}

// Base returns the base currency.
func (r *Rates) Base() string { return r.base }

// Set records that one unit of the base is worth 'units' of currency.
func (r *Rates) Set(currency string, units decimal.Decimal) *Rates {
	r.units[currency] = units
	return r
}

// Get returns the number of units of currency worth one unit of the base.
func (r *Rates) Get(currency string) (decimal.Decimal, bool) {
	if currency == r.base {
		return decimal.NewFromInt(1), true
	}
	u, ok := r.units[currency]
	return u, ok
}

// Currencies returns the known currencies, sorted, base excluded.
func (r *Rates) Currencies() []string {
	res := make([]string, 0, len(r.units))
	for c := range r.units {
		res = append(res, c)
	}
	slices.Sort(res)
	return res
}

// Convert converts m into the currency 'to', crossing through the base if needed.
func (r *Rates) Convert(m Money, to string) (Money, error) {
	if m.cur == to {
		return m, nil
	}
	from, ok := r.Get(m.cur)
	if !ok {
		return Money{}, fmt.Errorf("no exchange rate for %s", m.cur)
	}
	into, ok := r.Get(to)
	if !ok {
		return Money{}, fmt.Errorf("no exchange rate for %s", to)
	}
	if from.IsZero() {
		return Money{}, fmt.Errorf("invalid zero exchange rate for %s", m.cur)
	}
	return Money{value: m.value.Div(from).Mul(into), cur: to}, nil
}

// FetchRate reads a rate from a JSON document at addr. The rate is the number
// found at the JSONPath 'path', e.g. "$.rates.KRW".
func FetchRate(ctx context.Context, client *http.Client, addr, path string) (decimal.Decimal, error) {
	var jobj any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error fetching rate: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// jsonpath may return a list of 1 answer or the answer itself: keep the first one.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("value at %q is not a number: %q", path, v)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("value at %q is not a number: %v", path, jval)
	}
}
