package cashflow

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a value cannot represent an amount of money
// (NaN, infinities or unparsable text).
var ErrInvalidAmount = errors.New("invalid amount")

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value in currency. Floats must be finite, M panics otherwise: use
// NewMoney or ParseMoney for untrusted input.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// NewMoney is like M for a float64 but reports non-finite values as ErrInvalidAmount.
func NewMoney(value float64, currency string) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, value)
	}
	return M(value, currency), nil
}

// ParseMoney parses a decimal amount. Thousands separators and spaces are ignored.
func ParseMoney(s, currency string) (Money, error) {
	clean := strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(s))
	v, err := decimal.NewFromString(clean)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{value: v, cur: currency}, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the amount formatted in its currency, e.g. "-£1,234.50".
// Negative amounts keep their sign even when they round to zero: "-£0.00".
// The amount is formatted from its decimal digits, so it has no size limit.
func (m Money) String() string {
	cur := m.currency()
	whole, frac, _ := strings.Cut(m.value.Abs().StringFixed(int32(cur.Fraction)), ".")
	amount := group(whole, cur.Thousand)
	if frac != "" {
		amount += cur.Decimal + frac
	}
	s := strings.Replace(cur.Template, "1", amount, 1)
	s = strings.Replace(s, "$", cur.Grapheme, 1)
	if m.value.IsNegative() {
		return "-" + s
	}
	return s
}

// group inserts sep every three digits from the right.
func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// SignedString is like String but prefixes positive amounts with a "+".
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(d decimal.Decimal) Money     { return Money{value: m.value.Mul(d), cur: m.cur} }
func (m Money) Div(d decimal.Decimal) Money     { return Money{value: m.value.Div(d), cur: m.cur} }

// DivInt divides by a count, e.g. to compute an average.
func (m Money) DivInt(n int) Money { return m.Div(decimal.NewFromInt(int64(n))) }

// Round returns the amount rounded to the currency's minor unit.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur}
}

// Float returns the amount rounded to its minor unit as a float, for charts.
func (m Money) Float() float64 { return m.Round().value.InexactFloat64() }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

// MarshalJSON writes the amount as a plain number rounded to the minor unit.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Round().value.String()), nil
}

// UnmarshalJSON reads a plain number, the currency is left untouched.
func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := decimal.NewFromString(strings.Trim(string(b), `"`))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, b)
	}
	m.value = v
	return nil
}
