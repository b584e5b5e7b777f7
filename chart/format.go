package chart

import (
	"github.com/etnz/cashflow"
)

// FormatCurrency formats an amount in pounds the way every chart displays it:
// "£1,234.50", "-£7.00". A nil value is formatted as "£0.00".
// NaN and infinities fail with cashflow.ErrInvalidAmount.
func FormatCurrency(v *float64) (string, error) {
	return formatMoney(v, cashflow.ReportingCurrency)
}

func formatMoney(v *float64, currency string) (string, error) {
	if v == nil {
		return cashflow.M(0, currency).String(), nil
	}
	m, err := cashflow.NewMoney(*v, currency)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}
