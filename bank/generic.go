package bank

import (
	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
)

const genericBank = "Uploaded"

// layouts accepted for generic exports, in order of preference.
var genericLayouts = []string{"2006-01-02", "2006/01/02", "02/01/2006", "2006.01.02", "2 Jan 2006"}

func init() { register(FormatGeneric, parseGeneric) }

// parseGeneric reads any export with a date column and an amount column,
// already in the reporting currency. Positive amounts are income.
func parseGeneric(t Table, opts Options) (cashflow.Transactions, error) {
	var (
		day      = t.column(containing("date"))
		amount   = t.column(containing("amount", "value"))
		category = t.column(containing("category", "type"))
		merchant = t.column(containing("name", "merchant", "description"))
	)
	if amount < 0 {
		if num := t.numericColumns(); len(num) > 0 {
			amount = num[0]
		}
	}

	var txs cashflow.Transactions
	for _, row := range t.Rows {
		d, err := date.ParseLayout(cell(row, day), genericLayouts...)
		if err != nil {
			continue
		}
		v := cashflow.M(0, cashflow.ReportingCurrency)
		if amount >= 0 {
			if cell(row, amount) == "" {
				continue
			}
			if v, err = number(cell(row, amount)); err != nil {
				continue
			}
		}
		cat := cashflow.CategoryOther
		if category >= 0 {
			cat = cell(row, category)
		}
		txs = append(txs, cashflow.Transaction{
			Date:     d,
			Bank:     genericBank,
			Merchant: cell(row, merchant),
			Category: cat,
			Amount:   v,
			Original: v,
			Income:   v.IsPositive(),
		})
	}
	return txs, nil
}
