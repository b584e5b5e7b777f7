package bank

import (
	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
)

const monzoBank = "Monzo"

func init() { register(FormatMonzo, parseMonzo) }

// parseMonzo reads Monzo csv exports. Dates are dd/mm/yyyy. The amount is the
// "Amount" column, or "Money In" minus "Money Out" in older exports.
func parseMonzo(t Table, opts Options) (cashflow.Transactions, error) {
	var (
		day      = t.column(named("Date"))
		tm       = t.column(named("Time"))
		typ      = t.column(named("Type"))
		name     = t.column(named("Name"))
		category = t.column(named("Category"))
		amount   = t.column(named("Amount"))
		moneyIn  = t.column(named("Money In"))
		moneyOut = t.column(named("Money Out"))
	)

	var txs cashflow.Transactions
	for _, row := range t.Rows {
		d, err := date.ParseLayout(cell(row, day), "02/01/2006", "2/1/2006")
		if err != nil {
			opts.Log.Debug().Strs("row", row).Msg("skipping row without date")
			continue
		}
		in, err := number(cell(row, moneyIn))
		if err != nil {
			opts.Log.Debug().Strs("row", row).Err(err).Msg("skipping row with malformed Money In")
			continue
		}
		out, err := number(cell(row, moneyOut))
		if err != nil {
			opts.Log.Debug().Strs("row", row).Err(err).Msg("skipping row with malformed Money Out")
			continue
		}
		var v cashflow.Money
		switch {
		case amount >= 0:
			if cell(row, amount) == "" {
				continue
			}
			if v, err = number(cell(row, amount)); err != nil {
				continue
			}
		case moneyOut >= 0 || moneyIn >= 0:
			v = in.Sub(out.Abs())
		default:
			continue
		}

		income := v.IsPositive()
		if moneyIn >= 0 {
			income = in.IsPositive()
		}
		cat := cashflow.CategoryOther
		if category >= 0 {
			cat = cell(row, category)
		}
		txs = append(txs, cashflow.Transaction{
			Date:     d,
			Time:     cell(row, tm),
			Bank:     monzoBank,
			Type:     cell(row, typ),
			Merchant: cell(row, name),
			Category: cat,
			Amount:   v,
			Original: v,
			Income:   income,
		})
	}
	return txs, nil
}
