package bank

import (
	"strings"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
)

const (
	travelWalletBank     = "TravelWallet (Korea)"
	travelWalletCurrency = "KRW"
	// Korean exports start with a preamble: the header is searched in the first rows.
	headerSearchRows = 15
)

func init() { register(FormatTravelWallet, parseTravelWallet) }

// isTravelWalletHeader reports whether a row looks like a TravelWallet header
// (date, type or merchant columns).
func isTravelWalletHeader(row []string) bool {
	for _, c := range row {
		if strings.Contains(c, "날짜") || strings.Contains(c, "종류") || strings.Contains(c, "가맹점") {
			return true
		}
	}
	return false
}

// findHeader returns the index of the header row: the first TravelWallet
// header among the first rows, or 0.
func findHeader(rows [][]string) int {
	for i := 0; i < min(headerSearchRows, len(rows)); i++ {
		if isTravelWalletHeader(rows[i]) {
			return i
		}
	}
	return 0
}

// parseTravelWallet reads TravelWallet exports. Amounts are in won, converted
// to the reporting currency. Top ups ("충전", charge) are income, everything
// else is spending.
func parseTravelWallet(t Table, opts Options) (cashflow.Transactions, error) {
	var (
		amount   = t.column(containing("원화금액", "KRW"))
		day      = t.column(containing("날짜", "date"))
		tm       = t.column(containing("시간", "time"))
		typ      = t.column(containing("종류"))
		merchant = t.column(containing("가맹점"))
	)
	if amount < 0 {
		if num := t.numericColumns(); len(num) > 0 {
			amount = num[len(num)-1]
		}
	}
	rates := opts.rates()

	var txs cashflow.Transactions
	for _, row := range t.Rows {
		d, err := date.ParseLayout(strings.ReplaceAll(cell(row, day), ".", "-"), "2006-01-02", "2006-1-2")
		if err != nil {
			continue
		}
		raw := cell(row, amount)
		if raw == "" {
			continue
		}
		won, err := cashflow.ParseMoney(raw, travelWalletCurrency)
		if err != nil {
			continue
		}
		won = won.Abs()
		gbp, err := rates.Convert(won, cashflow.ReportingCurrency)
		if err != nil {
			return nil, err
		}

		kind := cell(row, typ)
		lower := strings.ToLower(kind)
		income := strings.Contains(lower, "충전") || strings.Contains(lower, "charge")
		if !income {
			gbp = gbp.Neg()
		}

		name, cat := "Unknown", cashflow.CategoryOther
		if m := cell(row, merchant); m != "" {
			name, cat = m, m
		}
		txs = append(txs, cashflow.Transaction{
			Date:     d,
			Time:     cell(row, tm),
			Bank:     travelWalletBank,
			Type:     kind,
			Merchant: name,
			Category: cat,
			Amount:   gbp,
			Original: won,
			Income:   income,
		})
	}
	return txs, nil
}
