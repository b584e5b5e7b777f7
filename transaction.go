package cashflow

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/cashflow/date"
)

// ReportingCurrency is the currency every transaction amount is converted into.
const ReportingCurrency = "GBP"

// Well known category names.
const (
	CategoryOther         = "Other"
	CategoryUncategorized = "Uncategorized"
)

// Transaction is a single bank movement, normalized across banks.
//
// Amount is expressed in the reporting currency and is signed: spending is
// negative, income is positive. Original keeps the amount as the bank reported
// it, in the bank's currency.
type Transaction struct {
	Date     date.Date
	Time     string
	Bank     string
	Type     string
	Merchant string
	Category string
	Amount   Money
	Original Money
	Income   bool
}

// MarshalJSON uses the column names of the combined CSV file.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", tx.Date)
	w.Optional("time", tx.Time)
	w.Append("bank", tx.Bank)
	w.Append("type", tx.Type)
	w.Append("merchant", tx.Merchant)
	w.Append("category", tx.Category)
	w.Append("amount_gbp", tx.Amount)
	w.Append("original_currency", tx.Original.Currency())
	w.Append("original_amount", tx.Original)
	w.Append("is_income", tx.Income)
	return w.MarshalJSON()
}

// Transactions is a list of transactions, usually in chronological order.
type Transactions []Transaction

// Sort sorts transactions chronologically, keeping the order of same day transactions.
func (txs Transactions) Sort() {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Time, b.Time)
	})
}

// Filter returns the transactions for which keep returns true.
func (txs Transactions) Filter(keep func(Transaction) bool) Transactions {
	var res Transactions
	for _, tx := range txs {
		if keep(tx) {
			res = append(res, tx)
		}
	}
	return res
}

// Spending returns the outgoing transactions.
func (txs Transactions) Spending() Transactions {
	return txs.Filter(func(tx Transaction) bool { return !tx.Income })
}

// Income returns the incoming transactions.
func (txs Transactions) Income() Transactions {
	return txs.Filter(func(tx Transaction) bool { return tx.Income })
}

// InCategory returns the transactions of a category, case insensitive.
func (txs Transactions) InCategory(name string) Transactions {
	return txs.Filter(func(tx Transaction) bool { return strings.EqualFold(tx.Category, name) })
}

// Sum returns the signed sum of all amounts.
func (txs Transactions) Sum() Money {
	sum := M(0, ReportingCurrency)
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// Range returns the first and last transaction dates.
func (txs Transactions) Range() date.Range {
	var r date.Range
	for i, tx := range txs {
		if i == 0 || tx.Date.Before(r.From) {
			r.From = tx.Date
		}
		if i == 0 || tx.Date.After(r.To) {
			r.To = tx.Date
		}
	}
	return r
}

// key identifies a transaction by all its fields, for duplicate detection.
type key struct {
	date                                     date.Date
	time, bank, typ, merchant, category      string
	amount, original, originalCurrency, flag string
}

func (tx Transaction) key() key {
	return key{
		date: tx.Date, time: tx.Time, bank: tx.Bank, typ: tx.Type,
		merchant: tx.Merchant, category: tx.Category,
		amount:           tx.Amount.Round().Decimal().String(),
		original:         tx.Original.Decimal().String(),
		originalCurrency: tx.Original.Currency(),
		flag:             boolString(tx.Income),
	}
}

// Dedup removes exact duplicates, keeping the first occurrence.
func (txs Transactions) Dedup() Transactions {
	seen := make(map[key]bool, len(txs))
	res := make(Transactions, 0, len(txs))
	for _, tx := range txs {
		k := tx.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		res = append(res, tx)
	}
	return res
}

func boolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
