package cashflow

import "github.com/etnz/cashflow/date"

// GBP is a helper for test to create pound money from const.
func GBP(v float64) Money { return M(v, "GBP") }

// KRW is a helper for test to create won money from const.
func KRW(v float64) Money { return M(v, "KRW") }

// spend returns a spending transaction of v pounds (v is positive).
func spend(day, merchant, category string, v float64) Transaction {
	return Transaction{
		Date:     date.MustParse(day),
		Bank:     "Monzo",
		Type:     "Card payment",
		Merchant: merchant,
		Category: category,
		Amount:   GBP(-v),
		Original: GBP(-v),
	}
}

// earn returns an income transaction of v pounds.
func earn(day, merchant string, v float64) Transaction {
	return Transaction{
		Date:     date.MustParse(day),
		Bank:     "Monzo",
		Type:     "Faster payment",
		Merchant: merchant,
		Category: "Income",
		Amount:   GBP(v),
		Original: GBP(v),
		Income:   true,
	}
}

// sample is a small set of transactions across two quarters.
func sample() Transactions {
	return Transactions{
		spend("2025-01-05", "Tesco", "groceries", 40),
		spend("2025-01-20", "Pret", "eating_out", 10),
		earn("2025-01-28", "ACME Ltd", 2000),
		spend("2025-02-03", "Tesco", "groceries", 60),
		spend("2025-02-14", "Odeon", "entertainment", 25),
		spend("2025-04-01", "Tesco", "groceries", 50),
	}
}
