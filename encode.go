package cashflow

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/cashflow/date"
	"github.com/gocarina/gocsv"
)

// CombinedColumns are the columns of the combined transactions file, in order.
var CombinedColumns = []string{"date", "time", "bank", "type", "merchant", "category", "amount_gbp", "original_currency", "original_amount", "is_income"}

// csvTransaction is a row of the combined transactions file as read from disk.
type csvTransaction struct {
	Date             string `csv:"date"`
	Time             string `csv:"time"`
	Bank             string `csv:"bank"`
	Type             string `csv:"type"`
	Merchant         string `csv:"merchant"`
	Category         string `csv:"category"`
	Amount           string `csv:"amount_gbp"`
	OriginalCurrency string `csv:"original_currency"`
	OriginalAmount   string `csv:"original_amount"`
	Income           string `csv:"is_income"`
}

// EncodeTransactions writes the transactions in the combined csv format.
func EncodeTransactions(w io.Writer, txs Transactions) error {
	rows := make([]*csvTransaction, len(txs))
	for i, tx := range txs {
		rows[i] = &csvTransaction{
			Date:             tx.Date.String(),
			Time:             tx.Time,
			Bank:             tx.Bank,
			Type:             tx.Type,
			Merchant:         tx.Merchant,
			Category:         tx.Category,
			Amount:           tx.Amount.Round().Decimal().String(),
			OriginalCurrency: tx.Original.Currency(),
			OriginalAmount:   tx.Original.Decimal().String(),
			Income:           boolString(tx.Income),
		}
	}
	if len(rows) == 0 {
		// gocsv cannot infer the header from an empty slice.
		_, err := io.WriteString(w, strings.Join(CombinedColumns, ",")+"\n")
		return err
	}
	return gocsv.Marshal(rows, w)
}

// DecodeTransactions reads transactions in the combined csv format. Rows without
// a date or without an amount are skipped. An empty input is an empty list.
func DecodeTransactions(r io.Reader) (Transactions, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}
	var rows []*csvTransaction
	if err := gocsv.Unmarshal(bytes.NewReader(content), &rows); err != nil {
		return nil, fmt.Errorf("cannot read transactions: %w", err)
	}

	txs := make(Transactions, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.Date) == "" || strings.TrimSpace(row.Amount) == "" {
			continue
		}
		line := i + 2 // header is line 1
		day, err := date.ParseLayout(row.Date, "2006-01-02")
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", line, row.Date, err)
		}
		amount, err := ParseMoney(row.Amount, ReportingCurrency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cur := strings.TrimSpace(row.OriginalCurrency)
		if cur == "" {
			cur = ReportingCurrency
		}
		original := amount
		if strings.TrimSpace(row.OriginalAmount) != "" {
			if original, err = ParseMoney(row.OriginalAmount, cur); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		income, err := parseBool(row.Income)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, Transaction{
			Date:     day,
			Time:     row.Time,
			Bank:     row.Bank,
			Type:     row.Type,
			Merchant: row.Merchant,
			Category: row.Category,
			Amount:   amount,
			Original: original,
			Income:   income,
		})
	}
	return txs, nil
}

// parseBool accepts python style booleans ("True", "False") as well as Go's.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}
