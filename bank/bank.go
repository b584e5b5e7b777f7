// Package bank reads bank exports (csv or xlsx) and normalizes them into
// cashflow transactions.
//
// Each supported export layout is a Format, registered with its parser.
// Detect picks the format from the header row.
package bank

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/rs/zerolog"
)

var (
	// ErrUnknownFormat is returned for files that cannot be read as a bank export.
	ErrUnknownFormat = errors.New("unsupported file format, use csv or xlsx")
	// ErrPassword is returned when an encrypted workbook cannot be decrypted.
	ErrPassword = errors.New("the workbook is password protected, provide its password")
	// ErrNoData is returned when a file holds no usable transaction.
	ErrNoData = errors.New("no valid data found in file")
)

// Format identifies a bank export layout.
type Format string

const (
	FormatMonzo        Format = "monzo"
	FormatTravelWallet Format = "travelwallet"
	FormatGeneric      Format = "generic"
)

// Options control how exports are read.
type Options struct {
	Rates    *cashflow.Rates // used to convert foreign amounts, defaults to cashflow.DefaultRates
	Password string          // for encrypted workbooks
	Log      zerolog.Logger
}

func (o Options) rates() *cashflow.Rates {
	if o.Rates == nil {
		return cashflow.DefaultRates()
	}
	return o.Rates
}

// Table is the raw content of an export: a header and rows of cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// parser turns a table into transactions.
type parser func(t Table, opts Options) (cashflow.Transactions, error)

var parsers = make(map[Format]parser)

func register(f Format, p parser) {
	if _, exists := parsers[f]; exists {
		panic(fmt.Sprintf("bank format %q registered twice", f))
	}
	parsers[f] = p
}

// Formats lists the registered formats.
func Formats() []Format {
	res := make([]Format, 0, len(parsers))
	for f := range parsers {
		res = append(res, f)
	}
	slices.Sort(res)
	return res
}

// Detect returns the format of an export from its header.
func Detect(header []string) Format {
	for _, col := range header {
		if col == "Transaction ID" || col == "Date" {
			return FormatMonzo
		}
	}
	for _, col := range header {
		if strings.Contains(col, "가맹점") || strings.Contains(col, "종류") || strings.Contains(col, "원화금액") {
			return FormatTravelWallet
		}
	}
	return FormatGeneric
}

// Import is the result of reading an export.
type Import struct {
	Format       Format
	Transactions cashflow.Transactions
}

// Bank returns the bank of the imported transactions.
func (i Import) Bank() string {
	if len(i.Transactions) == 0 {
		return "Unknown"
	}
	return i.Transactions[0].Bank
}

// Currency returns the original currency of the imported transactions.
func (i Import) Currency() string {
	if len(i.Transactions) == 0 {
		return cashflow.ReportingCurrency
	}
	return i.Transactions[0].Original.Currency()
}

// Parse detects the format of t and normalizes its rows.
func Parse(t Table, opts Options) (Import, error) {
	f := Detect(t.Header)
	txs, err := parsers[f](t, opts)
	if err != nil {
		return Import{}, fmt.Errorf("cannot read %s export: %w", f, err)
	}
	opts.Log.Debug().Str("format", string(f)).Int("rows", len(t.Rows)).Int("transactions", len(txs)).Msg("export parsed")
	if len(txs) == 0 {
		return Import{}, ErrNoData
	}
	return Import{Format: f, Transactions: txs}, nil
}

// column returns the index of the first column matching, or -1.
func (t Table) column(match func(name string) bool) int {
	return slices.IndexFunc(t.Header, match)
}

// named matches a column by exact name.
func named(name string) func(string) bool {
	return func(col string) bool { return col == name }
}

// containing matches columns containing one of the substrings, case insensitive.
func containing(subs ...string) func(string) bool {
	return func(col string) bool {
		col = strings.ToLower(col)
		for _, s := range subs {
			if strings.Contains(col, strings.ToLower(s)) {
				return true
			}
		}
		return false
	}
}

// cell returns the trimmed value of a row at column i, "" when out of range.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// numericColumns returns the columns whose non empty cells are all numbers.
func (t Table) numericColumns() []int {
	var res []int
	for i := range t.Header {
		seen, ok := false, true
		for _, row := range t.Rows {
			c := cell(row, i)
			if c == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(c, 64); err != nil {
				ok = false
				break
			}
		}
		if seen && ok {
			res = append(res, i)
		}
	}
	return res
}

// number parses a cell as an amount, with an empty cell being zero.
func number(s string) (cashflow.Money, error) {
	if s == "" {
		return cashflow.M(0, cashflow.ReportingCurrency), nil
	}
	return cashflow.ParseMoney(s, cashflow.ReportingCurrency)
}
