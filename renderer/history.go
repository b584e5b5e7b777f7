package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the imported files, most recent last.
func HistoryMarkdown(h cashflow.History) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Imported Files")
	if len(h.Files) == 0 {
		doc.PlainText("No file imported yet.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"File", "Bank", "Currency", "Transactions", "Imported", "Source"},
	}
	for _, f := range h.Files {
		table.Rows = append(table.Rows, []string{
			f.Filename, f.Bank, f.Currency, fmt.Sprint(f.Transactions),
			f.UploadedAt.Format("2006-01-02 15:04"), f.Source,
		})
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("%d files, %d transactions.", len(h.Files), h.TotalTransactions()))
	return doc.String()
}

// RatesMarkdown renders the exchange rates against their base currency.
func RatesMarkdown(r *cashflow.Rates) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Exchange Rates")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Currency", "Per 1 " + r.Base()},
	}
	for _, cur := range r.Currencies() {
		u, _ := r.Get(cur)
		table.Rows = append(table.Rows, []string{cur, u.String()})
	}
	doc.Table(table)
	return doc.String()
}
