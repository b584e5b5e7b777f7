package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type categoryCmd struct {
	period string
	noTx   bool
}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "detail the spending of a category" }
func (*categoryCmd) Usage() string {
	return `cfs category [-p <period>] [-no-tx] [<name>]

  Prints the totals of a category per period followed by its transactions.
  Without a name, lists the categories.
`
}

func (c *categoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", date.Monthly.String(), "period of the totals (day, week, month, quarter, year)")
	f.BoolVar(&c.noTx, "no-tx", false, "do not list the transactions")
}

func (c *categoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a single category name")
		return subcommands.ExitUsageError
	}
	_, store, _, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	txs, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		for _, name := range txs.CategoryNames() {
			fmt.Printf("%-20s %s\n", name, cashflow.DisplayName(name))
		}
		return subcommands.ExitSuccess
	}

	r, err := cashflow.CategoryDetail(txs, f.Arg(0), p)
	if errors.Is(err, cashflow.ErrUnknownCategory) {
		fmt.Fprintf(os.Stderr, "Error: %v, known categories are listed by 'cfs category'\n", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderCategory(r, p, renderer.CategoryRenderOptions{SkipTransactions: c.noTx}))
	return subcommands.ExitSuccess
}
