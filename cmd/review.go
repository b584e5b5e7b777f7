package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

// reviewCmd holds the flags for the 'review' subcommand.
type reviewCmd struct {
	period string
}

func (*reviewCmd) Name() string { return "review" }

func (*reviewCmd) Synopsis() string { return "review income and spending per period" }
func (*reviewCmd) Usage() string {
	return `cfs review [-p <period>]

  Review income, spending and net cash flow for every period (daily, weekly,
  monthly, quarterly, yearly).
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", date.Monthly.String(), "period for the review (day, week, month, quarter, year)")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}
	_, store, _, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	a, err := analyze(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	name := p.String()
	title := strings.ToUpper(name[:1]) + name[1:] + " Summary"
	printMarkdown(renderer.PeriodMarkdown(title, periodColumn(p), a.Summary(p)))
	return subcommands.ExitSuccess
}

// periodColumn is the header of the period column of a review.
func periodColumn(p date.Period) string {
	switch p {
	case date.Daily:
		return "Day"
	case date.Weekly:
		return "Week"
	case date.Quarterly:
		return "Quarter"
	case date.Yearly:
		return "Year"
	default:
		return "Month"
	}
}
