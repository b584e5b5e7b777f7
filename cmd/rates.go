package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type ratesCmd struct {
	fetch  bool
	amount string
	from   string
	to     string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "show the exchange rates and convert amounts" }
func (*ratesCmd) Usage() string {
	return `cfs rates [-fetch] [-amount <amount> -from <currency> [-to <currency>]]

  Prints the exchange rates used to convert bank exports. With -fetch, the
  rates are read from the configured rate source instead. With -amount, the
  amount is converted.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.fetch, "fetch", false, "read the rates from the configured rate source")
	f.StringVar(&c.amount, "amount", "", "amount to convert")
	f.StringVar(&c.from, "from", "", "currency of the amount")
	f.StringVar(&c.to, "to", "", "currency to convert into, defaults to the reporting currency")
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rates := cfg.ExchangeRates()

	if c.fetch {
		if cfg.RateSource == nil {
			fmt.Fprintln(os.Stderr, "Error: no rate_source in the configuration")
			return subcommands.ExitFailure
		}
		client := cashflow.DailyClient(log)
		for cur, path := range cfg.RateSource.Paths {
			units, err := cashflow.FetchRate(ctx, client, cfg.RateSource.URL, path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s: %v\n", cur, err)
				return subcommands.ExitFailure
			}
			log.Debug().Str("currency", cur).Stringer("units", units).Msg("rate fetched")
			rates.Set(cur, units)
		}
	}

	if c.amount == "" {
		printMarkdown(renderer.RatesMarkdown(rates))
		return subcommands.ExitSuccess
	}

	from := strings.ToUpper(c.from)
	if from == "" {
		fmt.Fprintln(os.Stderr, "Error: -from is required with -amount")
		return subcommands.ExitUsageError
	}
	to := strings.ToUpper(c.to)
	if to == "" {
		to = rates.Base()
	}
	m, err := cashflow.ParseMoney(c.amount, from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	converted, err := rates.Convert(m, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s = %s\n", m, converted.Round())
	return subcommands.ExitSuccess
}
