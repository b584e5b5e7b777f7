package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/chart"
	"github.com/etnz/cashflow/dashboard"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	csv bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the cash flow report" }
func (*reportCmd) Usage() string {
	return `cfs report [-csv=false]

  Prints the overall figures, the monthly summary, the spending by category
  and the top merchants. The csv reports are written to the output directory.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", true, "Write the csv reports to the output directory.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	a, err := analyze(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Report(a))

	if c.csv {
		files, err := cashflow.EncodeReports(cfg.ReportsDir(), "report", a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		log.Info().Int("files", len(files)).Str("dir", cfg.ReportsDir()).Msg("csv reports written")
	}
	return subcommands.ExitSuccess
}

type analyzeCmd struct {
	charts bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "print the full analysis and write reports and charts" }
func (*analyzeCmd) Usage() string {
	return `cfs analyze [-charts=false]

  Prints the cash flow report followed by the quarterly and yearly summaries
  and the spending trends. The csv reports and the png charts are written to
  the output directory.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.charts, "charts", true, "Write the png charts to the output directory.")
}

func (c *analyzeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	a, err := analyze(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Report(a) + "\n" + renderer.AdvancedReport(a))

	files, err := cashflow.EncodeReports(cfg.ReportsDir(), "analysis", a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Int("files", len(files)).Str("dir", cfg.ReportsDir()).Msg("csv reports written")

	if c.charts {
		theme := chart.DefaultTheme()
		theme.Currency = cfg.Currency
		charts, err := dashboard.New(a, theme).SavePNG(cfg.ChartsDir(), log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		log.Info().Int("files", len(charts)).Str("dir", cfg.ChartsDir()).Msg("charts written")
	}
	return subcommands.ExitSuccess
}
