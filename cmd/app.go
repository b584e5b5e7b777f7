// Package cmd implements the cfs command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/bank"
	"github.com/etnz/cashflow/config"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&loadCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&ratesCmd{}, "data")
	c.Register(&historyCmd{}, "data")

	c.Register(&reportCmd{}, "reports")
	c.Register(&analyzeCmd{}, "reports")
	c.Register(&reviewCmd{}, "reports")
	c.Register(&categoryCmd{}, "reports")

	c.Register(&serveCmd{}, "tools")
	c.Register(&AssistCmd{}, "tools")
	c.Register(&topicCmd{}, "tools")
}

// DefaultConfigFile is read when it exists and no other file is given.
const DefaultConfigFile = "cashflow.yaml"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", DefaultConfigFile, "Path to the yaml configuration file.")
	dataDir    = flag.String("data-dir", "", "Directory holding the combined transactions, overrides the configuration.")
	Verbose    = flag.Bool("v", false, "Enable debug logs.")
)

// newLogger returns the logger of the commands, writing on stderr.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()
}

// loadConfig loads the configuration file and the environment. The default
// file is optional.
func loadConfig(log zerolog.Logger) (config.Config, error) {
	path := *configFile
	if path == DefaultConfigFile {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.NewLoader(path, log).Load()
	if err != nil {
		return cfg, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	return cfg, nil
}

// setup loads the configuration and opens the store.
func setup() (config.Config, *cashflow.Store, zerolog.Logger, error) {
	log := newLogger()
	cfg, err := loadConfig(log)
	if err != nil {
		return cfg, nil, log, err
	}
	return cfg, cashflow.NewStore(cfg.DataDir, log), log, nil
}

// readOptions returns how bank exports are read with cfg.
func readOptions(cfg config.Config, password string, log zerolog.Logger) bank.Options {
	return bank.Options{Rates: cfg.ExchangeRates(), Password: password, Log: log}
}

// analyze loads and analyzes the stored transactions.
func analyze(store *cashflow.Store) (*cashflow.Analysis, error) {
	txs, err := store.Load()
	if err != nil {
		return nil, err
	}
	a, err := cashflow.Analyze(txs)
	if errors.Is(err, cashflow.ErrNoData) {
		return nil, fmt.Errorf("%w in %s, run 'cfs load' or 'cfs import' first", err, store.Path())
	}
	return a, err
}

// printMarkdown renders markdown on the terminal, or prints it as is when it
// cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// renderMarkdown is like printMarkdown but returns the rendered text.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
