package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/bank"
	"github.com/etnz/cashflow/config"
	"github.com/google/subcommands"
)

type loadCmd struct{}

func (*loadCmd) Name() string     { return "load" }
func (*loadCmd) Synopsis() string { return "load bank exports into a new combined transactions file" }
func (*loadCmd) Usage() string {
	return `cfs load [<file>...]

  Reads the sources of the configuration, or the given files, and replaces the
  combined transactions file with their transactions. Encrypted workbooks use
  their configured password, or the KOREAN_BANK_PASSWORD environment variable.
`
}

func (c *loadCmd) SetFlags(f *flag.FlagSet) {}

func (c *loadCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	sources := cfg.Sources
	if f.NArg() > 0 {
		sources = nil
		for _, path := range f.Args() {
			sources = append(sources, config.Source{Path: path})
		}
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no bank export to load, list them as arguments or in the configuration")
		return subcommands.ExitUsageError
	}

	var all cashflow.Transactions
	var loaded []loadedFile
	for _, src := range sources {
		imp, err := bank.ReadFile(src.Path, readOptions(cfg, cfg.PasswordFor(src), log))
		if errors.Is(err, bank.ErrPassword) {
			log.Warn().Str("file", src.Path).Msg("skipping encrypted workbook, set its password")
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		all = append(all, imp.Transactions...)
		loaded = append(loaded, loadedFile{Path: src.Path, Import: imp})
	}
	if len(all) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no transaction loaded")
		return subcommands.ExitFailure
	}

	n := cfg.Categorizer().Categorize(all)
	log.Debug().Int("transactions", n).Msg("categorized")
	all = all.Dedup()
	if err := store.Save(all); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, l := range loaded {
		if err := store.Record(filepath.Base(l.Path), l.Import.Bank(), len(l.Import.Transactions), l.Import.Currency(), "cli"); err != nil {
			log.Warn().Err(err).Msg("cannot record import")
		}
	}

	for _, l := range loaded {
		fmt.Printf("%s: read %d %s transactions\n", filepath.Base(l.Path), len(l.Import.Transactions), l.Import.Bank())
	}
	fmt.Printf("Saved %d transactions to %s\n", len(all), store.Path())
	return subcommands.ExitSuccess
}

type loadedFile struct {
	Path   string
	Import bank.Import
}

type importCmd struct {
	password string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "add bank exports to the combined transactions file" }
func (*importCmd) Usage() string {
	return `cfs import [-password <password>] <file>...

  Adds the transactions of the bank exports to the combined transactions file.
  Transactions already present are not duplicated.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "password", "", "Password of encrypted workbooks, defaults to the configured one.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing file to import")
		return subcommands.ExitUsageError
	}
	cfg, store, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	password := c.password
	if password == "" {
		password = cfg.ExcelPassword
	}
	categorizer := cfg.Categorizer()
	for _, path := range f.Args() {
		imp, err := bank.ReadFile(path, readOptions(cfg, password, log))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		categorizer.Categorize(imp.Transactions)
		total, err := store.Append(imp.Transactions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := store.Record(filepath.Base(path), imp.Bank(), len(imp.Transactions), imp.Currency(), "cli"); err != nil {
			log.Warn().Err(err).Msg("cannot record import")
		}
		fmt.Printf("%s: read %d %s transactions, %d stored\n", filepath.Base(path), len(imp.Transactions), imp.Bank(), total)
	}
	return subcommands.ExitSuccess
}
