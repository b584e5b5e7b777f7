// Command cfs analyzes bank exports: it combines them into a single
// transactions file, prints reports and serves an interactive dashboard.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/cashflow/cmd"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	completion(commander).Complete("cfs")

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !registered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		if sc.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line for shell completion.
func completion(c *subcommands.Commander) *complete.Command {
	periods := predict.Set{}
	for _, p := range date.Periods {
		periods = append(periods, p.String())
	}
	exports := predict.Files("*.csv")

	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.yaml"),
			"data-dir": predict.Dirs("*"),
			"v":        predict.Nothing,
		},
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		root.Sub[sc.Name()] = &complete.Command{}
	})
	root.Sub["load"] = &complete.Command{Args: predict.Or(exports, predict.Files("*.xlsx"))}
	root.Sub["import"] = &complete.Command{
		Flags: map[string]complete.Predictor{"password": predict.Something},
		Args:  predict.Or(exports, predict.Files("*.xlsx")),
	}
	root.Sub["review"] = &complete.Command{Flags: map[string]complete.Predictor{"p": periods}}
	root.Sub["category"] = &complete.Command{Flags: map[string]complete.Predictor{"p": periods, "no-tx": predict.Nothing}}
	root.Sub["serve"] = &complete.Command{Flags: map[string]complete.Predictor{"addr": predict.Something}}
	root.Sub["rates"] = &complete.Command{Flags: map[string]complete.Predictor{
		"fetch": predict.Nothing, "amount": predict.Something, "from": predict.Something, "to": predict.Something,
	}}
	topics, _ := docs.GetAllTopics()
	root.Sub["topic"] = &complete.Command{
		Flags: map[string]complete.Predictor{"list": predict.Nothing, "raw": predict.Nothing},
		Args:  predict.Set(append([]string{docs.Readme}, topics...)),
	}
	return root
}
