package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/cashflow/chart"
	"github.com/etnz/cashflow/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the interactive dashboard" }
func (*serveCmd) Usage() string {
	return `cfs serve [-addr <host:port>]

  Serves the dashboard, the json api and the upload form until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Address to listen on, defaults to the configured one.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	addr := c.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	theme := chart.DefaultTheme()
	theme.Currency = cfg.Currency
	srv := server.New(store, log, server.Options{
		MaxUpload:        cfg.Server.MaxUpload,
		UploadsPerMinute: cfg.Server.UploadsPerMinute,
		Bank:             readOptions(cfg, cfg.ExcelPassword, log),
		Categorizer:      cfg.Categorizer(),
		Theme:            theme,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Printf("Dashboard available at http://%s\n", addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
