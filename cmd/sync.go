package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dream-page/stockstudy/fx"
	"github.com/Dream-page/stockstudy/syncer"
	"github.com/google/subcommands"
)

type syncCmd struct {
	interval time.Duration
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "run the price synchronization daemon" }
func (*syncCmd) Usage() string {
	return `sync [-interval <duration>]

  Runs one synchronization cycle immediately, then one per interval until
  interrupted. Each cycle bootstraps the portfolio from the sheet when it is
  empty, refreshes prices and the exchange rate, and falls back to public
  rate APIs when the sheet is unreachable.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.interval, "interval", syncer.DefaultInterval, "Delay between synchronization cycles")
}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	s := &syncer.Syncer{
		Store:    state,
		Sheets:   NewSheetClient(),
		Rates:    fx.New(),
		Interval: c.interval,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.Run(ctx)
	return subcommands.ExitSuccess
}
