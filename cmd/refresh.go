package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Dream-page/stockstudy/fx"
	"github.com/Dream-page/stockstudy/syncer"
	"github.com/google/subcommands"
)

type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "run a single synchronization cycle now" }
func (*refreshCmd) Usage() string {
	return `refresh

  Runs one synchronization cycle and exits. Useful to refresh prices on
  demand without the daemon.
`
}

func (*refreshCmd) SetFlags(_ *flag.FlagSet) {}

func (*refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	s := &syncer.Syncer{
		Store:  state,
		Sheets: NewSheetClient(),
		Rates:  fx.New(),
	}
	if err := s.RunCycle(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error: synchronization cycle failed:", err)
		return subcommands.ExitFailure
	}

	settings := state.Settings()
	fmt.Printf("Refreshed %d holdings, exchange rate %.0f KRW/USD (%s)\n",
		len(state.Portfolio()), settings.ExchangeRate.Rate, settings.ExchangeRate.Source)
	return subcommands.ExitSuccess
}
