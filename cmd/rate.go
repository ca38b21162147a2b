package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rateCmd struct {
	set float64
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "show or manually set the USD/KRW exchange rate" }
func (*rateCmd) Usage() string {
	return `rate [-set <rate>]

  Without -set, shows the current exchange rate and where it came from.
  With -set, records a manual rate; the value must be inside the plausible
  range (100-10,000) or it is rejected.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.set, "set", 0, "Manual USD/KRW rate to record")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.set != 0 {
		if err := state.SetManualExchangeRate(c.set); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Exchange rate set to %.0f KRW/USD (manual)\n", c.set)
		return subcommands.ExitSuccess
	}

	rate := state.Settings().ExchangeRate
	fmt.Printf("%.0f KRW/USD (%s, updated %s)\n",
		rate.Rate, rate.Source, rate.LastUpdated.Format("2006-01-02 15:04"))
	return subcommands.ExitSuccess
}
