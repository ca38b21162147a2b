package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	stockstudy "github.com/Dream-page/stockstudy"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the portfolio valuation" }
func (*summaryCmd) Usage() string {
	return `summary

  Shows the portfolio total in KRW with the KR/US breakdown, US positions
  converted at the current exchange rate.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	snap := state.Snapshot()
	rate := snap.Settings.ExchangeRate
	v := stockstudy.Valuate(snap.Portfolio, rate.Rate)
	score := stockstudy.ScoreIndicators(snap.Indicators)

	var b strings.Builder
	b.WriteString("# Portfolio summary\n\n")
	fmt.Fprintf(&b, "- Total: **%s**\n", stockstudy.FormatMoney(v.TotalKRW, "KRW"))
	fmt.Fprintf(&b, "- KR stocks: %s\n", stockstudy.FormatMoney(v.KRStocksValue, "KRW"))
	fmt.Fprintf(&b, "- US stocks: %s (%s)\n",
		stockstudy.FormatMoney(v.USStocksValue, "USD"), stockstudy.FormatMoney(v.USStocksInKRW, "KRW"))
	fmt.Fprintf(&b, "- Exchange rate: %.0f KRW/USD (%s, %s)\n",
		rate.Rate, rate.Source, rate.LastUpdated.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- Market score: %d (%.0f%%)\n", score.Total, score.Percent())
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
