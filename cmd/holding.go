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

type addHoldingCmd struct {
	name     string
	ticker   string
	country  string
	category string
	quantity float64
	avg      float64
}

func (*addHoldingCmd) Name() string     { return "add-holding" }
func (*addHoldingCmd) Synopsis() string { return "add a position to the portfolio" }
func (*addHoldingCmd) Usage() string {
	return `add-holding -name <name> -ticker <ticker> -country <KR|US> [-category <category>] -quantity <n> -avg <price>

  Adds a position. The currency follows the country (KR: KRW, US: USD) and
  the current price starts at the average price until the next refresh.
`
}

func (c *addHoldingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name (required)")
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol as it appears in the price sheet (required)")
	f.StringVar(&c.country, "country", "", "Market country, KR or US (required)")
	f.StringVar(&c.category, "category", "growth", "Category: leverage, growth, dividend, inverse, value, defense")
	f.Float64Var(&c.quantity, "quantity", 0, "Share count; fractional allowed for US holdings")
	f.Float64Var(&c.avg, "avg", 0, "Average cost basis per share")
}

func (c *addHoldingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.ticker == "" || c.country == "" {
		fmt.Fprintln(os.Stderr, "Error: -name, -ticker and -country are required.")
		return subcommands.ExitUsageError
	}
	country, err := stockstudy.ParseCountry(c.country)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	category, err := stockstudy.ParseCategory(c.category)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	h := stockstudy.NewHolding(c.name, c.ticker, country, category, c.quantity, c.avg)
	if err := state.AddHolding(h); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %s (%s) as %s\n", h.Name, h.Ticker, h.ID)
	return subcommands.ExitSuccess
}

type listHoldingsCmd struct{}

func (*listHoldingsCmd) Name() string     { return "holdings" }
func (*listHoldingsCmd) Synopsis() string { return "list portfolio positions" }
func (*listHoldingsCmd) Usage() string {
	return `holdings

  Lists every position with its current price and unrealized P&L.
`
}

func (*listHoldingsCmd) SetFlags(_ *flag.FlagSet) {}

func (*listHoldingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	holdings := state.Portfolio()
	if len(holdings) == 0 {
		fmt.Println("Portfolio is empty. Use add-holding or let `sync` bootstrap it from the sheet.")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	b.WriteString("| Name | Ticker | Qty | Avg | Current | P&L % | ID |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---|\n")
	for _, h := range holdings {
		pl := stockstudy.PositionProfitLoss(h)
		fmt.Fprintf(&b, "| %s | %s | %v | %v | %v | %s | %s |\n",
			h.Name, h.Ticker, h.Quantity, h.AvgPrice, h.CurrentPrice, pl.Rate.StringFixed(1), h.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type rmHoldingCmd struct {
	id string
}

func (*rmHoldingCmd) Name() string     { return "rm-holding" }
func (*rmHoldingCmd) Synopsis() string { return "remove a position from the portfolio" }
func (*rmHoldingCmd) Usage() string {
	return `rm-holding -id <id>

  Removes the position with the given id (see the holdings command for ids).
`
}

func (c *rmHoldingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Holding id (required)")
}

func (c *rmHoldingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := state.DeleteHolding(c.id); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Removed", c.id)
	return subcommands.ExitSuccess
}
