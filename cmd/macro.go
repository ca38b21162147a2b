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

type macroCmd struct{}

func (*macroCmd) Name() string     { return "macro" }
func (*macroCmd) Synopsis() string { return "show the macro indicators and market score" }
func (*macroCmd) Usage() string {
	return `macro

  Shows the ten macro indicators with their values and judgments, and the
  aggregated market score.
`
}

func (*macroCmd) SetFlags(_ *flag.FlagSet) {}

func (*macroCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	indicators := state.Indicators()
	score := stockstudy.ScoreIndicators(indicators)

	var b strings.Builder
	b.WriteString("| ID | Indicator | Value | Unit | Judgment |\n")
	b.WriteString("|---|---|---:|---|---:|\n")
	for _, ind := range indicators {
		fmt.Fprintf(&b, "| %s | %s | %v | %s | %+d |\n", ind.ID, ind.Name, ind.Value, ind.Unit, ind.Judgment)
	}
	fmt.Fprintf(&b, "\nMarket score: **%d** (%.0f%%)\n", score.Total, score.Percent())
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type setMacroCmd struct {
	id       string
	value    float64
	judgment int
}

func (*setMacroCmd) Name() string     { return "set-macro" }
func (*setMacroCmd) Synopsis() string { return "update one macro indicator" }
func (*setMacroCmd) Usage() string {
	return `set-macro -id <id> -value <n> [-judgment <-2..2>]

  Sets the value and judgment of one indicator (see macro for ids).
  Judgments: -2 strong sell, -1 sell, 0 neutral, 1 buy, 2 strong buy.
`
}

func (c *setMacroCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Indicator id (required)")
	f.Float64Var(&c.value, "value", 0, "New value (required)")
	f.IntVar(&c.judgment, "judgment", 0, "Judgment from -2 (strong sell) to 2 (strong buy)")
}

func (c *setMacroCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := state.UpdateIndicator(c.id, c.value, stockstudy.Judgment(c.judgment)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %s to %v (judgment %+d)\n", c.id, c.value, c.judgment)
	return subcommands.ExitSuccess
}
