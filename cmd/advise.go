package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Dream-page/stockstudy/advisor"
	"github.com/google/subcommands"
)

type adviseCmd struct{}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "generate an AI review of the portfolio" }
func (*adviseCmd) Usage() string {
	return `advise

  Sends the portfolio, P&L and macro picture to Gemini and renders the
  returned review. Requires GEMINI_API_KEY in the environment.
`
}

func (*adviseCmd) SetFlags(_ *flag.FlagSet) {}

func (*adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	a, err := advisor.New(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	review, err := a.AnalyzePortfolio(ctx, state.Snapshot())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: analysis failed:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(review)
	return subcommands.ExitSuccess
}

type quizCmd struct{}

func (*quizCmd) Name() string     { return "quiz" }
func (*quizCmd) Synopsis() string { return "generate a quiz from the study notes" }
func (*quizCmd) Usage() string {
	return `quiz

  Asks Gemini for a short comprehension quiz over the most recent study
  notes. Requires GEMINI_API_KEY in the environment.
`
}

func (*quizCmd) SetFlags(_ *flag.FlagSet) {}

func (*quizCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	a, err := advisor.New(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	quiz, err := a.Quiz(ctx, state.Snapshot().Studies)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: quiz generation failed:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(quiz)
	return subcommands.ExitSuccess
}
