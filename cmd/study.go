package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
)

type pullStudiesCmd struct{}

func (*pullStudiesCmd) Name() string     { return "pull-studies" }
func (*pullStudiesCmd) Synopsis() string { return "import recent items from the study-feed sheet" }
func (*pullStudiesCmd) Usage() string {
	return `pull-studies

  Imports study items from the last 3 days of the study-feed sheet. Items
  whose title is already known are skipped.
`
}

func (*pullStudiesCmd) SetFlags(_ *flag.FlagSet) {}

func (*pullStudiesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	items, err := NewSheetClient().FetchStudyItems(ctx, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: could not fetch study feed:", err)
		return subcommands.ExitFailure
	}
	added := state.AddStudies(items)
	fmt.Printf("Imported %d new study items (%d fetched)\n", added, len(items))
	return subcommands.ExitSuccess
}

type studiesCmd struct{}

func (*studiesCmd) Name() string     { return "studies" }
func (*studiesCmd) Synopsis() string { return "list study notes" }
func (*studiesCmd) Usage() string {
	return `studies

  Lists study notes and feed items with their completion state.
`
}

func (*studiesCmd) SetFlags(_ *flag.FlagSet) {}

func (*studiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	snap := state.Snapshot()
	if len(snap.Studies) == 0 {
		fmt.Println("No study notes yet. Use pull-studies to import the feed.")
		return subcommands.ExitSuccess
	}
	var b strings.Builder
	for _, n := range snap.Studies {
		check := " "
		if n.Completed {
			check = "x"
		}
		fmt.Fprintf(&b, "- [%s] **%s**", check, n.Title)
		if n.Source != "" {
			fmt.Fprintf(&b, " (%s)", n.Source)
		}
		if n.Link != "" {
			fmt.Fprintf(&b, " <%s>", n.Link)
		}
		fmt.Fprintf(&b, " %s\n", n.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type doneStudyCmd struct {
	id string
}

func (*doneStudyCmd) Name() string     { return "done-study" }
func (*doneStudyCmd) Synopsis() string { return "mark a study note as completed" }
func (*doneStudyCmd) Usage() string {
	return `done-study -id <id>

  Marks the study note with the given id as completed.
`
}

func (c *doneStudyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Study note id (required)")
}

func (c *doneStudyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	snap := state.Snapshot()
	for _, n := range snap.Studies {
		if n.ID == c.id {
			n.Completed = true
			if err := state.UpdateStudy(n); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return subcommands.ExitFailure
			}
			fmt.Println("Completed", n.Title)
			return subcommands.ExitSuccess
		}
	}
	fmt.Fprintf(os.Stderr, "Error: no study note with id %q\n", c.id)
	return subcommands.ExitFailure
}
