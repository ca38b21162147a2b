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

type addJournalCmd struct {
	typ   string
	stock string
}

func (*addJournalCmd) Name() string     { return "add-journal" }
func (*addJournalCmd) Synopsis() string { return "record a trading journal entry" }
func (*addJournalCmd) Usage() string {
	return `add-journal -type <buy|sell|hold> [-stock <name>] <content...>

  Records a journal entry dated now. The content is the remaining arguments.
`
}

func (c *addJournalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "hold", "Entry type: buy, sell or hold")
	f.StringVar(&c.stock, "stock", "전체", "Stock the entry is about")
}

func (c *addJournalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: journal content is required.")
		return subcommands.ExitUsageError
	}
	typ, err := stockstudy.ParseJournalType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	entry := stockstudy.NewJournalEntry(typ, c.stock, strings.Join(f.Args(), " "))
	state.AddJournal(entry)
	fmt.Println("Recorded", entry.ID)
	return subcommands.ExitSuccess
}

type journalsCmd struct{}

func (*journalsCmd) Name() string     { return "journals" }
func (*journalsCmd) Synopsis() string { return "list journal entries, newest first" }
func (*journalsCmd) Usage() string {
	return `journals

  Lists journal entries, newest first.
`
}

func (*journalsCmd) SetFlags(_ *flag.FlagSet) {}

func (*journalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	snap := state.Snapshot()
	if len(snap.Journals) == 0 {
		fmt.Println("No journal entries yet.")
		return subcommands.ExitSuccess
	}
	var b strings.Builder
	for _, j := range snap.Journals {
		fmt.Fprintf(&b, "- **%s** [%s] %s: %s (%s)\n",
			j.Date.Format("2006-01-02"), j.Type, j.Stock, j.Content, j.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type rmJournalCmd struct {
	id string
}

func (*rmJournalCmd) Name() string     { return "rm-journal" }
func (*rmJournalCmd) Synopsis() string { return "delete a journal entry" }
func (*rmJournalCmd) Usage() string {
	return `rm-journal -id <id>

  Deletes the journal entry with the given id.
`
}

func (c *rmJournalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Journal entry id (required)")
}

func (c *rmJournalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := state.DeleteJournal(c.id); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Deleted", c.id)
	return subcommands.ExitSuccess
}
