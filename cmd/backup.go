package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	stockstudy "github.com/Dream-page/stockstudy"
	"github.com/google/subcommands"
)

// backupFile is the export format: the full state snapshot plus a version
// header so a future format change can stay readable.
type backupFile struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	stockstudy.Snapshot
}

const backupVersion = "1.0.0"

type backupCmd struct {
	out string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "export the whole state to a JSON file" }
func (*backupCmd) Usage() string {
	return `backup [-o <file>]

  Writes the portfolio, journals, studies, macro indicators and settings as
  one JSON document. Defaults to stdout.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "Output file; stdout when empty")
}

func (c *backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	b := backupFile{
		Version:    backupVersion,
		ExportedAt: time.Now(),
		Snapshot:   state.Snapshot(),
	}
	content, err := json.MarshalIndent(b, "", " ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: cannot serialize backup:", err)
		return subcommands.ExitFailure
	}

	if c.out == "" {
		fmt.Println(string(content))
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.out, content, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "Error: cannot write backup:", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Backup written to", c.out)
	return subcommands.ExitSuccess
}

type restoreCmd struct {
	in string
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "replace the whole state from a backup file" }
func (*restoreCmd) Usage() string {
	return `restore -i <file>

  Replaces the current state with the backup's content. Slices missing from
  the backup default to empty (indicators and settings keep their current
  values).
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "i", "", "Backup file to restore from (required)")
}

func (c *restoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.in == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required.")
		return subcommands.ExitUsageError
	}
	content, err := os.ReadFile(c.in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: cannot read backup:", err)
		return subcommands.ExitFailure
	}
	var b backupFile
	if err := json.Unmarshal(content, &b); err != nil {
		fmt.Fprintln(os.Stderr, "Error: cannot parse backup:", err)
		return subcommands.ExitFailure
	}

	state, err := OpenState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	state.RestoreAll(b.Snapshot)
	fmt.Printf("Restored %d holdings, %d journals, %d studies\n",
		len(b.Portfolio), len(b.Journals), len(b.Studies))
	return subcommands.ExitSuccess
}
