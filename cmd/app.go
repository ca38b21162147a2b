// Package cmd implements the CLI application to manage the investment log.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	stockstudy "github.com/Dream-page/stockstudy"
	"github.com/Dream-page/stockstudy/kv"
	"github.com/Dream-page/stockstudy/sheet"
	"github.com/google/subcommands"
)

// Commands is the list of all subcommands, registered by the main package.
var Commands = []subcommands.Command{
	&syncCmd{},
	&refreshCmd{},
	&addHoldingCmd{},
	&listHoldingsCmd{},
	&rmHoldingCmd{},
	&summaryCmd{},
	&addJournalCmd{},
	&journalsCmd{},
	&rmJournalCmd{},
	&pullStudiesCmd{},
	&studiesCmd{},
	&doneStudyCmd{},
	&macroCmd{},
	&setMacroCmd{},
	&rateCmd{},
	&adviseCmd{},
	&quizCmd{},
	&backupCmd{},
	&restoreCmd{},
	&topicCmd{},
}

// as a CLI application with a short lifecycle, global flags are fine here.

var dataDir = flag.String("data-dir", "", "Directory holding the application data.\n If missing it will read the environment variable \"STOCKSTUDY_DIR\", defaulting to ~/.stockstudy")

var pricesURL = flag.String("prices-url", "", "Published-sheet CSV endpoint for the price table.\n If missing it will read the environment variable \"SHEET_PRICES_URL\"")
var portfolioURL = flag.String("portfolio-url", "", "Published-sheet CSV endpoint for the portfolio definition.\n If missing it will read the environment variable \"SHEET_PORTFOLIO_URL\"")
var studyFeedURL = flag.String("studyfeed-url", "", "Published-sheet CSV endpoint for the study feed.\n If missing it will read the environment variable \"SHEET_STUDYFEED_URL\"")

func flagOrEnv(flagValue *string, env string) string {
	if *flagValue == "" {
		*flagValue = os.Getenv(env)
	}
	return *flagValue
}

func resolveDataDir() string {
	dir := flagOrEnv(dataDir, "STOCKSTUDY_DIR")
	if dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stockstudy"
	}
	return filepath.Join(home, ".stockstudy")
}

// OpenState opens the persistent store and loads the application state.
// Durability warnings go to stderr.
func OpenState() (*stockstudy.Store, error) {
	store, err := kv.NewDirStore(resolveDataDir(), func(msg string) {
		fmt.Fprintln(os.Stderr, "warning:", msg)
	})
	if err != nil {
		return nil, err
	}
	return stockstudy.Open(store), nil
}

// NewSheetClient builds the sheet client from flags and environment.
func NewSheetClient() *sheet.Client {
	return &sheet.Client{
		PricesURL:    flagOrEnv(pricesURL, "SHEET_PRICES_URL"),
		PortfolioURL: flagOrEnv(portfolioURL, "SHEET_PORTFOLIO_URL"),
		StudyFeedURL: flagOrEnv(studyFeedURL, "SHEET_STUDYFEED_URL"),
	}
}
