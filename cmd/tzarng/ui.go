package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tza-rng/internal/platform/tui"
	"github.com/vovakirdan/tza-rng/internal/search"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Interactive terminal UI",
	Long: `Start the interactive seed finder.

Enter the character, type the heals you observed and either press Enter to
find them in the current seed's draws or Ctrl+F to search for the seed.
Searches run in the background; the UI stays usable meanwhile.

Controls:
  Tab/Shift+Tab  - Move between fields
  Space/Left/Right - Change spell, toggle serenity
  Enter          - Find next occurrence of the heals
  Ctrl+F         - Search for the seed
  Up/Down        - Scroll the draws
  F1             - All keys
  Esc/Ctrl+C     - Quit

Examples:
  tzarng ui
  tzarng ui --level 45 --magic 60 --spell Cura --serenity=false`,
	Args: cobra.NoArgs,
	Run:  runUI,
}

func runUI(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fail("the UI needs a terminal; use 'tzarng search' in scripts")
	}

	// Logs would draw over the UI
	logger := newLogger("tzarng")
	logger.SetOutput(io.Discard)

	searcher := settings.Search.Searcher()
	searcher.Logger = logger
	pool := search.NewPool(search.DefaultPoolConfig(), searcher, logger)
	if store := openHistory(logger); store != nil {
		defer store.Close()
		pool.SetResultSaver(store)
	}
	pool.Start()
	defer pool.Stop()

	opts := tui.NewOptions(settings, pool)

	// Get terminal size early so the first frame fits
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		opts.Width = w
		opts.Height = h
	}

	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}
