package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tza-rng/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistorySeed  uint32
	flagHistoryID    int64
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past searches",
	Long: `Display recent seed searches recorded by 'tzarng search', the UI and
the SSH server.

Examples:
  tzarng history
  tzarng history --limit 50
  tzarng history --seed 6357987
  tzarng history --id 12
  tzarng history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of searches to show")
	historyCmd.Flags().Uint32Var(&flagHistorySeed, "seed", 0, "Only show searches that found this seed")
	historyCmd.Flags().Int64Var(&flagHistoryID, "id", 0, "Only show the search with this ID")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the whole history")
}

func runHistory(cmd *cobra.Command, args []string) {
	// Open history storage
	store, err := storage.Open(settings.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagHistoryClear {
		if err := store.ClearSearches(); err != nil {
			store.Close() // os.Exit skips deferred calls
			fail("%v", err)
		}
		fmt.Fprintln(out, "History cleared.")
		return
	}

	entries, err := historyEntries(cmd, store)
	if err != nil {
		store.Close() // os.Exit skips deferred calls
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(out, "Search History")
	fmt.Fprintln(out)

	if len(entries) == 0 {
		fmt.Fprintln(out, "No searches recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'tzarng search <heal>...' to start one.")
		return
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %-10s  %-24s  %-22s  %s\n",
		"ID", "Date", "Result", "Seed", "Character", "Range", "Heals")
	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %-10s  %-24s  %-22s  %s\n",
		"--", "----", "------", "----", "---------", "-----", "-----")

	for _, e := range entries {
		result := "not found"
		seed := "-"
		if e.Found() {
			result = "found"
			seed = fmt.Sprintf("%d", e.Seed)
		}
		character := fmt.Sprintf("%s L%d M%d", e.Character.Spell.Name(), e.Character.Level, e.Character.Magic)
		if e.Character.Serenity {
			character += " +S"
		}
		fmt.Fprintf(out, "  %-4d  %-16s  %-10s  %-10s  %-24s  %-22s  %s\n",
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04"),
			result,
			seed,
			character,
			fmt.Sprintf("[%d, %d)", e.Min, e.Max),
			formatHeals(e.Target),
		)
	}

	// Show totals
	fmt.Fprintln(out)
	if stats, err := store.Stats(); err == nil {
		fmt.Fprintf(out, "Total: %d searches, %d found, %d seeds checked\n",
			stats.Searches, stats.Found, stats.SeedsChecked)
	}
}

// historyEntries selects the searches to show from the flags.
func historyEntries(cmd *cobra.Command, store *storage.Store) ([]storage.SearchEntry, error) {
	flags := cmd.Flags()
	switch {
	case flags.Changed("id"):
		entry, err := store.SearchByID(flagHistoryID)
		if err != nil || entry == nil {
			return nil, err
		}
		return []storage.SearchEntry{*entry}, nil
	case flags.Changed("seed"):
		return store.SearchesBySeed(flagHistorySeed)
	default:
		return store.RecentSearches(flagHistoryLimit)
	}
}

func formatHeals(heals []int32) string {
	parts := make([]string, len(heals))
	for i, h := range heals {
		parts[i] = fmt.Sprintf("%d", h)
	}
	return strings.Join(parts, " ")
}
