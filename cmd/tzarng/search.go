package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tza-rng/internal/export"
)

var (
	flagMin       uint32
	flagMax       uint32
	flagLimit     int
	flagFormat    string
	flagGrow      int
	flagNoHistory bool
)

var searchCmd = &cobra.Command{
	Use:   "search <heal>...",
	Short: "Find the seed behind a run of heals",
	Long: `Try every seed in [min, max) until one reproduces the given heals,
in the order they were cast. Each seed is given --limit draws to line up
with the heals.

Longer runs of heals make a unique match more likely. With more than one
worker, the seed reported when several match is not fixed; use --workers 1
to always get the lowest one.

Every finished search is recorded in the history database.

Examples:
  tzarng search 2255 2063 2029 2211 2195 --min 6000000 --max 6500000 --limit 1000
  tzarng search 2259 2213 2044 --format json
  tzarng search 2255 2063 2029 --spell Cure --level 70 --magic 99 --grow 50`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSearch,
}

func init() {
	searchCmd.Flags().Uint32Var(&flagMin, "min", 0, "First seed to try (default from config)")
	searchCmd.Flags().Uint32Var(&flagMax, "max", 0, "Stop before this seed (default from config)")
	searchCmd.Flags().IntVar(&flagLimit, "limit", 0, "Draws tried per seed (default from config)")
	searchCmd.Flags().StringVar(&flagFormat, "format", "table",
		fmt.Sprintf("Output format: %s", strings.Join(export.Names(), ", ")))
	searchCmd.Flags().IntVar(&flagGrow, "grow", 0, "Widen the matched window to this many draws")
	searchCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record the search")
}

func runSearch(cmd *cobra.Command, args []string) {
	target, err := parseHeals(args)
	if err != nil {
		fail("%v", err)
	}
	if !export.Exists(flagFormat) {
		fail("unknown format %q (available: %s)", flagFormat, strings.Join(export.Names(), ", "))
	}

	flags := cmd.Flags()
	if flags.Changed("min") {
		settings.Search.Min = flagMin
	}
	if flags.Changed("max") {
		settings.Search.Max = flagMax
	}
	if flags.Changed("limit") {
		settings.Search.Limit = flagLimit
	}

	logger := newLogger("tzarng")
	character := settings.Character.Character()
	req := settings.Search.Request(character, target).Normalize()
	if req.Span() == 0 {
		fail("empty seed range [%d, %d)", req.Min, req.Max)
	}

	searcher := settings.Search.Searcher()
	searcher.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := searcher.Find(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fail("search interrupted after %d seeds", res.Checked)
		}
		fail("search failed: %v", err)
	}

	if !flagNoHistory {
		if store := openHistory(logger); store != nil {
			if err := store.SaveSearch(req, res); err != nil {
				logger.Warn("could not save search", "error", err)
			}
			store.Close()
		}
	}

	if res.Found() && flagGrow > 0 {
		res.Window.Grow(character, flagGrow)
	}

	if err := export.Write(cmd.OutOrStdout(), flagFormat, res.Record()); err != nil {
		fail("%v", err)
	}
}

// parseHeals reads heal values from the command line.
func parseHeals(args []string) ([]int32, error) {
	heals := make([]int32, 0, len(args))
	for _, a := range args {
		// Allow "2255,2063" as well as separate arguments
		for _, part := range strings.Split(a, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseInt(part, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid heal %q", part)
			}
			heals = append(heals, int32(v))
		}
	}
	if len(heals) == 0 {
		return nil, errors.New("at least one heal is required")
	}
	return heals, nil
}
