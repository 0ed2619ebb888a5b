package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tza-rng/internal/export"
	"github.com/vovakirdan/tza-rng/internal/search"
	"github.com/vovakirdan/tza-rng/internal/window"
)

var (
	flagRollCount  int
	flagRollFind   []int32
	flagRollLimit  int
	flagRollFormat string
)

var rollCmd = &cobra.Command{
	Use:   "roll [seed]",
	Short: "Show the draws of a known seed",
	Long: `Show the upcoming draws for a seed together with the heal each draw
would produce for the character and the chest chance byte (value mod 100).

Without a seed the configured window seed is used (4537 by default).
With --find the window is slid forward until the given heals sit at its
head, which is how a known seed is tracked while playing.

Examples:
  tzarng roll
  tzarng roll 6357987 --count 20
  tzarng roll 6357987 --find 2255,2063 --count 10
  tzarng roll 4537 --spell Curaga --format yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRoll,
}

func init() {
	rollCmd.Flags().IntVar(&flagRollCount, "count", 0, "Number of draws to show (default from config)")
	rollCmd.Flags().Int32SliceVar(&flagRollFind, "find", nil, "Slide until these heals lead the window")
	rollCmd.Flags().IntVar(&flagRollLimit, "limit", window.DefaultLimit, "Draws tried by --find")
	rollCmd.Flags().StringVar(&flagRollFormat, "format", "table",
		fmt.Sprintf("Output format: %s", strings.Join(export.Names(), ", ")))
}

func runRoll(cmd *cobra.Command, args []string) {
	seed := settings.Window.Seed
	if len(args) == 1 {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fail("invalid seed %q", args[0])
		}
		seed = uint32(v)
	}
	if !export.Exists(flagRollFormat) {
		fail("unknown format %q (available: %s)", flagRollFormat, strings.Join(export.Names(), ", "))
	}

	count := settings.Window.Size
	if cmd.Flags().Changed("count") {
		count = flagRollCount
	}
	if count <= 0 {
		fail("count must be positive")
	}

	character := settings.Character.Character()
	w := window.New(seed, character, count)
	if len(flagRollFind) > 0 && !w.FindNext(character, flagRollFind, flagRollLimit) {
		fail("heals %v not found within %d draws of seed %d", flagRollFind, flagRollLimit, seed)
	}

	out := cmd.OutOrStdout()
	if flagRollFormat != "table" {
		rec := search.Record{
			Status: search.StatusFound.String(),
			Seed:   seed,
			Draws:  w.Draws(),
		}
		if err := export.Write(out, flagRollFormat, rec); err != nil {
			fail("%v", err)
		}
		return
	}

	draws := w.Draws()
	fmt.Fprintf(out, "Seed %d - %s (level %d, magic %d, serenity %v)\n",
		seed, character.Spell.Name(), character.Level, character.Magic, character.Serenity)
	fmt.Fprintf(out, "Positions %d to %d\n", draws[0].Position, draws[len(draws)-1].Position)
	fmt.Fprintln(out, export.DrawTable(draws))
}
