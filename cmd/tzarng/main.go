// tzarng recovers the heal RNG seed of Final Fantasy XII: The Zodiac Age
// from a short run of observed heal amounts.
//
// Usage:
//
//	tzarng search <heal>...   - Search for the seed that produced the heals
//	tzarng roll [seed]        - Show the draws of a known seed
//	tzarng spells             - List spells and heal ranges
//	tzarng history            - Show past searches
//	tzarng ui                 - Interactive terminal UI
//	tzarng serve              - Serve the terminal UI over SSH
//	tzarng config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.tzarng/config.yaml)
//	--db <path>          - History database (default: ~/.tzarng/history.db)
//	--log-level <level>  - debug, info, warn or error
//	--level, --magic, --spell, --serenity - Character overrides
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tza-rng/internal/config"
	"github.com/vovakirdan/tza-rng/internal/heal"
	"github.com/vovakirdan/tza-rng/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagWorkers  int

	// Character flags
	flagLevel    int
	flagMagic    int
	flagSpell    string
	flagSerenity bool
)

// settings is the configuration after file, environment and flag overrides.
var settings config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tzarng",
	Short: "Heal RNG seed finder for FFXII: The Zodiac Age",
	Long: `tzarng finds the seed of the game's Mersenne Twister by brute force.
Cast a heal spell a few times, note the amounts healed and search for the
seed that reproduces them. Once the seed is known, upcoming rolls (heals and
chest chances) can be read off in advance.

Available commands:
  search   - Find the seed behind a run of heals
  roll     - Show the draws of a known seed
  spells   - List spells and heal ranges
  history  - Show past searches
  ui       - Interactive terminal UI
  serve    - Start SSH server for the terminal UI
  config   - Print the effective configuration

Examples:
  tzarng search 2255 2063 2029 2211 2195 --min 6000000 --max 6500000 --limit 1000
  tzarng roll 6357987 --count 20
  tzarng ui --level 45 --magic 60 --spell Cura
  tzarng serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Search workers (0 = one per CPU)")

	rootCmd.PersistentFlags().IntVar(&flagLevel, "level", 0, "Character level (0-99)")
	rootCmd.PersistentFlags().IntVar(&flagMagic, "magic", 0, "Character magic (0-99)")
	rootCmd.PersistentFlags().StringVar(&flagSpell, "spell", "", "Spell: Cure, Cura, Curaga or Curaja")
	rootCmd.PersistentFlags().BoolVar(&flagSerenity, "serenity", true, "Serenity augment equipped")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(spellsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings reads the configuration and applies explicitly set flags.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("workers") {
		cfg.Search.Workers = flagWorkers
	}
	if flags.Changed("level") {
		cfg.Character.Level = flagLevel
	}
	if flags.Changed("magic") {
		cfg.Character.Magic = flagMagic
	}
	if flags.Changed("spell") {
		cfg.Character.Spell = flagSpell
	}
	if flags.Changed("serenity") {
		cfg.Character.Serenity = flagSerenity
	}

	settings = cfg

	if _, ok := heal.ParseSpell(cfg.Character.Spell); !ok {
		newLogger("tzarng").Warn("unknown spell, using Cure", "spell", cfg.Character.Spell)
	}
	return nil
}

// newLogger creates the logger shared by a command.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	level, err := log.ParseLevel(settings.Log.Level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", settings.Log.Level)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openHistory opens the history database. Commands that only record
// history carry on without it.
func openHistory(logger *log.Logger) *storage.Store {
	store, err := storage.Open(settings.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		return nil
	}
	return store
}

// fail prints an error and exits like the other commands do.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
