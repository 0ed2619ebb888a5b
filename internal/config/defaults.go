package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tza-rng/internal/mt"
	"github.com/vovakirdan/tza-rng/internal/search"
	"github.com/vovakirdan/tza-rng/internal/window"
)

//go:embed defaults/tzarng.yaml
var defaultYAML []byte

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Character: CharacterConfig{
			Level:    70,
			Magic:    99,
			Spell:    "Cure",
			Serenity: true,
		},
		Search: SearchConfig{
			Min:       search.DefaultMin,
			Max:       search.DefaultMax,
			Limit:     search.DefaultLimit,
			Workers:   0, // one per CPU
			ChunkSize: search.DefaultChunkSize,
			Interactive: InteractiveConfig{
				Min:   5_500_000,
				Max:   7_500_000,
				Limit: search.InteractiveLimit,
			},
		},
		Window: WindowConfig{
			Seed: mt.DefaultSeed,
			Size: window.DefaultSize,
		},
		Storage: StorageConfig{
			DBPath: "~/.tzarng/history.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
			MaxSearches: 2,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
