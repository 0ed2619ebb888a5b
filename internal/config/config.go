// Package config provides YAML-based configuration loading for the seed
// finder, with environment variable overrides.
package config

import (
	"time"

	"github.com/vovakirdan/tza-rng/internal/heal"
	"github.com/vovakirdan/tza-rng/internal/search"
)

// Config contains all configuration for tzarng.
type Config struct {
	Character CharacterConfig `yaml:"character"`
	Search    SearchConfig    `yaml:"search"`
	Window    WindowConfig    `yaml:"window"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Server    ServerConfig    `yaml:"server"`
}

// CharacterConfig is the caster as typed by the user. Stats out of range
// are clamped and unknown spells fall back to Cure when converted.
type CharacterConfig struct {
	Level    int    `yaml:"level" env:"TZARNG_LEVEL"`
	Magic    int    `yaml:"magic" env:"TZARNG_MAGIC"`
	Spell    string `yaml:"spell" env:"TZARNG_SPELL"`
	Serenity bool   `yaml:"serenity" env:"TZARNG_SERENITY"`
}

// Character converts the configured values to a heal.Character.
func (c CharacterConfig) Character() heal.Character {
	return heal.NewCharacter(c.Level, c.Magic, heal.SpellOrDefault(c.Spell), c.Serenity)
}

// SearchConfig defines batch search parameters.
type SearchConfig struct {
	Min       uint32 `yaml:"min" env:"TZARNG_SEED_MIN"`
	Max       uint32 `yaml:"max" env:"TZARNG_SEED_MAX"` // exclusive
	Limit     int    `yaml:"limit" env:"TZARNG_LIMIT"`   // slides per seed
	Workers   int    `yaml:"workers" env:"TZARNG_WORKERS"`
	ChunkSize uint32 `yaml:"chunk_size" env:"TZARNG_CHUNK_SIZE"`

	Interactive InteractiveConfig `yaml:"interactive"`
}

// InteractiveConfig holds the smaller defaults used by the terminal UI.
type InteractiveConfig struct {
	Min   uint32 `yaml:"min" env:"TZARNG_UI_SEED_MIN"`
	Max   uint32 `yaml:"max" env:"TZARNG_UI_SEED_MAX"`
	Limit int    `yaml:"limit" env:"TZARNG_UI_LIMIT"`
}

// Request builds a search request from the configured range.
func (s SearchConfig) Request(c heal.Character, target []int32) search.Request {
	return search.Request{
		Character: c,
		Target:    target,
		Min:       s.Min,
		Max:       s.Max,
		Limit:     s.Limit,
	}
}

// Searcher builds a searcher from the configured worker settings.
func (s SearchConfig) Searcher() *search.Searcher {
	return &search.Searcher{
		Workers:   s.Workers,
		ChunkSize: s.ChunkSize,
	}
}

// WindowConfig defines the browsing window shown for a known seed.
type WindowConfig struct {
	Seed uint32 `yaml:"seed" env:"TZARNG_SEED"`
	Size int    `yaml:"size" env:"TZARNG_WINDOW_SIZE"`
}

// StorageConfig defines where search history is kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"TZARNG_DB"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level" env:"TZARNG_LOG_LEVEL"` // debug, info, warn, error
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"TZARNG_SSH_ADDR"`
	HostKeyPath string        `yaml:"host_key_path" env:"TZARNG_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"TZARNG_IDLE_TIMEOUT"`
	MaxSearches int           `yaml:"max_searches" env:"TZARNG_MAX_SEARCHES"` // concurrent searches across sessions
}
