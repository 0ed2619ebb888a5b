// Package export provides a registry of result encoders.
// Encoders register themselves in init() functions, so commands can offer
// every output format by name without hardcoding them.
package export

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vovakirdan/tza-rng/internal/search"
)

// Encoder writes a search record in one output format.
type Encoder interface {
	// Name returns the identifier used on the command line (e.g., "json").
	Name() string

	// Description returns a one-line summary for help output.
	Description() string

	// Encode writes rec to w.
	Encode(w io.Writer, rec search.Record) error
}

// FormatInfo contains metadata about a registered encoder.
type FormatInfo struct {
	Name        string
	Description string
}

// Factory creates a new encoder instance.
type Factory func() Encoder

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds an encoder factory to the registry.
// Panics if an encoder with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("export: format %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = f().Description()
}

// List returns all registered formats, sorted by name.
func List() []FormatInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]FormatInfo, 0, len(factories))
	for name := range factories {
		result = append(result, FormatInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Names returns the registered format names, sorted.
func Names() []string {
	formats := List()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}
	return names
}

// Create instantiates an encoder by name.
func Create(name string) (Encoder, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("export: unknown format %q", name)
	}

	return f(), nil
}

// Exists checks if a format with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

// Write encodes rec with the named format.
func Write(w io.Writer, format string, rec search.Record) error {
	enc, err := Create(format)
	if err != nil {
		return err
	}
	if err := enc.Encode(w, rec); err != nil {
		return fmt.Errorf("export: %s: %w", format, err)
	}
	return nil
}
