// Package window keeps a sliding buffer of the most recent generator draws
// together with the heal each draw would produce for a character.
package window

import (
	"github.com/vovakirdan/tza-rng/internal/heal"
	"github.com/vovakirdan/tza-rng/internal/mt"
)

const (
	// DefaultSize is the number of draws shown when browsing a seed.
	DefaultSize = 500

	// DefaultLimit is how many slides FindNext tries when no limit is given.
	DefaultLimit = 100_000
)

// Draw is one generator output and what it means in game.
type Draw struct {
	Position uint32 `yaml:"position" json:"position"` // generator position after the draw
	Value    uint32 `yaml:"value" json:"value"`
	Heal     int32  `yaml:"heal" json:"heal"`
	Chest    uint8  `yaml:"chest" json:"chest"`
}

// Window is a fixed-length run of draws tied to one generator.
// Positions in the window are contiguous and the last one equals the
// generator's own position.
type Window struct {
	draws []Draw
	gen   *mt.Generator
}

// New seeds a generator and fills a window with size draws.
func New(seed uint32, c heal.Character, size int) *Window {
	w := &Window{
		draws: make([]Draw, 0, max(size, 0)),
		gen:   mt.New(seed),
	}
	w.Fill(c, size)
	return w
}

// NewDefault returns the preset window: DefaultSeed, DefaultCharacter and
// DefaultSize draws.
func NewDefault() *Window {
	return New(mt.DefaultSeed, heal.DefaultCharacter(), DefaultSize)
}

// Seed returns the seed of the underlying generator.
func (w *Window) Seed() uint32 {
	return w.gen.Seed()
}

// Position returns the generator position (that of the newest draw).
func (w *Window) Position() uint32 {
	return w.gen.Position()
}

// Len returns the number of draws in the window.
func (w *Window) Len() int {
	return len(w.draws)
}

// Draws returns a copy of the draws, oldest first.
func (w *Window) Draws() []Draw {
	out := make([]Draw, len(w.draws))
	copy(out, w.draws)
	return out
}

// Heals returns the heal column of the window, oldest first.
func (w *Window) Heals() []int32 {
	out := make([]int32, len(w.draws))
	for i, d := range w.draws {
		out[i] = d.Heal
	}
	return out
}

// Clone returns an independent copy of the window and its generator.
func (w *Window) Clone() *Window {
	gen := *w.gen
	draws := make([]Draw, len(w.draws), cap(w.draws))
	copy(draws, w.draws)
	return &Window{draws: draws, gen: &gen}
}

// Fill appends count fresh draws.
func (w *Window) Fill(c heal.Character, count int) {
	for range count {
		w.Push(c)
	}
}

// Grow pushes draws until the window holds size entries.
func (w *Window) Grow(c heal.Character, size int) {
	w.Fill(c, size-len(w.draws))
}

// Push draws one value and appends it.
func (w *Window) Push(c heal.Character) {
	w.draws = append(w.draws, w.draw(c))
}

// Advance drops the oldest draw and appends a new one, keeping the length.
// An empty window still consumes one draw.
func (w *Window) Advance(c heal.Character) {
	d := w.draw(c)
	if len(w.draws) == 0 {
		return
	}
	copy(w.draws, w.draws[1:])
	w.draws[len(w.draws)-1] = d
}

// Reapply recomputes every heal for a new character without drawing.
func (w *Window) Reapply(c heal.Character) {
	for i := range w.draws {
		w.draws[i].Heal = c.Cast(w.draws[i].Value)
	}
}

// MatchPrefix reports whether the leading heals equal target. Only the
// first min(len(target), Len()) entries are compared.
func (w *Window) MatchPrefix(target []int32) bool {
	n := min(len(target), len(w.draws))
	for i := range n {
		if w.draws[i].Heal != target[i] {
			return false
		}
	}
	return true
}

// FindNext slides the window until target sits at its head, trying at most
// limit slides (DefaultLimit when limit <= 0). The window always advances
// before the first comparison, so a match at the current head is skipped.
func (w *Window) FindNext(c heal.Character, target []int32, limit int) bool {
	if limit <= 0 {
		limit = DefaultLimit
	}
	for range limit {
		w.Advance(c)
		if w.MatchPrefix(target) {
			return true
		}
	}
	return false
}

func (w *Window) draw(c heal.Character) Draw {
	v := w.gen.Next()
	return Draw{
		Position: w.gen.Position(),
		Value:    v,
		Heal:     c.Cast(v),
		Chest:    heal.Chest(v),
	}
}
