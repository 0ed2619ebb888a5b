package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/tza-rng/internal/heal"
	"github.com/vovakirdan/tza-rng/internal/mt"
)

// Fallbacks for seed panel fields left empty or unparsable.
const (
	fallbackMin   uint32 = 1
	fallbackMax   uint32 = math.MaxUint32
	fallbackLimit        = 5000
)

// field identifies a focusable control.
type field int

const (
	fieldLevel field = iota
	fieldMagic
	fieldSpell
	fieldSerenity
	fieldSeed
	fieldMin
	fieldMax
	fieldLimit
	fieldHeal1
	fieldHeal2
	fieldHeal3
	fieldHeal4
	fieldHeal5

	fieldCount
)

// healFieldCount is the number of heal entry fields.
const healFieldCount = int(fieldHeal5-fieldHeal1) + 1

// isText reports whether the field is backed by a text input.
func (f field) isText() bool {
	return f != fieldSpell && f != fieldSerenity
}

// parseStat reads a level or magic value. Text that is not a byte gives 1,
// anything above 99 is clamped.
func parseStat(s string) uint8 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 1
	}
	return heal.ClampStat(int(v))
}

// parseSeed reads the seed field, falling back to the default seed.
func parseSeed(s string) uint32 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return mt.DefaultSeed
	}
	return uint32(v)
}

// parseUint32 reads a range bound, returning def when the text is unusable.
func parseUint32(s string, def uint32) uint32 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return def
	}
	return uint32(v)
}

// parseLimit reads the slide budget, returning def when the text is unusable
// or not positive.
func parseLimit(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// collectHeals returns the leading run of parsable heal values.
// Collection stops at the first empty or invalid entry.
func collectHeals(values []string) []int32 {
	out := make([]int32, 0, len(values))
	for _, s := range values {
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			break
		}
		out = append(out, int32(v))
	}
	return out
}

// nextSpell cycles through the spell table.
func nextSpell(s heal.Spell, step int) heal.Spell {
	spells := heal.Spells()
	idx := 0
	for i, sp := range spells {
		if sp == s {
			idx = i
			break
		}
	}
	idx = (idx + step + len(spells)) % len(spells)
	return spells[idx]
}
