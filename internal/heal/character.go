package heal

import "math"

// MaxStat is the highest level or magic value a character can have.
const MaxStat = 99

// Character is the caster configuration that feeds the heal formula.
type Character struct {
	Level    uint8 `yaml:"level" json:"level"`
	Magic    uint8 `yaml:"magic" json:"magic"`
	Spell    Spell `yaml:"spell" json:"spell"`
	Serenity bool  `yaml:"serenity" json:"serenity"`
}

// NewCharacter builds a character, clamping level and magic to [0, MaxStat].
func NewCharacter(level, magic int, spell Spell, serenity bool) Character {
	return Character{
		Level:    ClampStat(level),
		Magic:    ClampStat(magic),
		Spell:    spell,
		Serenity: serenity,
	}
}

// DefaultCharacter returns the preset character: level 70, magic 99,
// casting Cure under Serenity.
func DefaultCharacter() Character {
	return NewCharacter(70, 99, Cure, true)
}

// ClampStat restricts a stat to [0, MaxStat].
func ClampStat(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > MaxStat {
		return MaxStat
	}
	return uint8(v)
}

// Clamped returns a copy with out-of-range stats pulled back to MaxStat.
func (c Character) Clamped() Character {
	return NewCharacter(int(c.Level), int(c.Magic), c.Spell, c.Serenity)
}

// Multiplier returns the stat multiplier applied to the spell power.
func (c Character) Multiplier() float64 {
	mult := 2.0 + float64(c.Magic)*(float64(c.Level)+float64(c.Magic))/256.0
	if c.Serenity {
		mult *= 1.5
	}
	return mult
}

// Modulus returns the bound of the random bonus, floor(power * 12.5).
func (c Character) Modulus() uint32 {
	return uint32(math.Floor(float64(c.Spell.Power()) * 12.5))
}

// Cast returns the heal amount produced by the raw generator word.
// The final conversion truncates toward zero; observed values are compared
// for exact equality so it must not round.
func (c Character) Cast(raw uint32) int32 {
	var bonus float64
	if mod := c.Modulus(); mod > 0 {
		bonus = float64(raw%mod) / 100.0
	}
	total := float64(c.Spell.Power()) + bonus
	return int32(total * c.Multiplier())
}

// Chest returns the chest chance byte for a raw word.
func Chest(raw uint32) uint8 {
	return uint8(raw % 100)
}
