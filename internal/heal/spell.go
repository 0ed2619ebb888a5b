// Package heal models the healing spells of the game and the formula that
// turns a raw generator word into a heal amount.
package heal

// Spell is one of the four cure spells.
type Spell int

const (
	Cure Spell = iota
	Cura
	Curaga
	Curaja
)

// DefaultSpell is substituted for unknown spell names.
const DefaultSpell = Cure

// Spells returns every spell in power order.
func Spells() []Spell {
	return []Spell{Cure, Cura, Curaga, Curaja}
}

// Name returns the in-game name of the spell.
func (s Spell) Name() string {
	switch s {
	case Cure:
		return "Cure"
	case Cura:
		return "Cura"
	case Curaga:
		return "Curaga"
	case Curaja:
		return "Curaja"
	default:
		return "Unknown"
	}
}

// String implements fmt.Stringer.
func (s Spell) String() string {
	return s.Name()
}

// Power returns the base power of the spell.
func (s Spell) Power() int {
	switch s {
	case Cure:
		return 20
	case Cura:
		return 46
	case Curaga:
		return 86
	case Curaja:
		return 120
	default:
		return 0
	}
}

// ParseSpell looks up a spell by its exact (case-sensitive) name.
func ParseSpell(name string) (Spell, bool) {
	switch name {
	case "Cure":
		return Cure, true
	case "Cura":
		return Cura, true
	case "Curaga":
		return Curaga, true
	case "Curaja":
		return Curaja, true
	}
	return DefaultSpell, false
}

// SpellOrDefault is ParseSpell without the ok flag: unknown names
// become DefaultSpell.
func SpellOrDefault(name string) Spell {
	s, _ := ParseSpell(name)
	return s
}

// MarshalText encodes the spell by name.
func (s Spell) MarshalText() ([]byte, error) {
	return []byte(s.Name()), nil
}

// UnmarshalText decodes a spell name. Unknown names decode to
// DefaultSpell rather than failing.
func (s *Spell) UnmarshalText(text []byte) error {
	*s = SpellOrDefault(string(text))
	return nil
}
