package window

import (
	"testing"

	"github.com/vovakirdan/tza-rng/internal/heal"
	"github.com/vovakirdan/tza-rng/internal/mt"
)

func TestNewFillsWindow(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(mt.DefaultSeed, c, 5)

	if w.Len() != 5 {
		t.Fatalf("Len() = %d, expected 5", w.Len())
	}
	if w.Seed() != mt.DefaultSeed {
		t.Errorf("Seed() = %d, expected %d", w.Seed(), mt.DefaultSeed)
	}

	expected := []Draw{
		{Position: 1, Value: 1288459236, Heal: 2259, Chest: 36},
		{Position: 2, Value: 2139177191, Heal: 2213, Chest: 91},
		{Position: 3, Value: 74803024, Heal: 2044, Chest: 24},
		{Position: 4, Value: 3048110697, Heal: 2219, Chest: 97},
		{Position: 5, Value: 1213569425, Heal: 2197, Chest: 25},
	}
	for i, d := range w.Draws() {
		if d != expected[i] {
			t.Errorf("draw %d = %+v, expected %+v", i, d, expected[i])
		}
	}
	if w.Position() != 5 {
		t.Errorf("Position() = %d, expected 5", w.Position())
	}
}

func TestNewDefault(t *testing.T) {
	w := NewDefault()
	if w.Len() != DefaultSize {
		t.Errorf("Len() = %d, expected %d", w.Len(), DefaultSize)
	}
	if w.Seed() != mt.DefaultSeed {
		t.Errorf("Seed() = %d, expected %d", w.Seed(), mt.DefaultSeed)
	}
}

func TestAdvanceInvariant(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(99, c, 8)
	start := w.Draws()[0].Position

	for n := 1; n <= 1500; n++ {
		w.Advance(c)
		draws := w.Draws()
		if len(draws) != 8 {
			t.Fatalf("after %d advances Len() = %d", n, len(draws))
		}
		if draws[0].Position != start+uint32(n) {
			t.Fatalf("after %d advances oldest position = %d, expected %d",
				n, draws[0].Position, start+uint32(n))
		}
		for i := 1; i < len(draws); i++ {
			if draws[i].Position != draws[i-1].Position+1 {
				t.Fatalf("positions not contiguous: %d then %d", draws[i-1].Position, draws[i].Position)
			}
		}
		if draws[len(draws)-1].Position != w.Position() {
			t.Fatalf("newest position %d != generator position %d",
				draws[len(draws)-1].Position, w.Position())
		}
	}
}

func TestAdvanceShiftsContents(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(mt.DefaultSeed, c, 5)
	w.Advance(c)

	expected := []int32{2213, 2044, 2219, 2197, 2031}
	got := w.Heals()
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("Heals() = %v, expected %v", got, expected)
		}
	}
}

func TestAdvanceEmptyWindow(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(1, c, 0)
	w.Advance(c)

	if w.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", w.Len())
	}
	if w.Position() != 1 {
		t.Errorf("Position() = %d, expected 1", w.Position())
	}
}

func TestReapply(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(2024, c, 20)
	pos := w.Position()

	other := heal.NewCharacter(45, 60, heal.Curaja, false)
	w.Reapply(other)

	if w.Position() != pos {
		t.Errorf("Reapply consumed draws: position %d -> %d", pos, w.Position())
	}
	for _, d := range w.Draws() {
		if d.Heal != other.Cast(d.Value) {
			t.Errorf("draw %d heal = %d, expected %d", d.Position, d.Heal, other.Cast(d.Value))
		}
		if d.Chest != heal.Chest(d.Value) {
			t.Errorf("draw %d chest changed to %d", d.Position, d.Chest)
		}
	}
}

func TestMatchPrefix(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(mt.DefaultSeed, c, 5)

	tests := []struct {
		name     string
		target   []int32
		expected bool
	}{
		{"empty target", nil, true},
		{"full match", []int32{2259, 2213, 2044, 2219, 2197}, true},
		{"short prefix", []int32{2259, 2213}, true},
		{"longer than window", []int32{2259, 2213, 2044, 2219, 2197, 1}, true},
		{"first differs", []int32{2258}, false},
		{"last differs", []int32{2259, 2213, 2044, 2219, 2198}, false},
		{"not at head", []int32{2213, 2044}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.MatchPrefix(tc.target); got != tc.expected {
				t.Errorf("MatchPrefix(%v) = %v, expected %v", tc.target, got, tc.expected)
			}
		})
	}
}

func TestFindNext(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(mt.DefaultSeed, c, 2)

	if !w.FindNext(c, []int32{2044, 2219}, 10) {
		t.Fatal("FindNext() did not find the sequence")
	}
	if w.Position() != 4 {
		t.Errorf("Position() = %d, expected 4", w.Position())
	}
}

func TestFindNextSkipsCurrentHead(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(mt.DefaultSeed, c, 2)

	// The head already matches, but FindNext advances first.
	if w.FindNext(c, []int32{2259, 2213}, 50) {
		t.Errorf("FindNext() matched at position %d, expected no match", w.Position())
	}
	if w.Position() != 52 {
		t.Errorf("Position() = %d, expected 52", w.Position())
	}
}

func TestGrow(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(3, c, 5)
	w.Grow(c, 12)
	if w.Len() != 12 {
		t.Errorf("Len() = %d, expected 12", w.Len())
	}
	w.Grow(c, 4)
	if w.Len() != 12 {
		t.Errorf("Grow to smaller size changed Len() to %d", w.Len())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := heal.DefaultCharacter()
	w := New(mt.DefaultSeed, c, 5)
	before := w.Draws()

	clone := w.Clone()
	clone.Advance(c)
	clone.Advance(c)

	if w.Position() != 5 {
		t.Errorf("original Position() = %d after advancing the clone, expected 5", w.Position())
	}
	for i, d := range w.Draws() {
		if d != before[i] {
			t.Errorf("original draw %d changed to %+v", i, d)
		}
	}
	if clone.Position() != 7 || clone.Seed() != w.Seed() {
		t.Errorf("clone position %d seed %d", clone.Position(), clone.Seed())
	}

	// Both continue the same sequence
	w.Advance(c)
	w.Advance(c)
	got, want := w.Draws(), clone.Draws()
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("draw %d = %+v, clone has %+v", i, got[i], want[i])
		}
	}
}
