package mt

import "testing"

func TestReferenceVector(t *testing.T) {
	// Reference MT19937 output for the canonical seed 5489.
	g := New(5489)
	expected := []uint32{3499211612, 581869302, 3890346734, 3586334585, 545404204}
	for i, want := range expected {
		if got := g.Next(); got != want {
			t.Fatalf("draw %d = %d, expected %d", i+1, got, want)
		}
	}

	g = New(5489)
	var last uint32
	for range 10000 {
		last = g.Next()
	}
	if last != 4123659995 {
		t.Errorf("10000th draw = %d, expected 4123659995", last)
	}
}

func TestDefaultSeedGolden(t *testing.T) {
	g := NewDefault()
	if g.Seed() != 4537 {
		t.Fatalf("Seed() = %d, expected 4537", g.Seed())
	}

	expected := []uint32{
		1288459236, 2139177191, 74803024, 3048110697, 1213569425,
		644319261, 488134196, 4290382401, 1747158433, 2782448644,
	}
	for i, want := range expected {
		if got := g.Next(); got != want {
			t.Errorf("draw %d = %d, expected %d", i+1, got, want)
		}
	}
}

func TestDeterministic(t *testing.T) {
	for _, seed := range []uint32{0, 1, DefaultSeed, 6357987, 0xffffffff} {
		a := New(seed)
		b := New(seed)
		for i := range 1000 {
			va, vb := a.Next(), b.Next()
			if va != vb {
				t.Fatalf("seed %d diverged at draw %d: %d != %d", seed, i, va, vb)
			}
		}
	}
}

func TestDifferentSeeds(t *testing.T) {
	a := New(12345)
	b := New(54321)

	allSame := true
	for range 100 {
		if a.Next() != b.Next() {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("different seeds produced the same sequence")
	}
}

func TestPosition(t *testing.T) {
	g := New(7)
	if g.Position() != 0 {
		t.Fatalf("Position() = %d before any draw", g.Position())
	}

	// Cross a regeneration boundary to make sure the counter keeps going.
	for i := 1; i <= 2*n+3; i++ {
		g.Next()
		if g.Position() != uint32(i) {
			t.Fatalf("Position() = %d after %d draws", g.Position(), i)
		}
	}
	if g.Seed() != 7 {
		t.Errorf("Seed() changed to %d", g.Seed())
	}
}

func TestLargeSequence(t *testing.T) {
	g := New(42)
	for range 100000 {
		_ = g.Next()
	}
	if g.Position() != 100000 {
		t.Errorf("Position() = %d, expected 100000", g.Position())
	}
}
