// Package mt implements the 32-bit Mersenne Twister (MT19937) used by the
// game to drive spell and chest rolls.
//
// # Determinism
//
// Two generators created with the same seed produce the same sequence of
// words forever. The rest of the module relies on this: a seed search is
// only meaningful because replaying a seed replays the game's rolls.
package mt

// DefaultSeed is the seed used when the caller does not supply one.
const DefaultSeed uint32 = 4537

const (
	n         = 624 // state size
	m         = 397 // shift size
	matrixA   = 0x9908b0df
	upperMask = 0x80000000 // most significant w-r bits
	lowerMask = 0x7fffffff // least significant r bits

	initMultiplier = 1812433253

	temperMaskB = 0x9d2c5680
	temperMaskC = 0xefc60000
)

var mag01 = [2]uint32{0, matrixA}

// Generator is an MT19937 word engine with a draw counter.
type Generator struct {
	state [n]uint32
	index int

	position uint32
	seed     uint32
}

// New returns a generator initialised from seed.
// The first call to Next regenerates the state block.
func New(seed uint32) *Generator {
	g := &Generator{seed: seed}
	g.state[0] = seed
	for i := 1; i < n; i++ {
		prev := g.state[i-1]
		g.state[i] = initMultiplier*(prev^(prev>>30)) + uint32(i)
	}
	g.index = n
	return g
}

// NewDefault returns a generator seeded with DefaultSeed.
func NewDefault() *Generator {
	return New(DefaultSeed)
}

// Seed returns the seed the generator was created from.
func (g *Generator) Seed() uint32 {
	return g.seed
}

// Position returns how many words have been drawn so far.
func (g *Generator) Position() uint32 {
	return g.position
}

// Next returns the next tempered word on [0, 0xffffffff] and advances the
// position counter.
func (g *Generator) Next() uint32 {
	if g.index >= n {
		g.twist()
	}

	y := g.state[g.index]
	g.index++

	y ^= y >> 11
	y ^= (y << 7) & temperMaskB
	y ^= (y << 15) & temperMaskC
	y ^= y >> 18

	g.position++
	return y
}

// twist regenerates the whole state block.
func (g *Generator) twist() {
	var y uint32
	kk := 0
	for ; kk < n-m; kk++ {
		y = (g.state[kk] & upperMask) | (g.state[kk+1] & lowerMask)
		g.state[kk] = g.state[kk+m] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < n-1; kk++ {
		y = (g.state[kk] & upperMask) | (g.state[kk+1] & lowerMask)
		g.state[kk] = g.state[kk-(n-m)] ^ (y >> 1) ^ mag01[y&1]
	}
	y = (g.state[n-1] & upperMask) | (g.state[0] & lowerMask)
	g.state[n-1] = g.state[m-1] ^ (y >> 1) ^ mag01[y&1]

	g.index = 0
}
