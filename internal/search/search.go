// Package search brute-forces generator seeds until one reproduces an
// observed sequence of heals.
//
// For every candidate seed a fresh window of len(Target) draws is built and
// slid up to Limit times; the seed matches when the window's heals equal the
// target. Candidates share nothing, so the range can be split across
// workers (see Searcher) at the cost of not knowing which of several
// matching seeds is reported first.
package search

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/vovakirdan/tza-rng/internal/heal"
	"github.com/vovakirdan/tza-rng/internal/window"
)

const (
	// DefaultMin is the first seed tried when the caller gives no range.
	DefaultMin uint32 = 1

	// DefaultMax is the exclusive upper bound used when Max is zero.
	DefaultMax uint32 = math.MaxUint32

	// DefaultLimit is the per-seed slide budget when Limit is not set.
	DefaultLimit = window.DefaultLimit

	// InteractiveLimit is the smaller budget used by the interactive UI.
	InteractiveLimit = 1000
)

// Request describes one seed search.
type Request struct {
	Character heal.Character `yaml:"character" json:"character"`
	Target    []int32        `yaml:"target" json:"target"`
	Min       uint32         `yaml:"min" json:"min"` // inclusive
	Max       uint32         `yaml:"max" json:"max"` // exclusive, 0 means DefaultMax
	Limit     int            `yaml:"limit" json:"limit"`
}

// Normalize fills in the unset fields and clamps the character's stats.
func (r Request) Normalize() Request {
	r.Character = r.Character.Clamped()
	if r.Max == 0 {
		r.Max = DefaultMax
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	return r
}

// Span returns the number of seeds in [Min, Max).
func (r Request) Span() uint64 {
	if r.Max <= r.Min {
		return 0
	}
	return uint64(r.Max) - uint64(r.Min)
}

// Status tells a finished search apart from one that never ran.
type Status int

const (
	StatusPending Status = iota
	StatusFound
	StatusNotFound
)

// String returns a lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Result is the outcome of a search. The zero value is StatusPending.
type Result struct {
	Status  Status
	Seed    uint32
	Window  *window.Window // positioned so Target sits at its head
	Checked uint64         // seeds tried
}

// Found reports whether a seed matched.
func (r Result) Found() bool {
	return r.Status == StatusFound
}

// Record is the plain structured form of a Result, used for export and
// for handing results across goroutines or processes.
type Record struct {
	Status  string        `yaml:"status" json:"status"`
	Seed    uint32        `yaml:"seed" json:"seed"`
	Checked uint64        `yaml:"checked" json:"checked"`
	Draws   []window.Draw `yaml:"draws,omitempty" json:"draws,omitempty"`
}

// Record converts the result to its structured form.
func (r Result) Record() Record {
	rec := Record{
		Status:  r.Status.String(),
		Checked: r.Checked,
	}
	if r.Found() {
		rec.Seed = r.Seed
		if r.Window != nil {
			rec.Draws = r.Window.Draws()
		}
	}
	return rec
}

// FindSeed searches [Min, Max) in increasing seed order and returns the
// first match. An empty target matches the first seed tried.
func FindSeed(req Request) Result {
	req = req.Normalize()
	var checked atomic.Uint64
	res, _ := scan(context.Background(), req, req.Min, req.Max, &checked)
	if !res.Found() {
		res.Status = StatusNotFound
	}
	res.Checked = checked.Load()
	return res
}

// TrySeed checks a single candidate. On a match the returned window has
// the target at its head.
func TrySeed(req Request, seed uint32) (*window.Window, bool) {
	w := window.New(seed, req.Character, len(req.Target))
	if w.FindNext(req.Character, req.Target, req.Limit) {
		return w, true
	}
	return nil, false
}

// cancelCheckEvery is how many seeds are tried between context checks.
const cancelCheckEvery = 64

// scan tries seeds in [lo, hi) in order. It returns a Found result on the
// first match, or a Pending result with ctx.Err() when interrupted.
func scan(ctx context.Context, req Request, lo, hi uint32, checked *atomic.Uint64) (Result, error) {
	for seed := lo; seed < hi; seed++ {
		if (seed-lo)%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		checked.Add(1)
		if w, ok := TrySeed(req, seed); ok {
			return Result{Status: StatusFound, Seed: seed, Window: w}, nil
		}
	}
	return Result{}, nil
}
