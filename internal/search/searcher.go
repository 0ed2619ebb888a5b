package search

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is how many consecutive seeds a worker takes at a time.
const DefaultChunkSize uint32 = 4096

// errMatched stops the other workers once one of them finds a seed.
var errMatched = errors.New("search: seed matched")

// Searcher explores a seed range with a fixed pool of workers.
//
// With a single worker seeds are tried in increasing order and the lowest
// matching seed is returned, exactly like FindSeed. With more workers the
// range is handed out in chunks and the first match delivered wins; if
// several seeds in the range match, which one is returned is not
// deterministic. Use a longer target or one worker when a unique answer
// matters.
type Searcher struct {
	Workers   int    // <= 0 means runtime.NumCPU()
	ChunkSize uint32 // 0 means DefaultChunkSize
	Logger    *log.Logger
}

// NewSearcher creates a searcher with the given worker count.
func NewSearcher(workers int, logger *log.Logger) *Searcher {
	return &Searcher{
		Workers: workers,
		Logger:  logger,
	}
}

func (s *Searcher) workers() int {
	if s.Workers <= 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}

func (s *Searcher) chunkSize() uint32 {
	if s.ChunkSize == 0 {
		return DefaultChunkSize
	}
	return s.ChunkSize
}

func (s *Searcher) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// Find runs the search. Exhausting the range is not an error: the result
// then has StatusNotFound. The only errors are from ctx.
func (s *Searcher) Find(ctx context.Context, req Request) (Result, error) {
	req = req.Normalize()
	logger := s.logger()
	started := time.Now()

	logger.Debug("search started",
		"min", req.Min,
		"max", req.Max,
		"limit", req.Limit,
		"target", req.Target,
		"workers", s.workers(),
	)

	var (
		res     Result
		err     error
		checked atomic.Uint64
	)
	if s.workers() <= 1 {
		res, err = scan(ctx, req, req.Min, req.Max, &checked)
	} else {
		res, err = s.findParallel(ctx, req, &checked)
	}
	res.Checked = checked.Load()
	if err != nil {
		logger.Debug("search interrupted", "checked", res.Checked, "error", err)
		return res, err
	}
	if !res.Found() {
		res.Status = StatusNotFound
	}

	logger.Debug("search finished",
		"status", res.Status,
		"seed", res.Seed,
		"checked", res.Checked,
		"elapsed", time.Since(started),
	)
	return res, nil
}

type span struct {
	lo, hi uint32
}

func (s *Searcher) findParallel(ctx context.Context, req Request, checked *atomic.Uint64) (Result, error) {
	g, gctx := errgroup.WithContext(ctx)
	spans := make(chan span)
	found := make(chan Result, 1)
	logger := s.logger()

	g.Go(func() error {
		defer close(spans)
		size := uint64(s.chunkSize())
		for lo := uint64(req.Min); lo < uint64(req.Max); lo += size {
			hi := min(lo+size, uint64(req.Max))
			select {
			case spans <- span{lo: uint32(lo), hi: uint32(hi)}:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	for range s.workers() {
		g.Go(func() error {
			for sp := range spans {
				res, err := scan(gctx, req, sp.lo, sp.hi, checked)
				if err != nil {
					return nil
				}
				if res.Found() {
					select {
					case found <- res:
					default:
					}
					return errMatched
				}
				logger.Debug("chunk searched", "from", sp.lo, "to", sp.hi, "checked", checked.Load())
			}
			return nil
		})
	}

	err := g.Wait()
	select {
	case res := <-found:
		return res, nil
	default:
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}
	if err != nil && !errors.Is(err, errMatched) {
		return Result{}, err
	}
	return Result{}, nil
}
