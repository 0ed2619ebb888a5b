package search

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrPoolStopped is delivered to requests submitted after Stop.
var ErrPoolStopped = errors.New("search: pool stopped")

// ResultSaver persists finished searches.
// This lets the pool record history without depending on the storage package.
type ResultSaver interface {
	SaveSearch(req Request, res Result) error
}

// Outcome is what a submitted search delivers on its reply channel.
type Outcome struct {
	Request Request
	Result  Result
	Err     error
}

// PoolConfig holds configuration for the pool.
type PoolConfig struct {
	Tasks int // searches running at the same time
	Queue int // searches waiting for a free slot
}

// DefaultPoolConfig returns sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Tasks: 1,
		Queue: 16,
	}
}

type task struct {
	ctx   context.Context
	req   Request
	reply chan Outcome
}

// Pool runs searches in the background so callers such as the UI never
// block on one. Each submission gets its own single-shot reply channel.
type Pool struct {
	config   PoolConfig
	searcher *Searcher
	saver    ResultSaver // Optional, can be nil
	logger   *log.Logger

	tasks  chan task
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

// NewPool creates a pool. Call Start before submitting.
func NewPool(cfg PoolConfig, searcher *Searcher, logger *log.Logger) *Pool {
	if cfg.Tasks <= 0 {
		cfg.Tasks = 1
	}
	if cfg.Queue < 0 {
		cfg.Queue = 0
	}
	if searcher == nil {
		searcher = NewSearcher(0, logger)
	}
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		config:   cfg,
		searcher: searcher,
		logger:   logger,
		tasks:    make(chan task, cfg.Queue),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetResultSaver sets the optional result saver.
func (p *Pool) SetResultSaver(saver ResultSaver) {
	p.saver = saver
}

// Start launches the pool's workers.
func (p *Pool) Start() {
	for range p.config.Tasks {
		p.wg.Add(1)
		go p.run()
	}
}

// Stop cancels running searches, waits for the workers and fails every
// queued request with ErrPoolStopped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		close(p.done)
		p.wg.Wait()

		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()

		for {
			select {
			case t := <-p.tasks:
				t.reply <- Outcome{Request: t.req, Err: ErrPoolStopped}
			default:
				return
			}
		}
	})
}

// Submit queues a search. The returned channel receives exactly one
// Outcome.
func (p *Pool) Submit(ctx context.Context, req Request) <-chan Outcome {
	reply := make(chan Outcome, 1)

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		reply <- Outcome{Request: req, Err: ErrPoolStopped}
		return reply
	}

	select {
	case p.tasks <- task{ctx: ctx, req: req, reply: reply}:
	case <-p.done:
		reply <- Outcome{Request: req, Err: ErrPoolStopped}
	case <-ctx.Done():
		reply <- Outcome{Request: req, Err: ctx.Err()}
	}
	return reply
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case t := <-p.tasks:
			p.handle(t)
		case <-p.done:
			return
		}
	}
}

func (p *Pool) handle(t task) {
	ctx, cancel := context.WithCancel(t.ctx)
	defer cancel()
	stop := context.AfterFunc(p.ctx, cancel)
	defer stop()

	p.logger.Info("search task started",
		"min", t.req.Min,
		"max", t.req.Max,
		"target", t.req.Target,
	)

	res, err := p.searcher.Find(ctx, t.req)
	if err != nil {
		p.logger.Warn("search task interrupted", "error", err)
		t.reply <- Outcome{Request: t.req, Result: res, Err: err}
		return
	}

	if p.saver != nil {
		if saveErr := p.saver.SaveSearch(t.req, res); saveErr != nil {
			p.logger.Warn("could not save search", "error", saveErr)
		}
	}

	p.logger.Info("search task finished", "status", res.Status, "seed", res.Seed, "checked", res.Checked)
	t.reply <- Outcome{Request: t.req, Result: res}
}
