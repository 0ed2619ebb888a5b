package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tza-rng/internal/heal"
)

type recordingSaver struct {
	mu    sync.Mutex
	saved []Result
}

func (r *recordingSaver) SaveSearch(_ Request, res Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, res)
	return nil
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func waitOutcome(t *testing.T, ch <-chan Outcome) Outcome {
	t.Helper()
	select {
	case out := <-ch:
		return out
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return Outcome{}
	}
}

func newTestPool(tasks int) *Pool {
	return NewPool(
		PoolConfig{Tasks: tasks, Queue: 4},
		&Searcher{Workers: 2, ChunkSize: 16, Logger: quietLogger()},
		quietLogger(),
	)
}

func TestPoolDeliversOutcome(t *testing.T) {
	pool := newTestPool(2)
	saver := &recordingSaver{}
	pool.SetResultSaver(saver)
	pool.Start()
	defer pool.Stop()

	req := Request{
		Character: heal.DefaultCharacter(),
		Target:    []int32{2044, 2219},
		Min:       4537,
		Max:       4538,
		Limit:     10,
	}
	out := waitOutcome(t, pool.Submit(context.Background(), req))

	if out.Err != nil {
		t.Fatalf("outcome error: %v", out.Err)
	}
	if !out.Result.Found() || out.Result.Seed != 4537 {
		t.Errorf("outcome = %v seed %d, expected found 4537", out.Result.Status, out.Result.Seed)
	}
	if out.Request.Min != req.Min || len(out.Request.Target) != 2 {
		t.Errorf("outcome request = %+v", out.Request)
	}
	if saver.count() != 1 {
		t.Errorf("saver called %d times, expected 1", saver.count())
	}
}

func TestPoolManySubmissions(t *testing.T) {
	pool := newTestPool(2)
	pool.Start()
	defer pool.Stop()

	var replies []<-chan Outcome
	for i := range 6 {
		replies = append(replies, pool.Submit(context.Background(), Request{
			Min:   uint32(100 + i),
			Max:   uint32(200 + i),
			Limit: 1,
		}))
	}

	for i, ch := range replies {
		out := waitOutcome(t, ch)
		if out.Err != nil {
			t.Fatalf("submission %d failed: %v", i, out.Err)
		}
		if !out.Result.Found() {
			t.Errorf("submission %d status = %v", i, out.Result.Status)
		}
		// exactly one outcome per submission
		select {
		case extra := <-ch:
			t.Errorf("submission %d delivered a second outcome: %+v", i, extra)
		default:
		}
	}
}

func TestPoolStopped(t *testing.T) {
	pool := newTestPool(1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	out := waitOutcome(t, pool.Submit(context.Background(), Request{Min: 1, Max: 2}))
	if !errors.Is(out.Err, ErrPoolStopped) {
		t.Errorf("err = %v, expected ErrPoolStopped", out.Err)
	}
}

func TestPoolCanceledRequest(t *testing.T) {
	pool := newTestPool(1)
	pool.Start()
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := waitOutcome(t, pool.Submit(ctx, fixtureRequest()))
	if !errors.Is(out.Err, context.Canceled) {
		t.Errorf("err = %v, expected context.Canceled", out.Err)
	}
	if out.Result.Status != StatusPending {
		t.Errorf("status = %v, expected pending", out.Result.Status)
	}
}

func TestPoolStopInterruptsRunningSearch(t *testing.T) {
	pool := newTestPool(1)
	pool.Start()

	// Nothing matches a negative heal, so this would scan the full range.
	reply := pool.Submit(context.Background(), Request{
		Character: heal.DefaultCharacter(),
		Target:    []int32{-5},
		Limit:     1000,
	})

	time.Sleep(20 * time.Millisecond)
	pool.Stop()

	out := waitOutcome(t, reply)
	if out.Err == nil {
		t.Fatalf("expected an error after Stop, got %+v", out.Result)
	}
}
