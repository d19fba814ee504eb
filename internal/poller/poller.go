// Package poller provides a generic cancellable recurring fetch: run a
// producer immediately, then on a fixed interval, and apply only results that
// are still current when they land. The leaderboard and radar feeds each run
// their own instance on independent schedules.
package poller

import (
	"context"
	"sync"
	"time"
)

// Producer fetches one result. The context is cancelled when the poller is
// stopped, so in-flight network calls can be abandoned promptly.
type Producer[T any] func(ctx context.Context) (T, error)

// Poller invokes a producer on a fixed period and hands successful results to
// apply and failures to onError. A failing tick never prevents later ticks.
//
// The interval spaces invocations; it does not serialize results against the
// rest of the world. A response that lands after Stop, or from a call that
// started before a later applied completion, is discarded. Ticks run one at a
// time on the poller's own goroutine, so a slow producer skips ticks rather
// than overlapping itself.
type Poller[T any] struct {
	interval time.Duration
	produce  Producer[T]
	apply    func(T)
	onError  func(error)

	mu         sync.Mutex
	cancel     context.CancelFunc
	alive      bool
	started    bool
	gen        uint64 // generation of the most recently started call
	appliedGen uint64 // generation of the most recently applied completion
}

// New creates a poller. Nothing runs until Start.
func New[T any](interval time.Duration, produce Producer[T], apply func(T), onError func(error)) *Poller[T] {
	return &Poller[T]{
		interval: interval,
		produce:  produce,
		apply:    apply,
		onError:  onError,
	}
}

// Start runs the producer once immediately, then on the configured interval.
// Starting an already-started poller is a no-op.
func (p *Poller[T]) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.alive = true
	p.started = true

	go p.run(ctx)
	return nil
}

// Stop halts future ticks and discards any in-flight result. It does not wait
// for an in-flight producer call; the guard in tick ensures its result is
// never applied. Idempotent and safe on a poller that was never started.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	p.alive = false
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (p *Poller[T]) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller[T]) tick(ctx context.Context) {
	p.mu.Lock()
	if !p.alive {
		p.mu.Unlock()
		return
	}
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	v, err := p.produce(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	// The guard: a completion is only applied while the poller is alive and
	// no later-started call has completed before it.
	if !p.alive || gen <= p.appliedGen {
		return
	}
	p.appliedGen = gen

	if err != nil {
		if ctx.Err() != nil {
			// Cancelled by Stop mid-flight; not a producer failure.
			return
		}
		p.onError(err)
		return
	}
	p.apply(v)
}
