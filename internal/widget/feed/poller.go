package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Poller keeps a strictly increasing cursor over a feed and renders every
// record newer than it exactly once, in response order.
type Poller[T Record] struct {
	fetcher  Fetcher[T]
	renderer Renderer[T]
	opts     Options

	mu     sync.Mutex // one fetch in flight per poller
	cursor atomic.Int64
	kick   chan struct{}
}

// NewPoller creates a poller starting at cursor initial.
func NewPoller[T Record](fetcher Fetcher[T], renderer Renderer[T], initial int64, opts Options) *Poller[T] {
	p := &Poller[T]{
		fetcher:  fetcher,
		renderer: renderer,
		opts:     opts.withDefaults(),
		kick:     make(chan struct{}, 1),
	}
	p.cursor.Store(initial)
	return p
}

// Cursor returns the highest stamp rendered so far.
func (p *Poller[T]) Cursor() int64 {
	return p.cursor.Load()
}

// Kick asks Run to poll again as soon as its current fetch settles, skipping
// the pending delay. Kicks made while one is already queued collapse into it.
func (p *Poller[T]) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Poll runs one request/response cycle and returns how many records were
// rendered. The cursor moves per record, so a record that is not newer than
// the cursor at the time it is processed is skipped even if the response was
// not sorted.
func (p *Poller[T]) Poll(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	records, err := p.fetcher.Fetch(ctx, p.cursor.Load())
	if err != nil {
		return 0, err
	}

	rendered := 0
	for _, rec := range records {
		if rec.Stamp() <= p.cursor.Load() {
			continue
		}
		p.cursor.Store(rec.Stamp())
		if err := p.renderer.Render(rec); err != nil {
			return rendered, fmt.Errorf("render record %d: %w", rec.Stamp(), err)
		}
		rendered++
	}
	return rendered, nil
}

// Run polls immediately and then again Interval after each poll completes.
// Failures are logged and followed by Cooldown before the normal delay. A Kick
// cuts the delay short. Run returns when ctx is done, or with ErrDenied when StopOnDenied is set.
func (p *Poller[T]) Run(ctx context.Context) error {
	for {
		n, err := p.Poll(ctx)
		switch {
		case err == nil:
			if n > 0 {
				p.opts.Logger.Debug("feed updated", "records", n, "cursor", p.Cursor())
			}
		case ctx.Err() != nil:
			return ctx.Err()
		case p.opts.StopOnDenied && errors.Is(err, ErrDenied):
			p.opts.Logger.Warn("feed not found or access denied, polling stopped", "error", err)
			return err
		default:
			p.opts.Logger.Error("poll failed", "error", err, "cursor", p.Cursor())
			kicked, err := p.wait(ctx, p.opts.Cooldown)
			if err != nil {
				return err
			}
			if kicked {
				continue
			}
		}

		if _, err := p.wait(ctx, p.opts.Interval); err != nil {
			return err
		}
	}
}

// wait sleeps for d and reports whether a Kick ended it early.
func (p *Poller[T]) wait(ctx context.Context, d time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if d <= 0 {
		return false, nil
	}
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-p.kick:
		return true, nil
	case <-p.opts.Clock.After(d):
		return false, nil
	}
}
