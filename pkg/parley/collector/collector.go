// Package collector implements a bounded accumulation over a live stream of
// newly created parts: subscribe, filter, collect, resolve once.
package collector

import (
	"context"
	"sync"
	"time"

	"github.com/parleychat/parley-go/pkg/parley/events"
	"github.com/parleychat/parley-go/pkg/parley/parts"
	"github.com/parleychat/parley-go/pkg/parley/timers"
)

// Predicate decides whether a created part belongs in the accumulation.
type Predicate func(p *parts.Part) bool

type Option func(*Collector)

// WithLimit resolves the collector once this many parts have been collected.
func WithLimit(limit int) Option {
	return func(c *Collector) {
		c.limit = limit
	}
}

// WithTimeout resolves the collector with whatever was collected when the
// time budget runs out. Fractional seconds are fine.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) {
		c.timeout = d
	}
}

func WithScheduler(s timers.Scheduler) Option {
	return func(c *Collector) {
		c.scheduler = s
	}
}

// Collector accumulates parts created under one parent scope. It resolves on
// the first of: limit reached, timer fired. A collector configured with
// neither WithLimit nor WithTimeout NEVER resolves on its own — Await then
// blocks until its context is cancelled. That is a caller configuration
// hazard, deliberately not papered over with a default.
//
// A collector is single use; once resolved it stays resolved.
type Collector struct {
	scopeKey  string
	predicate Predicate
	limit     int
	timeout   time.Duration
	scheduler timers.Scheduler

	mu        sync.Mutex
	resolved  bool
	collected []*parts.Part

	sub      *events.Subscription
	timer    timers.Handle
	hasTimer bool

	done chan struct{}
}

// New registers a collector on the given creation topic. scopeKey narrows the
// stream to one parent (matched against the part's "channel_id" attribute, or
// its id for parts without one); predicate is the caller's filter and may be
// nil to accept everything in scope.
func New(bus *events.Bus, topic events.Topic, scopeKey string, predicate Predicate, opts ...Option) *Collector {
	c := &Collector{
		scopeKey:  scopeKey,
		predicate: predicate,
		scheduler: timers.NewScheduler(),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.sub = bus.Subscribe(topic, c.onEvent)

	if c.timeout > 0 {
		c.timer = c.scheduler.Schedule(c.timeout, func() { c.resolve(true) })
		c.hasTimer = true
	}

	return c
}

// Await blocks until the collector resolves or ctx is done, returning the
// accumulation (possibly empty).
func (c *Collector) Await(ctx context.Context) ([]*parts.Part, error) {
	select {
	case <-c.done:
		return c.Collected(), nil
	case <-ctx.Done():
		c.resolve(false)
		return c.Collected(), ctx.Err()
	}
}

// Done is closed once the collector has resolved.
func (c *Collector) Done() <-chan struct{} {
	return c.done
}

func (c *Collector) Collected() []*parts.Part {
	c.mu.Lock()
	defer c.mu.Unlock()

	collected := make([]*parts.Part, len(c.collected))
	copy(collected, c.collected)
	return collected
}

func (c *Collector) onEvent(payload any) {
	p, ok := payload.(*parts.Part)
	if !ok || !c.inScope(p) {
		return
	}

	if c.predicate != nil && !c.predicate(p) {
		return
	}

	c.mu.Lock()
	if c.resolved || (c.limit > 0 && len(c.collected) >= c.limit) {
		// an event racing the resolving transition must not be collected,
		// even when it lands before resolve has taken the lock
		c.mu.Unlock()
		return
	}

	c.collected = append(c.collected, p)
	full := c.limit > 0 && len(c.collected) >= c.limit
	c.mu.Unlock()

	if full {
		c.resolve(false)
	}
}

func (c *Collector) inScope(p *parts.Part) bool {
	if c.scopeKey == "" {
		return true
	}

	if scope, ok := p.Get("channel_id").(string); ok && scope != "" {
		return scope == c.scopeKey
	}

	return p.ID() == c.scopeKey
}

// resolve transitions active -> resolved exactly once. The listener goes
// first, then the timer unless the timer itself caused the transition.
func (c *Collector) resolve(byTimer bool) {
	c.mu.Lock()
	if c.resolved {
		c.mu.Unlock()
		return
	}
	c.resolved = true
	c.mu.Unlock()

	c.sub.Cancel()

	if c.hasTimer && !byTimer {
		c.scheduler.Cancel(c.timer)
	}

	close(c.done)
}
