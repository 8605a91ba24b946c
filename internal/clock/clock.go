package clock

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	DefaultTickLength = time.Second
)

// Clock is the game scheduler. Events are counted down once per tick and
// fire on the goroutine driving the clock.
//
// Scheduling never blocks on a tick in progress: a request that cannot take
// the gate is parked in the pending queue and merged before the tick ends.
type Clock struct {
	tickLength time.Duration

	// gate has capacity one; holding it grants ownership of events.
	gate   chan struct{}
	events []*Event

	pendingMu sync.Mutex
	pending   []*Event

	ticks atomic.Uint64

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// New creates a stopped clock.
func New(opts ...ClockOpt) *Clock {
	c := &Clock{
		tickLength: DefaultTickLength,
		gate:       make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Schedule fires action once after delay ticks.
func (c *Clock) Schedule(label string, delay int64, action Action) *Event {
	e := newEvent(label, delay, action, false)
	slog.Debug("scheduling clock event", "label", label, "id", e.id, "delay", delay)
	c.add(e)
	return e
}

// Interval fires action every period ticks until the event is cancelled.
func (c *Clock) Interval(label string, period int64, action Action) *Event {
	e := newEvent(label, period, action, true)
	slog.Debug("scheduling clock interval", "label", label, "id", e.id, "period", period)
	c.add(e)
	return e
}

func (c *Clock) add(e *Event) {
	select {
	case c.gate <- struct{}{}:
		c.events = append(c.events, e)
		<-c.gate
	default:
		c.pendingMu.Lock()
		c.pending = append(c.pending, e)
		c.pendingMu.Unlock()
	}
}

// Now returns the number of ticks processed so far.
func (c *Clock) Now() uint64 {
	return c.ticks.Load()
}

// Len returns the number of live and pending events. It waits for any tick
// in progress, so it must not be called from an event action.
func (c *Clock) Len() (live int, pending int) {
	c.gate <- struct{}{}
	live = len(c.events)
	<-c.gate

	c.pendingMu.Lock()
	pending = len(c.pending)
	c.pendingMu.Unlock()
	return live, pending
}

// Tick advances every scheduled event by one tick. If ctx is cancelled while
// waiting for the gate the tick is skipped.
func (c *Clock) Tick(ctx context.Context) {
	select {
	case c.gate <- struct{}{}:
	case <-ctx.Done():
		slog.WarnContext(ctx, "game clock tick interrupted, skipping tick", "error", ctx.Err())
		return
	}
	defer func() { <-c.gate }()

	c.mergePending()
	c.ticks.Add(1)

	live := make([]*Event, 0, len(c.events))
	for _, e := range c.events {
		if !e.tick() {
			live = append(live, e)
		}
	}
	c.events = live

	// Events scheduled by actions fired above.
	c.mergePending()
}

// mergePending must be called while holding the gate.
func (c *Clock) mergePending() {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	if len(c.pending) == 0 {
		return
	}
	c.events = append(c.events, c.pending...)
	c.pending = nil
}

// Start begins ticking on a background goroutine. Starting a running or
// stopped clock does nothing.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	slog.Info("starting game clock", "tick_length", c.tickLength)
	go c.run(ctx, c.tickLength)
}

func (c *Clock) run(ctx context.Context, tickLength time.Duration) {
	ticker := time.NewTicker(tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick(ctx)
		}
	}
}

// Pause halts ticking. Scheduled events are kept and resume counting down on
// the next Start.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	slog.Info("paused game clock", "ticks", c.ticks.Load())
}

// Stop halts the clock for good.
func (c *Clock) Stop() {
	c.Pause()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
}

// Running reports whether the clock is currently ticking.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}
