package clock

import (
	"context"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"golang.org/x/sync/errgroup"
)

// countingAction records how many times it fired.
type countingAction struct {
	fired atomic.Int32
}

func (a *countingAction) Fire() { a.fired.Add(1) }

func tickN(c *Clock, n int) {
	for range n {
		c.Tick(context.Background())
	}
}

func TestClock_Schedule(t *testing.T) {
	tests := map[string]struct {
		delay    int64
		ticks    int
		expFired int32
		expLive  int
	}{
		"not yet due": {
			delay:    3,
			ticks:    2,
			expFired: 0,
			expLive:  1,
		},
		"fires on exact tick": {
			delay:    3,
			ticks:    3,
			expFired: 1,
			expLive:  0,
		},
		"fires only once": {
			delay:    1,
			ticks:    5,
			expFired: 1,
			expLive:  0,
		},
		"zero delay is pruned without firing": {
			delay:    0,
			ticks:    1,
			expFired: 0,
			expLive:  0,
		},
		"negative delay is pruned without firing": {
			delay:    -4,
			ticks:    1,
			expFired: 0,
			expLive:  0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := New()
			a := &countingAction{}
			c.Schedule("test", tt.delay, a)

			tickN(c, tt.ticks)

			live, pending := c.Len()
			testutil.AssertEqual(t, "fired", a.fired.Load(), tt.expFired)
			testutil.AssertEqual(t, "live", live, tt.expLive)
			testutil.AssertEqual(t, "pending", pending, 0)
			testutil.AssertEqual(t, "now", c.Now(), uint64(tt.ticks))
		})
	}
}

func TestClock_Interval(t *testing.T) {
	c := New()
	a := &countingAction{}
	e := c.Interval("regen", 2, a)

	tickN(c, 7)
	testutil.AssertEqual(t, "fired", a.fired.Load(), int32(3))
	testutil.AssertEqual(t, "countdown", e.Countdown(), int64(1))

	e.Cancel()
	tickN(c, 4)
	testutil.AssertEqual(t, "fired after cancel", a.fired.Load(), int32(3))

	live, _ := c.Len()
	testutil.AssertEqual(t, "live", live, 0)
}

func TestClock_FiresInInsertionOrder(t *testing.T) {
	c := New()
	var order []string
	for _, label := range []string{"first", "second", "third"} {
		c.Schedule(label, 1, ActionFunc(func() { order = append(order, label) }))
	}

	tickN(c, 1)

	exp := []string{"first", "second", "third"}
	if !slices.Equal(order, exp) {
		t.Errorf("order = %v, expected %v", order, exp)
	}
}

func TestEvent_Cancel(t *testing.T) {
	tests := map[string]struct {
		run      func(c *Clock, e *Event)
		expFired int32
	}{
		"cancel before firing": {
			run: func(c *Clock, e *Event) {
				e.Cancel()
				tickN(c, 3)
			},
			expFired: 0,
		},
		"cancel twice": {
			run: func(c *Clock, e *Event) {
				e.Cancel()
				e.Cancel()
				tickN(c, 3)
			},
			expFired: 0,
		},
		"cancel after natural firing": {
			run: func(c *Clock, e *Event) {
				tickN(c, 2)
				e.Cancel()
				e.Cancel()
				tickN(c, 3)
			},
			expFired: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := New()
			a := &countingAction{}
			e := c.Schedule("test", 2, a)

			tt.run(c, e)

			testutil.AssertEqual(t, "fired", a.fired.Load(), tt.expFired)
			testutil.AssertEqual(t, "cancelled", e.Cancelled(), true)
			testutil.AssertEqual(t, "countdown", e.Countdown(), int64(-1))
		})
	}
}

func TestEvent_CancelFromOwnAction(t *testing.T) {
	c := New()
	var fired int
	var e *Event
	e = c.Interval("self-cancel", 1, ActionFunc(func() {
		fired++
		e.Cancel()
	}))

	tickN(c, 4)

	testutil.AssertEqual(t, "fired", fired, 1)
	live, _ := c.Len()
	testutil.AssertEqual(t, "live", live, 0)
}

func TestClock_ReentrantSchedule(t *testing.T) {
	c := New()
	inner := &countingAction{}
	var scheduled *Event

	c.Schedule("outer", 1, ActionFunc(func() {
		scheduled = c.Schedule("inner", 2, inner)
	}))

	tickN(c, 1)

	if scheduled == nil {
		t.Fatal("expected inner event to be scheduled")
	}
	live, pending := c.Len()
	testutil.AssertEqual(t, "live after outer fires", live, 1)
	testutil.AssertEqual(t, "pending after outer fires", pending, 0)
	testutil.AssertEqual(t, "inner countdown", scheduled.Countdown(), int64(2))

	tickN(c, 1)
	testutil.AssertEqual(t, "inner fired early", inner.fired.Load(), int32(0))

	tickN(c, 3)
	testutil.AssertEqual(t, "inner fired", inner.fired.Load(), int32(1))
}

func TestClock_ScheduleDuringTickIsQueued(t *testing.T) {
	c := New()

	// Hold the gate as a tick would.
	c.gate <- struct{}{}
	e := c.Schedule("queued", 1, &countingAction{})
	c.pendingMu.Lock()
	pending := len(c.pending)
	c.pendingMu.Unlock()
	<-c.gate

	testutil.AssertEqual(t, "pending", pending, 1)

	tickN(c, 1)
	testutil.AssertEqual(t, "countdown", e.Countdown(), int64(0))
	live, pendingAfter := c.Len()
	testutil.AssertEqual(t, "live", live, 0)
	testutil.AssertEqual(t, "pending after tick", pendingAfter, 0)
}

func TestClock_TickInterrupted(t *testing.T) {
	c := New()
	a := &countingAction{}
	c.Schedule("test", 1, a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c.gate <- struct{}{}
	c.Tick(ctx)
	<-c.gate

	testutil.AssertEqual(t, "now", c.Now(), uint64(0))
	testutil.AssertEqual(t, "fired", a.fired.Load(), int32(0))

	tickN(c, 1)
	testutil.AssertEqual(t, "fired on next tick", a.fired.Load(), int32(1))
}

func TestClock_ConcurrentSchedule(t *testing.T) {
	c := New()
	a := &countingAction{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for ctx.Err() == nil {
			c.Tick(ctx)
		}
	}()

	var g errgroup.Group
	for range 50 {
		g.Go(func() error {
			for range 20 {
				c.Schedule("concurrent", 1, a)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for a.fired.Load() < 1000 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	testutil.AssertEqual(t, "fired", a.fired.Load(), int32(1000))
}

func TestClock_Lifecycle(t *testing.T) {
	c := New(WithTickLength(5 * time.Millisecond))

	fired := make(chan struct{}, 1)
	c.Schedule("lifecycle", 2, ActionFunc(func() { fired <- struct{}{} }))

	c.Start()
	c.Start()
	testutil.AssertEqual(t, "running", c.Running(), true)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event to fire")
	}

	c.Pause()
	c.Pause()
	testutil.AssertEqual(t, "running after pause", c.Running(), false)

	c.Start()
	testutil.AssertEqual(t, "running after restart", c.Running(), true)

	c.Stop()
	c.Start()
	testutil.AssertEqual(t, "running after stop", c.Running(), false)
}
