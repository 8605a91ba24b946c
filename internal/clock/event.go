package clock

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// Action is the work performed when an Event fires.
type Action interface {
	Fire()
}

// ActionFunc adapts a plain function to an Action.
type ActionFunc func()

func (f ActionFunc) Fire() { f() }

// Event is a countdown scheduled on a Clock. The countdown drops by one each
// tick and the action fires when it reaches exactly zero.
type Event struct {
	id       string
	label    string
	initial  int64
	interval bool
	action   Action

	countdown atomic.Int64
	cancelled atomic.Bool
}

func newEvent(label string, delay int64, action Action, interval bool) *Event {
	e := &Event{
		id:       uuid.New().String(),
		label:    label,
		initial:  delay,
		interval: interval,
		action:   action,
	}
	e.countdown.Store(delay)
	return e
}

// Id returns the unique identifier of the event.
func (e *Event) Id() string { return e.id }

// Label returns the human readable label given when the event was scheduled.
func (e *Event) Label() string { return e.label }

// Action returns the payload fired by the event.
func (e *Event) Action() Action { return e.action }

// IsInterval reports whether the event repeats after firing.
func (e *Event) IsInterval() bool { return e.interval }

// Countdown returns the ticks remaining before the event fires.
// A cancelled event always reports -1.
func (e *Event) Countdown() int64 {
	if e.cancelled.Load() {
		return -1
	}
	return e.countdown.Load()
}

// Cancelled reports whether Cancel has been called.
func (e *Event) Cancelled() bool {
	return e.cancelled.Load()
}

// Cancel prevents any future firing of the event. It is safe to call more
// than once and from any goroutine, including the event's own action.
func (e *Event) Cancel() {
	if e.cancelled.CompareAndSwap(false, true) {
		slog.Debug("cancelling clock event", "label", e.label, "id", e.id)
	}
}

// tick advances the event by one tick, firing it when due.
// Returns true when the event should be dropped from the schedule.
func (e *Event) tick() bool {
	if e.cancelled.Load() {
		return true
	}

	remaining := e.countdown.Add(-1)
	if remaining < 0 {
		return true
	}
	if remaining > 0 {
		return false
	}

	slog.Debug("running clock event", "label", e.label, "id", e.id)
	e.action.Fire()

	if !e.interval || e.cancelled.Load() {
		return true
	}
	e.countdown.Store(e.initial)
	return false
}
