package clock

import "time"

type ClockOpt func(*Clock)

// WithTickLength sets the wall-clock duration of one tick.
func WithTickLength(d time.Duration) ClockOpt {
	return func(c *Clock) {
		if d > 0 {
			c.tickLength = d
		}
	}
}
