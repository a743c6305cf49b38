package viz

import "time"

// MaxFrameDt caps a single frame so a stalled terminal does not hand the
// integrator a huge step.
const MaxFrameDt = 1.0 / 20

// Clock turns successive tick timestamps into frame durations.
type Clock struct {
	last     time.Time
	fallback float64
}

// NewClock returns a clock whose first tick reports fallback seconds.
func NewClock(fallback float64) *Clock {
	return &Clock{fallback: fallback}
}

// Tick returns the seconds since the previous tick, clamped to
// [0, MaxFrameDt].
func (c *Clock) Tick(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return min(c.fallback, MaxFrameDt)
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return min(dt, MaxFrameDt)
}

func (c *Clock) Reset() { c.last = time.Time{} }
