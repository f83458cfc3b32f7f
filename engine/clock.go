package engine

import "time"

// Clock is the stepped game clock shared by every system of a World
// It only moves when the world steps; there is no wall-clock reading
type Clock struct {
	epoch   time.Time
	elapsed time.Duration
}

// NewClock creates a clock whose zero elapsed time maps to epoch
func NewClock(epoch time.Time) *Clock {
	return &Clock{epoch: epoch}
}

// Now returns the current game time
func (c *Clock) Now() time.Time {
	return c.epoch.Add(c.elapsed)
}

// Elapsed returns game time since level start
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Advance moves game time forward; negative deltas are ignored
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.elapsed += dt
	}
}
