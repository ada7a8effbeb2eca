// Package clock supplies the reference time of a generation run.
package clock

import "time"

// Clock supplies the reference time of a run.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock creates a new RealClock.
func NewRealClock() Clock {
	return &RealClock{}
}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Runs driven by a FixedClock
// produce identical dates and file names no matter when they execute.
type FixedClock struct {
	at time.Time
}

// NewFixedClock creates a FixedClock pinned at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{at: t}
}

// Now returns the pinned time.
func (c *FixedClock) Now() time.Time {
	return c.at
}
