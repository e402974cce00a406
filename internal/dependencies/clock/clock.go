package clock

import "time"

// Clock provides the current time. Mockable so tests can control turn
// timing and retention cutoffs.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock with the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC. Room timestamps are compared
// across backends and serialized to clients, so they are always UTC.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
