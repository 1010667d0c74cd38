package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// DateKey formats t as a UTC calendar-date key. The daily challenge rolls
// over when this key changes.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
