// Package clock abstracts the current time so request durations can be
// measured against a controlled clock in tests.
package clock

import "time"

// System reads the wall clock.
var System Clock = Func(time.Now)

// Clock tells you the current time.
type Clock interface {
	Now() time.Time
}

// Func is a function that returns a time.
type Func func() time.Time

// Now implements Clock.
func (fn Func) Now() time.Time { return fn() }

// Since returns the time elapsed on c since t.
func Since(c Clock, t time.Time) time.Duration {
	return c.Now().Sub(t)
}
