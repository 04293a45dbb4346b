// Package clocktest provides clocks returning predetermined times.
package clocktest

import (
	"sync"
	"time"

	"github.com/heroku/promx/clock"
)

// New returns a clock answering Now calls with the given times in order.
// Once only one time remains it is returned forever; with none the zero
// time is returned. It is safe for concurrent use.
func New(ts ...time.Time) clock.Clock {
	var mu sync.Mutex
	return clock.Func(func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		switch len(ts) {
		case 0:
			return time.Time{}
		case 1:
			return ts[0]
		}
		t := ts[0]
		ts = ts[1:]
		return t
	})
}

// NewFromDurations returns a clock whose Now calls return a fixed start time
// offset by each of ds in turn.
func NewFromDurations(ds ...time.Duration) clock.Clock {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := make([]time.Time, 0, len(ds))
	for _, d := range ds {
		ts = append(ts, t0.Add(d))
	}
	return New(ts...)
}
