package prommetrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/heroku/promx/clock"
)

// observation is a request in flight. It is resolved once the response
// status is known; a request that never produces one leaves no trace.
type observation struct {
	once   sync.Once
	m      *Metrics
	method string
	start  time.Time
}

func (m *Metrics) begin(method string) *observation {
	return &observation{
		m:      m,
		method: method,
		start:  m.clock.Now(),
	}
}

// resolve records the request unless it is the scrape itself. Only the
// first call has any effect.
func (o *observation) resolve(path string, status int) {
	o.once.Do(func() {
		if o.m.excluded(path, o.method) {
			return
		}
		o.m.record(path, o.method, strconv.Itoa(status), clock.Since(o.m.clock, o.start))
	})
}
