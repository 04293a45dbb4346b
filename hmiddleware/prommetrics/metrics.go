package prommetrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/heroku/promx/clock"
)

// Metrics is an HTTP middleware recording a request counter and a duration
// histogram for every request it wraps. It is built by Builder.Pair and is
// safe for concurrent use.
type Metrics struct {
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec

	namespace string
	endpoint  string
	routeFunc RouteFunc
	clock     clock.Clock
	logger    logrus.FieldLogger
}

// Namespace returns the namespace prefixed to the series names.
func (m *Metrics) Namespace() string { return m.namespace }

// Endpoint returns the configured scrape path, or "" if none is configured.
func (m *Metrics) Endpoint() string { return m.endpoint }

// Handler returns next wrapped so that each request it serves is recorded
// under its route template, method and response status. Requests and
// responses pass through untouched.
//
// A GET of the scrape endpoint is not recorded. Neither is a request whose
// handler panics; the panic propagates to the caller.
//
// A response that is never written is recorded as 200. That includes
// hijacked connections, so a websocket upgrade shows up as 200 rather than
// 101.
//
// Handler has the chi middleware signature. Install it with chi.Router.Use
// to get route templates: wrapping a chi router from the outside, as in
// m.Handler(router), leaves the middleware without chi's route context and
// every distinct path becomes its own series.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww, ok := w.(middleware.WrapResponseWriter)
		if !ok {
			ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		}

		obs := m.begin(r.Method)
		next.ServeHTTP(ww, r)

		st := ww.Status()
		if st == 0 {
			// Assume no Write or WriteHeader means OK.
			st = http.StatusOK
		}
		obs.resolve(m.routeLabel(r), st)
	})
}

// Wrap is Handler for callers composing handlers by hand. The same caveat
// applies: the endpoint label is a route template only when the router
// shares it, through chi.Router.Use, hcontext.WithRoute or a RouteFunc.
func (m *Metrics) Wrap(next http.Handler) http.Handler {
	return m.Handler(next)
}

// record drops the sample when the label values are rejected, e.g. a route
// that is not valid UTF-8. The response has already been served by then.
func (m *Metrics) record(path, method, status string, dur time.Duration) {
	h, err := m.durations.GetMetricWithLabelValues(path, method, status)
	if err == nil {
		var c prometheus.Counter
		if c, err = m.requests.GetMetricWithLabelValues(path, method, status); err == nil {
			h.Observe(dur.Seconds())
			c.Inc()
			return
		}
	}

	m.logger.WithFields(logrus.Fields{
		"at":     "record",
		"method": method,
		"status": status,
	}).WithError(err).Warn("dropping request sample")
}
