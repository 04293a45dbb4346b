package prommetrics

import (
	"math"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/model"
	"github.com/sirupsen/logrus"

	"github.com/heroku/promx/clock"
)

// DefaultEndpoint is the scrape path used unless Endpoint is called.
const DefaultEndpoint = "/metrics"

const (
	requestsTotal   = "http_requests_total"
	requestDuration = "http_requests_duration_seconds"

	// label names
	endpointKey = "endpoint"
	methodKey   = "method"
	statusKey   = "status"
)

var labelNames = []string{endpointKey, methodKey, statusKey}

// Builder configures the request series and registers them once via Pair.
type Builder struct {
	namespace   string
	endpoint    string
	constLabels prometheus.Labels
	buckets     []float64
	registry    *prometheus.Registry
	logger      logrus.FieldLogger
	routeFunc   RouteFunc
	clock       clock.Clock
}

// New returns a Builder for the given namespace, e.g. "shadow" produces
// shadow_http_requests_total.
func New(namespace string) *Builder {
	return &Builder{
		namespace:   namespace,
		endpoint:    DefaultEndpoint,
		constLabels: prometheus.Labels{},
		buckets:     append([]float64(nil), prometheus.DefBuckets...),
		registry:    prometheus.NewRegistry(),
		logger:      logrus.StandardLogger(),
		clock:       clock.System,
	}
}

// Endpoint sets the scrape path. An empty path disables self-exclusion, so
// every request is recorded.
func (b *Builder) Endpoint(path string) *Builder {
	b.endpoint = path
	return b
}

// Buckets replaces the histogram bucket boundaries. They must be non-empty
// and strictly ascending.
func (b *Builder) Buckets(buckets ...float64) *Builder {
	b.buckets = append([]float64(nil), buckets...)
	return b
}

// ConstLabels sets labels added to every series.
func (b *Builder) ConstLabels(labels prometheus.Labels) *Builder {
	cl := make(prometheus.Labels, len(labels))
	for k, v := range labels {
		cl[k] = v
	}
	b.constLabels = cl
	return b
}

// Registry sets the registry the series are registered into. By default a
// private registry is created.
func (b *Builder) Registry(r *prometheus.Registry) *Builder {
	b.registry = r
	return b
}

// Logger sets the logger used by the scrape handler and for requests whose
// labels cannot be recorded.
func (b *Builder) Logger(l logrus.FieldLogger) *Builder {
	b.logger = l
	return b
}

// RouteFunc sets a function consulted first when resolving the endpoint
// label of a request.
func (b *Builder) RouteFunc(fn RouteFunc) *Builder {
	b.routeFunc = fn
	return b
}

// Clock sets the clock request durations are measured with.
func (b *Builder) Clock(c clock.Clock) *Builder {
	b.clock = c
	return b
}

// Pair validates the configuration, registers the request counter and
// duration histogram and returns the middleware together with a handle on
// the registry they live in.
//
// A series already present in the registry yields a *RegistrationError;
// invalid configuration yields a *ConfigError. On error the registry is left
// as it was.
func (b *Builder) Pair() (*Metrics, *Registry, error) {
	if err := validateBuckets(b.buckets); err != nil {
		return nil, nil, err
	}
	if b.registry == nil {
		return nil, nil, &ConfigError{Field: "registry", Reason: "nil registry"}
	}
	if b.clock == nil {
		return nil, nil, &ConfigError{Field: "clock", Reason: "nil clock"}
	}
	if b.logger == nil {
		return nil, nil, &ConfigError{Field: "logger", Reason: "nil logger"}
	}
	if err := validateNames(b.namespace, b.constLabels); err != nil {
		return nil, nil, err
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   b.namespace,
		Name:        requestsTotal,
		Help:        "Total number of HTTP requests",
		ConstLabels: b.constLabels,
	}, labelNames)

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   b.namespace,
		Name:        requestDuration,
		Help:        "HTTP request duration in seconds for all requests",
		ConstLabels: b.constLabels,
		Buckets:     b.buckets,
	}, labelNames)

	if err := b.register(requests, requestsTotal); err != nil {
		return nil, nil, err
	}
	if err := b.register(durations, requestDuration); err != nil {
		b.registry.Unregister(requests)
		return nil, nil, err
	}

	m := &Metrics{
		requests:  requests,
		durations: durations,
		namespace: b.namespace,
		endpoint:  b.endpoint,
		routeFunc: b.routeFunc,
		clock:     b.clock,
		logger:    b.logger,
	}
	r := &Registry{
		registry: b.registry,
		logger:   b.logger,
	}
	return m, r, nil
}

func (b *Builder) register(c prometheus.Collector, name string) error {
	err := b.registry.Register(c)
	if err == nil {
		return nil
	}

	fqName := prometheus.BuildFQName(b.namespace, "", name)
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return &RegistrationError{Name: fqName, Err: err}
	}
	return &ConfigError{Field: "series " + fqName, Reason: "registration rejected", Err: err}
}

func validateBuckets(buckets []float64) error {
	if len(buckets) == 0 {
		return &ConfigError{Field: "buckets", Reason: "at least one bucket boundary is required"}
	}
	for i, v := range buckets {
		if math.IsNaN(v) {
			return &ConfigError{Field: "buckets", Reason: "boundary is NaN"}
		}
		if i > 0 && v <= buckets[i-1] {
			return &ConfigError{
				Field:  "buckets",
				Reason: "boundaries must be strictly ascending",
				Err:    errors.Errorf("%g follows %g", v, buckets[i-1]),
			}
		}
	}
	return nil
}

// validateNames restricts series and const label names to the legacy
// character set. The 0.0.4 text format served by Registry.Handler has no way
// to carry anything else unquoted.
func validateNames(namespace string, constLabels prometheus.Labels) error {
	for _, name := range []string{requestsTotal, requestDuration} {
		fqName := prometheus.BuildFQName(namespace, "", name)
		if !model.LegacyValidation.IsValidMetricName(fqName) {
			return &ConfigError{
				Field:  "namespace",
				Reason: "not a valid metric name prefix",
				Err:    errors.Errorf("invalid metric name %q", fqName),
			}
		}
	}
	for name := range constLabels {
		if !model.LegacyValidation.IsValidLabelName(name) {
			return &ConfigError{
				Field:  "const labels",
				Reason: "not a valid label name",
				Err:    errors.Errorf("invalid label name %q", name),
			}
		}
	}
	return nil
}
