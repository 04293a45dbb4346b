// Command promdemo is a small HTTP service instrumented with prommetrics.
//
// It serves / and /hello/{name}, and exposes the request series on the
// metrics endpoint (GET /metrics by default).
package main

import (
	"fmt"
	"net/http"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joeshaw/envdecode"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/heroku/promx/cmdutil"
	"github.com/heroku/promx/cmdutil/svclog"
	"github.com/heroku/promx/hmiddleware"
	"github.com/heroku/promx/hmiddleware/prommetrics"
)

type config struct {
	Logger svclog.Config
	Port   int `env:"PORT,default=3000"`

	Metrics metricsConfig
}

type metricsConfig struct {
	Namespace       string    `env:"METRICS_NAMESPACE,default=myapp"`
	Endpoint        string    `env:"METRICS_ENDPOINT,default=/metrics"`
	DisableEndpoint bool      `env:"METRICS_ENDPOINT_DISABLED"`
	Buckets         []float64 `env:"METRICS_BUCKETS"`
	ConstLabels     []string  `env:"METRICS_CONST_LABELS"`
}

func main() {
	var cfg config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		logrus.WithError(err).Fatal("decoding config")
	}

	logger := svclog.NewLogger(cfg.Logger)

	h, err := newHandler(logger, cfg.Metrics)
	if err != nil {
		logger.WithError(err).Fatal("building metrics")
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h,
	}

	err = cmdutil.Run(
		cmdutil.HTTPServer(logger, srv),
		cmdutil.SignalServer(logger, syscall.SIGINT, syscall.SIGTERM),
	)
	if err != nil {
		logger.WithError(err).Fatal()
	}
}

// newHandler builds the routes of the service behind request IDs, request
// logging and request metrics.
func newHandler(logger logrus.FieldLogger, cfg metricsConfig) (http.Handler, error) {
	labels, err := parseLabels(cfg.ConstLabels)
	if err != nil {
		return nil, err
	}

	b := prommetrics.New(cfg.Namespace).
		ConstLabels(labels).
		Logger(logger)
	if cfg.DisableEndpoint {
		b.Endpoint("")
	} else {
		b.Endpoint(cfg.Endpoint)
	}
	if len(cfg.Buckets) > 0 {
		b.Buckets(cfg.Buckets...)
	}

	m, reg, err := b.Pair()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(hmiddleware.RequestID, hmiddleware.RequestLogger(logger), m.Handler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Hello, World!")
	})
	r.Get("/hello/{name}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Hello %s!", chi.URLParam(r, "name"))
	})

	if m.Endpoint() != "" {
		r.Method(http.MethodGet, m.Endpoint(), reg.Handler())
	}

	logger.WithFields(logrus.Fields{
		"at":        "metrics-ready",
		"namespace": m.Namespace(),
		"endpoint":  m.Endpoint(),
	}).Info()

	return r, nil
}

// parseLabels turns "key=value" pairs into labels.
func parseLabels(pairs []string) (prometheus.Labels, error) {
	labels := prometheus.Labels{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("invalid const label %q, want key=value", p)
		}
		labels[k] = v
	}
	return labels, nil
}
