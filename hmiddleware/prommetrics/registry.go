package prommetrics

import (
	"bytes"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
)

// textContentType is the content type of the text exposition format.
const textContentType = "text/plain; version=0.0.4; charset=utf-8"

// Registry owns the prometheus.Registry the request series were registered
// into. Its lifetime is independent of Metrics: the scrape endpoint may be
// mounted anywhere, or not at all.
type Registry struct {
	registry *prometheus.Registry
	logger   logrus.FieldLogger
}

// Prometheus returns the underlying registry, e.g. to register custom series
// next to the request series.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Metrics gathers every series in the registry and renders them in the text
// exposition format.
func (r *Registry) Metrics() (string, error) {
	b, err := r.encode()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Registry) encode() ([]byte, error) {
	mfs, err := r.registry.Gather()
	if err != nil {
		return nil, &EncodingError{Err: errors.Wrap(err, "gathering")}
	}

	var buf bytes.Buffer
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return nil, &EncodingError{Err: errors.Wrapf(err, "writing %s", mf.GetName())}
		}
	}
	return buf.Bytes(), nil
}

// Handler returns an http.Handler serving the output of Metrics. Mount it
// for GET at the endpoint configured on the builder.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		b, err := r.encode()
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"at":   "scrape",
				"path": req.URL.Path,
			}).WithError(err).Error()
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", textContentType)
		w.Write(b) //nolint:errcheck
	})
}
