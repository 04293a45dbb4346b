package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus/hooks/test"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	body, err := io.ReadAll(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	return w.Code, string(body)
}

func TestHandler(t *testing.T) {
	logger, _ := test.NewNullLogger()

	h, err := newHandler(logger, metricsConfig{
		Namespace:   "myapp",
		Endpoint:    "/metrics",
		Buckets:     []float64{0.005, 0.05, 0.5},
		ConstLabels: []string{"service=demo"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if code, body := get(t, h, "/hello/alice"); code != 200 || body != "Hello alice!" {
		t.Fatalf("GET /hello/alice = %d %q", code, body)
	}
	get(t, h, "/hello/bob")
	get(t, h, "/")
	get(t, h, "/metrics")

	code, body := get(t, h, "/metrics")
	if code != 200 {
		t.Fatalf("GET /metrics = %d", code)
	}

	for _, want := range []string{
		`myapp_http_requests_total{endpoint="/hello/{name}",method="GET",service="demo",status="200"} 2`,
		`myapp_http_requests_total{endpoint="/",method="GET",service="demo",status="200"} 1`,
		`le="0.005"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, `endpoint="/metrics"`) {
		t.Errorf("scrape recorded itself:\n%s", body)
	}
}

func TestHandlerEndpointDisabled(t *testing.T) {
	logger, _ := test.NewNullLogger()

	h, err := newHandler(logger, metricsConfig{Namespace: "myapp", DisableEndpoint: true})
	if err != nil {
		t.Fatal(err)
	}

	if code, _ := get(t, h, "/metrics"); code != http.StatusNotFound {
		t.Fatalf("GET /metrics = %d, want 404", code)
	}
}

func TestHandlerInvalidConfig(t *testing.T) {
	logger, _ := test.NewNullLogger()

	if _, err := newHandler(logger, metricsConfig{Namespace: "myapp", Buckets: []float64{2, 1}}); err == nil {
		t.Fatal("expected unsorted buckets to be rejected")
	}
	if _, err := newHandler(logger, metricsConfig{Namespace: "myapp", ConstLabels: []string{"nope"}}); err == nil {
		t.Fatal("expected a malformed const label to be rejected")
	}
}

func TestConfigFromEnv(t *testing.T) {
	for k, v := range map[string]string{
		"APP_NAME":             "promdemo",
		"DEPLOY":               "test",
		"PORT":                 "8080",
		"METRICS_BUCKETS":      "0.1;1;10",
		"METRICS_CONST_LABELS": "service=demo;region=eu",
		"METRICS_NAMESPACE":    "",
		"METRICS_ENDPOINT":     "",
	} {
		t.Setenv(k, v)
	}

	var cfg config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Metrics.Namespace != "myapp" || cfg.Metrics.Endpoint != "/metrics" {
		t.Errorf("defaults not applied: %+v", cfg.Metrics)
	}
	if got := cfg.Metrics.Buckets; len(got) != 3 || got[2] != 10 {
		t.Errorf("Buckets = %v, want [0.1 1 10]", got)
	}
	if got := cfg.Metrics.ConstLabels; len(got) != 2 || got[1] != "region=eu" {
		t.Errorf("ConstLabels = %v", got)
	}
}
