package prommetrics

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/heroku/promx/hcontext"
)

// RouteFunc returns the route template matched for r, or "" if it does not
// know one.
type RouteFunc func(r *http.Request) string

// routeLabel resolves the endpoint label for r. Route templates are preferred
// over the literal path so that ids in URLs don't become label values.
//
// Must be called after the inner handler ran: chi records the patterns it
// matched while routing.
func (m *Metrics) routeLabel(r *http.Request) string {
	if m.routeFunc != nil {
		if route := m.routeFunc(r); route != "" {
			return route
		}
	}

	if route := chiRoute(r); route != "" {
		return route
	}

	if route, ok := hcontext.RouteFromRequest(r); ok {
		return route
	}

	// Escaped, so that the label stays ASCII whatever the client sent.
	return r.URL.EscapedPath()
}

// chiRoute joins the patterns of every chi router that handled r.
//
// A router mounting a sub-router on / records "/*" followed by the
// sub-router's pattern, e.g. []string{"/*", "/users/{id}"} which becomes
// "/users/{id}".
func chiRoute(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.RoutePatterns) == 0 {
		return ""
	}

	route := strings.Join(rctx.RoutePatterns, "")
	return strings.ReplaceAll(route, "/*/", "/")
}

// excluded reports whether a request is the scrape itself.
func (m *Metrics) excluded(path, method string) bool {
	return m.endpoint != "" && path == m.endpoint && method == http.MethodGet
}
