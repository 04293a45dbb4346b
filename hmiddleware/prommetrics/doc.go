// Package prommetrics provides middleware recording Prometheus metrics about
// http servers.
//
// Two series are registered, both labelled with endpoint, method and status:
//
//	<namespace>_http_requests_total - counter of requests
//	<namespace>_http_requests_duration_seconds - histogram of request durations
//
// The endpoint label is the route template matched by the router, e.g.
// /users/{id}, not the requested path. The template comes from chi when
// routing with chi, from hcontext.WithRoute when another router annotates
// the request, and falls back to the escaped request path otherwise. With
// chi the middleware must be installed through Router.Use; wrapping the
// router from the outside hides the matched route from it.
//
// Scrapes of the metrics endpoint itself (GET on the configured path) are
// not recorded.
package prommetrics
