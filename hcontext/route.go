/* Copyright (c) 2018 Salesforce
 * All rights reserved.
 * Licensed under the BSD 3-Clause license.
 * For full license text, see LICENSE.txt file in the repo root  or https://opensource.org/licenses/BSD-3-Clause
 */

package hcontext

import (
	"context"
	"net/http"
)

type routeKeyType struct{}

var routeKey routeKeyType

// WithRoute records the route template matched for a request, e.g.
// "/users/:id". Dispatchers that aren't chi use it to give middleware a
// label-safe name for the request.
//
// Middleware only sees the template if it is attached before the middleware
// runs.
func WithRoute(ctx context.Context, template string) context.Context {
	return context.WithValue(ctx, routeKey, template)
}

// RouteFromContext returns the route template stored by WithRoute.
func RouteFromContext(ctx context.Context) (template string, ok bool) {
	template, ok = ctx.Value(routeKey).(string)
	if template == "" {
		return "", false
	}
	return template, ok
}

// RouteFromRequest is RouteFromContext for r's context.
func RouteFromRequest(r *http.Request) (string, bool) {
	return RouteFromContext(r.Context())
}
