/* Copyright (c) 2018 Salesforce
 * All rights reserved.
 * Licensed under the BSD 3-Clause license.
 * For full license text, see LICENSE.txt file in the repo root  or https://opensource.org/licenses/BSD-3-Clause
 */

package hcontext

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ridKeyType struct{}

var ridKey ridKeyType

// RequestIDHeader is set on requests that arrive without an ID.
const RequestIDHeader = "X-Request-Id"

var headersToSearch = []string{
	"Request-Id", "X-Request-Id",
}

// RequestIDFromRequest returns the request ID carried by r's headers. If r
// has none a random one is generated, stored in the X-Request-Id header, and
// ok is false.
func RequestIDFromRequest(r *http.Request) (id string, ok bool) {
	for _, try := range headersToSearch {
		if id = r.Header.Get(try); id != "" {
			return id, true
		}
	}

	id = uuid.NewString()
	r.Header.Set(RequestIDHeader, id)
	return id, false
}

// WithRequestID adds the given request ID to a context for processing later
// down the chain.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ridKey, id)
}

// RequestIDFromContext fetches a request ID from the given context if it exists.
func RequestIDFromContext(ctx context.Context) (id string, ok bool) {
	id, ok = ctx.Value(ridKey).(string)
	return
}
