/* Copyright (c) 2018 Salesforce
 * All rights reserved.
 * Licensed under the BSD 3-Clause license.
 * For full license text, see LICENSE.txt file in the repo root  or https://opensource.org/licenses/BSD-3-Clause
 */

package hcontext

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDFromRequest(t *testing.T) {
	for _, h := range headersToSearch {
		t.Run(h, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			want := uuid.NewString()
			req.Header.Set(h, want)

			got, ok := RequestIDFromRequest(req)
			if !ok {
				t.Fatal("expected to fetch request ID, but couldn't")
			}
			if got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		})
	}

	t.Run("generated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		id, ok := RequestIDFromRequest(req)
		if ok {
			t.Fatal("expected no request ID on the request")
		}
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("generated id %q is not a uuid: %v", id, err)
		}
		if got := req.Header.Get(RequestIDHeader); got != id {
			t.Fatalf("header = %q, want %q", got, id)
		}
	})
}

func TestRequestIDStorage(t *testing.T) {
	const reqID = `hunter2`

	ctx := WithRequestID(context.Background(), reqID)
	rid, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("expected to get request ID from context but didn't")
	}
	if rid != reqID {
		t.Fatalf("got %q, want %q", rid, reqID)
	}
}

func TestRoute(t *testing.T) {
	if _, ok := RouteFromContext(context.Background()); ok {
		t.Fatal("expected no route on an empty context")
	}

	if _, ok := RouteFromContext(WithRoute(context.Background(), "")); ok {
		t.Fatal("expected an empty template to be ignored")
	}

	req := httptest.NewRequest("GET", "/users/42", nil)
	req = req.WithContext(WithRoute(req.Context(), "/users/:id"))

	got, ok := RouteFromRequest(req)
	if !ok || got != "/users/:id" {
		t.Fatalf("RouteFromRequest = %q, %v; want /users/:id, true", got, ok)
	}
}
