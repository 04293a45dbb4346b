package hmiddleware

import (
	"net/http"

	"github.com/heroku/promx/hcontext"
)

// RequestID stores the request's ID in its context, generating one when the
// client didn't send any, and echoes it in the X-Request-Id response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := hcontext.RequestIDFromRequest(r)
		w.Header().Set(hcontext.RequestIDHeader, requestID)

		ctx := hcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
