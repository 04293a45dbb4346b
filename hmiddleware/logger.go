package hmiddleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/heroku/promx/hcontext"
)

// RequestLogger is a middleware logging one line per finished request with
// github.com/sirupsen/logrus. Put it after RequestID to get request_id in
// each line.
func RequestLogger(l logrus.FieldLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww, ok := w.(middleware.WrapResponseWriter)
			if !ok {
				ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			}

			t0 := time.Now()
			defer func() {
				logRequest(l, r, ww.Status(), ww.BytesWritten(), time.Since(t0))
			}()
			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

func logRequest(l logrus.FieldLogger, r *http.Request, status int, bytes int, service time.Duration) {
	log := l.WithFields(logrus.Fields{
		"method":      r.Method,
		"path":        r.URL.RequestURI(),
		"remote_addr": r.RemoteAddr,
		"at":          "finish",
	})

	if id, ok := hcontext.RequestIDFromContext(r.Context()); ok {
		log = log.WithField("request_id", id)
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if route := rctx.RoutePattern(); route != "" {
			log = log.WithField("route", route)
		}
	}

	if status > 0 {
		log = log.WithField("status", status)
	}

	if bytes > 0 {
		log = log.WithField("bytes", bytes)
	}

	log.WithField("service", fmt.Sprintf("%dms", service/time.Millisecond)).Info()
}
