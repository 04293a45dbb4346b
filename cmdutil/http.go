package cmdutil

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ShutdownTimeout bounds how long in-flight requests get to finish once an
// HTTP server is stopped.
var ShutdownTimeout = 5 * time.Second

// HTTPServer adapts srv to a Server. Run listens on srv.Addr; Stop shuts the
// server down gracefully.
func HTTPServer(l logrus.FieldLogger, srv *http.Server) Server {
	return HTTPServerListener(l, srv, nil)
}

// HTTPServerListener is HTTPServer serving on ln. If ln is nil one is
// opened on srv.Addr when the server runs.
func HTTPServerListener(l logrus.FieldLogger, srv *http.Server, ln net.Listener) Server {
	return ServerFuncs{
		RunFunc: func() error {
			if ln == nil {
				var err error
				if ln, err = net.Listen("tcp", srv.Addr); err != nil {
					return errors.Wrap(err, "listening to tcp addr")
				}
			}

			l.WithFields(logrus.Fields{
				"at":   "binding",
				"addr": ln.Addr().String(),
			}).Info()

			if err := srv.Serve(ln); err != http.ErrServerClosed {
				return err
			}
			return nil
		},
		StopFunc: func(error) { gracefulShutdown(l, srv) },
	}
}

func gracefulShutdown(l logrus.FieldLogger, s *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	l.WithField("at", "graceful-shutdown").Info()
	if err := s.Shutdown(ctx); err != nil {
		l.WithField("at", "graceful-shutdown").WithError(err).Warn()
		s.Close()
	}
}
