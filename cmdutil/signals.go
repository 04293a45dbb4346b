package cmdutil

import (
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
)

// SignalServer returns a Server that returns from Run when any of the
// provided signals are received. Run always returns a nil error.
func SignalServer(logger logrus.FieldLogger, signals ...os.Signal) Server {
	ch := make(chan os.Signal, 1)

	return ServerFuncs{
		RunFunc: func() error {
			signal.Notify(ch, signals...)
			sig := <-ch
			if sig != nil {
				logger.WithField("signal", sig.String()).Info("received signal")
			}
			return nil
		},
		StopFunc: func(error) {
			signal.Stop(ch)
			select {
			case ch <- nil:
			default:
			}
		},
	}
}
