// Package cmdutil runs the long-lived pieces of a service, such as HTTP
// listeners and signal handlers, as one oklog/run group.
package cmdutil

import (
	"context"

	"github.com/oklog/run"
)

// A Server can be run synchronously and return an error.
//
// Servers are typically used with oklog/run.Group.
type Server interface {
	Run() error
	Stop(error)
}

// ServerFuncs implements the Server interface with provided functions.
type ServerFuncs struct {
	RunFunc  func() error
	StopFunc func(error)
}

// Run calls RunFunc and returns any errors.
func (sf ServerFuncs) Run() error {
	return sf.RunFunc()
}

// Stop calls StopFunc, if it's non-nil.
func (sf ServerFuncs) Stop(err error) {
	if sf.StopFunc != nil {
		sf.StopFunc(err)
	}
}

// NewContextServer returns a Server that runs the given function with a
// context that is canceled when the Server is stopped.
func NewContextServer(fn func(context.Context) error) Server {
	ctx, cancel := context.WithCancel(context.Background())

	return ServerFuncs{
		RunFunc: func() error {
			return fn(ctx)
		},
		StopFunc: func(error) {
			cancel()
		},
	}
}

// Run runs srvs until the first of them returns, then stops all of them and
// returns the error of the first one to return.
func Run(srvs ...Server) error {
	var g run.Group
	for _, srv := range srvs {
		g.Add(srv.Run, srv.Stop)
	}
	return g.Run()
}
