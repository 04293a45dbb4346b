// Package svclog provides logging facilities for standard services.
package svclog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Config for logger.
type Config struct {
	AppName   string `env:"APP_NAME,required"`
	Deploy    string `env:"DEPLOY,required"`
	Dyno      string `env:"DYNO"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// NewLogger returns a new logger that includes app and deploy key/value pairs
// in each log line. An unknown LogLevel leaves the level at info; LogFormat
// "json" selects JSON output.
func NewLogger(cfg Config) logrus.FieldLogger {
	l := logrus.New()
	l.Out = os.Stdout

	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		l.SetLevel(lvl)
	}
	if cfg.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := l.WithFields(logrus.Fields{
		"app":    cfg.AppName,
		"deploy": cfg.Deploy,
	})
	if cfg.Dyno != "" {
		logger = logger.WithField("dyno", cfg.Dyno)
	}
	return logger
}
