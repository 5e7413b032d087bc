// Package logging builds the logrus logger shared by the binaries.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"interpolation-preview/internal/config"
)

// New returns a logger writing to out. Debug mode forces debug level and
// colored text output; otherwise cfg decides level and format.
func New(out io.Writer, cfg config.LogConfig, debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
		return logger
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
