// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the console logger shared by every stage.
package logging

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to w at the named level. Unknown level
// names fall back to info.
func New(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	SetLevel(log, level)
	return log
}

// SetLevel applies the named level to log, falling back to info.
func SetLevel(log *logrus.Logger, level string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}

// WithRun tags every entry with a short run identifier so the lines of one
// cycle can be grepped out of a shared cron log.
func WithRun(log logrus.FieldLogger) logrus.FieldLogger {
	return log.WithField("run", uuid.NewString()[:8])
}
