// Package logging builds the structured loggers shared by every command.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/voidfighter/internal/config"
)

// New returns a timestamped logger writing to w. LOG_LEVEL picks the level
// (debug, info, warn, error); unknown values fall back to info.
func New(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
		Level:           level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
