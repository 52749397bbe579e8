// Package logging builds the charmbracelet/log logger used by the CLI and
// the task store.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Options control how log lines are written.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns the default logging options: warnings and above,
// text output, no timestamps.
func DefaultOptions() Options {
	return Options{
		Level:     log.WarnLevel,
		Formatter: log.TextFormatter,
	}
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel parses a level name (debug, info, warn, error, fatal).
// "warning" is accepted for warn.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	default:
		return 0, fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error, fatal", level)
	}
}

// ParseFormatter parses a formatter name (text, json, logfmt).
func ParseFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("invalid log format %q, must be one of: text, json, logfmt", format)
	}
}

// Settings is the subset of configuration that shapes the logger.
type Settings interface {
	GetLogLevel() string
	GetLogFormat() string
	GetLogTimestamps() bool
	GetLogCaller() bool
}

// FromConfig returns a logger writing to w configured from s.
func FromConfig(w io.Writer, s Settings) (*log.Logger, error) {
	opts := DefaultOptions()

	if s.GetLogLevel() != "" {
		level, err := ParseLevel(s.GetLogLevel())
		if err != nil {
			return nil, err
		}
		opts.Level = level
	}

	formatter, err := ParseFormatter(s.GetLogFormat())
	if err != nil {
		return nil, err
	}
	opts.Formatter = formatter
	opts.ReportTimestamp = s.GetLogTimestamps()
	opts.ReportCaller = s.GetLogCaller()

	return New(w, opts), nil
}
