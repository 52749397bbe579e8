package config

import (
	"github.com/nibzard/tasks-go/internal/export"
	"github.com/nibzard/tasks-go/internal/todo"
)

// GetLogLevel returns the configured log level name.
func (c *Config) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the configured log format name.
func (c *Config) GetLogFormat() string {
	return c.LogFormat
}

// GetLogTimestamps reports whether log lines carry timestamps.
func (c *Config) GetLogTimestamps() bool {
	return c.LogTimestamps
}

// GetLogCaller reports whether log lines carry the caller location.
func (c *Config) GetLogCaller() bool {
	return c.LogCaller
}

// GetFilter returns the default task filter, or todo.FilterAll if the
// configured value is invalid.
func (c *Config) GetFilter() todo.Filter {
	f, err := todo.ParseFilter(c.DefaultFilter)
	if err != nil {
		return todo.FilterAll
	}
	return f
}

// GetExportFormat returns the default export format, or markdown if the
// configured value is invalid.
func (c *Config) GetExportFormat() export.Format {
	f, err := export.ParseFormat(c.ExportFormat)
	if err != nil {
		return export.FormatMarkdown
	}
	return f
}

// NewIDGenerator returns the task id generator for the configured scheme.
func (c *Config) NewIDGenerator() (todo.IDGenerator, error) {
	return todo.NewIDGenerator(c.IDScheme)
}

// Value returns the value of the field with the given TOML key, or nil if
// there is no such field.
func (c *Config) Value(key string) any {
	switch key {
	case "data_file":
		return c.DataFile
	case "id_scheme":
		return c.IDScheme
	case "date_format":
		return c.DateFormat
	case "default_filter":
		return c.DefaultFilter
	case "export_format":
		return c.ExportFormat
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return c.LogTimestamps
	case "log_caller":
		return c.LogCaller
	}
	return nil
}
