package config

import (
	"os"
	"strings"
)

// envBindings maps environment variables to config fields.
var envBindings = []struct {
	env   string
	field string
}{
	{"TASKS_FILE", "data_file"},
	{"TASKS_ID_SCHEME", "id_scheme"},
	{"TASKS_DATE_FORMAT", "date_format"},
	{"TASKS_DEFAULT_FILTER", "default_filter"},
	{"TASKS_EXPORT_FORMAT", "export_format"},
	{"TASKS_LOG_LEVEL", "log_level"},
	{"TASKS_LOG_FORMAT", "log_format"},
	{"TASKS_LOG_TIMESTAMPS", "log_timestamps"},
	{"TASKS_LOG_CALLER", "log_caller"},
}

// loadFromEnvWithSources overrides config from environment variables and
// updates source tracking when sources is non-nil.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource) {
	for _, b := range envBindings {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		setField(cfg, b.field, v)
		if sources != nil {
			sources[b.field] = SourceEnv
		}
	}
}

// setField assigns a string value to the named config field.
func setField(cfg *Config, field, value string) {
	switch field {
	case "data_file":
		cfg.DataFile = value
	case "id_scheme":
		cfg.IDScheme = value
	case "date_format":
		cfg.DateFormat = value
	case "default_filter":
		cfg.DefaultFilter = value
	case "export_format":
		cfg.ExportFormat = value
	case "log_level":
		cfg.LogLevel = value
	case "log_format":
		cfg.LogFormat = value
	case "log_timestamps":
		cfg.LogTimestamps = boolFromString(value)
	case "log_caller":
		cfg.LogCaller = boolFromString(value)
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
