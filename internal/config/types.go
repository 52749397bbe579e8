package config

import "github.com/nibzard/tasks-go/internal/taskdir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceFile     ConfigSource = "config file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config   *Config
	Sources  map[string]ConfigSource
	Files    []string // config files read, in load order
	Warnings []string // non-fatal problems such as unknown keys
}

// Default values.
const (
	DefaultDataFile     = taskdir.DefaultDataFile
	DefaultIDScheme     = "uuid"
	DefaultDateFormat   = "Jan 02, 2006"
	DefaultFilter       = "all"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
	DefaultExportFormat = "markdown"
)

// Config holds the full configuration for tasks.
type Config struct {
	// Task file. Relative paths are resolved against the working directory.
	DataFile string `toml:"data_file"`

	// ID scheme for new tasks: uuid or nanoid.
	IDScheme string `toml:"id_scheme"`

	// Display layout for dates, in time.Format notation.
	DateFormat string `toml:"date_format"`

	// Filter used by ls and the TUI when none is given.
	DefaultFilter string `toml:"default_filter"`

	// Format used by export when none is given.
	ExportFormat string `toml:"export_format"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Explicit config file from -config or TASKS_CONFIG.
	ConfigFile string `toml:"-"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}
