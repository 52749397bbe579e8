package config

import (
	"os"

	"github.com/nibzard/tasks-go/internal/taskdir"
)

// findProjectConfigFile looks for a config file in the current directory
// and returns its absolute path.
func findProjectConfigFile() string {
	wd, _ := os.Getwd()
	for _, path := range taskdir.ProjectConfigPaths(wd) {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.tasks/tasks.toml first, then the OS config directory.
func findUserConfigFile() string {
	for _, path := range taskdir.UserConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.IDScheme = DefaultIDScheme
	cfg.DateFormat = DefaultDateFormat
	cfg.DefaultFilter = DefaultFilter
	cfg.ExportFormat = DefaultExportFormat
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// ActiveConfigFile returns the config file with the highest priority that
// was read, or "" if none was.
func (cws *ConfigWithSources) ActiveConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
