// Package taskdir provides constants and helpers for where tasks keeps its
// files.
package taskdir

import (
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the per-user tasks directory.
	Dir = ".tasks"

	// AppName is the directory name used under the OS config directory.
	AppName = "tasks"

	// DefaultDataFile is the default task file name, relative to the
	// working directory.
	DefaultDataFile = "tasks.json"

	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "tasks.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".tasks.toml"
)

// ConfigPath returns the config file path inside the tasks directory under base.
func ConfigPath(base string) string {
	return joinPath(base, DefaultConfigFile)
}

// DirPath returns the tasks directory under base.
func DirPath(base string) string {
	if base == "." || base == "" {
		return Dir
	}
	return filepath.Join(base, Dir)
}

// UserConfigPaths returns the user-level config files in lookup order:
// ~/.tasks/tasks.toml, then <os config dir>/tasks/tasks.toml.
func UserConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, ConfigPath(home))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, AppName, DefaultConfigFile))
	}
	return paths
}

// ProjectConfigPaths returns the project-level config files in lookup order.
func ProjectConfigPaths(workDir string) []string {
	if workDir == "" {
		workDir = "."
	}
	return []string{
		filepath.Join(workDir, DefaultConfigFile),
		filepath.Join(workDir, HiddenConfigFile),
	}
}

func joinPath(base, file string) string {
	return filepath.Join(DirPath(base), file)
}
