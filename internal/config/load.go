package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tasks/tasks.toml or OS-specific config dir)
// 3. Project config file (tasks.toml or .tasks.toml in current directory)
// 4. Explicit config file (-config or TASKS_CONFIG)
// 5. Environment variables
// 6. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range Fields() {
		sources[field] = SourceDefault
	}

	// Flags are parsed up front so -config is known before any file is
	// read. Their values are applied last.
	flags, err := parseFlags(cfg, fs, args)
	if err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cws := &ConfigWithSources{Config: cfg, Sources: sources}

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := cws.loadFile(path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := cws.loadFile(path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Explicit config file; it must exist
	explicit := flags.configFile
	if explicit == "" {
		explicit = os.Getenv("TASKS_CONFIG")
	}
	if explicit != "" {
		path := expandPath(explicit)
		cfg.ConfigFile = path
		if err := cws.loadFile(path, SourceFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// 5. Override from environment
	loadFromEnvWithSources(cfg, sources)

	// 6. CLI flags override everything
	flags.apply(cfg, sources)

	// 7. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cws, nil
}

// Fields returns the configurable field names (TOML keys) in display order.
func Fields() []string {
	return []string{
		"data_file",
		"id_scheme",
		"date_format",
		"default_filter",
		"export_format",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadFile decodes a TOML file over the current config and records which
// keys it set. Keys the config does not know are kept as warnings.
func (cws *ConfigWithSources) loadFile(path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	cws.Files = append(cws.Files, path)

	for _, key := range md.Keys() {
		cws.Sources[key.String()] = source
	}

	undecoded := md.Undecoded()
	if len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		cws.Warnings = append(cws.Warnings,
			fmt.Sprintf("%s: unknown keys: %s", path, strings.Join(keys, ", ")))
	}
	return nil
}

// finalizeConfig computes derived values and resolves paths.
func finalizeConfig(cfg *Config) error {
	cfg.DataFile = expandPath(cfg.DataFile)
	cfg.IDScheme = strings.ToLower(strings.TrimSpace(cfg.IDScheme))
	cfg.DefaultFilter = strings.ToLower(strings.TrimSpace(cfg.DefaultFilter))
	cfg.ExportFormat = strings.ToLower(strings.TrimSpace(cfg.ExportFormat))

	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.WorkDir = wd
	}

	// Make paths absolute if they're relative
	if cfg.DataFile != "" && !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(cfg.WorkDir, cfg.DataFile)
	}

	return nil
}
