package config

import "flag"

// flagValues holds the global flags until the file and environment layers
// have been applied.
type flagValues struct {
	configFile string
	values     map[string]*string
	bools      map[string]*bool
	set        map[string]bool
}

// flagToField maps flag names to config field names.
var flagToField = map[string]string{
	"file":           "data_file",
	"id-scheme":      "id_scheme",
	"date-format":    "date_format",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs and parses args. Parsing stops
// at the first non-flag argument, which is left in fs.Args().
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) (*flagValues, error) {
	if fs == nil {
		fs = flag.NewFlagSet("tasks", flag.ContinueOnError)
	}

	fv := &flagValues{
		values: make(map[string]*string),
		bools:  make(map[string]*bool),
		set:    make(map[string]bool),
	}

	fs.StringVar(&fv.configFile, "config", "", "Config file to load after the user and project files")
	fv.values["file"] = fs.String("file", cfg.DataFile, "Path to task file")
	fv.values["id-scheme"] = fs.String("id-scheme", cfg.IDScheme, "ID scheme for new tasks (uuid, nanoid)")
	fv.values["date-format"] = fs.String("date-format", cfg.DateFormat, "Display layout for dates (Go time layout)")
	fv.values["log-level"] = fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fv.values["log-format"] = fs.String("log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fv.bools["log-timestamps"] = fs.Bool("log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fv.bools["log-caller"] = fs.Bool("log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		fv.set[f.Name] = true
	})
	return fv, nil
}

// apply copies explicitly set flags into cfg.
func (fv *flagValues) apply(cfg *Config, sources map[string]ConfigSource) {
	for name := range fv.set {
		field, ok := flagToField[name]
		if !ok {
			continue
		}
		if v, ok := fv.values[name]; ok {
			setField(cfg, field, *v)
		}
		if v, ok := fv.bools[name]; ok {
			switch field {
			case "log_timestamps":
				cfg.LogTimestamps = *v
			case "log_caller":
				cfg.LogCaller = *v
			}
		}
		if sources != nil {
			sources[field] = SourceFlag
		}
	}
}
