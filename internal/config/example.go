package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasks configuration file
# Values can be overridden by environment variables (TASKS_*) or CLI flags.

# Task file (relative to the working directory; ~ and $VAR are expanded)
data_file = "tasks.json"

# ID scheme for new tasks: uuid or nanoid (10 lowercase characters)
id_scheme = "uuid"

# Display layout for dates, in Go time layout notation
date_format = "Jan 02, 2006"

# Filter used when none is given: all, active or completed
default_filter = "all"

# Export format used when none is given: json, csv, markdown or pdf
export_format = "markdown"

# Logging: debug, info, warn, error; text, json or logfmt
log_level = "warn"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
