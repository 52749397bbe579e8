package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/tasks-go/internal/export"
	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/todo"
)

// Validate checks the enum fields and paths of c and reports every
// problem found.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DataFile) == "" {
		errs = append(errs, fmt.Errorf("data_file must not be empty"))
	}
	if _, err := todo.NewIDGenerator(c.IDScheme); err != nil {
		errs = append(errs, fmt.Errorf("id_scheme: %w", err))
	}
	if err := validateDateFormat(c.DateFormat); err != nil {
		errs = append(errs, fmt.Errorf("date_format: %w", err))
	}
	if _, err := todo.ParseFilter(c.DefaultFilter); err != nil {
		errs = append(errs, fmt.Errorf("default_filter: %w", err))
	}
	if _, err := export.ParseFormat(c.ExportFormat); err != nil {
		errs = append(errs, fmt.Errorf("export_format: %w", err))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if _, err := logging.ParseFormatter(c.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("log_format: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// validateDateFormat rejects layouts that would not show a date at all.
func validateDateFormat(layout string) error {
	if strings.TrimSpace(layout) == "" {
		return fmt.Errorf("must not be empty")
	}
	ref := time.Date(2006, time.January, 2, 0, 0, 0, 0, time.UTC)
	other := time.Date(2007, time.March, 4, 0, 0, 0, 0, time.UTC)
	if ref.Format(layout) == other.Format(layout) {
		return fmt.Errorf("layout %q does not contain any date element", layout)
	}
	return nil
}
