package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasks-go/internal/utils"
)

//go:embed tasks.schema.json
var schemaJSON string

const schemaURL = "tasks.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema of the task file.
func Schema() string {
	return schemaJSON
}

func taskSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add task schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	Tasks    int
}

// ValidateFile validates the task file at path against the task schema and
// the store invariants (unique ids, parseable timestamps).
func ValidateFile(path string) *ValidationResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []error{fmt.Errorf("read task file: %w", err)},
		}
	}
	return ValidateData(data)
}

// ValidateData validates a task file body.
func ValidateData(data []byte) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	if err := validateSchema(data); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
		return result
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("parse task file: %w", err))
		return result
	}
	result.Tasks = len(records)

	validateMinimal(records, result)
	return result
}

// validateMinimal checks what the schema cannot express.
func validateMinimal(records []record, result *ValidationResult) {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		path := fmt.Sprintf("[%d]", i)
		if first, ok := seen[r.ID]; ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s.id: duplicate of [%d] (%q), a new id is assigned on load", path, first, r.ID))
		} else {
			seen[r.ID] = i
		}
		if strings.TrimSpace(r.Text) == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".text",
				Err:  fmt.Errorf("blank text"),
			})
		}
		if _, err := r.task(); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Errorf("%s%w", path, err))
		}
	}
}

// validateSchema validates raw file content against the task schema.
func validateSchema(data []byte) error {
	schema, err := taskSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parse task file: %w", err)
	}
	return schema.Validate(doc)
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
