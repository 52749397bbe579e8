package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// record is the on-disk shape of a task.
type record struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	Date      string  `json:"date"`
	DueDate   *string `json:"due_date"`
}

// ReadFile reads and decodes the task file at path.
// Decode and schema errors wrap ErrMalformed; a missing file wraps
// fs.ErrNotExist.
func ReadFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return DecodeTasks(data)
}

// WriteFile encodes tasks and atomically replaces the file at path.
func WriteFile(path string, tasks []Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0644)
}

// DecodeTasks decodes a task file body.
func DecodeTasks(data []byte) ([]Task, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse task file: %w", ErrMalformed, err)
	}

	tasks := make([]Task, 0, len(records))
	for i, r := range records {
		task, err := r.task()
		if err != nil {
			return nil, fmt.Errorf("%w: [%d]%w", ErrMalformed, i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// EncodeTasks encodes tasks with 2-space indentation and a trailing newline.
func EncodeTasks(tasks []Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, newRecord(t))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')
	return data, nil
}

func newRecord(t Task) record {
	r := record{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Date:      formatTimestamp(t.CreatedAt),
	}
	if t.DueDate != nil {
		due := formatDue(*t.DueDate)
		r.DueDate = &due
	}
	return r
}

func (r record) task() (Task, error) {
	created, err := ParseTimestamp(r.Date)
	if err != nil {
		return Task{}, &ValidationError{Path: ".date", Err: err}
	}
	t := Task{
		ID:        r.ID,
		Text:      r.Text,
		Completed: r.Completed,
		CreatedAt: created.In(time.Local),
	}
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := ParseDate(*r.DueDate)
		if err != nil {
			return Task{}, &ValidationError{Path: ".due_date", Err: err}
		}
		t.DueDate = &due
	}
	return t, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path. On any error the original file is left untouched.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
