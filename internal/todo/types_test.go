package todo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{"ALL", FilterAll, false},
		{"active", FilterActive, false},
		{"todo", FilterActive, false},
		{"open", FilterActive, false},
		{"completed", FilterCompleted, false},
		{" Done ", FilterCompleted, false},
		{"blocked", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterMatch(t *testing.T) {
	open := Task{ID: "a", Text: "open"}
	done := Task{ID: "b", Text: "done", Completed: true}

	tests := []struct {
		filter   Filter
		openWant bool
		doneWant bool
	}{
		{FilterAll, true, true},
		{FilterActive, true, false},
		{FilterCompleted, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			assert.Equal(t, tt.openWant, tt.filter.Match(open), "Match(open)")
			assert.Equal(t, tt.doneWant, tt.filter.Match(done), "Match(done)")
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"2025-05-10", NewDate(2025, time.May, 10), false},
		{"2025-05-10T00:00:00", NewDate(2025, time.May, 10), false},
		{"2025-05-10T23:59:59.999999", NewDate(2025, time.May, 10), false},
		{"2025-05-10T08:00:00+09:00", NewDate(2025, time.May, 10), false},
		{"2025-05-10 12:00", NewDate(2025, time.May, 10), false},
		{"  2024-02-29  ", NewDate(2024, time.February, 29), false},
		{"2025-02-30", Date{}, true},
		{"2025-5-10", Date{}, true},
		{"20250510", Date{}, true},
		{"", Date{}, true},
		{"tomorrow", Date{}, true},
		{"2025-05-10Tgarbage", Date{}, true},
		{"2025-05-10 soon", Date{}, true},
		{"2025-05-10T25:00:00", Date{}, true},
		{"2025-05-10T", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidationFailed)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDueInput(t *testing.T) {
	today := NewDate(2025, time.February, 28)
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"today", today, false},
		{"Tomorrow", NewDate(2025, time.March, 1), false},
		{" yesterday ", NewDate(2025, time.February, 27), false},
		{"2025-05-10", NewDate(2025, time.May, 10), false},
		{"next week", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDueInput(tt.input, today)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.December, 31)
	assert.Equal(t, NewDate(2025, time.January, 1), d.AddDays(1))
	assert.Equal(t, NewDate(2024, time.January, 1), d.AddDays(-365))
	assert.True(t, NewDate(2025, time.May, 9).Before(NewDate(2025, time.May, 10)))
	assert.False(t, NewDate(2025, time.May, 10).Before(NewDate(2025, time.May, 10)), "a date is not before itself")
	assert.Equal(t, NewDate(2025, time.May, 1), NewDate(2025, time.April, 31), "out-of-range days normalize")
	assert.Equal(t, "2024-12-31", d.String())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2025-05-05T14:23:11.123456", time.Date(2025, 5, 5, 14, 23, 11, 123456000, time.Local)},
		{"2025-05-05T14:23:11", time.Date(2025, 5, 5, 14, 23, 11, 0, time.Local)},
		{"2025-05-05 14:23:11", time.Date(2025, 5, 5, 14, 23, 11, 0, time.Local)},
		{"2025-05-05", time.Date(2025, 5, 5, 0, 0, 0, 0, time.Local)},
		{"2025-05-05T14:23:11Z", time.Date(2025, 5, 5, 14, 23, 11, 0, time.UTC)},
		{"2025-05-05T14:23:11.5+02:00", time.Date(2025, 5, 5, 12, 23, 11, 500000000, time.UTC)},
		{"2025-05-05T14:23:11.123456-04:00", time.Date(2025, 5, 5, 18, 23, 11, 123456000, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestDecodeLegacyFile(t *testing.T) {
	content := `[
  {"id": "20250505142311123456", "text": "Buy milk", "completed": true, "date": "2025-05-05T14:23:11.123456", "due_date": null},
  {"id": "20250505142400000001", "text": "Call Bob", "completed": false, "date": "2025-05-05T14:24:00.000001", "due_date": "2025-05-10T00:00:00"},
  {"id": "20250505142500000000", "text": "No due key", "completed": false, "date": "2025-05-05T14:25:00"}
]`

	tasks, err := DecodeTasks([]byte(content))
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.True(t, tasks[0].Completed)
	assert.Nil(t, tasks[0].DueDate)
	require.NotNil(t, tasks[1].DueDate)
	assert.Equal(t, NewDate(2025, time.May, 10), *tasks[1].DueDate)
	assert.Nil(t, tasks[2].DueDate)

	wantCreated := time.Date(2025, 5, 5, 14, 23, 11, 123456000, time.Local)
	assert.True(t, tasks[0].CreatedAt.Equal(wantCreated), "CreatedAt: got %v, want %v", tasks[0].CreatedAt, wantCreated)
}

func TestEncodeTasksShape(t *testing.T) {
	due := NewDate(2025, time.May, 10)
	tasks := []Task{
		{ID: "a", Text: "Buy milk", CreatedAt: time.Date(2025, 5, 5, 14, 23, 11, 123456000, time.Local)},
		{ID: "b", Text: "Call Bob", Completed: true, CreatedAt: time.Date(2025, 5, 5, 9, 0, 0, 0, time.Local), DueDate: &due},
	}

	data, err := EncodeTasks(tasks)
	require.NoError(t, err)
	got := string(data)

	for _, want := range []string{
		`"id": "a"`,
		`"text": "Buy milk"`,
		`"completed": false`,
		`"date": "` + tasks[0].CreatedAt.Format("2006-01-02T15:04:05.000000-07:00") + `"`,
		`"due_date": null`,
		`"date": "` + tasks[1].CreatedAt.Format("2006-01-02T15:04:05.000000-07:00") + `"`,
		`"due_date": "2025-05-10T00:00:00"`,
	} {
		assert.Contains(t, got, want)
	}
	assert.True(t, strings.HasPrefix(got, "[\n  {"), "expected 2-space indented array, got:\n%s", got)
	assert.True(t, strings.HasSuffix(got, "}\n]\n"), "expected trailing newline, got:\n%s", got)

	empty, err := EncodeTasks(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(empty))
}

func TestEncodeTasksWritesOffset(t *testing.T) {
	zone := time.FixedZone("", -5*60*60)
	tasks := []Task{{ID: "a", Text: "x", CreatedAt: time.Date(2025, 11, 2, 1, 30, 0, 0, zone)}}

	data, err := EncodeTasks(tasks)
	require.NoError(t, err)

	decoded, err := DecodeTasks(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.True(t, decoded[0].CreatedAt.Equal(tasks[0].CreatedAt),
		"created %v, decoded %v", tasks[0].CreatedAt, decoded[0].CreatedAt)
	assert.Regexp(t, `"date": "\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}[+-]\d{2}:\d{2}"`, string(data))
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `[{"id": "a", "text": "x", "completed": false, "date": "2025-05-05T`},
		{"empty file", ``},
		{"object instead of array", `{"tasks": []}`},
		{"missing text", `[{"id": "a", "completed": false, "date": "2025-05-05T10:00:00"}]`},
		{"empty id", `[{"id": "", "text": "x", "completed": false, "date": "2025-05-05T10:00:00"}]`},
		{"completed not bool", `[{"id": "a", "text": "x", "completed": "no", "date": "2025-05-05T10:00:00"}]`},
		{"bad date", `[{"id": "a", "text": "x", "completed": false, "date": "last tuesday"}]`},
		{"bad due date", `[{"id": "a", "text": "x", "completed": false, "date": "2025-05-05T10:00:00", "due_date": "soon"}]`},
		{"due date with junk time", `[{"id": "a", "text": "x", "completed": false, "date": "2025-05-05T10:00:00", "due_date": "2025-05-10Tgarbage"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTasks([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestValidateData(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantValid    bool
		wantWarnings int
	}{
		{
			name:      "valid file",
			content:   `[{"id": "a", "text": "x", "completed": false, "date": "2025-05-05T10:00:00", "due_date": null}]`,
			wantValid: true,
		},
		{
			name:      "empty list",
			content:   `[]`,
			wantValid: true,
		},
		{
			name:         "duplicate ids warn",
			content:      `[{"id": "a", "text": "x", "completed": false, "date": "2025-05-05T10:00:00"}, {"id": "a", "text": "y", "completed": true, "date": "2025-05-05T10:00:00"}]`,
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:      "blank text",
			content:   `[{"id": "a", "text": "   ", "completed": false, "date": "2025-05-05T10:00:00"}]`,
			wantValid: false,
		},
		{
			name:      "schema violation",
			content:   `[{"id": 7, "text": "x", "completed": false, "date": "2025-05-05T10:00:00"}]`,
			wantValid: false,
		},
		{
			name:      "not json",
			content:   `not json`,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateData([]byte(tt.content))
			assert.Equal(t, tt.wantValid, result.Valid, "errors: %v", result.Errors)
			assert.Len(t, result.Warnings, tt.wantWarnings)
		})
	}
}

func TestValidateDataSchemaErrorPath(t *testing.T) {
	content := `[
  {"id": "a", "text": "x", "completed": false, "date": "2025-05-05T10:00:00"},
  {"id": "b", "text": "y", "completed": 1, "date": "2025-05-05T10:00:00"}
]`
	result := ValidateData([]byte(content))
	require.False(t, result.Valid)

	var paths []string
	for _, err := range result.Errors {
		var ve *ValidationError
		if errors.As(err, &ve) {
			paths = append(paths, ve.Path)
		}
	}
	assert.Contains(t, paths, "[1].completed")
}

func TestValidateFileMissing(t *testing.T) {
	result := ValidateFile(filepath.Join(t.TempDir(), "missing.json"))
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], os.ErrNotExist)
}

func TestErrorMatching(t *testing.T) {
	var err error = &NotFoundError{ID: "x"}
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidationFailed)

	err = &PersistError{Op: OpWrite, Path: "p", Err: os.ErrPermission}
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.NotErrorIs(t, err, ErrReadFailed)
	assert.ErrorIs(t, err, os.ErrPermission, "PersistError unwraps to its cause")

	err = &PersistError{Op: OpRead, Path: "p", Err: os.ErrNotExist}
	assert.ErrorIs(t, err, ErrReadFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
