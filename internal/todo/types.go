// Package todo owns the task list and its JSON persistence.
package todo

import (
	"fmt"
	"strings"
	"time"
)

// Task represents a single to-do item.
type Task struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
	DueDate   *Date
}

// IsZero returns true if the task is empty (has no ID).
func (t Task) IsZero() bool {
	return t.ID == ""
}

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// DueOn reports whether t has a due date equal to d.
func (t Task) DueOn(d Date) bool {
	return t.DueDate != nil && *t.DueDate == d
}

// Overdue reports whether t is still open and its due date is before today.
func (t Task) Overdue(today Date) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(today)
}

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a filter name. The empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active", "open", "todo":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("invalid filter %q, must be one of: all, active, completed", s)
	}
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Label returns the display name of the filter.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// TaskUpdate lists the fields to change in Store.Update. Nil fields are
// left as they are. ClearDue removes the due date and wins over Due.
type TaskUpdate struct {
	Text     *string
	Due      *Date
	ClearDue bool
}

func normalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ValidationError{
			Path: "text",
			Err:  fmt.Errorf("task text must not be empty"),
		}
	}
	return text, nil
}
