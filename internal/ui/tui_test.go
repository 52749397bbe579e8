package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasks-go/internal/todo"
)

var testNow = time.Date(2025, 5, 12, 9, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, setup func(s *todo.Store)) (*tuiModel, *todo.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := todo.NewStore(path, todo.WithClock(func() time.Time { return testNow }))
	if setup != nil {
		setup(store)
	}
	m := newModel(store, Options{Now: func() time.Time { return testNow }})
	return m, store
}

func press(m *tuiModel, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func typeText(m *tuiModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func mustCreate(t *testing.T, s *todo.Store, text string, due *todo.Date) todo.Task {
	t.Helper()
	task, err := s.Create(text, due)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", text, err)
	}
	return task
}

func dateRef(y int, m time.Month, d int) *todo.Date {
	date := todo.NewDate(y, m, d)
	return &date
}

func TestAddToggleDelete(t *testing.T) {
	m, store := newTestModel(t, nil)

	if !strings.Contains(m.View(), "No tasks. Press a to add one.") {
		t.Fatalf("empty view missing hint:\n%s", m.View())
	}

	press(m, "a")
	if m.mode != modeAdd {
		t.Fatalf("mode = %v, want add", m.mode)
	}
	typeText(m, "Buy milk")
	press(m, "enter")

	if m.mode != modeList {
		t.Fatalf("mode = %v, want list", m.mode)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d tasks, want 1", store.Len())
	}
	if view := m.View(); !strings.Contains(view, "[ ] Buy milk") {
		t.Errorf("new task not shown:\n%s", view)
	}

	press(m, "space")
	got, _ := store.Get(m.rows[0].ID)
	if !got.Completed {
		t.Fatal("space did not complete the task")
	}
	if view := m.View(); !strings.Contains(view, "[x] Buy milk") {
		t.Errorf("completed task not shown:\n%s", view)
	}

	press(m, "d", "n")
	if store.Len() != 1 {
		t.Fatal("delete ran without confirmation")
	}
	press(m, "d", "y")
	if store.Len() != 0 {
		t.Fatal("confirmed delete did not remove the task")
	}
	if m.status != "Deleted task" {
		t.Errorf("status = %q", m.status)
	}

	// The file on disk follows every change.
	tasks, err := todo.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("file has %d tasks, want 0", len(tasks))
	}
}

func TestAddBlankKeepsPrompt(t *testing.T) {
	m, store := newTestModel(t, nil)

	press(m, "a")
	typeText(m, "   ")
	press(m, "enter")

	if m.mode != modeAdd {
		t.Fatalf("mode = %v, want add after blank input", m.mode)
	}
	if !m.statusErr {
		t.Error("blank input should report an error")
	}

	press(m, "esc")
	if m.mode != modeList || store.Len() != 0 {
		t.Errorf("esc: mode = %v, tasks = %d", m.mode, store.Len())
	}
}

func TestEditAndDue(t *testing.T) {
	m, store := newTestModel(t, func(s *todo.Store) {
		mustCreate(t, s, "Buy milk", nil)
	})
	id := m.rows[0].ID

	press(m, "e")
	if m.input.Value() != "Buy milk" {
		t.Fatalf("edit prompt = %q, want current text", m.input.Value())
	}
	typeText(m, " and eggs")
	press(m, "enter")

	task, _ := store.Get(id)
	if task.Text != "Buy milk and eggs" {
		t.Errorf("text = %q", task.Text)
	}

	press(m, "D")
	typeText(m, "tomorrow")
	press(m, "enter")
	task, _ = store.Get(id)
	if task.DueDate == nil || task.DueDate.String() != "2025-05-13" {
		t.Fatalf("due = %v, want 2025-05-13", task.DueDate)
	}
	if !strings.Contains(m.View(), "due May 13, 2025") {
		t.Errorf("due date not shown:\n%s", m.View())
	}

	press(m, "D")
	if m.input.Value() != "2025-05-13" {
		t.Errorf("due prompt = %q, want current date", m.input.Value())
	}
	press(m, "ctrl+u")
	typeText(m, "someday")
	press(m, "enter")
	if m.mode != modeDue || !m.statusErr {
		t.Fatalf("invalid date accepted: mode = %v, status = %q", m.mode, m.status)
	}

	press(m, "ctrl+u", "enter")
	task, _ = store.Get(id)
	if task.DueDate != nil {
		t.Errorf("due = %v, want cleared", task.DueDate)
	}
}

func TestFilterTabs(t *testing.T) {
	m, store := newTestModel(t, func(s *todo.Store) {
		mustCreate(t, s, "open one", nil)
		done := mustCreate(t, s, "done one", nil)
		if _, err := s.SetCompleted(done.ID, true); err != nil {
			t.Fatal(err)
		}
	})

	tests := []struct {
		key  string
		want []string
	}{
		{"2", []string{"open one"}},
		{"3", []string{"done one"}},
		{"1", []string{"open one", "done one"}},
	}
	for _, tt := range tests {
		press(m, tt.key)
		if len(m.rows) != len(tt.want) {
			t.Fatalf("key %s: %d rows, want %d", tt.key, len(m.rows), len(tt.want))
		}
		for i, text := range tt.want {
			if m.rows[i].Text != text {
				t.Errorf("key %s row %d = %q, want %q", tt.key, i, m.rows[i].Text, text)
			}
		}
	}

	press(m, "c")
	if store.Len() != 1 {
		t.Errorf("clear completed left %d tasks", store.Len())
	}
	if m.status != "Cleared 1 completed task" {
		t.Errorf("status = %q", m.status)
	}
	if !strings.Contains(m.View(), "1 open, 0 done") {
		t.Errorf("header counts wrong:\n%s", m.View())
	}
}

func TestBrowseDueDates(t *testing.T) {
	m, store := newTestModel(t, func(s *todo.Store) {
		mustCreate(t, s, "today", dateRef(2025, time.May, 12))
		mustCreate(t, s, "tomorrow", dateRef(2025, time.May, 13))
		mustCreate(t, s, "whenever", nil)
	})

	press(m, "t")
	if len(m.rows) != 1 || m.rows[0].Text != "today" {
		t.Fatalf("browse today rows = %+v", m.rows)
	}
	view := m.View()
	if !strings.Contains(view, "May 2025") || !strings.Contains(view, "[12]") {
		t.Errorf("calendar not drawn:\n%s", view)
	}

	press(m, "]")
	if len(m.rows) != 1 || m.rows[0].Text != "tomorrow" {
		t.Fatalf("browse next day rows = %+v", m.rows)
	}

	press(m, "a")
	typeText(m, "also tomorrow")
	press(m, "enter")
	if len(m.rows) != 2 {
		t.Fatalf("task added while browsing not shown: %+v", m.rows)
	}
	added := m.rows[m.cursor]
	if added.Text != "also tomorrow" || added.DueDate == nil || added.DueDate.String() != "2025-05-13" {
		t.Errorf("added task = %+v", added)
	}

	press(m, "]", "]")
	if len(m.rows) != 0 || !strings.Contains(m.View(), "No tasks due on this day.") {
		t.Errorf("empty day view:\n%s", m.View())
	}

	press(m, "esc")
	if m.browse != nil || len(m.rows) != store.Len() {
		t.Errorf("esc: browse = %v, rows = %d", m.browse, len(m.rows))
	}
}

func TestCursorStaysInRange(t *testing.T) {
	m, _ := newTestModel(t, func(s *todo.Store) {
		mustCreate(t, s, "one", nil)
		mustCreate(t, s, "two", nil)
		mustCreate(t, s, "three", nil)
	})

	press(m, "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k at top", m.cursor)
	}
	press(m, "j", "down", "j", "j")
	if m.cursor != 2 {
		t.Errorf("cursor = %d after moving past the end", m.cursor)
	}
	press(m, "up")
	if m.cursor != 1 {
		t.Errorf("cursor = %d after up", m.cursor)
	}
	press(m, "g")
	if m.cursor != 0 {
		t.Errorf("cursor = %d after g", m.cursor)
	}
	press(m, "G")
	if m.cursor != 2 {
		t.Errorf("cursor = %d after G", m.cursor)
	}

	press(m, "d", "y")
	if m.cursor != 1 {
		t.Errorf("cursor = %d after deleting the last row", m.cursor)
	}
}

func TestWriteFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := todo.NewStore(filepath.Join(blocker, "tasks.json"))
	m := newModel(store, Options{Now: func() time.Time { return testNow }})

	press(m, "a")
	typeText(m, "unsaved")
	press(m, "enter")

	if store.Len() != 1 {
		t.Fatalf("task not kept in memory")
	}
	if !m.statusErr || !strings.Contains(m.status, "changes may not be saved") {
		t.Errorf("status = %q", m.status)
	}
}

func TestReloadOfUnreadableFileKeepsItIntact(t *testing.T) {
	m, store := newTestModel(t, func(s *todo.Store) {
		mustCreate(t, s, "precious", nil)
	})
	path := store.Path()
	backup := path + ".bak"

	// Make the task file briefly unreadable.
	if err := os.Rename(path, backup); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	press(m, "r")
	if !m.statusErr {
		t.Fatalf("reload of unreadable file not reported, status = %q", m.status)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(backup, path); err != nil {
		t.Fatal(err)
	}

	press(m, "a")
	typeText(m, "new")
	press(m, "enter")
	if !m.statusErr || !strings.Contains(m.status, "changes may not be saved") {
		t.Errorf("status = %q, want a save warning", m.status)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"text": "precious"`) || strings.Contains(string(data), `"text": "new"`) {
		t.Fatalf("task file was overwritten:\n%s", data)
	}

	press(m, "r")
	if m.statusErr {
		t.Fatalf("reload failed: %s", m.status)
	}
	if len(m.rows) != 1 || m.rows[0].Text != "precious" {
		t.Errorf("rows after reload = %+v", m.rows)
	}
}

func TestHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, "?")
	if !strings.Contains(m.View(), "Browse due dates day by day") {
		t.Errorf("help not shown:\n%s", m.View())
	}
	press(m, "?")
	if m.showHelp {
		t.Error("? did not close help")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestIsTTY(t *testing.T) {
	var b strings.Builder
	if IsTTY(&b) {
		t.Error("strings.Builder reported as a TTY")
	}
}
