// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasks-go/internal/todo"
)

// Options configures the TUI.
type Options struct {
	// Filter is the initial filter.
	Filter todo.Filter
	// DateFormat is the display layout for due dates.
	DateFormat string
	// Now is the clock used for "today". Defaults to time.Now.
	Now func() time.Time
}

// Run starts the TUI on the given store and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, store *todo.Store, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(newModel(store, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeDue
	modeConfirmDelete
)

type tuiModel struct {
	store      *todo.Store
	dateFormat string
	now        func() time.Time

	// View state. The store knows nothing about it.
	filter todo.Filter
	browse *todo.Date
	rows   []todo.Task
	all    []todo.Task
	cursor int

	mode      mode
	input     textinput.Model
	targetID  string
	status    string
	statusErr bool
	showHelp  bool
	width     int
}

func newModel(store *todo.Store, opts Options) *tuiModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	m := &tuiModel{
		store:      store,
		dateFormat: opts.DateFormat,
		now:        opts.Now,
		filter:     opts.Filter,
		input:      ti,
		status:     "Press a to add, space to toggle, ? for help.",
	}
	if m.dateFormat == "" {
		m.dateFormat = "Jan 02, 2006"
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.filter == "" {
		m.filter = todo.FilterAll
	}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 30 {
			m.input.Width = msg.Width - 20
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit, modeDue:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg.String())
		default:
			return m.updateList(msg.String())
		}
	}
	return m, nil
}

func (m *tuiModel) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = clampCursor(len(m.rows)-1, len(m.rows))
	case "?", "h":
		m.showHelp = !m.showHelp
	case "a":
		placeholder := "New task"
		if m.browse != nil {
			placeholder = "New task due " + m.browse.Format(m.dateFormat)
		}
		return m.startInput(modeAdd, "", placeholder)
	case "e":
		task, ok := m.selected()
		if !ok {
			m.setStatus("No task selected", false)
			return m, nil
		}
		m.targetID = task.ID
		return m.startInput(modeEdit, task.Text, "Task text")
	case "D":
		task, ok := m.selected()
		if !ok {
			m.setStatus("No task selected", false)
			return m, nil
		}
		m.targetID = task.ID
		value := ""
		if task.DueDate != nil {
			value = task.DueDate.String()
		}
		return m.startInput(modeDue, value, "YYYY-MM-DD, today, tomorrow or empty to clear")
	case " ":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		_, err := m.store.SetCompleted(task.ID, !task.Completed)
		done := "Marked done"
		if task.Completed {
			done = "Marked not done"
		}
		m.report(done, err)
		m.refresh()
		m.selectID(task.ID)
	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.targetID = task.ID
		m.mode = modeConfirmDelete
		m.setStatus(fmt.Sprintf("Delete %q? y/n", task.Text), false)
	case "c":
		n, err := m.store.ClearCompleted()
		m.report(fmt.Sprintf("Cleared %d completed %s", n, plural(n, "task", "tasks")), err)
		m.refresh()
	case "1":
		m.setFilter(todo.FilterAll)
	case "2":
		m.setFilter(todo.FilterActive)
	case "3":
		m.setFilter(todo.FilterCompleted)
	case "[":
		m.browseBy(-1)
	case "]":
		m.browseBy(1)
	case "t":
		today := m.today()
		m.browse = &today
		m.refresh()
	case "esc":
		if m.browse != nil {
			m.browse = nil
			m.refresh()
		}
	case "r":
		err := m.store.Load()
		if err != nil && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		m.report("Reloaded", err)
		m.refresh()
	}
	return m, nil
}

func (m *tuiModel) startInput(md mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *tuiModel) finishInput() {
	m.mode = modeList
	m.targetID = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.finishInput()
		m.setStatus("Cancelled", false)
		return m, nil
	case "enter":
		return m.submitInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// submitInput applies the input to the store. Invalid input keeps the
// prompt open so it can be corrected.
func (m *tuiModel) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.mode {
	case modeAdd:
		task, err := m.store.Create(value, m.browse)
		if errors.Is(err, todo.ErrValidationFailed) {
			m.setStatus("Task text cannot be empty", true)
			return m, nil
		}
		m.finishInput()
		m.report("Added task", err)
		m.refresh()
		m.selectID(task.ID)
	case modeEdit:
		id := m.targetID
		_, err := m.store.Update(id, todo.TaskUpdate{Text: &value})
		if errors.Is(err, todo.ErrValidationFailed) {
			m.setStatus("Task text cannot be empty", true)
			return m, nil
		}
		m.finishInput()
		m.report("Updated task", err)
		m.refresh()
		m.selectID(id)
	case modeDue:
		id := m.targetID
		var due *todo.Date
		v := strings.TrimSpace(value)
		if v != "" && !strings.EqualFold(v, "none") {
			d, err := todo.ParseDueInput(v, m.today())
			if err != nil {
				m.setStatus(fmt.Sprintf("Invalid date %q: use YYYY-MM-DD, today, tomorrow or yesterday", v), true)
				return m, nil
			}
			due = &d
		}
		_, err := m.store.SetDueDate(id, due)
		done := "Cleared due date"
		if due != nil {
			done = "Due " + due.Format(m.dateFormat)
		}
		m.finishInput()
		m.report(done, err)
		m.refresh()
		m.selectID(id)
	}
	return m, nil
}

func (m *tuiModel) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		err := m.store.Delete(m.targetID)
		m.mode = modeList
		m.targetID = ""
		m.report("Deleted task", err)
		m.refresh()
	case "n", "N", "esc":
		m.mode = modeList
		m.targetID = ""
		m.setStatus("Delete cancelled", false)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *tuiModel) setFilter(f todo.Filter) {
	m.filter = f
	m.cursor = 0
	m.refresh()
}

// browseBy moves the browsed date by days, starting from today.
func (m *tuiModel) browseBy(days int) {
	d := m.today()
	if m.browse != nil {
		d = m.browse.AddDays(days)
	}
	m.browse = &d
	m.cursor = 0
	m.refresh()
}

func (m *tuiModel) today() todo.Date {
	return todo.Today(m.now())
}

// refresh re-queries the store for the current view.
func (m *tuiModel) refresh() {
	m.rows = m.store.Query(m.filter, m.browse)
	m.all = m.store.Query(todo.FilterAll, nil)
	m.cursor = clampCursor(m.cursor, len(m.rows))
}

func (m *tuiModel) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return todo.Task{}, false
	}
	return m.rows[m.cursor], true
}

func (m *tuiModel) selectID(id string) {
	for i, t := range m.rows {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *tuiModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// report shows the outcome of a store operation. A failed write still
// changed the in-memory list, so the message says so.
func (m *tuiModel) report(done string, err error) {
	switch {
	case err == nil:
		m.setStatus(done, false)
	case errors.Is(err, todo.ErrWriteFailed):
		m.setStatus(fmt.Sprintf("%s, but changes may not be saved: %v", done, err), true)
	default:
		m.setStatus(err.Error(), true)
	}
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
