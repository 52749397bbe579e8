package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasks-go/internal/calendar"
	"github.com/nibzard/tasks-go/internal/todo"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	tabStyle     = lipgloss.NewStyle().Faint(true)
	activeTab    = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle  = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Faint(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

var filterTabs = []struct {
	key    string
	filter todo.Filter
}{
	{"1", todo.FilterAll},
	{"2", todo.FilterActive},
	{"3", todo.FilterCompleted},
}

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeHeader(&b)

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	m.writeTabs(&b)
	if m.browse != nil {
		m.writeCalendar(&b)
	}
	m.writeRows(&b)
	m.writePrompt(&b)
	m.writeStatus(&b)
	return b.String()
}

func (m *tuiModel) writeHeader(b *strings.Builder) {
	open := 0
	for _, t := range m.all {
		if !t.Completed {
			open++
		}
	}
	b.WriteString(titleStyle.Render("Tasks"))
	fmt.Fprintf(b, "  %d open, %d done\n\n", open, len(m.all)-open)
}

func (m *tuiModel) writeTabs(b *strings.Builder) {
	tabs := make([]string, 0, len(filterTabs))
	for _, tab := range filterTabs {
		label := fmt.Sprintf("%s %s", tab.key, tab.filter.Label())
		if tab.filter == m.filter {
			tabs = append(tabs, activeTab.Render("["+label+"]"))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+label+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")
}

func (m *tuiModel) writeCalendar(b *strings.Builder) {
	month := calendar.NewMonth(m.browse.Year, m.browse.Month, m.all)
	_ = calendar.Render(b, month, m.today(), *m.browse)
	fmt.Fprintf(b, "\nDue %s  ([ ] step, t today, esc all dates)\n\n", m.browse.Format("Monday, "+m.dateFormat))
}

func (m *tuiModel) writeRows(b *strings.Builder) {
	if len(m.rows) == 0 {
		switch {
		case m.browse != nil:
			b.WriteString("  No tasks due on this day.\n")
		case m.filter == todo.FilterCompleted:
			b.WriteString("  No completed tasks.\n")
		default:
			b.WriteString("  No tasks. Press a to add one.\n")
		}
		return
	}

	today := m.today()
	for i, t := range m.rows {
		b.WriteString(m.renderRow(t, i == m.cursor, today))
		b.WriteString("\n")
	}
}

func (m *tuiModel) renderRow(t todo.Task, selected bool, today todo.Date) string {
	pointer := "  "
	if selected {
		pointer = cursorStyle.Render("> ")
	}
	check := "[ ]"
	text := t.Text
	if t.Completed {
		check = "[x]"
		text = doneStyle.Render(text)
	}

	row := pointer + check + " " + text
	if t.DueDate != nil {
		due := "due " + t.DueDate.Format(m.dateFormat)
		if t.Overdue(today) {
			due = overdueStyle.Render(due + " (overdue)")
		} else {
			due = statusStyle.Render(due)
		}
		row += "  " + due
	}
	return row
}

func (m *tuiModel) writePrompt(b *strings.Builder) {
	var label string
	switch m.mode {
	case modeAdd:
		label = "Add: "
	case modeEdit:
		label = "Edit: "
	case modeDue:
		label = "Due: "
	default:
		return
	}
	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString(m.input.View())
	b.WriteString("\n")
}

func (m *tuiModel) writeStatus(b *strings.Builder) {
	b.WriteString("\n")
	if m.statusErr {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	if m.mode == modeList {
		b.WriteString(statusStyle.Render("a add  e edit  D due  space toggle  d delete  ? help  q quit"))
		b.WriteString("\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keys\n")
	b.WriteString("  j/k, up/down   Move\n")
	b.WriteString("  g/G            First / last task\n")
	b.WriteString("  a              Add a task (due on the browsed day)\n")
	b.WriteString("  e              Edit the selected task\n")
	b.WriteString("  D              Set or clear the due date\n")
	b.WriteString("  space          Toggle done\n")
	b.WriteString("  d              Delete (asks first)\n")
	b.WriteString("  c              Clear completed tasks\n")
	b.WriteString("  1/2/3          All / Active / Completed\n")
	b.WriteString("  [ ]            Browse due dates day by day\n")
	b.WriteString("  t              Browse today\n")
	b.WriteString("  esc            Stop browsing\n")
	b.WriteString("  r              Reload from disk\n")
	b.WriteString("  ?/h            Toggle help\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
	b.WriteString(calendar.Legend)
	b.WriteString("\n")
}
