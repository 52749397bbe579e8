package calendar

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/tasks-go/internal/todo"
)

const cellWidth = 5

var weekdays = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Legend explains the markers drawn by Render.
const Legend = "[d] today  (d) selected  * open tasks due  + due tasks all done"

// Render draws m as a text grid. Today is bracketed, the selected day is
// parenthesized, and days with tasks due are marked "*" (some open) or "+"
// (all completed). Pass a zero Date to mark nothing.
func Render(w io.Writer, m Month, today, selected todo.Date) error {
	width := cellWidth * len(weekdays)

	var b strings.Builder
	title := m.YearMonth.String()
	if pad := (width - len(title)) / 2; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(title)
	b.WriteString("\n")

	var header strings.Builder
	for _, wd := range weekdays {
		fmt.Fprintf(&header, " %s  ", wd)
	}
	b.WriteString(strings.TrimRight(header.String(), " "))
	b.WriteString("\n")

	for _, week := range m.Weeks {
		var line strings.Builder
		for _, day := range week {
			line.WriteString(cell(day, today, selected))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func cell(day Day, today, selected todo.Date) string {
	if !day.InMonth {
		return strings.Repeat(" ", cellWidth)
	}

	left, right := " ", " "
	switch {
	case day.Date == today:
		left, right = "[", "]"
	case day.Date == selected:
		left, right = "(", ")"
	}

	mark := " "
	switch {
	case day.Open > 0:
		mark = "*"
	case day.Due > 0:
		mark = "+"
	}

	return fmt.Sprintf("%s%2d%s%s", left, day.Date.Day, right, mark)
}
