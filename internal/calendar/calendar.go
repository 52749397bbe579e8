// Package calendar lays out a month of due dates as a Sunday-first grid.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/tasks-go/internal/todo"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Of returns the month containing d.
func Of(d todo.Date) YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

// ParseYearMonth parses YYYY-MM.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// Shift returns the month delta months away.
func (ym YearMonth) Shift(delta int) YearMonth {
	t := time.Date(ym.Year, ym.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Next returns the following month.
func (ym YearMonth) Next() YearMonth { return ym.Shift(1) }

// Prev returns the preceding month.
func (ym YearMonth) Prev() YearMonth { return ym.Shift(-1) }

// Contains reports whether d falls in the month.
func (ym YearMonth) Contains(d todo.Date) bool {
	return d.Year == ym.Year && d.Month == ym.Month
}

// First returns the first day of the month.
func (ym YearMonth) First() todo.Date {
	return todo.NewDate(ym.Year, ym.Month, 1)
}

// String formats the month as "May 2025".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}

// Day is one cell of the grid.
type Day struct {
	Date    todo.Date
	InMonth bool
	Due     int // tasks due on Date
	Open    int // of those, the ones not completed
}

// Month is a month laid out in weeks from Sunday to Saturday. Leading and
// trailing cells belong to the neighbouring months.
type Month struct {
	YearMonth
	Weeks [][7]Day
}

// NewMonth lays out year-month and counts the tasks due on each visible day.
func NewMonth(year int, month time.Month, tasks []todo.Task) Month {
	ym := YearMonth{Year: year, Month: month}.Shift(0)

	type counts struct{ due, open int }
	byDate := make(map[todo.Date]counts)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		c := byDate[*t.DueDate]
		c.due++
		if !t.Completed {
			c.open++
		}
		byDate[*t.DueDate] = c
	}

	first := ym.First()
	d := first.AddDays(-int(first.Time(time.UTC).Weekday()))

	m := Month{YearMonth: ym}
	for {
		var week [7]Day
		for i := range week {
			c := byDate[d]
			week[i] = Day{Date: d, InMonth: ym.Contains(d), Due: c.due, Open: c.open}
			d = d.AddDays(1)
		}
		m.Weeks = append(m.Weeks, week)
		if !ym.Contains(d) {
			break
		}
	}
	return m
}

// Day returns the cell for d, if the grid shows it.
func (m Month) Day(d todo.Date) (Day, bool) {
	for _, week := range m.Weeks {
		for _, day := range week {
			if day.Date == d {
				return day, true
			}
		}
	}
	return Day{}, false
}

// DueDays returns the in-month days that have tasks due, in order.
func (m Month) DueDays() []Day {
	var out []Day
	for _, week := range m.Weeks {
		for _, day := range week {
			if day.InMonth && day.Due > 0 {
				out = append(out, day)
			}
		}
	}
	return out
}
