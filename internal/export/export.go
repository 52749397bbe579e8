// Package export writes task lists in formats meant for other tools:
// JSON, CSV, Markdown and PDF.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/tasks-go/internal/todo"
)

// Format names an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatPDF}
}

// ParseFormat parses a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format %q, must be one of: json, csv, markdown, pdf", s)
	}
}

// Options control the human-readable formats.
type Options struct {
	// Title heads Markdown and PDF output. Defaults to "Tasks".
	Title string
	// DateFormat is the display layout for dates. Defaults to "Jan 02, 2006".
	DateFormat string
	// Now decides which tasks are overdue and stamps the PDF. Defaults to
	// time.Now().
	Now time.Time
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Tasks"
	}
	if o.DateFormat == "" {
		o.DateFormat = "Jan 02, 2006"
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Write writes tasks to w in the given format.
func Write(w io.Writer, format Format, tasks []todo.Task, opts Options) error {
	opts = opts.withDefaults()
	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatMarkdown:
		return writeMarkdown(w, tasks, opts)
	case FormatPDF:
		return writePDF(w, tasks, opts)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// writeJSON writes the same shape as the task file, so an export can be
// used as a task file.
func writeJSON(w io.Writer, tasks []todo.Task) error {
	data, err := todo.EncodeTasks(tasks)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeCSV(w io.Writer, tasks []todo.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "completed", "created", "due"}); err != nil {
		return err
	}
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		record := []string{
			t.ID,
			t.Text,
			strconv.FormatBool(t.Completed),
			t.CreatedAt.Format(time.RFC3339),
			due,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, tasks []todo.Task, opts Options) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", opts.Title)
	if len(tasks) == 0 {
		b.WriteString("_No tasks._\n")
	}
	for _, t := range tasks {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s", box, escapeMarkdown(t.Text))
		if note := dueNote(t, opts); note != "" {
			fmt.Fprintf(&b, " (%s)", note)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePDF(w io.Writer, tasks []todo.Task, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(opts.Now)
	pdf.SetModificationDate(opts.Now)
	pdf.SetTitle(opts.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(opts.Title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 9)
	open, done := 0, 0
	for _, t := range tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	pdf.Cell(0, 6, fmt.Sprintf("%d open, %d completed. Generated %s.",
		open, done, opts.Now.Format(opts.DateFormat)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, t.Text)
		if note := dueNote(t, opts); note != "" {
			line += fmt.Sprintf(" (%s)", note)
		}
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// dueNote describes a task's due date, e.g. "due May 10, 2025, overdue".
func dueNote(t todo.Task, opts Options) string {
	if t.DueDate == nil {
		return ""
	}
	note := "due " + t.DueDate.Format(opts.DateFormat)
	if t.Overdue(todo.Today(opts.Now)) {
		note += ", overdue"
	}
	return note
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
