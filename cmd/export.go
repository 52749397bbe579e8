package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/tasks-go/internal/export"
	"github.com/nibzard/tasks-go/internal/todo"
	"github.com/nibzard/tasks-go/internal/ui"
)

// exportCommand writes the tasks that pass a filter in another format.
func (a *app) exportCommand(args []string) error {
	fs := flag.NewFlagSet("tasks export", flag.ContinueOnError)
	formatArg := fs.String("format", string(a.cfg.GetExportFormat()), "Output format (json|csv|markdown|pdf)")
	outArg := fs.String("o", "", "Write to file instead of stdout")
	title := fs.String("title", "", "Title for markdown and pdf output")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("unexpected arguments: %v", positional[1:])
	}
	filter := todo.FilterAll
	if len(positional) == 1 {
		filter, err = todo.ParseFilter(positional[0])
		if err != nil {
			return err
		}
	}

	formatSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "format" {
			formatSet = true
		}
	})
	format, err := export.ParseFormat(*formatArg)
	if err != nil {
		return err
	}
	if !formatSet && *outArg != "" {
		if byExt, ok := formatFromPath(*outArg); ok {
			format = byExt
		}
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	tasks := store.Query(filter, nil)
	opts := export.Options{
		Title:      *title,
		DateFormat: a.cfg.DateFormat,
		Now:        a.now(),
	}

	if *outArg == "" {
		if format == export.FormatPDF && ui.IsTTY(os.Stdout) {
			return fmt.Errorf("refusing to write PDF to a terminal, use -o FILE")
		}
		return export.Write(os.Stdout, format, tasks, opts)
	}

	if err := writeExportFile(*outArg, format, tasks, opts); err != nil {
		return err
	}
	a.logger.Info("exported tasks", "path", *outArg, "format", format, "count", len(tasks))
	fmt.Printf("Exported %d tasks to %s\n", len(tasks), *outArg)
	return nil
}

func writeExportFile(path string, format export.Format, tasks []todo.Task, opts export.Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
	}()

	return export.Write(f, format, tasks, opts)
}

// formatFromPath guesses the export format from a file extension.
func formatFromPath(path string) (export.Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := export.ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}
