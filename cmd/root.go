// Package cmd implements the CLI command structure for tasks.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasks-go/internal/config"
	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/todo"
	"github.com/nibzard/tasks-go/internal/ui"
	"github.com/nibzard/tasks-go/internal/utils"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries what every command needs.
type app struct {
	cfg    *config.Config
	loaded *config.ConfigWithSources
	logger *log.Logger
	now    func() time.Time
}

// Run executes the tasks CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	loaded, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger, err := logging.FromConfig(os.Stderr, loaded.Config)
	if err != nil {
		return err
	}
	for _, w := range loaded.Warnings {
		logger.Warn("config", "warning", w)
	}

	a := &app{
		cfg:    loaded.Config,
		loaded: loaded,
		logger: logger,
		now:    time.Now,
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "ls" as default
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return a.addCommand(remainingArgs)
	case "edit":
		return a.editCommand(remainingArgs)
	case "due":
		return a.dueCommand(remainingArgs)
	case "done":
		return a.setCompletedCommand(remainingArgs, true)
	case "undo":
		return a.setCompletedCommand(remainingArgs, false)
	case "rm", "delete":
		return a.rmCommand(remainingArgs)
	case "clear":
		return a.clearCommand(remainingArgs)
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "cal", "calendar":
		return a.calCommand(remainingArgs)
	case "export":
		return a.exportCommand(remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "completion":
		return completionCommand(a.cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore loads the task file. A missing file is an empty list and a
// malformed one has already been moved aside by the store, so both are
// fine to write over. Any other read failure is returned.
func (a *app) openStore(opts ...todo.Option) (*todo.Store, error) {
	gen, err := a.cfg.NewIDGenerator()
	if err != nil {
		return nil, err
	}
	base := []todo.Option{
		todo.WithIDGenerator(gen),
		todo.WithLogger(a.logger),
		todo.WithClock(a.now),
	}
	store := todo.NewStore(a.cfg.DataFile, append(base, opts...)...)

	err = store.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	var perr *todo.PersistError
	if errors.As(err, &perr) && perr.Quarantined != "" {
		fmt.Fprintf(os.Stderr, "Task file was malformed and has been moved to %s\n", perr.Quarantined)
		return store, nil
	}
	return nil, fmt.Errorf("loading tasks: %w", err)
}

// today returns the current local date.
func (a *app) today() todo.Date {
	return todo.Today(a.now())
}

// parseDate parses a DATE argument relative to today.
func (a *app) parseDate(s string) (todo.Date, error) {
	d, err := todo.ParseDueInput(s, a.today())
	if err != nil {
		return todo.Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, today, tomorrow or yesterday)", s)
	}
	return d, nil
}

// resolveIDs turns id arguments into full task ids, each listed once in
// the order first given. Arguments may be comma-separated lists and unique
// id prefixes.
func resolveIDs(store *todo.Store, args []string) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)
	for _, arg := range args {
		for _, ref := range utils.SplitAndTrim(arg, ",") {
			id, err := store.ResolveID(ref)
			if err != nil {
				return nil, err
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("missing task id")
	}
	return ids, nil
}

// saved converts a store error into the command result. A failed write
// keeps the change in memory only, which for a single command means it is
// lost.
func saved(err error) error {
	if errors.Is(err, todo.ErrWriteFailed) {
		return fmt.Errorf("changes may not be saved: %w", err)
	}
	return err
}

// tuiCommand launches the TUI.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks tui", flag.ContinueOnError)
	filterArg := fs.String("filter", string(a.cfg.GetFilter()), "Initial filter (all|active|completed)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	filter, err := todo.ParseFilter(*filterArg)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so the store must not log to it.
	store, err := a.openStore(todo.WithLogger(logging.Discard()))
	if err != nil {
		return err
	}

	return ui.Run(ctx, store, ui.Options{
		Filter:     filter,
		DateFormat: a.cfg.DateFormat,
		Now:        a.now,
	})
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tasks version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasks - a to-do list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasks [global options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add [-due DATE] TEXT...          Add a task")
	fmt.Fprintln(w, "  edit [-text T] [-due DATE] [-no-due] ID")
	fmt.Fprintln(w, "                                   Change a task")
	fmt.Fprintln(w, "  due ID DATE|none                 Set or clear a due date")
	fmt.Fprintln(w, "  done ID...                       Mark tasks done")
	fmt.Fprintln(w, "  undo ID...                       Mark tasks not done")
	fmt.Fprintln(w, "  rm ID...                         Delete tasks")
	fmt.Fprintln(w, "  clear                            Delete all completed tasks")
	fmt.Fprintln(w, "  ls [all|active|completed] [-due DATE] [-v]")
	fmt.Fprintln(w, "                                   List tasks (default command)")
	fmt.Fprintln(w, "  cal [YYYY-MM] [-day DATE]        Show a month with due dates")
	fmt.Fprintln(w, "  export [-format F] [-o FILE] [filter]")
	fmt.Fprintln(w, "                                   Export tasks (json, csv, markdown, pdf)")
	fmt.Fprintln(w, "  doctor [-v]                      Check config and task file")
	fmt.Fprintln(w, "  config [show|example|path]       Show configuration")
	fmt.Fprintln(w, "  tui [-filter F]                  Launch terminal UI")
	fmt.Fprintln(w, "  completion <shell>               Print shell completion script")
	fmt.Fprintln(w, "  version                          Show version information")
	fmt.Fprintln(w, "  help                             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "IDs may be shortened to any unique prefix. DATE is YYYY-MM-DD,")
	fmt.Fprintln(w, "today, tomorrow or yesterday.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
