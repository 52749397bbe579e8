package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/tasks-go/internal/todo"
)

// shortIDLen is how much of an id ls prints. Any unique prefix resolves.
const shortIDLen = 8

// addCommand creates a task from the remaining words.
func (a *app) addCommand(args []string) error {
	fs := flag.NewFlagSet("tasks add", flag.ContinueOnError)
	dueArg := fs.String("due", "", "Due date (YYYY-MM-DD, today, tomorrow, yesterday)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("usage: tasks add [-due DATE] TEXT")
	}

	var due *todo.Date
	if *dueArg != "" {
		d, err := a.parseDate(*dueArg)
		if err != nil {
			return err
		}
		due = &d
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	task, err := store.Create(text, due)
	if task.IsZero() {
		return err
	}
	fmt.Printf("Added %s\n", a.formatTask(task, false))
	return saved(err)
}

// editCommand changes the text and/or due date of one task.
func (a *app) editCommand(args []string) error {
	fs := flag.NewFlagSet("tasks edit", flag.ContinueOnError)
	textArg := fs.String("text", "", "New task text")
	dueArg := fs.String("due", "", "New due date")
	noDue := fs.Bool("no-due", false, "Remove the due date")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("usage: tasks edit [-text T] [-due DATE] [-no-due] ID [TEXT...]")
	}

	var update todo.TaskUpdate
	text := *textArg
	if text == "" && len(positional) > 1 {
		text = strings.Join(positional[1:], " ")
	} else if len(positional) > 1 {
		return fmt.Errorf("unexpected arguments: %v", positional[1:])
	}
	if text != "" {
		update.Text = &text
	}
	switch {
	case *noDue && *dueArg != "":
		return fmt.Errorf("-due and -no-due cannot be combined")
	case *noDue:
		update.ClearDue = true
	case *dueArg != "":
		d, err := a.parseDate(*dueArg)
		if err != nil {
			return err
		}
		update.Due = &d
	}
	if update.Text == nil && update.Due == nil && !update.ClearDue {
		return fmt.Errorf("nothing to change: give new text, -due or -no-due")
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	id, err := store.ResolveID(positional[0])
	if err != nil {
		return err
	}
	task, err := store.Update(id, update)
	if task.IsZero() {
		return err
	}
	fmt.Printf("Updated %s\n", a.formatTask(task, false))
	return saved(err)
}

// dueCommand sets or clears the due date of one task.
func (a *app) dueCommand(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: tasks due ID DATE|none")
	}

	var due *todo.Date
	switch strings.ToLower(strings.TrimSpace(args[1])) {
	case "none", "clear", "-":
	default:
		d, err := a.parseDate(args[1])
		if err != nil {
			return err
		}
		due = &d
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	id, err := store.ResolveID(args[0])
	if err != nil {
		return err
	}
	task, err := store.SetDueDate(id, due)
	if task.IsZero() {
		return err
	}
	fmt.Printf("Updated %s\n", a.formatTask(task, false))
	return saved(err)
}

// setCompletedCommand marks tasks done or not done.
func (a *app) setCompletedCommand(args []string, completed bool) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	ids, err := resolveIDs(store, args)
	if err != nil {
		return err
	}

	label := "Done"
	if !completed {
		label = "Not done"
	}
	for _, id := range ids {
		task, err := store.SetCompleted(id, completed)
		if task.IsZero() {
			return err
		}
		fmt.Printf("%s: %s\n", label, task.Text)
		if err != nil {
			return saved(err)
		}
	}
	return nil
}

// rmCommand deletes tasks.
func (a *app) rmCommand(args []string) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	ids, err := resolveIDs(store, args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		task, err := store.Get(id)
		if err != nil {
			return err
		}
		if err := store.Delete(id); err != nil {
			return saved(err)
		}
		fmt.Printf("Deleted: %s\n", task.Text)
	}
	return nil
}

// clearCommand deletes every completed task.
func (a *app) clearCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	store, err := a.openStore()
	if err != nil {
		return err
	}
	n, err := store.ClearCompleted()
	if n == 1 {
		fmt.Println("Cleared 1 completed task.")
	} else {
		fmt.Printf("Cleared %d completed tasks.\n", n)
	}
	return saved(err)
}

// lsCommand lists tasks in display order.
func (a *app) lsCommand(args []string) error {
	fs := flag.NewFlagSet("tasks ls", flag.ContinueOnError)
	dueArg := fs.String("due", "", "Only tasks due on DATE")
	verbose := fs.Bool("v", false, "Show full ids and creation times")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("unexpected arguments: %v", positional[1:])
	}
	filter := a.cfg.GetFilter()
	if len(positional) == 1 {
		filter, err = todo.ParseFilter(positional[0])
		if err != nil {
			return err
		}
	}

	var dueOn *todo.Date
	if *dueArg != "" {
		d, err := a.parseDate(*dueArg)
		if err != nil {
			return err
		}
		dueOn = &d
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	tasks := store.Query(filter, dueOn)

	if len(tasks) == 0 {
		switch {
		case dueOn != nil:
			fmt.Printf("No tasks due on %s.\n", dueOn.Format(a.cfg.DateFormat))
		case filter == todo.FilterAll:
			fmt.Println("No tasks.")
		default:
			fmt.Printf("No %s tasks.\n", strings.ToLower(filter.Label()))
		}
		return nil
	}
	for _, t := range tasks {
		fmt.Println(a.formatTask(t, *verbose))
	}
	if *verbose {
		open := 0
		for _, t := range tasks {
			if !t.Completed {
				open++
			}
		}
		fmt.Printf("\n%d shown: %d open, %d done\n", len(tasks), open, len(tasks)-open)
	}
	return nil
}

// formatTask renders one task as a single line, or two when verbose.
func (a *app) formatTask(t todo.Task, verbose bool) string {
	check := " "
	if t.Completed {
		check = "x"
	}
	id := t.ID
	if !verbose && len(id) > shortIDLen {
		id = id[:shortIDLen]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s] %s", id, check, t.Text)
	if t.DueDate != nil {
		fmt.Fprintf(&b, "  (due %s", t.DueDate.Format(a.cfg.DateFormat))
		if t.Overdue(a.today()) {
			b.WriteString(", overdue")
		}
		b.WriteString(")")
	}
	if verbose {
		fmt.Fprintf(&b, "\n    created %s", t.CreatedAt.Format(a.cfg.DateFormat+" 15:04"))
	}
	return b.String()
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
