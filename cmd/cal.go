package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/tasks-go/internal/calendar"
	"github.com/nibzard/tasks-go/internal/todo"
)

// calCommand prints a month grid with due dates marked, followed by the
// tasks due on the selected day or, without one, in the whole month.
func (a *app) calCommand(args []string) error {
	fs := flag.NewFlagSet("tasks cal", flag.ContinueOnError)
	dayArg := fs.String("day", "", "Select a day and list the tasks due on it")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("unexpected arguments: %v", positional[1:])
	}

	today := a.today()
	ym := calendar.Of(today)

	var selected todo.Date
	if *dayArg != "" {
		selected, err = a.parseDate(*dayArg)
		if err != nil {
			return err
		}
		ym = calendar.Of(selected)
	}
	if len(positional) == 1 {
		ym, err = calendar.ParseYearMonth(positional[0])
		if err != nil {
			return err
		}
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	all := store.Query(todo.FilterAll, nil)
	month := calendar.NewMonth(ym.Year, ym.Month, all)

	if err := calendar.Render(os.Stdout, month, today, selected); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(calendar.Legend)
	fmt.Println()

	if !selected.IsZero() {
		a.printDay(store, selected)
		return nil
	}

	days := month.DueDays()
	if len(days) == 0 {
		fmt.Printf("Nothing due in %s.\n", ym)
		return nil
	}
	fmt.Printf("Due in %s:\n", ym)
	for _, day := range days {
		d := day.Date
		for _, t := range store.Query(todo.FilterAll, &d) {
			fmt.Printf("  %s  %s\n", d.Format("Mon 02"), a.formatTask(t, false))
		}
	}
	return nil
}

func (a *app) printDay(store *todo.Store, day todo.Date) {
	tasks := store.Query(todo.FilterAll, &day)
	if len(tasks) == 0 {
		fmt.Printf("Nothing due on %s.\n", day.Format("Monday, "+a.cfg.DateFormat))
		return
	}
	fmt.Printf("Due on %s:\n", day.Format("Monday, "+a.cfg.DateFormat))
	for _, t := range tasks {
		fmt.Printf("  %s\n", a.formatTask(t, false))
	}
}
