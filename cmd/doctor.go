package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nibzard/tasks-go/internal/todo"
)

// doctorCommand checks the configuration and task file validity.
func (a *app) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("tasks doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Tasks Doctor")
	fmt.Println("============")
	fmt.Println()

	allOK := true

	// Check config
	fmt.Println("Config:")
	if len(a.loaded.Files) == 0 {
		fmt.Println("  ✅ Files: none (defaults)")
	} else {
		for _, path := range a.loaded.Files {
			fmt.Printf("  ✅ File: %s\n", path)
		}
	}
	for _, w := range a.loaded.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	if _, err := a.cfg.NewIDGenerator(); err != nil {
		fmt.Printf("  ❌ ID scheme: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("  ✅ ID scheme: %s\n", a.cfg.IDScheme)
	}
	fmt.Printf("  ✅ Date format: %s (today is %s)\n", a.cfg.DateFormat, a.today().Format(a.cfg.DateFormat))
	if *verbose {
		keys := make([]string, 0, len(a.loaded.Sources))
		for k := range a.loaded.Sources {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("     %s: %s\n", k, a.loaded.Sources[k])
		}
	}
	fmt.Println()

	// Check task file
	path := a.cfg.DataFile
	fmt.Printf("Task file: %s\n", path)
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created by the first change)")
		if dirInfo, derr := os.Stat(filepath.Dir(path)); derr != nil || !dirInfo.IsDir() {
			fmt.Printf("  ❌ Directory %s does not exist\n", filepath.Dir(path))
			allOK = false
		}
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		result := todo.ValidateFile(path)
		for _, w := range result.Warnings {
			fmt.Printf("  ⚠️  %s\n", w)
		}
		if result.Valid {
			fmt.Printf("  ✅ Valid (%d tasks)\n", result.Tasks)
		} else {
			fmt.Println("  ❌ Validation failed:")
			for _, e := range result.Errors {
				fmt.Printf("     - %v\n", e)
			}
			allOK = false
		}
		if *verbose && result.Valid {
			tasks, err := todo.ReadFile(path)
			if err == nil {
				for _, t := range tasks {
					fmt.Printf("    - %s\n", a.formatTask(t, true))
				}
			}
		}
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
