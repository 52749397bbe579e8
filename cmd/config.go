package cmd

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/tasks-go/internal/config"
)

// configCommand prints the effective configuration, an example file, or the
// config file in use.
func (a *app) configCommand(args []string) error {
	action := "show"
	if len(args) > 0 {
		action = args[0]
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}

	switch action {
	case "show":
		fmt.Print(a.effectiveConfig())
		return nil
	case "example":
		fmt.Print(config.ExampleConfig())
		return nil
	case "path":
		if path := a.loaded.ActiveConfigFile(); path != "" {
			fmt.Println(path)
			return nil
		}
		fmt.Println("No config file loaded.")
		return nil
	default:
		return fmt.Errorf("unknown config action %q (show, example, path)", action)
	}
}

// effectiveConfig renders the merged config as TOML, with the source of
// each value as a trailing comment.
func (a *app) effectiveConfig() string {
	var b strings.Builder
	for _, key := range config.Fields() {
		data, err := toml.Marshal(map[string]any{key: a.cfg.Value(key)})
		if err != nil {
			continue
		}
		line := strings.TrimRight(string(data), "\n")
		fmt.Fprintf(&b, "%-40s # %s\n", line, a.loaded.Sources[key])
	}
	return b.String()
}
