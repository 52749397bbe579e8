package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/tasks-go/internal/config"
)

var completionCommands = []string{
	"add", "edit", "due", "done", "undo", "rm", "clear", "ls",
	"cal", "export", "doctor", "config", "tui", "completion", "version", "help",
}

// completionCommand prints a shell completion script.
func completionCommand(_ *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tasks completion bash|zsh|fish|powershell")
	}

	words := strings.Join(completionCommands, " ")
	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Printf(bashCompletion, words)
	case "zsh":
		fmt.Printf(zshCompletion, words)
	case "fish":
		fmt.Printf(fishCompletion, words)
	case "powershell", "pwsh":
		fmt.Printf(powershellCompletion, strings.Join(completionCommands, "', '"))
	default:
		return fmt.Errorf("unsupported shell %q (bash, zsh, fish, powershell)", args[0])
	}
	return nil
}

const bashCompletion = `# tasks bash completion
_tasks() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
        return
    fi
    case "${COMP_WORDS[1]}" in
        ls|export|tui) COMPREPLY=($(compgen -W "all active completed" -- "$cur")) ;;
        completion) COMPREPLY=($(compgen -W "bash zsh fish powershell" -- "$cur")) ;;
        config) COMPREPLY=($(compgen -W "show example path" -- "$cur")) ;;
    esac
}
complete -F _tasks tasks
`

const zshCompletion = `#compdef tasks
# tasks zsh completion
_tasks() {
    if (( CURRENT == 2 )); then
        compadd -- %s
        return
    fi
    case "$words[2]" in
        ls|export|tui) compadd -- all active completed ;;
        completion) compadd -- bash zsh fish powershell ;;
        config) compadd -- show example path ;;
    esac
}
compdef _tasks tasks
`

const fishCompletion = `# tasks fish completion
complete -c tasks -f
complete -c tasks -n "__fish_use_subcommand" -a "%s"
complete -c tasks -n "__fish_seen_subcommand_from ls export tui" -a "all active completed"
complete -c tasks -n "__fish_seen_subcommand_from completion" -a "bash zsh fish powershell"
complete -c tasks -n "__fish_seen_subcommand_from config" -a "show example path"
`

const powershellCompletion = `# tasks PowerShell completion
Register-ArgumentCompleter -Native -CommandName tasks -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    @('%s') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
