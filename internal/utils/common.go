// Package utils holds small string helpers shared by the CLI and the task
// file validator.
package utils

import (
	"strconv"
	"strings"
)

// SplitAndTrim splits s on sep and drops blank parts.
func SplitAndTrim(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// JSONPointerToPath turns a JSON Pointer such as "#/3/due_date" into the
// path "[3].due_date" used in validation messages.
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")

	var b strings.Builder
	for _, token := range strings.Split(ptr, "/") {
		token = pointerUnescaper.Replace(token)
		switch {
		case token == "":
		case isIndex(token):
			b.WriteString("[" + token + "]")
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(token)
		}
	}
	return b.String()
}

func isIndex(token string) bool {
	n, err := strconv.Atoi(token)
	return err == nil && n >= 0 && strconv.Itoa(n) == token
}
