package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// commandArgs maps command names to the argument values they accept.
var commandArgs = map[string][]string{
	"new":   {"fixed"},
	"move":  {"up", "down", "left", "right"},
	"depth": {"4", "6", "8", "10", "12"},
	"help":  {"new", "undo", "depth", "hint", "script"},
}

var commandNames = []string{
	"new", "move", "undo", "show", "hint", "depth", "script", "help", "exit",
}

// Do implements the readline.AutoCompleter interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// unbalanced quotes; fall back to simple space splitting
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		completions = commandArgs[fields[0]]
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
