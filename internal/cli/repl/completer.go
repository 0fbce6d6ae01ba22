package repl

import (
	"slices"
	"strings"
)

// Builtins are handled by the loop itself rather than the command tree.
var Builtins = []string{"back", "complete", "exit", "help", "quit"}

// Completer provides prefix completion for the REPL.
type Completer struct {
	words []string
}

// NewCompleter creates a Completer over command names (including
// "group sub" forms) and route paths.
func NewCompleter(commands, routes []string) *Completer {
	words := make([]string, 0, len(commands)+len(routes)+len(Builtins))
	words = append(words, Builtins...)
	words = append(words, commands...)
	words = append(words, routes...)
	slices.Sort(words)
	return &Completer{words: slices.Compact(words)}
}

// Complete returns the words starting with prefix in sorted order.
// An empty prefix completes nothing.
func (c *Completer) Complete(prefix string) []string {
	if prefix == "" {
		return nil
	}
	var suggestions []string
	for _, w := range c.words {
		if strings.HasPrefix(w, prefix) {
			suggestions = append(suggestions, w)
		}
	}
	return suggestions
}

// Words returns every completion word.
func (c *Completer) Words() []string {
	return slices.Clone(c.words)
}
