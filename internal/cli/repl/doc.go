// Package repl provides interactive mode for mitaina-cli.
//
//   - repl.go: main loop, built-ins and dispatch
//   - completer.go: prefix completion over commands and route paths
//   - history.go: line history persistence
//   - tokenize.go: splitting a line into arguments
//
// Lines starting with "/" navigate. Everything else runs as a command.
package repl
