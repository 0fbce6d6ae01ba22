// Package output renders command results.
//
//   - formatter.go: Format, Formatter interface and factory
//   - printer.go: Printer binding a writer to a format
//   - table.go: Table rendering with wide mode and reflection fallback
//   - json.go, yaml.go: machine-readable encodings
//
// Table output is for people; json and yaml always encode the full
// model so scripts never depend on column layout.
package output
