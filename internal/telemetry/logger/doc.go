// Package logger provides structured logging for mitaina-cli.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: handler construction, levels, default logger
//   - context.go: request ID propagation through context
//   - redact.go: masking of credentials before they reach the output
//
// Diagnostics go to stderr so that command output on stdout stays
// machine-readable.
package logger
