// Package command provides CLI command definitions for mitaina-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: app, global flags, runtime lookup
//   - runtime.go: wiring of config, storage, API client, services and router
//   - auth.go: login, logout, register, password-reset
//   - post.go, user.go, me.go, feed.go: backend resources
//   - navigate.go: open, page, repl
//   - config.go: local configuration
//   - system.go: version, metrics
//
// Commands follow a consistent pattern of parsing flags,
// calling the appropriate service, and formatting output.
package command
