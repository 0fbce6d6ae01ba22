// Package storage provides the client-side key/value storage for mitaina-cli.
//
// It plays the role a browser's local storage plays for a web client:
// a small set of named values that survive process restarts.
//
//   - kv.go: KV interface and configuration
//   - badger.go: Badger-backed persistent store
//   - memory.go: in-process store for tests and ephemeral runs
package storage
