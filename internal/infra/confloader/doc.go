// Package confloader provides configuration loading for mitaina-cli.
//
// It is a thin layer over koanf:
//
//   - loader.go: defaults, YAML file and MITAINA_* environment sources
//   - provider.go: map provider used for defaults and flag overrides
//   - watcher.go: fsnotify-based change notification for the config file
//
// Priority (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Default values
package confloader
