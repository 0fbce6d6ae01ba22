// Package config holds the mitaina-cli configuration.
//
//   - spec.go: CLIConfig struct (~/.mitaina/cli.yaml) and defaults
//   - loader.go: layered loading (defaults, file, MITAINA_* env, flags)
//     and saving
//   - keys.go: get/set by dotted key for "config set"
package config
