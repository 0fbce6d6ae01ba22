package config

import (
	"os"
	"path/filepath"

	"github.com/yndnr/mitaina-cli/internal/storage"
	"github.com/yndnr/mitaina-cli/internal/telemetry/logger"
)

// CLIConfig is the configuration for mitaina-cli.
type CLIConfig struct {
	API     APIConfig      `koanf:"api" yaml:"api"`
	Output  OutputConfig   `koanf:"output" yaml:"output"`
	Storage storage.Config `koanf:"storage" yaml:"storage"`
	Log     logger.Config  `koanf:"log" yaml:"log"`
	REPL    REPLConfig     `koanf:"repl" yaml:"repl"`
}

// APIConfig selects the backend.
type APIConfig struct {
	// BaseURL is the API root, e.g. http://localhost:8000.
	BaseURL string `koanf:"base_url" yaml:"base_url"`

	// Timeout is a Go duration string.
	Timeout string `koanf:"timeout" yaml:"timeout"`

	// CAFile is an optional PEM bundle trusted in addition to system roots.
	CAFile string `koanf:"ca_file" yaml:"ca_file,omitempty"`
}

// OutputConfig sets the default rendering.
type OutputConfig struct {
	Format string `koanf:"format" yaml:"format"` // table, json, yaml
	Wide   bool   `koanf:"wide" yaml:"wide"`
}

// REPLConfig configures interactive mode.
type REPLConfig struct {
	HistoryFile string `koanf:"history_file" yaml:"history_file"`
	HistorySize int    `koanf:"history_size" yaml:"history_size"`
}

// DefaultBaseURL is the development backend address.
const DefaultBaseURL = "http://localhost:8000"

// HomeDir returns ~/.mitaina.
func HomeDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".mitaina")
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(HomeDir(), "cli.yaml")
}

// DefaultHistoryPath returns the default REPL history path.
func DefaultHistoryPath() string {
	return filepath.Join(HomeDir(), "history")
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: "10s",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Storage: storage.DefaultConfig(),
		Log: logger.Config{
			Level:  "warn",
			Format: "text",
		},
		REPL: REPLConfig{
			HistoryFile: DefaultHistoryPath(),
			HistorySize: 1000,
		},
	}
}

// defaultsMap flattens Default into koanf keys.
func defaultsMap() map[string]any {
	d := Default()
	return map[string]any{
		"api.base_url":         d.API.BaseURL,
		"api.timeout":          d.API.Timeout,
		"api.ca_file":          d.API.CAFile,
		"output.format":        d.Output.Format,
		"output.wide":          d.Output.Wide,
		"storage.dir":          d.Storage.Dir,
		"storage.gc_interval":  d.Storage.GCInterval,
		"storage.gc_threshold": d.Storage.GCThreshold,
		"storage.sync_writes":  d.Storage.SyncWrites,
		"log.level":            d.Log.Level,
		"log.format":           d.Log.Format,
		"repl.history_file":    d.REPL.HistoryFile,
		"repl.history_size":    d.REPL.HistorySize,
	}
}
