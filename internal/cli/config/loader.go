package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/mitaina-cli/internal/cli/output"
	"github.com/yndnr/mitaina-cli/internal/infra/confloader"
)

// Load reads defaults, the optional file at path, MITAINA_* environment
// variables, then overrides (flat "section.key" values from flags).
// A missing file is not an error.
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOptionalFile(),
		confloader.WithDefaults(defaultsMap()),
	)

	cfg := &CLIConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("apply flags: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads defaults and the file at path, ignoring the
// environment. It is the starting point for rewriting the file.
func LoadFile(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := &CLIConfig{}
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOptionalFile(),
		confloader.WithDefaults(defaultsMap()),
		confloader.WithoutEnv(),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail much later.
func (c *CLIConfig) Validate() error {
	var errs []error

	if err := validateBaseURL(c.API.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.API.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("api.base_url: required (set MITAINA_API_BASE_URL or --api-base-url)")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: scheme must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url: missing host in %q", raw)
	}
	return nil
}

// TimeoutDuration parses Timeout. Empty means zero, which the API client
// replaces with its default.
func (a APIConfig) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("api.timeout: must not be negative")
	}
	return d, nil
}

// Save writes cfg as YAML with owner-only permissions. The file is
// replaced atomically.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cli-*.yaml")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
