package config

import (
	"fmt"
	"sort"
	"strconv"
)

// field binds a dotted key to a CLIConfig value.
type field struct {
	get func(c *CLIConfig) string
	set func(c *CLIConfig, v string) error
}

func stringField(ptr func(c *CLIConfig) *string) field {
	return field{
		get: func(c *CLIConfig) string { return *ptr(c) },
		set: func(c *CLIConfig, v string) error { *ptr(c) = v; return nil },
	}
}

func boolField(ptr func(c *CLIConfig) *bool) field {
	return field{
		get: func(c *CLIConfig) string { return strconv.FormatBool(*ptr(c)) },
		set: func(c *CLIConfig, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("want true or false, got %q", v)
			}
			*ptr(c) = b
			return nil
		},
	}
}

var fields = map[string]field{
	"api.base_url":        stringField(func(c *CLIConfig) *string { return &c.API.BaseURL }),
	"api.timeout":         stringField(func(c *CLIConfig) *string { return &c.API.Timeout }),
	"api.ca_file":         stringField(func(c *CLIConfig) *string { return &c.API.CAFile }),
	"output.format":       stringField(func(c *CLIConfig) *string { return &c.Output.Format }),
	"output.wide":         boolField(func(c *CLIConfig) *bool { return &c.Output.Wide }),
	"storage.dir":         stringField(func(c *CLIConfig) *string { return &c.Storage.Dir }),
	"storage.gc_interval": stringField(func(c *CLIConfig) *string { return &c.Storage.GCInterval }),
	"storage.sync_writes": boolField(func(c *CLIConfig) *bool { return &c.Storage.SyncWrites }),
	"log.level":           stringField(func(c *CLIConfig) *string { return &c.Log.Level }),
	"log.format":          stringField(func(c *CLIConfig) *string { return &c.Log.Format }),
	"repl.history_file":   stringField(func(c *CLIConfig) *string { return &c.REPL.HistoryFile }),
	"repl.history_size": {
		get: func(c *CLIConfig) string { return strconv.Itoa(c.REPL.HistorySize) },
		set: func(c *CLIConfig, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("want a non-negative integer, got %q", v)
			}
			c.REPL.HistorySize = n
			return nil
		},
	},
}

// Keys returns the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key as a string.
func (c *CLIConfig) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return f.get(c), nil
}

// Set assigns value to key and re-validates the config. On failure the
// previous value is restored.
func (c *CLIConfig) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}

	old := f.get(c)
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := c.Validate(); err != nil {
		_ = f.set(c, old)
		return err
	}
	return nil
}

// Flatten returns every settable key with its current value.
func (c *CLIConfig) Flatten() map[string]string {
	out := make(map[string]string, len(fields))
	for k, f := range fields {
		out[k] = f.get(c)
	}
	return out
}
