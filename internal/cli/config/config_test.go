package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Timeout != "10s" {
		t.Errorf("API.Timeout = %q, want 10s", cfg.API.Timeout)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("Output.Format = %q", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	for name, p := range map[string]string{
		filepath.Join(".mitaina", "cli.yaml"): DefaultConfigPath(),
		filepath.Join(".mitaina", "history"):  DefaultHistoryPath(),
	} {
		if !filepath.IsAbs(p) {
			t.Errorf("%s should be absolute", p)
		}
		if !strings.HasSuffix(p, name) {
			t.Errorf("path %q should end with %q", p, name)
		}
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default", cfg.API.BaseURL)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	content := `api:
  base_url: https://file.example
  timeout: 5s
output:
  format: json
log:
  level: info
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MITAINA_API_BASE_URL", "https://env.example")
	t.Setenv("MITAINA_LOG_LEVEL", "error")

	cfg, err := Load(path, map[string]any{"log.level": "debug"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://env.example" {
		t.Errorf("API.BaseURL = %q, env should beat file", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != "5s" {
		t.Errorf("API.Timeout = %q, file should beat defaults", cfg.API.Timeout)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q", cfg.Output.Format)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, flags should beat env", cfg.Log.Level)
	}
	if cfg.REPL.HistorySize != 1000 {
		t.Errorf("REPL.HistorySize = %d, want default", cfg.REPL.HistorySize)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		want      string
	}{
		{"bad scheme", map[string]any{"api.base_url": "ftp://x"}, "scheme"},
		{"missing host", map[string]any{"api.base_url": "http://"}, "missing host"},
		{"empty url", map[string]any{"api.base_url": ""}, "required"},
		{"bad timeout", map[string]any{"api.timeout": "soon"}, "api.timeout"},
		{"bad format", map[string]any{"output.format": "xml"}, "output.format"},
		{"bad level", map[string]any{"log.level": "loud"}, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(filepath.Join(t.TempDir(), "none.yaml"), tt.overrides)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	os.WriteFile(path, []byte("api: [unclosed"), 0600)

	if _, err := Load(path, nil); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cli.yaml")

	cfg := Default()
	cfg.API.BaseURL = "https://api.mitaina.example"
	cfg.Output.Wide = true

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.API.BaseURL != cfg.API.BaseURL || !loaded.Output.Wide {
		t.Errorf("round trip lost values: %+v", loaded)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestTimeoutDuration(t *testing.T) {
	d, err := APIConfig{Timeout: "1500ms"}.TimeoutDuration()
	if err != nil || d.Milliseconds() != 1500 {
		t.Errorf("TimeoutDuration() = %v, %v", d, err)
	}
	if d, err := (APIConfig{}).TimeoutDuration(); err != nil || d != 0 {
		t.Errorf("empty TimeoutDuration() = %v, %v", d, err)
	}
	if _, err := (APIConfig{Timeout: "-1s"}).TimeoutDuration(); err == nil {
		t.Error("negative timeout should fail")
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("output.format", "yaml"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, _ := cfg.Get("output.format"); v != "yaml" {
		t.Errorf("Get() = %q", v)
	}

	if err := cfg.Set("output.wide", "true"); err != nil || !cfg.Output.Wide {
		t.Errorf("Set(output.wide) = %v, wide=%v", err, cfg.Output.Wide)
	}
	if err := cfg.Set("output.wide", "maybe"); err == nil {
		t.Error("Set(output.wide, maybe) should fail")
	}

	if err := cfg.Set("repl.history_size", "50"); err != nil || cfg.REPL.HistorySize != 50 {
		t.Errorf("Set(repl.history_size) = %v, size=%d", err, cfg.REPL.HistorySize)
	}

	// Invalid values are rolled back
	if err := cfg.Set("api.base_url", "not a url"); err == nil {
		t.Error("Set(api.base_url) should fail validation")
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want rollback to default", cfg.API.BaseURL)
	}

	if _, err := cfg.Get("nope"); err == nil {
		t.Error("Get(nope) should fail")
	}
	if err := cfg.Set("nope", "x"); err == nil {
		t.Error("Set(nope) should fail")
	}
}

func TestKeysAndFlatten(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("Keys() is empty")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("Keys() not sorted at %d: %v", i, keys)
		}
	}

	flat := Default().Flatten()
	if flat["api.base_url"] != DefaultBaseURL {
		t.Errorf("Flatten()[api.base_url] = %q", flat["api.base_url"])
	}
	if len(flat) != len(keys) {
		t.Errorf("Flatten() has %d keys, Keys() %d", len(flat), len(keys))
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	os.WriteFile(path, []byte("output:\n  format: yaml\n"), 0600)
	t.Setenv("MITAINA_OUTPUT_FORMAT", "json")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Output.Format = %q, want file value", cfg.Output.Format)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default", cfg.API.BaseURL)
	}
}
