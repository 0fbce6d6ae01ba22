package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.Commit == "" {
		t.Error("Commit should not be empty")
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q, want go prefix", info.GoVersion)
	}
}

func TestString(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	s := String()
	if !strings.HasPrefix(s, "v1.2.3 ") {
		t.Errorf("String() = %q, want v1.2.3 prefix", s)
	}
	if !strings.Contains(s, "commit:") {
		t.Errorf("String() = %q, should contain commit", s)
	}
}

func TestUserAgent(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if got := UserAgent(); got != "mitaina-cli/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}
