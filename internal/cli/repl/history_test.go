package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory("", 0)
	if h.maxSize != DefaultHistorySize {
		t.Errorf("maxSize = %d, want %d", h.maxSize, DefaultHistorySize)
	}
	if h.entries == nil {
		t.Error("entries should be initialized")
	}
}

func TestHistory_Add(t *testing.T) {
	h := NewHistory("", 10)

	h.Add("command1")
	h.Add("command2")
	h.Add("command2")
	h.Add("command1")

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (consecutive duplicate dropped)", h.Len())
	}
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := NewHistory("", 3)

	h.Add("cmd1")
	h.Add("cmd2")
	h.Add("cmd3")
	h.Add("cmd4") // evicts cmd1

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	if h.entries[0] != "cmd2" {
		t.Errorf("entries[0] = %q, want %q", h.entries[0], "cmd2")
	}
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory("", 0)
	h.Add("first")
	h.Add("second")
	h.Add("third")

	tests := []struct {
		index int
		want  string
	}{
		{0, "third"},
		{1, "second"},
		{2, "first"},
		{3, ""},
		{-1, ""},
		{100, ""},
	}

	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(file, 0)
	h.Add("/login")
	h.Add("post list --genre anime")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("history mode = %o, want 600", perm)
	}

	h2 := NewHistory(file, 0)
	if err := h2.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if h2.Len() != 2 || h2.Get(0) != "post list --genre anime" {
		t.Errorf("loaded %d entries, most recent %q", h2.Len(), h2.Get(0))
	}
}

func TestHistory_Load_TrimsToMaxSize(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")
	os.WriteFile(file, []byte("a\nb\n\nc\nd\n"), 0600)

	h := NewHistory(file, 2)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}
	if h.Len() != 2 || h.Get(1) != "c" {
		t.Errorf("Len() = %d, Get(1) = %q", h.Len(), h.Get(1))
	}
}

func TestHistory_Load_Missing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"), 0)
	if err := h.Load(); err != nil {
		t.Errorf("Load() of missing file = %v", err)
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("", 0)
	h.Add("x")
	if err := h.Save(); err != nil {
		t.Errorf("Save() without file = %v", err)
	}
	if err := h.Load(); err != nil {
		t.Errorf("Load() without file = %v", err)
	}
}
