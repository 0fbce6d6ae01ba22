package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/yndnr/mitaina-cli/internal/session"
	"github.com/yndnr/mitaina-cli/internal/storage"
)

// request is one call seen by the mock server.
type request struct {
	Method string
	URI    string
	Auth   string
	Body   string
}

// mockServer creates a test HTTP server with custom handlers.
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []request
}

// newMockServer creates a new mock server. Handlers are keyed by
// "METHOD /path/prefix"; the longest matching prefix wins.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		m.mu.Lock()
		m.requests = append(m.requests, request{
			Method: r.Method,
			URI:    r.URL.RequestURI(),
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		handler := m.match(r.Method + " " + r.URL.Path)
		m.mu.Unlock()

		if handler == nil {
			jsonResponse(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// match is called with mu held.
func (m *mockServer) match(key string) http.HandlerFunc {
	patterns := make([]string, 0, len(m.handlers))
	for p := range m.handlers {
		patterns = append(patterns, p)
	}
	sort.Slice(patterns, func(i, j int) bool { return len(patterns[i]) > len(patterns[j]) })
	for _, p := range patterns {
		if strings.HasPrefix(key, p) {
			return m.handlers[p]
		}
	}
	return nil
}

// handle registers a handler for a "METHOD /path" pattern.
func (m *mockServer) handle(pattern string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[pattern] = handler
}

// reply registers a fixed JSON body.
func (m *mockServer) reply(pattern string, status int, body string) {
	m.handle(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

func (m *mockServer) last() request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return request{}
	}
	return m.requests[len(m.requests)-1]
}

func (m *mockServer) find(method, uriPrefix string) (request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.Method == method && strings.HasPrefix(r.URI, uriPrefix) {
			return r, true
		}
	}
	return request{}, false
}

func (m *mockServer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// tokenKV returns client storage holding token, or an empty one.
func tokenKV(t *testing.T, token string) *storage.MemoryKV {
	t.Helper()
	kv := storage.NewMemoryKV()
	if token != "" {
		if err := session.NewKVStore(kv).Set(context.Background(), token); err != nil {
			t.Fatal(err)
		}
	}
	return kv
}

func storedToken(t *testing.T, kv storage.KV) string {
	t.Helper()
	tok, _, err := session.NewKVStore(kv).Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

// cliResult is the outcome of one app run.
type cliResult struct {
	out    string
	errOut string
	err    error
}

// runCLI runs the app against server with an isolated home directory
// and config file. stdin feeds prompts.
func runCLI(t *testing.T, server *mockServer, kv storage.KV, stdin string, args ...string) cliResult {
	t.Helper()
	return runCLIHome(t, t.TempDir(), server, kv, stdin, args...)
}

// runCLIHome is runCLI with a caller-chosen home directory. A nil kv
// leaves the app on its configured on-disk storage.
func runCLIHome(t *testing.T, home string, server *mockServer, kv storage.KV, stdin string, args ...string) cliResult {
	t.Helper()
	t.Setenv("HOME", home)

	var out, errOut bytes.Buffer
	opts := []Option{WithIO(strings.NewReader(stdin), &out, &errOut)}
	if kv != nil {
		opts = append(opts, WithStorage(kv))
	}
	app := App(opts...)

	full := []string{"mitaina-cli", "--config", filepath.Join(home, ".mitaina", "cli.yaml")}
	if server != nil {
		full = append(full, "--api-base-url", server.URL)
	}
	full = append(full, args...)

	err := app.Run(full)
	return cliResult{out: out.String(), errOut: errOut.String(), err: err}
}

// Sample payloads.

const samplePost = `{"id":7,"author":{"id":1,"public_id":"taro","handle_name":"Taro"},"text":"猫みたいな","genre":"anime","work_title":"","performer_name":"","like_count":2,"hatena_count":0,"correct_count":1,"reaction_counts":{"like":2,"hatena":0,"correct":1},"created_at":"2026-01-02T03:04:05Z"}`

const sampleUser = `{"id":1,"public_id":"taro","handle_name":"Taro","email":"taro@example.com"}`

func postPage(next string, posts ...string) string {
	n := "null"
	if next != "" {
		n = `"` + next + `"`
	}
	return `{"count":` + strconv.Itoa(len(posts)) + `,"next":` + n + `,"previous":null,"results":[` + strings.Join(posts, ",") + `]}`
}
