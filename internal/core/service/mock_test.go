package service

import (
	"context"
	"encoding/json"
	"sync"
)

// call is one recorded request.
type call struct {
	Method string
	Rel    string
	Body   string
}

// mockAPI records calls and answers with canned JSON keyed by "METHOD rel".
type mockAPI struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]string
	errs      map[string]error
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		responses: make(map[string]string),
		errs:      make(map[string]error),
	}
}

func (m *mockAPI) on(method, rel, body string) *mockAPI {
	m.responses[method+" "+rel] = body
	return m
}

func (m *mockAPI) fail(method, rel string, err error) *mockAPI {
	m.errs[method+" "+rel] = err
	return m
}

func (m *mockAPI) Call(_ context.Context, method, rel string, in, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := call{Method: method, Rel: rel}
	if in != nil {
		data, _ := json.Marshal(in)
		c.Body = string(data)
	}
	m.calls = append(m.calls, c)

	key := method + " " + rel
	if err, ok := m.errs[key]; ok {
		return err
	}
	if body, ok := m.responses[key]; ok && out != nil {
		return json.Unmarshal([]byte(body), out)
	}
	return nil
}

func (m *mockAPI) lastCall() call {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return call{}
	}
	return m.calls[len(m.calls)-1]
}

func (m *mockAPI) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
