package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yndnr/mitaina-cli/internal/storage"
)

// TokenKey is the fixed storage key holding the session token.
const TokenKey = "token"

// Reader reads the current session token.
type Reader interface {
	// Get returns the stored token and whether one is present.
	Get(ctx context.Context) (string, bool, error)
}

// Store reads, writes and clears the session token.
type Store interface {
	Reader

	// Set stores token, replacing any previous value.
	Set(ctx context.Context, token string) error

	// Clear removes the token. Clearing an absent token is not an error.
	Clear(ctx context.Context) error
}

// KVStore keeps the token in a storage.KV under TokenKey.
type KVStore struct {
	kv storage.KV
}

// NewKVStore creates a Store backed by kv.
func NewKVStore(kv storage.KV) *KVStore {
	return &KVStore{kv: kv}
}

// Get implements Reader.
func (s *KVStore) Get(ctx context.Context) (string, bool, error) {
	v, err := s.kv.Get(ctx, TokenKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

// Set implements Store. An empty token is treated as Clear.
func (s *KVStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.kv.Set(ctx, TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *KVStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates a MemoryStore holding token (empty means absent).
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Get implements Reader.
func (m *MemoryStore) Get(context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != "", nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// HasToken reports whether r currently holds a token.
// Read errors count as "no token".
func HasToken(ctx context.Context, r Reader) bool {
	_, ok, err := r.Get(ctx)
	return err == nil && ok
}
