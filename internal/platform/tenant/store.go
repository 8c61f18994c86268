// Package tenant holds the active client scope and credentials for backend
// calls. Every request leaving the gateway is scoped to one tenant (one of
// the businesses sharing the platform) via its client id; the store is the
// single source of truth for which tenant and which bearer token the current
// session carries.
package tenant

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Config identifies the backend tenant scope a request targets and the
// credentials for it.
type Config struct {
	ClientID     string `json:"client_id"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Store is the session-level tenant/credential store. Implementations never
// fail: these are pure state mutations.
type Store interface {
	// Current returns the active tenant config, or nil when no session is
	// established.
	Current() *Config
	// Set overwrites the active tenant config.
	Set(cfg Config)
	// Clear resets the store to the no-session state.
	Clear()
}

// MemoryStore is a mutex-guarded in-process Store.
type MemoryStore struct {
	mu  sync.RWMutex
	cfg *Config
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Current() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return nil
	}
	cp := *s.cfg
	return &cp
}

func (s *MemoryStore) Set(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = nil
}

// FileStore mirrors a MemoryStore to a JSON credentials file so the session
// survives process restarts. File errors are swallowed: a missing or
// unwritable credentials file degrades to memory-only behavior.
type FileStore struct {
	mem  MemoryStore
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path}
	s.rehydrate()
	return s
}

func (s *FileStore) Current() *Config {
	if cfg := s.mem.Current(); cfg != nil {
		return cfg
	}
	// A concurrent writer may have persisted since startup.
	s.rehydrate()
	return s.mem.Current()
}

func (s *FileStore) Set(cfg Config) {
	s.mem.Set(cfg)
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o700)
	_ = os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() {
	s.mem.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.path)
}

func (s *FileStore) rehydrate() {
	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil {
		return
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return
	}
	if cfg.ClientID != "" {
		s.mem.Set(cfg)
	}
}

type contextKey string

const configKey contextKey = "tenant_config"

// NewContext returns a context carrying a request-scoped tenant config.
// Handlers use this instead of mutating the shared store so concurrent
// requests for different tenants cannot leak into each other.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves the request-scoped tenant config, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(configKey).(*Config)
	return cfg
}
