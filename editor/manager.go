package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vinodismyname/mdsheet/config"
	"github.com/vinodismyname/mdsheet/core/parser"
)

// Handle represents an in-memory document reference paired with metadata
// for TTL eviction, wrapping an editor.Context instead of a raw file
// handle.
type Handle struct {
	ID        string
	Ctx       *Context
	Path      string
	LoadedAt  time.Time
	ExpiresAt time.Time
	mu        sync.RWMutex
}

// DocumentGate coordinates capacity for open document handles (backed by
// runtime.Controller).
type DocumentGate interface {
	AcquireDocument(ctx context.Context) error
	ReleaseDocument()
}

// PathValidator abstracts filesystem path validation. Implementations
// return a canonical absolute path if allowed, or an error when denied.
type PathValidator interface {
	ValidateOpenPath(path string) (string, error)
}

// Manager provides lifecycle hooks for opening and closing documents and a
// TTL-bearing handle cache, one handle per open document.
type Manager struct {
	mu           sync.RWMutex
	handles      map[string]*Handle
	ttl          time.Duration
	cleanupEvery time.Duration
	clock        func() time.Time
	gate         DocumentGate
	stopCh       chan struct{}
	cleanupWG    sync.WaitGroup
	validator    PathValidator
	schema       parser.Schema
}

// NewManager constructs a lifecycle manager with a TTL-bearing handle
// cache. Pass ttl or cleanupEvery <= 0 to use defaults from config.
// Gate can be nil for tests; clock defaults to time.Now when nil.
func NewManager(ttl, cleanupEvery time.Duration, gate DocumentGate, clock func() time.Time, validator PathValidator, schema parser.Schema) *Manager {
	if ttl <= 0 {
		ttl = config.DefaultDocumentIdleTTL
	}
	if cleanupEvery <= 0 {
		cleanupEvery = config.DefaultDocumentCleanupPeriod
	}
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		handles:      make(map[string]*Handle),
		ttl:          ttl,
		cleanupEvery: cleanupEvery,
		clock:        clock,
		gate:         gate,
		stopCh:       make(chan struct{}),
		validator:    validator,
		schema:       schema.Normalize(),
	}
}

// Start launches periodic eviction of expired handles.
func (m *Manager) Start() {
	m.cleanupWG.Add(1)
	ticker := time.NewTicker(m.cleanupEvery)
	go func() {
		defer m.cleanupWG.Done()
		defer ticker.Stop()
		for {
			select {
			case <-m.stopCh:
				return
			case <-ticker.C:
				m.EvictExpired()
			}
		}
	}()
}

// Close stops background cleanup; open handles carry no external
// resources to release beyond capacity on the gate.
func (m *Manager) Close(ctx context.Context) error {
	close(m.stopCh)
	done := make(chan struct{})
	go func() { m.cleanupWG.Wait(); close(done) }()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.handles {
		delete(m.handles, id)
		if m.gate != nil {
			m.gate.ReleaseDocument()
		}
	}
	return nil
}

// ErrHandleNotFound indicates an unknown or expired handle ID.
var ErrHandleNotFound = errors.New("editor: handle not found")

// Open reads the Markdown file at path, initializes a Context, registers a
// TTL-bearing handle, and returns its ID. Capacity is enforced via the
// gate when provided.
func (m *Manager) Open(ctx context.Context, path string) (string, error) {
	if err := m.acquire(ctx); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown":
	default:
		m.release()
		return "", fmt.Errorf("editor: unsupported format: %s", ext)
	}

	if m.validator != nil {
		canonical, err := m.validator.ValidateOpenPath(path)
		if err != nil {
			m.release()
			return "", err
		}
		path = canonical
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		m.release()
		return "", err
	}

	id := uuid.NewString()
	ctxDoc := NewContext(string(raw), m.schema)
	h := m.newHandle(id, ctxDoc, path)

	m.mu.Lock()
	m.handles[id] = h
	m.mu.Unlock()

	return id, nil
}

// Adopt registers an already-initialized Context as a managed handle.
// Intended for tests or advanced flows (e.g. in-memory documents with no
// backing file).
func (m *Manager) Adopt(ctx context.Context, c *Context) (string, error) {
	if c == nil {
		return "", fmt.Errorf("editor: nil context")
	}
	if err := m.acquire(ctx); err != nil {
		return "", err
	}
	id := uuid.NewString()
	h := m.newHandle(id, c, "")
	m.mu.Lock()
	m.handles[id] = h
	m.mu.Unlock()
	return id, nil
}

func (m *Manager) newHandle(id string, c *Context, path string) *Handle {
	loadedAt := m.clock()
	return &Handle{ID: id, Ctx: c, Path: path, LoadedAt: loadedAt, ExpiresAt: loadedAt.Add(m.ttl)}
}

// Get returns the handle when present and refreshes its TTL.
func (m *Manager) Get(id string) (*Handle, bool) {
	m.mu.RLock()
	h, ok := m.handles[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := m.clock()
	h.mu.Lock()
	h.ExpiresAt = now.Add(m.ttl)
	h.mu.Unlock()
	return h, true
}

// WithRead obtains a shared read lock for the handle and executes fn.
func (m *Manager) WithRead(id string, fn func(*Context) error) error {
	h, ok := m.Get(id)
	if !ok {
		return ErrHandleNotFound
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return fn(h.Ctx)
}

// WithWrite obtains an exclusive write lock for the handle and executes fn.
func (m *Manager) WithWrite(id string, fn func(*Context) error) error {
	h, ok := m.Get(id)
	if !ok {
		return ErrHandleNotFound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.Ctx)
}

// CloseHandle closes and removes a handle by ID, releasing capacity via
// the gate.
func (m *Manager) CloseHandle(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.handles[id]
	if ok {
		delete(m.handles, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrHandleNotFound
	}
	m.release()
	return nil
}

// Save writes the handle's current text back to its backing file path. It
// is a no-op error for handles adopted without a path.
func (m *Manager) Save(id string) error {
	h, ok := m.Get(id)
	if !ok {
		return ErrHandleNotFound
	}
	h.mu.RLock()
	path, text := h.Path, h.Ctx.Text()
	h.mu.RUnlock()
	if path == "" {
		return fmt.Errorf("editor: handle %s has no backing file", id)
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// EvictExpired scans for expired handles and removes them.
func (m *Manager) EvictExpired() {
	now := m.clock()
	var expiredIDs []string

	m.mu.RLock()
	for id, h := range m.handles {
		h.mu.RLock()
		isExpired := now.After(h.ExpiresAt)
		h.mu.RUnlock()
		if isExpired {
			expiredIDs = append(expiredIDs, id)
		}
	}
	m.mu.RUnlock()

	if len(expiredIDs) == 0 {
		return
	}

	m.mu.Lock()
	for _, id := range expiredIDs {
		delete(m.handles, id)
		m.release()
	}
	m.mu.Unlock()
}

// Count returns the current number of cached handles.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handles)
}

func (m *Manager) acquire(ctx context.Context) error {
	if m.gate == nil {
		return nil
	}
	return m.gate.AcquireDocument(ctx)
}

func (m *Manager) release() {
	if m.gate == nil {
		return
	}
	m.gate.ReleaseDocument()
}

// Expired reports whether the handle has reached its TTL.
func (h *Handle) Expired(now time.Time) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return now.After(h.ExpiresAt)
}
