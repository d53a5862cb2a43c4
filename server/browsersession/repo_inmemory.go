package browsersession

import (
	"fmt"
	"sync"
)

// InMemoryRepo is an in-memory implementation of Repo.
type InMemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory browser-session repository.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		entries: make(map[string]*Entry),
	}
}

// Upsert creates or updates a browser-session entry.
func (r *InMemoryRepo) Upsert(sessionID string, entry *Entry) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}
	if entry == nil {
		return fmt.Errorf("entry is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[sessionID] = entry
	return nil
}

// Get retrieves a browser-session entry by session ID.
func (r *InMemoryRepo) Get(sessionID string) (*Entry, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return entry, nil
}

// Delete removes a browser-session entry.
func (r *InMemoryRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
	return nil
}
