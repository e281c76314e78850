// ABOUTME: In-memory session store for tests and throwaway sessions
// ABOUTME: Same both-or-neither contract as the file store

package session

import "sync"

// MemoryStore holds the record in process memory
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
	raw *Record // set by Seed to simulate arbitrary stored contents
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Seed stores rec verbatim, bypassing the completeness check.
// Tests use it to simulate damaged storage.
func (m *MemoryStore) Seed(rec Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	m.raw = &rec
}

// Load returns a copy of the stored record
func (m *MemoryStore) Load() (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.raw != nil {
		if m.raw.Empty() {
			return nil, nil
		}
		if !m.raw.Complete() {
			return nil, ErrCorrupt
		}
		rec := *m.raw
		return &rec, nil
	}
	if m.rec == nil {
		return nil, nil
	}
	rec := *m.rec
	return &rec, nil
}

// Save stores a copy of rec
func (m *MemoryStore) Save(rec Record) error {
	if !rec.Complete() {
		return ErrIncomplete
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = nil
	m.rec = &rec
	return nil
}

// Clear drops the stored record
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	m.raw = nil
	return nil
}
