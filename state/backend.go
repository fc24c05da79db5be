package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

// Backend persists the full, ordered entry list of a Store. Save replaces
// everything the backend holds; a failed Save must leave the previous
// contents readable.
type Backend interface {
	Name() string
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// MemoryBackend keeps the last saved entries in memory.
type MemoryBackend struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Load() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryBackend) Save(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]Entry, len(entries))
	copy(m.entries, entries)
	return nil
}

// decodeJSONValue parses a "v" payload keeping numbers exact.
func decodeJSONValue(key string, tag Tag, raw []byte) (Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return Entry{}, fmt.Errorf("key %q: %w", key, err)
	}
	return decodeEntry(key, tag, v)
}
