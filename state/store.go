// Package state implements the launcher's scoped configuration store: a flat
// map of typed entries persisted through a Backend, with fixed keys, scoped
// key families, and versioned snapshot export/import.
//
// Reads never fail: every getter takes a default that is returned both for
// absent keys and for keys holding a different type. A key keeps its type for
// the lifetime of the store; writing another type is rejected.
package state

import (
	"fmt"
	"math"
	"sync"

	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/sirupsen/logrus"
)

// Store is the configuration store. Readers and writers are serialised by an
// internal lock, but concurrent writers to one key still race at the
// application level.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	entries map[string]Entry
	order   []string
	logger  *logrus.Entry
}

// Open loads the backend's contents into a new Store.
func Open(backend Backend) (*Store, error) {
	loaded, err := backend.Load()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to load configuration store").
			WithDetail("backend", backend.Name())
	}

	s := &Store{
		backend: backend,
		entries: make(map[string]Entry, len(loaded)),
		logger:  logging.NewLogger("state"),
	}
	for _, e := range loaded {
		if _, dup := s.entries[e.Key]; !dup {
			s.order = append(s.order, e.Key)
		}
		s.entries[e.Key] = e
	}
	s.logger.WithFields(logrus.Fields{
		"backend": backend.Name(),
		"entries": len(s.order),
	}).Debug("Configuration store opened")
	return s, nil
}

// NewMemoryStore returns an empty store that is never persisted.
func NewMemoryStore() *Store {
	s, _ := Open(NewMemoryBackend())
	return s
}

// BackendName reports where the store persists.
func (s *Store) BackendName() string {
	return s.backend.Name()
}

// Entry returns the stored entry for key.
func (s *Store) Entry(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Has reports whether key was written.
func (s *Store) Has(key string) bool {
	_, ok := s.Entry(key)
	return ok
}

// Keys returns stored keys in enumeration order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Entries returns stored entries in enumeration order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderedLocked()
}

func (s *Store) orderedLocked() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k])
	}
	return out
}

func (s *Store) GetString(key, def string) string {
	if e, ok := s.Entry(key); ok {
		if v, ok := e.String(); ok {
			return v
		}
	}
	return def
}

func (s *Store) GetInt(key string, def int32) int32 {
	if e, ok := s.Entry(key); ok {
		if v, ok := e.Int(); ok {
			return v
		}
	}
	return def
}

func (s *Store) GetLong(key string, def int64) int64 {
	if e, ok := s.Entry(key); ok {
		if v, ok := e.Long(); ok {
			return v
		}
	}
	return def
}

func (s *Store) GetFloat(key string, def float32) float32 {
	if e, ok := s.Entry(key); ok {
		if v, ok := e.Float(); ok {
			return v
		}
	}
	return def
}

func (s *Store) GetBool(key string, def bool) bool {
	if e, ok := s.Entry(key); ok {
		if v, ok := e.Bool(); ok {
			return v
		}
	}
	return def
}

// GetStringSet returns a copy of the set stored at key, sorted.
func (s *Store) GetStringSet(key string, def []string) []string {
	if e, ok := s.Entry(key); ok {
		if v, ok := e.StringSet(); ok {
			return v
		}
	}
	return def
}

func (s *Store) SetString(key, v string) error {
	return s.Put(StringEntry(key, v))
}

func (s *Store) SetInt(key string, v int32) error {
	return s.Put(IntEntry(key, v))
}

func (s *Store) SetLong(key string, v int64) error {
	return s.Put(LongEntry(key, v))
}

func (s *Store) SetFloat(key string, v float32) error {
	return s.Put(FloatEntry(key, v))
}

func (s *Store) SetBool(key string, v bool) error {
	return s.Put(BoolEntry(key, v))
}

func (s *Store) SetStringSet(key string, v []string) error {
	return s.Put(StringSetEntry(key, v))
}

// Put writes a typed entry and persists the store.
func (s *Store) Put(e Entry) error {
	return s.PutAll(e)
}

// PutAll writes several entries with a single persist.
func (s *Store) PutAll(entries ...Entry) error {
	return s.Apply(entries, nil)
}

// Remove deletes keys; absent keys are ignored.
func (s *Store) Remove(keys ...string) error {
	return s.Apply(nil, keys)
}

// Apply writes puts and deletes removes with a single persist. Either all
// changes become visible or none do.
func (s *Store) Apply(puts []Entry, removes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cloneLocked()
	changed := false
	for _, e := range puts {
		if err := checkWritable(e, next.entries); err != nil {
			return err
		}
		if _, exists := next.entries[e.Key]; !exists {
			next.order = append(next.order, e.Key)
		}
		next.entries[e.Key] = e
		changed = true
	}
	for _, key := range removes {
		if _, ok := next.entries[key]; !ok {
			continue
		}
		changed = true
		delete(next.entries, key)
		for i, k := range next.order {
			if k == key {
				next.order = append(next.order[:i], next.order[i+1:]...)
				break
			}
		}
	}
	if !changed {
		return nil
	}
	return s.commitLocked(next)
}

func checkWritable(e Entry, current map[string]Entry) error {
	if e.Key == "" {
		return errors.New(errors.ErrCodeInvalidInput, "configuration key must not be empty")
	}
	if !e.Type.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown entry type %q", e.Type)).
			WithDetail("key", e.Key)
	}
	want := Tag("")
	if fixed, ok := fixedIndex[e.Key]; ok {
		want = fixed.Type
	} else if prev, ok := current[e.Key]; ok {
		want = prev.Type
	}
	if want != "" && want != e.Type {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("key %q holds type %q, cannot write %q", e.Key, want, e.Type)).
			WithDetail("key", e.Key)
	}
	// Export has no form for NaN or infinities.
	if f, ok := e.Float(); ok && (math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)) {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("key %q: %v is not a finite float", e.Key, f)).
			WithDetail("key", e.Key)
	}
	return nil
}

type storeState struct {
	entries map[string]Entry
	order   []string
}

func (s *Store) cloneLocked() storeState {
	next := storeState{
		entries: make(map[string]Entry, len(s.entries)),
		order:   make([]string, len(s.order)),
	}
	for k, v := range s.entries {
		next.entries[k] = v
	}
	copy(next.order, s.order)
	return next
}

// commitLocked persists next and only then makes it visible.
func (s *Store) commitLocked(next storeState) error {
	ordered := make([]Entry, 0, len(next.order))
	for _, k := range next.order {
		ordered = append(ordered, next.entries[k])
	}
	if err := s.backend.Save(ordered); err != nil {
		s.logger.WithError(err).WithField("backend", s.backend.Name()).Warn("Failed to persist configuration store")
		return errors.PersistFailed(s.backend.Name(), err)
	}
	s.entries = next.entries
	s.order = next.order
	return nil
}
