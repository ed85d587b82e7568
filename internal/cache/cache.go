// Package cache is the per-resource response cache behind the resource
// accessors. Entries are keyed by resource name plus params and carry a
// generation counter: invalidation bumps the generation, so a response
// that completes after its key was invalidated cannot resurrect the
// entry (last writer by key, not by completion order).
package cache

import (
	"strings"
	"sync"
)

type entry struct {
	gen   uint64
	value interface{}
	valid bool
}

// Store is a generation-tracked keyed cache. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) get(key string) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	return e
}

// Get returns the cached value for key, if one is installed.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !e.valid {
		return nil, false
	}
	return e.value, true
}

// Begin marks the start of a fetch for key and returns the generation the
// fetch belongs to. Pass it to Complete.
func (s *Store) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key).gen
}

// Complete installs value for key only if no invalidation happened since
// Begin. Returns whether the value was installed.
func (s *Store) Complete(key string, gen uint64, value interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(key)
	if e.gen != gen {
		return false
	}
	e.value = value
	e.valid = true
	return true
}

// Invalidate drops the entry for key and bumps its generation so any
// in-flight fetch for the old generation is discarded on completion.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(key)
	e.gen++
	e.value = nil
	e.valid = false
}

// InvalidatePrefix invalidates every key under a resource prefix, the
// way a mutation invalidates all parameterized list keys of its
// resource.
func (s *Store) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		if strings.HasPrefix(key, prefix) {
			e.gen++
			e.value = nil
			e.valid = false
		}
	}
}
