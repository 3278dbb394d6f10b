// Package store provides the in-memory keyed collections that own all stored
// records. One Store instance exists per resource type and serializes every
// compound read-modify-write under a single mutex.
package store

import (
	"sync"

	"github.com/google/uuid"
)

// Store is a thread-safe in-memory collection keyed by id. Listing preserves
// insertion order for the lifetime of the process.
type Store[T any] struct {
	mu      sync.Mutex
	records map[uuid.UUID]T
	order   []uuid.UUID
}

// New creates an empty Store.
func New[T any]() *Store[T] {
	return &Store[T]{records: make(map[uuid.UUID]T)}
}

// Get retrieves a record by id.
func (s *Store[T]) Get(id uuid.UUID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	return rec, ok
}

// List returns all records in insertion order.
func (s *Store[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]T, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.records[id])
	}
	return result
}

// Put inserts or overwrites a record by id.
func (s *Store[T]) Put(id uuid.UUID, rec T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(id, rec)
}

// Delete removes a record. Returns false if the id is absent.
func (s *Store[T]) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// GetOrInsert scans for a record matching match and returns it if found.
// Otherwise it inserts the record minted by mint and returns it with
// created=true. The scan and insert happen under one lock so two concurrent
// creations with the same natural key cannot both proceed.
func (s *Store[T]) GetOrInsert(match func(T) bool, mint func() (uuid.UUID, T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		if match(s.records[id]) {
			return s.records[id], false
		}
	}
	id, rec := mint()
	s.put(id, rec)
	return rec, true
}

// Mutate applies apply to the record under the store lock and writes the
// result back, so a delete cannot interleave with an in-flight update.
// Returns false if the id is absent.
func (s *Store[T]) Mutate(id uuid.UUID, apply func(*T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	apply(&rec)
	s.records[id] = rec
	return rec, true
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store[T]) put(id uuid.UUID, rec T) {
	if _, ok := s.records[id]; !ok {
		s.order = append(s.order, id)
	}
	s.records[id] = rec
}
