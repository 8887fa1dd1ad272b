// Package selection holds the ordered, duplicate-free set of products a
// visitor has picked from the catalog.
package selection

import (
	"routine-advisor-be/internal/entity"
)

// Store keeps products in insertion order keyed by their derived key.
// It is not safe for concurrent use; callers serialize access.
type Store struct {
	items []entity.Product
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) indexOf(key string) int {
	for i, p := range s.items {
		if p.Key == key {
			return i
		}
	}
	return -1
}

// Toggle removes p when its key is present and appends it otherwise.
// It reports whether p is selected afterwards.
func (s *Store) Toggle(p entity.Product) bool {
	p = p.WithKey()
	if i := s.indexOf(p.Key); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		return false
	}
	s.items = append(s.items, p)
	return true
}

// Remove deletes the entry with key. It reports whether anything was removed.
func (s *Store) Remove(key string) bool {
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *Store) Clear() {
	s.items = nil
}

// Restore replaces the contents with a persisted snapshot. Entries without a
// key get one from id-or-name; later duplicates are dropped.
func (s *Store) Restore(snapshot []entity.Product) {
	s.items = make([]entity.Product, 0, len(snapshot))
	for _, p := range snapshot {
		p = p.WithKey()
		if s.indexOf(p.Key) >= 0 {
			continue
		}
		s.items = append(s.items, p)
	}
}

// Snapshot returns a copy of the entries in insertion order.
func (s *Store) Snapshot() []entity.Product {
	out := make([]entity.Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Contains(key string) bool {
	return s.indexOf(key) >= 0
}

func (s *Store) Keys() []string {
	keys := make([]string, len(s.items))
	for i, p := range s.items {
		keys[i] = p.Key
	}
	return keys
}

func (s *Store) Len() int {
	return len(s.items)
}
