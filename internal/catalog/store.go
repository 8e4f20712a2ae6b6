// Package catalog holds the in-memory ordered collection of canonical products.
package catalog

import (
	"sync"

	"github.com/starford/pasarela/internal/models"
	"github.com/starford/pasarela/internal/normalize"
)

// Store is an ordered set of products keyed by id. New products are
// prepended, edited products keep their position. Readers get deep copies,
// so a snapshot never changes under its holder.
type Store struct {
	mu    sync.RWMutex
	items []models.Product
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Load replaces the contents with the normalized records, preserving input
// order. A record whose id repeats an earlier one gets a fresh id so that no
// entry is lost.
func (s *Store) Load(raws []models.Record) {
	items := normalize.NormalizeAll(raws)
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		if _, dup := seen[items[i].ID]; dup {
			items[i].ID = freshID(seen)
		}
		seen[items[i].ID] = struct{}{}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Upsert replaces the product with the same id in place, or prepends p when
// the id is new.
func (s *Store) Upsert(p models.Product) {
	p = p.Clone()
	if p.ID == "" {
		p.ID = normalize.NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i] = p
		return
	}
	s.items = append([]models.Product{p}, s.items...)
}

// Remove deletes the product with id and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return true
}

// List returns a snapshot of every product in store order.
func (s *Store) List() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.items))
	for i, p := range s.items {
		out[i] = p.Clone()
	}
	return out
}

// Find returns the product with id.
func (s *Store) Find(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	return models.Product{}, false
}

// Len returns the number of products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func freshID(taken map[string]struct{}) string {
	for {
		id := normalize.NewID()
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}
