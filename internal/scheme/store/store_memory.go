// Package store persists the scheme catalog.
package store

import (
	"context"
	"sync"

	"yojana/internal/scheme/models"
	id "yojana/pkg/domain"
	"yojana/pkg/platform/sentinel"
)

// InMemorySchemeStore keeps schemes in creation order.
type InMemorySchemeStore struct {
	mu      sync.RWMutex
	schemes map[id.SchemeID]*models.Scheme
	order   []id.SchemeID
}

// NewMemory constructs an empty in-memory scheme store.
func NewMemory() *InMemorySchemeStore {
	return &InMemorySchemeStore{
		schemes: make(map[id.SchemeID]*models.Scheme),
	}
}

// Save inserts or replaces a scheme.
func (s *InMemorySchemeStore) Save(_ context.Context, scheme *models.Scheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.schemes[scheme.ID]; !exists {
		s.order = append(s.order, scheme.ID)
	}
	copied := *scheme
	s.schemes[scheme.ID] = &copied
	return nil
}

// Get returns one scheme or sentinel.ErrNotFound.
func (s *InMemorySchemeStore) Get(_ context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *scheme
	return &copied, nil
}

// List returns all schemes in creation order. Evaluation output ordering
// follows catalog ordering, so this must stay stable.
func (s *InMemorySchemeStore) List(_ context.Context) ([]*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Scheme, 0, len(s.order))
	for _, schemeID := range s.order {
		copied := *s.schemes[schemeID]
		out = append(out, &copied)
	}
	return out, nil
}
