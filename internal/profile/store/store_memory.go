// Package store persists document extracts. The in-memory implementation
// keeps development and tests lightweight; PostgreSQL backs production.
package store

import (
	"context"
	"sort"
	"sync"

	"yojana/internal/profile/models"
	id "yojana/pkg/domain"
)

// InMemoryDocumentStore keeps extracts per subject in upload order.
type InMemoryDocumentStore struct {
	mu       sync.RWMutex
	extracts map[id.SubjectID][]*models.DocumentExtract
}

// NewMemory constructs an empty in-memory document store.
func NewMemory() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		extracts: make(map[id.SubjectID][]*models.DocumentExtract),
	}
}

// Save appends one extract to the subject's document sequence.
func (s *InMemoryDocumentStore) Save(_ context.Context, extract *models.DocumentExtract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *extract
	s.extracts[extract.SubjectID] = append(s.extracts[extract.SubjectID], &copied)
	return nil
}

// ListBySubject returns the subject's extracts in upload order. The merge
// precedence model depends on this ordering.
func (s *InMemoryDocumentStore) ListBySubject(_ context.Context, subjectID id.SubjectID) ([]*models.DocumentExtract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.extracts[subjectID]
	out := make([]*models.DocumentExtract, 0, len(stored))
	for _, extract := range stored {
		copied := *extract
		out = append(out, &copied)
	}
	return out, nil
}

// ListSubjects returns every subject with at least one extract, in stable
// order so batch recalculation is reproducible.
func (s *InMemoryDocumentStore) ListSubjects(_ context.Context) ([]id.SubjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subjects := make([]id.SubjectID, 0, len(s.extracts))
	for subjectID := range s.extracts {
		subjects = append(subjects, subjectID)
	}
	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].String() < subjects[j].String()
	})
	return subjects, nil
}
