// Package store persists per-scheme eligibility verdicts.
package store

import (
	"context"
	"sync"

	"yojana/internal/eligibility"
	id "yojana/pkg/domain"
)

type resultKey struct {
	subjectID id.SubjectID
	schemeID  id.SchemeID
}

// InMemoryResultStore keeps verdicts keyed by (subject, scheme).
type InMemoryResultStore struct {
	mu      sync.RWMutex
	results map[resultKey]*eligibility.Result
	order   map[id.SubjectID][]id.SchemeID
}

// NewMemory constructs an empty in-memory result store.
func NewMemory() *InMemoryResultStore {
	return &InMemoryResultStore{
		results: make(map[resultKey]*eligibility.Result),
		order:   make(map[id.SubjectID][]id.SchemeID),
	}
}

// Upsert inserts or replaces the verdict for one (subject, scheme) pair.
// Re-evaluation overwrites; verdicts never accumulate.
func (s *InMemoryResultStore) Upsert(_ context.Context, result *eligibility.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := resultKey{subjectID: result.SubjectID, schemeID: result.SchemeID}
	if _, exists := s.results[key]; !exists {
		s.order[result.SubjectID] = append(s.order[result.SubjectID], result.SchemeID)
	}
	copied := *result
	s.results[key] = &copied
	return nil
}

// ListBySubject returns the subject's verdicts in first-evaluation order.
func (s *InMemoryResultStore) ListBySubject(_ context.Context, subjectID id.SubjectID) ([]*eligibility.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schemeIDs := s.order[subjectID]
	out := make([]*eligibility.Result, 0, len(schemeIDs))
	for _, schemeID := range schemeIDs {
		copied := *s.results[resultKey{subjectID: subjectID, schemeID: schemeID}]
		out = append(out, &copied)
	}
	return out, nil
}
