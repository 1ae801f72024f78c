package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yojana/internal/eligibility"
	id "yojana/pkg/domain"
)

func result(subjectID id.SubjectID, schemeID id.SchemeID, score float64) *eligibility.Result {
	return &eligibility.Result{
		SubjectID:      subjectID,
		SchemeID:       schemeID,
		SchemeName:     "Scheme",
		Status:         eligibility.StatusNotEligible,
		MatchScore:     score,
		RecalculatedAt: time.Now(),
	}
}

func TestUpsertReplacesExistingVerdict(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	subjectID := id.NewSubjectID()
	schemeID := id.NewSchemeID()

	require.NoError(t, s.Upsert(ctx, result(subjectID, schemeID, 20)))
	require.NoError(t, s.Upsert(ctx, result(subjectID, schemeID, 80)))

	stored, err := s.ListBySubject(ctx, subjectID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.InDelta(t, 80.0, stored[0].MatchScore, 1e-9)
}

func TestListBySubjectIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	a := id.NewSubjectID()
	b := id.NewSubjectID()

	require.NoError(t, s.Upsert(ctx, result(a, id.NewSchemeID(), 10)))
	require.NoError(t, s.Upsert(ctx, result(b, id.NewSchemeID(), 20)))
	require.NoError(t, s.Upsert(ctx, result(b, id.NewSchemeID(), 30)))

	forA, err := s.ListBySubject(ctx, a)
	require.NoError(t, err)
	assert.Len(t, forA, 1)

	forB, err := s.ListBySubject(ctx, b)
	require.NoError(t, err)
	assert.Len(t, forB, 2)
}

func TestConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	subjectID := id.NewSubjectID()

	schemeIDs := make([]id.SchemeID, 20)
	for i := range schemeIDs {
		schemeIDs[i] = id.NewSchemeID()
	}

	var wg sync.WaitGroup
	for round := 0; round < 5; round++ {
		for _, schemeID := range schemeIDs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Upsert(ctx, result(subjectID, schemeID, float64(round)))
			}()
		}
	}
	wg.Wait()

	stored, err := s.ListBySubject(ctx, subjectID)
	require.NoError(t, err)
	assert.Len(t, stored, len(schemeIDs), fmt.Sprintf("expected one verdict per scheme, got %d", len(stored)))
}
