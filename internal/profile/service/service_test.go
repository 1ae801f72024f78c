package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yojana/internal/profile/models"
	"yojana/internal/profile/store"
	"yojana/internal/recalc"
	id "yojana/pkg/domain"
	dErrors "yojana/pkg/domain-errors"
	"yojana/pkg/requestcontext"
)

type fakeInvalidator struct {
	invalidated []id.SubjectID
}

func (f *fakeInvalidator) Invalidate(_ context.Context, subjectID id.SubjectID) error {
	f.invalidated = append(f.invalidated, subjectID)
	return nil
}

func newService(t *testing.T) (*Service, *store.InMemoryDocumentStore, *fakeInvalidator) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	docs := store.NewMemory()
	invalidator := &fakeInvalidator{}
	publisher := recalc.NewPublisher(nil, logger)
	return New(docs, publisher, invalidator, logger), docs, invalidator
}

func TestAddDocumentStoresAndStampsExtract(t *testing.T) {
	svc, docs, invalidator := newService(t)
	now := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	subjectID := id.NewSubjectID()
	extract := &models.DocumentExtract{
		SubjectID: subjectID,
		Type:      models.DocumentTypeIncomeCertificate,
		Fields:    map[models.FieldName]any{models.FieldAnnualIncome: 200000.0},
	}

	warnings, err := svc.AddDocument(ctx, extract)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.False(t, extract.ID.IsNil())
	assert.Equal(t, now, extract.UploadedAt)

	stored, err := docs.ListBySubject(ctx, subjectID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, extract.ID, stored[0].ID)

	require.Len(t, invalidator.invalidated, 1)
	assert.Equal(t, subjectID, invalidator.invalidated[0])
}

func TestAddDocumentRejectsInvalidExtract(t *testing.T) {
	svc, docs, _ := newService(t)
	ctx := context.Background()

	subjectID := id.NewSubjectID()
	_, err := svc.AddDocument(ctx, &models.DocumentExtract{
		SubjectID: subjectID,
		Type:      models.DocumentTypeIncomeCertificate,
		Fields:    map[models.FieldName]any{models.FieldAnnualIncome: -500.0},
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	stored, err := docs.ListBySubject(ctx, subjectID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestAddDocumentReturnsWarnings(t *testing.T) {
	svc, _, _ := newService(t)

	warnings, err := svc.AddDocument(context.Background(), &models.DocumentExtract{
		SubjectID: id.NewSubjectID(),
		Type:      models.DocumentTypeCasteCertificate,
		Fields:    map[models.FieldName]any{models.FieldCategory: "nomadic"},
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unknown category")
}

func TestProfileMergesStoredDocuments(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	subjectID := id.NewSubjectID()

	_, err := svc.AddDocument(ctx, &models.DocumentExtract{
		SubjectID: subjectID,
		Type:      models.DocumentTypeIncomeCertificate,
		Fields:    map[models.FieldName]any{models.FieldAnnualIncome: 200000.0},
	})
	require.NoError(t, err)

	_, err = svc.AddDocument(ctx, &models.DocumentExtract{
		SubjectID: subjectID,
		Type:      models.DocumentTypeCasteCertificate,
		Fields: map[models.FieldName]any{
			models.FieldCategory:     "SC",
			models.FieldAnnualIncome: 180000.0,
		},
	})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, 180000.0, profile.Field(models.FieldAnnualIncome))
	assert.Equal(t, "SC", profile.Field(models.FieldCategory))
	assert.False(t, profile.IsComplete)
}

func TestProfileForUnknownSubjectIsEmpty(t *testing.T) {
	svc, _, _ := newService(t)

	profile, err := svc.Profile(context.Background(), id.NewSubjectID())
	require.NoError(t, err)
	assert.True(t, profile.IsEmpty())
}
