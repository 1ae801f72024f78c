package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profileModel "yojana/internal/profile/models"
	"yojana/internal/recalc"
	"yojana/internal/scheme/models"
	"yojana/internal/scheme/store"
	id "yojana/pkg/domain"
	dErrors "yojana/pkg/domain-errors"
)

type fakeSubjects struct {
	subjects []id.SubjectID
}

func (f *fakeSubjects) Subjects(context.Context) ([]id.SubjectID, error) {
	return f.subjects, nil
}

func newService() (*Service, *store.InMemorySchemeStore) {
	logger := slog.New(slog.DiscardHandler)
	schemes := store.NewMemory()
	subjects := &fakeSubjects{subjects: []id.SubjectID{id.NewSubjectID()}}
	return New(schemes, subjects, recalc.NewPublisher(nil, logger), logger), schemes
}

func TestCreateAssignsIDAndStores(t *testing.T) {
	svc, schemes := newService()
	ctx := context.Background()

	scheme := &models.Scheme{
		Name:     "Test Scholarship",
		Provider: "Test Department",
		Rules: []models.Rule{
			{Field: profileModel.FieldGender, Operator: models.OpEqual, Value: "female"},
		},
	}
	require.NoError(t, svc.Create(ctx, scheme))
	assert.False(t, scheme.ID.IsNil())
	assert.False(t, scheme.CreatedAt.IsZero())

	stored, err := schemes.Get(ctx, scheme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Scholarship", stored.Name)
}

func TestCreateRejectsInvalidScheme(t *testing.T) {
	svc, schemes := newService()
	ctx := context.Background()

	tests := []struct {
		name   string
		scheme *models.Scheme
	}{
		{"empty name", &models.Scheme{Provider: "X"}},
		{"empty provider", &models.Scheme{Name: "X"}},
		{"unknown operator", &models.Scheme{
			Name: "X", Provider: "Y",
			Rules: []models.Rule{{Field: profileModel.FieldGender, Operator: "~=", Value: "female"}},
		}},
		{"null rule value", &models.Scheme{
			Name: "X", Provider: "Y",
			Rules: []models.Rule{{Field: profileModel.FieldGender, Operator: models.OpEqual}},
		}},
		{"in without list", &models.Scheme{
			Name: "X", Provider: "Y",
			Rules: []models.Rule{{Field: profileModel.FieldCategory, Operator: models.OpIn, Value: "SC"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, tt.scheme)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}

	stored, err := schemes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestListReturnsCreationOrder(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for _, name := range []string{"A", "B"} {
		require.NoError(t, svc.Create(ctx, &models.Scheme{Name: name, Provider: "P"}))
	}

	schemes, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, schemes, 2)
	assert.Equal(t, "A", schemes[0].Name)
	assert.Equal(t, "B", schemes[1].Name)
}
