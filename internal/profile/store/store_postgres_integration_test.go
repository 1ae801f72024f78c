//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"yojana/internal/platform/postgres"
	"yojana/internal/profile/models"
	"yojana/internal/profile/store"
	id "yojana/pkg/domain"
	"yojana/pkg/testutil/containers"
)

type PostgresDocumentStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresDocumentStore
}

func TestPostgresDocumentStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresDocumentStoreSuite))
}

func (s *PostgresDocumentStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.EnsureSchema(context.Background(), s.postgres.DB))
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresDocumentStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "document_extracts"))
}

func (s *PostgresDocumentStoreSuite) TestSaveAndListRoundTrip() {
	ctx := context.Background()
	subjectID := id.NewSubjectID()
	confidence := 0.85

	extract := &models.DocumentExtract{
		ID:        id.NewDocumentID(),
		SubjectID: subjectID,
		Type:      models.DocumentTypeIncomeCertificate,
		Fields: map[models.FieldName]any{
			models.FieldAnnualIncome: 200000.0,
			models.FieldFullName:     "Asha Kumari",
		},
		Confidence: &confidence,
		Warnings:   []string{"annual_income seems unusually high, verify manually"},
		UploadedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	s.Require().NoError(s.store.Save(ctx, extract))

	stored, err := s.store.ListBySubject(ctx, subjectID)
	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.Equal(extract.ID, stored[0].ID)
	s.Equal(models.DocumentTypeIncomeCertificate, stored[0].Type)
	s.Equal("Asha Kumari", stored[0].Fields[models.FieldFullName])
	s.Require().NotNil(stored[0].Confidence)
	s.InDelta(0.85, *stored[0].Confidence, 1e-9)
	s.Equal(extract.Warnings, stored[0].Warnings)
}

func (s *PostgresDocumentStoreSuite) TestListOrderedByUpload() {
	ctx := context.Background()
	subjectID := id.NewSubjectID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	late := &models.DocumentExtract{
		ID:         id.NewDocumentID(),
		SubjectID:  subjectID,
		Type:       models.DocumentTypeCasteCertificate,
		Fields:     map[models.FieldName]any{models.FieldCategory: "SC"},
		UploadedAt: base.Add(time.Hour),
	}
	early := &models.DocumentExtract{
		ID:         id.NewDocumentID(),
		SubjectID:  subjectID,
		Type:       models.DocumentTypeIDProof,
		Fields:     map[models.FieldName]any{models.FieldFullName: "Asha"},
		UploadedAt: base,
	}
	s.Require().NoError(s.store.Save(ctx, late))
	s.Require().NoError(s.store.Save(ctx, early))

	stored, err := s.store.ListBySubject(ctx, subjectID)
	s.Require().NoError(err)
	s.Require().Len(stored, 2)
	s.Equal(early.ID, stored[0].ID)
	s.Equal(late.ID, stored[1].ID)
}

func (s *PostgresDocumentStoreSuite) TestListSubjects() {
	ctx := context.Background()
	a := id.NewSubjectID()
	b := id.NewSubjectID()

	for _, subjectID := range []id.SubjectID{a, b, a} {
		s.Require().NoError(s.store.Save(ctx, &models.DocumentExtract{
			ID:         id.NewDocumentID(),
			SubjectID:  subjectID,
			Type:       models.DocumentTypeOther,
			Fields:     map[models.FieldName]any{models.FieldFullName: "x"},
			UploadedAt: time.Now().UTC(),
		}))
	}

	subjects, err := s.store.ListSubjects(ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]id.SubjectID{a, b}, subjects)
}
