//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"yojana/internal/platform/postgres"
	profileModel "yojana/internal/profile/models"
	"yojana/internal/scheme/models"
	"yojana/internal/scheme/store"
	id "yojana/pkg/domain"
	"yojana/pkg/platform/sentinel"
	"yojana/pkg/testutil/containers"
)

type PostgresSchemeStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresSchemeStore
}

func TestPostgresSchemeStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSchemeStoreSuite))
}

func (s *PostgresSchemeStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.EnsureSchema(context.Background(), s.postgres.DB))
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresSchemeStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "schemes"))
}

func (s *PostgresSchemeStoreSuite) newScheme(name string, created time.Time) *models.Scheme {
	return &models.Scheme{
		ID:       id.NewSchemeID(),
		Name:     name,
		Provider: "Test Department",
		Rules: []models.Rule{
			{Field: profileModel.FieldCategory, Operator: models.OpIn, Value: []any{"SC", "ST"}},
			{Field: profileModel.FieldAnnualIncome, Operator: models.OpLessOrEqual, Value: float64(250000)},
		},
		CreatedAt: created,
	}
}

func (s *PostgresSchemeStoreSuite) TestSaveAndGetRoundTrip() {
	ctx := context.Background()
	scheme := s.newScheme("Round Trip", time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.Save(ctx, scheme))

	stored, err := s.store.Get(ctx, scheme.ID)
	s.Require().NoError(err)
	s.Equal(scheme.Name, stored.Name)
	s.Require().Len(stored.Rules, 2)
	s.Equal(models.OpIn, stored.Rules[0].Operator)
}

func (s *PostgresSchemeStoreSuite) TestGetUnknownReturnsNotFound() {
	_, err := s.store.Get(context.Background(), id.NewSchemeID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresSchemeStoreSuite) TestSaveUpsertsOnConflict() {
	ctx := context.Background()
	scheme := s.newScheme("Original", time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.Save(ctx, scheme))

	scheme.Name = "Renamed"
	s.Require().NoError(s.store.Save(ctx, scheme))

	stored, err := s.store.Get(ctx, scheme.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", stored.Name)

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *PostgresSchemeStoreSuite) TestListOrderedByCreation() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	second := s.newScheme("Second", base.Add(time.Minute))
	first := s.newScheme("First", base)
	s.Require().NoError(s.store.Save(ctx, second))
	s.Require().NoError(s.store.Save(ctx, first))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("First", all[0].Name)
	s.Equal("Second", all[1].Name)
}
