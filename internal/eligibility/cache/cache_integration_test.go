//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"yojana/internal/eligibility"
	"yojana/internal/eligibility/cache"
	"yojana/internal/platform/config"
	"yojana/internal/platform/redis"
	id "yojana/pkg/domain"
	"yojana/pkg/testutil/containers"
)

type ReportCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.ReportCache
}

func TestReportCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ReportCacheSuite))
}

func (s *ReportCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())

	client, err := redis.New(context.Background(), config.Redis{
		URL:          s.redis.URL,
		PoolSize:     5,
		MinIdleConns: 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	s.Require().NoError(err)
	s.cache = cache.New(client, time.Minute)
}

func (s *ReportCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *ReportCacheSuite) report(subjectID id.SubjectID) *eligibility.Report {
	return &eligibility.Report{
		SubjectID: subjectID,
		Status:    eligibility.ReportStatusOK,
		EligibleSchemes: []eligibility.SchemeOutcome{
			{SchemeID: id.NewSchemeID(), Name: "Scheme A", Score: 100, Reason: "All 2 eligibility criteria met"},
		},
		PartialMatchSchemes: []eligibility.PartialOutcome{},
		NotEligibleSchemes:  []eligibility.SchemeOutcome{},
		OverallScore:        100,
		MissingRequirements: []string{},
		NextActions:         []string{"Apply for 1 eligible scheme(s)"},
		RecalculatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func (s *ReportCacheSuite) TestSetGetRoundTrip() {
	ctx := context.Background()
	subjectID := id.NewSubjectID()
	report := s.report(subjectID)

	s.Require().NoError(s.cache.Set(ctx, report))

	cached, hit, err := s.cache.Get(ctx, subjectID)
	s.Require().NoError(err)
	s.Require().True(hit)
	s.Equal(report, cached)
}

func (s *ReportCacheSuite) TestGetMiss() {
	_, hit, err := s.cache.Get(context.Background(), id.NewSubjectID())
	s.Require().NoError(err)
	s.False(hit)
}

func (s *ReportCacheSuite) TestInvalidate() {
	ctx := context.Background()
	subjectID := id.NewSubjectID()
	s.Require().NoError(s.cache.Set(ctx, s.report(subjectID)))

	s.Require().NoError(s.cache.Invalidate(ctx, subjectID))

	_, hit, err := s.cache.Get(ctx, subjectID)
	s.Require().NoError(err)
	s.False(hit)
}
