package eligibility_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yojana/internal/eligibility"
	"yojana/internal/eligibility/store"
	profileModel "yojana/internal/profile/models"
	schemeModel "yojana/internal/scheme/models"
	id "yojana/pkg/domain"
	"yojana/pkg/platform/sentinel"
	"yojana/pkg/requestcontext"
)

var batchTime = time.Date(2026, time.April, 2, 8, 30, 0, 0, time.UTC)

type fakeProfiles struct {
	profile profileModel.MergedProfile
}

func (f *fakeProfiles) Profile(_ context.Context, subjectID id.SubjectID) (profileModel.MergedProfile, error) {
	p := f.profile
	p.SubjectID = subjectID
	return p, nil
}

type fakeSchemes struct {
	schemes []*schemeModel.Scheme
}

func (f *fakeSchemes) Get(_ context.Context, schemeID id.SchemeID) (*schemeModel.Scheme, error) {
	for _, scheme := range f.schemes {
		if scheme.ID == schemeID {
			return scheme, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (f *fakeSchemes) List(context.Context) ([]*schemeModel.Scheme, error) {
	return f.schemes, nil
}

type fakeCache struct {
	reports map[id.SubjectID]*eligibility.Report
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{reports: make(map[id.SubjectID]*eligibility.Report)}
}

func (f *fakeCache) Get(_ context.Context, subjectID id.SubjectID) (*eligibility.Report, bool, error) {
	report, ok := f.reports[subjectID]
	return report, ok, nil
}

func (f *fakeCache) Set(_ context.Context, report *eligibility.Report) error {
	f.sets++
	f.reports[report.SubjectID] = report
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, subjectID id.SubjectID) error {
	delete(f.reports, subjectID)
	return nil
}

// schemeScoring builds a scheme with total rules of which matched will pass
// against a profile holding category SC and annual income 200000.
func schemeScoring(name string, matched, total int) *schemeModel.Scheme {
	rules := make([]schemeModel.Rule, 0, total)
	for i := 0; i < matched; i++ {
		rules = append(rules, schemeModel.Rule{
			Field:    profileModel.FieldCategory,
			Operator: schemeModel.OpIn,
			Value:    []any{"SC", fmt.Sprintf("PAD%d", i)},
		})
	}
	for i := matched; i < total; i++ {
		rules = append(rules, schemeModel.Rule{
			Field:    profileModel.FieldAnnualIncome,
			Operator: schemeModel.OpGreater,
			Value:    1000000 + i,
		})
	}
	return &schemeModel.Scheme{
		ID:       id.NewSchemeID(),
		Name:     name,
		Provider: "Test Department",
		Rules:    rules,
	}
}

func scoringProfile() profileModel.MergedProfile {
	return profileModel.MergedProfile{
		Fields: map[profileModel.FieldName]any{
			profileModel.FieldCategory:     "SC",
			profileModel.FieldAnnualIncome: 200000.0,
		},
	}
}

func newEngine(profile profileModel.MergedProfile, schemes []*schemeModel.Scheme, cache eligibility.ReportCache) (*eligibility.Service, *store.InMemoryResultStore) {
	results := store.NewMemory()
	svc := eligibility.New(
		&fakeProfiles{profile: profile},
		&fakeSchemes{schemes: schemes},
		results,
		cache,
		nil,
		slog.New(slog.DiscardHandler),
		8,
	)
	return svc, results
}

func TestEvaluateBatchCategorization(t *testing.T) {
	schemes := []*schemeModel.Scheme{
		schemeScoring("Full Match", 5, 5),
		schemeScoring("Near Miss", 3, 5),
		schemeScoring("Poor Match", 1, 5),
	}
	svc, results := newEngine(scoringProfile(), schemes, nil)
	ctx := requestcontext.WithTime(context.Background(), batchTime)
	subjectID := id.NewSubjectID()

	report, err := svc.Evaluate(ctx, subjectID)
	require.NoError(t, err)

	assert.Equal(t, eligibility.ReportStatusOK, report.Status)
	require.Len(t, report.EligibleSchemes, 1)
	require.Len(t, report.PartialMatchSchemes, 1)
	require.Len(t, report.NotEligibleSchemes, 1)
	assert.Equal(t, "Full Match", report.EligibleSchemes[0].Name)
	assert.Equal(t, "Near Miss", report.PartialMatchSchemes[0].Name)
	assert.Equal(t, "Poor Match", report.NotEligibleSchemes[0].Name)
	assert.InDelta(t, 60.0, report.OverallScore, 1e-9)
	assert.Equal(t, batchTime, report.RecalculatedAt)

	stored, err := results.ListBySubject(ctx, subjectID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	assert.Equal(t, []string{
		"Apply for 1 eligible scheme(s)",
		"Complete missing documents for partial matches",
	}, report.NextActions)
}

func TestEvaluateEmptyProfile(t *testing.T) {
	svc, _ := newEngine(profileModel.MergedProfile{}, []*schemeModel.Scheme{schemeScoring("A", 1, 1)}, nil)

	report, err := svc.Evaluate(context.Background(), id.NewSubjectID())
	require.NoError(t, err)

	assert.Equal(t, eligibility.ReportStatusIncompleteProfile, report.Status)
	assert.Zero(t, report.OverallScore)
	assert.Empty(t, report.EligibleSchemes)
	assert.Equal(t, []string{"Complete applicant profile"}, report.MissingRequirements)
}

func TestEvaluateNoSchemes(t *testing.T) {
	svc, _ := newEngine(scoringProfile(), nil, nil)

	report, err := svc.Evaluate(context.Background(), id.NewSubjectID())
	require.NoError(t, err)

	assert.Equal(t, eligibility.ReportStatusNoSchemes, report.Status)
	assert.Equal(t, []string{"No schemes available"}, report.MissingRequirements)
}

func TestEvaluateOrderingUnderConcurrency(t *testing.T) {
	var schemes []*schemeModel.Scheme
	for i := 0; i < 40; i++ {
		schemes = append(schemes, schemeScoring(fmt.Sprintf("Scheme %02d", i), 1, 5))
	}
	svc, _ := newEngine(scoringProfile(), schemes, nil)

	report, err := svc.Evaluate(context.Background(), id.NewSubjectID())
	require.NoError(t, err)

	require.Len(t, report.NotEligibleSchemes, 40)
	for i, outcome := range report.NotEligibleSchemes {
		assert.Equal(t, fmt.Sprintf("Scheme %02d", i), outcome.Name)
	}
}

func TestEvaluatePartialMissingCapped(t *testing.T) {
	// 4 of 8 rules match: score 50, four distinct missing lines.
	schemes := []*schemeModel.Scheme{schemeScoring("Half", 4, 8)}
	svc, _ := newEngine(scoringProfile(), schemes, nil)

	report, err := svc.Evaluate(context.Background(), id.NewSubjectID())
	require.NoError(t, err)

	require.Len(t, report.PartialMatchSchemes, 1)
	assert.Len(t, report.PartialMatchSchemes[0].Missing, 3)
}

func TestEvaluateReportMissingDedupedAndCapped(t *testing.T) {
	// Two identical schemes produce identical missing lines; a third adds
	// many distinct ones.
	schemes := []*schemeModel.Scheme{
		schemeScoring("Twin A", 0, 2),
		schemeScoring("Twin B", 0, 2),
		schemeScoring("Wide", 0, 15),
	}
	svc, _ := newEngine(scoringProfile(), schemes, nil)

	report, err := svc.Evaluate(context.Background(), id.NewSubjectID())
	require.NoError(t, err)

	assert.Len(t, report.MissingRequirements, 10)
	seen := make(map[string]struct{})
	for _, line := range report.MissingRequirements {
		_, dup := seen[line]
		assert.False(t, dup, line)
		seen[line] = struct{}{}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	schemes := []*schemeModel.Scheme{
		schemeScoring("A", 2, 2),
		schemeScoring("B", 1, 2),
	}
	svc, results := newEngine(scoringProfile(), schemes, nil)
	ctx := requestcontext.WithTime(context.Background(), batchTime)
	subjectID := id.NewSubjectID()

	first, err := svc.Evaluate(ctx, subjectID)
	require.NoError(t, err)
	second, err := svc.Evaluate(ctx, subjectID)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	stored, err := results.ListBySubject(ctx, subjectID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestReportServedFromCache(t *testing.T) {
	cache := newFakeCache()
	schemes := []*schemeModel.Scheme{schemeScoring("A", 1, 1)}
	svc, _ := newEngine(scoringProfile(), schemes, cache)
	ctx := requestcontext.WithTime(context.Background(), batchTime)
	subjectID := id.NewSubjectID()

	first, err := svc.Report(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Report(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, first, second)

	require.NoError(t, svc.Invalidate(ctx, subjectID))
	_, err = svc.Report(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}

func TestEvaluateAgainstScheme(t *testing.T) {
	target := schemeScoring("Target", 2, 2)
	svc, results := newEngine(scoringProfile(), []*schemeModel.Scheme{target}, nil)
	ctx := requestcontext.WithTime(context.Background(), batchTime)
	subjectID := id.NewSubjectID()

	result, err := svc.EvaluateAgainstScheme(ctx, subjectID, target.ID)
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Equal(t, target.ID, result.SchemeID)

	stored, err := results.ListBySubject(ctx, subjectID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestEvaluateAgainstUnknownScheme(t *testing.T) {
	svc, _ := newEngine(scoringProfile(), nil, nil)

	_, err := svc.EvaluateAgainstScheme(context.Background(), id.NewSubjectID(), id.NewSchemeID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
