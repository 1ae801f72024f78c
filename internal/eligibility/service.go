package eligibility

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"yojana/internal/eligibility/metrics"
	id "yojana/pkg/domain"
	strutil "yojana/pkg/platform/strings"
	"yojana/pkg/requestcontext"
)

// Service runs batch and single-scheme evaluations and maintains stored
// verdicts and the report cache.
type Service struct {
	profiles       ProfileSource
	schemes        SchemeSource
	store          Store
	cache          ReportCache
	metrics        *metrics.Metrics
	logger         *slog.Logger
	maxConcurrency int
	tracer         trace.Tracer
}

// New constructs the eligibility service. cache and m may be nil.
func New(
	profiles ProfileSource,
	schemes SchemeSource,
	store Store,
	cache ReportCache,
	m *metrics.Metrics,
	logger *slog.Logger,
	maxConcurrency int,
) *Service {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Service{
		profiles:       profiles,
		schemes:        schemes,
		store:          store,
		cache:          cache,
		metrics:        m,
		logger:         logger,
		maxConcurrency: maxConcurrency,
		tracer:         otel.Tracer("yojana/eligibility"),
	}
}

// Report returns the subject's current report, serving from cache when one is
// present and recomputing otherwise.
func (s *Service) Report(ctx context.Context, subjectID id.SubjectID) (*Report, error) {
	if s.cache != nil {
		report, hit, err := s.cache.Get(ctx, subjectID)
		if err != nil {
			s.logger.WarnContext(ctx, "report cache read failed",
				"subject_id", subjectID.String(),
				"error", err.Error(),
			)
		}
		s.metrics.IncrementCache(hit)
		if hit {
			return report, nil
		}
	}
	return s.Evaluate(ctx, subjectID)
}

// Evaluate recomputes the subject's report against the whole catalog,
// persists every per-scheme verdict, and refreshes the cache. Evaluation is
// deterministic: the same profile and catalog always produce the same report
// apart from the timestamp.
func (s *Service) Evaluate(ctx context.Context, subjectID id.SubjectID) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "eligibility.Evaluate",
		trace.WithAttributes(attribute.String("subject_id", subjectID.String())))
	defer span.End()

	started := time.Now()
	now := requestcontext.Now(ctx).UTC()

	profile, err := s.profiles.Profile(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile.IsEmpty() {
		return &Report{
			SubjectID:           subjectID,
			Status:              ReportStatusIncompleteProfile,
			EligibleSchemes:     []SchemeOutcome{},
			PartialMatchSchemes: []PartialOutcome{},
			NotEligibleSchemes:  []SchemeOutcome{},
			MissingRequirements: []string{"Complete applicant profile"},
			NextActions:         []string{"Upload documents to build your profile"},
			RecalculatedAt:      now,
		}, nil
	}

	schemes, err := s.schemes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schemes: %w", err)
	}
	if len(schemes) == 0 {
		return &Report{
			SubjectID:           subjectID,
			Status:              ReportStatusNoSchemes,
			EligibleSchemes:     []SchemeOutcome{},
			PartialMatchSchemes: []PartialOutcome{},
			NotEligibleSchemes:  []SchemeOutcome{},
			MissingRequirements: []string{"No schemes available"},
			NextActions:         []string{},
			RecalculatedAt:      now,
		}, nil
	}

	// Evaluation is pure per scheme, so schemes fan out concurrently. Results
	// land at their input index to keep report ordering equal to catalog
	// ordering regardless of completion order.
	results := make([]Result, len(schemes))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.maxConcurrency)
	for i, scheme := range schemes {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = EvaluateScheme(&profile, scheme, now)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate schemes: %w", err)
	}

	for i := range results {
		if err := s.store.Upsert(ctx, &results[i]); err != nil {
			return nil, fmt.Errorf("store verdict for scheme %s: %w", results[i].SchemeID, err)
		}
		s.metrics.IncrementOutcome(string(results[i].Status))
	}

	report := s.assembleReport(subjectID, results, now)

	if s.cache != nil {
		if err := s.cache.Set(ctx, report); err != nil {
			s.logger.WarnContext(ctx, "report cache write failed",
				"subject_id", subjectID.String(),
				"error", err.Error(),
			)
		}
	}

	s.metrics.ObserveEvaluateLatency(time.Since(started))
	s.logger.InfoContext(ctx, "eligibility recalculated",
		"request_id", requestcontext.RequestID(ctx),
		"subject_id", subjectID.String(),
		"schemes", len(schemes),
		"eligible", len(report.EligibleSchemes),
		"partial", len(report.PartialMatchSchemes),
	)

	return report, nil
}

// EvaluateAgainstScheme evaluates one subject against one scheme and persists
// the verdict. The stored batch report is untouched.
func (s *Service) EvaluateAgainstScheme(ctx context.Context, subjectID id.SubjectID, schemeID id.SchemeID) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "eligibility.EvaluateAgainstScheme",
		trace.WithAttributes(
			attribute.String("subject_id", subjectID.String()),
			attribute.String("scheme_id", schemeID.String()),
		))
	defer span.End()

	profile, err := s.profiles.Profile(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	scheme, err := s.schemes.Get(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	result := EvaluateScheme(&profile, scheme, requestcontext.Now(ctx).UTC())
	if err := s.store.Upsert(ctx, &result); err != nil {
		return nil, fmt.Errorf("store verdict: %w", err)
	}
	s.metrics.IncrementOutcome(string(result.Status))

	return &result, nil
}

// StoredResults returns the persisted per-scheme verdicts for a subject.
func (s *Service) StoredResults(ctx context.Context, subjectID id.SubjectID) ([]*Result, error) {
	return s.store.ListBySubject(ctx, subjectID)
}

// Invalidate drops the subject's cached report.
func (s *Service) Invalidate(ctx context.Context, subjectID id.SubjectID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, subjectID)
}

func (s *Service) assembleReport(subjectID id.SubjectID, results []Result, now time.Time) *Report {
	report := &Report{
		SubjectID:           subjectID,
		Status:              ReportStatusOK,
		EligibleSchemes:     []SchemeOutcome{},
		PartialMatchSchemes: []PartialOutcome{},
		NotEligibleSchemes:  []SchemeOutcome{},
		RecalculatedAt:      now,
	}

	var scoreSum float64
	var allMissing []string

	for i := range results {
		result := &results[i]
		scoreSum += result.MatchScore
		allMissing = append(allMissing, result.MissingRequirements...)

		outcome := SchemeOutcome{
			SchemeID: result.SchemeID,
			Name:     result.SchemeName,
			Score:    result.MatchScore,
			Reason:   result.Summary,
		}
		switch {
		case result.Eligible:
			report.EligibleSchemes = append(report.EligibleSchemes, outcome)
		case result.MatchScore >= partialMatchThreshold:
			report.PartialMatchSchemes = append(report.PartialMatchSchemes, PartialOutcome{
				SchemeOutcome: outcome,
				Missing:       strutil.Truncate(result.MissingRequirements, maxPartialMissing),
			})
		default:
			report.NotEligibleSchemes = append(report.NotEligibleSchemes, outcome)
		}
	}

	if len(results) > 0 {
		report.OverallScore = scoreSum / float64(len(results))
	}
	report.MissingRequirements = strutil.Truncate(strutil.DedupeAndTrim(allMissing), maxReportMissing)
	report.NextActions = nextActions(len(report.EligibleSchemes), len(report.PartialMatchSchemes))

	return report
}

func nextActions(eligible, partial int) []string {
	var actions []string
	if eligible == 0 && partial == 0 {
		actions = append(actions,
			"Upload additional documents to improve eligibility",
			"Check if family income qualifies for income-based schemes",
			"Contact support for eligibility guidance",
		)
		return actions
	}
	if eligible > 0 {
		actions = append(actions, fmt.Sprintf("Apply for %d eligible scheme(s)", eligible))
	}
	if partial > 0 {
		actions = append(actions, "Complete missing documents for partial matches")
	}
	return actions
}
