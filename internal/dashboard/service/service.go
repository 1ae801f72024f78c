// Package service assembles the applicant dashboard: profile completion,
// submitted documents, and current eligibility standing in one view.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"yojana/internal/eligibility"
	profileModel "yojana/internal/profile/models"
	id "yojana/pkg/domain"
)

// ProfileSource supplies the merged profile and raw documents.
type ProfileSource interface {
	Profile(ctx context.Context, subjectID id.SubjectID) (profileModel.MergedProfile, error)
	Documents(ctx context.Context, subjectID id.SubjectID) ([]*profileModel.DocumentExtract, error)
}

// ResultSource supplies stored eligibility verdicts.
type ResultSource interface {
	StoredResults(ctx context.Context, subjectID id.SubjectID) ([]*eligibility.Result, error)
}

// Dashboard is the aggregate view for one applicant.
type Dashboard struct {
	SubjectID         id.SubjectID                   `json:"subject_id"`
	Profile           profileModel.MergedProfile     `json:"profile"`
	ProfileCompletion float64                        `json:"profile_completion"`
	Documents         []*profileModel.DocumentExtract `json:"documents"`
	Results           []*eligibility.Result          `json:"eligibility_results"`
	EligibleCount     int                            `json:"eligible_count"`
	NextActions       []string                       `json:"next_actions"`
}

// Service builds dashboards.
type Service struct {
	profiles ProfileSource
	results  ResultSource
	logger   *slog.Logger
}

// New creates the dashboard service.
func New(profiles ProfileSource, results ResultSource, logger *slog.Logger) *Service {
	return &Service{profiles: profiles, results: results, logger: logger}
}

// Dashboard assembles the full view for one subject.
func (s *Service) Dashboard(ctx context.Context, subjectID id.SubjectID) (*Dashboard, error) {
	profile, err := s.profiles.Profile(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	documents, err := s.profiles.Documents(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	results, err := s.results.StoredResults(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load eligibility results: %w", err)
	}

	eligibleCount := 0
	for _, result := range results {
		if result.Status == eligibility.StatusEligible {
			eligibleCount++
		}
	}

	if documents == nil {
		documents = []*profileModel.DocumentExtract{}
	}
	if results == nil {
		results = []*eligibility.Result{}
	}

	return &Dashboard{
		SubjectID:         subjectID,
		Profile:           profile,
		ProfileCompletion: profile.Completion(),
		Documents:         documents,
		Results:           results,
		EligibleCount:     eligibleCount,
		NextActions:       nextActions(len(documents), eligibleCount),
	}, nil
}

func nextActions(documentCount, eligibleCount int) []string {
	var actions []string
	if documentCount < 3 {
		actions = append(actions, "Upload more documents for better accuracy")
	}
	if eligibleCount > 0 {
		actions = append(actions, fmt.Sprintf("Apply for %d eligible scheme(s)", eligibleCount))
	} else {
		actions = append(actions, "Complete profile to improve eligibility")
	}
	return actions
}
