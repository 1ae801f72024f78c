// Package eligibility implements the deterministic decision core: rule
// comparison, per-scheme evaluation, and batch report assembly. Given the
// same profile and catalog it always produces the same verdicts; there is no
// randomness and no model inference anywhere on this path.
package eligibility

import (
	"time"

	profileModel "yojana/internal/profile/models"
	schemeModel "yojana/internal/scheme/models"
	id "yojana/pkg/domain"
)

// Status is the verdict for one subject against one scheme.
type Status string

const (
	StatusEligible         Status = "eligible"
	StatusNotEligible      Status = "not_eligible"
	StatusInsufficientData Status = "insufficient_data"
)

// ReportStatus describes the overall outcome of a batch evaluation.
type ReportStatus string

const (
	ReportStatusOK                ReportStatus = "ok"
	ReportStatusIncompleteProfile ReportStatus = "incomplete_profile"
	ReportStatusNoSchemes         ReportStatus = "no_schemes"
)

// RuleResult records the outcome of one rule against one profile.
type RuleResult struct {
	Field    profileModel.FieldName `json:"field"`
	Operator schemeModel.Operator   `json:"operator"`
	Expected any                    `json:"expected_value"`
	Actual   any                    `json:"actual_value"`
	Matched  bool                   `json:"matched"`
	// Explanation is the rule author's text; Reason is generated from the
	// comparison and is direction-aware.
	Explanation string `json:"explanation,omitempty"`
	Reason      string `json:"reason"`
}

// Result is the full verdict for one subject against one scheme.
type Result struct {
	SubjectID           id.SubjectID `json:"subject_id"`
	SchemeID            id.SchemeID  `json:"scheme_id"`
	SchemeName          string       `json:"scheme_name"`
	Status              Status       `json:"status"`
	Eligible            bool         `json:"eligible"`
	MatchScore          float64      `json:"match_score"`
	MatchedRules        int          `json:"matched_rules"`
	TotalRules          int          `json:"total_rules"`
	Summary             string       `json:"reason"`
	RuleResults         []RuleResult `json:"rule_details"`
	MissingRequirements []string     `json:"missing_requirements"`
	RecalculatedAt      time.Time    `json:"recalculated_at"`
}

// SchemeOutcome is the condensed per-scheme entry in a report.
type SchemeOutcome struct {
	SchemeID id.SchemeID `json:"scheme_id"`
	Name     string      `json:"name"`
	Score    float64     `json:"score"`
	Reason   string      `json:"reason"`
}

// PartialOutcome is a near-miss entry: the scheme was not fully matched but
// scored at or above the partial threshold.
type PartialOutcome struct {
	SchemeOutcome
	Missing []string `json:"missing"`
}

// Report is the batch verdict for one subject across the whole catalog.
type Report struct {
	SubjectID           id.SubjectID     `json:"subject_id"`
	Status              ReportStatus     `json:"status"`
	EligibleSchemes     []SchemeOutcome  `json:"eligible_schemes"`
	PartialMatchSchemes []PartialOutcome `json:"partial_match_schemes"`
	NotEligibleSchemes  []SchemeOutcome  `json:"not_eligible_schemes"`
	OverallScore        float64          `json:"overall_score"`
	MissingRequirements []string         `json:"missing_requirements"`
	NextActions         []string         `json:"next_actions"`
	RecalculatedAt      time.Time        `json:"recalculated_at"`
}
