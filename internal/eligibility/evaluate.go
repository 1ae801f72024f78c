package eligibility

import (
	"fmt"
	"time"

	profileModel "yojana/internal/profile/models"
	schemeModel "yojana/internal/scheme/models"
)

// EvaluateScheme runs every rule of one scheme against one profile. All rules
// must match for eligibility; there is no partial credit at this level, only
// the match score. An empty profile or an empty rule list yields
// insufficient_data rather than a hard failure.
func EvaluateScheme(profile *profileModel.MergedProfile, scheme *schemeModel.Scheme, now time.Time) Result {
	result := Result{
		SubjectID:      profile.SubjectID,
		SchemeID:       scheme.ID,
		SchemeName:     scheme.Name,
		RecalculatedAt: now,
	}

	if profile.IsEmpty() || len(scheme.Rules) == 0 {
		result.Status = StatusInsufficientData
		result.Summary = "Missing profile data or scheme rules"
		result.RuleResults = []RuleResult{}
		result.MissingRequirements = []string{}
		return result
	}

	matched := 0
	ruleResults := make([]RuleResult, 0, len(scheme.Rules))
	missing := make([]string, 0)

	for _, rule := range scheme.Rules {
		actual := profile.Field(rule.Field)
		ok := Compare(actual, rule.Operator, rule.Value)
		reason := Explain(rule.Field, actual, rule.Operator, rule.Value, ok)

		ruleResults = append(ruleResults, RuleResult{
			Field:       rule.Field,
			Operator:    rule.Operator,
			Expected:    rule.Value,
			Actual:      actual,
			Matched:     ok,
			Explanation: rule.Explanation,
			Reason:      reason,
		})

		if ok {
			matched++
		} else {
			missing = append(missing, fmt.Sprintf("%s: %s", rule.Field, reason))
		}
	}

	total := len(scheme.Rules)
	result.MatchedRules = matched
	result.TotalRules = total
	result.MatchScore = float64(matched) / float64(total) * 100
	result.Eligible = matched == total
	result.RuleResults = ruleResults
	result.MissingRequirements = missing

	if result.Eligible {
		result.Status = StatusEligible
		result.Summary = fmt.Sprintf("All %d eligibility criteria met", total)
	} else {
		result.Status = StatusNotEligible
		result.Summary = fmt.Sprintf("Failed %d out of %d criteria", total-matched, total)
	}

	return result
}
