package store

import (
	"context"
	"fmt"
	"time"

	profileModel "yojana/internal/profile/models"
	"yojana/internal/scheme/models"
	id "yojana/pkg/domain"
)

// Seed loads a starter catalog into an empty store so development and demo
// environments have schemes to evaluate against. Production catalogs are
// managed through the admin API.
func Seed(ctx context.Context, store *InMemorySchemeStore, now time.Time) error {
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("seed schemes: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, scheme := range defaultSchemes(now) {
		if err := store.Save(ctx, scheme); err != nil {
			return fmt.Errorf("seed scheme %s: %w", scheme.Name, err)
		}
	}
	return nil
}

func defaultSchemes(now time.Time) []*models.Scheme {
	return []*models.Scheme{
		{
			ID:       id.NewSchemeID(),
			Name:     "Post Matric Scholarship for SC Students",
			Provider: "Ministry of Social Justice and Empowerment",
			Rules: []models.Rule{
				{
					Field:       profileModel.FieldCategory,
					Operator:    models.OpEqual,
					Value:       "SC",
					Explanation: "Applicant must belong to the Scheduled Caste category",
				},
				{
					Field:       profileModel.FieldAnnualIncome,
					Operator:    models.OpLessOrEqual,
					Value:       250000,
					Explanation: "Family income must not exceed 2.5 lakh per annum",
				},
			},
			CreatedAt: now,
		},
		{
			ID:       id.NewSchemeID(),
			Name:     "Merit-cum-Means Scholarship for Minorities",
			Provider: "Ministry of Minority Affairs",
			Rules: []models.Rule{
				{
					Field:       profileModel.FieldCategory,
					Operator:    models.OpEqual,
					Value:       "MINORITY",
					Explanation: "Applicant must belong to a notified minority community",
				},
				{
					Field:       profileModel.FieldAnnualIncome,
					Operator:    models.OpLess,
					Value:       250000,
					Explanation: "Family income must be below 2.5 lakh per annum",
				},
				{
					Field:       profileModel.FieldMarksPercentage,
					Operator:    models.OpGreaterOrEqual,
					Value:       50,
					Explanation: "At least 50% marks in the previous final examination",
				},
			},
			CreatedAt: now,
		},
		{
			ID:       id.NewSchemeID(),
			Name:     "Mukhyamantri Kanya Utthan Yojana",
			Provider: "Government of Bihar",
			Rules: []models.Rule{
				{
					Field:       profileModel.FieldGender,
					Operator:    models.OpEqual,
					Value:       "female",
					Explanation: "Scheme is open to female applicants only",
				},
				{
					Field:       profileModel.FieldDomicileState,
					Operator:    models.OpEqual,
					Value:       "Bihar",
					Explanation: "Applicant must be domiciled in Bihar",
				},
			},
			CreatedAt: now,
		},
		{
			ID:       id.NewSchemeID(),
			Name:     "Central Sector Scheme of Scholarships",
			Provider: "Department of Higher Education",
			Rules: []models.Rule{
				{
					Field:       profileModel.FieldCategory,
					Operator:    models.OpIn,
					Value:       []any{"GENERAL", "OBC", "SC", "ST"},
					Explanation: "Open to all categories",
				},
				{
					Field:       profileModel.FieldMarksPercentage,
					Operator:    models.OpGreater,
					Value:       80,
					Explanation: "Above 80th percentile in the qualifying examination",
				},
				{
					Field:       profileModel.FieldAnnualIncome,
					Operator:    models.OpLessOrEqual,
					Value:       450000,
					Explanation: "Family income must not exceed 4.5 lakh per annum",
				},
			},
			CreatedAt: now,
		},
	}
}
