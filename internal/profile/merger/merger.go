// Package merger combines per-document field extracts into one canonical
// profile. The precedence model is deliberately simple: documents are
// processed in caller order and the most recent non-null value wins per field.
// Switching to highest-confidence-wins would change observable outputs and is
// not an option here.
package merger

import (
	"yojana/internal/profile/models"
	id "yojana/pkg/domain"
)

// Merge folds extracts into a MergedProfile. Confidence is the arithmetic
// mean over documents that carry a confidence value and contributed at least
// one non-null field; documents without a confidence are excluded from the
// mean, not treated as zero.
func Merge(subjectID id.SubjectID, extracts []*models.DocumentExtract) models.MergedProfile {
	profile := models.MergedProfile{
		SubjectID: subjectID,
		Fields:    make(map[models.FieldName]any),
		Sources:   make(map[models.FieldName]id.DocumentID),
	}

	var confidenceSum float64
	var confidenceCount int

	for _, extract := range extracts {
		if extract == nil || len(extract.Fields) == 0 {
			continue
		}

		contributed := false
		for _, field := range models.KnownFields() {
			value, ok := extract.Fields[field]
			if !ok || value == nil {
				continue
			}
			profile.Fields[field] = value
			profile.Sources[field] = extract.ID
			contributed = true
		}

		// Extension keys merge under the same last-non-null-wins rule.
		for field, value := range extract.Fields {
			if field.IsKnown() || value == nil {
				continue
			}
			profile.Fields[field] = value
			profile.Sources[field] = extract.ID
			contributed = true
		}

		if contributed && extract.Confidence != nil {
			confidenceSum += *extract.Confidence
			confidenceCount++
		}
	}

	if confidenceCount > 0 {
		profile.Confidence = confidenceSum / float64(confidenceCount)
	}

	profile.MissingFields = missingRequired(profile.Fields)
	profile.IsComplete = len(profile.MissingFields) == 0

	return profile
}

func missingRequired(fields map[models.FieldName]any) []models.FieldName {
	missing := make([]models.FieldName, 0)
	for _, field := range models.RequiredFields() {
		if value, ok := fields[field]; !ok || value == nil {
			missing = append(missing, field)
		}
	}
	return missing
}
