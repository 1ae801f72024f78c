// Package validator checks extracted document data for consistency before it
// enters the profile store. Errors block intake; warnings are surfaced to the
// caller but never block.
package validator

import (
	"fmt"
	"strings"
	"time"

	"yojana/internal/profile/models"
)

// Income above this is flagged for manual review, not rejected.
const implausibleIncomeThreshold = 10_000_000

var knownCategories = map[string]struct{}{
	"GENERAL":  {},
	"OBC":      {},
	"SC":       {},
	"ST":       {},
	"MINORITY": {},
	"EWS":      {},
}

// Validate inspects one extract and returns whether it is acceptable, the
// blocking errors, and non-blocking warnings.
func Validate(extract *models.DocumentExtract, now time.Time) (bool, []string, []string) {
	var errs []string
	var warnings []string

	if extract == nil || len(extract.Fields) == 0 {
		return false, []string{"extract contains no fields"}, nil
	}

	if income, ok := extract.Fields[models.FieldAnnualIncome]; ok && income != nil {
		if value, numeric := models.Float(income); numeric {
			if value < 0 {
				errs = append(errs, "annual_income cannot be negative")
			} else if value > implausibleIncomeThreshold {
				warnings = append(warnings, "annual_income seems unusually high, verify manually")
			}
		} else {
			errs = append(errs, "annual_income is not numeric")
		}
	}

	if marks, ok := extract.Fields[models.FieldMarksPercentage]; ok && marks != nil {
		if value, numeric := models.Float(marks); numeric {
			if value < 0 || value > 100 {
				errs = append(errs, "marks_percentage must be between 0 and 100")
			}
		} else {
			errs = append(errs, "marks_percentage is not numeric")
		}
	}

	if category, ok := extract.Fields[models.FieldCategory]; ok && category != nil {
		if text, isText := category.(string); isText && text != "" {
			if _, known := knownCategories[strings.ToUpper(text)]; !known {
				warnings = append(warnings, fmt.Sprintf("unknown category: %s", strings.ToUpper(text)))
			}
		}
	}

	// Extraction collaborators attach validity dates as an extension key.
	if validTill, ok := extract.Fields["valid_till"]; ok && validTill != nil {
		if text, isText := validTill.(string); isText {
			expiry, err := parseDate(text)
			switch {
			case err != nil:
				warnings = append(warnings, "could not parse validity date")
			case expiry.Before(now):
				errs = append(errs, "document has expired")
			}
		}
	}

	return len(errs) == 0, errs, warnings
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}
