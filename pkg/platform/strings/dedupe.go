// Package strings provides small string-slice utilities shared by the
// eligibility aggregation code.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice, trimming
// whitespace from each element. Order of first appearance is preserved, which
// matters for deterministic missing-requirement lists.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// Truncate returns at most max elements of values without copying when the
// slice is already short enough.
func Truncate(values []string, max int) []string {
	if max < 0 || len(values) <= max {
		return values
	}
	return values[:max]
}
