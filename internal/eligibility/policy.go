package eligibility

// Thresholds and caps for report assembly. These are product policy, not
// tuning knobs, so they are compiled in rather than configured.
const (
	// partialMatchThreshold is the minimum match score for a non-eligible
	// scheme to count as a near miss.
	partialMatchThreshold = 50.0

	// maxPartialMissing caps the missing-requirement lines shown per
	// partially matched scheme.
	maxPartialMissing = 3

	// maxReportMissing caps the deduplicated missing-requirement lines
	// across the whole report.
	maxReportMissing = 10
)
