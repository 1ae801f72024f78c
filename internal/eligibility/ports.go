package eligibility

import (
	"context"

	profileModel "yojana/internal/profile/models"
	schemeModel "yojana/internal/scheme/models"
	id "yojana/pkg/domain"
)

// ProfileSource supplies the merged profile for a subject.
type ProfileSource interface {
	Profile(ctx context.Context, subjectID id.SubjectID) (profileModel.MergedProfile, error)
}

// SchemeSource supplies the scheme catalog.
type SchemeSource interface {
	Get(ctx context.Context, schemeID id.SchemeID) (*schemeModel.Scheme, error)
	List(ctx context.Context) ([]*schemeModel.Scheme, error)
}

// Store persists per-scheme verdicts, keyed by (subject, scheme) so repeated
// evaluation overwrites rather than accumulates.
type Store interface {
	Upsert(ctx context.Context, result *Result) error
	ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]*Result, error)
}

// ReportCache holds assembled reports between recalculations. Implementations
// must tolerate being skipped entirely; the engine works without one.
type ReportCache interface {
	Get(ctx context.Context, subjectID id.SubjectID) (*Report, bool, error)
	Set(ctx context.Context, report *Report) error
	Invalidate(ctx context.Context, subjectID id.SubjectID) error
}
