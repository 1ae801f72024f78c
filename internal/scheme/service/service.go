// Package service manages the benefit scheme catalog.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"yojana/internal/recalc"
	"yojana/internal/scheme/models"
	id "yojana/pkg/domain"
	"yojana/pkg/requestcontext"
)

// Store persists schemes.
type Store interface {
	Save(ctx context.Context, scheme *models.Scheme) error
	Get(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error)
	List(ctx context.Context) ([]*models.Scheme, error)
}

// SubjectLister enumerates subjects with stored documents so catalog changes
// can fan out recalculation requests.
type SubjectLister interface {
	Subjects(ctx context.Context) ([]id.SubjectID, error)
}

// Service implements catalog operations.
type Service struct {
	store     Store
	subjects  SubjectLister
	publisher *recalc.Publisher
	logger    *slog.Logger
}

// New constructs the scheme service. subjects may be nil when recalculation
// fan-out is not wired.
func New(store Store, subjects SubjectLister, publisher *recalc.Publisher, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		subjects:  subjects,
		publisher: publisher,
		logger:    logger,
	}
}

// Create validates and stores a new scheme, then requests recalculation for
// every known subject since a new scheme can change any verdict.
func (s *Service) Create(ctx context.Context, scheme *models.Scheme) error {
	if err := scheme.Validate(); err != nil {
		return err
	}
	now := requestcontext.Now(ctx)

	if scheme.ID.IsNil() {
		scheme.ID = id.NewSchemeID()
	}
	if scheme.CreatedAt.IsZero() {
		scheme.CreatedAt = now
	}

	if err := s.store.Save(ctx, scheme); err != nil {
		return fmt.Errorf("save scheme: %w", err)
	}

	s.logger.InfoContext(ctx, "scheme created",
		"request_id", requestcontext.RequestID(ctx),
		"scheme_id", scheme.ID.String(),
		"scheme_name", scheme.Name,
		"rules", len(scheme.Rules),
	)

	if s.subjects == nil {
		return nil
	}
	subjects, err := s.subjects.Subjects(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "could not enumerate subjects for recalc fan-out",
			"scheme_id", scheme.ID.String(),
			"error", err.Error(),
		)
		return nil
	}
	for _, subjectID := range subjects {
		event := recalc.Event{
			SubjectID:   subjectID,
			Trigger:     recalc.TriggerSchemeAdded,
			RequestedAt: now,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "recalc event publish failed",
				"subject_id", subjectID.String(),
				"error", err.Error(),
			)
		}
	}
	return nil
}

// Get returns one scheme by ID.
func (s *Service) Get(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	return s.store.Get(ctx, schemeID)
}

// List returns the full catalog in creation order.
func (s *Service) List(ctx context.Context) ([]*models.Scheme, error) {
	return s.store.List(ctx)
}
