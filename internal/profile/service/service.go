// Package service implements document intake and profile assembly.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"yojana/internal/profile/merger"
	"yojana/internal/profile/models"
	"yojana/internal/profile/validator"
	"yojana/internal/recalc"
	id "yojana/pkg/domain"
	dErrors "yojana/pkg/domain-errors"
	"yojana/pkg/requestcontext"
)

// Store persists document extracts.
type Store interface {
	Save(ctx context.Context, extract *models.DocumentExtract) error
	ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]*models.DocumentExtract, error)
	ListSubjects(ctx context.Context) ([]id.SubjectID, error)
}

// ReportInvalidator drops any cached eligibility report for a subject after
// the underlying documents change.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, subjectID id.SubjectID) error
}

// Service coordinates validation, storage, and downstream notification for
// incoming document extracts.
type Service struct {
	store       Store
	publisher   *recalc.Publisher
	invalidator ReportInvalidator
	logger      *slog.Logger
	tracer      trace.Tracer
}

// New constructs the profile service. publisher and invalidator may be nil.
func New(store Store, publisher *recalc.Publisher, invalidator ReportInvalidator, logger *slog.Logger) *Service {
	return &Service{
		store:       store,
		publisher:   publisher,
		invalidator: invalidator,
		logger:      logger,
		tracer:      otel.Tracer("yojana/profile"),
	}
}

// AddDocument validates and stores one extract, then requests recalculation.
// Returned warnings are advisory; the document was accepted.
func (s *Service) AddDocument(ctx context.Context, extract *models.DocumentExtract) ([]string, error) {
	now := requestcontext.Now(ctx)

	ok, errs, warnings := validator.Validate(extract, now)
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, strings.Join(errs, "; "))
	}

	if extract.ID.IsNil() {
		extract.ID = id.NewDocumentID()
	}
	if extract.UploadedAt.IsZero() {
		extract.UploadedAt = now
	}
	extract.Warnings = warnings

	if err := s.store.Save(ctx, extract); err != nil {
		return nil, fmt.Errorf("save document extract: %w", err)
	}

	s.logger.InfoContext(ctx, "document extract stored",
		"request_id", requestcontext.RequestID(ctx),
		"subject_id", extract.SubjectID.String(),
		"document_id", extract.ID.String(),
		"document_type", string(extract.Type),
		"warnings", len(warnings),
	)

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, extract.SubjectID); err != nil {
			s.logger.WarnContext(ctx, "report cache invalidation failed",
				"subject_id", extract.SubjectID.String(),
				"error", err.Error(),
			)
		}
	}

	event := recalc.Event{
		SubjectID:   extract.SubjectID,
		Trigger:     recalc.TriggerDocumentUploaded,
		RequestedAt: now,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Intake succeeded; a missed event only delays recalculation.
		s.logger.WarnContext(ctx, "recalc event publish failed",
			"subject_id", extract.SubjectID.String(),
			"error", err.Error(),
		)
	}

	return warnings, nil
}

// Profile assembles the subject's merged profile from all stored extracts.
func (s *Service) Profile(ctx context.Context, subjectID id.SubjectID) (models.MergedProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.Assemble",
		trace.WithAttributes(attribute.String("subject_id", subjectID.String())))
	defer span.End()

	extracts, err := s.store.ListBySubject(ctx, subjectID)
	if err != nil {
		return models.MergedProfile{}, fmt.Errorf("list document extracts: %w", err)
	}
	return merger.Merge(subjectID, extracts), nil
}

// Documents returns the subject's raw extracts in upload order.
func (s *Service) Documents(ctx context.Context, subjectID id.SubjectID) ([]*models.DocumentExtract, error) {
	return s.store.ListBySubject(ctx, subjectID)
}

// Subjects lists every subject with stored documents.
func (s *Service) Subjects(ctx context.Context) ([]id.SubjectID, error) {
	return s.store.ListSubjects(ctx)
}
