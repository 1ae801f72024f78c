// Package handler exposes document intake and profile retrieval over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yojana/internal/profile/models"
	id "yojana/pkg/domain"
	dErrors "yojana/pkg/domain-errors"
	"yojana/pkg/platform/httputil"
	"yojana/pkg/requestcontext"
)

// Service defines the profile operations the handler depends on.
type Service interface {
	AddDocument(ctx context.Context, extract *models.DocumentExtract) ([]string, error)
	Profile(ctx context.Context, subjectID id.SubjectID) (models.MergedProfile, error)
}

// Handler handles profile endpoints.
type Handler struct {
	logger  *slog.Logger
	profile Service
}

// New creates a profile Handler.
func New(profile Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, profile: profile}
}

// Register mounts the profile routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/profile/documents", h.handleAddDocument)
	r.Get("/profile/{subjectID}", h.handleGetProfile)
}

func (h *Handler) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AddDocumentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	extract := req.Extract()
	warnings, err := h.profile.AddDocument(ctx, extract)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeBadRequest) {
			h.logger.WarnContext(ctx, "document rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to store document",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to store document"))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, AddDocumentResponse{
		DocumentID: extract.ID.String(),
		Warnings:   warnings,
	})
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	subjectID, err := id.ParseSubjectID(chi.URLParam(r, "subjectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	profile, err := h.profile.Profile(ctx, subjectID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to assemble profile",
			"request_id", requestID,
			"subject_id", subjectID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to assemble profile"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}
