// Package handler exposes scheme catalog administration over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yojana/internal/scheme/models"
	id "yojana/pkg/domain"
	dErrors "yojana/pkg/domain-errors"
	"yojana/pkg/platform/httputil"
	"yojana/pkg/platform/sentinel"
	"yojana/pkg/requestcontext"
)

// Service defines the catalog operations the handler depends on.
type Service interface {
	Create(ctx context.Context, scheme *models.Scheme) error
	Get(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error)
	List(ctx context.Context) ([]*models.Scheme, error)
}

// Handler handles scheme catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	schemes Service
}

// New creates a scheme Handler.
func New(schemes Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, schemes: schemes}
}

// Register mounts the catalog routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/schemes", h.handleCreateScheme)
	r.Get("/admin/schemes", h.handleListSchemes)
	r.Get("/admin/schemes/{schemeID}", h.handleGetScheme)
}

func (h *Handler) handleCreateScheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateSchemeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	scheme := req.Scheme()
	if err := h.schemes.Create(ctx, scheme); err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create scheme",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to create scheme"))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, scheme)
}

func (h *Handler) handleListSchemes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schemes, err := h.schemes.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list schemes",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list schemes"))
		return
	}
	if schemes == nil {
		schemes = []*models.Scheme{}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"schemes": schemes,
		"count":   len(schemes),
	})
}

func (h *Handler) handleGetScheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schemeID, err := id.ParseSchemeID(chi.URLParam(r, "schemeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	scheme, err := h.schemes.Get(ctx, schemeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "scheme not found"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to get scheme",
			"request_id", requestcontext.RequestID(ctx),
			"scheme_id", schemeID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to get scheme"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, scheme)
}
