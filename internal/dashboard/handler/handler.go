// Package handler exposes the applicant dashboard over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yojana/internal/dashboard/service"
	id "yojana/pkg/domain"
	dErrors "yojana/pkg/domain-errors"
	"yojana/pkg/platform/httputil"
	"yojana/pkg/requestcontext"
)

// Service defines the dashboard operation the handler depends on.
type Service interface {
	Dashboard(ctx context.Context, subjectID id.SubjectID) (*service.Dashboard, error)
}

// Handler handles the dashboard endpoint.
type Handler struct {
	logger    *slog.Logger
	dashboard Service
}

// New creates a dashboard Handler.
func New(dashboard Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, dashboard: dashboard}
}

// Register mounts the dashboard route on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard/{subjectID}", h.handleGetDashboard)
}

func (h *Handler) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subjectID, err := id.ParseSubjectID(chi.URLParam(r, "subjectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	dashboard, err := h.dashboard.Dashboard(ctx, subjectID)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard assembly failed",
			"request_id", requestcontext.RequestID(ctx),
			"subject_id", subjectID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "dashboard assembly failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dashboard)
}
