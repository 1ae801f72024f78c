// Package handler exposes eligibility evaluation over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yojana/internal/eligibility"
	id "yojana/pkg/domain"
	dErrors "yojana/pkg/domain-errors"
	"yojana/pkg/platform/httputil"
	"yojana/pkg/platform/sentinel"
	"yojana/pkg/requestcontext"
)

// Service defines the evaluation operations the handler depends on.
type Service interface {
	Evaluate(ctx context.Context, subjectID id.SubjectID) (*eligibility.Report, error)
	EvaluateAgainstScheme(ctx context.Context, subjectID id.SubjectID, schemeID id.SchemeID) (*eligibility.Result, error)
	Report(ctx context.Context, subjectID id.SubjectID) (*eligibility.Report, error)
}

// Handler handles eligibility endpoints.
type Handler struct {
	logger      *slog.Logger
	eligibility Service
}

// New creates an eligibility Handler.
func New(eligibility Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, eligibility: eligibility}
}

// Register mounts the eligibility routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/eligibility/evaluate", h.handleEvaluate)
	r.Post("/eligibility/evaluate-scheme", h.handleEvaluateScheme)
	r.Get("/eligibility/{subjectID}", h.handleGetReport)
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.eligibility.Evaluate(ctx, req.subjectID)
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluation failed",
			"request_id", requestID,
			"subject_id", req.subjectID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "evaluation failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleEvaluateScheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateSchemeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.eligibility.EvaluateAgainstScheme(ctx, req.subjectID, req.schemeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "scheme not found"))
			return
		}
		h.logger.ErrorContext(ctx, "scheme evaluation failed",
			"request_id", requestID,
			"subject_id", req.subjectID.String(),
			"scheme_id", req.schemeID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "evaluation failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subjectID, err := id.ParseSubjectID(chi.URLParam(r, "subjectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.eligibility.Report(ctx, subjectID)
	if err != nil {
		h.logger.ErrorContext(ctx, "report retrieval failed",
			"request_id", requestcontext.RequestID(ctx),
			"subject_id", subjectID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "report retrieval failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report)
}
