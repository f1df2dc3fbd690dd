package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"doctorat/internal/duration"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/httputil"
	"doctorat/pkg/platform/middleware/request"
	"doctorat/pkg/requestcontext"
)

// Service answers duration queries for HTTP.
type Service interface {
	Eligibility(ctx context.Context, doctorantID id.DoctorantID) (*duration.Eligibility, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/doctorants/{id}/eligibility", h.handleEligibility)
}

func (h *Handler) handleEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doctorantID, err := id.ParseDoctorantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	// Candidates see only their own record; staff roles see any.
	if actor := requestcontext.Actor(ctx); actor.Present() && actor.Role == id.RoleDoctorant &&
		uuid.UUID(actor.ID) != uuid.UUID(doctorantID) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "candidates may only query their own eligibility"))
		return
	}

	e, err := h.service.Eligibility(ctx, doctorantID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to evaluate eligibility",
				"request_id", request.GetRequestID(ctx),
				"doctorant_id", doctorantID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}
