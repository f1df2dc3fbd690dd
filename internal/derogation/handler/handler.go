package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"doctorat/internal/derogation/models"
	"doctorat/internal/derogation/service"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/httputil"
	"doctorat/pkg/platform/middleware/request"
	"doctorat/pkg/requestcontext"
)

// Service is the derogation workflow as seen by HTTP.
type Service interface {
	Request(ctx context.Context, in service.RequestInput) (*models.Derogation, error)
	ApproveBySupervisor(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error)
	RefuseBySupervisor(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error)
	ApproveByAdmin(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error)
	RefuseByAdmin(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error)
	Cancel(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error)
	Get(ctx context.Context, derogationID id.DerogationID) (*models.Derogation, error)
	ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Derogation, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Derogation, error)
	ListPendingForSupervisor(ctx context.Context, supervisorID id.SupervisorID) ([]*models.Derogation, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/derogations", h.handleRequest)
	r.Get("/derogations/{id}", h.handleGet)
	r.Get("/doctorants/{id}/derogations", h.handleListByDoctorant)
	r.Get("/derogations", h.handleListByStatus)
	r.Get("/supervisors/{id}/derogations/pending", h.handleListPendingForSupervisor)
	r.Post("/derogations/{id}/approve-supervisor", h.decision(Service.ApproveBySupervisor))
	r.Post("/derogations/{id}/refuse-supervisor", h.decision(Service.RefuseBySupervisor))
	r.Post("/derogations/{id}/approve-admin", h.decision(Service.ApproveByAdmin))
	r.Post("/derogations/{id}/refuse-admin", h.decision(Service.RefuseByAdmin))
	r.Post("/derogations/{id}/cancel", h.decision(Service.Cancel))
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RequestDerogationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	d, err := h.service.Request(ctx, service.RequestInput{
		DoctorantID:   req.doctorantID,
		SupervisorID:  req.supervisorID,
		InscriptionID: req.inscriptionID,
		Type:          req.exemptionType,
		Motif:         req.Motif,
	})
	if err != nil {
		h.fail(ctx, "request derogation", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(d, requestcontext.Now(ctx)))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	derogationID, err := id.ParseDerogationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	d, err := h.service.Get(ctx, derogationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(d, requestcontext.Now(ctx)))
}

func (h *Handler) handleListByDoctorant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doctorantID, err := id.ParseDoctorantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.ListByDoctorant(ctx, doctorantID)
	if err != nil {
		h.fail(ctx, "list derogations", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list, requestcontext.Now(ctx)))
}

func (h *Handler) handleListByStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := r.URL.Query().Get("status")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "status query parameter is required"))
		return
	}
	status, err := models.ParseStatus(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return
	}
	list, err := h.service.ListByStatus(ctx, status)
	if err != nil {
		h.fail(ctx, "list derogations by status", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list, requestcontext.Now(ctx)))
}

func (h *Handler) handleListPendingForSupervisor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	supervisorID, err := id.ParseSupervisorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.ListPendingForSupervisor(ctx, supervisorID)
	if err != nil {
		h.fail(ctx, "list pending derogations", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list, requestcontext.Now(ctx)))
}

type decisionFunc func(Service, context.Context, id.DerogationID, string) (*models.Derogation, error)

func (h *Handler) decision(apply decisionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := request.GetRequestID(ctx)

		derogationID, err := id.ParseDerogationID(chi.URLParam(r, "id"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
		d, err := apply(h.service, ctx, derogationID, req.Comment)
		if err != nil {
			h.fail(ctx, "derogation decision", err)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toResponse(d, requestcontext.Now(ctx)))
	}
}

func (h *Handler) fail(ctx context.Context, op string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, "failed to "+op,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return
	}
	h.logger.InfoContext(ctx, op+" rejected",
		"request_id", requestcontext.RequestID(ctx),
		"code", dErrors.CodeOf(err),
	)
}
