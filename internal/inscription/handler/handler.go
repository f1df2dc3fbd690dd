package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"doctorat/internal/inscription/models"
	"doctorat/internal/inscription/service"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/httputil"
	"doctorat/pkg/platform/middleware/request"
)

// Service is the inscription workflow as seen by HTTP.
type Service interface {
	Create(ctx context.Context, in service.CreateInput) (*models.Inscription, error)
	Submit(ctx context.Context, inscriptionID id.InscriptionID) (*models.Inscription, error)
	ValidateBySupervisor(ctx context.Context, inscriptionID id.InscriptionID, comment string) (*models.Inscription, error)
	RejectBySupervisor(ctx context.Context, inscriptionID id.InscriptionID, comment string) (*models.Inscription, error)
	ValidateByAdmin(ctx context.Context, inscriptionID id.InscriptionID, comment string, supervisorID *id.SupervisorID) (*models.Inscription, error)
	RejectByAdmin(ctx context.Context, inscriptionID id.InscriptionID, comment string) (*models.Inscription, error)
	Get(ctx context.Context, inscriptionID id.InscriptionID) (*models.Inscription, error)
	ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Inscription, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Inscription, error)
	ListPendingForSupervisor(ctx context.Context, supervisorID id.SupervisorID) ([]*models.Inscription, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/inscriptions", h.handleCreate)
	r.Get("/inscriptions/{id}", h.handleGet)
	r.Get("/doctorants/{id}/inscriptions", h.handleListByDoctorant)
	r.Get("/inscriptions", h.handleListByStatus)
	r.Get("/supervisors/{id}/inscriptions/pending", h.handleListPendingForSupervisor)
	r.Post("/inscriptions/{id}/submit", h.handleSubmit)
	r.Post("/inscriptions/{id}/validate-supervisor", h.decision(Service.ValidateBySupervisor))
	r.Post("/inscriptions/{id}/reject-supervisor", h.decision(Service.RejectBySupervisor))
	r.Post("/inscriptions/{id}/validate-admin", h.handleValidateByAdmin)
	r.Post("/inscriptions/{id}/reject-admin", h.decision(Service.RejectByAdmin))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateInscriptionRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	ins, err := h.service.Create(ctx, service.CreateInput{
		DoctorantID:           req.doctorantID,
		SupervisorID:          req.supervisorID,
		CampaignID:            req.campaignID,
		Kind:                  req.kind,
		Subject:               req.Subject,
		Laboratory:            req.Laboratory,
		FirstRegistrationDate: req.firstDate,
	})
	if err != nil {
		h.fail(ctx, "create inscription", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(ins))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	inscriptionID, err := id.ParseInscriptionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ins, err := h.service.Get(r.Context(), inscriptionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(ins))
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
		h.fail(ctx, "list inscriptions", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list))
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
		h.fail(ctx, "list inscriptions by status", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list))
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
		h.fail(ctx, "list pending inscriptions", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inscriptionID, err := id.ParseInscriptionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ins, err := h.service.Submit(ctx, inscriptionID)
	if err != nil {
		h.fail(ctx, "submit inscription", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(ins))
}

func (h *Handler) handleValidateByAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inscriptionID, err := id.ParseInscriptionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[AdminValidationRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	ins, err := h.service.ValidateByAdmin(ctx, inscriptionID, req.Comment, req.supervisorID)
	if err != nil {
		h.fail(ctx, "validate inscription", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(ins))
}

type decisionFunc func(Service, context.Context, id.InscriptionID, string) (*models.Inscription, error)

func (h *Handler) decision(apply decisionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		inscriptionID, err := id.ParseInscriptionID(chi.URLParam(r, "id"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
		if !ok {
			return
		}
		ins, err := apply(h.service, ctx, inscriptionID, req.Comment)
		if err != nil {
			h.fail(ctx, "inscription decision", err)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toResponse(ins))
	}
}

func (h *Handler) fail(ctx context.Context, op string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, "failed to "+op,
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
		return
	}
	h.logger.InfoContext(ctx, op+" rejected",
		"request_id", request.GetRequestID(ctx),
		"code", dErrors.CodeOf(err),
	)
}
