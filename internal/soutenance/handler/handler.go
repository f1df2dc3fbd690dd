package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"doctorat/internal/soutenance/models"
	"doctorat/internal/soutenance/service"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/httputil"
	"doctorat/pkg/platform/middleware/request"
	"doctorat/pkg/requestcontext"
)

// Service is the defense workflow as seen by HTTP.
type Service interface {
	CreateDraft(ctx context.Context, in service.DraftInput) (*models.Soutenance, error)
	Submit(ctx context.Context, in service.SubmitInput) (*models.Soutenance, error)
	UpdateDraft(ctx context.Context, soutenanceID id.SoutenanceID, title string) (*models.Soutenance, error)
	UpdatePrerequisites(ctx context.Context, soutenanceID id.SoutenanceID, p models.Prerequisites) (*models.Soutenance, error)
	ValidatePrerequisites(ctx context.Context, soutenanceID id.SoutenanceID) (*models.Soutenance, error)
	AddJuryMember(ctx context.Context, soutenanceID id.SoutenanceID, in service.JuryMemberInput) (*models.Soutenance, error)
	RemoveJuryMember(ctx context.Context, soutenanceID id.SoutenanceID, memberID id.JuryMemberID) (*models.Soutenance, error)
	ProposeJury(ctx context.Context, soutenanceID id.SoutenanceID) (*models.Soutenance, error)
	SubmitReport(ctx context.Context, soutenanceID id.SoutenanceID, memberID id.JuryMemberID, favorable bool, comment string) (*models.Soutenance, error)
	Authorize(ctx context.Context, soutenanceID id.SoutenanceID, comment string) (*models.Soutenance, error)
	ProposeDate(ctx context.Context, soutenanceID id.SoutenanceID, date time.Time, place string) (*models.Soutenance, error)
	Schedule(ctx context.Context, soutenanceID id.SoutenanceID, date *time.Time, place string) (*models.Soutenance, error)
	RecordResult(ctx context.Context, soutenanceID id.SoutenanceID, result models.Result) (*models.Soutenance, error)
	Reject(ctx context.Context, soutenanceID id.SoutenanceID, motif string) (*models.Soutenance, error)
	Get(ctx context.Context, soutenanceID id.SoutenanceID) (*models.Soutenance, error)
	ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Soutenance, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Soutenance, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/soutenances", h.handleCreateDraft)
	r.Post("/soutenances/submit", h.handleSubmitNew)
	r.Get("/soutenances/{id}", h.handleGet)
	r.Patch("/soutenances/{id}", h.handleUpdateDraft)
	r.Get("/doctorants/{id}/soutenances", h.handleListByDoctorant)
	r.Get("/soutenances", h.handleListByStatus)
	r.Put("/soutenances/{id}/prerequisites", h.handleUpdatePrerequisites)
	r.Post("/soutenances/{id}/submit", h.handleSubmitDraft)
	r.Post("/soutenances/{id}/validate-prerequisites", h.handleValidatePrerequisites)
	r.Post("/soutenances/{id}/jury", h.handleAddJuryMember)
	r.Delete("/soutenances/{id}/jury/{memberId}", h.handleRemoveJuryMember)
	r.Post("/soutenances/{id}/jury/{memberId}/report", h.handleSubmitReport)
	r.Post("/soutenances/{id}/propose-jury", h.handleProposeJury)
	r.Post("/soutenances/{id}/authorize", h.handleAuthorize)
	r.Post("/soutenances/{id}/propose-date", h.handleProposeDate)
	r.Post("/soutenances/{id}/schedule", h.handleSchedule)
	r.Post("/soutenances/{id}/result", h.handleRecordResult)
	r.Post("/soutenances/{id}/reject", h.handleReject)
}

func (h *Handler) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateDraftRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.CreateDraft(ctx, service.DraftInput{
		DoctorantID:  req.doctorantID,
		SupervisorID: req.supervisorID,
		Title:        req.ThesisTitle,
	})
	h.respond(w, r, http.StatusCreated, "create soutenance", sout, err)
}

func (h *Handler) handleSubmitNew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	doctorantID, err := id.ParseDoctorantID(req.DoctorantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	supervisorID, err := id.ParseSupervisorID(req.SupervisorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sout, err := h.service.Submit(ctx, service.SubmitInput{
		DoctorantID:       doctorantID,
		SupervisorID:      supervisorID,
		Title:             req.ThesisTitle,
		ManuscriptRef:     req.ManuscriptRef,
		AntiPlagiarismRef: req.AntiPlagiarismRef,
		AuthorizationRef:  req.AuthorizationRef,
	})
	h.respond(w, r, http.StatusCreated, "submit soutenance", sout, err)
}

func (h *Handler) handleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.Submit(ctx, service.SubmitInput{
		SoutenanceID:      &soutenanceID,
		Title:             req.ThesisTitle,
		ManuscriptRef:     req.ManuscriptRef,
		AntiPlagiarismRef: req.AntiPlagiarismRef,
		AuthorizationRef:  req.AuthorizationRef,
	})
	h.respond(w, r, http.StatusOK, "submit soutenance", sout, err)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	sout, err := h.service.Get(r.Context(), soutenanceID)
	h.respond(w, r, http.StatusOK, "get soutenance", sout, err)
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
		h.fail(ctx, "list soutenances", err)
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
		h.fail(ctx, "list soutenances by status", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list))
}

func (h *Handler) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateDraftRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.UpdateDraft(ctx, soutenanceID, req.ThesisTitle)
	h.respond(w, r, http.StatusOK, "update soutenance draft", sout, err)
}

func (h *Handler) handleUpdatePrerequisites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PrerequisitesRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.UpdatePrerequisites(ctx, soutenanceID, models.Prerequisites{
		Publications:  req.Publications,
		Conferences:   req.Conferences,
		TrainingHours: req.TrainingHours,
	})
	h.respond(w, r, http.StatusOK, "update prerequisites", sout, err)
}

func (h *Handler) handleValidatePrerequisites(w http.ResponseWriter, r *http.Request) {
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	sout, err := h.service.ValidatePrerequisites(r.Context(), soutenanceID)
	h.respond(w, r, http.StatusOK, "validate prerequisites", sout, err)
}

func (h *Handler) handleAddJuryMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[JuryMemberRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.AddJuryMember(ctx, soutenanceID, service.JuryMemberInput{
		PersonID:    req.personID,
		Name:        req.Name,
		Email:       req.Email,
		Institution: req.Institution,
		Role:        req.role,
	})
	h.respond(w, r, http.StatusOK, "add jury member", sout, err)
}

func (h *Handler) handleRemoveJuryMember(w http.ResponseWriter, r *http.Request) {
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	memberID, err := id.ParseJuryMemberID(chi.URLParam(r, "memberId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sout, err := h.service.RemoveJuryMember(r.Context(), soutenanceID, memberID)
	h.respond(w, r, http.StatusOK, "remove jury member", sout, err)
}

func (h *Handler) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	memberID, err := id.ParseJuryMemberID(chi.URLParam(r, "memberId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReportRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.SubmitReport(ctx, soutenanceID, memberID, *req.Favorable, req.Comment)
	h.respond(w, r, http.StatusOK, "submit report", sout, err)
}

func (h *Handler) handleProposeJury(w http.ResponseWriter, r *http.Request) {
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	sout, err := h.service.ProposeJury(r.Context(), soutenanceID)
	h.respond(w, r, http.StatusOK, "propose jury", sout, err)
}

func (h *Handler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CommentRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.Authorize(ctx, soutenanceID, req.Comment)
	h.respond(w, r, http.StatusOK, "authorize soutenance", sout, err)
}

func (h *Handler) handleProposeDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DateRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	if req.date == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "date is required"))
		return
	}
	sout, err := h.service.ProposeDate(ctx, soutenanceID, *req.date, req.Place)
	h.respond(w, r, http.StatusOK, "propose defense date", sout, err)
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DateRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.Schedule(ctx, soutenanceID, req.date, req.Place)
	h.respond(w, r, http.StatusOK, "schedule soutenance", sout, err)
}

func (h *Handler) handleRecordResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ResultRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.RecordResult(ctx, soutenanceID, models.Result{
		Grade:       *req.Grade,
		Mention:     req.mention,
		Distinction: req.WithDistinction,
	})
	h.respond(w, r, http.StatusOK, "record result", sout, err)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	soutenanceID, ok := h.soutenanceID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RejectRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	sout, err := h.service.Reject(ctx, soutenanceID, req.Motif)
	h.respond(w, r, http.StatusOK, "reject soutenance", sout, err)
}

func (h *Handler) soutenanceID(w http.ResponseWriter, r *http.Request) (id.SoutenanceID, bool) {
	soutenanceID, err := id.ParseSoutenanceID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.SoutenanceID{}, false
	}
	return soutenanceID, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, op string, sout *models.Soutenance, err error) {
	if err != nil {
		h.fail(r.Context(), op, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, status, toResponse(sout))
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
