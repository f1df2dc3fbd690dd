package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"doctorat/internal/inscription/handler/mocks"
	"doctorat/internal/inscription/models"
	"doctorat/internal/inscription/service"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
)

func newRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r, svc
}

func post(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func inscription(status models.Status) *models.Inscription {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	return &models.Inscription{
		ID:          id.InscriptionID(uuid.New()),
		DoctorantID: id.DoctorantID(uuid.New()),
		CampaignID:  id.CampaignID(uuid.New()),
		Kind:        models.KindFirst,
		Status:      status,
		Subject:     "Sparse solvers",
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
}

func TestCreate(t *testing.T) {
	r, svc := newRouter(t)
	ins := inscription(models.StatusDraft)
	svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, in service.CreateInput) (*models.Inscription, error) {
			assert.Equal(t, models.KindRenewal, in.Kind)
			require.NotNil(t, in.FirstRegistrationDate)
			assert.Equal(t, 2023, in.FirstRegistrationDate.Year())
			return ins, nil
		})

	rec := post(t, r, "/inscriptions", map[string]string{
		"doctorant_id":            ins.DoctorantID.String(),
		"campaign_id":             ins.CampaignID.String(),
		"supervisor_id":           uuid.NewString(),
		"kind":                    "renewal",
		"subject":                 "Sparse solvers",
		"first_registration_date": "2023-10-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp InscriptionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "DRAFT", resp.Status)
}

func TestCreate_InvalidBody(t *testing.T) {
	r, _ := newRouter(t)
	rec := post(t, r, "/inscriptions", map[string]string{
		"doctorant_id":            uuid.NewString(),
		"campaign_id":             uuid.NewString(),
		"kind":                    "FIRST",
		"subject":                 "s",
		"first_registration_date": "01/10/2023",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTransitions(t *testing.T) {
	r, svc := newRouter(t)
	ins := inscription(models.StatusPendingAdmin)
	supervisor := uuid.New()

	svc.EXPECT().Submit(gomock.Any(), ins.ID).Return(ins, nil)
	assert.Equal(t, http.StatusOK, post(t, r, "/inscriptions/"+ins.ID.String()+"/submit", nil).Code)

	svc.EXPECT().ValidateByAdmin(gomock.Any(), ins.ID, "welcome", gomock.Any()).DoAndReturn(
		func(_ any, _ id.InscriptionID, _ string, s *id.SupervisorID) (*models.Inscription, error) {
			require.NotNil(t, s)
			assert.Equal(t, supervisor, uuid.UUID(*s))
			return ins, nil
		})
	rec := post(t, r, "/inscriptions/"+ins.ID.String()+"/validate-admin", map[string]string{
		"comment": "welcome", "supervisor_id": supervisor.String(),
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.EXPECT().RejectBySupervisor(gomock.Any(), ins.ID, "").
		Return(nil, dErrors.New(dErrors.CodeValidation, "a comment is required to reject an inscription"))
	rec = post(t, r, "/inscriptions/"+ins.ID.String()+"/reject-supervisor", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	svc.EXPECT().RejectByAdmin(gomock.Any(), ins.ID, "late").
		Return(nil, dErrors.New(dErrors.CodeConflict, "cannot reject_by_admin an inscription in state ADMITTED"))
	rec = post(t, r, "/inscriptions/"+ins.ID.String()+"/reject-admin", map[string]string{"comment": "late"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conflict", body["error"])
}

func TestGet(t *testing.T) {
	r, svc := newRouter(t)
	ins := inscription(models.StatusAdmitted)
	first := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	ins.FirstRegistrationDate = &first

	svc.EXPECT().Get(gomock.Any(), ins.ID).Return(ins, nil)
	req := httptest.NewRequest(http.MethodGet, "/inscriptions/"+ins.ID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp InscriptionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-09-01", resp.FirstRegistrationDate)

	svc.EXPECT().ListByDoctorant(gomock.Any(), ins.DoctorantID).Return([]*models.Inscription{ins}, nil)
	req = httptest.NewRequest(http.MethodGet, "/doctorants/"+ins.DoctorantID.String()+"/inscriptions", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list InscriptionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Inscriptions, 1)
}

func TestQueues(t *testing.T) {
	r, svc := newRouter(t)
	supervisor := id.SupervisorID(uuid.New())
	ins := inscription(models.StatusPendingSupervisor)
	ins.SupervisorID = &supervisor

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	svc.EXPECT().ListPendingForSupervisor(gomock.Any(), supervisor).Return([]*models.Inscription{ins}, nil)
	rec := get("/supervisors/" + supervisor.String() + "/inscriptions/pending")
	require.Equal(t, http.StatusOK, rec.Code)
	var list InscriptionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Inscriptions, 1)

	svc.EXPECT().ListByStatus(gomock.Any(), models.StatusDraft).Return(nil, nil)
	rec = get("/inscriptions?status=draft")
	require.Equal(t, http.StatusOK, rec.Code)
	list = InscriptionListResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Inscriptions)

	svc.EXPECT().ListByStatus(gomock.Any(), models.StatusAdmitted).
		Return(nil, dErrors.New(dErrors.CodeForbidden, "role SUPERVISOR may not list inscriptions by status"))
	assert.Equal(t, http.StatusForbidden, get("/inscriptions?status=ADMITTED").Code)

	assert.Equal(t, http.StatusBadRequest, get("/inscriptions").Code)
	assert.Equal(t, http.StatusBadRequest, get("/supervisors/nope/inscriptions/pending").Code)
}
