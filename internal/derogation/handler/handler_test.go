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
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"doctorat/internal/derogation/handler/mocks"
	"doctorat/internal/derogation/models"
	"doctorat/internal/derogation/service"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
)

type HandlerSuite struct {
	suite.Suite
	svc    *mocks.MockService
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.svc = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sample(status models.Status) *models.Derogation {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	return &models.Derogation{
		ID:            id.DerogationID(uuid.New()),
		DoctorantID:   id.DoctorantID(uuid.New()),
		SupervisorID:  id.SupervisorID(uuid.New()),
		Type:          models.TypeProlongation4,
		Status:        status,
		Motif:         "Fieldwork",
		RequestedYear: 4,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
	}
}

func (s *HandlerSuite) TestRequest() {
	s.Run("created", func() {
		d := sample(models.StatusPendingSupervisor)
		s.svc.EXPECT().Request(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in service.RequestInput) (*models.Derogation, error) {
				s.Equal(d.DoctorantID, in.DoctorantID)
				s.Nil(in.SupervisorID)
				s.Equal(models.TypeProlongation4, in.Type)
				return d, nil
			})

		rec := s.do(http.MethodPost, "/derogations", map[string]string{
			"doctorant_id":   d.DoctorantID.String(),
			"exemption_type": "prolongation_4",
			"motif":          "Fieldwork",
		})
		s.Equal(http.StatusCreated, rec.Code)
		var resp DerogationResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("PENDING_SUPERVISOR", resp.Status)
		s.Equal(4, resp.RequestedYear)
	})

	s.Run("unknown exemption type never reaches the service", func() {
		rec := s.do(http.MethodPost, "/derogations", map[string]string{
			"doctorant_id":   uuid.NewString(),
			"exemption_type": "SABBATICAL",
			"motif":          "m",
		})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("unknown fields are rejected", func() {
		rec := s.do(http.MethodPost, "/derogations", map[string]string{"doctorant": "x"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestDecisions() {
	d := sample(models.StatusPendingAdmin)

	s.Run("approve", func() {
		s.svc.EXPECT().ApproveBySupervisor(gomock.Any(), d.ID, "supported").Return(d, nil)
		rec := s.do(http.MethodPost, "/derogations/"+d.ID.String()+"/approve-supervisor", map[string]string{"comment": " supported "})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("bare post carries no comment", func() {
		s.svc.EXPECT().Cancel(gomock.Any(), d.ID, "").Return(d, nil)
		rec := s.do(http.MethodPost, "/derogations/"+d.ID.String()+"/cancel", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("state conflict maps to 409", func() {
		s.svc.EXPECT().RefuseByAdmin(gomock.Any(), d.ID, "no").
			Return(nil, dErrors.New(dErrors.CodeConflict, "cannot refuse_by_admin a derogation in state APPROVED"))
		rec := s.do(http.MethodPost, "/derogations/"+d.ID.String()+"/refuse-admin", map[string]string{"comment": "no"})
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("forbidden maps to 403", func() {
		s.svc.EXPECT().ApproveByAdmin(gomock.Any(), d.ID, "").Return(nil, dErrors.New(dErrors.CodeForbidden, "role not allowed"))
		rec := s.do(http.MethodPost, "/derogations/"+d.ID.String()+"/approve-admin", nil)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("malformed id", func() {
		rec := s.do(http.MethodPost, "/derogations/not-a-uuid/refuse-supervisor", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestGetAndList() {
	d := sample(models.StatusApproved)
	exp := time.Date(2099, 8, 31, 0, 0, 0, 0, time.UTC)
	d.ExpirationDate = &exp

	s.svc.EXPECT().Get(gomock.Any(), d.ID).Return(d, nil)
	rec := s.do(http.MethodGet, "/derogations/"+d.ID.String(), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp DerogationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("2099-08-31", resp.ExpirationDate)
	s.True(resp.Valid)

	s.svc.EXPECT().ListByDoctorant(gomock.Any(), d.DoctorantID).Return([]*models.Derogation{d}, nil)
	rec = s.do(http.MethodGet, "/doctorants/"+d.DoctorantID.String()+"/derogations", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list DerogationListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Len(list.Derogations, 1)

	s.svc.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(dErrors.CodeNotFound, "derogation not found"))
	rec = s.do(http.MethodGet, "/derogations/"+uuid.NewString(), nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestQueues() {
	d := sample(models.StatusPendingAdmin)

	s.svc.EXPECT().ListByStatus(gomock.Any(), models.StatusPendingAdmin).Return([]*models.Derogation{d}, nil)
	rec := s.do(http.MethodGet, "/derogations?status=PENDING_ADMIN", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list DerogationListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Len(list.Derogations, 1)

	rec = s.do(http.MethodGet, "/derogations", nil)
	s.Equal(http.StatusBadRequest, rec.Code, "status is required")

	rec = s.do(http.MethodGet, "/derogations?status=LOST", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.svc.EXPECT().ListPendingForSupervisor(gomock.Any(), d.SupervisorID).Return([]*models.Derogation{}, nil)
	rec = s.do(http.MethodGet, "/supervisors/"+d.SupervisorID.String()+"/derogations/pending", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	list = DerogationListResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Empty(list.Derogations)

	s.svc.EXPECT().ListPendingForSupervisor(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeForbidden, "only the assigned supervisor may read this supervisor queue"))
	rec = s.do(http.MethodGet, "/supervisors/"+uuid.NewString()+"/derogations/pending", nil)
	s.Equal(http.StatusForbidden, rec.Code)
}
