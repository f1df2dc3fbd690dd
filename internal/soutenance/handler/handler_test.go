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

	"doctorat/internal/soutenance/handler/mocks"
	"doctorat/internal/soutenance/models"
	"doctorat/internal/soutenance/service"
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

func sample(status models.Status) *models.Soutenance {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	return &models.Soutenance{
		ID:           id.SoutenanceID(uuid.New()),
		DoctorantID:  id.DoctorantID(uuid.New()),
		SupervisorID: id.SupervisorID(uuid.New()),
		Status:       status,
		ThesisTitle:  "Sparse attention for long documents",
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder) SoutenanceResponse {
	var resp SoutenanceResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *HandlerSuite) TestCreateAndSubmit() {
	s.Run("draft", func() {
		sout := sample(models.StatusDraft)
		s.svc.EXPECT().CreateDraft(gomock.Any(), service.DraftInput{
			DoctorantID: sout.DoctorantID, SupervisorID: sout.SupervisorID, Title: "Sparse attention",
		}).Return(sout, nil)

		rec := s.do(http.MethodPost, "/soutenances", map[string]string{
			"doctorant_id":  sout.DoctorantID.String(),
			"supervisor_id": sout.SupervisorID.String(),
			"thesis_title":  "Sparse attention",
		})
		s.Equal(http.StatusCreated, rec.Code)
		s.Equal("DRAFT", s.decode(rec).Status)
	})

	s.Run("direct submission", func() {
		sout := sample(models.StatusSubmitted)
		s.svc.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in service.SubmitInput) (*models.Soutenance, error) {
				s.Nil(in.SoutenanceID)
				s.Equal("m.pdf", in.ManuscriptRef)
				return sout, nil
			})
		rec := s.do(http.MethodPost, "/soutenances/submit", map[string]string{
			"doctorant_id":        sout.DoctorantID.String(),
			"supervisor_id":       sout.SupervisorID.String(),
			"thesis_title":        "t",
			"manuscript_ref":      "m.pdf",
			"anti_plagiarism_ref": "ap.pdf",
		})
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("draft submission", func() {
		sout := sample(models.StatusSubmitted)
		s.svc.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in service.SubmitInput) (*models.Soutenance, error) {
				s.Require().NotNil(in.SoutenanceID)
				s.Equal(sout.ID, *in.SoutenanceID)
				return sout, nil
			})
		rec := s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/submit", map[string]string{
			"manuscript_ref":      "m.pdf",
			"anti_plagiarism_ref": "ap.pdf",
		})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("missing manuscript never reaches the service", func() {
		rec := s.do(http.MethodPost, "/soutenances/"+uuid.NewString()+"/submit", map[string]string{"anti_plagiarism_ref": "ap.pdf"})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *HandlerSuite) TestPrerequisites() {
	sout := sample(models.StatusSubmitted)
	s.svc.EXPECT().UpdatePrerequisites(gomock.Any(), sout.ID,
		models.Prerequisites{Publications: 2, Conferences: 1, TrainingHours: 120}).Return(sout, nil)
	rec := s.do(http.MethodPut, "/soutenances/"+sout.ID.String()+"/prerequisites", map[string]int{
		"publications_count": 2, "conferences_count": 1, "training_hours": 120,
	})
	s.Equal(http.StatusOK, rec.Code)

	s.svc.EXPECT().ValidatePrerequisites(gomock.Any(), sout.ID).
		Return(nil, dErrors.New(dErrors.CodeValidation, "prerequisites not met: conferences 1/2, training hours 120/200"))
	rec = s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/validate-prerequisites", nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "conferences 1/2")
}

func (s *HandlerSuite) TestJury() {
	sout := sample(models.StatusPrerequisitesValidated)
	person := uuid.New()

	s.Run("add member", func() {
		s.svc.EXPECT().AddJuryMember(gomock.Any(), sout.ID, service.JuryMemberInput{
			PersonID: &person, Name: "Grace Hopper", Email: "grace@navy.example", Role: models.JuryReporter,
		}).Return(sout, nil)
		rec := s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/jury", map[string]string{
			"person_id": person.String(), "name": "Grace Hopper", "email": "grace@navy.example", "role": "reporter",
		})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unknown role", func() {
		rec := s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/jury", map[string]string{"name": "x", "role": "chair"})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("remove member", func() {
		memberID := id.JuryMemberID(uuid.New())
		s.svc.EXPECT().RemoveJuryMember(gomock.Any(), sout.ID, memberID).Return(sout, nil)
		rec := s.do(http.MethodDelete, "/soutenances/"+sout.ID.String()+"/jury/"+memberID.String(), nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("incomplete jury", func() {
		s.svc.EXPECT().ProposeJury(gomock.Any(), sout.ID).Return(nil, dErrors.New(dErrors.CodeValidation, "jury needs reporters 1/2"))
		rec := s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/propose-jury", nil)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("report requires an opinion", func() {
		rec := s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/jury/"+uuid.NewString()+"/report", map[string]string{"comment": "x"})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("report", func() {
		memberID := id.JuryMemberID(uuid.New())
		s.svc.EXPECT().SubmitReport(gomock.Any(), sout.ID, memberID, false, "Weak evaluation").Return(sout, nil)
		rec := s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/jury/"+memberID.String()+"/report",
			map[string]any{"favorable": false, "comment": "  Weak   evaluation "})
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *HandlerSuite) TestScheduling() {
	sout := sample(models.StatusAuthorized)
	date := time.Date(2027, 1, 15, 10, 0, 0, 0, time.UTC)

	s.svc.EXPECT().ProposeDate(gomock.Any(), sout.ID, date, "Room 101").Return(sout, nil)
	rec := s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/propose-date", map[string]string{
		"date": "2027-01-15T10:00:00Z", "place": "Room 101",
	})
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/propose-date", nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	s.svc.EXPECT().Schedule(gomock.Any(), sout.ID, (*time.Time)(nil), "").Return(sout, nil)
	rec = s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/schedule", nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/schedule", map[string]string{"date": "15/01/2027"})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *HandlerSuite) TestResultAndReject() {
	sout := sample(models.StatusScheduled)

	s.svc.EXPECT().RecordResult(gomock.Any(), sout.ID, models.Result{Grade: 18.5, Mention: models.MentionTresHonorableFelicitations}).
		Return(sout, nil)
	rec := s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/result", map[string]any{
		"grade": 18.5, "mention": "tres_honorable_felicitations",
	})
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/result", map[string]any{"mention": "HONORABLE"})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/reject", nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	s.svc.EXPECT().Reject(gomock.Any(), sout.ID, "late").
		Return(nil, dErrors.New(dErrors.CodeConflict, "cannot reject a soutenance in state SCHEDULED"))
	rec = s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/reject", map[string]string{"motif": "late"})
	s.Equal(http.StatusConflict, rec.Code)

	s.svc.EXPECT().Authorize(gomock.Any(), sout.ID, "").Return(nil, dErrors.New(dErrors.CodeForbidden, "role SUPERVISOR may not authorize"))
	rec = s.do(http.MethodPost, "/soutenances/"+sout.ID.String()+"/authorize", nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerSuite) TestGetAndList() {
	sout := sample(models.StatusJuryProposed)
	favorable := true
	sout.Jury = []models.JuryMember{{
		ID: id.JuryMemberID(uuid.New()), Name: "Emmy Noether", Role: models.JuryReporter,
		ReportSubmitted: true, FavorableOpinion: &favorable,
	}}

	s.svc.EXPECT().Get(gomock.Any(), sout.ID).Return(sout, nil)
	rec := s.do(http.MethodGet, "/soutenances/"+sout.ID.String(), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	resp := s.decode(rec)
	s.Require().Len(resp.Jury, 1)
	s.True(*resp.Jury[0].FavorableOpinion)

	s.svc.EXPECT().ListByDoctorant(gomock.Any(), sout.DoctorantID).Return([]*models.Soutenance{sout}, nil)
	rec = s.do(http.MethodGet, "/doctorants/"+sout.DoctorantID.String()+"/soutenances", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list SoutenanceListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Len(list.Soutenances, 1)

	rec = s.do(http.MethodGet, "/soutenances/nope", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestListByStatus() {
	sout := sample(models.StatusAuthorized)
	s.svc.EXPECT().ListByStatus(gomock.Any(), models.StatusAuthorized).Return([]*models.Soutenance{sout}, nil)
	rec := s.do(http.MethodGet, "/soutenances?status=AUTHORIZED", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list SoutenanceListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Len(list.Soutenances, 1)

	rec = s.do(http.MethodGet, "/soutenances", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/soutenances?status=POSTPONED", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}
