package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,EligibilityChecker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"doctorat/internal/duration"
	"doctorat/internal/inscription/models"
	"doctorat/internal/inscription/service/mocks"
	"doctorat/internal/inscription/store"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/events"
	"doctorat/pkg/platform/events/memory"
	"doctorat/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	store       *store.InMemoryStore
	sink        *memory.Sink
	eligibility *mocks.MockEligibilityChecker
	service     *Service
	ctx         context.Context
	doctorant   id.DoctorantID
	supervisor  id.SupervisorID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = store.NewInMemoryStore()
	s.sink = memory.NewSink()
	s.eligibility = mocks.NewMockEligibilityChecker(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(s.store,
		WithLogger(logger),
		WithEmitter(events.NewEmitter(s.sink, events.WithLogger(logger))),
		WithEligibility(s.eligibility),
	)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	s.doctorant = id.DoctorantID(uuid.New())
	s.supervisor = id.SupervisorID(uuid.New())
}

func (s *ServiceSuite) create(kind models.Kind) *models.Inscription {
	ins, err := s.service.Create(s.ctx, CreateInput{
		DoctorantID:  s.doctorant,
		SupervisorID: &s.supervisor,
		CampaignID:   id.CampaignID(uuid.New()),
		Kind:         kind,
		Subject:      "Formal verification of smart contracts",
	})
	s.Require().NoError(err)
	return ins
}

func (s *ServiceSuite) eligible(ok bool) {
	s.eligibility.EXPECT().Eligibility(gomock.Any(), s.doctorant).Return(&duration.Eligibility{
		Eligible:              ok,
		NextYear:              4,
		RequiredExemptionType: "PROLONGATION_4",
		Message:               "renewal for year 4 requires an approved PROLONGATION_4 exemption",
	}, nil)
}

func (s *ServiceSuite) as(role id.Role, actor uuid.UUID) context.Context {
	return requestcontext.WithActor(s.ctx, id.ActorID(actor), role)
}

func (s *ServiceSuite) TestCreate() {
	campaign := id.CampaignID(uuid.New())
	in := CreateInput{DoctorantID: s.doctorant, CampaignID: campaign, Kind: models.KindFirst, Subject: "s"}

	ins, err := s.service.Create(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(models.StatusDraft, ins.Status)
	s.Len(s.sink.Events(events.TopicInscriptionCreated), 1)

	_, err = s.service.Create(s.ctx, in)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict), "one inscription per campaign")

	in.CampaignID = id.CampaignID(uuid.New())
	in.Subject = ""
	_, err = s.service.Create(s.ctx, in)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.Create(s.as(id.RoleDoctorant, uuid.New()), CreateInput{
		DoctorantID: s.doctorant, CampaignID: id.CampaignID(uuid.New()), Kind: models.KindFirst, Subject: "s",
	})
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden), "another candidate")
}

// RENEWAL: DRAFT → PENDING_SUPERVISOR → PENDING_ADMIN → ADMITTED, then a late rejection conflicts.
func (s *ServiceSuite) TestRenewalScenario() {
	ins := s.create(models.KindRenewal)

	s.eligible(true)
	ins, err := s.service.Submit(s.ctx, ins.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPendingSupervisor, ins.Status)

	ins, err = s.service.ValidateBySupervisor(s.as(id.RoleSupervisor, uuid.UUID(s.supervisor)), ins.ID, "ok")
	s.Require().NoError(err)
	s.Equal(models.StatusPendingAdmin, ins.Status)

	s.eligible(true)
	ins, err = s.service.ValidateByAdmin(s.as(id.RoleAdmin, uuid.New()), ins.ID, "ok", nil)
	s.Require().NoError(err)
	s.Equal(models.StatusAdmitted, ins.Status)

	_, err = s.service.RejectByAdmin(s.ctx, ins.ID, "too late")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	stored, err := s.service.Get(s.ctx, ins.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusAdmitted, stored.Status)
	s.Equal(4, stored.Version)

	changes := s.sink.Events(events.TopicInscriptionStatusChanged)
	s.Require().Len(changes, 3)
	s.Equal("DRAFT", changes[0].FromState)
	s.Equal("PENDING_SUPERVISOR", changes[0].ToState)
	s.Equal("ok", changes[2].Comment)
}

func (s *ServiceSuite) TestFirstGoesStraightToAdmin() {
	ins := s.create(models.KindFirst)
	ins, err := s.service.Submit(s.ctx, ins.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPendingAdmin, ins.Status)

	_, err = s.service.ValidateBySupervisor(s.ctx, ins.ID, "ok")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	ins, err = s.service.ValidateByAdmin(s.ctx, ins.ID, "", nil)
	s.Require().NoError(err)
	s.NotNil(ins.FirstRegistrationDate)
}

func (s *ServiceSuite) TestIneligibleRenewalIsNotWritten() {
	ins := s.create(models.KindRenewal)
	s.eligible(false)

	_, err := s.service.Submit(s.ctx, ins.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Contains(dErrors.MessageOf(err), "PROLONGATION_4")

	stored, err := s.service.Get(s.ctx, ins.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusDraft, stored.Status)
	s.Equal(1, stored.Version)
	s.Empty(s.sink.Events(events.TopicInscriptionStatusChanged))
}

func (s *ServiceSuite) TestPermissions() {
	ins := s.create(models.KindRenewal)
	s.eligible(true)
	_, err := s.service.Submit(s.as(id.RoleDoctorant, uuid.UUID(s.doctorant)), ins.ID)
	s.Require().NoError(err)

	_, err = s.service.ValidateBySupervisor(s.as(id.RoleSupervisor, uuid.New()), ins.ID, "")
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	_, err = s.service.ValidateBySupervisor(s.as(id.RoleDoctorant, uuid.UUID(s.doctorant)), ins.ID, "")
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	s.Equal([]id.Role{id.RoleAdmin}, s.service.RequiredRoles(models.ActionValidateByAdmin))
}

func (s *ServiceSuite) TestListPendingForSupervisor() {
	ins := s.create(models.KindRenewal)
	s.eligible(true)
	_, err := s.service.Submit(s.ctx, ins.ID)
	s.Require().NoError(err)

	mine, err := s.service.ListPendingForSupervisor(s.ctx, s.supervisor)
	s.Require().NoError(err)
	s.Len(mine, 1)

	others, err := s.service.ListPendingForSupervisor(s.ctx, id.SupervisorID(uuid.New()))
	s.Require().NoError(err)
	s.Empty(others)
}

func (s *ServiceSuite) TestSupervisorQueueIsScopedToTheSupervisor() {
	_, err := s.service.ListPendingForSupervisor(s.as(id.RoleSupervisor, uuid.New()), s.supervisor)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	_, err = s.service.ListPendingForSupervisor(s.as(id.RoleDoctorant, uuid.UUID(s.doctorant)), s.supervisor)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	mine, err := s.service.ListPendingForSupervisor(s.as(id.RoleSupervisor, uuid.UUID(s.supervisor)), s.supervisor)
	s.Require().NoError(err)
	s.Empty(mine)

	_, err = s.service.ListByStatus(s.as(id.RoleSupervisor, uuid.UUID(s.supervisor)), models.StatusPendingAdmin)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	drafts, err := s.service.ListByStatus(s.as(id.RoleAdmin, uuid.New()), models.StatusDraft)
	s.Require().NoError(err)
	s.Empty(drafts)
}

func (s *ServiceSuite) TestReadsAreLimitedToParties() {
	ins := s.create(models.KindFirst)
	stranger := uuid.New()

	_, err := s.service.Get(s.as(id.RoleDoctorant, stranger), ins.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden), "another candidate")

	_, err = s.service.Get(s.as(id.RoleSupervisor, stranger), ins.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden), "another supervisor")

	_, err = s.service.Get(s.as(id.RoleJuryMember, stranger), ins.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden), "jury members do not read registrations")

	for _, ctx := range []context.Context{
		s.as(id.RoleDoctorant, uuid.UUID(s.doctorant)),
		s.as(id.RoleSupervisor, uuid.UUID(s.supervisor)),
		s.as(id.RoleAdmin, stranger),
	} {
		got, err := s.service.Get(ctx, ins.ID)
		s.Require().NoError(err)
		s.Equal(ins.ID, got.ID)
	}

	_, err = s.service.ListByDoctorant(s.as(id.RoleDoctorant, stranger), s.doctorant)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	foreign, err := s.service.ListByDoctorant(s.as(id.RoleSupervisor, stranger), s.doctorant)
	s.Require().NoError(err)
	s.Empty(foreign, "another supervisor sees none of the candidate's records")

	own, err := s.service.ListByDoctorant(s.as(id.RoleDoctorant, uuid.UUID(s.doctorant)), s.doctorant)
	s.Require().NoError(err)
	s.Len(own, 1)
}

func (s *ServiceSuite) TestConcurrentSupervisorDecisions() {
	ins := s.create(models.KindRenewal)
	s.eligible(true)
	_, err := s.service.Submit(s.ctx, ins.ID)
	s.Require().NoError(err)

	const goroutines = 16
	var wg sync.WaitGroup
	var wins, conflicts atomic.Int32
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = s.service.ValidateBySupervisor(s.ctx, ins.ID, "ok")
			} else {
				_, err = s.service.RejectBySupervisor(s.ctx, ins.ID, "no")
			}
			switch {
			case err == nil:
				wins.Add(1)
			case dErrors.HasCode(err, dErrors.CodeConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()
	s.Equal(int32(1), wins.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}

func (s *ServiceSuite) TestStoreErrors() {
	st := mocks.NewMockStore(s.ctrl)
	svc := New(st, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	missing := id.InscriptionID(uuid.New())

	st.EXPECT().FindByID(gomock.Any(), missing).Return(nil, errors.New("connection refused"))
	_, err := svc.Submit(s.ctx, missing)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	_, err = svc.Submit(s.ctx, id.InscriptionID{})
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestNotFound() {
	_, err := s.service.Submit(s.ctx, id.InscriptionID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
