package adapters

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	derogationmodels "doctorat/internal/derogation/models"
	derogationservice "doctorat/internal/derogation/service"
	derogationstore "doctorat/internal/derogation/store"
	"doctorat/internal/duration"
	inscriptionmodels "doctorat/internal/inscription/models"
	inscriptionservice "doctorat/internal/inscription/service"
	inscriptionstore "doctorat/internal/inscription/store"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/requestcontext"
)

// ProgressionSuite wires the three services over in-memory stores the way
// cmd/server does.
type ProgressionSuite struct {
	suite.Suite
	ctx         context.Context
	today       time.Time
	durations   *duration.Service
	derogations *derogationservice.Service
	inscription *inscriptionservice.Service
	doctorant   id.DoctorantID
	supervisor  id.SupervisorID
}

func TestProgressionSuite(t *testing.T) {
	suite.Run(t, new(ProgressionSuite))
}

func (s *ProgressionSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.today = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.today)
	s.doctorant = id.DoctorantID(uuid.New())
	s.supervisor = id.SupervisorID(uuid.New())

	inscriptions := inscriptionstore.NewInMemoryStore()
	s.durations = duration.New(NewRegistrations(inscriptions), nil, duration.WithLogger(logger))
	s.derogations = derogationservice.New(derogationstore.NewInMemoryStore(),
		derogationservice.WithLogger(logger),
		derogationservice.WithYearCalculator(s.durations),
	)
	s.durations.SetExemptionReader(NewExemptions(s.derogations))
	s.inscription = inscriptionservice.New(inscriptions,
		inscriptionservice.WithLogger(logger),
		inscriptionservice.WithEligibility(s.durations),
	)
}

func (s *ProgressionSuite) admittedFirstYear(started time.Time) {
	ins, err := s.inscription.Create(s.ctx, inscriptionservice.CreateInput{
		DoctorantID:           s.doctorant,
		SupervisorID:          &s.supervisor,
		CampaignID:            id.CampaignID(uuid.New()),
		Kind:                  inscriptionmodels.KindFirst,
		Subject:               "Graph neural networks for hydrology",
		FirstRegistrationDate: &started,
	})
	s.Require().NoError(err)
	_, err = s.inscription.Submit(s.ctx, ins.ID)
	s.Require().NoError(err)
	_, err = s.inscription.ValidateByAdmin(s.ctx, ins.ID, "", nil)
	s.Require().NoError(err)
}

func (s *ProgressionSuite) renewalDraft() *inscriptionmodels.Inscription {
	ins, err := s.inscription.Create(s.ctx, inscriptionservice.CreateInput{
		DoctorantID:  s.doctorant,
		SupervisorID: &s.supervisor,
		CampaignID:   id.CampaignID(uuid.New()),
		Kind:         inscriptionmodels.KindRenewal,
		Subject:      "Graph neural networks for hydrology",
	})
	s.Require().NoError(err)
	return ins
}

func (s *ProgressionSuite) grantProlongation(t derogationmodels.ExemptionType) {
	d, err := s.derogations.Request(s.ctx, derogationservice.RequestInput{
		DoctorantID: s.doctorant, SupervisorID: &s.supervisor, Type: t, Motif: "Extended fieldwork",
	})
	s.Require().NoError(err)
	_, err = s.derogations.ApproveBySupervisor(s.ctx, d.ID, "")
	s.Require().NoError(err)
	_, err = s.derogations.ApproveByAdmin(s.ctx, d.ID, "")
	s.Require().NoError(err)
}

func (s *ProgressionSuite) TestThirdAnniversaryNeedsProlongation() {
	s.admittedFirstYear(s.today.AddDate(-3, 0, 0))

	e, err := s.durations.Eligibility(s.ctx, s.doctorant)
	s.Require().NoError(err)
	s.Equal(4, e.NextYear)
	s.True(e.ExemptionRequired)
	s.False(e.Eligible)
	s.Equal("PROLONGATION_4", e.RequiredExemptionType)

	renewal := s.renewalDraft()
	_, err = s.inscription.Submit(s.ctx, renewal.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	s.grantProlongation(derogationmodels.TypeProlongation4)

	e, err = s.durations.Eligibility(s.ctx, s.doctorant)
	s.Require().NoError(err)
	s.True(e.Eligible)
	s.True(e.ExemptionHeld)

	ins, err := s.inscription.Submit(s.ctx, renewal.ID)
	s.Require().NoError(err)
	s.Equal(inscriptionmodels.StatusPendingSupervisor, ins.Status)
}

func (s *ProgressionSuite) TestSixthYearIsAHardCeiling() {
	s.admittedFirstYear(s.today.AddDate(-5, -2, 0))
	s.grantProlongation(derogationmodels.TypeProlongation6)

	e, err := s.durations.Eligibility(s.ctx, s.doctorant)
	s.Require().NoError(err)
	s.Equal(6, e.CurrentYear)
	s.False(e.Eligible)
	s.Equal(0, e.YearsRemaining)
	s.True(e.AlertPeriod)
}

func (s *ProgressionSuite) TestSuspensionTargetsNextYear() {
	s.admittedFirstYear(s.today.AddDate(-1, -1, 0))

	d, err := s.derogations.Request(s.ctx, derogationservice.RequestInput{
		DoctorantID: s.doctorant, SupervisorID: &s.supervisor, Type: derogationmodels.TypeSuspension, Motif: "Medical leave",
	})
	s.Require().NoError(err)
	s.Equal(3, d.RequestedYear)
}

func (s *ProgressionSuite) TestRejectedInscriptionsDoNotStartTheClock() {
	ins, err := s.inscription.Create(s.ctx, inscriptionservice.CreateInput{
		DoctorantID: s.doctorant,
		CampaignID:  id.CampaignID(uuid.New()),
		Kind:        inscriptionmodels.KindFirst,
		Subject:     "Rejected proposal",
	})
	s.Require().NoError(err)
	_, err = s.inscription.Submit(s.ctx, ins.ID)
	s.Require().NoError(err)
	_, err = s.inscription.RejectByAdmin(s.ctx, ins.ID, "incomplete file")
	s.Require().NoError(err)

	year, err := s.durations.CurrentYear(s.ctx, s.doctorant)
	s.Require().NoError(err)
	s.Equal(0, year)
}
