//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"doctorat/internal/soutenance/models"
	"doctorat/internal/soutenance/store"
	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/sentinel"
	"doctorat/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "soutenances"))
}

func (s *PostgresStoreSuite) draft(doctorant id.DoctorantID) *models.Soutenance {
	d, err := models.NewDraft(id.SoutenanceID(uuid.New()), doctorant, id.SupervisorID(uuid.New()),
		"Typed effects for stream processors", time.Now().UTC())
	s.Require().NoError(err)
	return d
}

func (s *PostgresStoreSuite) TestJuryAndPrerequisitesRoundTrip() {
	ctx := context.Background()
	d := s.draft(id.DoctorantID(uuid.New()))
	s.Require().NoError(s.store.Create(ctx, d))

	now := time.Now().UTC()
	s.Require().NoError(d.UpdatePrerequisites(models.Prerequisites{Publications: 3, Conferences: 2, TrainingHours: 210}, now))
	s.Require().NoError(d.Submit(models.Submission{ManuscriptRef: "hal-0421", AntiPlagiarismRef: "cmp-88"}, now))
	s.Require().NoError(d.ValidatePrerequisites(models.DefaultThresholds(), now))
	person := uuid.New()
	s.Require().NoError(d.AddJuryMember(models.JuryMember{
		ID: id.JuryMemberID(uuid.New()), PersonID: &person, Name: "Ada Byron",
		Email: "ada@inria.example", Institution: "Inria", Role: models.JuryReporter,
	}, now))
	s.Require().NoError(s.store.Update(ctx, d, 1))

	got, err := s.store.FindByID(ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPrerequisitesValidated, got.Status)
	s.Equal(2, got.Version)
	s.True(got.Prerequisites.Validated)
	s.Equal(210, got.Prerequisites.TrainingHours)
	s.Require().Len(got.Jury, 1)
	s.Equal("Ada Byron", got.Jury[0].Name)
	s.Equal(person, *got.Jury[0].PersonID)
	s.Nil(got.FinalGrade)
	s.Equal("hal-0421", got.ManuscriptRef)
}

func (s *PostgresStoreSuite) TestOneActiveDefensePerDoctorant() {
	ctx := context.Background()
	doctorant := id.DoctorantID(uuid.New())
	first := s.draft(doctorant)
	s.Require().NoError(s.store.Create(ctx, first))

	s.ErrorIs(s.store.Create(ctx, s.draft(doctorant)), sentinel.ErrAlreadyUsed)

	s.Require().NoError(first.Submit(models.Submission{ManuscriptRef: "hal-1", AntiPlagiarismRef: "cmp-1"}, time.Now()))
	s.Require().NoError(first.Reject("withdrawn", time.Now()))
	s.Require().NoError(s.store.Update(ctx, first, 1))
	s.NoError(s.store.Create(ctx, s.draft(doctorant)), "a rejected defense no longer blocks")

	byStatus, err := s.store.ListByStatus(ctx, models.StatusRejected)
	s.Require().NoError(err)
	s.Len(byStatus, 1)
	all, err := s.store.ListByDoctorant(ctx, doctorant)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *PostgresStoreSuite) TestStaleVersion() {
	ctx := context.Background()
	d := s.draft(id.DoctorantID(uuid.New()))
	s.Require().NoError(s.store.Create(ctx, d))

	s.Require().NoError(d.UpdateDraft("Revised title", time.Now()))
	s.Require().NoError(s.store.Update(ctx, d, 1))
	s.ErrorIs(s.store.Update(ctx, d, 1), sentinel.ErrConflict)

	s.ErrorIs(s.store.Update(ctx, s.draft(id.DoctorantID(uuid.New())), 1), sentinel.ErrNotFound)
}
