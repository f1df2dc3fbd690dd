package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"doctorat/internal/policy"
	"doctorat/internal/profile"
	soutenancemetrics "doctorat/internal/soutenance/metrics"
	"doctorat/internal/soutenance/models"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/events"
	"doctorat/pkg/platform/sentinel"
	"doctorat/pkg/requestcontext"
)

// Store persists defenses with optimistic concurrency. Create rejects a
// second non-terminal defense for the same candidate with ErrAlreadyUsed.
type Store interface {
	Create(ctx context.Context, s *models.Soutenance) error
	FindByID(ctx context.Context, soutenanceID id.SoutenanceID) (*models.Soutenance, error)
	ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Soutenance, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Soutenance, error)
	Update(ctx context.Context, s *models.Soutenance, expectedVersion int) error
}

// ProfileLookup names the candidate on jury invitations.
type ProfileLookup interface {
	GetProfile(ctx context.Context, profileID uuid.UUID) profile.Profile
}

// Service runs the defense workflow from draft to final grade.
type Service struct {
	store      Store
	profiles   ProfileLookup
	emitter    *events.Emitter
	metrics    *soutenancemetrics.Metrics
	logger     *slog.Logger
	tracer     trace.Tracer
	thresholds models.Thresholds
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithEmitter(e *events.Emitter) Option {
	return func(s *Service) {
		s.emitter = e
	}
}

func WithMetrics(m *soutenancemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithProfiles(p ProfileLookup) Option {
	return func(s *Service) {
		s.profiles = p
	}
}

// WithThresholds overrides the prerequisite minimums.
func WithThresholds(th models.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = th
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		logger:     slog.Default(),
		tracer:     otel.Tracer("doctorat/soutenance"),
		thresholds: models.DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type DraftInput struct {
	DoctorantID  id.DoctorantID
	SupervisorID id.SupervisorID
	Title        string
}

// CreateDraft opens a DRAFT defense. A candidate with an active defense
// cannot open another.
func (s *Service) CreateDraft(ctx context.Context, in DraftInput) (*models.Soutenance, error) {
	ctx, span := s.tracer.Start(ctx, "soutenance.CreateDraft")
	defer span.End()

	if err := policy.Authorize(ctx, "open a soutenance", models.RequiredRoles(models.ActionUpdateDraft),
		policy.Ownership{Doctorant: in.DoctorantID, Supervisor: in.SupervisorID}); err != nil {
		return nil, err
	}
	sout, err := newDraft(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.create(ctx, sout); err != nil {
		return nil, err
	}
	return sout, nil
}

// SubmitInput submits a defense. With SoutenanceID set an existing draft
// advances; without it a new record is created directly in SUBMITTED.
type SubmitInput struct {
	SoutenanceID      *id.SoutenanceID
	DoctorantID       id.DoctorantID
	SupervisorID      id.SupervisorID
	Title             string
	ManuscriptRef     string
	AntiPlagiarismRef string
	AuthorizationRef  string
}

func (in SubmitInput) submission() models.Submission {
	return models.Submission{
		Title:             in.Title,
		ManuscriptRef:     in.ManuscriptRef,
		AntiPlagiarismRef: in.AntiPlagiarismRef,
		AuthorizationRef:  in.AuthorizationRef,
	}
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.Soutenance, error) {
	if in.SoutenanceID != nil {
		return s.mutate(ctx, *in.SoutenanceID, models.ActionSubmit, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
			return sout.Submit(in.submission(), at)
		})
	}

	ctx, span := s.tracer.Start(ctx, "soutenance.Submit")
	defer span.End()

	if err := policy.Authorize(ctx, string(models.ActionSubmit), models.RequiredRoles(models.ActionSubmit),
		policy.Ownership{Doctorant: in.DoctorantID, Supervisor: in.SupervisorID}); err != nil {
		return nil, err
	}
	sout, err := newDraft(ctx, DraftInput{DoctorantID: in.DoctorantID, SupervisorID: in.SupervisorID, Title: in.Title})
	if err != nil {
		return nil, err
	}
	if err := sout.Submit(in.submission(), requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.create(ctx, sout); err != nil {
		return nil, err
	}
	return sout, nil
}

func (s *Service) UpdateDraft(ctx context.Context, soutenanceID id.SoutenanceID, title string) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionUpdateDraft, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.UpdateDraft(title, at)
	})
}

// UpdatePrerequisites replaces the declared counts while the defense is in
// DRAFT or SUBMITTED. Validation must be requested again afterwards.
func (s *Service) UpdatePrerequisites(ctx context.Context, soutenanceID id.SoutenanceID, p models.Prerequisites) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionUpdatePrerequisites, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.UpdatePrerequisites(p, at)
	})
}

// ValidatePrerequisites checks the declared counts against the configured
// thresholds. A shortfall leaves the record in SUBMITTED.
func (s *Service) ValidatePrerequisites(ctx context.Context, soutenanceID id.SoutenanceID) (*models.Soutenance, error) {
	sout, err := s.mutate(ctx, soutenanceID, models.ActionValidatePrerequisites, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.ValidatePrerequisites(s.thresholds, at)
	})
	if err != nil && dErrors.HasCode(err, dErrors.CodeValidation) {
		if s.metrics != nil {
			s.metrics.IncPrerequisiteFailure()
		}
		s.logger.InfoContext(ctx, "soutenance prerequisites not met",
			"request_id", requestcontext.RequestID(ctx),
			"soutenance_id", soutenanceID,
			"error", err,
		)
	}
	return sout, err
}

// JuryMemberInput describes a member to seat. PersonID is set when the
// member has a directory profile.
type JuryMemberInput struct {
	PersonID    *uuid.UUID
	Name        string
	Email       string
	Institution string
	Role        models.JuryRole
}

func (s *Service) AddJuryMember(ctx context.Context, soutenanceID id.SoutenanceID, in JuryMemberInput) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionAddJuryMember, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.AddJuryMember(models.JuryMember{
			ID:          id.JuryMemberID(uuid.New()),
			PersonID:    in.PersonID,
			Name:        in.Name,
			Email:       in.Email,
			Institution: in.Institution,
			Role:        in.Role,
		}, at)
	})
}

func (s *Service) RemoveJuryMember(ctx context.Context, soutenanceID id.SoutenanceID, memberID id.JuryMemberID) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionRemoveJuryMember, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.RemoveJuryMember(memberID, at)
	})
}

// ProposeJury freezes a complete jury and invites every member.
func (s *Service) ProposeJury(ctx context.Context, soutenanceID id.SoutenanceID) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionProposeJury, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.ProposeJury(at)
	})
}

// SubmitReport records a reporter's opinion. A JURY_MEMBER actor may only
// report for the seat linked to their own profile.
func (s *Service) SubmitReport(ctx context.Context, soutenanceID id.SoutenanceID, memberID id.JuryMemberID, favorable bool, comment string) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionSubmitReport, comment, func(ctx context.Context, sout *models.Soutenance, at time.Time) error {
		if err := authorizeReporter(ctx, sout, memberID); err != nil {
			return err
		}
		return sout.SubmitReport(memberID, favorable, comment, at)
	})
}

// Authorize approves the defense once every reporter reported favorably.
func (s *Service) Authorize(ctx context.Context, soutenanceID id.SoutenanceID, comment string) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionAuthorize, comment, func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.Authorize(comment, at)
	})
}

func (s *Service) ProposeDate(ctx context.Context, soutenanceID id.SoutenanceID, date time.Time, place string) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionProposeDate, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.ProposeDate(date, place, at)
	})
}

// Schedule fixes the date and place. Empty values confirm the last proposal.
func (s *Service) Schedule(ctx context.Context, soutenanceID id.SoutenanceID, date *time.Time, place string) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionSchedule, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.Schedule(date, place, at)
	})
}

// RecordResult closes the defense with the jury's grade and mention.
func (s *Service) RecordResult(ctx context.Context, soutenanceID id.SoutenanceID, result models.Result) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionRecordResult, "", func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.RecordResult(result, at)
	})
}

func (s *Service) Reject(ctx context.Context, soutenanceID id.SoutenanceID, motif string) (*models.Soutenance, error) {
	return s.mutate(ctx, soutenanceID, models.ActionReject, motif, func(_ context.Context, sout *models.Soutenance, at time.Time) error {
		return sout.Reject(motif, at)
	})
}

func (s *Service) RequiredRoles(action models.Action) []id.Role {
	return models.RequiredRoles(action)
}

// Get returns one defense. Candidates and supervisors may read only their
// own, jury members only the defenses they sit on.
func (s *Service) Get(ctx context.Context, soutID id.SoutenanceID) (*models.Soutenance, error) {
	sout, err := s.store.FindByID(ctx, soutID)
	if err != nil {
		return nil, wrapSoutenanceErr(err)
	}
	if err := policy.Authorize(ctx, "read this defense", models.ReadRoles,
		policy.Ownership{Doctorant: sout.DoctorantID, Supervisor: sout.SupervisorID}); err != nil {
		return nil, err
	}
	if !seated(ctx, sout) {
		return nil, dErrors.New(dErrors.CodeForbidden, "jury members may only read defenses they sit on")
	}
	return sout, nil
}

// ListByDoctorant returns the candidate's defenses. A supervisor sees only
// the ones they supervise.
func (s *Service) ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Soutenance, error) {
	if err := policy.AuthorizeList(ctx, "list these defenses", models.ReadRoles, doctorantID); err != nil {
		return nil, err
	}
	list, err := s.store.ListByDoctorant(ctx, doctorantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list defenses")
	}
	visible := make([]*models.Soutenance, 0, len(list))
	for _, sout := range list {
		if policy.Owns(ctx, policy.Ownership{Doctorant: sout.DoctorantID, Supervisor: sout.SupervisorID}) && seated(ctx, sout) {
			visible = append(visible, sout)
		}
	}
	return visible, nil
}

// ListByStatus is the administrative queue for one status.
func (s *Service) ListByStatus(ctx context.Context, status models.Status) ([]*models.Soutenance, error) {
	if err := policy.Authorize(ctx, "list defenses by status", models.QueueRoles, policy.Ownership{}); err != nil {
		return nil, err
	}
	list, err := s.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list soutenances")
	}
	return list, nil
}

type applyFunc func(ctx context.Context, sout *models.Soutenance, at time.Time) error

// mutate loads the defense, checks the actor, applies fn and writes the
// result back against the loaded version.
func (s *Service) mutate(ctx context.Context, soutenanceID id.SoutenanceID, action models.Action, comment string, fn applyFunc) (*models.Soutenance, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "soutenance.transition", trace.WithAttributes(
		attribute.String("workflow", "soutenance"),
		attribute.String("action", string(action)),
		attribute.String("record_id", soutenanceID.String()),
	))
	defer span.End()

	if soutenanceID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "soutenance id is required")
	}
	sout, err := s.store.FindByID(ctx, soutenanceID)
	if err != nil {
		return nil, wrapSoutenanceErr(err)
	}
	if err := policy.Authorize(ctx, string(action), models.RequiredRoles(action),
		policy.Ownership{Doctorant: sout.DoctorantID, Supervisor: sout.SupervisorID}); err != nil {
		return nil, err
	}

	from := sout.Status
	expected := sout.Version
	if err := fn(ctx, sout, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, sout, expected); err != nil {
		return nil, wrapSoutenanceErr(err)
	}

	s.committed(ctx, sout, action, from, comment)
	if s.metrics != nil {
		s.metrics.ObserveAction(string(action), start)
	}
	return sout, nil
}

func (s *Service) create(ctx context.Context, sout *models.Soutenance) error {
	if err := s.store.Create(ctx, sout); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return dErrors.New(dErrors.CodeConflict, "candidate already has an active soutenance")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create soutenance")
	}
	s.logger.InfoContext(ctx, "soutenance created",
		"request_id", requestcontext.RequestID(ctx),
		"soutenance_id", sout.ID,
		"doctorant_id", sout.DoctorantID,
		"status", sout.Status,
	)
	s.emitter.Emit(ctx, s.event(events.TopicSoutenanceCreated, sout, "", ""))
	return nil
}

// committed records a persisted change. Edits that keep the state are only
// logged; state changes are counted and published.
func (s *Service) committed(ctx context.Context, sout *models.Soutenance, action models.Action, from models.Status, comment string) {
	if sout.Status == from {
		s.logger.InfoContext(ctx, "soutenance updated",
			"request_id", requestcontext.RequestID(ctx),
			"soutenance_id", sout.ID,
			"action", action,
			"status", sout.Status,
		)
		return
	}

	if s.metrics != nil {
		s.metrics.IncTransition(from.String(), sout.Status.String())
		if sout.Status == models.StatusRejected {
			s.metrics.IncRejected()
		}
	}
	s.logger.InfoContext(ctx, "soutenance transitioned",
		"request_id", requestcontext.RequestID(ctx),
		"soutenance_id", sout.ID,
		"action", action,
		"from", from,
		"to", sout.Status,
	)

	switch action {
	case models.ActionSchedule:
		s.emitter.Emit(ctx, s.event(events.TopicSoutenanceScheduled, sout, from, comment))
	case models.ActionProposeJury:
		s.emitter.Emit(ctx, s.event(events.TopicSoutenanceStatusChanged, sout, from, comment))
		s.emitter.EmitAll(ctx, s.invitations(ctx, sout))
		if s.metrics != nil {
			s.metrics.AddInvitations(len(sout.Jury))
		}
	default:
		s.emitter.Emit(ctx, s.event(events.TopicSoutenanceStatusChanged, sout, from, comment))
	}
}

func newDraft(ctx context.Context, in DraftInput) (*models.Soutenance, error) {
	sout, err := models.NewDraft(id.SoutenanceID(uuid.New()), in.DoctorantID, in.SupervisorID, in.Title, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	return sout, nil
}

func authorizeReporter(ctx context.Context, sout *models.Soutenance, memberID id.JuryMemberID) error {
	actor := requestcontext.Actor(ctx)
	if actor.Role != id.RoleJuryMember {
		return nil
	}
	m, ok := sout.Member(memberID)
	if !ok {
		return nil
	}
	if m.PersonID == nil || *m.PersonID != uuid.UUID(actor.ID) {
		return dErrors.New(dErrors.CodeForbidden, "jury members may only submit their own report")
	}
	return nil
}

// seated is false only for a jury member with no linked seat on sout.
func seated(ctx context.Context, sout *models.Soutenance) bool {
	actor := requestcontext.Actor(ctx)
	if actor.Role != id.RoleJuryMember {
		return true
	}
	for _, m := range sout.Jury {
		if m.PersonID != nil && *m.PersonID == uuid.UUID(actor.ID) {
			return true
		}
	}
	return false
}

func wrapSoutenanceErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "soutenance not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "soutenance was modified concurrently")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, "candidate already has an active soutenance")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to access soutenance store")
}
