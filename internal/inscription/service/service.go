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

	"doctorat/internal/duration"
	inscriptionmetrics "doctorat/internal/inscription/metrics"
	"doctorat/internal/inscription/models"
	"doctorat/internal/policy"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/events"
	"doctorat/pkg/platform/sentinel"
	"doctorat/pkg/requestcontext"
)

// Store persists inscriptions with optimistic concurrency.
type Store interface {
	Create(ctx context.Context, ins *models.Inscription) error
	FindByID(ctx context.Context, inscriptionID id.InscriptionID) (*models.Inscription, error)
	ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Inscription, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Inscription, error)
	Update(ctx context.Context, ins *models.Inscription, expectedVersion int) error
}

// EligibilityChecker answers whether a candidate may register for the next year.
type EligibilityChecker interface {
	Eligibility(ctx context.Context, doctorantID id.DoctorantID) (*duration.Eligibility, error)
}

// Service runs the registration workflow.
type Service struct {
	store       Store
	eligibility EligibilityChecker
	emitter     *events.Emitter
	metrics     *inscriptionmetrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
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

func WithMetrics(m *inscriptionmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEligibility enables the duration gate on renewals.
func WithEligibility(e EligibilityChecker) Option {
	return func(s *Service) {
		s.eligibility = e
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer("doctorat/inscription"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	DoctorantID           id.DoctorantID
	SupervisorID          *id.SupervisorID
	CampaignID            id.CampaignID
	Kind                  models.Kind
	Subject               string
	Laboratory            string
	FirstRegistrationDate *time.Time
}

// Create opens a DRAFT. A candidate has at most one inscription per campaign.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Inscription, error) {
	ctx, span := s.tracer.Start(ctx, "inscription.Create")
	defer span.End()

	owner := policy.Ownership{Doctorant: in.DoctorantID}
	if in.SupervisorID != nil {
		owner.Supervisor = *in.SupervisorID
	}
	if err := policy.Authorize(ctx, "create an inscription", models.CreateRoles, owner); err != nil {
		return nil, err
	}

	ins, err := models.NewInscription(id.InscriptionID(uuid.New()), in.DoctorantID, in.SupervisorID,
		in.CampaignID, in.Kind, in.Subject, in.Laboratory, in.FirstRegistrationDate, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.store.Create(ctx, ins); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "candidate already has an inscription for this campaign")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create inscription")
	}

	if s.metrics != nil {
		s.metrics.IncCreated(ins.Kind.String())
	}
	s.logger.InfoContext(ctx, "inscription created",
		"request_id", requestcontext.RequestID(ctx),
		"inscription_id", ins.ID,
		"doctorant_id", ins.DoctorantID,
		"kind", ins.Kind,
	)
	s.emitter.Emit(ctx, s.event(events.TopicInscriptionCreated, ins, "", ""))
	return ins, nil
}

// Submit routes a FIRST inscription to the administration and a RENEWAL to
// the supervisor. Renewals must pass the duration gate.
func (s *Service) Submit(ctx context.Context, inscriptionID id.InscriptionID) (*models.Inscription, error) {
	return s.transition(ctx, inscriptionID, models.Decision{Action: models.ActionSubmit})
}

func (s *Service) ValidateBySupervisor(ctx context.Context, inscriptionID id.InscriptionID, comment string) (*models.Inscription, error) {
	return s.transition(ctx, inscriptionID, models.Decision{Action: models.ActionValidateBySupervisor, Comment: comment})
}

func (s *Service) RejectBySupervisor(ctx context.Context, inscriptionID id.InscriptionID, comment string) (*models.Inscription, error) {
	return s.transition(ctx, inscriptionID, models.Decision{Action: models.ActionRejectBySupervisor, Comment: comment})
}

// ValidateByAdmin admits the candidate. A FIRST inscription needs a
// supervisor, either already recorded or given here.
func (s *Service) ValidateByAdmin(ctx context.Context, inscriptionID id.InscriptionID, comment string, supervisorID *id.SupervisorID) (*models.Inscription, error) {
	return s.transition(ctx, inscriptionID, models.Decision{
		Action:     models.ActionValidateByAdmin,
		Comment:    comment,
		Supervisor: supervisorID,
	})
}

func (s *Service) RejectByAdmin(ctx context.Context, inscriptionID id.InscriptionID, comment string) (*models.Inscription, error) {
	return s.transition(ctx, inscriptionID, models.Decision{Action: models.ActionRejectByAdmin, Comment: comment})
}

func (s *Service) RequiredRoles(action models.Action) []id.Role {
	return models.RequiredRoles(action)
}

// Get returns one inscription. Candidates and supervisors may read only their own.
func (s *Service) Get(ctx context.Context, insID id.InscriptionID) (*models.Inscription, error) {
	ins, err := s.store.FindByID(ctx, insID)
	if err != nil {
		return nil, wrapInscriptionErr(err)
	}
	if err := policy.Authorize(ctx, "read this inscription", models.ReadRoles,
		policy.Ownership{Doctorant: ins.DoctorantID, Supervisor: ins.Supervisor()}); err != nil {
		return nil, err
	}
	return ins, nil
}

// ListByDoctorant returns the candidate's inscriptions. A supervisor sees only
// the ones they supervise.
func (s *Service) ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Inscription, error) {
	if err := policy.AuthorizeList(ctx, "list these inscriptions", models.ReadRoles, doctorantID); err != nil {
		return nil, err
	}
	list, err := s.store.ListByDoctorant(ctx, doctorantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list inscriptions")
	}
	visible := make([]*models.Inscription, 0, len(list))
	for _, ins := range list {
		if policy.Owns(ctx, policy.Ownership{Doctorant: ins.DoctorantID, Supervisor: ins.Supervisor()}) {
			visible = append(visible, ins)
		}
	}
	return visible, nil
}

// ListByStatus is the administrative queue for one status.
func (s *Service) ListByStatus(ctx context.Context, status models.Status) ([]*models.Inscription, error) {
	if err := policy.Authorize(ctx, "list inscriptions by status", models.QueueRoles, policy.Ownership{}); err != nil {
		return nil, err
	}
	list, err := s.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list inscriptions")
	}
	return list, nil
}

// ListPendingForSupervisor returns renewals awaiting supervisorID.
func (s *Service) ListPendingForSupervisor(ctx context.Context, supervisorID id.SupervisorID) ([]*models.Inscription, error) {
	if err := policy.Authorize(ctx, "read this supervisor queue", models.SupervisorQueueRoles,
		policy.Ownership{Supervisor: supervisorID}); err != nil {
		return nil, err
	}
	pending, err := s.store.ListByStatus(ctx, models.StatusPendingSupervisor)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list inscriptions")
	}
	out := []*models.Inscription{}
	for _, ins := range pending {
		if ins.Supervisor() == supervisorID {
			out = append(out, ins)
		}
	}
	return out, nil
}

func (s *Service) transition(ctx context.Context, inscriptionID id.InscriptionID, dec models.Decision) (*models.Inscription, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "inscription.transition", trace.WithAttributes(
		attribute.String("workflow", "inscription"),
		attribute.String("action", string(dec.Action)),
		attribute.String("record_id", inscriptionID.String()),
	))
	defer span.End()

	if inscriptionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "inscription id is required")
	}
	ins, err := s.store.FindByID(ctx, inscriptionID)
	if err != nil {
		return nil, wrapInscriptionErr(err)
	}
	if err := policy.Authorize(ctx, string(dec.Action), models.RequiredRoles(dec.Action),
		policy.Ownership{Doctorant: ins.DoctorantID, Supervisor: ins.Supervisor()}); err != nil {
		return nil, err
	}

	from := ins.Status
	expected := ins.Version
	dec.At = requestcontext.Now(ctx)
	if err := ins.Apply(dec); err != nil {
		return nil, err
	}
	if needsDurationGate(ins.Kind, dec.Action) {
		if err := s.checkEligibility(ctx, ins); err != nil {
			return nil, err
		}
	}
	if err := s.store.Update(ctx, ins, expected); err != nil {
		return nil, wrapInscriptionErr(err)
	}

	if s.metrics != nil {
		s.metrics.IncTransition(from.String(), ins.Status.String())
		s.metrics.ObserveTransition(start)
	}
	s.logger.InfoContext(ctx, "inscription transitioned",
		"request_id", requestcontext.RequestID(ctx),
		"inscription_id", ins.ID,
		"from", from,
		"to", ins.Status,
	)
	s.emitter.Emit(ctx, s.event(events.TopicInscriptionStatusChanged, ins, from, dec.Comment))
	return ins, nil
}

func needsDurationGate(kind models.Kind, action models.Action) bool {
	return kind == models.KindRenewal && (action == models.ActionSubmit || action == models.ActionValidateByAdmin)
}

func (s *Service) checkEligibility(ctx context.Context, ins *models.Inscription) error {
	if s.eligibility == nil {
		return nil
	}
	verdict, err := s.eligibility.Eligibility(ctx, ins.DoctorantID)
	if err != nil {
		return err
	}
	if verdict.Eligible {
		return nil
	}
	if s.metrics != nil {
		s.metrics.IncEligibilityDenied()
	}
	s.logger.InfoContext(ctx, "renewal blocked by duration rules",
		"request_id", requestcontext.RequestID(ctx),
		"inscription_id", ins.ID,
		"doctorant_id", ins.DoctorantID,
		"next_year", verdict.NextYear,
		"required_exemption", verdict.RequiredExemptionType,
	)
	return dErrors.New(dErrors.CodeValidation, verdict.Message)
}

func (s *Service) event(topic events.Topic, ins *models.Inscription, from models.Status, comment string) events.Event {
	attrs := map[string]string{
		"campaign_id": ins.CampaignID.String(),
		"kind":        ins.Kind.String(),
	}
	if ins.SupervisorID != nil {
		attrs["supervisor_id"] = ins.SupervisorID.String()
	}
	return events.Event{
		Topic:       topic,
		Aggregate:   "inscription",
		AggregateID: ins.ID.String(),
		DoctorantID: ins.DoctorantID.String(),
		FromState:   from.String(),
		ToState:     ins.Status.String(),
		Subject:     ins.Subject,
		Comment:     comment,
		Attributes:  attrs,
	}
}

func wrapInscriptionErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "inscription not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "inscription was modified concurrently")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to access inscription store")
}
