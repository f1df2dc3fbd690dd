package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	derogationmetrics "doctorat/internal/derogation/metrics"
	"doctorat/internal/derogation/models"
	"doctorat/internal/duration"
	"doctorat/internal/policy"
	"doctorat/internal/profile"
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/events"
	"doctorat/pkg/platform/sentinel"
	"doctorat/pkg/requestcontext"
)

// Store persists derogations with optimistic concurrency.
type Store interface {
	CreateIfNonePending(ctx context.Context, d *models.Derogation) error
	FindByID(ctx context.Context, derogationID id.DerogationID) (*models.Derogation, error)
	ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Derogation, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Derogation, error)
	ListExpirable(ctx context.Context, today time.Time) ([]*models.Derogation, error)
	Update(ctx context.Context, d *models.Derogation, expectedVersion int) error
}

// YearCalculator resolves the year a SUSPENSION or OTHER request targets.
type YearCalculator interface {
	NextYear(ctx context.Context, doctorantID id.DoctorantID) (int, error)
}

// ProfileLookup resolves the candidate's supervisor when a request omits it.
type ProfileLookup interface {
	GetProfile(ctx context.Context, profileID uuid.UUID) profile.Profile
}

// Service runs the two-stage derogation approval workflow.
type Service struct {
	store    Store
	years    YearCalculator
	profiles ProfileLookup
	emitter  *events.Emitter
	metrics  *derogationmetrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	cycle    models.AcademicCycle
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

func WithMetrics(m *derogationmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithProfiles(p ProfileLookup) Option {
	return func(s *Service) {
		s.profiles = p
	}
}

func WithYearCalculator(y YearCalculator) Option {
	return func(s *Service) {
		s.years = y
	}
}

func WithAcademicCycle(c models.AcademicCycle) Option {
	return func(s *Service) {
		s.cycle = c
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer("doctorat/derogation"),
		cycle:  models.DefaultCycle(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestInput opens a derogation. SupervisorID may be omitted and is then
// taken from the candidate's profile.
type RequestInput struct {
	DoctorantID   id.DoctorantID
	SupervisorID  *id.SupervisorID
	InscriptionID *id.InscriptionID
	Type          models.ExemptionType
	Motif         string
}

// Request creates a derogation in PENDING_SUPERVISOR. A second pending
// request of the same type for the same candidate is a conflict.
func (s *Service) Request(ctx context.Context, in RequestInput) (*models.Derogation, error) {
	ctx, span := s.tracer.Start(ctx, "derogation.Request")
	defer span.End()

	if in.DoctorantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "doctorant_id is required")
	}
	supervisorID, err := s.resolveSupervisor(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(ctx, "request a derogation", models.RequestRoles,
		policy.Ownership{Doctorant: in.DoctorantID, Supervisor: supervisorID}); err != nil {
		return nil, err
	}
	year, err := s.requestedYear(ctx, in)
	if err != nil {
		return nil, err
	}

	d, err := models.NewDerogation(id.DerogationID(uuid.New()), in.DoctorantID, supervisorID,
		in.InscriptionID, in.Type, in.Motif, year, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.store.CreateIfNonePending(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "a %s derogation is already pending for this candidate", d.Type)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create derogation")
	}

	if s.metrics != nil {
		s.metrics.IncRequested(d.Type.String())
	}
	s.logger.InfoContext(ctx, "derogation requested",
		"request_id", requestcontext.RequestID(ctx),
		"derogation_id", d.ID,
		"doctorant_id", d.DoctorantID,
		"type", d.Type,
		"requested_year", d.RequestedYear,
	)
	s.emitter.Emit(ctx, s.event(events.TopicDerogationRequested, d, "", ""))
	return d, nil
}

func (s *Service) ApproveBySupervisor(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error) {
	return s.transition(ctx, derogationID, models.ActionApproveBySupervisor, comment)
}

func (s *Service) RefuseBySupervisor(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error) {
	return s.transition(ctx, derogationID, models.ActionRefuseBySupervisor, comment)
}

// ApproveByAdmin grants the derogation and fixes its expiration to the end of
// the following academic cycle.
func (s *Service) ApproveByAdmin(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error) {
	return s.transition(ctx, derogationID, models.ActionApproveByAdmin, comment)
}

func (s *Service) RefuseByAdmin(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error) {
	return s.transition(ctx, derogationID, models.ActionRefuseByAdmin, comment)
}

// Cancel withdraws a pending request on the candidate's behalf.
func (s *Service) Cancel(ctx context.Context, derogationID id.DerogationID, comment string) (*models.Derogation, error) {
	return s.transition(ctx, derogationID, models.ActionCancel, comment)
}

// RequiredRoles exposes the roles allowed to perform action.
func (s *Service) RequiredRoles(action models.Action) []id.Role {
	return models.RequiredRoles(action)
}

// Get returns one request. Candidates and supervisors may read only their own.
func (s *Service) Get(ctx context.Context, derogationID id.DerogationID) (*models.Derogation, error) {
	d, err := s.store.FindByID(ctx, derogationID)
	if err != nil {
		return nil, wrapDerogationErr(err)
	}
	if err := policy.Authorize(ctx, "read this derogation", models.ReadRoles,
		policy.Ownership{Doctorant: d.DoctorantID, Supervisor: d.SupervisorID}); err != nil {
		return nil, err
	}
	return d, nil
}

// ListByDoctorant returns the candidate's requests. A supervisor sees only
// the ones addressed to them.
func (s *Service) ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Derogation, error) {
	if err := policy.AuthorizeList(ctx, "list these derogations", models.ReadRoles, doctorantID); err != nil {
		return nil, err
	}
	list, err := s.store.ListByDoctorant(ctx, doctorantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list derogations")
	}
	visible := make([]*models.Derogation, 0, len(list))
	for _, d := range list {
		if policy.Owns(ctx, policy.Ownership{Doctorant: d.DoctorantID, Supervisor: d.SupervisorID}) {
			visible = append(visible, d)
		}
	}
	return visible, nil
}

// ListByStatus is the administrative queue for one status.
func (s *Service) ListByStatus(ctx context.Context, status models.Status) ([]*models.Derogation, error) {
	if err := policy.Authorize(ctx, "list derogations by status", models.QueueRoles, policy.Ownership{}); err != nil {
		return nil, err
	}
	list, err := s.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list derogations")
	}
	return list, nil
}

// ListPendingForSupervisor returns the requests awaiting supervisorID's decision.
func (s *Service) ListPendingForSupervisor(ctx context.Context, supervisorID id.SupervisorID) ([]*models.Derogation, error) {
	if err := policy.Authorize(ctx, "read this supervisor queue", models.SupervisorQueueRoles,
		policy.Ownership{Supervisor: supervisorID}); err != nil {
		return nil, err
	}
	pending, err := s.store.ListByStatus(ctx, models.StatusPendingSupervisor)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list derogations")
	}
	out := []*models.Derogation{}
	for _, d := range pending {
		if d.SupervisorID == supervisorID {
			out = append(out, d)
		}
	}
	return out, nil
}

// IsValid reports whether the derogation is approved and unexpired on the
// request date. It does not depend on the expiry sweep having run.
func (s *Service) IsValid(ctx context.Context, derogationID id.DerogationID) (bool, error) {
	d, err := s.Get(ctx, derogationID)
	if err != nil {
		return false, err
	}
	return d.IsValidOn(requestcontext.Now(ctx)), nil
}

// ListValid returns the candidate's derogations that are valid on the request date.
func (s *Service) ListValid(ctx context.Context, doctorantID id.DoctorantID) ([]*models.Derogation, error) {
	all, err := s.store.ListByDoctorant(ctx, doctorantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list derogations")
	}
	today := requestcontext.Now(ctx)
	var valid []*models.Derogation
	for _, d := range all {
		if d.IsValidOn(today) {
			valid = append(valid, d)
		}
	}
	return valid, nil
}

func (s *Service) transition(ctx context.Context, derogationID id.DerogationID, action models.Action, comment string) (*models.Derogation, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "derogation.transition", trace.WithAttributes(
		attribute.String("workflow", "derogation"),
		attribute.String("action", string(action)),
		attribute.String("record_id", derogationID.String()),
	))
	defer span.End()

	if derogationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "derogation id is required")
	}
	d, err := s.store.FindByID(ctx, derogationID)
	if err != nil {
		return nil, wrapDerogationErr(err)
	}
	if err := policy.Authorize(ctx, string(action), models.RequiredRoles(action),
		policy.Ownership{Doctorant: d.DoctorantID, Supervisor: d.SupervisorID}); err != nil {
		return nil, err
	}

	from := d.Status
	expected := d.Version
	if err := d.Apply(models.Decision{Action: action, Comment: comment, At: requestcontext.Now(ctx), Cycle: s.cycle}); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, d, expected); err != nil {
		return nil, wrapDerogationErr(err)
	}

	s.committed(ctx, d, from, comment)
	if s.metrics != nil {
		s.metrics.ObserveTransition(start)
	}
	return d, nil
}

func (s *Service) committed(ctx context.Context, d *models.Derogation, from models.Status, comment string) {
	if s.metrics != nil {
		s.metrics.IncTransition(from.String(), d.Status.String())
	}
	s.logger.InfoContext(ctx, "derogation transitioned",
		"request_id", requestcontext.RequestID(ctx),
		"derogation_id", d.ID,
		"from", from,
		"to", d.Status,
	)
	s.emitter.Emit(ctx, s.event(events.TopicDerogationDecision, d, from, comment))
}

func (s *Service) resolveSupervisor(ctx context.Context, in RequestInput) (id.SupervisorID, error) {
	if in.SupervisorID != nil && !in.SupervisorID.IsNil() {
		return *in.SupervisorID, nil
	}
	if s.profiles == nil {
		return id.SupervisorID{}, dErrors.New(dErrors.CodeValidation, "supervisor_id is required")
	}
	p := s.profiles.GetProfile(ctx, uuid.UUID(in.DoctorantID))
	if p.Placeholder {
		s.logger.WarnContext(ctx, "profile lookup degraded while resolving supervisor",
			"doctorant_id", in.DoctorantID,
			"code", dErrors.CodeDependencyDegraded,
		)
		return id.SupervisorID{}, dErrors.New(dErrors.CodeValidation,
			"supervisor_id is required: candidate profile is unavailable")
	}
	if p.SupervisorID == nil || *p.SupervisorID == uuid.Nil {
		return id.SupervisorID{}, dErrors.New(dErrors.CodeValidation,
			"supervisor_id is required: candidate has no supervisor on record")
	}
	return id.SupervisorID(*p.SupervisorID), nil
}

func (s *Service) requestedYear(ctx context.Context, in RequestInput) (int, error) {
	if year := in.Type.TargetYear(); year > 0 {
		return year, nil
	}
	if s.years == nil {
		return 0, dErrors.Newf(dErrors.CodeValidation, "cannot resolve the year targeted by a %s derogation", in.Type)
	}
	year, err := s.years.NextYear(ctx, in.DoctorantID)
	if err != nil {
		return 0, err
	}
	if limit := duration.DefaultRules().MaxYears; year > limit {
		return 0, dErrors.Newf(dErrors.CodeValidation,
			"a %s derogation cannot target year %d; the doctorate ends after year %d", in.Type, year, limit)
	}
	return year, nil
}

func (s *Service) event(topic events.Topic, d *models.Derogation, from models.Status, comment string) events.Event {
	return events.Event{
		Topic:       topic,
		Aggregate:   "derogation",
		AggregateID: d.ID.String(),
		DoctorantID: d.DoctorantID.String(),
		FromState:   from.String(),
		ToState:     d.Status.String(),
		Subject:     fmt.Sprintf("%s derogation for year %d", d.Type, d.RequestedYear),
		Comment:     comment,
		Attributes:  eventAttributes(d),
	}
}

func eventAttributes(d *models.Derogation) map[string]string {
	attrs := map[string]string{
		"supervisor_id":  d.SupervisorID.String(),
		"exemption_type": d.Type.String(),
		"requested_year": fmt.Sprint(d.RequestedYear),
	}
	if d.ExpirationDate != nil {
		attrs["expiration_date"] = d.ExpirationDate.Format(time.DateOnly)
	}
	return attrs
}

func wrapDerogationErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "derogation not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "derogation was modified concurrently")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, "derogation already exists")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to access derogation store")
}
