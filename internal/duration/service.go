package duration

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/requestcontext"
)

// RegistrationReader lists the registration facts for a candidate.
type RegistrationReader interface {
	RegistrationHistory(ctx context.Context, doctorantID id.DoctorantID) ([]RegistrationFact, error)
}

// ExemptionReader lists exemptions that are valid on the request date.
type ExemptionReader interface {
	ValidExemptions(ctx context.Context, doctorantID id.DoctorantID) ([]ExemptionFact, error)
}

// Service answers duration queries. It performs no writes and caches nothing,
// so every call sees the latest committed records.
type Service struct {
	registrations RegistrationReader
	exemptions    ExemptionReader
	rules         Rules
	logger        *slog.Logger
	tracer        trace.Tracer
}

type Option func(*Service)

func WithRules(r Rules) Option {
	return func(s *Service) {
		s.rules = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(registrations RegistrationReader, exemptions ExemptionReader, opts ...Option) *Service {
	s := &Service{
		registrations: registrations,
		exemptions:    exemptions,
		rules:         DefaultRules(),
		logger:        slog.Default(),
		tracer:        otel.Tracer("doctorat/duration"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetExemptionReader breaks the construction cycle with the exemption
// workflow, which itself asks this service for the next year.
func (s *Service) SetExemptionReader(r ExemptionReader) {
	s.exemptions = r
}

func (s *Service) CurrentYear(ctx context.Context, doctorantID id.DoctorantID) (int, error) {
	history, err := s.history(ctx, doctorantID)
	if err != nil {
		return 0, err
	}
	return CurrentYear(history, requestcontext.Now(ctx)), nil
}

func (s *Service) NextYear(ctx context.Context, doctorantID id.DoctorantID) (int, error) {
	current, err := s.CurrentYear(ctx, doctorantID)
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}

// Eligibility evaluates renewal for the candidate's next year.
func (s *Service) Eligibility(ctx context.Context, doctorantID id.DoctorantID) (*Eligibility, error) {
	ctx, span := s.tracer.Start(ctx, "duration.Eligibility",
		trace.WithAttributes(attribute.String("doctorant_id", doctorantID.String())))
	defer span.End()

	history, err := s.history(ctx, doctorantID)
	if err != nil {
		return nil, err
	}
	var exemptions []ExemptionFact
	if s.exemptions != nil {
		exemptions, err = s.exemptions.ValidExemptions(ctx, doctorantID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load exemptions")
		}
	}

	e := Evaluate(s.rules, history, exemptions, requestcontext.Now(ctx))
	span.SetAttributes(
		attribute.Int("current_year", e.CurrentYear),
		attribute.Bool("eligible", e.Eligible),
	)
	s.logger.DebugContext(ctx, "eligibility evaluated",
		"doctorant_id", doctorantID,
		"current_year", e.CurrentYear,
		"eligible", e.Eligible,
		"exemption_required", e.ExemptionRequired,
	)
	return &e, nil
}

func (s *Service) history(ctx context.Context, doctorantID id.DoctorantID) ([]RegistrationFact, error) {
	if doctorantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "doctorant id is required")
	}
	history, err := s.registrations.RegistrationHistory(ctx, doctorantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration history")
	}
	return history, nil
}
