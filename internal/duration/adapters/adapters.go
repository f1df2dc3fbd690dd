// Package adapters feeds the duration service from the inscription and
// derogation workflows without those packages depending on each other.
package adapters

import (
	"context"

	derogationmodels "doctorat/internal/derogation/models"
	"doctorat/internal/duration"
	inscriptionmodels "doctorat/internal/inscription/models"
	id "doctorat/pkg/domain"
)

type InscriptionLister interface {
	ListByDoctorant(ctx context.Context, doctorantID id.DoctorantID) ([]*inscriptionmodels.Inscription, error)
}

// Registrations reads registration history from inscriptions. Rejected
// inscriptions never started a year and are left out.
type Registrations struct {
	inscriptions InscriptionLister
}

func NewRegistrations(inscriptions InscriptionLister) *Registrations {
	return &Registrations{inscriptions: inscriptions}
}

func (a *Registrations) RegistrationHistory(ctx context.Context, doctorantID id.DoctorantID) ([]duration.RegistrationFact, error) {
	list, err := a.inscriptions.ListByDoctorant(ctx, doctorantID)
	if err != nil {
		return nil, err
	}
	facts := make([]duration.RegistrationFact, 0, len(list))
	for _, ins := range list {
		if ins.Status.IsRejected() {
			continue
		}
		facts = append(facts, duration.RegistrationFact{
			CreatedAt:             ins.CreatedAt,
			FirstRegistrationDate: ins.FirstRegistrationDate,
		})
	}
	return facts, nil
}

type ValidDerogationLister interface {
	ListValid(ctx context.Context, doctorantID id.DoctorantID) ([]*derogationmodels.Derogation, error)
}

// Exemptions exposes derogations valid on the request date.
type Exemptions struct {
	derogations ValidDerogationLister
}

func NewExemptions(derogations ValidDerogationLister) *Exemptions {
	return &Exemptions{derogations: derogations}
}

func (a *Exemptions) ValidExemptions(ctx context.Context, doctorantID id.DoctorantID) ([]duration.ExemptionFact, error) {
	list, err := a.derogations.ListValid(ctx, doctorantID)
	if err != nil {
		return nil, err
	}
	facts := make([]duration.ExemptionFact, 0, len(list))
	for _, d := range list {
		facts = append(facts, duration.ExemptionFact{RequestedYear: d.RequestedYear})
	}
	return facts, nil
}
