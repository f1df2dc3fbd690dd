package models

import (
	"time"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/text"
)

const maxSubjectLength = 1000

// Inscription is one candidate's registration for one campaign.
type Inscription struct {
	ID           id.InscriptionID
	DoctorantID  id.DoctorantID
	SupervisorID *id.SupervisorID
	CampaignID   id.CampaignID
	Kind         Kind
	Status       Status
	Subject      string
	Laboratory   string

	// FirstRegistrationDate marks the academic start. Admission of a FIRST
	// inscription stamps it; migrated records may carry it from creation.
	FirstRegistrationDate *time.Time

	SubmittedAt           *time.Time
	SupervisorComment     string
	SupervisorValidatedAt *time.Time
	AdminComment          string
	AdminValidatedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// NewInscription builds a DRAFT record.
func NewInscription(
	inscriptionID id.InscriptionID,
	doctorantID id.DoctorantID,
	supervisorID *id.SupervisorID,
	campaignID id.CampaignID,
	kind Kind,
	subject string,
	laboratory string,
	firstRegistration *time.Time,
	now time.Time,
) (*Inscription, error) {
	subject = text.Normalize(subject)
	if doctorantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "doctorant is required")
	}
	if campaignID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "campaign is required")
	}
	if kind != KindFirst && kind != KindRenewal {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "invalid kind %q", kind)
	}
	if subject == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "thesis subject is required")
	}
	if supervisorID != nil && supervisorID.IsNil() {
		supervisorID = nil
	}
	var first *time.Time
	if firstRegistration != nil {
		if firstRegistration.After(now) {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "first registration date cannot be in the future")
		}
		first = clonePtr(firstRegistration)
	}
	return &Inscription{
		ID:                    inscriptionID,
		DoctorantID:           doctorantID,
		SupervisorID:          clonePtr(supervisorID),
		CampaignID:            campaignID,
		Kind:                  kind,
		Status:                StatusDraft,
		Subject:               text.Truncate(subject, maxSubjectLength),
		Laboratory:            text.Normalize(laboratory),
		FirstRegistrationDate: first,
		CreatedAt:             now,
		UpdatedAt:             now,
		Version:               1,
	}, nil
}

// Decision is one actor step on the record. Supervisor is only read on
// admin validation of a FIRST inscription.
type Decision struct {
	Action     Action
	Comment    string
	At         time.Time
	Supervisor *id.SupervisorID
}

// Apply moves the record along one edge. The record is unchanged on error.
func (i *Inscription) Apply(dec Decision) error {
	next, err := Transition(i.Status, dec.Action, i.Kind)
	if err != nil {
		return err
	}
	comment := text.Normalize(dec.Comment)
	if CommentRequired(dec.Action) && comment == "" {
		return dErrors.New(dErrors.CodeValidation, "a comment is required to reject an inscription")
	}
	if dec.Action == ActionSubmit && i.Kind == KindRenewal && i.SupervisorID == nil {
		return dErrors.New(dErrors.CodeValidation, "a renewal requires an assigned supervisor")
	}
	supervisor := i.SupervisorID
	if dec.Action == ActionValidateByAdmin && i.Kind == KindFirst {
		if dec.Supervisor != nil && !dec.Supervisor.IsNil() {
			supervisor = clonePtr(dec.Supervisor)
		}
		if supervisor == nil {
			return dErrors.New(dErrors.CodeValidation, "a supervisor must be assigned to admit a first inscription")
		}
	}

	at := dec.At
	switch dec.Action {
	case ActionSubmit:
		i.SubmittedAt = &at
	case ActionValidateBySupervisor, ActionRejectBySupervisor:
		i.SupervisorComment = comment
		i.SupervisorValidatedAt = &at
	case ActionValidateByAdmin:
		i.AdminComment = comment
		i.AdminValidatedAt = &at
		i.SupervisorID = supervisor
		if i.Kind == KindFirst && i.FirstRegistrationDate == nil {
			i.FirstRegistrationDate = &at
		}
	case ActionRejectByAdmin:
		i.AdminComment = comment
		i.AdminValidatedAt = &at
	}
	i.Status = next
	i.UpdatedAt = at
	return nil
}

// Supervisor returns the assigned supervisor, or the nil id before assignment.
func (i *Inscription) Supervisor() id.SupervisorID {
	if i.SupervisorID == nil {
		return id.SupervisorID{}
	}
	return *i.SupervisorID
}

func (i *Inscription) Clone() *Inscription {
	if i == nil {
		return nil
	}
	c := *i
	c.SupervisorID = clonePtr(i.SupervisorID)
	c.FirstRegistrationDate = clonePtr(i.FirstRegistrationDate)
	c.SubmittedAt = clonePtr(i.SubmittedAt)
	c.SupervisorValidatedAt = clonePtr(i.SupervisorValidatedAt)
	c.AdminValidatedAt = clonePtr(i.AdminValidatedAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
