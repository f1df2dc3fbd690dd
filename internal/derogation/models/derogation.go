package models

import (
	"time"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/platform/text"
)

const maxMotifLength = 4000

// Derogation is a request to register beyond the normal doctoral duration.
//
// Invariants:
//   - Status only moves along the edges in Transition.
//   - Pending records have no admin decision; APPROVED records carry ExpirationDate.
//   - Version increases by one on every persisted change.
type Derogation struct {
	ID            id.DerogationID
	DoctorantID   id.DoctorantID
	SupervisorID  id.SupervisorID
	InscriptionID *id.InscriptionID
	Type          ExemptionType
	Status        Status
	Motif         string
	RequestedYear int

	SupervisorComment    string
	SupervisorDecisionAt *time.Time
	AdminComment         string
	AdminDecisionAt      *time.Time
	ExpirationDate       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// NewDerogation builds a request in PENDING_SUPERVISOR.
func NewDerogation(
	derogationID id.DerogationID,
	doctorantID id.DoctorantID,
	supervisorID id.SupervisorID,
	inscriptionID *id.InscriptionID,
	exemptionType ExemptionType,
	motif string,
	requestedYear int,
	now time.Time,
) (*Derogation, error) {
	motif = text.Normalize(motif)
	if doctorantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "doctorant is required")
	}
	if supervisorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "supervisor is required")
	}
	if motif == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "motif is required")
	}
	if len([]rune(motif)) > maxMotifLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "motif is too long")
	}
	if requestedYear <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "requested year must be positive")
	}
	return &Derogation{
		ID:            derogationID,
		DoctorantID:   doctorantID,
		SupervisorID:  supervisorID,
		InscriptionID: inscriptionID,
		Type:          exemptionType,
		Status:        StatusPendingSupervisor,
		Motif:         motif,
		RequestedYear: requestedYear,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
	}, nil
}

// Decision carries the inputs of an actor transition.
type Decision struct {
	Action  Action
	Comment string
	At      time.Time
	Cycle   AcademicCycle
}

// Apply moves the record along one edge. The record is unchanged on error.
func (d *Derogation) Apply(dec Decision) error {
	next, err := Transition(d.Status, dec.Action)
	if err != nil {
		return err
	}
	comment := text.Normalize(dec.Comment)
	if CommentRequired(dec.Action) && comment == "" {
		return dErrors.New(dErrors.CodeValidation, "a comment is required to refuse a derogation")
	}

	at := dec.At
	switch dec.Action {
	case ActionApproveBySupervisor, ActionRefuseBySupervisor:
		d.SupervisorComment = comment
		d.SupervisorDecisionAt = &at
	case ActionApproveByAdmin:
		d.AdminComment = comment
		d.AdminDecisionAt = &at
		exp := dec.Cycle.ExpirationFor(at)
		d.ExpirationDate = &exp
	case ActionRefuseByAdmin:
		d.AdminComment = comment
		d.AdminDecisionAt = &at
	}
	d.Status = next
	d.UpdatedAt = at
	return nil
}

// IsValidOn reports whether the exemption can be relied on at today's date:
// approved and not past its expiration date.
func (d *Derogation) IsValidOn(today time.Time) bool {
	if d.Status != StatusApproved {
		return false
	}
	if d.ExpirationDate == nil {
		return true
	}
	return !dateOf(today).After(dateOf(*d.ExpirationDate))
}

// IsExpiredOn reports whether an approved record has passed its expiration.
func (d *Derogation) IsExpiredOn(today time.Time) bool {
	return d.Status == StatusApproved && d.ExpirationDate != nil && !d.IsValidOn(today)
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (d *Derogation) Clone() *Derogation {
	if d == nil {
		return nil
	}
	cp := *d
	cp.InscriptionID = clonePtr(d.InscriptionID)
	cp.SupervisorDecisionAt = clonePtr(d.SupervisorDecisionAt)
	cp.AdminDecisionAt = clonePtr(d.AdminDecisionAt)
	cp.ExpirationDate = clonePtr(d.ExpirationDate)
	return &cp
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
