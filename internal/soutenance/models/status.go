package models

import (
	"strings"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
)

type Status string

const (
	StatusDraft                  Status = "DRAFT"
	StatusSubmitted              Status = "SUBMITTED"
	StatusPrerequisitesValidated Status = "PREREQUISITES_VALIDATED"
	StatusJuryProposed           Status = "JURY_PROPOSED"
	StatusAuthorized             Status = "AUTHORIZED"
	StatusScheduled              Status = "SCHEDULED"
	StatusCompleted              Status = "COMPLETED"
	StatusRejected               Status = "REJECTED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusDraft, StatusSubmitted, StatusPrerequisitesValidated, StatusJuryProposed,
		StatusAuthorized, StatusScheduled, StatusCompleted, StatusRejected:
		return st, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown soutenance status %q", s)
}

// Action names every operation on a defense, including the ones that edit
// the record without moving it.
type Action string

const (
	ActionUpdateDraft           Action = "update_draft"
	ActionSubmit                Action = "submit"
	ActionUpdatePrerequisites   Action = "update_prerequisites"
	ActionValidatePrerequisites Action = "validate_prerequisites"
	ActionAddJuryMember         Action = "add_jury_member"
	ActionRemoveJuryMember      Action = "remove_jury_member"
	ActionProposeJury           Action = "propose_jury"
	ActionSubmitReport          Action = "submit_report"
	ActionAuthorize             Action = "authorize"
	ActionProposeDate           Action = "propose_date"
	ActionSchedule              Action = "schedule"
	ActionRecordResult          Action = "record_result"
	ActionReject                Action = "reject"
)

type edge struct {
	from Status
	on   Action
}

// transitions lists every legal (state, action) pair. Editing actions map a
// state to itself.
var transitions = map[edge]Status{
	{StatusDraft, ActionUpdateDraft}:                       StatusDraft,
	{StatusDraft, ActionUpdatePrerequisites}:               StatusDraft,
	{StatusDraft, ActionSubmit}:                            StatusSubmitted,
	{StatusSubmitted, ActionUpdatePrerequisites}:           StatusSubmitted,
	{StatusSubmitted, ActionValidatePrerequisites}:         StatusPrerequisitesValidated,
	{StatusSubmitted, ActionReject}:                        StatusRejected,
	{StatusPrerequisitesValidated, ActionAddJuryMember}:    StatusPrerequisitesValidated,
	{StatusPrerequisitesValidated, ActionRemoveJuryMember}: StatusPrerequisitesValidated,
	{StatusPrerequisitesValidated, ActionProposeJury}:      StatusJuryProposed,
	{StatusPrerequisitesValidated, ActionReject}:           StatusRejected,
	{StatusJuryProposed, ActionSubmitReport}:               StatusJuryProposed,
	{StatusJuryProposed, ActionAuthorize}:                  StatusAuthorized,
	{StatusJuryProposed, ActionReject}:                     StatusRejected,
	{StatusAuthorized, ActionProposeDate}:                  StatusAuthorized,
	{StatusAuthorized, ActionSchedule}:                     StatusScheduled,
	{StatusScheduled, ActionRecordResult}:                  StatusCompleted,
}

// Transition returns the state reached by applying action to from, or a
// conflict error when the pair is not legal.
func Transition(from Status, action Action) (Status, error) {
	to, ok := transitions[edge{from, action}]
	if !ok {
		return "", dErrors.Newf(dErrors.CodeConflict, "cannot %s a soutenance in state %s", action, from)
	}
	return to, nil
}

var requiredRoles = map[Action][]id.Role{
	ActionUpdateDraft:           {id.RoleDoctorant, id.RoleSupervisor, id.RoleAdmin},
	ActionSubmit:                {id.RoleDoctorant, id.RoleSupervisor, id.RoleAdmin},
	ActionUpdatePrerequisites:   {id.RoleDoctorant, id.RoleSupervisor, id.RoleAdmin},
	ActionValidatePrerequisites: {id.RoleAdmin},
	ActionAddJuryMember:         {id.RoleSupervisor, id.RoleAdmin},
	ActionRemoveJuryMember:      {id.RoleSupervisor, id.RoleAdmin},
	ActionProposeJury:           {id.RoleSupervisor, id.RoleAdmin},
	ActionSubmitReport:          {id.RoleJuryMember, id.RoleAdmin},
	ActionAuthorize:             {id.RoleAdmin},
	ActionProposeDate:           {id.RoleSupervisor, id.RoleAdmin},
	ActionSchedule:              {id.RoleAdmin},
	ActionRecordResult:          {id.RoleAdmin},
	ActionReject:                {id.RoleAdmin},
}

func RequiredRoles(action Action) []id.Role {
	return requiredRoles[action]
}

// ReadRoles may read a defense. Candidates and supervisors see only their own;
// jury members read the file they are asked to report on.
var ReadRoles = []id.Role{id.RoleDoctorant, id.RoleSupervisor, id.RoleAdmin, id.RoleJuryMember, id.RoleSystem}

// QueueRoles may list records by status across all candidates.
var QueueRoles = []id.Role{id.RoleAdmin, id.RoleSystem}
