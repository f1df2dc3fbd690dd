package models

import (
	"strings"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
)

type Status string

const (
	StatusDraft                Status = "DRAFT"
	StatusPendingSupervisor    Status = "PENDING_SUPERVISOR"
	StatusPendingAdmin         Status = "PENDING_ADMIN"
	StatusAdmitted             Status = "ADMITTED"
	StatusRejectedBySupervisor Status = "REJECTED_BY_SUPERVISOR"
	StatusRejectedByAdmin      Status = "REJECTED_BY_ADMIN"
)

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	return s == StatusAdmitted || s == StatusRejectedBySupervisor || s == StatusRejectedByAdmin
}

func (s Status) IsRejected() bool {
	return s == StatusRejectedBySupervisor || s == StatusRejectedByAdmin
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusDraft, StatusPendingSupervisor, StatusPendingAdmin,
		StatusAdmitted, StatusRejectedBySupervisor, StatusRejectedByAdmin:
		return st, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown inscription status %q", s)
}

// Kind is fixed at creation and selects the approval path.
type Kind string

const (
	KindFirst   Kind = "FIRST"
	KindRenewal Kind = "RENEWAL"
)

func (k Kind) String() string { return string(k) }

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(s))); k {
	case KindFirst, KindRenewal:
		return k, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown inscription kind %q", s)
}

type Action string

const (
	ActionSubmit               Action = "submit"
	ActionValidateBySupervisor Action = "validate_by_supervisor"
	ActionRejectBySupervisor   Action = "reject_by_supervisor"
	ActionValidateByAdmin      Action = "validate_by_admin"
	ActionRejectByAdmin        Action = "reject_by_admin"
)

type edge struct {
	from Status
	on   Action
}

var transitions = map[edge]Status{
	{StatusPendingSupervisor, ActionValidateBySupervisor}: StatusPendingAdmin,
	{StatusPendingSupervisor, ActionRejectBySupervisor}:   StatusRejectedBySupervisor,
	{StatusPendingAdmin, ActionValidateByAdmin}:           StatusAdmitted,
	{StatusPendingAdmin, ActionRejectByAdmin}:             StatusRejectedByAdmin,
}

// Transition returns the state reached by applying action to from. Submission
// is the only kind-dependent edge: renewals go to the supervisor first.
func Transition(from Status, action Action, kind Kind) (Status, error) {
	if action == ActionSubmit && from == StatusDraft {
		if kind == KindRenewal {
			return StatusPendingSupervisor, nil
		}
		return StatusPendingAdmin, nil
	}
	to, ok := transitions[edge{from, action}]
	if !ok {
		return "", dErrors.Newf(dErrors.CodeConflict, "cannot %s an inscription in state %s", action, from)
	}
	return to, nil
}

var requiredRoles = map[Action][]id.Role{
	ActionSubmit:               {id.RoleDoctorant, id.RoleAdmin},
	ActionValidateBySupervisor: {id.RoleSupervisor},
	ActionRejectBySupervisor:   {id.RoleSupervisor},
	ActionValidateByAdmin:      {id.RoleAdmin},
	ActionRejectByAdmin:        {id.RoleAdmin},
}

func RequiredRoles(action Action) []id.Role {
	return requiredRoles[action]
}

// CreateRoles may open a draft.
var CreateRoles = []id.Role{id.RoleDoctorant, id.RoleAdmin}

// ReadRoles may read a registration; candidates and supervisors only their own.
var ReadRoles = []id.Role{id.RoleDoctorant, id.RoleSupervisor, id.RoleAdmin, id.RoleSystem}

func CommentRequired(action Action) bool {
	return action == ActionRejectBySupervisor || action == ActionRejectByAdmin
}

// QueueRoles may list records by status across all candidates.
var QueueRoles = []id.Role{id.RoleAdmin, id.RoleSystem}

// SupervisorQueueRoles may read a supervisor's pending queue; supervisors only their own.
var SupervisorQueueRoles = []id.Role{id.RoleSupervisor, id.RoleAdmin, id.RoleSystem}
