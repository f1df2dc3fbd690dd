package models

import (
	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
)

// Status of an exemption request.
type Status string

const (
	StatusPendingSupervisor Status = "PENDING_SUPERVISOR"
	StatusPendingAdmin      Status = "PENDING_ADMIN"
	StatusApproved          Status = "APPROVED"
	StatusRefused           Status = "REFUSED"
	StatusExpired           Status = "EXPIRED"
	StatusCancelled         Status = "CANCELLED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsPending() bool {
	return s == StatusPendingSupervisor || s == StatusPendingAdmin
}

// IsTerminal reports whether no actor transition leaves s. APPROVED is
// terminal for actors; only the system expiry moves it.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRefused, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPendingSupervisor, StatusPendingAdmin, StatusApproved, StatusRefused, StatusExpired, StatusCancelled:
		return st, nil
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown derogation status %q", s)
}

// Action is an event applied to an exemption request.
type Action string

const (
	ActionApproveBySupervisor Action = "approve_by_supervisor"
	ActionRefuseBySupervisor  Action = "refuse_by_supervisor"
	ActionApproveByAdmin      Action = "approve_by_admin"
	ActionRefuseByAdmin       Action = "refuse_by_admin"
	ActionCancel              Action = "cancel"
	ActionExpire              Action = "expire"
)

type edge struct {
	from Status
	on   Action
}

var transitions = map[edge]Status{
	{StatusPendingSupervisor, ActionApproveBySupervisor}: StatusPendingAdmin,
	{StatusPendingSupervisor, ActionRefuseBySupervisor}:  StatusRefused,
	{StatusPendingSupervisor, ActionCancel}:              StatusCancelled,
	{StatusPendingAdmin, ActionApproveByAdmin}:           StatusApproved,
	{StatusPendingAdmin, ActionRefuseByAdmin}:            StatusRefused,
	{StatusPendingAdmin, ActionCancel}:                   StatusCancelled,
	{StatusApproved, ActionExpire}:                       StatusExpired,
}

// Transition returns the state reached by applying action to from, or a
// conflict error when the edge does not exist.
func Transition(from Status, action Action) (Status, error) {
	to, ok := transitions[edge{from, action}]
	if !ok {
		return "", dErrors.Newf(dErrors.CodeConflict, "cannot %s a derogation in state %s", action, from)
	}
	return to, nil
}

var requiredRoles = map[Action][]id.Role{
	ActionApproveBySupervisor: {id.RoleSupervisor},
	ActionRefuseBySupervisor:  {id.RoleSupervisor},
	ActionApproveByAdmin:      {id.RoleAdmin},
	ActionRefuseByAdmin:       {id.RoleAdmin},
	ActionCancel:              {id.RoleDoctorant, id.RoleAdmin},
	ActionExpire:              {id.RoleSystem, id.RoleAdmin},
}

// RequiredRoles lists the roles allowed to perform action.
func RequiredRoles(action Action) []id.Role {
	return requiredRoles[action]
}

// RequestRoles may open a new exemption request.
var RequestRoles = []id.Role{id.RoleDoctorant, id.RoleSupervisor, id.RoleAdmin}

// ReadRoles may read an exemption; candidates and supervisors only their own.
var ReadRoles = []id.Role{id.RoleDoctorant, id.RoleSupervisor, id.RoleAdmin, id.RoleSystem}

// CommentRequired reports whether action needs a non-empty comment.
func CommentRequired(action Action) bool {
	return action == ActionRefuseBySupervisor || action == ActionRefuseByAdmin
}

// QueueRoles may list records by status across all candidates.
var QueueRoles = []id.Role{id.RoleAdmin, id.RoleSystem}

// SupervisorQueueRoles may read a supervisor's pending queue; supervisors only their own.
var SupervisorQueueRoles = []id.Role{id.RoleSupervisor, id.RoleAdmin, id.RoleSystem}
