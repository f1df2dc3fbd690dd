// Package policy gates workflow transitions on the acting role and record ownership.
package policy

import (
	"context"
	"slices"

	"github.com/google/uuid"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/requestcontext"
)

// Ownership identifies the parties attached to a record.
type Ownership struct {
	Doctorant  id.DoctorantID
	Supervisor id.SupervisorID
}

// Authorize checks the actor in ctx against the roles allowed for action.
//
// A context without an actor is an in-process call and passes. DOCTORANT and
// SUPERVISOR actors must be the record's doctorant or supervisor. ADMIN,
// SYSTEM and JURY_MEMBER are not tied to ownership.
func Authorize(ctx context.Context, action string, allowed []id.Role, owner Ownership) error {
	actor := requestcontext.Actor(ctx)
	if !actor.Present() {
		return nil
	}
	if !slices.Contains(allowed, actor.Role) {
		return dErrors.Newf(dErrors.CodeForbidden, "role %s may not %s", actor.Role, action)
	}
	if Owns(ctx, owner) {
		return nil
	}
	if actor.Role == id.RoleSupervisor {
		return dErrors.Newf(dErrors.CodeForbidden, "only the assigned supervisor may %s", action)
	}
	return dErrors.Newf(dErrors.CodeForbidden, "only the candidate may %s", action)
}

// AuthorizeList gates listing one candidate's records. Candidates list only
// their own; supervisors pass here and are narrowed per record with Owns.
func AuthorizeList(ctx context.Context, action string, allowed []id.Role, doctorant id.DoctorantID) error {
	actor := requestcontext.Actor(ctx)
	if !actor.Present() {
		return nil
	}
	if !slices.Contains(allowed, actor.Role) {
		return dErrors.Newf(dErrors.CodeForbidden, "role %s may not %s", actor.Role, action)
	}
	if actor.Role == id.RoleDoctorant && uuid.UUID(actor.ID) != uuid.UUID(doctorant) {
		return dErrors.Newf(dErrors.CodeForbidden, "only the candidate may %s", action)
	}
	return nil
}

// Owns reports whether the actor in ctx is a party to owner. Roles not tied
// to ownership, and in-process calls, always are.
func Owns(ctx context.Context, owner Ownership) bool {
	actor := requestcontext.Actor(ctx)
	if !actor.Present() {
		return true
	}
	switch actor.Role {
	case id.RoleDoctorant:
		return uuid.UUID(actor.ID) == uuid.UUID(owner.Doctorant)
	case id.RoleSupervisor:
		return !owner.Supervisor.IsNil() && uuid.UUID(actor.ID) == uuid.UUID(owner.Supervisor)
	}
	return true
}

// ActorRef returns the actor id and role as strings for history and events.
func ActorRef(ctx context.Context) (string, string) {
	actor := requestcontext.Actor(ctx)
	if !actor.Present() {
		return "", id.RoleSystem.String()
	}
	actorID := ""
	if !actor.ID.IsNil() {
		actorID = actor.ID.String()
	}
	return actorID, actor.Role.String()
}
