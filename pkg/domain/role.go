package domain

import (
	"strings"

	dErrors "doctorat/pkg/domain-errors"
)

// Role is the capacity in which an actor invokes a workflow transition.
type Role string

const (
	RoleDoctorant  Role = "DOCTORANT"
	RoleSupervisor Role = "SUPERVISOR"
	RoleAdmin      Role = "ADMIN"
	RoleJuryMember Role = "JURY_MEMBER"
	// RoleSystem is used for scheduled and in-process transitions (expiry sweep).
	RoleSystem Role = "SYSTEM"
)

var knownRoles = map[Role]struct{}{
	RoleDoctorant:  {},
	RoleSupervisor: {},
	RoleAdmin:      {},
	RoleJuryMember: {},
	RoleSystem:     {},
}

// ParseRole validates a role name at a trust boundary. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownRoles[r]; !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown role %q", s)
	}
	return r, nil
}

func (r Role) String() string { return string(r) }

// Privileged roles act on any record regardless of ownership.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleSystem
}
