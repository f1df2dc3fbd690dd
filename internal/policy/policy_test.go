package policy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
	"doctorat/pkg/requestcontext"
)

func TestAuthorize(t *testing.T) {
	doctorant := uuid.New()
	supervisor := uuid.New()
	owner := Ownership{Doctorant: id.DoctorantID(doctorant), Supervisor: id.SupervisorID(supervisor)}
	allowed := []id.Role{id.RoleSupervisor, id.RoleAdmin}

	as := func(actor uuid.UUID, role id.Role) context.Context {
		return requestcontext.WithActor(context.Background(), id.ActorID(actor), role)
	}

	tests := []struct {
		name    string
		ctx     context.Context
		allowed []id.Role
		wantErr bool
	}{
		{"in-process call without actor", context.Background(), allowed, false},
		{"assigned supervisor", as(supervisor, id.RoleSupervisor), allowed, false},
		{"other supervisor", as(uuid.New(), id.RoleSupervisor), allowed, true},
		{"admin bypasses ownership", as(uuid.New(), id.RoleAdmin), allowed, false},
		{"role not allowed", as(doctorant, id.RoleDoctorant), allowed, true},
		{"owning candidate", as(doctorant, id.RoleDoctorant), []id.Role{id.RoleDoctorant}, false},
		{"other candidate", as(uuid.New(), id.RoleDoctorant), []id.Role{id.RoleDoctorant}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.ctx, "validate", tt.allowed, owner)
			if tt.wantErr {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthorize_SupervisorWithoutAssignment(t *testing.T) {
	ctx := requestcontext.WithActor(context.Background(), id.ActorID(uuid.New()), id.RoleSupervisor)
	err := Authorize(ctx, "validate", []id.Role{id.RoleSupervisor}, Ownership{Doctorant: id.DoctorantID(uuid.New())})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestAuthorizeList(t *testing.T) {
	doctorant := id.DoctorantID(uuid.New())
	allowed := []id.Role{id.RoleDoctorant, id.RoleSupervisor, id.RoleAdmin}
	as := func(actor uuid.UUID, role id.Role) context.Context {
		return requestcontext.WithActor(context.Background(), id.ActorID(actor), role)
	}

	tests := []struct {
		name    string
		ctx     context.Context
		wantErr bool
	}{
		{"in-process call", context.Background(), false},
		{"the candidate", as(uuid.UUID(doctorant), id.RoleDoctorant), false},
		{"another candidate", as(uuid.New(), id.RoleDoctorant), true},
		{"any supervisor, narrowed later", as(uuid.New(), id.RoleSupervisor), false},
		{"admin", as(uuid.New(), id.RoleAdmin), false},
		{"jury member not allowed", as(uuid.New(), id.RoleJuryMember), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeList(tt.ctx, "list records", allowed, doctorant)
			if tt.wantErr {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOwns(t *testing.T) {
	doctorant, supervisor := uuid.New(), uuid.New()
	owner := Ownership{Doctorant: id.DoctorantID(doctorant), Supervisor: id.SupervisorID(supervisor)}
	as := func(actor uuid.UUID, role id.Role) context.Context {
		return requestcontext.WithActor(context.Background(), id.ActorID(actor), role)
	}

	assert.True(t, Owns(context.Background(), owner))
	assert.True(t, Owns(as(doctorant, id.RoleDoctorant), owner))
	assert.False(t, Owns(as(uuid.New(), id.RoleDoctorant), owner))
	assert.True(t, Owns(as(supervisor, id.RoleSupervisor), owner))
	assert.False(t, Owns(as(uuid.New(), id.RoleSupervisor), owner))
	assert.False(t, Owns(as(supervisor, id.RoleSupervisor), Ownership{Doctorant: id.DoctorantID(doctorant)}))
	assert.True(t, Owns(as(uuid.New(), id.RoleJuryMember), owner))
}
