package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "doctorat/pkg/domain"
	dErrors "doctorat/pkg/domain-errors"
)

var now = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func draft(t *testing.T, kind Kind, supervisor *id.SupervisorID) *Inscription {
	t.Helper()
	ins, err := NewInscription(id.InscriptionID(uuid.New()), id.DoctorantID(uuid.New()), supervisor,
		id.CampaignID(uuid.New()), kind, "  Sparse   solvers ", "LIRIS", nil, now)
	require.NoError(t, err)
	return ins
}

func TestNewInscription(t *testing.T) {
	ins := draft(t, KindFirst, nil)
	assert.Equal(t, StatusDraft, ins.Status)
	assert.Equal(t, "Sparse solvers", ins.Subject)
	assert.Equal(t, 1, ins.Version)

	_, err := NewInscription(id.InscriptionID(uuid.New()), id.DoctorantID(uuid.New()), nil,
		id.CampaignID(uuid.New()), KindFirst, " ", "", nil, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	future := now.Add(24 * time.Hour)
	_, err = NewInscription(id.InscriptionID(uuid.New()), id.DoctorantID(uuid.New()), nil,
		id.CampaignID(uuid.New()), KindFirst, "s", "", &future, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestSubmitRoutesByKind(t *testing.T) {
	supervisor := id.SupervisorID(uuid.New())
	for kind, want := range map[Kind]Status{
		KindFirst:   StatusPendingAdmin,
		KindRenewal: StatusPendingSupervisor,
	} {
		t.Run(string(kind), func(t *testing.T) {
			ins := draft(t, kind, &supervisor)
			require.NoError(t, ins.Apply(Decision{Action: ActionSubmit, At: now}))
			assert.Equal(t, want, ins.Status)
			assert.NotNil(t, ins.SubmittedAt)
		})
	}
}

func TestIllegalEdgesConflict(t *testing.T) {
	all := []Status{StatusDraft, StatusPendingSupervisor, StatusPendingAdmin,
		StatusAdmitted, StatusRejectedBySupervisor, StatusRejectedByAdmin}
	actions := []Action{ActionSubmit, ActionValidateBySupervisor, ActionRejectBySupervisor,
		ActionValidateByAdmin, ActionRejectByAdmin}
	legal := map[Status][]Action{
		StatusDraft:             {ActionSubmit},
		StatusPendingSupervisor: {ActionValidateBySupervisor, ActionRejectBySupervisor},
		StatusPendingAdmin:      {ActionValidateByAdmin, ActionRejectByAdmin},
	}
	for _, from := range all {
		for _, action := range actions {
			_, err := Transition(from, action, KindRenewal)
			if contains(legal[from], action) {
				assert.NoError(t, err, "%s from %s", action, from)
				continue
			}
			assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict), "%s from %s", action, from)
		}
	}
}

func contains(list []Action, a Action) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

func TestRenewalNeedsSupervisorToSubmit(t *testing.T) {
	ins := draft(t, KindRenewal, nil)
	err := ins.Apply(Decision{Action: ActionSubmit, At: now})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Equal(t, StatusDraft, ins.Status)
}

func TestAdmitFirstInscription(t *testing.T) {
	ins := draft(t, KindFirst, nil)
	require.NoError(t, ins.Apply(Decision{Action: ActionSubmit, At: now}))

	err := ins.Apply(Decision{Action: ActionValidateByAdmin, At: now})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "supervisor required")

	supervisor := id.SupervisorID(uuid.New())
	require.NoError(t, ins.Apply(Decision{Action: ActionValidateByAdmin, At: now, Supervisor: &supervisor}))
	assert.Equal(t, StatusAdmitted, ins.Status)
	assert.Equal(t, supervisor, ins.Supervisor())
	require.NotNil(t, ins.FirstRegistrationDate)
	assert.Equal(t, now, *ins.FirstRegistrationDate)
}

func TestRejectionNeedsComment(t *testing.T) {
	supervisor := id.SupervisorID(uuid.New())
	ins := draft(t, KindRenewal, &supervisor)
	require.NoError(t, ins.Apply(Decision{Action: ActionSubmit, At: now}))

	err := ins.Apply(Decision{Action: ActionRejectBySupervisor, Comment: "  ", At: now})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	require.NoError(t, ins.Apply(Decision{Action: ActionRejectBySupervisor, Comment: "scope unclear", At: now}))
	assert.Equal(t, StatusRejectedBySupervisor, ins.Status)
	assert.True(t, ins.Status.IsTerminal())
}

func TestParse(t *testing.T) {
	k, err := ParseKind("renewal")
	require.NoError(t, err)
	assert.Equal(t, KindRenewal, k)
	_, err = ParseKind("transfer")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	st, err := ParseStatus("pending_admin")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingAdmin, st)
}

func TestClone(t *testing.T) {
	supervisor := id.SupervisorID(uuid.New())
	ins := draft(t, KindRenewal, &supervisor)
	c := ins.Clone()
	other := id.SupervisorID(uuid.New())
	*c.SupervisorID = other
	assert.Equal(t, supervisor, ins.Supervisor())
}
