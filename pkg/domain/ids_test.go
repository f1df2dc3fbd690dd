package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "doctorat/pkg/domain-errors"
)

// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseDoctorantID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseInscriptionID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseSoutenanceID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID with surrounding whitespace", func(t *testing.T) {
		valid := uuid.New()
		got, err := ParseDerogationID("  " + valid.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, DerogationID(valid), got)
		assert.False(t, got.IsNil())
	})
}

func TestParseID_RejectsHostileInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"sql injection", "'; DROP TABLE inscriptions;--"},
		{"null bytes", "550e8400-e29b-41d4-a716-446655440000\x00suffix"},
		{"path traversal", "../../etc/passwd"},
		{"too long", "550e8400-e29b-41d4-a716-446655440000550e8400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJuryMemberID(tt.input)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" supervisor ")
	require.NoError(t, err)
	assert.Equal(t, RoleSupervisor, r)
	assert.False(t, r.Privileged())

	r, err = ParseRole("ADMIN")
	require.NoError(t, err)
	assert.True(t, r.Privileged())

	_, err = ParseRole("dean")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
