package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "doctorat/pkg/domain"
)

func TestActor(t *testing.T) {
	t.Run("absent actor is zero", func(t *testing.T) {
		a := Actor(context.Background())
		assert.False(t, a.Present())
		assert.True(t, a.ID.IsNil())
	})

	t.Run("round trips", func(t *testing.T) {
		actorID := id.ActorID(uuid.New())
		a := Actor(WithActor(context.Background(), actorID, id.RoleSupervisor))
		assert.True(t, a.Present())
		assert.Equal(t, actorID, a.ID)
		assert.Equal(t, id.RoleSupervisor, a.Role)
	})
}

func TestNow(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}
