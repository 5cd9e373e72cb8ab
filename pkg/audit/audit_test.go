package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gflauder/PeerReviewCore/pkg/audit"
	"github.com/gflauder/PeerReviewCore/pkg/events"
)

func TestLogger_Log(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps id and timestamp", func(t *testing.T) {
		storage := audit.NewMemoryStorage()
		logger := audit.NewLogger(storage)

		err := logger.Log(ctx, audit.Event{
			UserID:     42,
			ObjectType: "user",
			ObjectID:   42,
			Action:     "login",
		})
		require.NoError(t, err)

		stored := storage.Events()
		require.Len(t, stored, 1)
		assert.NotEmpty(t, stored[0].ID)
		assert.False(t, stored[0].CreatedAt.IsZero())
		assert.Equal(t, "login", stored[0].Action)
	})

	t.Run("rejects event without action", func(t *testing.T) {
		logger := audit.NewLogger(audit.NewMemoryStorage())

		err := logger.Log(ctx, audit.Event{UserID: 1})
		assert.ErrorIs(t, err, audit.ErrEventValidation)
	})
}

func TestLogger_Bind(t *testing.T) {
	ctx := context.Background()

	t.Run("stores events published on the bus", func(t *testing.T) {
		bus := events.New()
		storage := audit.NewMemoryStorage()
		audit.NewLogger(storage).Bind(bus)

		err := bus.Trigger(ctx, events.Log, audit.Event{
			UserID:     7,
			ObjectType: "user",
			ObjectID:   7,
			Action:     "login",
		})
		require.NoError(t, err)

		stored := storage.Events()
		require.Len(t, stored, 1)
		assert.Equal(t, int64(7), stored[0].UserID)
	})

	t.Run("rejects foreign payloads", func(t *testing.T) {
		bus := events.New()
		audit.NewLogger(audit.NewMemoryStorage()).Bind(bus)

		err := bus.Trigger(ctx, events.Log, "not an audit event")
		assert.ErrorIs(t, err, audit.ErrInvalidPayload)
	})
}
