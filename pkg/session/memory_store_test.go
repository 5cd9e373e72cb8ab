package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gflauder/PeerReviewCore/pkg/session"
)

func sampleRecord() *session.Record {
	return &session.Record{
		Magic:      "digest",
		User:       &session.Identity{ID: 9, Email: "u@example.com"},
		Identified: true,
		FormTokens: map[string]string{"hash": "token"},
		CreatedAt:  time.Now(),
		LastSeenAt: time.Now(),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		rec := sampleRecord()
		require.NoError(t, store.Save(ctx, "id-1", rec, time.Minute))

		got, err := store.Load(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, rec.Magic, got.Magic)
		assert.Equal(t, rec.User.ID, got.User.ID)
		assert.Equal(t, "token", got.FormTokens["hash"])
	})

	t.Run("load returns an isolated copy", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		require.NoError(t, store.Save(ctx, "id-1", sampleRecord(), time.Minute))

		got, err := store.Load(ctx, "id-1")
		require.NoError(t, err)
		got.FormTokens["hash"] = "mutated"
		got.User.ID = 777

		again, err := store.Load(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, "token", again.FormTokens["hash"])
		assert.Equal(t, int64(9), again.User.ID)
	})

	t.Run("missing id", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		_, err := store.Load(ctx, "nope")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired record", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		require.NoError(t, store.Save(ctx, "id-1", sampleRecord(), -time.Second))

		_, err := store.Load(ctx, "id-1")
		assert.ErrorIs(t, err, session.ErrSessionExpired)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		require.NoError(t, store.Save(ctx, "id-1", sampleRecord(), time.Minute))
		require.NoError(t, store.Delete(ctx, "id-1"))
		require.NoError(t, store.Delete(ctx, "id-1"))

		_, err := store.Load(ctx, "id-1")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("delete expired sweeps only stale entries", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		require.NoError(t, store.Save(ctx, "live", sampleRecord(), time.Minute))
		require.NoError(t, store.Save(ctx, "stale", sampleRecord(), -time.Second))

		require.NoError(t, store.DeleteExpired(ctx))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		assert.ErrorIs(t, store.Save(ctx, "", sampleRecord(), time.Minute), session.ErrInvalidRecord)
		assert.ErrorIs(t, store.Save(ctx, "id", nil, time.Minute), session.ErrInvalidRecord)
	})
}
