package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/rechat/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		states := []domain.ConversationState{
			domain.CommandState(),
			domain.ChannelState("#general"),
			domain.DirectState("@bob@example.com"),
		}
		for _, state := range states {
			require.NoError(t, store.Save(ctx, sessionID, state), "Save should not return error")

			loaded, err := store.Load(ctx, sessionID)
			require.NoError(t, err, "Load should not return error")
			assert.True(t, state.Equal(loaded), "expected %s, got %s", state, loaded)
		}
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.CommandState())
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		// Deleting twice is not an error
		assert.NoError(t, store.Delete(ctx, sessionID))
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.CommandState())
		_ = store.Save(ctx, id2, domain.ChannelState("#general"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
