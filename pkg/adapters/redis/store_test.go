package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/rechat/internal/testutils"
	"github.com/aretw0/rechat/pkg/adapters/redis"
	"github.com/aretw0/rechat/pkg/domain"
	"github.com/aretw0/rechat/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.StateStore = (*redis.Store)(nil)

func TestRedisStore_Contract(t *testing.T) {
	_, client := testutils.SetupRedis(t)
	ports.RunStateStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_RecordFormat(t *testing.T) {
	mr, client := testutils.SetupRedis(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.DirectState("@bob@x.com")))

	raw, err := mr.Get("test:s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"dm","current_channel":null,"current_user":"@bob@x.com"}`, raw)
	assert.True(t, mr.Exists("test:index"))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := testutils.SetupRedis(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	sessionID := "session-ttl"

	require.NoError(t, store.Save(ctx, sessionID, domain.ChannelState("#general")))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, sessionID)

	// Key expiry is driven by miniredis' clock.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Index pruning compares against wall-clock time.
	time.Sleep(1200 * time.Millisecond)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr, client := testutils.SetupRedis(t)
	store := redis.NewFromClient(client)
	mr.Close()

	_, err := store.Load(context.Background(), "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}
