package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestRedisStateStore_OneTimeUse(t *testing.T) {
	store := NewRedisStateStore(setupTestRedis(t), "oauth:state:", time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "state-1", "verifier-1"))

	info, err := store.VerifyAndGet(ctx, "state-1")
	require.NoError(t, err)
	assert.Equal(t, "verifier-1", info.CodeVerifier)

	_, err = store.VerifyAndGet(ctx, "state-1")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStateStore_Validation(t *testing.T) {
	store := NewRedisStateStore(nil, "oauth:state:", time.Minute)
	ctx := context.Background()

	assert.Error(t, store.Set(ctx, "", "v"))
	assert.Error(t, store.Set(ctx, "s", ""))

	_, err := store.VerifyAndGet(ctx, "")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStateStore_Expiry(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStateStore(client, "oauth:state:", time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "state-2", "v"))
	ttl, err := client.TTL(ctx, "oauth:state:state-2").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}
