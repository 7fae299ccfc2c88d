package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestOAuthStateSaveAndConsume(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewOAuthStateRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "nonce-1", 10*time.Minute))
	assert.True(t, mr.Exists(stateKeyPrefix+"nonce-1"))

	ok, err := repo.Consume(ctx, "nonce-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// single use
	ok, err = repo.Consume(ctx, "nonce-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOAuthStateExpires(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewOAuthStateRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "nonce-2", time.Minute))
	mr.FastForward(2 * time.Minute)

	ok, err := repo.Consume(ctx, "nonce-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOAuthStateUnknown(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewOAuthStateRepository(client)

	ok, err := repo.Consume(context.Background(), "never-saved")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOAuthStateRedisDown(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewOAuthStateRepository(client)
	mr.Close()

	_, err := repo.Consume(context.Background(), "nonce-3")
	assert.Error(t, err)
}
