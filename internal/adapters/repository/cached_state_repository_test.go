package repository

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(envOr("REDIS_HOST", "localhost"), envOr("REDIS_PORT", "6379")),
		Password: envOr("REDIS_PASSWORD", ""),
		DB:       2,
	})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}
	rdb.FlushDB(ctx)
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

type countingRepo struct {
	*InMemoryStateRepository
	loads   int
	saveErr error
}

func (r *countingRepo) Load(ctx context.Context, key string) (*domain.State, error) {
	r.loads++
	return r.InMemoryStateRepository.Load(ctx, key)
}

func (r *countingRepo) Save(ctx context.Context, key string, state *domain.State) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.InMemoryStateRepository.Save(ctx, key, state)
}

func TestCachedStateRepository_Integration(t *testing.T) {
	rdb := setupTestRedis(t)

	t.Run("Contract", func(t *testing.T) {
		runStateRepositorySuite(t, NewCachedStateRepository(NewInMemoryStateRepository(), rdb, zaptest.NewLogger(t)))
	})

	t.Run("Success: second load is served from cache", func(t *testing.T) {
		ctx := context.Background()
		backing := &countingRepo{InMemoryStateRepository: NewInMemoryStateRepository()}
		repo := NewCachedStateRepository(backing, rdb, zaptest.NewLogger(t))

		key := domain.OwnerKey("cached")
		require.NoError(t, repo.Save(ctx, key, sampleState(t)))

		_, err := repo.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 0, backing.loads, "save warms the cache")
	})

	t.Run("Fail: failed save invalidates the cache", func(t *testing.T) {
		ctx := context.Background()
		backing := &countingRepo{InMemoryStateRepository: NewInMemoryStateRepository()}
		repo := NewCachedStateRepository(backing, rdb, zaptest.NewLogger(t))

		key := domain.OwnerKey("invalidate")
		require.NoError(t, repo.Save(ctx, key, sampleState(t)))

		backing.saveErr = errors.New("disk full")
		assert.Error(t, repo.Save(ctx, key, domain.NewState()))

		got, err := repo.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 1, backing.loads)
		assert.Len(t, got.Habits, 2, "the durable record is returned, not the failed write")
	})

	t.Run("Success: corrupted entry falls back to backing store", func(t *testing.T) {
		ctx := context.Background()
		backing := &countingRepo{InMemoryStateRepository: NewInMemoryStateRepository()}
		repo := NewCachedStateRepository(backing, rdb, zaptest.NewLogger(t))

		key := domain.OwnerKey("corrupt")
		require.NoError(t, backing.Save(ctx, key, sampleState(t)))
		require.NoError(t, rdb.Set(ctx, "state:"+key, "{not json", 0).Err())

		got, err := repo.Load(ctx, key)
		require.NoError(t, err)
		assert.Len(t, got.Habits, 2)
	})
}
