package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testOptions() Options {
	return Options{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       1,
	}
}

func TestNewRedisClient_Integration(t *testing.T) {
	rdb, err := NewRedisClient(context.Background(), testOptions())
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()

	t.Run("Success: Ping", func(t *testing.T) {
		pong, err := rdb.Ping(ctx).Result()
		assert.NoError(t, err)
		assert.Equal(t, "PONG", pong)
	})

	t.Run("Success: Expiring Key", func(t *testing.T) {
		key := "test:cache:expire"
		require.NoError(t, rdb.Set(ctx, key, "expire_me", time.Second).Err())

		time.Sleep(1100 * time.Millisecond)

		_, err := rdb.Get(ctx, key).Result()
		assert.ErrorIs(t, err, redis.Nil)
	})
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := NewRedisClient(context.Background(), Options{Host: "localhost", Port: "9999"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "localhost:9999")
}
