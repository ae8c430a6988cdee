package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

var _ domain.StateRepository = (*CachedStateRepository)(nil)

const stateCacheTTL = 30 * time.Minute

// CachedStateRepository is a read-through Redis cache in front of another
// StateRepository. Cache failures are logged and never fail the call.
type CachedStateRepository struct {
	next   domain.StateRepository
	cache  *redis.Client
	logger *zap.Logger
}

func NewCachedStateRepository(next domain.StateRepository, cache *redis.Client, logger *zap.Logger) *CachedStateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStateRepository{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedStateRepository) cacheKey(key string) string {
	return fmt.Sprintf("state:%s", key)
}

func (r *CachedStateRepository) Load(ctx context.Context, key string) (*domain.State, error) {
	ck := r.cacheKey(key)

	data, err := r.cache.Get(ctx, ck).Bytes()
	if err == nil {
		state, decodeErr := domain.DecodeState(data)
		if decodeErr == nil {
			return state, nil
		}

		r.logger.Warn("corrupted cached state, cleaning up key", zap.String("key", key), zap.Error(decodeErr))
		r.cache.Del(ctx, ck)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", zap.String("key", key), zap.Error(err))
	}

	state, err := r.next.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, state)
	return state, nil
}

// Save writes through to the backing repository first; the cache only ever
// holds what was durably saved.
func (r *CachedStateRepository) Save(ctx context.Context, key string, state *domain.State) error {
	if err := r.next.Save(ctx, key, state); err != nil {
		if delErr := r.cache.Del(ctx, r.cacheKey(key)).Err(); delErr != nil {
			r.logger.Warn("failed to invalidate cached state", zap.String("key", key), zap.Error(delErr))
		}
		return err
	}

	r.store(ctx, key, state)
	return nil
}

func (r *CachedStateRepository) store(ctx context.Context, key string, state *domain.State) {
	data, err := domain.EncodeState(state)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, r.cacheKey(key), data, stateCacheTTL).Err(); err != nil {
		r.logger.Warn("redis set error", zap.String("key", key), zap.Error(err))
	}
}
