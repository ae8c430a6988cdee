package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

// SeedFunc builds the state of an owner that has nothing persisted yet.
type SeedFunc func(today time.Time) (*domain.State, error)

func EmptySeed(time.Time) (*domain.State, error) {
	return domain.NewState(), nil
}

// LoadHabitStore hydrates the store persisted under key. A missing record is
// seeded and saved; any other repository failure is returned so a transient outage never
// replaces real data with an empty store.
func LoadHabitStore(ctx context.Context, repo domain.StateRepository, key string, seed SeedFunc, opts ...StoreOption) (*HabitStore, error) {
	state, err := repo.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrStateNotFound) {
			return nil, fmt.Errorf("failed to hydrate store %s: %w", key, err)
		}
		if seed == nil {
			seed = EmptySeed
		}
		probe := NewHabitStore(key, nil, opts...)
		state, err = seed(probe.today())
		if err != nil {
			return nil, fmt.Errorf("failed to seed store %s: %w", key, err)
		}
		// Seeded ids must be stable across restarts, so the seed is written before use.
		if err := repo.Save(ctx, key, state); err != nil {
			return nil, fmt.Errorf("failed to save seeded store %s: %w", key, err)
		}
	}

	storesHydratedTotal.Inc()
	return NewHabitStore(key, state, opts...), nil
}

// StoreRegistry keeps one hydrated HabitStore per owner key.
type StoreRegistry struct {
	repo   domain.StateRepository
	seed   SeedFunc
	opts   []StoreOption
	logger *zap.Logger

	mu       sync.RWMutex
	stores   map[string]*HabitStore
	hooks    []func(*HabitStore)
	hydrates singleflight.Group
}

func NewStoreRegistry(repo domain.StateRepository, logger *zap.Logger, seed SeedFunc, opts ...StoreOption) *StoreRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreRegistry{
		repo:   repo,
		seed:   seed,
		opts:   append([]StoreOption{WithLogger(logger)}, opts...),
		logger: logger,
		stores: make(map[string]*HabitStore),
	}
}

// OnHydrate registers fn to run once for every store the registry loads.
func (r *StoreRegistry) OnHydrate(fn func(*HabitStore)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

func (r *StoreRegistry) ForUser(ctx context.Context, userID string) (*HabitStore, error) {
	return r.Get(ctx, domain.OwnerKey(userID))
}

// Get returns the store for key, hydrating it on first use. Concurrent first
// calls for the same key share a single repository load.
func (r *StoreRegistry) Get(ctx context.Context, key string) (*HabitStore, error) {
	r.mu.RLock()
	store, ok := r.stores[key]
	r.mu.RUnlock()
	if ok {
		return store, nil
	}

	v, err, _ := r.hydrates.Do(key, func() (interface{}, error) {
		r.mu.RLock()
		existing, ok := r.stores[key]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		loaded, err := LoadHabitStore(ctx, r.repo, key, r.seed, r.opts...)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.stores[key] = loaded
		hooks := append([]func(*HabitStore){}, r.hooks...)
		r.mu.Unlock()

		for _, hook := range hooks {
			hook(loaded)
		}

		r.logger.Info("habit store hydrated", zap.String("key", key), zap.Int("habits", len(loaded.Habits())))
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*HabitStore), nil
}

// Keys lists the owner keys currently held in memory.
func (r *StoreRegistry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.stores))
	for k := range r.stores {
		keys = append(keys, k)
	}
	return keys
}
