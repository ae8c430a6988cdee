package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-store/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-store/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-store/internal/adapters/notifier"
	"github.com/comitanigiacomo/kanso-habit-store/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-store/internal/config"
	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-store/internal/core/services"
	"github.com/comitanigiacomo/kanso-habit-store/internal/core/workers"
)

const reminderReplanInterval = 15 * time.Minute

type app struct {
	router    *gin.Engine
	registry  *services.StoreRegistry
	persister *workers.PersistWorker
	reminders *workers.ReminderWorker
	db        *sqlx.DB
	redis     *redis.Client
}

type migrator interface {
	Migrate(ctx context.Context) error
}

// newApp wires storage, workers and HTTP handlers. Workers are not started.
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{}

	states, users, err := a.openStorage(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		} else {
			a.redis = rdb
			states = repository.NewCachedStateRepository(states, rdb, log)
		}
	}

	var scheduler workers.ReminderScheduler = notifier.NewLogScheduler(log)
	if a.redis != nil {
		scheduler = notifier.NewRedisScheduler(a.redis)
	}

	a.persister = workers.NewPersistWorker(states, log)
	a.reminders = workers.NewReminderWorker(scheduler, log, cfg.Location, reminderReplanInterval)

	a.registry = services.NewStoreRegistry(states, log, domain.NewSeededState,
		services.WithLocation(cfg.Location),
		services.WithPersister(a.persister),
	)
	a.registry.OnHydrate(a.reminders.Attach)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, users)

	deps := adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(services.NewAuthService(users, tokens)),
		HabitHandler:    adapterHTTP.NewHabitHandler(services.NewHabitService(a.registry)),
		ProgressHandler: adapterHTTP.NewProgressHandler(services.NewStatsService(a.registry)),
		SettingsHandler: adapterHTTP.NewSettingsHandler(services.NewSettingsService(a.registry)),
		Tokens:          tokens,
		Logger:          log,
		Redis:           a.redis,
		RateLimit:       cfg.RateLimit,
		RateWindow:      cfg.RateWindow,
		StartTime:       time.Now(),
	}
	if a.db != nil {
		deps.DB = a.db
	}
	a.router = adapterHTTP.NewRouter(deps)

	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (domain.StateRepository, domain.UserRepository, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return repository.NewInMemoryStateRepository(), repository.NewInMemoryUserRepository(), nil

	case config.BackendSQLite:
		db, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		a.db = db
		states := repository.NewSQLiteStateRepository(db)
		users := repository.NewSQLiteUserRepository(db)
		if err := migrate(ctx, states, users); err != nil {
			return nil, nil, err
		}
		return states, users, nil

	case config.BackendPostgres:
		log.Info("connecting to database", zap.String("driver", cfg.DB.Driver), zap.String("host", cfg.DB.Host))

		db, err := sqlx.ConnectContext(ctx, cfg.DB.Driver, cfg.DB.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		a.db = db

		states := repository.NewPostgresStateRepository(db)
		users := repository.NewPostgresUserRepository(db)
		if err := migrate(ctx, states, users); err != nil {
			return nil, nil, err
		}
		return states, users, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func migrate(ctx context.Context, ms ...migrator) error {
	for _, m := range ms {
		if err := m.Migrate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
