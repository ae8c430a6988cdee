package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-store/internal/core/services"
)

type ReminderScheduler interface {
	Schedule(ctx context.Context, reminder domain.Reminder) error
	Cancel(ctx context.Context, key string) error
}

// ReminderWorker keeps one daily reminder per store in line with the habits
// still open today. It reacts to store changes and re-plans every known store
// on a fixed interval so the plan follows the calendar across midnight.
type ReminderWorker struct {
	scheduler ReminderScheduler
	logger    *zap.Logger
	now       services.Clock
	loc       *time.Location
	interval  time.Duration
	queue     *pendingQueue[*domain.State]

	mu    sync.Mutex
	known map[string]*domain.State
}

func NewReminderWorker(scheduler ReminderScheduler, logger *zap.Logger, loc *time.Location, interval time.Duration) *ReminderWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReminderWorker{
		scheduler: scheduler,
		logger:    logger,
		now:       time.Now,
		loc:       loc,
		interval:  interval,
		queue:     newPendingQueue[*domain.State](),
		known:     make(map[string]*domain.State),
	}
}

// Observe implements services.Observer.
func (w *ReminderWorker) Observe(change services.Change) {
	w.Track(change.Key, change.State)
}

// Attach plans store once and follows its changes. It fits StoreRegistry.OnHydrate.
func (w *ReminderWorker) Attach(store *services.HabitStore) {
	w.Track(store.Key(), store.Snapshot())
	store.Subscribe(w.Observe)
}

func (w *ReminderWorker) Track(key string, state *domain.State) {
	w.mu.Lock()
	w.known[key] = state
	w.mu.Unlock()

	w.queue.Put(key, state)
}

func (w *ReminderWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info("reminder worker started", zap.Duration("replan_interval", w.interval))
		for {
			select {
			case <-w.queue.signal:
				w.processPending(ctx)
			case <-ticker.C:
				w.replanAll()
			case <-ctx.Done():
				w.logger.Info("reminder worker shutting down")
				return
			}
		}
	}()
}

func (w *ReminderWorker) replanAll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for key, state := range w.known {
		w.queue.Put(key, state)
	}
}

func (w *ReminderWorker) processPending(ctx context.Context) {
	for _, job := range w.queue.Drain() {
		w.apply(ctx, job.key, job.value)
	}
}

func (w *ReminderWorker) apply(ctx context.Context, key string, state *domain.State) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	now := w.now().In(w.loc)
	progress := services.TodayProgressOf(state, now)

	reminder, err := domain.PlanReminder(key, now, state.Settings, progress.RemainingHabits)
	if err != nil {
		w.logger.Warn("cannot plan reminder", zap.String("key", key), zap.Error(err))
		return
	}

	if reminder == nil {
		if err := w.scheduler.Cancel(ctx, key); err != nil {
			w.logger.Error("failed to cancel reminder", zap.String("key", key), zap.Error(err))
		}
		return
	}

	if err := w.scheduler.Schedule(ctx, *reminder); err != nil {
		w.logger.Error("failed to schedule reminder", zap.String("key", key), zap.Error(err))
		return
	}
	w.logger.Debug("reminder scheduled",
		zap.String("key", key),
		zap.Time("at", reminder.At),
		zap.Int("remaining", len(reminder.HabitNames)))
}
