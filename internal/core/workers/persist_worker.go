package workers

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

var (
	persistSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kanso_persist_saves_total",
		Help: "State saves attempted by the persist worker, by result",
	}, []string{"result"})

	persistEnqueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kanso_persist_enqueued_total",
		Help: "Snapshots handed to the persist worker",
	})
)

type StateSaver interface {
	Save(ctx context.Context, key string, state *domain.State) error
}

// PersistWorker writes store snapshots in the background. Snapshots for the
// same key are coalesced, so a slow backend only ever sees the newest state.
// Failed saves are logged and not retried: the next mutation carries the
// full state again.
type PersistWorker struct {
	repo        StateSaver
	queue       *pendingQueue[*domain.State]
	logger      *zap.Logger
	saveTimeout time.Duration
	done        chan struct{}
}

func NewPersistWorker(repo StateSaver, logger *zap.Logger) *PersistWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersistWorker{
		repo:        repo,
		queue:       newPendingQueue[*domain.State](),
		logger:      logger,
		saveTimeout: 5 * time.Second,
		done:        make(chan struct{}),
	}
}

// Enqueue implements services.Persister.
func (w *PersistWorker) Enqueue(key string, state *domain.State) {
	persistEnqueuedTotal.Inc()
	w.queue.Put(key, state)
}

func (w *PersistWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		w.logger.Info("persist worker started")
		for {
			select {
			case <-w.queue.signal:
				if ctx.Err() != nil {
					continue
				}
				_ = w.Flush(ctx)
			case <-ctx.Done():
				flushCtx, cancel := context.WithTimeout(context.Background(), w.saveTimeout)
				if err := w.Flush(flushCtx); err != nil {
					w.logger.Error("persist worker final flush failed", zap.Error(err))
				}
				cancel()
				w.logger.Info("persist worker shutting down")
				return
			}
		}
	}()
}

// Done is closed once the worker has flushed and exited.
func (w *PersistWorker) Done() <-chan struct{} {
	return w.done
}

// Flush saves every pending snapshot now and reports the joined save errors.
func (w *PersistWorker) Flush(ctx context.Context) error {
	var errs []error
	for _, job := range w.queue.Drain() {
		if err := w.save(ctx, job.key, job.value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *PersistWorker) save(ctx context.Context, key string, state *domain.State) error {
	ctx, cancel := context.WithTimeout(ctx, w.saveTimeout)
	defer cancel()

	if err := w.repo.Save(ctx, key, state); err != nil {
		persistSavesTotal.WithLabelValues("error").Inc()
		w.logger.Error("failed to persist state", zap.String("key", key), zap.Error(err))
		return err
	}

	persistSavesTotal.WithLabelValues("ok").Inc()
	w.logger.Debug("state persisted", zap.String("key", key), zap.Int("habits", len(state.Habits)))
	return nil
}
