package notifier

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

// LogScheduler records reminder plans in memory and in the log. It backs
// deployments without Redis and the command line tool.
type LogScheduler struct {
	logger *zap.Logger

	mu      sync.RWMutex
	planned map[string]domain.Reminder
}

func NewLogScheduler(logger *zap.Logger) *LogScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogScheduler{
		logger:  logger,
		planned: make(map[string]domain.Reminder),
	}
}

func (s *LogScheduler) Schedule(ctx context.Context, reminder domain.Reminder) error {
	s.mu.Lock()
	s.planned[reminder.Key] = reminder
	s.mu.Unlock()

	s.logger.Info("reminder planned",
		zap.String("key", reminder.Key),
		zap.Time("at", reminder.At),
		zap.String("message", reminder.Message))
	return nil
}

func (s *LogScheduler) Cancel(ctx context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.planned[key]
	delete(s.planned, key)
	s.mu.Unlock()

	if existed {
		s.logger.Info("reminder cancelled", zap.String("key", key))
	}
	return nil
}

func (s *LogScheduler) Pending(key string) (domain.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.planned[key]
	return r, ok
}
