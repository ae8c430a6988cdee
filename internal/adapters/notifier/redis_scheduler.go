package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

// DueSetKey is the sorted set of pending reminders scored by their unix fire time.
// A delivery process polls it with ZRANGEBYSCORE and reads the payload keys.
const DueSetKey = "reminders:due"

// deliveryGrace keeps a payload around after its fire time so a late poller can still read it.
const deliveryGrace = 10 * time.Minute

type RedisScheduler struct {
	rdb *redis.Client
}

func NewRedisScheduler(rdb *redis.Client) *RedisScheduler {
	return &RedisScheduler{rdb: rdb}
}

func payloadKey(key string) string {
	return fmt.Sprintf("reminder:%s", key)
}

func (s *RedisScheduler) Schedule(ctx context.Context, reminder domain.Reminder) error {
	data, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("failed to encode reminder: %w", err)
	}

	ttl := time.Until(reminder.At) + deliveryGrace
	if ttl <= 0 {
		ttl = deliveryGrace
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, payloadKey(reminder.Key), data, ttl)
		pipe.ZAdd(ctx, DueSetKey, redis.Z{Score: float64(reminder.At.Unix()), Member: reminder.Key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder for %s: %w", reminder.Key, err)
	}
	return nil
}

func (s *RedisScheduler) Cancel(ctx context.Context, key string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, payloadKey(key))
		pipe.ZRem(ctx, DueSetKey, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cancel reminder for %s: %w", key, err)
	}
	return nil
}

// Pending reads the reminder currently planned for key, or nil.
func (s *RedisScheduler) Pending(ctx context.Context, key string) (*domain.Reminder, error) {
	data, err := s.rdb.Get(ctx, payloadKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var r domain.Reminder
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode reminder: %w", err)
	}
	return &r, nil
}
