package workers

import "sync"

type keyed[T any] struct {
	key   string
	value T
}

// pendingQueue keeps only the newest value per key, in first-enqueued order.
// Put never blocks and never drops the newest value.
type pendingQueue[T any] struct {
	mu      sync.Mutex
	pending map[string]T
	order   []string
	signal  chan struct{}
}

func newPendingQueue[T any]() *pendingQueue[T] {
	return &pendingQueue[T]{
		pending: make(map[string]T),
		signal:  make(chan struct{}, 1),
	}
}

func (q *pendingQueue[T]) Put(key string, value T) {
	q.mu.Lock()
	if _, exists := q.pending[key]; !exists {
		q.order = append(q.order, key)
	}
	q.pending[key] = value
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *pendingQueue[T]) Drain() []keyed[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]keyed[T], 0, len(q.order))
	for _, k := range q.order {
		out = append(out, keyed[T]{key: k, value: q.pending[k]})
	}
	q.pending = make(map[string]T)
	q.order = nil
	return out
}

func (q *pendingQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}
