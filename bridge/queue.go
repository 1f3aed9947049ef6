package bridge

import (
	"errors"
	"sync"
)

// ErrUnavailable is returned when the host's task queue no longer accepts
// work, typically because the host is shutting down.
var ErrUnavailable = errors.New("bridge: host queue unavailable")

// Task is a deferred unit of work destined for the host's affinity thread.
// It runs at most once and is never re-queued.
type Task func()

// Queue is the enqueue side of the host's task queue. Implementations must
// tolerate many concurrent producers; consumption is the host's business and
// happens on a single thread.
type Queue interface {
	Enqueue(task Task) error
}

// TickQueue is a mutex-guarded multi-producer/single-consumer queue the
// host's run loop drains once per tick. It is the one structure in the
// system mutated by multiple worker goroutines concurrently.
type TickQueue struct {
	mu     sync.Mutex
	tasks  []Task
	closed bool
}

// NewTickQueue returns an empty open queue.
func NewTickQueue() *TickQueue {
	return &TickQueue{}
}

// Enqueue appends a task in FIFO order. After Close it fails with
// ErrUnavailable without blocking.
func (q *TickQueue) Enqueue(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrUnavailable
	}
	q.tasks = append(q.tasks, task)
	return nil
}

// Drain removes and returns at most the tasks queued at the time of the
// call, in enqueue order. Tasks enqueued while the batch executes wait for
// the next tick.
func (q *TickQueue) Drain() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	tasks := q.tasks
	q.tasks = nil
	return tasks
}

// Len reports the number of queued tasks.
func (q *TickQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Close stops the queue from accepting further tasks. Idempotent. Already
// queued tasks stay queued and may still be drained.
func (q *TickQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
