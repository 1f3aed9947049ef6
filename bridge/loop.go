package bridge

import (
	"context"
	"sync"
	"time"
)

// Loop stands in for the host's run loop in processes that have no real
// host: it drains a TickQueue once per tick on the goroutine that calls
// Run, executing tasks one at a time in enqueue order. An embedding host
// would instead call Drain from its own scheduler.
type Loop struct {
	queue *TickQueue
	tick  time.Duration
}

// NewLoop creates a run loop draining queue every tick.
func NewLoop(queue *TickQueue, tick time.Duration) *Loop {
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	return &Loop{queue: queue, tick: tick}
}

// Run blocks, draining the queue until ctx is cancelled. The calling
// goroutine is the affinity thread for every task the queue carries. On
// return the queue is closed so producers fail fast instead of queueing
// work nobody will run.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.queue.Close()
			return
		case <-ticker.C:
			for _, task := range l.queue.Drain() {
				task()
			}
		}
	}
}

// SerialQueue executes tasks on its own single dedicated goroutine as they
// arrive. It serves the simpler command servers of the family that have no
// host run loop to piggyback on: execution is still strictly serialized,
// just without tick latency.
type SerialQueue struct {
	tasks chan Task
	done  chan struct{}
	once  sync.Once
}

// NewSerialQueue starts the consumer goroutine. The buffer bounds how many
// tasks may be queued ahead of the consumer.
func NewSerialQueue(buffer int) *SerialQueue {
	q := &SerialQueue{
		tasks: make(chan Task, buffer),
		done:  make(chan struct{}),
	}
	go q.consume()
	return q
}

// Enqueue hands a task to the consumer goroutine, blocking while the buffer
// is full. After Close it fails with ErrUnavailable.
func (q *SerialQueue) Enqueue(task Task) error {
	select {
	case <-q.done:
		return ErrUnavailable
	default:
	}
	select {
	case q.tasks <- task:
		return nil
	case <-q.done:
		return ErrUnavailable
	}
}

// Close stops the consumer after the task in flight finishes. Idempotent.
func (q *SerialQueue) Close() {
	q.once.Do(func() {
		close(q.done)
	})
}

func (q *SerialQueue) consume() {
	for {
		select {
		case <-q.done:
			return
		case task := <-q.tasks:
			task()
		}
	}
}
