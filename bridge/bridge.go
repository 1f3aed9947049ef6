// Package bridge hands command executions across the thread-affinity
// boundary of a host application. Network workers submit handler
// invocations from arbitrary goroutines; the handler body itself runs only
// on the host's single designated thread, which drains the task queue at
// fixed points of its own run loop. Each submission blocks its caller with
// a bounded wait and a defined timeout outcome.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scenebridge/scenebridge/protocol"
)

// DefaultTimeout bounds how long a caller blocks waiting for the affinity
// thread to pick up and finish a task.
const DefaultTimeout = 30 * time.Second

// ErrTimeout is returned when the deadline elapses before the task
// completes. The task itself stays queued and still eventually runs on the
// affinity thread; its result is discarded because the waiter departed.
var ErrTimeout = fmt.Errorf("bridge: command execution timeout")

// Handler executes one command body on the affinity thread.
type Handler func(params map[string]any) (protocol.Response, error)

// Bridge submits handler invocations to the host's task queue and blocks
// callers until completion or deadline. Safe for concurrent use.
type Bridge struct {
	queue   Queue
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Bridge.
type Option func(b *Bridge)

// WithTimeout overrides the default completion wait.
func WithTimeout(timeout time.Duration) Option {
	return func(b *Bridge) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New creates a bridge feeding the supplied queue.
func New(queue Queue, options ...Option) *Bridge {
	b := &Bridge{
		queue:   queue,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// Timeout returns the configured completion wait.
func (b *Bridge) Timeout() time.Duration {
	return b.timeout
}

// invocation is the one-shot completion signal plus result slot shared
// between a waiting caller and the task that fills it. The waiter only
// reads the slots after done is closed, so a late-running task of a
// departed waiter writes into memory nobody reads again.
type invocation struct {
	done   chan struct{}
	result protocol.Response
	err    error
}

// Submit enqueues handler(params) for the affinity thread and blocks until
// the task completes, the timeout elapses (ErrTimeout), the context is
// cancelled, or the queue refuses the task (ErrUnavailable). A handler
// panic is caught on the affinity thread and surfaces as an error.
func (b *Bridge) Submit(ctx context.Context, handler Handler, params map[string]any) (protocol.Response, error) {
	inv := &invocation{done: make(chan struct{})}
	task := func() {
		defer close(inv.done)
		defer func() {
			if r := recover(); r != nil {
				inv.err = fmt.Errorf("handler panic: %v", r)
			}
		}()
		inv.result, inv.err = handler(params)
	}
	if err := b.queue.Enqueue(task); err != nil {
		return nil, err
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()
	select {
	case <-inv.done:
		return inv.result, inv.err
	case <-timer.C:
		b.logger.Warn("command execution timed out, task remains queued", "timeout", b.timeout)
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
