package protocol

import (
	"fmt"
	"sync"
)

// ConnState tracks where a connection sits in its read/dispatch/write cycle.
type ConnState int

const (
	// StateOpen is the state of a freshly accepted connection.
	StateOpen ConnState = iota
	// StateAwaitingMessage means a read is in progress.
	StateAwaitingMessage
	// StateDispatching means a fully decoded command is executing.
	StateDispatching
	// StateWriting means a response is being flushed.
	StateWriting
	// StateClosed is terminal: I/O error, peer close, or server stop.
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateAwaitingMessage:
		return "awaiting-message"
	case StateDispatching:
		return "dispatching"
	case StateWriting:
		return "writing"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// canEnter reports whether next is a legal successor of s. Any live state
// may close; Closed is terminal.
func (s ConnState) canEnter(next ConnState) bool {
	if s == StateClosed {
		return false
	}
	if next == StateClosed {
		return true
	}
	switch s {
	case StateOpen:
		return next == StateAwaitingMessage
	case StateAwaitingMessage:
		// A malformed message answers without dispatching.
		return next == StateDispatching || next == StateWriting
	case StateDispatching:
		return next == StateWriting
	case StateWriting:
		return next == StateAwaitingMessage
	}
	return false
}

// Lifecycle is the per-connection state machine. A connection worker drives
// it through the read/dispatch/write cycle; Stop and I/O failures force it
// to StateClosed from any state.
type Lifecycle struct {
	mu    sync.Mutex
	state ConnState
}

// NewLifecycle returns a lifecycle in StateOpen.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateOpen}
}

// To advances the machine to next, or fails if the transition is not legal.
func (l *Lifecycle) To(next ConnState) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.state.canEnter(next) {
		return fmt.Errorf("illegal transition %v -> %v", l.state, next)
	}
	l.state = next
	return nil
}

// State returns the current state.
func (l *Lifecycle) State() ConnState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Close forces the terminal state. Idempotent.
func (l *Lifecycle) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = StateClosed
}
