package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
)

// ErrBind is returned by Start when the listening address cannot be
// acquired, typically because it is already in use. It is the only error
// fatal to server startup.
var ErrBind = errors.New("server: bind failed")

// Listener owns the single listening socket of a server's process
// lifetime. Stop closes the listening socket only; it never severs
// in-flight connections.
type Listener struct {
	mu sync.Mutex
	ln net.Listener
}

// Start binds the address and begins accepting.
func (l *Listener) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBind, addr, err)
	}
	l.mu.Lock()
	l.ln = ln
	l.mu.Unlock()
	return nil
}

// Accept waits for the next inbound connection. It fails with net.ErrClosed
// once Stop has run.
func (l *Listener) Accept() (net.Conn, error) {
	l.mu.Lock()
	ln := l.ln
	l.mu.Unlock()
	if ln == nil {
		return nil, net.ErrClosed
	}
	return ln.Accept()
}

// Addr returns the bound address, or nil before Start.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// Stop closes the listening socket. Idempotent.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln == nil {
		return
	}
	_ = l.ln.Close()
	l.ln = nil
}
