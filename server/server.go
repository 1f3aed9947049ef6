// Package server implements the network side of a scenebridge command
// server: a TCP listener, a fixed pool of connection workers, and the
// per-connection read/dispatch/write loop. Handler execution crosses into
// the host through the bridge package; the server never calls a handler
// itself.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/scenebridge/scenebridge/bridge"
	"github.com/scenebridge/scenebridge/internal/collection"
	"github.com/scenebridge/scenebridge/tool"
)

// DefaultAddr is the default listening address of the 3D-host bridge.
const DefaultAddr = "localhost:9876"

// DefaultWorkers is the default connection worker pool capacity. Clients
// beyond it wait in accept order for a worker to free up; there is no
// admission cap, so an unbounded client count can pile up under load.
const DefaultWorkers = 5

// Server accepts controller connections and serves the line-oriented JSON
// command protocol. Start and Stop are idempotent on the handle itself; no
// process-global state tracks whether an instance is running.
type Server struct {
	addr    string
	workers int
	timeout time.Duration
	logger  *slog.Logger

	queue      bridge.Queue
	dispatcher *tool.Dispatcher

	listener Listener
	conns    *collection.SyncMap[string, net.Conn]
	accepted chan net.Conn
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu      sync.Mutex
	running bool
}

// New creates a server dispatching commands from registry through queue.
func New(queue bridge.Queue, registry *tool.Registry, options ...Option) (*Server, error) {
	if queue == nil {
		return nil, errors.New("no queue specified")
	}
	if registry == nil {
		return nil, errors.New("no registry specified")
	}
	s := &Server{
		addr:    DefaultAddr,
		workers: DefaultWorkers,
		timeout: bridge.DefaultTimeout,
		logger:  slog.Default(),
		queue:   queue,
		conns:   collection.NewSyncMap[string, net.Conn](),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	b := bridge.New(queue, bridge.WithTimeout(s.timeout), bridge.WithLogger(s.logger))
	s.dispatcher = tool.NewDispatcher(registry, b)
	return s, nil
}

// Start binds the listener and launches the worker pool. Calling Start on a
// running server is a no-op.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.logger.Info("server already running", "addr", s.listener.Addr())
		return nil
	}
	if err := s.listener.Start(s.addr); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.accepted = make(chan net.Conn)
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx)
	}
	s.wg.Add(1)
	go s.acceptLoop(ctx)
	s.running = true
	s.logger.Info("server started", "addr", s.listener.Addr(), "workers", s.workers)
	return nil
}

// Addr returns the bound listening address, or nil while stopped. With a
// ":0" configured address this is the port the kernel picked.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Stop closes the listening socket and every live connection, then waits
// for the workers to drain. Closing sockets unblocks stuck reads and
// cancellation unblocks bridge waits, so Stop cannot deadlock on blocked
// workers. Calling Stop on a stopped server is a no-op.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.logger.Info("stopping server")
	s.cancel()
	s.listener.Stop()
	s.conns.Range(func(id string, conn net.Conn) bool {
		_ = conn.Close()
		return true
	})
	s.wg.Wait()
	s.running = false
	s.logger.Info("server stopped")
}

// acceptLoop feeds accepted connections to the worker pool. The unbuffered
// channel preserves accept order: when every worker is busy the next
// connection waits its turn, and further clients queue in the socket
// backlog.
func (s *Server) acceptLoop(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.accepted)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				s.logger.Error("accept failed", "err", err)
			}
			return
		}
		select {
		case s.accepted <- conn:
		case <-ctx.Done():
			_ = conn.Close()
			return
		}
	}
}

func (s *Server) worker(ctx context.Context) {
	defer s.wg.Done()
	for conn := range s.accepted {
		s.serve(ctx, conn)
	}
}
