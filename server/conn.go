package server

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/scenebridge/scenebridge/protocol"
)

// serve owns one accepted connection exclusively: read one framed message,
// dispatch, write the response, repeat until the peer closes or I/O fails.
// Within a connection, response N is fully written before request N+1 is
// read.
func (s *Server) serve(ctx context.Context, conn net.Conn) {
	id := uuid.New().String()
	s.conns.Put(id, conn)
	defer s.conns.Delete(id)
	defer conn.Close()

	// Stop may have snapshotted the connection table before this
	// registration; do not start reading a socket nobody will close.
	if ctx.Err() != nil {
		return
	}

	logger := s.logger.With("conn", id, "remote", conn.RemoteAddr().String())
	logger.Info("client connected")

	life := protocol.NewLifecycle()
	defer life.Close()
	decoder := protocol.NewDecoder(conn)
	encoder := protocol.NewEncoder(conn)

	for {
		_ = life.To(protocol.StateAwaitingMessage)
		var command protocol.Command
		if err := decoder.Decode(&command); err != nil {
			if errors.Is(err, protocol.ErrProtocol) {
				// A bad message does not close the connection: answer
				// and keep reading.
				logger.Warn("malformed message", "err", err)
				_ = life.To(protocol.StateWriting)
				if werr := encoder.Encode(protocol.Errorf("Invalid JSON: %v", err)); werr != nil {
					logger.Warn("write failed", "err", werr)
					return
				}
				continue
			}
			if !errors.Is(err, io.EOF) && ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				logger.Warn("read failed", "err", err)
			}
			logger.Info("client disconnected")
			return
		}

		_ = life.To(protocol.StateDispatching)
		logger.Debug("dispatching command", "tool", command.Tool)
		response := s.dispatcher.Dispatch(ctx, &command)

		_ = life.To(protocol.StateWriting)
		if err := encoder.Encode(response); err != nil {
			logger.Warn("write failed", "err", err)
			return
		}
	}
}
