// Package client provides the controller-side counterpart of the
// scenebridge protocol: dial a command server, issue tool calls, read the
// correlated responses.
package client

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/scenebridge/scenebridge/protocol"
)

// Client issues commands over a single connection. Calls are serialized:
// the protocol correlates responses to requests by order, so a call must
// fully complete before the next request goes out.
type Client struct {
	mu      sync.Mutex
	conn    net.Conn
	encoder *protocol.Encoder
	decoder *protocol.Decoder
}

// Dial connects to a command server.
func Dial(addr string) (*Client, error) {
	return DialTimeout(addr, 10*time.Second)
}

// DialTimeout connects with a bounded dial wait.
func DialTimeout(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{
		conn:    conn,
		encoder: protocol.NewEncoder(conn),
		decoder: protocol.NewDecoder(conn),
	}, nil
}

// Call sends one command and waits for its response. A server-side error
// arrives as a response with an error field, not as a Go error; the Go
// error covers transport and protocol failures only.
func (c *Client) Call(toolName string, params map[string]any) (protocol.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	command := &protocol.Command{Tool: toolName, Params: params}
	if err := c.encoder.Encode(command); err != nil {
		return nil, fmt.Errorf("send %s: %w", toolName, err)
	}
	var response protocol.Response
	if err := c.decoder.Decode(&response); err != nil {
		return nil, fmt.Errorf("receive %s response: %w", toolName, err)
	}
	return response, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
