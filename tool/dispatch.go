package tool

import (
	"context"
	"errors"

	"github.com/scenebridge/scenebridge/bridge"
	"github.com/scenebridge/scenebridge/protocol"
)

// Dispatcher resolves a decoded command against the registry and executes
// the handler through the bridge. Every outcome, including failure, becomes
// a response; the connection that issued the command stays usable.
type Dispatcher struct {
	registry *Registry
	bridge   *bridge.Bridge
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(registry *Registry, b *bridge.Bridge) *Dispatcher {
	return &Dispatcher{registry: registry, bridge: b}
}

// Dispatch executes one command. An unknown tool name answers immediately
// without touching the bridge.
func (d *Dispatcher) Dispatch(ctx context.Context, command *protocol.Command) protocol.Response {
	handler, ok := d.registry.Lookup(command.Tool)
	if !ok {
		return protocol.Errorf("Unknown tool: %s", command.Tool)
	}
	result, err := d.bridge.Submit(ctx, handler, command.Params)
	if err != nil {
		if errors.Is(err, bridge.ErrTimeout) {
			return protocol.ErrorResponse("Command execution timeout")
		}
		if errors.Is(err, bridge.ErrUnavailable) {
			return protocol.ErrorResponse("Server unavailable")
		}
		return protocol.ErrorResponse(err.Error())
	}
	if result == nil {
		result = protocol.Response{}
	}
	return result
}
