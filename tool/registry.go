// Package tool maps command names to handler capabilities and routes
// decoded commands through the execution bridge.
package tool

import (
	"sort"

	"github.com/scenebridge/scenebridge/bridge"
)

// Registry is a static mapping from tool name to handler. Populate it
// before serving; once serving starts it is read-only and safe to share
// across all connection workers. It performs no I/O.
type Registry struct {
	handlers map[string]bridge.Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]bridge.Handler)}
}

// Register binds a handler to a tool name, replacing any previous binding.
func (r *Registry) Register(name string, handler bridge.Handler) {
	r.handlers[name] = handler
}

// Lookup resolves a tool name.
func (r *Registry) Lookup(name string) (bridge.Handler, bool) {
	handler, ok := r.handlers[name]
	return handler, ok
}

// Names lists registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
