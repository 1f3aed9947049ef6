// Package exec provides the host code-execution capability. It is a
// deliberately separate, opt-in registration: the default tool set never
// includes it, and operators enable it explicitly, accepting that scripts
// run with the server's own privileges.
package exec

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"

	"github.com/scenebridge/scenebridge/internal/conv"
	"github.com/scenebridge/scenebridge/protocol"
	"github.com/scenebridge/scenebridge/tool"
)

// ToolName is the registered command name.
const ToolName = "execute_code"

// Service runs submitted scripts through a local shell session.
type Service struct {
	shell *gosh.Service
}

// New creates a service backed by a local runner.
func New(ctx context.Context) (*Service, error) {
	shell, err := gosh.New(ctx, local.New())
	if err != nil {
		return nil, fmt.Errorf("create shell service: %w", err)
	}
	return &Service{shell: shell}, nil
}

// Register binds the execution tool. Callers opt in; Register is never part
// of a default tool set.
func (s *Service) Register(registry *tool.Registry) {
	registry.Register(ToolName, s.execute)
}

func (s *Service) execute(params map[string]any) (protocol.Response, error) {
	code := conv.AsString(params["code"], "")
	if code == "" {
		return nil, fmt.Errorf("No code provided")
	}
	output, exitCode, err := s.shell.Run(context.Background(), code)
	if err != nil {
		return nil, fmt.Errorf("Execution error: %v", err)
	}
	if exitCode != 0 {
		return nil, fmt.Errorf("Execution error: exit status %d: %s", exitCode, strings.TrimSpace(output))
	}
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		return protocol.Response{"result": trimmed}, nil
	}
	return protocol.Response{"status": "Code executed successfully"}, nil
}
