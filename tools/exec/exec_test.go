package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenebridge/scenebridge/tool"
)

func TestExecute(t *testing.T) {
	service, err := New(context.Background())
	require.NoError(t, err)

	response, err := service.execute(map[string]any{"code": "echo scenebridge"})
	require.NoError(t, err)
	result, ok := response["result"].(string)
	require.True(t, ok)
	assert.Contains(t, result, "scenebridge")
}

func TestExecuteNoCode(t *testing.T) {
	service, err := New(context.Background())
	require.NoError(t, err)

	_, err = service.execute(map[string]any{})
	assert.EqualError(t, err, "No code provided")
}

func TestExecuteFailure(t *testing.T) {
	service, err := New(context.Background())
	require.NoError(t, err)

	_, err = service.execute(map[string]any{"code": "ls /no/such/path/scenebridge"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Execution error")
}

func TestRegisterIsOptIn(t *testing.T) {
	registry := tool.NewRegistry()
	_, ok := registry.Lookup(ToolName)
	assert.False(t, ok)

	service, err := New(context.Background())
	require.NoError(t, err)
	service.Register(registry)
	_, ok = registry.Lookup(ToolName)
	assert.True(t, ok)
}
