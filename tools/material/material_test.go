package material

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, outputDir string) *Service {
	t.Helper()
	// echo stands in for the generator: the command line comes back as
	// output and no textures are produced.
	service, err := New(context.Background(), &Config{Command: "echo", OutputDir: outputDir})
	require.NoError(t, err)
	return service
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	service := newTestService(t, dir)

	response, err := service.generate(map[string]any{
		"material":   "brick",
		"resolution": "1024",
		"preview":    true,
	})
	require.NoError(t, err)
	assert.Equal(t, true, response["success"])
	output, ok := response["output"].(string)
	require.True(t, ok)
	assert.Contains(t, output, "--material brick")
	assert.Contains(t, output, "--preview")
}

func TestGenerateReportsFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brick_albedo.png"), []byte{1}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brick_normal.png"), []byte{1}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stone_albedo.png"), []byte{1}, 0o644))

	service := newTestService(t, dir)
	response, err := service.generate(map[string]any{"material": "brick"})
	require.NoError(t, err)

	files, ok := response["generated_files"].([]string)
	require.True(t, ok)
	assert.Len(t, files, 2)
	for _, f := range files {
		assert.Contains(t, f, "brick_")
	}
}

func TestGenerateMissingMaterial(t *testing.T) {
	service := newTestService(t, t.TempDir())
	_, err := service.generate(map[string]any{})
	assert.EqualError(t, err, "Missing required parameter: material")
}
