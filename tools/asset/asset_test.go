package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenebridge/scenebridge/tool"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(&Config{DownloadDir: t.TempDir()})
}

func TestRegister(t *testing.T) {
	registry := tool.NewRegistry()
	newTestService(t).Register(registry)
	names := registry.Names()
	assert.Contains(t, names, "get_polyhaven_categories")
	assert.Contains(t, names, "search_polyhaven_assets")
	assert.Contains(t, names, "download_polyhaven_asset")
	assert.Contains(t, names, "get_polyhaven_status")
}

func TestListCategories(t *testing.T) {
	service := newTestService(t)

	response, err := service.listCategories(map[string]any{"asset_type": "textures"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fabric", "wood", "metal", "concrete", "plastic"}, response["categories"])

	// Defaults to hdris.
	response, err = service.listCategories(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outdoor", "indoor", "studio", "nature"}, response["categories"])

	response, err = service.listCategories(map[string]any{"asset_type": "sounds"})
	require.NoError(t, err)
	assert.Empty(t, response["categories"])
}

func TestSearch(t *testing.T) {
	service := newTestService(t)

	response, err := service.search(map[string]any{"asset_type": "textures", "categories": "wood"})
	require.NoError(t, err)
	assets, ok := response["assets"].([]any)
	require.True(t, ok)
	require.Len(t, assets, 1)
	entry, ok := assets[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "wooden_floor_02", entry["id"])

	response, err = service.search(map[string]any{"asset_type": "models"})
	require.NoError(t, err)
	assert.Empty(t, response["assets"])
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()
	service := New(&Config{DownloadDir: dir})

	response, err := service.download(map[string]any{"asset_id": "concrete_wall_01"})
	require.NoError(t, err)
	assert.Equal(t, "Downloaded", response["status"])
	assert.Equal(t, "concrete_wall_01", response["asset_id"])

	data, err := os.ReadFile(filepath.Join(dir, "concrete_wall_01.asset"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "concrete_wall_01")
}

func TestDownloadFromSourceURL(t *testing.T) {
	sourceDir := t.TempDir()
	source := filepath.Join(sourceDir, "brick.bin")
	require.NoError(t, os.WriteFile(source, []byte("payload"), 0o644))

	dir := t.TempDir()
	service := New(&Config{DownloadDir: dir})
	service.AddAsset(Asset{ID: "brick_01", Name: "Brick 01", Type: "textures", Category: "concrete", URL: source})

	response, err := service.download(map[string]any{"asset_id": "brick_01"})
	require.NoError(t, err)
	assert.Equal(t, "Downloaded", response["status"])

	data, err := os.ReadFile(filepath.Join(dir, "brick_01.asset"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestDownloadErrors(t *testing.T) {
	service := newTestService(t)
	_, err := service.download(map[string]any{})
	assert.Error(t, err)
	_, err = service.download(map[string]any{"asset_id": "nope"})
	assert.EqualError(t, err, "Unknown asset: nope")
}

func TestStatuses(t *testing.T) {
	registry := tool.NewRegistry()
	newTestService(t).Register(registry)

	handler, ok := registry.Lookup("get_polyhaven_status")
	require.True(t, ok)
	response, err := handler(nil)
	require.NoError(t, err)
	assert.Equal(t, "PolyHaven integration is enabled", response["status"])

	handler, ok = registry.Lookup("get_hyper3d_status")
	require.True(t, ok)
	response, err = handler(nil)
	require.NoError(t, err)
	assert.Equal(t, "Hyper3D integration is not configured", response["status"])
}
