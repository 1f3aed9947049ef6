package scene

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenebridge/scenebridge/tool"
)

func TestRegister(t *testing.T) {
	registry := tool.NewRegistry()
	New(DefaultScene()).Register(registry)
	assert.Equal(t, []string{
		"get_object_info",
		"get_scene_info",
		"get_viewport_screenshot",
		"set_texture",
	}, registry.Names())
}

func TestSceneInfo(t *testing.T) {
	service := New(DefaultScene())
	response, err := service.sceneInfo(nil)
	require.NoError(t, err)

	assert.Equal(t, "Scene", response["scene_name"])
	assert.Equal(t, 1, response["frame_current"])
	assert.Equal(t, 24, response["fps"])
	objects, ok := response["objects"].([]any)
	require.True(t, ok)
	assert.Len(t, objects, 3)
	first, ok := objects[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Cube", first["name"])
	collections, ok := response["collections"].([]any)
	require.True(t, ok)
	assert.Len(t, collections, 1)
}

func TestObjectInfo(t *testing.T) {
	service := New(DefaultScene())
	response, err := service.objectInfo(map[string]any{"object_name": "Cube"})
	require.NoError(t, err)
	assert.Equal(t, "Cube", response["name"])
	assert.Equal(t, "MESH", response["type"])
	mesh, ok := response["mesh"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 8, mesh["vertices"])

	// Non-mesh objects carry no mesh stats.
	response, err = service.objectInfo(map[string]any{"object_name": "Camera"})
	require.NoError(t, err)
	_, hasMesh := response["mesh"]
	assert.False(t, hasMesh)
}

func TestObjectInfoNotFound(t *testing.T) {
	service := New(DefaultScene())
	_, err := service.objectInfo(map[string]any{"object_name": "Suzanne"})
	assert.EqualError(t, err, "Object 'Suzanne' not found")
}

func TestSetTexture(t *testing.T) {
	scn := DefaultScene()
	service := New(scn)
	response, err := service.setTexture(map[string]any{
		"object_name": "Cube",
		"texture_id":  "concrete_wall_01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Texture applied", response["status"])

	obj, ok := scn.Object("Cube")
	require.True(t, ok)
	assert.Contains(t, obj.Materials, "concrete_wall_01")

	_, err = service.setTexture(map[string]any{"object_name": "Ghost", "texture_id": "x"})
	assert.Error(t, err)
}

func TestScreenshot(t *testing.T) {
	service := New(DefaultScene())
	// JSON numbers decode as float64.
	response, err := service.screenshot(map[string]any{"max_size": float64(64)})
	require.NoError(t, err)
	assert.Equal(t, "png", response["format"])
	assert.Equal(t, 64, response["width"])

	encoded, ok := response["image"].(string)
	require.True(t, ok)
	data, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestScreenshotInvalidSize(t *testing.T) {
	service := New(DefaultScene())
	_, err := service.screenshot(map[string]any{"max_size": float64(-1)})
	assert.Error(t, err)
}
