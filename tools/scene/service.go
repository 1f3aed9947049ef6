package scene

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/scenebridge/scenebridge/internal/conv"
	"github.com/scenebridge/scenebridge/protocol"
	"github.com/scenebridge/scenebridge/tool"
)

const defaultSnapshotSize = 800

// Service exposes a scene document as bridge handlers.
type Service struct {
	scene *Scene
}

// New creates a service over the supplied scene.
func New(scene *Scene) *Service {
	return &Service{scene: scene}
}

// Register binds the scene tools.
func (s *Service) Register(registry *tool.Registry) {
	registry.Register("get_scene_info", s.sceneInfo)
	registry.Register("get_object_info", s.objectInfo)
	registry.Register("set_texture", s.setTexture)
	registry.Register("get_viewport_screenshot", s.screenshot)
}

func (s *Service) sceneInfo(params map[string]any) (protocol.Response, error) {
	scn := s.scene
	objects := make([]any, 0, len(scn.Objects()))
	for _, obj := range scn.Objects() {
		objects = append(objects, map[string]any{
			"name":     obj.Name,
			"type":     obj.Type,
			"location": obj.Location[:],
			"rotation": obj.Rotation[:],
			"scale":    obj.Scale[:],
			"visible":  obj.Visible,
		})
	}
	collections := make([]any, 0, len(scn.Collections()))
	for _, c := range scn.Collections() {
		collections = append(collections, map[string]any{
			"name":    c.Name,
			"objects": c.Objects,
		})
	}
	return protocol.Response{
		"scene_name":    scn.Name,
		"frame_current": scn.FrameCurrent,
		"frame_start":   scn.FrameStart,
		"frame_end":     scn.FrameEnd,
		"fps":           scn.FPS,
		"resolution": map[string]any{
			"x":          scn.ResolutionX,
			"y":          scn.ResolutionY,
			"percentage": scn.ResolutionPercentage,
		},
		"objects":     objects,
		"collections": collections,
	}, nil
}

func (s *Service) objectInfo(params map[string]any) (protocol.Response, error) {
	name := conv.AsString(params["object_name"], "")
	obj, ok := s.scene.Object(name)
	if !ok {
		return nil, fmt.Errorf("Object '%s' not found", name)
	}
	var children []string
	for _, candidate := range s.scene.Objects() {
		if candidate.Parent == obj.Name {
			children = append(children, candidate.Name)
		}
	}
	info := protocol.Response{
		"name":           obj.Name,
		"type":           obj.Type,
		"location":       obj.Location[:],
		"rotation_euler": obj.Rotation[:],
		"scale":          obj.Scale[:],
		"visible":        obj.Visible,
		"parent":         nilIfEmpty(obj.Parent),
		"children":       children,
		"materials":      obj.Materials,
	}
	if obj.Mesh != nil {
		info["mesh"] = map[string]any{
			"vertices": obj.Mesh.Vertices,
			"edges":    obj.Mesh.Edges,
			"faces":    obj.Mesh.Faces,
		}
	}
	return info, nil
}

func (s *Service) setTexture(params map[string]any) (protocol.Response, error) {
	name := conv.AsString(params["object_name"], "")
	textureID := conv.AsString(params["texture_id"], "")
	obj, ok := s.scene.Object(name)
	if !ok {
		return nil, fmt.Errorf("Object '%s' not found", name)
	}
	obj.Materials = append(obj.Materials, textureID)
	return protocol.Response{
		"status":  "Texture applied",
		"object":  obj.Name,
		"texture": textureID,
	}, nil
}

// screenshot renders a schematic top-down snapshot of the scene: one tile
// per object over a neutral background, base64-encoded PNG.
func (s *Service) screenshot(params map[string]any) (protocol.Response, error) {
	size := conv.AsInt(params["max_size"], defaultSnapshotSize)
	if size <= 0 {
		return nil, fmt.Errorf("invalid max_size: %d", size)
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	background := color.RGBA{R: 58, G: 58, B: 58, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, background)
		}
	}
	tile := size / 16
	if tile < 1 {
		tile = 1
	}
	for _, obj := range s.scene.Objects() {
		c := objectColor(obj.Type)
		// Project x/y location onto the canvas, scene origin at center.
		cx := size/2 + int(obj.Location[0]*float64(size)/20)
		cy := size/2 - int(obj.Location[1]*float64(size)/20)
		for y := cy - tile/2; y < cy+tile/2+1; y++ {
			for x := cx - tile/2; x < cx+tile/2+1; x++ {
				if image.Pt(x, y).In(img.Bounds()) {
					img.Set(x, y, c)
				}
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return protocol.Response{
		"image":  base64.StdEncoding.EncodeToString(buf.Bytes()),
		"format": "png",
		"width":  size,
		"height": size,
	}, nil
}

func objectColor(objType string) color.RGBA {
	switch objType {
	case "MESH":
		return color.RGBA{R: 190, G: 190, B: 210, A: 255}
	case "CAMERA":
		return color.RGBA{R: 240, G: 170, B: 60, A: 255}
	case "LIGHT":
		return color.RGBA{R: 250, G: 240, B: 150, A: 255}
	}
	return color.RGBA{R: 140, G: 140, B: 140, A: 255}
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
