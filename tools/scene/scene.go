// Package scene implements the 3D-host capability set against an in-memory
// scene document: scene and object introspection, texture assignment, and
// viewport snapshots. Handlers run only on the host's affinity thread, so
// the document itself needs no locking.
package scene

// MeshStats summarizes mesh geometry.
type MeshStats struct {
	Vertices int
	Edges    int
	Faces    int
}

// Object is one scene object.
type Object struct {
	Name      string
	Type      string
	Location  [3]float64
	Rotation  [3]float64
	Scale     [3]float64
	Visible   bool
	Parent    string
	Materials []string
	Mesh      *MeshStats
}

// Collection groups objects by name.
type Collection struct {
	Name    string
	Objects []string
}

// Scene is the host's scene document.
type Scene struct {
	Name                 string
	FrameCurrent         int
	FrameStart           int
	FrameEnd             int
	FPS                  int
	ResolutionX          int
	ResolutionY          int
	ResolutionPercentage int

	objects     []*Object
	byName      map[string]*Object
	collections []Collection
}

// NewScene returns an empty scene with conventional frame and render
// defaults.
func NewScene(name string) *Scene {
	return &Scene{
		Name:                 name,
		FrameCurrent:         1,
		FrameStart:           1,
		FrameEnd:             250,
		FPS:                  24,
		ResolutionX:          1920,
		ResolutionY:          1080,
		ResolutionPercentage: 100,
		byName:               make(map[string]*Object),
	}
}

// Add inserts an object, preserving insertion order for introspection.
func (s *Scene) Add(obj *Object) {
	s.objects = append(s.objects, obj)
	s.byName[obj.Name] = obj
}

// Object resolves an object by name.
func (s *Scene) Object(name string) (*Object, bool) {
	obj, ok := s.byName[name]
	return obj, ok
}

// Objects returns the objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// AddCollection registers a named object grouping.
func (s *Scene) AddCollection(c Collection) {
	s.collections = append(s.collections, c)
}

// Collections returns registered groupings.
func (s *Scene) Collections() []Collection {
	return s.collections
}

// DefaultScene mirrors the startup document of a typical 3D host: a cube, a
// camera, and a light in one collection.
func DefaultScene() *Scene {
	s := NewScene("Scene")
	s.Add(&Object{
		Name:      "Cube",
		Type:      "MESH",
		Scale:     [3]float64{1, 1, 1},
		Visible:   true,
		Materials: []string{"Material"},
		Mesh:      &MeshStats{Vertices: 8, Edges: 12, Faces: 6},
	})
	s.Add(&Object{
		Name:     "Camera",
		Type:     "CAMERA",
		Location: [3]float64{7.36, -6.93, 4.96},
		Rotation: [3]float64{1.11, 0, 0.81},
		Scale:    [3]float64{1, 1, 1},
		Visible:  true,
	})
	s.Add(&Object{
		Name:     "Light",
		Type:     "LIGHT",
		Location: [3]float64{4.08, 1.01, 5.9},
		Scale:    [3]float64{1, 1, 1},
		Visible:  true,
	})
	s.AddCollection(Collection{Name: "Collection", Objects: []string{"Cube", "Camera", "Light"}})
	return s
}
