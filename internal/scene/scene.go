package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"matcap-scene/internal/assets"
	"matcap-scene/internal/geometry"
)

// Node is anything that can be placed in the scene graph.
type Node interface {
	NodeName() string
}

// Material shades a surface by looking up its view-space normal in a matcap image.
// One material may be shared by any number of meshes.
type Material struct {
	Name   string
	Matcap *assets.Texture
}

// Mesh places a geometry in the world. Rotation holds Euler angles in radians applied
// in X, Y, Z order.
type Mesh struct {
	Name     string
	Family   string
	Geometry *geometry.Geometry
	Material *Material
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// NewMesh returns a mesh at the origin with unit scale.
func NewMesh(name string, g *geometry.Geometry, m *Material) *Mesh {
	return &Mesh{Name: name, Geometry: g, Material: m, Scale: mgl32.Vec3{1, 1, 1}}
}

func (m *Mesh) NodeName() string {
	return m.Name
}

// ModelMatrix returns translation * rotX * rotY * rotZ * scale.
func (m *Mesh) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2]).
		Mul4(mgl32.HomogRotate3DX(m.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(m.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(m.Rotation[2])).
		Mul4(mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2]))
}

// Scene is the root of the scene graph. It is owned by the render goroutine.
type Scene struct {
	// Background is drawn behind everything once its cube map has loaded.
	// A nil or unfinished background leaves the renderer's clear color.
	Background *assets.CubeMap

	nodes []Node
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends n to the scene.
func (s *Scene) Add(n Node) {
	s.nodes = append(s.nodes, n)
}

// Nodes returns every node in insertion order.
func (s *Scene) Nodes() []Node {
	return s.nodes
}

// Meshes returns the mesh nodes in insertion order.
func (s *Scene) Meshes() []*Mesh {
	var out []*Mesh
	for _, n := range s.nodes {
		if m, ok := n.(*Mesh); ok {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}
