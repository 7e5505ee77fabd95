package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"matcap-scene/internal/geometry"
)

// MaxChunkVertices is the largest vertex count a single raylib mesh can index.
const MaxChunkVertices = math.MaxUint16

// chunk is one uploadable piece of a geometry. The slices back the raylib mesh and must
// stay reachable for as long as the mesh is on the GPU.
type chunk struct {
	positions []float32
	normals   []float32
	uvs       []float32
	indices   []uint16
	vertices  int
}

// chunks splits g into pieces raylib can index with 16-bit indices.
func chunks(g *geometry.Geometry) []chunk {
	var out []chunk
	for _, part := range g.Split(MaxChunkVertices) {
		c := chunk{
			positions: part.Positions,
			normals:   part.Normals,
			uvs:       part.UVs,
			vertices:  part.VertexCount(),
		}
		if part.Indexed() {
			c.indices = make([]uint16, len(part.Indices))
			for i, idx := range part.Indices {
				c.indices[i] = uint16(idx)
			}
		}
		out = append(out, c)
	}
	return out
}

func (c *chunk) triangles() int {
	if c.indices != nil {
		return len(c.indices) / 3
	}
	return c.vertices / 3
}

// gpuMesh is a geometry uploaded once and drawn by every mesh that shares it.
type gpuMesh struct {
	parts  []chunk
	meshes []rl.Mesh
}

func upload(g *geometry.Geometry) *gpuMesh {
	m := &gpuMesh{parts: chunks(g)}
	for i := range m.parts {
		c := &m.parts[i]
		if c.vertices == 0 {
			continue
		}
		mesh := rl.Mesh{
			VertexCount:   int32(c.vertices),
			TriangleCount: int32(c.triangles()),
			Vertices:      &c.positions[0],
		}
		if len(c.normals) > 0 {
			mesh.Normals = &c.normals[0]
		}
		if len(c.uvs) > 0 {
			mesh.Texcoords = &c.uvs[0]
		}
		if len(c.indices) > 0 {
			mesh.Indices = &c.indices[0]
		}
		rl.UploadMesh(&mesh, false)
		m.meshes = append(m.meshes, mesh)
	}
	return m
}

func (m *gpuMesh) draw(mat rl.Material, transform rl.Matrix) {
	for _, mesh := range m.meshes {
		rl.DrawMesh(mesh, mat, transform)
	}
}

func (m *gpuMesh) unload() {
	for i := range m.meshes {
		rl.UnloadMesh(&m.meshes[i])
	}
	m.meshes = nil
}
