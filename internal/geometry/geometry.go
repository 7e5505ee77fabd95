package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry holds flat vertex buffers. Positions and Normals hold xyz triples, UVs hold uv pairs.
// When Indices is nil the geometry is non-indexed and every three vertices form a triangle.
type Geometry struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box, allowing eps of slack on each side.
func (b AABB) Contains(p mgl32.Vec3, eps float32) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i]-eps || p[i] > b.Max[i]+eps {
			return false
		}
	}
	return true
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return g.VertexCount() / 3
}

// Indexed reports whether the geometry uses an index buffer.
func (g *Geometry) Indexed() bool {
	return g.Indices != nil
}

// Vertex returns the position of vertex i.
func (g *Geometry) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
}

// BoundingBox computes the box enclosing every vertex. An empty geometry yields a zero box.
func (g *Geometry) BoundingBox() AABB {
	n := g.VertexCount()
	if n == 0 {
		return AABB{}
	}
	inf := math32.Inf(1)
	box := AABB{Min: mgl32.Vec3{inf, inf, inf}, Max: mgl32.Vec3{-inf, -inf, -inf}}
	for i := 0; i < n; i++ {
		for a := 0; a < 3; a++ {
			v := g.Positions[i*3+a]
			box.Min[a] = math32.Min(box.Min[a], v)
			box.Max[a] = math32.Max(box.Max[a], v)
		}
	}
	return box
}

// Translate moves every vertex by d.
func (g *Geometry) Translate(d mgl32.Vec3) {
	for i := 0; i+2 < len(g.Positions); i += 3 {
		g.Positions[i] += d[0]
		g.Positions[i+1] += d[1]
		g.Positions[i+2] += d[2]
	}
}

// Center translates the geometry so that its bounding box center sits at the origin.
// It returns the translation that was applied.
func (g *Geometry) Center() mgl32.Vec3 {
	d := g.BoundingBox().Center().Mul(-1)
	g.Translate(d)
	return d
}

// Split breaks the geometry into chunks that reference at most maxVertices vertices each,
// so that every chunk can be drawn with 16-bit indices. Geometries already within the
// limit are returned as the only chunk.
func (g *Geometry) Split(maxVertices int) []*Geometry {
	if maxVertices < 3 {
		maxVertices = 3
	}
	if g.VertexCount() <= maxVertices {
		return []*Geometry{g}
	}
	if !g.Indexed() {
		return g.splitFlat(maxVertices - maxVertices%3)
	}
	return g.splitIndexed(maxVertices)
}

func (g *Geometry) splitFlat(per int) []*Geometry {
	var out []*Geometry
	n := g.VertexCount()
	for start := 0; start < n; start += per {
		end := min(start+per, n)
		out = append(out, &Geometry{
			Positions: g.Positions[start*3 : end*3],
			Normals:   sliceOrNil(g.Normals, start*3, end*3),
			UVs:       sliceOrNil(g.UVs, start*2, end*2),
		})
	}
	return out
}

func sliceOrNil(s []float32, from, to int) []float32 {
	if len(s) < to {
		return nil
	}
	return s[from:to]
}

func (g *Geometry) splitIndexed(maxVertices int) []*Geometry {
	var out []*Geometry
	cur := &Geometry{}
	remap := make(map[uint32]uint32)
	flush := func() {
		if len(cur.Indices) > 0 {
			out = append(out, cur)
		}
		cur = &Geometry{}
		clear(remap)
	}
	for t := 0; t+2 < len(g.Indices); t += 3 {
		tri := g.Indices[t : t+3]
		fresh := 0
		for _, idx := range tri {
			if _, ok := remap[idx]; !ok {
				fresh++
			}
		}
		if len(remap)+fresh > maxVertices {
			flush()
		}
		for _, idx := range tri {
			local, ok := remap[idx]
			if !ok {
				local = uint32(cur.VertexCount())
				remap[idx] = local
				i := int(idx)
				cur.Positions = append(cur.Positions, g.Positions[i*3:i*3+3]...)
				if len(g.Normals) >= (i+1)*3 {
					cur.Normals = append(cur.Normals, g.Normals[i*3:i*3+3]...)
				}
				if len(g.UVs) >= (i+1)*2 {
					cur.UVs = append(cur.UVs, g.UVs[i*2:i*2+2]...)
				}
			}
			cur.Indices = append(cur.Indices, local)
		}
	}
	flush()
	return out
}

type builder struct {
	g Geometry
}

func (b *builder) vertex(p, n mgl32.Vec3, u, v float32) uint32 {
	idx := uint32(len(b.g.Positions) / 3)
	b.g.Positions = append(b.g.Positions, p[0], p[1], p[2])
	b.g.Normals = append(b.g.Normals, n[0], n[1], n[2])
	b.g.UVs = append(b.g.UVs, u, v)
	return idx
}

func (b *builder) tri(a, c, d uint32) {
	b.g.Indices = append(b.g.Indices, a, c, d)
}

func (b *builder) build() *Geometry {
	g := b.g
	return &g
}
