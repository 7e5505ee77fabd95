package geometry

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape is a closed outline with optional holes, both given as sampled points in the XY plane.
type Shape struct {
	Contour []mgl32.Vec2
	Holes   [][]mgl32.Vec2
}

// ExtrudeOptions controls how shapes are pushed along +Z.
type ExtrudeOptions struct {
	Depth          float32
	Steps          int
	BevelEnabled   bool
	BevelThickness float32
	BevelSize      float32
	BevelOffset    float32
	BevelSegments  int
}

const bevelEps = 1e-10

// Extrude turns each shape into a solid: a front lid at the lowest z, the side walls, and a back lid
// at the highest z. With bevel enabled the lids are rounded outward by BevelSize over BevelThickness
// using BevelSegments layers on each side, so the solid spans z in [-BevelThickness, Depth+BevelThickness].
// The result is non-indexed with flat normals.
func Extrude(shapes []Shape, opts ExtrudeOptions) *Geometry {
	opts.Steps = max(opts.Steps, 1)
	if !opts.BevelEnabled {
		opts.BevelSegments = 0
		opts.BevelThickness = 0
		opts.BevelSize = 0
		opts.BevelOffset = 0
	}
	g := &Geometry{}
	for _, s := range shapes {
		extrudeShape(g, s, opts)
	}
	return g
}

func extrudeShape(g *Geometry, s Shape, opts ExtrudeOptions) {
	contour := openRing(s.Contour)
	if len(contour) < 3 {
		return
	}
	var holes [][]mgl32.Vec2
	for _, h := range s.Holes {
		if h = openRing(h); len(h) >= 3 {
			holes = append(holes, h)
		}
	}
	// Outer contour clockwise, holes counter-clockwise.
	if !isClockwise(contour) {
		slices.Reverse(contour)
	}
	for _, h := range holes {
		if isClockwise(h) {
			slices.Reverse(h)
		}
	}
	faces := Triangulate(contour, holes)

	rings := append([][]mgl32.Vec2{contour}, holes...)
	var verts, moves []mgl32.Vec2
	for _, ring := range rings {
		n := len(ring)
		for i := range ring {
			verts = append(verts, ring[i])
			moves = append(moves, bevelVec(ring[i], ring[(i-1+n)%n], ring[(i+1)%n]))
		}
	}
	vlen := len(verts)

	var layers []mgl32.Vec3
	layer := func(z, bs float32) {
		for i, v := range verts {
			p := v.Add(moves[i].Mul(bs))
			layers = append(layers, mgl32.Vec3{p[0], p[1], z})
		}
	}
	segs := opts.BevelSegments
	for b := 0; b < segs; b++ {
		t := float32(b) / float32(segs)
		z := opts.BevelThickness * math32.Cos(t*math32.Pi/2)
		bs := opts.BevelSize*math32.Sin(t*math32.Pi/2) + opts.BevelOffset
		layer(-z, bs)
	}
	bs := opts.BevelSize + opts.BevelOffset
	for st := 0; st <= opts.Steps; st++ {
		layer(opts.Depth/float32(opts.Steps)*float32(st), bs)
	}
	for b := segs - 1; b >= 0; b-- {
		t := float32(b) / float32(segs)
		z := opts.BevelThickness * math32.Cos(t*math32.Pi/2)
		bs := opts.BevelSize*math32.Sin(t*math32.Pi/2) + opts.BevelOffset
		layer(opts.Depth+z, bs)
	}

	// lids
	last := (opts.Steps + segs*2) * vlen
	for _, f := range faces {
		a, b, c := layers[f[2]], layers[f[1]], layers[f[0]]
		g.triangle(a, b, c, topUV(a), topUV(b), topUV(c))
	}
	for _, f := range faces {
		a, b, c := layers[last+f[0]], layers[last+f[1]], layers[last+f[2]]
		g.triangle(a, b, c, topUV(a), topUV(b), topUV(c))
	}

	// side walls
	offset := 0
	for _, ring := range rings {
		n := len(ring)
		for i := n - 1; i >= 0; i-- {
			j, k := i, i-1
			if k < 0 {
				k = n - 1
			}
			for st := 0; st < opts.Steps+segs*2; st++ {
				a := layers[offset+j+vlen*st]
				b := layers[offset+k+vlen*st]
				c := layers[offset+k+vlen*(st+1)]
				d := layers[offset+j+vlen*(st+1)]
				uv := sideUVs(a, b, c, d)
				g.triangle(a, b, d, uv[0], uv[1], uv[3])
				g.triangle(b, c, d, uv[1], uv[2], uv[3])
			}
		}
		offset += n
	}
}

func (g *Geometry) triangle(a, b, c mgl32.Vec3, ua, ub, uc mgl32.Vec2) {
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	for _, p := range [3]mgl32.Vec3{a, b, c} {
		g.Positions = append(g.Positions, p[0], p[1], p[2])
		g.Normals = append(g.Normals, n[0], n[1], n[2])
	}
	g.UVs = append(g.UVs, ua[0], ua[1], ub[0], ub[1], uc[0], uc[1])
}

func topUV(p mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{p[0], p[1]}
}

func sideUVs(a, b, c, d mgl32.Vec3) [4]mgl32.Vec2 {
	axis := 1
	if math32.Abs(a[1]-b[1]) < math32.Abs(a[0]-b[0]) {
		axis = 0
	}
	return [4]mgl32.Vec2{
		{a[axis], 1 - a[2]},
		{b[axis], 1 - b[2]},
		{c[axis], 1 - c[2]},
		{d[axis], 1 - d[2]},
	}
}

// openRing copies ring, dropping a closing point equal to the first and consecutive duplicates.
func openRing(ring []mgl32.Vec2) []mgl32.Vec2 {
	out := make([]mgl32.Vec2, 0, len(ring))
	for _, p := range ring {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// Area returns the signed area of ring. Counter-clockwise rings are positive.
func Area(ring []mgl32.Vec2) float32 {
	var sum float32
	for p, q := len(ring)-1, 0; q < len(ring); p, q = q, q+1 {
		sum += ring[p][0]*ring[q][1] - ring[q][0]*ring[p][1]
	}
	return sum / 2
}

func isClockwise(ring []mgl32.Vec2) bool {
	return Area(ring) < 0
}

// bevelVec returns the direction a contour point moves when the outline is inset or outset,
// scaled so that both adjacent edges shift by roughly one unit.
func bevelVec(pt, prev, next mgl32.Vec2) mgl32.Vec2 {
	var tx, ty, shrink float32
	px, py := pt[0]-prev[0], pt[1]-prev[1]
	nx, ny := next[0]-pt[0], next[1]-pt[1]
	prevLenSq := px*px + py*py
	collinear := px*ny - py*nx
	if math32.Abs(collinear) > bevelEps {
		prevLen := math32.Sqrt(prevLenSq)
		nextLen := math32.Sqrt(nx*nx + ny*ny)
		prevShiftX := prev[0] - py/prevLen
		prevShiftY := prev[1] + px/prevLen
		nextShiftX := next[0] - ny/nextLen
		nextShiftY := next[1] + nx/nextLen
		sf := ((nextShiftX-prevShiftX)*ny - (nextShiftY-prevShiftY)*nx) / (px*ny - py*nx)
		tx = prevShiftX + px*sf - pt[0]
		ty = prevShiftY + py*sf - pt[1]
		lenSq := tx*tx + ty*ty
		if lenSq <= 2 {
			return mgl32.Vec2{tx, ty}
		}
		shrink = math32.Sqrt(lenSq / 2)
	} else {
		sameDir := false
		switch {
		case px > bevelEps:
			sameDir = nx > bevelEps
		case px < -bevelEps:
			sameDir = nx < -bevelEps
		default:
			sameDir = sign(py) == sign(ny)
		}
		if sameDir {
			tx, ty = -py, px
			shrink = math32.Sqrt(prevLenSq)
		} else {
			tx, ty = px, py
			shrink = math32.Sqrt(prevLenSq / 2)
		}
	}
	if shrink == 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{tx / shrink, ty / shrink}
}

func sign(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
