package typeface

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"matcap-scene/internal/geometry"
)

// sampleOutline flattens a glyph outline into closed point rings, scaled and offset to the
// glyph's pen position.
func sampleOutline(outline []seg, scale, ox, oy float32, divisions int) [][]mgl32.Vec2 {
	var contours [][]mgl32.Vec2
	var cur []mgl32.Vec2
	tr := func(p mgl32.Vec2) mgl32.Vec2 {
		return mgl32.Vec2{p[0]*scale + ox, p[1]*scale + oy}
	}
	push := func(p mgl32.Vec2) {
		if n := len(cur); n > 0 && cur[n-1] == p {
			return
		}
		cur = append(cur, p)
	}
	flush := func() {
		for len(cur) > 1 && cur[len(cur)-1] == cur[0] {
			cur = cur[:len(cur)-1]
		}
		if len(cur) >= 3 {
			contours = append(contours, cur)
		}
		cur = nil
	}
	for _, s := range outline {
		switch s.op {
		case opMove:
			flush()
			push(tr(s.pts[0]))
		case opLine:
			push(tr(s.pts[0]))
		case opQuad:
			c, end := tr(s.pts[0]), tr(s.pts[1])
			start := c
			if len(cur) > 0 {
				start = cur[len(cur)-1]
			}
			for i := 1; i <= divisions; i++ {
				push(quadPoint(start, c, end, float32(i)/float32(divisions)))
			}
		case opCube:
			c1, c2, end := tr(s.pts[0]), tr(s.pts[1]), tr(s.pts[2])
			start := c1
			if len(cur) > 0 {
				start = cur[len(cur)-1]
			}
			for i := 1; i <= divisions; i++ {
				push(cubePoint(start, c1, c2, end, float32(i)/float32(divisions)))
			}
		}
	}
	flush()
	return contours
}

func quadPoint(p0, c, p1 mgl32.Vec2, t float32) mgl32.Vec2 {
	k := 1 - t
	return p0.Mul(k * k).Add(c.Mul(2 * k * t)).Add(p1.Mul(t * t))
}

func cubePoint(p0, c1, c2, p1 mgl32.Vec2, t float32) mgl32.Vec2 {
	k := 1 - t
	return p0.Mul(k * k * k).Add(c1.Mul(3 * k * k * t)).Add(c2.Mul(3 * k * t * t)).Add(p1.Mul(t * t * t))
}

// groupContours sorts rings into solids and holes by nesting depth: a ring inside an even
// number of others is a solid, otherwise it is a hole of the smallest solid around it.
func groupContours(contours [][]mgl32.Vec2) []geometry.Shape {
	n := len(contours)
	depth := make([]int, n)
	area := make([]float32, n)
	for i := range contours {
		area[i] = math32.Abs(geometry.Area(contours[i]))
		for j := range contours {
			if i != j && insideRing(contours[i][0], contours[j]) {
				depth[i]++
			}
		}
	}
	var shapes []geometry.Shape
	owner := make(map[int]int)
	for i := range contours {
		if depth[i]%2 == 0 {
			owner[i] = len(shapes)
			shapes = append(shapes, geometry.Shape{Contour: contours[i]})
		}
	}
	for i := range contours {
		if depth[i]%2 == 0 {
			continue
		}
		best := -1
		for j := range contours {
			if depth[j] != depth[i]-1 || !insideRing(contours[i][0], contours[j]) {
				continue
			}
			if best < 0 || area[j] < area[best] {
				best = j
			}
		}
		if best < 0 {
			shapes = append(shapes, geometry.Shape{Contour: contours[i]})
			continue
		}
		s := &shapes[owner[best]]
		s.Holes = append(s.Holes, contours[i])
	}
	return shapes
}

// insideRing is the even-odd point in polygon test.
func insideRing(p mgl32.Vec2, ring []mgl32.Vec2) bool {
	in := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a[1] > p[1]) != (b[1] > p[1]) &&
			p[0] < (b[0]-a[0])*(p[1]-a[1])/(b[1]-a[1])+a[0] {
			in = !in
		}
	}
	return in
}
