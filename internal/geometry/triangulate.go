package geometry

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

type tpoint struct {
	x, y float64
}

func (p tpoint) eq(o tpoint) bool {
	return p.x == o.x && p.y == o.y
}

func cross(o, a, b tpoint) float64 {
	return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
}

func ringArea(pts []tpoint, ring []int) float64 {
	var sum float64
	for i, j := len(ring)-1, 0; j < len(ring); i, j = j, j+1 {
		a, b := pts[ring[i]], pts[ring[j]]
		sum += a.x*b.y - b.x*a.y
	}
	return sum / 2
}

// Triangulate splits a polygon with holes into triangles by ear clipping. Holes are joined to
// the outer contour through bridge edges first. Returned indices refer to the contour points
// followed by each hole's points in order, and every triangle winds counter-clockwise.
func Triangulate(contour []mgl32.Vec2, holes [][]mgl32.Vec2) [][3]int {
	if len(contour) < 3 {
		return nil
	}
	var pts []tpoint
	add := func(ring []mgl32.Vec2) []int {
		idx := make([]int, len(ring))
		for i, p := range ring {
			idx[i] = len(pts)
			pts = append(pts, tpoint{float64(p[0]), float64(p[1])})
		}
		return idx
	}
	outer := add(contour)
	if ringArea(pts, outer) < 0 {
		slices.Reverse(outer)
	}
	var inner [][]int
	for _, h := range holes {
		ring := add(h)
		if len(ring) < 3 {
			continue
		}
		if ringArea(pts, ring) > 0 {
			slices.Reverse(ring)
		}
		inner = append(inner, ring)
	}

	// Bridge holes from the rightmost one inward so later bridges can pass through earlier holes.
	rightmost := func(ring []int) int {
		best := 0
		for i, v := range ring {
			if pts[v].x > pts[ring[best]].x {
				best = i
			}
		}
		return best
	}
	slices.SortFunc(inner, func(a, b []int) int {
		xa, xb := pts[a[rightmost(a)]].x, pts[b[rightmost(b)]].x
		switch {
		case xa > xb:
			return -1
		case xa < xb:
			return 1
		}
		return 0
	})
	poly := outer
	for _, ring := range inner {
		mi := rightmost(ring)
		pos := findBridge(pts, poly, pts[ring[mi]])
		if pos < 0 {
			continue
		}
		merged := make([]int, 0, len(poly)+len(ring)+2)
		merged = append(merged, poly[:pos+1]...)
		merged = append(merged, ring[mi:]...)
		merged = append(merged, ring[:mi+1]...)
		merged = append(merged, poly[pos])
		merged = append(merged, poly[pos+1:]...)
		poly = merged
	}
	return clipEars(pts, poly)
}

// findBridge returns the position in poly of a vertex visible from m, casting a ray towards +x.
func findBridge(pts []tpoint, poly []int, m tpoint) int {
	n := len(poly)
	best := -1
	qx := math.Inf(1)
	for i := 0; i < n; i++ {
		a, b := pts[poly[i]], pts[poly[(i+1)%n]]
		if a.y == b.y {
			continue
		}
		if (a.y <= m.y && m.y <= b.y) || (b.y <= m.y && m.y <= a.y) {
			x := a.x + (m.y-a.y)*(b.x-a.x)/(b.y-a.y)
			if x >= m.x && x < qx {
				qx = x
				switch {
				case x == a.x && m.y == a.y:
					best = i
				case x == b.x && m.y == b.y:
					best = (i + 1) % n
				case a.x > b.x:
					best = i
				default:
					best = (i + 1) % n
				}
			}
		}
	}
	if best < 0 {
		return -1
	}
	p := pts[poly[best]]
	if p.eq(m) || (p.y == m.y && p.x == qx) {
		return best
	}
	// Vertices inside the triangle (m, hit, p) would block the bridge; take the one closest
	// in angle to the ray instead.
	hit := tpoint{qx, m.y}
	tanMin := math.Inf(1)
	stop := best
	for i := 0; i < n; i++ {
		if i == stop {
			continue
		}
		q := pts[poly[i]]
		if q.x < m.x || q.x > p.x || q.eq(p) {
			continue
		}
		if !inTriangle(m, hit, p, q) {
			continue
		}
		if !locallyInside(pts, poly, i, m) {
			continue
		}
		tan := math.Abs(m.y-q.y) / (q.x - m.x)
		if tan < tanMin || (tan == tanMin && q.x < pts[poly[best]].x) {
			tanMin = tan
			best = i
		}
	}
	return best
}

func locallyInside(pts []tpoint, poly []int, i int, m tpoint) bool {
	n := len(poly)
	prev, p, next := pts[poly[(i-1+n)%n]], pts[poly[i]], pts[poly[(i+1)%n]]
	if cross(prev, p, next) >= 0 {
		return cross(p, next, m) >= 0 && cross(p, m, prev) >= 0
	}
	return !(cross(p, prev, m) > 0 && cross(p, m, next) > 0)
}

func inTriangle(a, b, c, p tpoint) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func clipEars(pts []tpoint, poly []int) [][3]int {
	poly = slices.Clone(poly)
	var tris [][3]int
	cursor := 0
	for len(poly) > 3 {
		n := len(poly)
		clipped := false
		for step := 0; step < n; step++ {
			i := (cursor + step) % n
			ia, ib, ic := poly[(i-1+n)%n], poly[i], poly[(i+1)%n]
			a, b, c := pts[ia], pts[ib], pts[ic]
			cr := cross(a, b, c)
			if cr == 0 {
				poly = slices.Delete(poly, i, i+1)
				cursor = i
				clipped = true
				break
			}
			if cr < 0 || blocked(pts, poly, a, b, c) {
				continue
			}
			tris = append(tris, [3]int{ia, ib, ic})
			poly = slices.Delete(poly, i, i+1)
			cursor = i
			clipped = true
			break
		}
		if !clipped {
			// No clean ear left, which only happens on self-touching input. Clip anyway so the loop ends.
			i := cursor % n
			ia, ib, ic := poly[(i-1+n)%n], poly[i], poly[(i+1)%n]
			if cross(pts[ia], pts[ib], pts[ic]) > 0 {
				tris = append(tris, [3]int{ia, ib, ic})
			}
			poly = slices.Delete(poly, i, i+1)
		}
		if cursor >= len(poly) {
			cursor = 0
		}
	}
	if len(poly) == 3 && cross(pts[poly[0]], pts[poly[1]], pts[poly[2]]) > 0 {
		tris = append(tris, [3]int{poly[0], poly[1], poly[2]})
	}
	return tris
}

func blocked(pts []tpoint, poly []int, a, b, c tpoint) bool {
	for _, v := range poly {
		q := pts[v]
		if q.eq(a) || q.eq(b) || q.eq(c) {
			continue
		}
		if inTriangle(a, b, c, q) {
			return true
		}
	}
	return false
}
