package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Torus builds a ring in the XY plane. radius is the distance from the center to the middle
// of the tube, tube is the tube radius.
func Torus(radius, tube float32, radialSegments, tubularSegments int) *Geometry {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)
	var b builder
	for j := 0; j <= radialSegments; j++ {
		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * 2 * math32.Pi
			v := float32(j) / float32(radialSegments) * 2 * math32.Pi
			sinU, cosU := math32.Sincos(u)
			sinV, cosV := math32.Sincos(v)
			p := mgl32.Vec3{
				(radius + tube*cosV) * cosU,
				(radius + tube*cosV) * sinU,
				tube * sinV,
			}
			center := mgl32.Vec3{radius * cosU, radius * sinU, 0}
			b.vertex(p, p.Sub(center).Normalize(),
				float32(i)/float32(tubularSegments), float32(j)/float32(radialSegments))
		}
	}
	row := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := row*j + i - 1
			bb := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			b.tri(a, bb, d)
			b.tri(bb, c, d)
		}
	}
	return b.build()
}

// Sphere builds a UV sphere centered on the origin. The poles lie on the Y axis.
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	var b builder
	grid := make([][]uint32, 0, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}
		sinT, cosT := math32.Sincos(v * math32.Pi)
		row := make([]uint32, 0, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinP, cosP := math32.Sincos(u * 2 * math32.Pi)
			p := mgl32.Vec3{-radius * cosP * sinT, radius * cosT, radius * sinP * sinT}
			n := mgl32.Vec3{-cosP * sinT, cosT, sinP * sinT}
			row = append(row, b.vertex(p, n, u+uOffset, 1-v))
		}
		grid = append(grid, row)
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			bb := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				b.tri(a, bb, d)
			}
			if iy != heightSegments-1 {
				b.tri(bb, c, d)
			}
		}
	}
	return b.build()
}

// Box builds an axis-aligned cuboid centered on the origin with one quad per face.
func Box(width, height, depth float32) *Geometry {
	var b builder
	// u, v, w are the axes the face spans and faces along.
	plane := func(u, v, w int, udir, vdir, pw, ph, pd float32) {
		start := uint32(len(b.g.Positions) / 3)
		for iy := 0; iy <= 1; iy++ {
			y := float32(iy)*ph - ph/2
			for ix := 0; ix <= 1; ix++ {
				x := float32(ix)*pw - pw/2
				var p, n mgl32.Vec3
				p[u] = x * udir
				p[v] = y * vdir
				p[w] = pd / 2
				if pd > 0 {
					n[w] = 1
				} else {
					n[w] = -1
				}
				b.vertex(p, n, float32(ix), 1-float32(iy))
			}
		}
		a := start
		bb := start + 2
		c := start + 3
		d := start + 1
		b.tri(a, bb, d)
		b.tri(bb, c, d)
	}
	plane(2, 1, 0, -1, -1, depth, height, width)
	plane(2, 1, 0, 1, -1, depth, height, -width)
	plane(0, 2, 1, 1, 1, width, depth, height)
	plane(0, 2, 1, 1, -1, width, depth, -height)
	plane(0, 1, 2, 1, -1, width, height, depth)
	plane(0, 1, 2, -1, -1, width, height, -depth)
	return b.build()
}

// Cylinder builds a capped cylinder along the Y axis centered on the origin. A zero radius
// on either end collapses that end to a point and omits its cap.
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	radialSegments = max(radialSegments, 3)
	half := height / 2
	slope := (radiusBottom - radiusTop) / height
	var b builder

	// torso, one height segment
	rows := [2][]uint32{}
	for y := 0; y <= 1; y++ {
		v := float32(y)
		r := v*(radiusBottom-radiusTop) + radiusTop
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			sinT, cosT := math32.Sincos(u * 2 * math32.Pi)
			p := mgl32.Vec3{r * sinT, -v*height + half, r * cosT}
			n := mgl32.Vec3{sinT, slope, cosT}.Normalize()
			rows[y] = append(rows[y], b.vertex(p, n, u, 1-v))
		}
	}
	for x := 0; x < radialSegments; x++ {
		a := rows[0][x]
		bb := rows[1][x]
		c := rows[1][x+1]
		d := rows[0][x+1]
		if radiusTop > 0 {
			b.tri(a, bb, d)
		}
		if radiusBottom > 0 {
			b.tri(bb, c, d)
		}
	}

	addCap := func(top bool) {
		r, sign := radiusBottom, float32(-1)
		if top {
			r, sign = radiusTop, 1
		}
		n := mgl32.Vec3{0, sign, 0}
		centerStart := uint32(len(b.g.Positions) / 3)
		for x := 1; x <= radialSegments; x++ {
			b.vertex(mgl32.Vec3{0, half * sign, 0}, n, 0.5, 0.5)
		}
		centerEnd := uint32(len(b.g.Positions) / 3)
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			sinT, cosT := math32.Sincos(u * 2 * math32.Pi)
			b.vertex(mgl32.Vec3{r * sinT, half * sign, r * cosT}, n, cosT*0.5+0.5, sinT*0.5*sign+0.5)
		}
		for x := uint32(0); x < uint32(radialSegments); x++ {
			c := centerStart + x
			i := centerEnd + x
			if top {
				b.tri(i, i+1, c)
			} else {
				b.tri(i+1, i, c)
			}
		}
	}
	if radiusTop > 0 {
		addCap(true)
	}
	if radiusBottom > 0 {
		addCap(false)
	}
	return b.build()
}

// Cone builds a cylinder whose top radius is zero.
func Cone(radius, height float32, radialSegments int) *Geometry {
	return Cylinder(0, radius, height, radialSegments)
}
