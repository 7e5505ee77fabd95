// Package orbit implements damped orbit controls around a camera target.
//
// Input accumulates pending motion; every Update moves the camera by DampingFactor of the
// pending rotation and pan and keeps the rest for later frames. Update must therefore run
// every frame, with or without new input, for the camera to settle.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"matcap-scene/internal/camera"
)

const eps = 1e-6

// Input is one frame of pointer motion in pixels.
type Input struct {
	Rotate         mgl32.Vec2 // drag with the rotate button held
	Pan            mgl32.Vec2 // drag with the pan button held
	Wheel          float32    // positive toward the user's screen (zoom in)
	ViewportHeight float32
}

// spherical coordinates with Y up: Phi from +Y, Theta around Y from +Z.
type spherical struct {
	Radius, Phi, Theta float32
}

func toSpherical(v mgl32.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		Radius: r,
		Phi:    math32.Acos(mgl32.Clamp(v[1]/r, -1, 1)),
		Theta:  math32.Atan2(v[0], v[2]),
	}
}

func (s spherical) vec() mgl32.Vec3 {
	sp := math32.Sin(s.Phi)
	return mgl32.Vec3{
		s.Radius * sp * math32.Sin(s.Theta),
		s.Radius * math32.Cos(s.Phi),
		s.Radius * sp * math32.Cos(s.Theta),
	}
}

// Controls orbits Camera around Camera.Target.
type Controls struct {
	Camera *camera.Perspective

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	PanSpeed    float32
	ZoomSpeed   float32

	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	delta spherical
	pan   mgl32.Vec3
	scale float32
}

// New returns damped controls (factor 0.05) for cam.
func New(cam *camera.Perspective) *Controls {
	return &Controls{
		Camera:        cam,
		EnableDamping: true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		PanSpeed:      1,
		ZoomSpeed:     1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
		scale:         1,
	}
}

// Apply queues the motion described by in.
func (c *Controls) Apply(in Input) {
	h := in.ViewportHeight
	if h <= 0 {
		h = 1
	}
	if in.Rotate[0] != 0 || in.Rotate[1] != 0 {
		c.delta.Theta -= 2 * math32.Pi * in.Rotate[0] / h * c.RotateSpeed
		c.delta.Phi -= 2 * math32.Pi * in.Rotate[1] / h * c.RotateSpeed
	}
	if in.Pan[0] != 0 || in.Pan[1] != 0 {
		c.queuePan(in.Pan[0]*c.PanSpeed, in.Pan[1]*c.PanSpeed, h)
	}
	switch {
	case in.Wheel > 0:
		c.scale *= c.zoomScale()
	case in.Wheel < 0:
		c.scale /= c.zoomScale()
	}
}

func (c *Controls) zoomScale() float32 {
	return math32.Pow(0.95, c.ZoomSpeed)
}

// queuePan converts a pixel drag into a world offset in the camera's view plane, scaled so
// the point under the cursor at the target's depth follows the pointer.
func (c *Controls) queuePan(dx, dy, height float32) {
	cam := c.Camera
	dist := cam.Position.Sub(cam.Target).Len()
	dist *= math32.Tan(mgl32.DegToRad(cam.FOV) / 2)

	world := cam.WorldMatrix()
	right := world.Col(0).Vec3()
	up := world.Col(1).Vec3()
	c.pan = c.pan.Add(right.Mul(-2 * dx * dist / height))
	c.pan = c.pan.Add(up.Mul(2 * dy * dist / height))
}

// Update advances the camera one frame and reports whether it moved.
func (c *Controls) Update() bool {
	cam := c.Camera
	before := cam.Position

	s := toSpherical(cam.Position.Sub(cam.Target))
	if c.EnableDamping {
		s.Theta += c.delta.Theta * c.DampingFactor
		s.Phi += c.delta.Phi * c.DampingFactor
	} else {
		s.Theta += c.delta.Theta
		s.Phi += c.delta.Phi
	}
	s.Phi = mgl32.Clamp(s.Phi, math32.Max(c.MinPolarAngle, eps), math32.Min(c.MaxPolarAngle, math32.Pi-eps))
	s.Radius = mgl32.Clamp(s.Radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		cam.Target = cam.Target.Add(c.pan.Mul(c.DampingFactor))
	} else {
		cam.Target = cam.Target.Add(c.pan)
	}
	cam.Position = cam.Target.Add(s.vec())

	if c.EnableDamping {
		keep := 1 - c.DampingFactor
		c.delta.Theta *= keep
		c.delta.Phi *= keep
		c.pan = c.pan.Mul(keep)
	} else {
		c.delta = spherical{}
		c.pan = mgl32.Vec3{}
	}
	c.scale = 1

	return before.Sub(cam.Position).LenSqr() > eps
}
