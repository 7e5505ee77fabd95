package orbit

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"matcap-scene/internal/camera"
)

func theta(c *camera.Perspective) float32 {
	v := c.Position.Sub(c.Target)
	return math32.Atan2(v[0], v[2])
}

func TestUpdateWithoutInputHolds(t *testing.T) {
	cam := camera.New()
	c := New(cam)
	for i := 0; i < 10; i++ {
		assert.False(t, c.Update())
	}
	assert.InDelta(t, 1, cam.Position[0], 1e-4)
	assert.InDelta(t, 1, cam.Position[1], 1e-4)
	assert.InDelta(t, 2, cam.Position[2], 1e-4)
}

func TestRotateIsDamped(t *testing.T) {
	cam := camera.New()
	c := New(cam)
	start := theta(cam)
	dist := cam.Position.Len()

	// a quarter of the viewport height turns by π/2
	c.Apply(Input{Rotate: mgl32.Vec2{-150, 0}, ViewportHeight: 600})
	want := math32.Pi / 2

	assert.True(t, c.Update())
	assert.InDelta(t, want*0.05, theta(cam)-start, 1e-4)
	assert.True(t, c.Update())

	for i := 0; i < 400; i++ {
		c.Update()
	}
	assert.InDelta(t, want, theta(cam)-start, 1e-3)
	assert.InDelta(t, dist, cam.Position.Len(), 1e-4)
	assert.False(t, c.Update())
}

func TestRotateWithoutDamping(t *testing.T) {
	cam := camera.New()
	c := New(cam)
	c.EnableDamping = false
	start := theta(cam)
	c.Apply(Input{Rotate: mgl32.Vec2{-150, 0}, ViewportHeight: 600})
	c.Update()
	assert.InDelta(t, math32.Pi/2, theta(cam)-start, 1e-4)
	assert.False(t, c.Update())
}

func TestPolarAngleIsClamped(t *testing.T) {
	cam := camera.New()
	c := New(cam)
	c.EnableDamping = false
	c.Apply(Input{Rotate: mgl32.Vec2{0, 10000}, ViewportHeight: 100})
	c.Update()
	v := cam.Position.Sub(cam.Target)
	assert.Greater(t, v[1], float32(0))
	// never exactly over the pole
	assert.Positive(t, mgl32.Vec2{v[0], v[2]}.Len())

	c.MinPolarAngle = 0.5
	c.Update()
	v = cam.Position.Sub(cam.Target)
	assert.InDelta(t, 0.5, math32.Acos(v[1]/v.Len()), 1e-3)
}

func TestWheelDollies(t *testing.T) {
	cam := camera.New()
	c := New(cam)
	dist := cam.Position.Len()

	c.Apply(Input{Wheel: 1, ViewportHeight: 600})
	c.Update()
	assert.InDelta(t, dist*0.95, cam.Position.Len(), 1e-4)

	c.Apply(Input{Wheel: -1, ViewportHeight: 600})
	c.Update()
	assert.InDelta(t, dist, cam.Position.Len(), 1e-4)
}

func TestDistanceIsClamped(t *testing.T) {
	cam := camera.New()
	c := New(cam)
	c.MinDistance = 2
	for i := 0; i < 50; i++ {
		c.Apply(Input{Wheel: 1})
		c.Update()
	}
	assert.InDelta(t, 2, cam.Position.Len(), 1e-4)
}

func TestPanMovesTargetAndCamera(t *testing.T) {
	cam := camera.New()
	c := New(cam)
	offset := cam.Position.Sub(cam.Target)

	c.Apply(Input{Pan: mgl32.Vec2{100, 0}, ViewportHeight: 600})
	for i := 0; i < 400; i++ {
		c.Update()
	}
	assert.Greater(t, cam.Target.Len(), float32(0.1))
	// dragging right moves the view left: the target slides along -right
	right := cam.WorldMatrix().Col(0).Vec3()
	assert.Less(t, cam.Target.Dot(right), float32(0))

	after := cam.Position.Sub(cam.Target)
	assert.InDelta(t, offset[0], after[0], 1e-3)
	assert.InDelta(t, offset[1], after[1], 1e-3)
	assert.InDelta(t, offset[2], after[2], 1e-3)
}
