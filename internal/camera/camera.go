// Package camera holds the perspective camera used to view the scene.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Stock projection parameters.
const (
	DefaultFOV  = 75
	DefaultNear = 0.1
	DefaultFar  = 100
)

// Perspective is a camera looking from Position toward Target with Up as the up direction.
// FOV is the vertical field of view in degrees. The projection matrix is cached and only
// refreshed by UpdateProjectionMatrix, so callers changing FOV, Aspect, Near or Far must
// call it afterwards.
type Perspective struct {
	Name     string
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	projection mgl32.Mat4
}

// New returns the default camera: fov 75, near 0.1, far 100, at (1,1,2) looking at the origin.
func New() *Perspective {
	c := &Perspective{
		Name:     "camera",
		FOV:      DefaultFOV,
		Aspect:   1,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Position: mgl32.Vec3{1, 1, 2},
		Up:       mgl32.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *Perspective) NodeName() string {
	return c.Name
}

// SetAspect sets width / height. Non-positive values are ignored.
func (c *Perspective) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
}

// UpdateProjectionMatrix recomputes the projection after FOV, Aspect, Near or Far change.
func (c *Perspective) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the matrix from the last UpdateProjectionMatrix.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// ViewMatrix is the inverse of the camera's world transform.
func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// WorldMatrix is the camera's world transform; its first column is the camera's right
// axis and its second the camera's up axis.
func (c *Perspective) WorldMatrix() mgl32.Mat4 {
	return c.ViewMatrix().Inv()
}
