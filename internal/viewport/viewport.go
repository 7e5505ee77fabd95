// Package viewport keeps the camera projection and the renderer's drawing buffer in step
// with the window size.
package viewport

import (
	"log/slog"
)

// MaxPixelRatio caps the device pixel ratio handed to the renderer.
const MaxPixelRatio = 2

// Projector is the camera side of a resize.
type Projector interface {
	SetAspect(aspect float32)
	UpdateProjectionMatrix()
}

// Surface is the renderer side of a resize.
type Surface interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
}

// Size is the viewport size in window pixels.
type Size struct {
	Width  int
	Height int
}

// Aspect returns width / height.
func (s Size) Aspect() float32 {
	if s.Height == 0 {
		return 0
	}
	return float32(s.Width) / float32(s.Height)
}

// ClampPixelRatio returns min(dpr, MaxPixelRatio). Non-positive ratios become 1.
func ClampPixelRatio(dpr float32) float32 {
	if dpr <= 0 {
		return 1
	}
	return min(dpr, MaxPixelRatio)
}

// Controller applies every resize synchronously; there is no debouncing.
type Controller struct {
	camera  Projector
	surface Surface
	log     *slog.Logger

	size  Size
	ratio float32
}

// New returns a controller for camera and surface at pixel ratio 1 and no size yet.
func New(camera Projector, surface Surface, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{camera: camera, surface: surface, log: log, ratio: 1}
}

// Resize records the new size, updates the camera aspect and projection, then resizes the
// surface and re-clamps its pixel ratio. Sizes with a non-positive side are dropped.
func (c *Controller) Resize(width, height int, dpr float32) {
	if width <= 0 || height <= 0 {
		c.log.Debug("viewport: ignoring empty size", "width", width, "height", height)
		return
	}
	c.size = Size{Width: width, Height: height}
	c.ratio = ClampPixelRatio(dpr)

	c.camera.SetAspect(c.size.Aspect())
	c.camera.UpdateProjectionMatrix()
	c.surface.SetSize(width, height)
	c.surface.SetPixelRatio(c.ratio)
}

// Size is the last accepted size in window pixels.
func (c *Controller) Size() Size {
	return c.size
}

// PixelRatio is the clamped ratio last passed to the surface.
func (c *Controller) PixelRatio() float32 {
	return c.ratio
}
