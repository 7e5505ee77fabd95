// Package scatter samples random placements for decorative meshes.
package scatter

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Rand yields uniform values in [0, 1).
type Rand interface {
	Float32() float32
}

// Options controls the sampled ranges.
// Spread is the edge length of the cube positions fall in, centered on the origin.
// MaxRotation bounds the X and Y Euler angles; Z rotation is always zero.
// Seed == 0 uses a time-based seed.
type Options struct {
	Spread      float32
	MaxRotation float32
	Seed        int64
}

// DefaultOptions returns positions in [-20, 20] and rotations in [0, π).
func DefaultOptions() Options {
	return Options{
		Spread:      40,
		MaxRotation: math32.Pi,
	}
}

// NewRand returns a generator seeded from seed, or from the clock when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Transform is a sampled placement. Scale applies uniformly on all axes and may be zero.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    float32
}

// Sample draws one placement. Values are consumed in the order
// px, py, pz, rx, ry, scale.
func Sample(r Rand, opts Options) Transform {
	var t Transform
	for i := 0; i < 3; i++ {
		t.Position[i] = (r.Float32() - 0.5) * opts.Spread
	}
	t.Rotation[0] = r.Float32() * opts.MaxRotation
	t.Rotation[1] = r.Float32() * opts.MaxRotation
	t.Scale = r.Float32()
	return t
}

// Bounds tracks the observed range of a set of placements.
type Bounds struct {
	Count    int
	MinPos   mgl32.Vec3
	MaxPos   mgl32.Vec3
	MinRot   mgl32.Vec3
	MaxRot   mgl32.Vec3
	MinScale float32
	MaxScale float32
}

// Add widens b to include t.
func (b *Bounds) Add(t Transform) {
	if b.Count == 0 {
		b.MinPos, b.MaxPos = t.Position, t.Position
		b.MinRot, b.MaxRot = t.Rotation, t.Rotation
		b.MinScale, b.MaxScale = t.Scale, t.Scale
		b.Count = 1
		return
	}
	b.Count++
	for i := 0; i < 3; i++ {
		b.MinPos[i] = math32.Min(b.MinPos[i], t.Position[i])
		b.MaxPos[i] = math32.Max(b.MaxPos[i], t.Position[i])
		b.MinRot[i] = math32.Min(b.MinRot[i], t.Rotation[i])
		b.MaxRot[i] = math32.Max(b.MaxRot[i], t.Rotation[i])
	}
	b.MinScale = math32.Min(b.MinScale, t.Scale)
	b.MaxScale = math32.Max(b.MaxScale, t.Scale)
}
