package viewer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matcap-scene/internal/assets"
	"matcap-scene/internal/config"
	"matcap-scene/internal/geometry"
	"matcap-scene/internal/graphics"
	"matcap-scene/internal/orbit"
	"matcap-scene/internal/typeface"
)

type squareFont struct{}

func (squareFont) Family() string { return "square" }

func (squareFont) Shapes(text string, size float32, _ int) []geometry.Shape {
	var out []geometry.Shape
	for i := range text {
		x := float32(i) * size
		out = append(out, geometry.Shape{Contour: []mgl32.Vec2{{x, 0}, {x + size/2, 0}, {x + size/2, size}, {x, size}}})
	}
	return out
}

type nullSurface struct {
	width, height int
	ratio         float32
}

func (s *nullSurface) SetSize(w, h int)        { s.width, s.height = w, h }
func (s *nullSurface) SetPixelRatio(r float32) { s.ratio = r }

func newApp(t *testing.T) (*App, func(typeface.Font, error)) {
	t.Helper()
	cfg := config.Default()
	cfg.Scatter.Seed = 3
	a := New(cfg, &nullSurface{}, nil)
	font, resolve := assets.NewPending[typeface.Font]()
	a.Font = font
	return a, resolve
}

func TestNothingBeforeFontResolves(t *testing.T) {
	a, _ := newApp(t)
	for i := 0; i < 5; i++ {
		a.Update(graphics.Frame{Index: uint64(i)}, orbit.Input{})
	}
	assert.Equal(t, Loading, a.State())
	assert.Empty(t, a.Scene.Meshes())
	// the camera is the only node
	assert.Equal(t, 1, a.Scene.Len())
}

func TestPopulatesOnceAfterFontResolves(t *testing.T) {
	a, resolve := newApp(t)
	a.Update(graphics.Frame{}, orbit.Input{})
	resolve(squareFont{}, nil)

	a.Update(graphics.Frame{Index: 1}, orbit.Input{})
	assert.Equal(t, Ready, a.State())
	assert.Len(t, a.Scene.Meshes(), 502)
	assert.Equal(t, 502, a.Stats().Total)

	a.Update(graphics.Frame{Index: 2}, orbit.Input{})
	assert.Len(t, a.Scene.Meshes(), 502)
}

func TestFontFailureLeavesSceneEmpty(t *testing.T) {
	a, resolve := newApp(t)
	resolve(nil, errors.New("404"))
	for i := 0; i < 3; i++ {
		a.Update(graphics.Frame{Index: uint64(i)}, orbit.Input{})
	}
	assert.Equal(t, Failed, a.State())
	assert.Empty(t, a.Scene.Meshes())
	assert.Equal(t, "failed", a.State().String())
	assert.EqualError(t, a.Err(), "404")
}

func TestUpdateAdvancesDamping(t *testing.T) {
	a, _ := newApp(t)
	start := a.Camera.Position
	a.Update(graphics.Frame{}, orbit.Input{Rotate: mgl32.Vec2{50, 0}, ViewportHeight: 600})
	first := a.Camera.Position
	assert.NotEqual(t, start, first)

	// no new input, the camera keeps settling
	a.Update(graphics.Frame{Index: 1}, orbit.Input{})
	assert.NotEqual(t, first, a.Camera.Position)
}

func TestRotateUsesViewportHeight(t *testing.T) {
	a := New(config.Default(), &nullSurface{}, nil)
	a.Viewport.Resize(800, 600, 1)
	v := a.Camera.Position.Sub(a.Camera.Target)
	start := math32.Atan2(v[0], v[2])

	// a quarter of the 600 pixel viewport turns by π/2, damped to 5% in the first frame
	a.Update(graphics.Frame{}, orbit.Input{Rotate: mgl32.Vec2{-150, 0}})
	v = a.Camera.Position.Sub(a.Camera.Target)
	assert.InDelta(t, math32.Pi/2*0.05, math32.Atan2(v[0], v[2])-start, 1e-4)
}

func TestViewportResize(t *testing.T) {
	surf := &nullSurface{}
	a := New(config.Default(), surf, nil)
	a.Viewport.Resize(1024, 768, 3)
	assert.InDelta(t, 1024.0/768, a.Camera.Aspect, 1e-6)
	assert.Equal(t, float32(2), surf.ratio)
	assert.Equal(t, 1024, surf.width)
}

func TestLoadFromDirectory(t *testing.T) {
	root := t.TempDir()
	font := `{"familyName":"Block","resolution":1000,"boundingBox":{"yMin":0,"yMax":1000},"underlineThickness":0,
"glyphs":{"A":{"ha":1000,"o":"m 0 0 l 800 0 l 800 1000 l 0 1000"},"?":{"ha":1000,"o":"m 0 0 l 800 0 l 800 1000 l 0 1000"}}}`
	p := filepath.Join(root, "fonts", "helvetiker_regular.typeface.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(font), 0644))

	a := New(config.Default(), &nullSurface{}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Load(ctx, assets.NewLoader(assets.Dir(root), nil))

	require.NotNil(t, a.Scene.Background)
	_, err := a.Font.Wait(ctx)
	require.NoError(t, err)
	// cube map faces are missing: the background fails, population does not care
	_, err = a.Scene.Background.Wait(ctx)
	assert.Error(t, err)

	a.Update(graphics.Frame{}, orbit.Input{})
	assert.Equal(t, Ready, a.State())
	assert.Len(t, a.Scene.Meshes(), 502)
}
