package scene

import (
	"image"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matcap-scene/internal/assets"
	"matcap-scene/internal/geometry"
	"matcap-scene/internal/primitives"
	"matcap-scene/internal/scatter"
)

// blockFont draws every glyph as a unit square advancing by one em.
type blockFont struct{}

func (blockFont) Family() string { return "block" }

func (blockFont) Shapes(text string, size float32, _ int) []geometry.Shape {
	var out []geometry.Shape
	var x float32
	for range text {
		out = append(out, geometry.Shape{Contour: []mgl32.Vec2{
			{x, 0}, {x + 0.8*size, 0}, {x + 0.8*size, size}, {x, size},
		}})
		x += size
	}
	return out
}

func newBuilder() *Builder {
	opts := scatter.DefaultOptions()
	opts.Seed = 1
	return NewBuilder(DefaultText(), primitives.NewRegistry(primitives.Defaults()), opts, nil)
}

func TestModelMatrix(t *testing.T) {
	m := NewMesh("m", nil, nil)
	m.Position = mgl32.Vec3{1, 2, 3}
	m.Rotation = mgl32.Vec3{0, math32.Pi / 2, 0}
	m.Scale = mgl32.Vec3{2, 2, 2}
	// +X scaled to 2, turned a quarter about Y to -Z, then moved.
	p := m.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1, p[0], 1e-5)
	assert.InDelta(t, 2, p[1], 1e-5)
	assert.InDelta(t, 1, p[2], 1e-5)
}

func TestModelMatrixRotationOrder(t *testing.T) {
	m := NewMesh("m", nil, nil)
	m.Rotation = mgl32.Vec3{math32.Pi / 2, math32.Pi / 2, 0}
	// Rx(Ry(+X)) : Ry sends +X to -Z, Rx sends -Z to +Y
	p := m.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 1, p[1], 1e-5)
	assert.InDelta(t, 0, p[2], 1e-5)
}

func TestSceneMeshesSkipsOtherNodes(t *testing.T) {
	s := New()
	s.Add(namedNode("camera"))
	s.Add(NewMesh("a", nil, nil))
	assert.Equal(t, 2, s.Len())
	require.Len(t, s.Meshes(), 1)
	assert.Equal(t, "a", s.Meshes()[0].NodeName())
}

type namedNode string

func (n namedNode) NodeName() string { return string(n) }

func TestPopulate(t *testing.T) {
	s := New()
	matcap := assets.NewTexture("matcap", assets.Resolved[image.Image](nil, nil))
	stats, err := newBuilder().Populate(s, blockFont{}, matcap)
	require.NoError(t, err)

	meshes := s.Meshes()
	require.Len(t, meshes, 502)
	assert.Equal(t, 502, stats.Total)
	assert.Equal(t, 2, stats.TextMeshes)

	mat := meshes[0].Material
	require.NotNil(t, mat)
	assert.Same(t, matcap, mat.Matcap)

	perFamily := map[string]int{}
	shared := map[string]*geometry.Geometry{}
	for _, m := range meshes {
		assert.Same(t, mat, m.Material, m.Name)
		if m.Family == "" {
			continue
		}
		perFamily[m.Family]++
		if g, ok := shared[m.Family]; ok {
			assert.Same(t, g, m.Geometry, m.Name)
		} else {
			shared[m.Family] = m.Geometry
		}

		for a := 0; a < 3; a++ {
			assert.GreaterOrEqual(t, m.Position[a], float32(-20))
			assert.LessOrEqual(t, m.Position[a], float32(20))
		}
		assert.GreaterOrEqual(t, m.Rotation[0], float32(0))
		assert.Less(t, m.Rotation[0], math32.Pi)
		assert.GreaterOrEqual(t, m.Rotation[1], float32(0))
		assert.Less(t, m.Rotation[1], math32.Pi)
		assert.Zero(t, m.Rotation[2])
		assert.Equal(t, m.Scale[0], m.Scale[1])
		assert.Equal(t, m.Scale[0], m.Scale[2])
		assert.GreaterOrEqual(t, m.Scale[0], float32(0))
		assert.LessOrEqual(t, m.Scale[0], float32(1))
	}
	assert.Equal(t, map[string]int{"torus": 100, "sphere": 100, "box": 100, "cylinder": 100, "cone": 100}, perFamily)
	assert.Equal(t, perFamily, stats.Families)
	assert.Len(t, shared, 5)
}

func TestPopulateOrder(t *testing.T) {
	s := New()
	_, err := newBuilder().Populate(s, blockFont{}, nil)
	require.NoError(t, err)
	meshes := s.Meshes()
	assert.Equal(t, "text-1", meshes[0].Name)
	assert.Equal(t, "text-2", meshes[1].Name)
	assert.Equal(t, "torus", meshes[2].Family)
	assert.Equal(t, "sphere", meshes[102].Family)
	assert.Equal(t, "box", meshes[202].Family)
	assert.Equal(t, "cylinder", meshes[302].Family)
	assert.Equal(t, "cone", meshes[501].Family)
}

func TestTextIsCentered(t *testing.T) {
	s := New()
	stats, err := newBuilder().Populate(s, blockFont{}, nil)
	require.NoError(t, err)
	meshes := s.Meshes()
	for i, want := range []float32{1.2, -0.5} {
		m := meshes[i]
		c := m.Geometry.BoundingBox().Center()
		assert.InDelta(t, 0, c[0], 1e-4)
		assert.InDelta(t, 0, c[1], 1e-4)
		assert.InDelta(t, 0, c[2], 1e-4)
		assert.Equal(t, mgl32.Vec3{0, want, 0}, m.Position)
		assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Scale)
		assert.Positive(t, m.Geometry.VertexCount())
		assert.Equal(t, m.Geometry.BoundingBox(), stats.TextBounds[i])
	}
	// the depth 1.3 body plus two 0.03 bevels
	assert.InDelta(t, 1.36, stats.TextBounds[0].Size()[2], 1e-4)
}

func TestPopulateOnce(t *testing.T) {
	b := newBuilder()
	s := New()
	_, err := b.Populate(s, blockFont{}, nil)
	require.NoError(t, err)
	assert.True(t, b.Populated())

	_, err = b.Populate(s, blockFont{}, nil)
	assert.ErrorIs(t, err, ErrAlreadyPopulated)
	assert.Len(t, s.Meshes(), 502)
}

func TestPopulateBadFamilyLeavesSceneEmpty(t *testing.T) {
	defs := append(primitives.Defaults(), primitives.Def{Name: "teapot", Kind: "teapot", Count: 1})
	b := NewBuilder(DefaultText(), primitives.NewRegistry(defs), scatter.DefaultOptions(), nil)
	s := New()
	_, err := b.Populate(s, blockFont{}, nil)
	assert.ErrorIs(t, err, primitives.ErrUnknownShape)
	assert.Zero(t, s.Len())
	assert.False(t, b.Populated())
}

func TestPopulateWithoutFont(t *testing.T) {
	s := New()
	_, err := newBuilder().Populate(s, nil, nil)
	assert.Error(t, err)
	assert.Zero(t, s.Len())
}
