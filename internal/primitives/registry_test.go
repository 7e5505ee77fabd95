package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	defs := Defaults()
	require.Len(t, defs, 5)
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
		assert.Equal(t, 100, d.Count)
	}
	assert.Equal(t, []string{"torus", "sphere", "box", "cylinder", "cone"}, names)
}

func TestGeometryIsShared(t *testing.T) {
	r := NewRegistry(Defaults())
	for _, d := range r.Families() {
		a, err := r.Geometry(d.Name)
		require.NoError(t, err)
		b, err := r.Geometry(d.Name)
		require.NoError(t, err)
		assert.Same(t, a, b, d.Name)
		assert.Positive(t, a.TriangleCount(), d.Name)
	}
}

func TestUnknownFamily(t *testing.T) {
	r := NewRegistry(Defaults())
	_, err := r.Geometry("teapot")
	assert.Error(t, err)

	_, err = Build(Def{Name: "teapot", Kind: "teapot"})
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestRepeatedNameReplaces(t *testing.T) {
	defs := append(Defaults(), Def{Name: "box", Kind: KindBox, Count: 3, Width: 1, Height: 1, Depth: 1})
	r := NewRegistry(defs)
	fams := r.Families()
	require.Len(t, fams, 5)
	assert.Equal(t, "box", fams[2].Name)
	assert.Equal(t, 3, fams[2].Count)

	g, err := r.Geometry("box")
	require.NoError(t, err)
	assert.InDelta(t, 1, g.BoundingBox().Size()[0], 1e-6)
}
