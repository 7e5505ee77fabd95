package typeface

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFont = `{
	"familyName": "Test Sans",
	"resolution": 1000,
	"underlineThickness": 50,
	"boundingBox": {"xMin": 0, "xMax": 1000, "yMin": -200, "yMax": 800},
	"glyphs": {
		"O": {"ha": 1000, "o": "m 0 0 l 800 0 l 800 800 l 0 800 l 0 0 m 200 200 l 200 600 l 600 600 l 600 200 z"},
		"?": {"ha": 500, "o": "m 0 0 l 400 0 l 400 400 z"},
		" ": {"ha": 300},
		"C": {"ha": 600, "o": "m 0 0 q 500 0 500 500 l 0 500"}
	}
}`

func parseTest(t *testing.T, opts ...Option) *OutlineFont {
	t.Helper()
	f, err := ParseJSON([]byte(testFont), opts...)
	require.NoError(t, err)
	return f
}

func minX(ring []mgl32.Vec2) float32 {
	m := ring[0][0]
	for _, p := range ring {
		m = min(m, p[0])
	}
	return m
}

func TestParseJSONMetrics(t *testing.T) {
	f := parseTest(t)
	assert.Equal(t, "Test Sans", f.Family())
	assert.InDelta(t, 1.05, f.LineHeight(1), 1e-6)
	assert.InDelta(t, 2.1, f.LineHeight(2), 1e-6)
}

func TestShapesWithHole(t *testing.T) {
	shapes := parseTest(t).Shapes("O", 1, 4)
	require.Len(t, shapes, 1)
	assert.Len(t, shapes[0].Contour, 4)
	require.Len(t, shapes[0].Holes, 1)
	assert.Len(t, shapes[0].Holes[0], 4)
	assert.InDelta(t, 0.2, minX(shapes[0].Holes[0]), 1e-6)
}

func TestShapesAdvance(t *testing.T) {
	shapes := parseTest(t).Shapes("O O", 2, 4)
	require.Len(t, shapes, 2)
	assert.InDelta(t, 0, minX(shapes[0].Contour), 1e-6)
	// (1000 + 300) units at 2/1000 per unit
	assert.InDelta(t, 2.6, minX(shapes[1].Contour), 1e-5)
}

func TestShapesNewline(t *testing.T) {
	shapes := parseTest(t).Shapes("O\nO", 1, 4)
	require.Len(t, shapes, 2)
	assert.InDelta(t, 0, minX(shapes[1].Contour), 1e-6)
	assert.InDelta(t, -1.05, shapes[1].Contour[0][1], 1e-5)
}

func TestMissingGlyphFallsBack(t *testing.T) {
	shapes := parseTest(t).Shapes("Z", 1, 4)
	require.Len(t, shapes, 1)
	assert.Len(t, shapes[0].Contour, 3)
}

func TestMissingGlyphWithoutFallback(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	f, err := ParseJSON([]byte(`{"resolution": 1000, "glyphs": {"A": {"ha": 10}}}`), WithLogger(log))
	require.NoError(t, err)
	assert.Empty(t, f.Shapes("B", 1, 4))
	assert.Contains(t, buf.String(), "missing glyph")
}

func TestQuadraticSampling(t *testing.T) {
	shapes := parseTest(t).Shapes("C", 1, 4)
	require.Len(t, shapes, 1)
	c := shapes[0].Contour
	// start, three interior curve points, curve end, line end
	require.Len(t, c, 6)
	assert.InDelta(t, 0.375, c[2][0], 1e-6)
	assert.InDelta(t, 0.25, c[2][1], 1e-6)
	assert.InDelta(t, 0.5, c[4][0], 1e-6)
	assert.InDelta(t, 0, c[4][1], 1e-6)
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", `{"glyphs": `},
		{"no glyphs", `{"resolution": 1000, "glyphs": {}}`},
		{"resolution", `{"resolution": 0, "glyphs": {"A": {"ha": 1}}}`},
		{"command", `{"resolution": 1000, "glyphs": {"A": {"ha": 1, "o": "x 1 2"}}}`},
		{"truncated", `{"resolution": 1000, "glyphs": {"A": {"ha": 1, "o": "m 1"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
	_, err := ParseJSON([]byte(`{"resolution": 1000, "glyphs": {}}`))
	assert.ErrorIs(t, err, ErrNoGlyphs)
}

func TestParseOpenTypeRejectsGarbage(t *testing.T) {
	_, err := ParseOpenType([]byte("not a font"))
	assert.Error(t, err)
}

func TestConvertSegments(t *testing.T) {
	segs := []font.Segment{
		{Op: ot.SegmentOpMoveTo, Args: [3]ot.SegmentPoint{{X: 0, Y: 0}}},
		{Op: ot.SegmentOpQuadTo, Args: [3]ot.SegmentPoint{{X: 5, Y: 5}, {X: 10, Y: 0}}},
		{Op: ot.SegmentOpCubeTo, Args: [3]ot.SegmentPoint{{X: 10, Y: -5}, {X: 5, Y: -10}, {X: 0, Y: -10}}},
	}
	out := convertSegments(segs)
	require.Len(t, out, 3)
	assert.Equal(t, opQuad, out[1].op)
	assert.Equal(t, mgl32.Vec2{5, 5}, out[1].pts[0])
	assert.Equal(t, mgl32.Vec2{10, 0}, out[1].pts[1])
	assert.Equal(t, opCube, out[2].op)
	assert.Equal(t, mgl32.Vec2{0, -10}, out[2].pts[2])

	rings := sampleOutline(out, 1, 0, 0, 2)
	require.Len(t, rings, 1)
	assert.Len(t, rings[0], 5)
}

func TestGroupContoursNested(t *testing.T) {
	sq := func(x, y, s float32) []mgl32.Vec2 {
		return []mgl32.Vec2{{x, y}, {x + s, y}, {x + s, y + s}, {x, y + s}}
	}
	shapes := groupContours([][]mgl32.Vec2{sq(0, 0, 10), sq(2, 2, 6), sq(4, 4, 2), sq(20, 0, 1)})
	require.Len(t, shapes, 3)
	assert.Len(t, shapes[0].Holes, 1)
	assert.Empty(t, shapes[1].Holes)
	assert.Empty(t, shapes[2].Holes)
}
