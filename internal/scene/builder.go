package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"matcap-scene/internal/assets"
	"matcap-scene/internal/geometry"
	"matcap-scene/internal/primitives"
	"matcap-scene/internal/scatter"
	"matcap-scene/internal/typeface"
)

// ErrAlreadyPopulated is returned by a second call to Populate.
var ErrAlreadyPopulated = errors.New("scene: already populated")

// Bevel rounds the front and back edges of extruded text.
type Bevel struct {
	Enabled   bool    `yaml:"enabled"`
	Thickness float32 `yaml:"thickness"`
	Size      float32 `yaml:"size"`
	Offset    float32 `yaml:"offset"`
	Segments  int     `yaml:"segments"`
}

// TextLine is one line of extruded 3D text. The geometry is centered on its own origin and
// the mesh is then moved OffsetY along Y.
type TextLine struct {
	Text          string  `yaml:"text"`
	Size          float32 `yaml:"size"`
	Depth         float32 `yaml:"depth"`
	CurveSegments int     `yaml:"curve_segments"`
	Bevel         Bevel   `yaml:"bevel"`
	OffsetY       float32 `yaml:"offset_y"`
}

// DefaultText returns the two stock lines.
func DefaultText() []TextLine {
	bevel := Bevel{Enabled: true, Thickness: 0.03, Size: 0.02, Offset: 0, Segments: 5}
	return []TextLine{
		{Text: "CARAGA STATE UNIVERSITY", Size: 1.6, Depth: 1.3, CurveSegments: 23, Bevel: bevel, OffsetY: 1.2},
		{Text: "Ampayon, Butuan City", Size: 1.3, Depth: 1.3, CurveSegments: 23, Bevel: bevel, OffsetY: -0.5},
	}
}

func (l TextLine) extrudeOptions() geometry.ExtrudeOptions {
	return geometry.ExtrudeOptions{
		Depth:          l.Depth,
		Steps:          1,
		BevelEnabled:   l.Bevel.Enabled,
		BevelThickness: l.Bevel.Thickness,
		BevelSize:      l.Bevel.Size,
		BevelOffset:    l.Bevel.Offset,
		BevelSegments:  l.Bevel.Segments,
	}
}

// Stats summarizes one population pass.
type Stats struct {
	TextMeshes int
	TextBounds []geometry.AABB
	Families   map[string]int
	Placement  scatter.Bounds
	Total      int
}

// Builder fills a scene with the text lines and the scattered shape families.
// It populates at most once.
type Builder struct {
	Text     []TextLine
	Families *primitives.Registry
	Scatter  scatter.Options
	Rand     scatter.Rand
	Log      *slog.Logger

	populated bool
}

// NewBuilder returns a builder drawing placements from a generator seeded with opts.Seed.
func NewBuilder(text []TextLine, families *primitives.Registry, opts scatter.Options, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{
		Text:     text,
		Families: families,
		Scatter:  opts,
		Rand:     scatter.NewRand(opts.Seed),
		Log:      log,
	}
}

// Populated reports whether Populate has succeeded.
func (b *Builder) Populated() bool {
	return b.populated
}

// Populate adds one mesh per text line, then Count meshes per family, all sharing a single
// matcap material. Every family's geometry is built before anything is added, so a bad
// family leaves the scene untouched.
func (b *Builder) Populate(s *Scene, font typeface.Font, matcap *assets.Texture) (Stats, error) {
	if b.populated {
		return Stats{}, ErrAlreadyPopulated
	}
	if font == nil {
		return Stats{}, fmt.Errorf("scene: populate without a font")
	}
	families := b.Families.Families()
	geoms := make([]*geometry.Geometry, len(families))
	for i, d := range families {
		g, err := b.Families.Geometry(d.Name)
		if err != nil {
			return Stats{}, fmt.Errorf("scene: %w", err)
		}
		geoms[i] = g
	}

	mat := &Material{Name: "matcap", Matcap: matcap}
	stats := Stats{Families: make(map[string]int, len(families))}

	for i, line := range b.Text {
		shapes := font.Shapes(line.Text, line.Size, line.CurveSegments)
		if len(shapes) == 0 {
			b.Log.Warn("scene: text has no outlines", "text", line.Text, "font", font.Family())
		}
		g := geometry.Extrude(shapes, line.extrudeOptions())
		g.Center()
		m := NewMesh(fmt.Sprintf("text-%d", i+1), g, mat)
		m.Position = mgl32.Vec3{0, line.OffsetY, 0}
		s.Add(m)
		stats.TextMeshes++
		stats.TextBounds = append(stats.TextBounds, g.BoundingBox())
		b.Log.Debug("scene: text mesh", "text", line.Text, "vertices", g.VertexCount())
	}

	for i, d := range families {
		for n := 0; n < d.Count; n++ {
			t := scatter.Sample(b.Rand, b.Scatter)
			m := NewMesh(fmt.Sprintf("%s-%d", d.Name, n), geoms[i], mat)
			m.Family = d.Name
			m.Position = t.Position
			m.Rotation = t.Rotation
			m.Scale = mgl32.Vec3{t.Scale, t.Scale, t.Scale}
			s.Add(m)
			stats.Placement.Add(t)
		}
		stats.Families[d.Name] = d.Count
	}

	stats.Total = stats.TextMeshes + stats.Placement.Count
	b.populated = true
	b.Log.Info("scene: populated", "text", stats.TextMeshes, "shapes", stats.Placement.Count)
	return stats, nil
}
