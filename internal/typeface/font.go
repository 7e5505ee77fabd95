// Package typeface turns font outlines into 2D shapes that can be extruded into 3D text.
// Two formats are read: the JSON typeface format produced by facetype.js, and OpenType / TrueType.
package typeface

import (
	"errors"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"matcap-scene/internal/geometry"
)

// ErrNoGlyphs is returned for a font file without a single usable glyph.
var ErrNoGlyphs = errors.New("typeface: font has no glyphs")

// Font lays out text as outline shapes.
type Font interface {
	Family() string
	// Shapes returns the filled outlines of text, size units tall per em, with each curve
	// approximated by curveSegments straight pieces. Lines break on '\n' and move down.
	Shapes(text string, size float32, curveSegments int) []geometry.Shape
}

type segOp uint8

const (
	opMove segOp = iota
	opLine
	opQuad
	opCube
)

// seg is one outline command in font units. For opQuad pts holds control then end point,
// for opCube two controls then end point.
type seg struct {
	op  segOp
	pts [3]mgl32.Vec2
}

type glyph struct {
	advance float32
	outline []seg
}

type glyphSource interface {
	lookup(r rune) (glyph, bool)
}

type glyphMap map[rune]glyph

func (m glyphMap) lookup(r rune) (glyph, bool) {
	g, ok := m[r]
	return g, ok
}

// Option configures a parsed font.
type Option func(*OutlineFont)

// WithLogger sets the logger used to report missing glyphs.
func WithLogger(l *slog.Logger) Option {
	return func(f *OutlineFont) {
		if l != nil {
			f.log = l
		}
	}
}

// OutlineFont is a parsed font with vector glyph outlines.
type OutlineFont struct {
	family     string
	resolution float32 // font units per em
	lineHeight float32 // font units
	glyphs     glyphSource
	log        *slog.Logger
}

func newOutlineFont(family string, resolution, lineHeight float32, glyphs glyphSource, opts []Option) *OutlineFont {
	f := &OutlineFont{
		family:     family,
		resolution: resolution,
		lineHeight: lineHeight,
		glyphs:     glyphs,
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *OutlineFont) Family() string {
	return f.family
}

// LineHeight returns the distance between baselines at the given size.
func (f *OutlineFont) LineHeight(size float32) float32 {
	return f.lineHeight * size / f.resolution
}

// Shapes lays text out left to right from the origin and returns its filled outlines.
func (f *OutlineFont) Shapes(text string, size float32, curveSegments int) []geometry.Shape {
	curveSegments = max(curveSegments, 1)
	scale := size / f.resolution
	var out []geometry.Shape
	var x, y float32
	for _, r := range text {
		if r == '\n' {
			x = 0
			y -= f.LineHeight(size)
			continue
		}
		g, ok := f.glyphs.lookup(r)
		if !ok {
			g, ok = f.glyphs.lookup('?')
		}
		if !ok {
			f.log.Warn("typeface: missing glyph", "family", f.family, "char", string(r))
			continue
		}
		out = append(out, groupContours(sampleOutline(g.outline, scale, x, y, curveSegments))...)
		x += g.advance * scale
	}
	return out
}
