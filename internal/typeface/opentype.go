package typeface

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// ParseOpenType reads a TrueType or OpenType font, or the first face of a collection.
func ParseOpenType(data []byte, opts ...Option) (*OutlineFont, error) {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("typeface: parse opentype: %w", err)
	}
	if len(faces) == 0 {
		return nil, ErrNoGlyphs
	}
	face := faces[0]
	upem := float32(face.Upem())
	lineHeight := upem
	if ext, ok := face.FontHExtents(); ok {
		lineHeight = ext.Ascender - ext.Descender + ext.LineGap
	}
	src := &faceGlyphs{face: face, cache: make(map[rune]glyph)}
	return newOutlineFont(face.Describe().Family, upem, lineHeight, src, opts), nil
}

type faceGlyphs struct {
	mu    sync.Mutex
	face  *font.Face
	cache map[rune]glyph
}

func (s *faceGlyphs) lookup(r rune) (glyph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.cache[r]; ok {
		return g, true
	}
	gid, ok := s.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return glyph{}, false
	}
	g := glyph{advance: s.face.HorizontalAdvance(gid)}
	if outline, ok := s.face.GlyphData(gid).(font.GlyphOutline); ok {
		g.outline = convertSegments(outline.Segments)
	}
	s.cache[r] = g
	return g, true
}

func convertSegments(segments []font.Segment) []seg {
	out := make([]seg, 0, len(segments))
	pt := func(p ot.SegmentPoint) mgl32.Vec2 { return mgl32.Vec2{p.X, p.Y} }
	for _, s := range segments {
		var c seg
		switch s.Op {
		case ot.SegmentOpMoveTo:
			c.op = opMove
		case ot.SegmentOpLineTo:
			c.op = opLine
		case ot.SegmentOpQuadTo:
			c.op = opQuad
		case ot.SegmentOpCubeTo:
			c.op = opCube
		default:
			continue
		}
		for i := range s.Args {
			c.pts[i] = pt(s.Args[i])
		}
		out = append(out, c)
	}
	return out
}
