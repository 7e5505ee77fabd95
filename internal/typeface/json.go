package typeface

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"
)

type jsonTypeface struct {
	FamilyName         string               `json:"familyName"`
	Resolution         float32              `json:"resolution"`
	UnderlineThickness float32              `json:"underlineThickness"`
	BoundingBox        jsonBounds           `json:"boundingBox"`
	Glyphs             map[string]jsonGlyph `json:"glyphs"`
}

type jsonBounds struct {
	XMin float32 `json:"xMin"`
	XMax float32 `json:"xMax"`
	YMin float32 `json:"yMin"`
	YMax float32 `json:"yMax"`
}

type jsonGlyph struct {
	Advance float32 `json:"ha"`
	Outline string  `json:"o"`
}

// ParseJSON reads a typeface JSON document. Glyph outlines are strings of commands
// "m x y", "l x y", "q x y cx cy" and "b x y c1x c1y c2x c2y" in font units, where curve
// commands list the end point before their control points.
func ParseJSON(data []byte, opts ...Option) (*OutlineFont, error) {
	var doc jsonTypeface
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("typeface: decode json: %w", err)
	}
	if len(doc.Glyphs) == 0 {
		return nil, ErrNoGlyphs
	}
	if doc.Resolution <= 0 {
		return nil, fmt.Errorf("typeface: invalid resolution %v", doc.Resolution)
	}
	glyphs := make(glyphMap, len(doc.Glyphs))
	for key, g := range doc.Glyphs {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			continue
		}
		outline, err := parseOutline(g.Outline)
		if err != nil {
			return nil, fmt.Errorf("typeface: glyph %q: %w", key, err)
		}
		glyphs[r] = glyph{advance: g.Advance, outline: outline}
	}
	lineHeight := doc.BoundingBox.YMax - doc.BoundingBox.YMin + doc.UnderlineThickness
	return newOutlineFont(doc.FamilyName, doc.Resolution, lineHeight, glyphs, opts), nil
}

func parseOutline(o string) ([]seg, error) {
	fields := strings.Fields(o)
	var out []seg
	i := 0
	next := func(n int) ([]float32, error) {
		if i+n > len(fields) {
			return nil, fmt.Errorf("truncated outline at token %d", i)
		}
		vals := make([]float32, n)
		for k := 0; k < n; k++ {
			v, err := strconv.ParseFloat(fields[i+k], 32)
			if err != nil {
				return nil, err
			}
			vals[k] = float32(v)
		}
		i += n
		return vals, nil
	}
	for i < len(fields) {
		cmd := fields[i]
		i++
		switch cmd {
		case "m", "l":
			v, err := next(2)
			if err != nil {
				return nil, err
			}
			op := opMove
			if cmd == "l" {
				op = opLine
			}
			out = append(out, seg{op: op, pts: [3]mgl32.Vec2{{v[0], v[1]}}})
		case "q":
			v, err := next(4)
			if err != nil {
				return nil, err
			}
			out = append(out, seg{op: opQuad, pts: [3]mgl32.Vec2{{v[2], v[3]}, {v[0], v[1]}}})
		case "b":
			v, err := next(6)
			if err != nil {
				return nil, err
			}
			out = append(out, seg{op: opCube, pts: [3]mgl32.Vec2{{v[2], v[3]}, {v[4], v[5]}, {v[0], v[1]}}})
		case "z":
		default:
			return nil, fmt.Errorf("unknown outline command %q", cmd)
		}
	}
	return out, nil
}
