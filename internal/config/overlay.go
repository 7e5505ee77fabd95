package config

import (
	"fmt"

	"github.com/jinzhu/copier"

	"matcap-scene/internal/primitives"
	"matcap-scene/internal/scene"
)

// FamilyOverride is one families entry as written in the file. Pointer fields tell a
// value left out, which keeps the stock family's value, from an explicit zero, which wins:
// count: 0 disables a stock family.
type FamilyOverride struct {
	Name  string          `yaml:"name"`
	Kind  primitives.Kind `yaml:"kind"`
	Count *int            `yaml:"count"`

	Radius       *float32 `yaml:"radius"`
	Tube         *float32 `yaml:"tube"`
	RadiusTop    *float32 `yaml:"radius_top"`
	RadiusBottom *float32 `yaml:"radius_bottom"`
	Width        *float32 `yaml:"width"`
	Height       *float32 `yaml:"height"`
	Depth        *float32 `yaml:"depth"`

	RadialSegments  *int `yaml:"radial_segments"`
	TubularSegments *int `yaml:"tubular_segments"`
	WidthSegments   *int `yaml:"width_segments"`
	HeightSegments  *int `yaml:"height_segments"`
}

// BevelOverride is the bevel section of a TextOverride.
type BevelOverride struct {
	Enabled   *bool    `yaml:"enabled"`
	Thickness *float32 `yaml:"thickness"`
	Size      *float32 `yaml:"size"`
	Offset    *float32 `yaml:"offset"`
	Segments  *int     `yaml:"segments"`
}

// TextOverride is one text entry as written in the file. It overlays the stock line at
// the same index; entries past the stock lines add new lines.
type TextOverride struct {
	Text          *string        `yaml:"text"`
	Size          *float32       `yaml:"size"`
	Depth         *float32       `yaml:"depth"`
	CurveSegments *int           `yaml:"curve_segments"`
	Bevel         *BevelOverride `yaml:"bevel"`
	OffsetY       *float32       `yaml:"offset_y"`
}

// overlays holds the list sections, decoded a second time with presence tracking.
type overlays struct {
	Text     []TextOverride   `yaml:"text"`
	Families []FamilyOverride `yaml:"families"`
}

var overlayOpts = copier.Option{IgnoreEmpty: true}

// MergeFamilies overlays each entry in over onto the base entry with the same name.
// Entries with a new name are appended.
func MergeFamilies(base []primitives.Def, over []FamilyOverride) ([]primitives.Def, error) {
	out := make([]primitives.Def, len(base))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, d := range out {
		index[d.Name] = i
	}
	for _, o := range over {
		i, ok := index[o.Name]
		if !ok {
			i = len(out)
			index[o.Name] = i
			out = append(out, primitives.Def{})
		}
		if err := copier.CopyWithOption(&out[i], &o, overlayOpts); err != nil {
			return nil, fmt.Errorf("config: family %s: %w", o.Name, err)
		}
	}
	return out, nil
}

// MergeText overlays over onto base by index.
func MergeText(base []scene.TextLine, over []TextOverride) ([]scene.TextLine, error) {
	out := make([]scene.TextLine, max(len(base), len(over)))
	copy(out, base)
	for i := range over {
		if err := copier.CopyWithOption(&out[i], &over[i], overlayOpts); err != nil {
			return nil, fmt.Errorf("config: text line %d: %w", i+1, err)
		}
	}
	return out, nil
}
