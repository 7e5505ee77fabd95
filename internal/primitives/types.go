package primitives

// Kind names a parametric shape generator.
type Kind string

const (
	KindTorus    Kind = "torus"
	KindSphere   Kind = "sphere"
	KindBox      Kind = "box"
	KindCylinder Kind = "cylinder"
	KindCone     Kind = "cone"
)

// Def is the YAML definition of one shape family: the generator parameters shared by every
// instance and how many instances to scatter. Fields not used by Kind are ignored.
type Def struct {
	Name  string `yaml:"name"`
	Kind  Kind   `yaml:"kind"`
	Count int    `yaml:"count"`

	Radius       float32 `yaml:"radius,omitempty"`
	Tube         float32 `yaml:"tube,omitempty"`
	RadiusTop    float32 `yaml:"radius_top,omitempty"`
	RadiusBottom float32 `yaml:"radius_bottom,omitempty"`
	Width        float32 `yaml:"width,omitempty"`
	Height       float32 `yaml:"height,omitempty"`
	Depth        float32 `yaml:"depth,omitempty"`

	RadialSegments  int `yaml:"radial_segments,omitempty"`
	TubularSegments int `yaml:"tubular_segments,omitempty"`
	WidthSegments   int `yaml:"width_segments,omitempty"`
	HeightSegments  int `yaml:"height_segments,omitempty"`
}

// Defaults returns the five stock families, 100 instances each.
func Defaults() []Def {
	return []Def{
		{Name: "torus", Kind: KindTorus, Count: 100, Radius: 0.3, Tube: 0.2, RadialSegments: 32, TubularSegments: 64},
		{Name: "sphere", Kind: KindSphere, Count: 100, Radius: 0.3, WidthSegments: 32, HeightSegments: 32},
		{Name: "box", Kind: KindBox, Count: 100, Width: 0.5, Height: 0.5, Depth: 0.5},
		{Name: "cylinder", Kind: KindCylinder, Count: 100, RadiusTop: 0.3, RadiusBottom: 0.3, Height: 1, RadialSegments: 32},
		{Name: "cone", Kind: KindCone, Count: 100, Radius: 0.3, Height: 1, RadialSegments: 32},
	}
}
