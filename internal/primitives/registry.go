package primitives

import (
	"errors"
	"fmt"

	"matcap-scene/internal/geometry"
)

// ErrUnknownShape is returned for a family whose Kind has no generator.
var ErrUnknownShape = errors.New("primitives: unknown shape kind")

// Registry maps family names to their definition and one shared geometry. Geometry is built
// on first use and reused by every instance of the family.
type Registry struct {
	defs  []Def
	index map[string]int
	cache map[string]*geometry.Geometry
}

// NewRegistry returns a registry over defs. Later definitions with a repeated name replace
// earlier ones in place.
func NewRegistry(defs []Def) *Registry {
	r := &Registry{
		index: make(map[string]int),
		cache: make(map[string]*geometry.Geometry),
	}
	for _, d := range defs {
		if i, ok := r.index[d.Name]; ok {
			r.defs[i] = d
			continue
		}
		r.index[d.Name] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r
}

// Families returns the definitions in registration order.
func (r *Registry) Families() []Def {
	out := make([]Def, len(r.defs))
	copy(out, r.defs)
	return out
}

// Geometry returns the shared geometry for the named family.
func (r *Registry) Geometry(name string) (*geometry.Geometry, error) {
	if g, ok := r.cache[name]; ok {
		return g, nil
	}
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("primitives: no family %q", name)
	}
	g, err := Build(r.defs[i])
	if err != nil {
		return nil, err
	}
	r.cache[name] = g
	return g, nil
}

// Build generates the geometry for d.
func Build(d Def) (*geometry.Geometry, error) {
	switch d.Kind {
	case KindTorus:
		return geometry.Torus(d.Radius, d.Tube, d.RadialSegments, d.TubularSegments), nil
	case KindSphere:
		return geometry.Sphere(d.Radius, d.WidthSegments, d.HeightSegments), nil
	case KindBox:
		return geometry.Box(d.Width, d.Height, d.Depth), nil
	case KindCylinder:
		return geometry.Cylinder(d.RadiusTop, d.RadiusBottom, d.Height, d.RadialSegments), nil
	case KindCone:
		return geometry.Cone(d.Radius, d.Height, d.RadialSegments), nil
	}
	return nil, fmt.Errorf("%w: %q (family %s)", ErrUnknownShape, d.Kind, d.Name)
}
