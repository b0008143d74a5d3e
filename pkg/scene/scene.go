// Package scene loads machine geometry descriptions (vessel,
// structures, ray batches, solver configuration) from YAML or JSON and
// builds the numeric engine inputs from them.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
	"github.com/fusiondiag/go-los-tracer/pkg/geometry"
	"github.com/fusiondiag/go-los-tracer/pkg/tracer"
)

// LimitSpec is one angular sector (radians) or axial extent (meters)
type LimitSpec struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// VesselSpec describes the vacuum vessel
type VesselSpec struct {
	Kind     string       `yaml:"kind" json:"kind"` // "toroidal" or "linear"
	Vertices [][2]float64 `yaml:"vertices" json:"vertices"`
	Limit    *LimitSpec   `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// StructureSpec describes one obstructing structure
type StructureSpec struct {
	Vertices [][2]float64 `yaml:"vertices" json:"vertices"`
	Limits   []LimitSpec  `yaml:"limits,omitempty" json:"limits,omitempty"`
}

// RaysSpec is the ray batch
type RaysSpec struct {
	Origins    [][3]float64 `yaml:"origins" json:"origins"`
	Directions [][3]float64 `yaml:"directions" json:"directions"`
}

// TolerancesSpec overrides solver tolerances; zero fields keep defaults
type TolerancesSpec struct {
	EpsUz    float64 `yaml:"eps_uz,omitempty" json:"epsUz,omitempty"`
	EpsVz    float64 `yaml:"eps_vz,omitempty" json:"epsVz,omitempty"`
	EpsA     float64 `yaml:"eps_a,omitempty" json:"epsA,omitempty"`
	EpsB     float64 `yaml:"eps_b,omitempty" json:"epsB,omitempty"`
	EpsPlane float64 `yaml:"eps_plane,omitempty" json:"epsPlane,omitempty"`
}

// ConfigSpec carries the trace configuration
type ConfigSpec struct {
	Forbid     *bool           `yaml:"forbid,omitempty" json:"forbid,omitempty"`
	Validate   *bool           `yaml:"validate,omitempty" json:"validate,omitempty"`
	Workers    int             `yaml:"workers,omitempty" json:"workers,omitempty"`
	RMin       float64         `yaml:"rmin,omitempty" json:"rmin,omitempty"`
	Tolerances *TolerancesSpec `yaml:"tolerances,omitempty" json:"tolerances,omitempty"`
}

// Scene is a complete trace description
type Scene struct {
	Vessel     VesselSpec      `yaml:"vessel" json:"vessel"`
	Structures []StructureSpec `yaml:"structures,omitempty" json:"structures,omitempty"`
	Rays       RaysSpec        `yaml:"rays" json:"rays"`
	Config     ConfigSpec      `yaml:"config,omitempty" json:"config,omitempty"`
}

// Load reads a scene from a YAML file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}
	return &s, nil
}

func parseKind(kind string) (geometry.Kind, error) {
	switch kind {
	case "toroidal":
		return geometry.Toroidal, nil
	case "linear":
		return geometry.Linear, nil
	}
	return 0, fmt.Errorf("vessel kind must be \"toroidal\" or \"linear\", got %q", kind)
}

func toVec2(pts [][2]float64) []core.Vec2 {
	out := make([]core.Vec2, len(pts))
	for i, p := range pts {
		out[i] = core.NewVec2(p[0], p[1])
	}
	return out
}

func (l *LimitSpec) build(kind geometry.Kind) geometry.AngularLimit {
	if kind == geometry.Linear {
		return geometry.NewLinearLimit(l.Min, l.Max)
	}
	return geometry.NewAngularLimit(l.Min, l.Max)
}

// BuildVessel constructs the vessel from the spec
func (s *Scene) BuildVessel() (*geometry.Vessel, error) {
	kind, err := parseKind(s.Vessel.Kind)
	if err != nil {
		return nil, err
	}
	poly, err := geometry.NewPolygon(toVec2(s.Vessel.Vertices))
	if err != nil {
		return nil, fmt.Errorf("vessel: %w", err)
	}
	lim := geometry.FullLimit()
	if s.Vessel.Limit != nil {
		lim = s.Vessel.Limit.build(kind)
	} else if kind == geometry.Linear {
		return nil, fmt.Errorf("linear vessel requires an axial limit")
	}
	return geometry.NewVessel(poly, lim, kind)
}

// BuildStructures constructs the obstructing structures from the spec
func (s *Scene) BuildStructures() ([]*geometry.Structure, error) {
	kind, err := parseKind(s.Vessel.Kind)
	if err != nil {
		return nil, err
	}
	out := make([]*geometry.Structure, 0, len(s.Structures))
	for i, spec := range s.Structures {
		poly, err := geometry.NewPolygon(toVec2(spec.Vertices))
		if err != nil {
			return nil, fmt.Errorf("structure %d: %w", i, err)
		}
		lims := make([]geometry.AngularLimit, len(spec.Limits))
		for j := range spec.Limits {
			lims[j] = spec.Limits[j].build(kind)
		}
		st, err := geometry.NewStructure(poly, lims, kind)
		if err != nil {
			return nil, fmt.Errorf("structure %d: %w", i, err)
		}
		out = append(out, st)
	}
	return out, nil
}

// BuildRays converts the ray batch to engine vectors
func (s *Scene) BuildRays() (origins, dirs []core.Vec3) {
	origins = make([]core.Vec3, len(s.Rays.Origins))
	for i, o := range s.Rays.Origins {
		origins[i] = core.NewVec3(o[0], o[1], o[2])
	}
	dirs = make([]core.Vec3, len(s.Rays.Directions))
	for i, d := range s.Rays.Directions {
		dirs[i] = core.NewVec3(d[0], d[1], d[2]).Normalize()
	}
	return origins, dirs
}

// BuildConfig converts the config spec, keeping defaults for unset
// fields
func (s *Scene) BuildConfig() tracer.Config {
	cfg := tracer.DefaultConfig()
	c := s.Config
	if c.Forbid != nil {
		cfg.Forbid = *c.Forbid
	}
	if c.Validate != nil {
		cfg.Validate = *c.Validate
	}
	cfg.NumWorkers = c.Workers
	cfg.RMin = c.RMin
	if c.Tolerances != nil {
		t := c.Tolerances
		if t.EpsUz > 0 {
			cfg.Tolerances.EpsUz = t.EpsUz
		}
		if t.EpsVz > 0 {
			cfg.Tolerances.EpsVz = t.EpsVz
		}
		if t.EpsA > 0 {
			cfg.Tolerances.EpsA = t.EpsA
		}
		if t.EpsB > 0 {
			cfg.Tolerances.EpsB = t.EpsB
		}
		if t.EpsPlane > 0 {
			cfg.Tolerances.EpsPlane = t.EpsPlane
		}
	}
	return cfg
}

// BuildTracer assembles the full engine from the scene
func (s *Scene) BuildTracer() (*tracer.Tracer, error) {
	vessel, err := s.BuildVessel()
	if err != nil {
		return nil, err
	}
	structures, err := s.BuildStructures()
	if err != nil {
		return nil, err
	}
	return tracer.New(vessel, structures, s.BuildConfig())
}
