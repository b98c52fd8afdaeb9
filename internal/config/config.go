package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/airframe/internal/massprop"
	"github.com/san-kum/airframe/internal/parts"
	"github.com/san-kum/airframe/internal/vehicle"
)

const (
	DefaultMach            = 0.3
	DefaultMinStaticMargin = 1.5
	DefaultTube            = "5.5in"
	DefaultConvention      = "tail_to_nose"
)

// Config is the on-disk design file. Enumerations are names, axial stations
// are in the file's Convention.
type Config struct {
	Name       string        `yaml:"name"`
	Convention string        `yaml:"convention"`
	Tube       string        `yaml:"tube,omitempty"`
	TubeRadius float64       `yaml:"tube_radius,omitempty"`
	Mach       float64       `yaml:"mach"`
	Nose       NoseConfig    `yaml:"nose"`
	Upper      SegmentConfig `yaml:"upper"`
	Lower      SegmentConfig `yaml:"lower"`
	Fins       FinConfig     `yaml:"fins"`
	Tail       TailConfig    `yaml:"tail"`
	Motor      MotorConfig   `yaml:"motor"`
	Mission    MissionConfig `yaml:"mission"`
	Motors     []MotorEntry  `yaml:"motors,omitempty"`
}

type NoseConfig struct {
	Kind      string  `yaml:"kind"`
	Length    float64 `yaml:"length"`
	Thickness float64 `yaml:"thickness"`
	Power     float64 `yaml:"power,omitempty"`
	Material  string  `yaml:"material"`
}

type SegmentConfig struct {
	Length    float64 `yaml:"length"`
	Thickness float64 `yaml:"thickness"`
	Material  string  `yaml:"material"`
}

type FinConfig struct {
	Count       int     `yaml:"count"`
	TotalArea   float64 `yaml:"total_area"`
	AspectRatio float64 `yaml:"aspect_ratio"`
	TaperRatio  float64 `yaml:"taper_ratio"`
	CantDeg     float64 `yaml:"cant_deg"`
	Position    float64 `yaml:"position"`
	Thickness   float64 `yaml:"thickness"`
	Airfoil     string  `yaml:"airfoil"`
	Material    string  `yaml:"material"`
}

type TailConfig struct {
	Kind      string  `yaml:"kind"`
	Length    float64 `yaml:"length,omitempty"`
	AftRadius float64 `yaml:"aft_radius,omitempty"`
	Thickness float64 `yaml:"thickness,omitempty"`
	Material  string  `yaml:"material,omitempty"`
}

type MotorConfig struct {
	Name     string  `yaml:"name"`
	Position float64 `yaml:"position"`
}

type MissionConfig struct {
	PayloadMass            float64 `yaml:"payload_mass"`
	PayloadVolume          float64 `yaml:"payload_volume"`
	RecoveryMass           float64 `yaml:"recovery_mass"`
	RecoveryVolume         float64 `yaml:"recovery_volume"`
	CouplerMass            float64 `yaml:"coupler_mass"`
	PropulsionStructMass   float64 `yaml:"propulsion_struct_mass"`
	PropulsionStructLength float64 `yaml:"propulsion_struct_length"`
	MinStaticMargin        float64 `yaml:"min_static_margin"`
}

// MotorEntry is a tabulated motor in motor coordinates (nozzle = 0).
type MotorEntry struct {
	Name    string        `yaml:"name"`
	Samples []MotorSample `yaml:"samples"`
}

type MotorSample struct {
	T    float64 `yaml:"t"`
	Mass float64 `yaml:"mass"`
	CG   float64 `yaml:"cg"`
	Ixx  float64 `yaml:"ixx"`
	Iyy  float64 `yaml:"iyy"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "reference",
		Convention: DefaultConvention,
		Tube:       DefaultTube,
		Mach:       DefaultMach,
		Nose:       NoseConfig{Kind: "conical", Length: 0.55, Thickness: 0.004, Material: "aluminum"},
		Upper:      SegmentConfig{Length: 1.0, Thickness: 0.0025, Material: "aluminum"},
		Lower:      SegmentConfig{Length: 0.8, Thickness: 0.0025, Material: "aluminum"},
		Fins: FinConfig{
			Count: 4, TotalArea: 0.024, AspectRatio: 2.5, TaperRatio: 0.6,
			Position: 0.10, Thickness: 0.004, Airfoil: "flat_plate", Material: "aluminum",
		},
		Tail:  TailConfig{Kind: "none"},
		Motor: MotorConfig{Name: "M1790"},
		Mission: MissionConfig{
			PayloadMass: 2.0, PayloadVolume: 0.004,
			RecoveryMass: 1.5, RecoveryVolume: 0.006,
			CouplerMass: 0.5, PropulsionStructMass: 3.5, PropulsionStructLength: 0.6,
			MinStaticMargin: DefaultMinStaticMargin,
		},
		Motors: []MotorEntry{{
			Name: "M1790",
			Samples: []MotorSample{
				{T: 0, Mass: 9.98, CG: 0.397, Ixx: 0.027, Iyy: 0.61},
				{T: 4.5, Mass: 3.2, CG: 0.317, Ixx: 0.009, Iyy: 0.24},
			},
		}},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Motors = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	out.Motors = make([]MotorEntry, len(c.Motors))
	for i, m := range c.Motors {
		out.Motors[i] = MotorEntry{Name: m.Name, Samples: append([]MotorSample(nil), m.Samples...)}
	}
	return &out
}

func (c *Config) Radius() (float64, error) {
	if c.TubeRadius > 0 {
		return c.TubeRadius, nil
	}
	d, err := parts.ParseTubeDiameter(c.Tube)
	if err != nil {
		return 0, err
	}
	return d / 2, nil
}

// Design resolves names and converts stations into the internal tail-to-nose
// frame.
func (c *Config) Design() (vehicle.Design, error) {
	conv, err := vehicle.ParseConvention(c.Convention)
	if err != nil {
		return vehicle.Design{}, err
	}
	radius, err := c.Radius()
	if err != nil {
		return vehicle.Design{}, err
	}

	var d vehicle.Design
	d.Name = c.Name
	d.TubeRadius = radius

	p := &enumParser{}
	d.Nose = vehicle.NoseDesign{
		Kind:      p.nose(c.Nose.Kind),
		Length:    c.Nose.Length,
		Thickness: c.Nose.Thickness,
		Power:     c.Nose.Power,
		Material:  p.material("nose.material", c.Nose.Material),
	}
	d.Upper = vehicle.SegmentDesign{Length: c.Upper.Length, Thickness: c.Upper.Thickness, Material: p.material("upper.material", c.Upper.Material)}
	d.Lower = vehicle.SegmentDesign{Length: c.Lower.Length, Thickness: c.Lower.Thickness, Material: p.material("lower.material", c.Lower.Material)}
	d.Fins = vehicle.FinDesign{
		Count:       c.Fins.Count,
		TotalArea:   c.Fins.TotalArea,
		AspectRatio: c.Fins.AspectRatio,
		TaperRatio:  c.Fins.TaperRatio,
		Cant:        c.Fins.CantDeg * math.Pi / 180,
		Thickness:   c.Fins.Thickness,
		Airfoil:     p.airfoil(c.Fins.Airfoil),
		Material:    p.material("fins.material", c.Fins.Material),
	}
	d.Tail = vehicle.TailDesign{
		Kind:      p.tail(c.Tail.Kind),
		Length:    c.Tail.Length,
		AftRadius: c.Tail.AftRadius,
		Thickness: c.Tail.Thickness,
	}
	if d.Tail.Kind != parts.NoTail {
		d.Tail.Material = p.material("tail.material", c.Tail.Material)
	}
	if p.err != nil {
		return vehicle.Design{}, p.err
	}

	d.Reqs = vehicle.Requirements{
		PayloadMass:          c.Mission.PayloadMass,
		PayloadVolume:        c.Mission.PayloadVolume,
		RecoveryMass:         c.Mission.RecoveryMass,
		RecoveryVolume:       c.Mission.RecoveryVolume,
		CouplerMass:          c.Mission.CouplerMass,
		PropulsionStructMass: c.Mission.PropulsionStructMass,
		PropulsionStructLen:  c.Mission.PropulsionStructLength,
		MinStaticMargin:      c.Mission.MinStaticMargin,
	}

	total := d.TotalLength()
	d.Fins.Position = conv.ToInternal(c.Fins.Position, total)
	d.Motor = vehicle.MotorRef{Name: c.Motor.Name, Position: conv.ToInternal(c.Motor.Position, total)}
	return d, nil
}

// Catalog builds the motor lookup for this file.
func (c *Config) Catalog() (vehicle.Catalog, error) {
	cat := make(vehicle.Catalog, len(c.Motors))
	for _, m := range c.Motors {
		samples := make([]vehicle.MotorSample, len(m.Samples))
		for i, s := range m.Samples {
			samples[i] = vehicle.MotorSample{T: s.T, Mass: s.Mass, CG: s.CG, Ixx: s.Ixx, Iyy: s.Iyy}
		}
		model, err := vehicle.NewSampledMotor(samples)
		if err != nil {
			return nil, fmt.Errorf("motor %s: %w", m.Name, err)
		}
		cat[m.Name] = model
	}
	return cat, nil
}

// enumParser keeps the first name resolution error.
type enumParser struct {
	err error
}

func (p *enumParser) keep(field string, err error) {
	if err != nil && p.err == nil {
		p.err = massprop.NewComponentError("config", field, 0, err)
	}
}

func (p *enumParser) nose(name string) parts.NoseconeKind {
	k, err := parts.ParseNoseconeKind(name)
	p.keep("nose.kind", err)
	return k
}

func (p *enumParser) material(field, name string) parts.Material {
	m, err := parts.ParseMaterial(name)
	p.keep(field, err)
	return m
}

func (p *enumParser) airfoil(name string) parts.FinAirfoil {
	a, err := parts.ParseFinAirfoil(name)
	p.keep("fins.airfoil", err)
	return a
}

func (p *enumParser) tail(name string) parts.TailKind {
	k, err := parts.ParseTailKind(name)
	p.keep("tail.kind", err)
	return k
}
