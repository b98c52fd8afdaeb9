// Package vehicle turns raw airframe design variables into mass properties,
// a center of pressure and a static margin.
//
// A Design is the raw input. Derive validates it and solves the fin planform,
// producing an immutable Vehicle. Synthesize builds every part, aggregates
// them and estimates the center of pressure. All stations are tail = 0.
package vehicle

import (
	"fmt"
	"math"

	"github.com/san-kum/airframe/internal/fins"
	"github.com/san-kum/airframe/internal/massprop"
	"github.com/san-kum/airframe/internal/parts"
)

type NoseDesign struct {
	Kind      parts.NoseconeKind
	Length    float64
	Thickness float64
	Power     float64
	Material  parts.Material
}

type SegmentDesign struct {
	Length    float64
	Thickness float64
	Material  parts.Material
}

type FinDesign struct {
	Count       int
	TotalArea   float64
	AspectRatio float64
	TaperRatio  float64
	Cant        float64 // radians
	Position    float64 // root leading edge station
	Thickness   float64
	Airfoil     parts.FinAirfoil
	Material    parts.Material
}

type TailDesign struct {
	Kind      parts.TailKind
	Length    float64
	AftRadius float64
	Thickness float64
	Material  parts.Material
}

// Requirements are the mission-side masses and volumes.
type Requirements struct {
	PayloadMass          float64
	PayloadVolume        float64
	RecoveryMass         float64
	RecoveryVolume       float64
	CouplerMass          float64
	PropulsionStructMass float64
	PropulsionStructLen  float64
	MinStaticMargin      float64
}

type MotorRef struct {
	Name     string
	Position float64 // nozzle exit station
}

type Design struct {
	Name       string
	TubeRadius float64
	Nose       NoseDesign
	Upper      SegmentDesign
	Lower      SegmentDesign
	Fins       FinDesign
	Tail       TailDesign
	Motor      MotorRef
	Reqs       Requirements
}

// TotalLength is boattail + lower + upper + nosecone.
func (d Design) TotalLength() float64 {
	return d.tailLength() + d.Lower.Length + d.Upper.Length + d.Nose.Length
}

func (d Design) tailLength() float64 {
	if d.Tail.Kind == parts.NoTail {
		return 0
	}
	return d.Tail.Length
}

// Vehicle is a validated Design with its fin planform solved. It is read-only.
type Vehicle struct {
	design   Design
	planform fins.Planform
	length   float64
}

func (v Vehicle) Design() Design          { return v.design }
func (v Vehicle) Planform() fins.Planform { return v.planform }
func (v Vehicle) TotalLength() float64    { return v.length }
func (v Vehicle) Caliber() float64        { return 2 * v.design.TubeRadius }

// Derive validates d and solves its fin planform. Fin geometry is checked
// before anything else is built.
func Derive(d Design) (Vehicle, error) {
	pf, err := fins.Solve(d.Fins.TotalArea, d.Fins.Count, d.Fins.AspectRatio, d.Fins.TaperRatio)
	if err != nil {
		return Vehicle{}, err
	}
	if math.Abs(d.Fins.Cant) >= math.Pi/2 || math.IsNaN(d.Fins.Cant) {
		return Vehicle{}, massprop.NewComponentError("fins", "cant", d.Fins.Cant, massprop.ErrInvalidFinGeometry)
	}

	if !(d.TubeRadius > 0) {
		return Vehicle{}, massprop.NewComponentError("body", "tube_radius", d.TubeRadius, massprop.ErrDegenerateMassModel)
	}
	if !(d.Nose.Length > 0) {
		return Vehicle{}, massprop.NewComponentError("nosecone", "length", d.Nose.Length, massprop.ErrDegenerateMassModel)
	}
	if _, err := (parts.Nosecone{Kind: d.Nose.Kind, Power: d.Nose.Power}).CentroidFraction(); err != nil {
		return Vehicle{}, err
	}

	lengths := []struct {
		name string
		v    float64
	}{
		{"upper_fuselage", d.Upper.Length},
		{"lower_fuselage", d.Lower.Length},
		{"boattail", d.tailLength()},
		{"propulsion_struct", d.Reqs.PropulsionStructLen},
	}
	for _, l := range lengths {
		if l.v < 0 || math.IsNaN(l.v) {
			return Vehicle{}, massprop.NewComponentError(l.name, "length", l.v, massprop.ErrDegenerateMassModel)
		}
	}

	mats := []struct {
		name string
		m    parts.Material
	}{
		{"nosecone", d.Nose.Material},
		{"upper_fuselage", d.Upper.Material},
		{"lower_fuselage", d.Lower.Material},
		{"fins", d.Fins.Material},
		{"boattail", d.Tail.Material},
	}
	for _, m := range mats {
		if _, err := m.m.Density(); err != nil {
			return Vehicle{}, massprop.NewComponentError(m.name, "material", float64(m.m), err)
		}
	}
	if _, err := parts.ParseTailKind(d.Tail.Kind.String()); err != nil {
		return Vehicle{}, massprop.NewComponentError("boattail", "kind", float64(d.Tail.Kind), err)
	}

	total := d.TotalLength()
	if !(d.Fins.Position > 0) || d.Fins.Position > total {
		return Vehicle{}, massprop.NewComponentError("fins", "position", d.Fins.Position, massprop.ErrInvalidFinGeometry)
	}
	if d.Fins.Position-pf.RootChord() < 0 {
		return Vehicle{}, massprop.NewComponentError("fins", "position", d.Fins.Position, fmt.Errorf("%w: root chord %g overhangs the tail", massprop.ErrInvalidFinGeometry, pf.RootChord()))
	}

	return Vehicle{design: d, planform: pf, length: total}, nil
}
