package vehicle

import (
	"fmt"

	"github.com/san-kum/airframe/internal/aero"
	"github.com/san-kum/airframe/internal/fins"
	"github.com/san-kum/airframe/internal/massprop"
	"github.com/san-kum/airframe/internal/parts"
)

// Part is one named record of the dry vehicle.
type Part struct {
	Name  string
	Props massprop.MassProperty
}

// Result is the outcome of one synthesis. DryTotal excludes the motor.
//
// StaticMargin is (CG − CP) / (2·TubeRadius) with both stations tail = 0,
// the same as (cp − cg) / caliber measured from the nose. It is positive
// when CP is aft of CG.
type Result struct {
	Name          string
	DryTotal      massprop.MassProperty
	Parts         []Part
	Planform      fins.Planform
	Contributions []aero.Contribution
	CP            float64
	StaticMargin  float64 // calibers, positive when CP is aft of CG
	TotalLength   float64
	TubeRadius    float64
	Mach          float64
	Motor         MotorRef
}

// Synthesize builds every dry part of v, aggregates them and estimates the
// center of pressure at the given Mach number (0 means aero.DefaultMach).
// On error the returned Result is empty.
func Synthesize(v Vehicle, mach float64) (Result, error) {
	d := v.design
	r := d.TubeRadius
	total := v.length
	if mach == 0 {
		mach = aero.DefaultMach
	}

	built, err := buildParts(v)
	if err != nil {
		return Result{}, err
	}
	props := make([]massprop.MassProperty, len(built))
	for i, p := range built {
		props[i] = p.Props
	}
	dry, err := massprop.Aggregate(props)
	if err != nil {
		return Result{}, fmt.Errorf("aggregate %s: %w", d.Name, err)
	}

	cp, contribs, err := aero.EstimateCP(aero.Estimate{
		Nose:        d.Nose.Kind,
		NoseLength:  d.Nose.Length,
		TotalLength: total,
		Planform:    v.planform,
		FinCount:    d.Fins.Count,
		TubeRadius:  r,
		FinRootLE:   d.Fins.Position,
		Mach:        mach,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Name:          d.Name,
		DryTotal:      dry,
		Parts:         built,
		Planform:      v.planform,
		Contributions: contribs,
		CP:            cp,
		StaticMargin:  margin(cp, dry.CG.X, total, r),
		TotalLength:   total,
		TubeRadius:    r,
		Mach:          mach,
		Motor:         d.Motor,
	}, nil
}

// margin is (cp − cg) / caliber with both stations measured from the nose.
func margin(cp, cg, total, radius float64) float64 {
	cpN := NoseToTail.FromInternal(cp, total)
	cgN := NoseToTail.FromInternal(cg, total)
	return (cpN - cgN) / (2 * radius)
}

func buildParts(v Vehicle) ([]Part, error) {
	d := v.design
	r := d.TubeRadius
	total := v.length
	bt := d.tailLength()
	junction := bt + d.Lower.Length
	shoulder := total - d.Nose.Length

	out := make([]Part, 0, 10)
	add := func(name string, p massprop.MassProperty, err error) error {
		if err != nil {
			return err
		}
		out = append(out, Part{Name: name, Props: p})
		return nil
	}

	if bt > 0 {
		tail, err := parts.FrustumMass(parts.Frustum{
			Length:       bt,
			TopRadius:    r,
			BottomRadius: d.Tail.AftRadius,
			Thickness:    d.Tail.Thickness,
			Material:     d.Tail.Material,
		}, 0)
		if err := add("boattail", tail, err); err != nil {
			return nil, err
		}
	}

	lower, err := parts.CylinderMass("lower_fuselage", parts.Shell{Length: d.Lower.Length, Radius: r, Thickness: d.Lower.Thickness, Material: d.Lower.Material}, bt)
	if err := add("lower_fuselage", lower, err); err != nil {
		return nil, err
	}
	upper, err := parts.CylinderMass("upper_fuselage", parts.Shell{Length: d.Upper.Length, Radius: r, Thickness: d.Upper.Thickness, Material: d.Upper.Material}, junction)
	if err := add("upper_fuselage", upper, err); err != nil {
		return nil, err
	}
	nose, err := parts.NoseconeMass(parts.Nosecone{
		Kind:      d.Nose.Kind,
		Length:    d.Nose.Length,
		Radius:    r,
		Thickness: d.Nose.Thickness,
		Power:     d.Nose.Power,
		Material:  d.Nose.Material,
	}, total)
	if err := add("nosecone", nose, err); err != nil {
		return nil, err
	}

	bays, aft, err := parts.StackBays(shoulder, r,
		parts.Bay{Name: "recovery", Mass: d.Reqs.RecoveryMass, Volume: d.Reqs.RecoveryVolume},
		parts.Bay{Name: "payload", Mass: d.Reqs.PayloadMass, Volume: d.Reqs.PayloadVolume},
	)
	if err != nil {
		return nil, err
	}
	if aft < 0 {
		return nil, massprop.NewComponentError("payload", "volume", d.Reqs.PayloadVolume,
			fmt.Errorf("%w: bays extend %.3f m past the tail", massprop.ErrDegenerateMassModel, -aft))
	}
	out = append(out, Part{Name: "recovery", Props: bays[0]}, Part{Name: "payload", Props: bays[1]})

	coupler, err := parts.CouplerMass(d.Reqs.CouplerMass, junction)
	if err := add("coupler", coupler, err); err != nil {
		return nil, err
	}
	prop, err := parts.PropulsionStructMass(d.Reqs.PropulsionStructMass, d.Motor.Position, d.Reqs.PropulsionStructLen)
	if err := add("propulsion_struct", prop, err); err != nil {
		return nil, err
	}
	finset, err := parts.FinSetMass(parts.FinSet{
		Count:     d.Fins.Count,
		Planform:  v.planform,
		Thickness: d.Fins.Thickness,
		Airfoil:   d.Fins.Airfoil,
		Material:  d.Fins.Material,
	}, d.Fins.Position, r)
	if err := add("fins", finset, err); err != nil {
		return nil, err
	}
	return out, nil
}

// SimulatorTuple is the dry, motor-excluded hand-off to a flight simulator:
// mass in kg, the body-axis inertia diagonal in kg·m² and the axial CG in m.
func (r Result) SimulatorTuple() (mass float64, inertia [3]float64, cg float64) {
	return r.DryTotal.Mass, r.DryTotal.Inertia.Diagonal(), r.DryTotal.CG.X
}

// Stable reports whether the dry static margin meets minCalibers.
func (r Result) Stable(minCalibers float64) bool {
	return r.StaticMargin >= minCalibers
}

// Part returns the named dry part.
func (r Result) Part(name string) (massprop.MassProperty, bool) {
	for _, p := range r.Parts {
		if p.Name == name {
			return p.Props, true
		}
	}
	return massprop.MassProperty{}, false
}

// WetTotalAt adds the referenced motor, evaluated t seconds after ignition, to
// the dry total.
func (r Result) WetTotalAt(catalog Catalog, t float64) (massprop.MassProperty, error) {
	model, err := catalog.Lookup(r.Motor.Name)
	if err != nil {
		return massprop.MassProperty{}, err
	}
	m, err := model.MassAt(t)
	if err != nil {
		return massprop.MassProperty{}, fmt.Errorf("motor %s at t=%g: %w", r.Motor.Name, t, err)
	}
	wet, err := massprop.Aggregate([]massprop.MassProperty{r.DryTotal, m.Translate(massprop.OnAxis(r.Motor.Position))})
	if err != nil {
		return massprop.MassProperty{}, err
	}
	return wet, nil
}

// WetMarginAt is the static margin with the motor included at time t.
func (r Result) WetMarginAt(catalog Catalog, t float64) (float64, error) {
	wet, err := r.WetTotalAt(catalog, t)
	if err != nil {
		return 0, err
	}
	return margin(r.CP, wet.CG.X, r.TotalLength, r.TubeRadius), nil
}
