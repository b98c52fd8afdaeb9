package massprop

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Aggregate combines parts into one rigid body using the parallel-axis
// theorem. The result does not depend on the order of parts beyond
// floating-point rounding, and Aggregate(a, b, c) matches
// Aggregate(Aggregate(a, b), c).
//
// Massless parts contribute nothing and are skipped. A single massive part is
// returned unchanged. An empty list, or one with no mass at all, is an
// ErrDegenerateMassModel.
func Aggregate(parts []MassProperty) (MassProperty, error) {
	massive := make([]MassProperty, 0, len(parts))
	for i, p := range parts {
		if err := p.Validate(); err != nil {
			return MassProperty{}, NewComponentError(fmt.Sprintf("part[%d]", i), "mass", p.Mass, err)
		}
		if p.Mass > 0 {
			massive = append(massive, p)
		}
	}
	if len(massive) == 0 {
		return MassProperty{}, fmt.Errorf("%w: %d parts, no positive mass", ErrDegenerateMassModel, len(parts))
	}
	if len(massive) == 1 {
		return massive[0], nil
	}

	total := 0.0
	var moment r3.Vec
	for _, p := range massive {
		total += p.Mass
		moment = r3.Add(moment, r3.Scale(p.Mass, p.CG))
	}
	cg := r3.Vec{X: moment.X / total, Y: moment.Y / total, Z: moment.Z / total}

	acc := r3.NewMat(nil)
	for _, p := range massive {
		acc.Add(acc, shiftedInertia(p, cg))
	}

	return MassProperty{Mass: total, CG: cg, Inertia: tensorOf(acc)}, nil
}

// shiftedInertia returns I + m·(|d|²·E − d⊗d), the inertia of p about ref.
func shiftedInertia(p MassProperty, ref r3.Vec) *r3.Mat {
	d := r3.Sub(p.CG, ref)

	shift := r3.Eye()
	shift.Scale(p.Mass*r3.Dot(d, d), shift)

	outer := r3.NewMat(nil)
	outer.Outer(p.Mass, d, d)

	shift.Sub(shift, outer)
	shift.Add(shift, p.Inertia.Mat())
	return shift
}

// InertiaAbout returns the inertia of p about an arbitrary reference point,
// keeping body-aligned axes.
func InertiaAbout(p MassProperty, ref r3.Vec) Tensor {
	return tensorOf(shiftedInertia(p, ref))
}
