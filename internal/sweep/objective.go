package sweep

import (
	"math"

	"github.com/san-kum/airframe/internal/vehicle"
)

// Objective scores a synthesized design; lower is better.
type Objective interface {
	Name() string
	Score(r vehicle.Result, minMargin float64) (score float64, feasible bool)
}

// MinimizeMass prefers the lightest dry vehicle that meets the minimum margin.
type MinimizeMass struct{}

func (MinimizeMass) Name() string { return "mass" }

func (MinimizeMass) Score(r vehicle.Result, minMargin float64) (float64, bool) {
	return r.DryTotal.Mass, r.Stable(minMargin)
}

// TargetMargin prefers the static margin closest to Target.
type TargetMargin struct {
	Target float64
}

func (TargetMargin) Name() string { return "margin" }

func (t TargetMargin) Score(r vehicle.Result, minMargin float64) (float64, bool) {
	return math.Abs(r.StaticMargin - t.Target), r.Stable(minMargin)
}
