// Package optim sizes a single design variable against a static margin
// requirement.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/airframe/internal/sweep"
	"github.com/san-kum/airframe/internal/vehicle"
)

var ErrNotBracketed = errors.New("target not reached within bounds")

const (
	DefaultTolerance = 1e-5
	defaultMaxIter   = 100
)

// Func maps a variable value to the quantity being sized.
type Func func(ctx context.Context, v float64) (float64, error)

// Bisect returns the smallest v in [lo, hi] with f(v) >= target, to within
// tol, assuming f is non-decreasing. When f(lo) already meets the target lo
// is returned.
func Bisect(ctx context.Context, f Func, lo, hi, target, tol float64) (float64, error) {
	if !(hi > lo) {
		return 0, fmt.Errorf("invalid bounds [%g, %g]", lo, hi)
	}
	if !(tol > 0) {
		tol = DefaultTolerance
	}

	fl, err := f(ctx, lo)
	if err != nil {
		return 0, fmt.Errorf("evaluate %g: %w", lo, err)
	}
	if fl >= target {
		return lo, nil
	}
	fh, err := f(ctx, hi)
	if err != nil {
		return 0, fmt.Errorf("evaluate %g: %w", hi, err)
	}
	if fh < target {
		return 0, fmt.Errorf("%w: %g at %g, want %g", ErrNotBracketed, fh, hi, target)
	}

	for i := 0; i < defaultMaxIter && hi-lo > tol; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		mid := lo + (hi-lo)/2
		fm, err := f(ctx, mid)
		if err != nil {
			return 0, fmt.Errorf("evaluate %g: %w", mid, err)
		}
		if fm >= target {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, nil
}

// Sizing finds the smallest value of one registry parameter that gives the
// base design at least MinMargin calibers of dry static margin.
type Sizing struct {
	Param     string
	Lo, Hi    float64
	MinMargin float64
	Mach      float64
	Tol       float64
	Registry  *sweep.Registry
}

type Sized struct {
	Value  float64
	Result vehicle.Result
	Evals  int
}

func (s Sizing) Run(ctx context.Context, base vehicle.Design) (Sized, error) {
	reg := s.Registry
	if reg == nil {
		reg = sweep.NewRegistry()
	}
	if !reg.Has(s.Param) {
		return Sized{}, fmt.Errorf("unknown parameter: %s", s.Param)
	}

	evals := 0
	synth := func(v float64) (vehicle.Result, error) {
		evals++
		d := base
		if err := reg.Apply(&d, s.Param, v); err != nil {
			return vehicle.Result{}, err
		}
		veh, err := vehicle.Derive(d)
		if err != nil {
			return vehicle.Result{}, err
		}
		return vehicle.Synthesize(veh, s.Mach)
	}
	margin := func(_ context.Context, v float64) (float64, error) {
		r, err := synth(v)
		if err != nil {
			return math.NaN(), err
		}
		return r.StaticMargin, nil
	}

	v, err := Bisect(ctx, margin, s.Lo, s.Hi, s.MinMargin, s.Tol)
	if err != nil {
		return Sized{Evals: evals}, fmt.Errorf("size %s: %w", s.Param, err)
	}
	r, err := synth(v)
	if err != nil {
		return Sized{Evals: evals}, err
	}
	return Sized{Value: v, Result: r, Evals: evals}, nil
}
