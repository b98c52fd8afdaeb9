// Package fins derives trapezoidal fin planforms from area, aspect ratio and
// taper constraints.
package fins

import (
	"math"

	"github.com/san-kum/airframe/internal/massprop"
)

// Planform is a solved trapezoidal fin. The tip leading edge is swept aft of
// the root leading edge by SweepLength, which keeps the trailing edge
// perpendicular to the body. Fields are derived and read through accessors.
type Planform struct {
	span        float64
	rootChord   float64
	tipChord    float64
	sweepLength float64
	sweepAngle  float64
}

// Solve inverts area, aspect ratio and taper into a single-fin planform.
// totalArea is the planform area of all fins combined.
func Solve(totalArea float64, count int, aspectRatio, taperRatio float64) (Planform, error) {
	switch {
	case count <= 0:
		return Planform{}, massprop.NewComponentError("fins", "count", float64(count), massprop.ErrInvalidFinGeometry)
	case !(totalArea > 0) || math.IsInf(totalArea, 0):
		return Planform{}, massprop.NewComponentError("fins", "total_area", totalArea, massprop.ErrInvalidFinGeometry)
	case !(aspectRatio > 0) || math.IsInf(aspectRatio, 0):
		return Planform{}, massprop.NewComponentError("fins", "aspect_ratio", aspectRatio, massprop.ErrInvalidFinGeometry)
	case !(taperRatio > 0 && taperRatio <= 1):
		return Planform{}, massprop.NewComponentError("fins", "taper_ratio", taperRatio, massprop.ErrInvalidFinGeometry)
	}

	area := totalArea / float64(count)
	span := math.Sqrt(aspectRatio * area)
	avgChord := area / span
	root := 2 * avgChord / (1 + taperRatio)
	tip := taperRatio * root

	return newPlanform(span, root, tip), nil
}

// NewPlanform builds a planform from explicit dimensions.
func NewPlanform(span, rootChord, tipChord float64) (Planform, error) {
	switch {
	case !(span > 0):
		return Planform{}, massprop.NewComponentError("fins", "span", span, massprop.ErrInvalidFinGeometry)
	case !(rootChord > 0):
		return Planform{}, massprop.NewComponentError("fins", "root_chord", rootChord, massprop.ErrInvalidFinGeometry)
	case !(tipChord >= 0) || tipChord > rootChord:
		return Planform{}, massprop.NewComponentError("fins", "tip_chord", tipChord, massprop.ErrInvalidFinGeometry)
	}
	return newPlanform(span, rootChord, tipChord), nil
}

func newPlanform(span, root, tip float64) Planform {
	sweep := root - tip
	return Planform{
		span:        span,
		rootChord:   root,
		tipChord:    tip,
		sweepLength: sweep,
		sweepAngle:  math.Atan2(sweep, span),
	}
}

func (p Planform) Span() float64        { return p.span }
func (p Planform) RootChord() float64   { return p.rootChord }
func (p Planform) TipChord() float64    { return p.tipChord }
func (p Planform) SweepLength() float64 { return p.sweepLength }

// SweepAngle is the leading-edge sweep in radians.
func (p Planform) SweepAngle() float64 { return p.sweepAngle }

func (p Planform) SweepAngleDegrees() float64 {
	return p.sweepAngle * 180 / math.Pi
}

// Area is the planform area of one fin.
func (p Planform) Area() float64 {
	return 0.5 * (p.rootChord + p.tipChord) * p.span
}

func (p Planform) AspectRatio() float64 {
	a := p.Area()
	if a == 0 {
		return 0
	}
	return p.span * p.span / a
}

// Centroid returns the area centroid of the planform: chordwise measured aft
// from the root leading edge, spanwise measured outward from the root.
func (p Planform) Centroid() (chordwise, spanwise float64) {
	cr, ct, a := p.rootChord, p.tipChord, p.sweepLength
	sum := cr + ct
	if sum == 0 {
		return 0, 0
	}
	chordwise = (cr*cr + cr*ct + ct*ct + a*(cr+2*ct)) / (3 * sum)
	spanwise = p.span * (cr + 2*ct) / (3 * sum)
	return chordwise, spanwise
}
