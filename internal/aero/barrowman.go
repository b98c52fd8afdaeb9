// Package aero estimates the center of pressure of a finned slender body with
// the Barrowman method.
package aero

import (
	"fmt"
	"math"

	"github.com/san-kum/airframe/internal/fins"
	"github.com/san-kum/airframe/internal/massprop"
	"github.com/san-kum/airframe/internal/parts"
)

const (
	DefaultMach = 0.3

	// finEfficiency is the empirical span efficiency in the fin lift slope.
	finEfficiency = 0.95
)

// Contribution is one component's normal-force coefficient slope (per radian)
// and the axial station where it acts, tail = 0.
type Contribution struct {
	Name     string
	CNAlpha  float64
	Position float64
}

// NoseNormalForceSlope returns CNα for a nosecone profile family.
func NoseNormalForceSlope(kind parts.NoseconeKind) (float64, error) {
	switch kind {
	case parts.Conical, parts.VonKarman, parts.LVHaack, parts.Ogive, parts.PowerSeries:
		return 2.0, nil
	default:
		return 0, massprop.NewComponentError("nosecone", "kind", float64(kind),
			fmt.Errorf("%w: %s", massprop.ErrUnsupportedGeometryKind, kind))
	}
}

// NoseContribution places the nose lift at two thirds of the nose length aft
// of the tip, which sits at totalLength.
func NoseContribution(kind parts.NoseconeKind, noseLength, totalLength float64) (Contribution, error) {
	cna, err := NoseNormalForceSlope(kind)
	if err != nil {
		return Contribution{}, err
	}
	if !(noseLength > 0) || noseLength > totalLength {
		return Contribution{}, massprop.NewComponentError("nosecone", "length", noseLength, massprop.ErrDegenerateMassModel)
	}
	return Contribution{
		Name:     "nosecone",
		CNAlpha:  cna,
		Position: totalLength - (2.0/3.0)*noseLength,
	}, nil
}

func compressibility(mach float64) float64 {
	if mach < 1 {
		return 1
	}
	return math.Sqrt(mach*mach - 1)
}

// FinLiftSlope is the compressibility-corrected lift slope of one fin.
func FinLiftSlope(pf fins.Planform, mach float64) float64 {
	ar := pf.AspectRatio()
	k := ar * compressibility(mach) / finEfficiency
	return 2 * math.Pi * ar / (2 + math.Sqrt(4+k*k))
}

// FinACOffset is the aerodynamic center measured aft of the root leading edge.
func FinACOffset(pf fins.Planform) float64 {
	cr, ct := pf.RootChord(), pf.TipChord()
	sum := cr + ct
	return (cr/3)*(cr+2*ct)/sum + (sum-cr*ct/sum)/6
}

// FinContribution returns the lift of count fins whose root leading edge is at
// rootLE. The reference area is the body cross-section.
func FinContribution(pf fins.Planform, count int, tubeRadius, rootLE, mach float64) (Contribution, error) {
	if !(pf.Area() > 0) || math.IsInf(pf.Area(), 0) {
		return Contribution{}, massprop.NewComponentError("fins", "planform", pf.Area(), massprop.ErrInvalidFinGeometry)
	}
	if count <= 0 {
		return Contribution{}, massprop.NewComponentError("fins", "count", float64(count), massprop.ErrInvalidFinGeometry)
	}
	if !(tubeRadius > 0) {
		return Contribution{}, massprop.NewComponentError("fins", "tube_radius", tubeRadius, massprop.ErrInvalidFinGeometry)
	}
	if mach < 0 || math.IsNaN(mach) {
		return Contribution{}, massprop.NewComponentError("fins", "mach", mach, massprop.ErrInvalidFinGeometry)
	}
	ref := math.Pi * tubeRadius * tubeRadius
	return Contribution{
		Name:     "fins",
		CNAlpha:  float64(count) * FinLiftSlope(pf, mach) * pf.Area() / ref,
		Position: rootLE - FinACOffset(pf),
	}, nil
}

// Combine returns the CNα-weighted center of pressure of the contributions.
func Combine(cs ...Contribution) (float64, error) {
	var total, moment float64
	for _, c := range cs {
		if math.IsNaN(c.Position) || math.IsInf(c.Position, 0) || math.IsNaN(c.CNAlpha) || math.IsInf(c.CNAlpha, 0) {
			return 0, fmt.Errorf("%w: %s contribution CNα %g at %g", massprop.ErrUndefinedCenterOfPressure, c.Name, c.CNAlpha, c.Position)
		}
		total += c.CNAlpha
		moment += c.CNAlpha * c.Position
	}
	if total == 0 || math.IsNaN(total) {
		return 0, fmt.Errorf("%w: total CNα %g over %d components", massprop.ErrUndefinedCenterOfPressure, total, len(cs))
	}
	return moment / total, nil
}

// Estimate describes the surfaces for EstimateCP. Positions are tail = 0.
type Estimate struct {
	Nose        parts.NoseconeKind
	NoseLength  float64
	TotalLength float64
	Planform    fins.Planform
	FinCount    int
	TubeRadius  float64
	FinRootLE   float64
	Mach        float64 // zero means DefaultMach
}

// EstimateCP combines nose and fin contributions into one center of pressure.
func EstimateCP(e Estimate) (float64, []Contribution, error) {
	mach := e.Mach
	if mach == 0 {
		mach = DefaultMach
	}
	nose, err := NoseContribution(e.Nose, e.NoseLength, e.TotalLength)
	if err != nil {
		return 0, nil, err
	}
	fin, err := FinContribution(e.Planform, e.FinCount, e.TubeRadius, e.FinRootLE, mach)
	if err != nil {
		return 0, nil, err
	}
	cp, err := Combine(nose, fin)
	if err != nil {
		return 0, nil, err
	}
	return cp, []Contribution{nose, fin}, nil
}
