package parts

import (
	"math"

	"github.com/san-kum/airframe/internal/massprop"
)

// Shell is a cylindrical fuselage segment.
type Shell struct {
	Length    float64
	Radius    float64
	Thickness float64
	Material  Material
}

// CylinderMass models a thin-walled tube whose aft end sits at start.
// A zero-length segment is a massless record at start.
func CylinderMass(name string, s Shell, start float64) (massprop.MassProperty, error) {
	if s.Length == 0 {
		return massprop.Zero(massprop.OnAxis(start)), nil
	}
	if err := checkShell(name, s.Length, s.Radius, s.Thickness); err != nil {
		return massprop.MassProperty{}, err
	}
	rho, err := s.Material.Density()
	if err != nil {
		return massprop.MassProperty{}, massprop.NewComponentError(name, "material", float64(s.Material), err)
	}

	ro, ri := s.Radius, s.Radius-s.Thickness
	L := s.Length
	m := math.Pi * (ro*ro - ri*ri) * L * rho

	ixx := 0.5 * m * (ro*ro + ri*ri)
	iyy := (1.0 / 12.0) * m * (3*(ro*ro+ri*ri) + L*L)

	return massprop.MassProperty{
		Mass:    m,
		CG:      massprop.OnAxis(start + 0.5*L),
		Inertia: massprop.Diag(ixx, iyy, iyy),
	}, nil
}

// Frustum is a conical boattail shell. TopRadius is at the fuselage junction,
// BottomRadius at the aft end.
type Frustum struct {
	Length       float64
	TopRadius    float64
	BottomRadius float64
	Thickness    float64
	Material     Material
}

// FrustumMass models the boattail with its aft face at start. A non-positive
// length is a massless record at start. The shell is carried as a point mass.
func FrustumMass(f Frustum, start float64) (massprop.MassProperty, error) {
	if f.Length <= 0 {
		return massprop.Zero(massprop.OnAxis(start)), nil
	}
	rb, rt := f.BottomRadius, f.TopRadius
	rbi, rti := rb-f.Thickness, rt-f.Thickness
	switch {
	case !(rt > 0):
		return massprop.MassProperty{}, massprop.NewComponentError("boattail", "top_radius", rt, massprop.ErrDegenerateMassModel)
	case f.Thickness < 0 || rbi < 0 || rti < 0:
		return massprop.MassProperty{}, massprop.NewComponentError("boattail", "thickness", f.Thickness, massprop.ErrDegenerateMassModel)
	}
	rho, err := f.Material.Density()
	if err != nil {
		return massprop.MassProperty{}, massprop.NewComponentError("boattail", "material", float64(f.Material), err)
	}

	// Solid frustum: V = πL/3·(a² + ab + b²); centroid from the a-face is
	// L·(a² + 2ab + 3b²) / (4·(a² + ab + b²)). The hollow shell is the outer
	// solid minus the inner one, measured here from the aft face.
	den := (rb*rb + rb*rt + rt*rt) - (rbi*rbi + rbi*rti + rti*rti)
	num := (rb*rb + 2*rb*rt + 3*rt*rt) - (rbi*rbi + 2*rbi*rti + 3*rti*rti)
	if den <= 0 {
		return massprop.Zero(massprop.OnAxis(start)), nil
	}

	m := (math.Pi * f.Length / 3) * den * rho
	return massprop.PointMass(m, massprop.OnAxis(start+f.Length*num/(4*den))), nil
}
