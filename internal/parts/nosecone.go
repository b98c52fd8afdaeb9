package parts

import (
	"fmt"
	"math"

	"github.com/san-kum/airframe/internal/massprop"
)

type Nosecone struct {
	Kind      NoseconeKind
	Length    float64
	Radius    float64 // outer radius at the shoulder
	Thickness float64
	Power     float64 // power-series exponent, ignored by other kinds
	Material  Material
}

// profile returns the shell volume and the centroid distance from the tip as a
// fraction of the length. The wall is the difference of two similar solids of
// revolution at the outer and inner radius.
func (n Nosecone) profile() (volume, cgFraction float64, err error) {
	ro, ri := n.Radius, n.Radius-n.Thickness
	annulus := ro*ro - ri*ri
	L := n.Length

	switch n.Kind {
	case LVHaack:
		return math.Pi * annulus * L / 3, 0.437, nil
	case VonKarman:
		return math.Pi * annulus * L / 3, 0.466, nil
	case Conical:
		return math.Pi * annulus * L / 3, 0.75, nil
	case Ogive:
		return (math.Pi * L / 6) * (3*annulus + L*L/4), 0.466, nil
	case PowerSeries:
		p := n.Power
		if p <= 0 || math.IsNaN(p) {
			return 0, 0, massprop.NewComponentError("nosecone", "power", p, massprop.ErrUnsupportedGeometryKind)
		}
		return math.Pi * annulus * L / (2*p + 1), (2*p + 1) / (2*p + 3), nil
	default:
		return 0, 0, massprop.NewComponentError("nosecone", "kind", float64(n.Kind),
			fmt.Errorf("%w: %s", massprop.ErrUnsupportedGeometryKind, n.Kind))
	}
}

// CentroidFraction is the CG distance from the tip divided by the length.
func (n Nosecone) CentroidFraction() (float64, error) {
	_, f, err := n.profile()
	return f, err
}

// NoseconeMass models the nosecone with its tip at tip (tail = 0, so the
// shoulder sits at tip − Length). The nosecone is carried as a point mass.
func NoseconeMass(n Nosecone, tip float64) (massprop.MassProperty, error) {
	if err := checkShell("nosecone", n.Length, n.Radius, n.Thickness); err != nil {
		return massprop.MassProperty{}, err
	}
	rho, err := n.Material.Density()
	if err != nil {
		return massprop.MassProperty{}, massprop.NewComponentError("nosecone", "material", float64(n.Material), err)
	}
	volume, frac, err := n.profile()
	if err != nil {
		return massprop.MassProperty{}, err
	}
	return massprop.PointMass(volume*rho, massprop.OnAxis(tip-frac*n.Length)), nil
}

func checkShell(component string, length, radius, thickness float64) error {
	switch {
	case !(length > 0):
		return massprop.NewComponentError(component, "length", length, massprop.ErrDegenerateMassModel)
	case !(radius > 0):
		return massprop.NewComponentError(component, "radius", radius, massprop.ErrDegenerateMassModel)
	case thickness < 0 || thickness > radius || math.IsNaN(thickness):
		return massprop.NewComponentError(component, "thickness", thickness, massprop.ErrDegenerateMassModel)
	}
	return nil
}
