package parts

import (
	"math"

	"github.com/san-kum/airframe/internal/massprop"
)

// Bay is an internal volume carried as a point mass.
type Bay struct {
	Name   string
	Mass   float64
	Volume float64
}

// BayLength is the tube length needed to hold volume at the given radius.
func BayLength(volume, radius float64) float64 {
	return volume / (math.Pi * radius * radius)
}

// StackBays places bays contiguously aft of top (the nosecone shoulder), the
// first bay directly behind it. It returns one record per bay and the axial
// station of the aft face of the last bay.
func StackBays(top, radius float64, bays ...Bay) ([]massprop.MassProperty, float64, error) {
	if !(radius > 0) {
		return nil, top, massprop.NewComponentError("bays", "radius", radius, massprop.ErrDegenerateMassModel)
	}
	out := make([]massprop.MassProperty, 0, len(bays))
	x := top
	for _, b := range bays {
		if b.Mass < 0 || math.IsNaN(b.Mass) {
			return nil, top, massprop.NewComponentError(b.Name, "mass", b.Mass, massprop.ErrDegenerateMassModel)
		}
		if b.Volume < 0 || math.IsNaN(b.Volume) {
			return nil, top, massprop.NewComponentError(b.Name, "volume", b.Volume, massprop.ErrDegenerateMassModel)
		}
		L := BayLength(b.Volume, radius)
		out = append(out, massprop.PointMass(b.Mass, massprop.OnAxis(x-0.5*L)))
		x -= L
	}
	return out, x, nil
}

// CouplerMass places the coupler at the lower/upper fuselage junction.
func CouplerMass(mass, junction float64) (massprop.MassProperty, error) {
	return pointAt("coupler", mass, junction)
}

// PropulsionStructMass centers the propulsion structure on a section of the
// given length whose aft end is at start.
func PropulsionStructMass(mass, start, length float64) (massprop.MassProperty, error) {
	if length < 0 {
		return massprop.MassProperty{}, massprop.NewComponentError("propulsion_struct", "length", length, massprop.ErrDegenerateMassModel)
	}
	return pointAt("propulsion_struct", mass, start+0.5*length)
}

func pointAt(name string, mass, x float64) (massprop.MassProperty, error) {
	if mass < 0 || math.IsNaN(mass) {
		return massprop.MassProperty{}, massprop.NewComponentError(name, "mass", mass, massprop.ErrDegenerateMassModel)
	}
	return massprop.PointMass(mass, massprop.OnAxis(x)), nil
}
