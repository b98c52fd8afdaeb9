package parts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/airframe/internal/fins"
	"github.com/san-kum/airframe/internal/massprop"
)

type FinSet struct {
	Count     int
	Planform  fins.Planform
	Thickness float64
	Airfoil   FinAirfoil
	Material  Material
}

// FinSetMass places Count fins evenly in roll around a tube of tubeRadius with
// their root leading edges at rootLE. Chordwise offsets run aft, toward the
// tail. Each fin is a point mass at its planform centroid; the radial spread
// gives the set its roll and pitch inertia.
func FinSetMass(fs FinSet, rootLE, tubeRadius float64) (massprop.MassProperty, error) {
	if fs.Count <= 0 {
		return massprop.MassProperty{}, massprop.NewComponentError("fins", "count", float64(fs.Count), massprop.ErrInvalidFinGeometry)
	}
	if fs.Thickness < 0 || math.IsNaN(fs.Thickness) {
		return massprop.MassProperty{}, massprop.NewComponentError("fins", "thickness", fs.Thickness, massprop.ErrDegenerateMassModel)
	}
	chordwise, spanwise := fs.Planform.Centroid()
	x := rootLE - chordwise
	if fs.Thickness == 0 {
		return massprop.Zero(massprop.OnAxis(x)), nil
	}

	rho, err := fs.Material.Density()
	if err != nil {
		return massprop.MassProperty{}, massprop.NewComponentError("fins", "material", float64(fs.Material), err)
	}
	section, err := fs.Airfoil.sectionFactor()
	if err != nil {
		return massprop.MassProperty{}, massprop.NewComponentError("fins", "airfoil", float64(fs.Airfoil), err)
	}

	perFin := fs.Planform.Area() * fs.Thickness * section * rho
	r := tubeRadius + spanwise
	each := make([]massprop.MassProperty, fs.Count)
	for i := range each {
		phi := 2 * math.Pi * float64(i) / float64(fs.Count)
		each[i] = massprop.PointMass(perFin, r3.Vec{X: x, Y: r * math.Cos(phi), Z: r * math.Sin(phi)})
	}

	set, err := massprop.Aggregate(each)
	if err != nil {
		return massprop.MassProperty{}, fmt.Errorf("fins: %w", err)
	}
	// Evenly spaced fins are balanced in roll; drop the rounding residue.
	if fs.Count > 1 {
		set.CG.Y, set.CG.Z = 0, 0
	}
	return set, nil
}
