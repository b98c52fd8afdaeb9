package parts

import (
	"fmt"
	"strings"

	"github.com/san-kum/airframe/internal/massprop"
)

type Material int

const (
	Aluminum Material = iota
	CarbonFiber
	Fiberglass
)

var materialNames = map[Material]string{
	Aluminum:    "aluminum",
	CarbonFiber: "carbon_fiber",
	Fiberglass:  "fiberglass",
}

func (m Material) String() string {
	if name, ok := materialNames[m]; ok {
		return name
	}
	return fmt.Sprintf("material(%d)", int(m))
}

// Density returns the bulk density in kg/m³.
func (m Material) Density() (float64, error) {
	switch m {
	case Aluminum:
		return 2700, nil // 6061-T6
	case CarbonFiber:
		return 1600, nil // carbon fiber / epoxy
	case Fiberglass:
		return 1850, nil // fiberglass / epoxy
	default:
		return 0, fmt.Errorf("%w: %s", massprop.ErrUnsupportedGeometryKind, m)
	}
}

func ParseMaterial(name string) (Material, error) {
	return parseEnum(name, materialNames, "material")
}

type NoseconeKind int

const (
	VonKarman NoseconeKind = iota
	Conical
	Ogive
	LVHaack
	PowerSeries
)

var noseconeNames = map[NoseconeKind]string{
	VonKarman:   "von_karman",
	Conical:     "conical",
	Ogive:       "ogive",
	LVHaack:     "lv_haack",
	PowerSeries: "power_series",
}

func (k NoseconeKind) String() string {
	if name, ok := noseconeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("nosecone(%d)", int(k))
}

func ParseNoseconeKind(name string) (NoseconeKind, error) {
	return parseEnum(name, noseconeNames, "nosecone kind")
}

type TailKind int

const (
	NoTail TailKind = iota
	ConicalTail
)

var tailNames = map[TailKind]string{
	NoTail:      "none",
	ConicalTail: "conical",
}

func (k TailKind) String() string {
	if name, ok := tailNames[k]; ok {
		return name
	}
	return fmt.Sprintf("tail(%d)", int(k))
}

func ParseTailKind(name string) (TailKind, error) {
	if strings.TrimSpace(name) == "" {
		return NoTail, nil
	}
	return parseEnum(name, tailNames, "tail kind")
}

type FinAirfoil int

const (
	FlatPlate FinAirfoil = iota
	Diamond
)

var airfoilNames = map[FinAirfoil]string{
	FlatPlate: "flat_plate",
	Diamond:   "diamond",
}

func (a FinAirfoil) String() string {
	if name, ok := airfoilNames[a]; ok {
		return name
	}
	return fmt.Sprintf("airfoil(%d)", int(a))
}

func ParseFinAirfoil(name string) (FinAirfoil, error) {
	if strings.TrimSpace(name) == "" {
		return FlatPlate, nil
	}
	return parseEnum(name, airfoilNames, "fin airfoil")
}

// sectionFactor is the cross-section area of the airfoil relative to a
// rectangle of the same chord and thickness.
func (a FinAirfoil) sectionFactor() (float64, error) {
	switch a {
	case FlatPlate:
		return 1.0, nil
	case Diamond:
		return 0.5, nil
	default:
		return 0, fmt.Errorf("%w: %s", massprop.ErrUnsupportedGeometryKind, a)
	}
}

// Standard airframe tube outer diameters in meters.
const (
	Tube4p5In = 0.1143
	Tube5p5In = 0.1397
	Tube6p0In = 0.1524
)

var tubeNames = map[string]float64{
	"4.5in": Tube4p5In,
	"5.5in": Tube5p5In,
	"6.0in": Tube6p0In,
}

// ParseTubeDiameter resolves a standard tube name such as "5.5in" to its outer
// diameter in meters.
func ParseTubeDiameter(name string) (float64, error) {
	d, ok := tubeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: tube diameter %q", massprop.ErrUnsupportedGeometryKind, name)
	}
	return d, nil
}

func parseEnum[K comparable](name string, names map[K]string, what string) (K, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for k, v := range names {
		if v == key || strings.ReplaceAll(v, "_", "") == key {
			return k, nil
		}
	}
	var zero K
	return zero, fmt.Errorf("%w: %s %q", massprop.ErrUnsupportedGeometryKind, what, name)
}
