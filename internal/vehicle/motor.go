package vehicle

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/airframe/internal/massprop"
)

var ErrUnknownMotor = errors.New("vehicle: unknown motor")

// MotorModel reports motor mass properties at time t after ignition, in motor
// coordinates: nozzle exit at x = 0, increasing toward the forward closure.
type MotorModel interface {
	MassAt(t float64) (massprop.MassProperty, error)
}

// Catalog maps motor names to models. Callers build and pass their own.
type Catalog map[string]MotorModel

func (c Catalog) Lookup(name string) (MotorModel, error) {
	m, ok := c[name]
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMotor, name)
	}
	return m, nil
}

func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// StaticMotor has the same properties at every time.
type StaticMotor struct {
	Props massprop.MassProperty
}

func (s StaticMotor) MassAt(float64) (massprop.MassProperty, error) {
	if err := s.Props.Validate(); err != nil {
		return massprop.MassProperty{}, err
	}
	return s.Props, nil
}

// MotorSample is one tabulated point of a motor's mass history. Inertia is
// about the sample CG.
type MotorSample struct {
	T    float64
	Mass float64
	CG   float64
	Ixx  float64
	Iyy  float64
}

// SampledMotor interpolates caller-supplied samples linearly in time and holds
// the end values outside the tabulated range.
type SampledMotor struct {
	samples []MotorSample
}

func NewSampledMotor(samples []MotorSample) (*SampledMotor, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: motor has no samples", massprop.ErrDegenerateMassModel)
	}
	s := make([]MotorSample, len(samples))
	copy(s, samples)
	sort.Slice(s, func(i, j int) bool { return s[i].T < s[j].T })
	for i, p := range s {
		if i > 0 && p.T == s[i-1].T {
			return nil, massprop.NewComponentError("motor", "t", p.T,
				fmt.Errorf("%w: duplicate sample time", massprop.ErrDegenerateMassModel))
		}
		if p.Mass < 0 || p.Ixx < 0 || p.Iyy < 0 || math.IsNaN(p.Mass+p.CG+p.Ixx+p.Iyy) {
			return nil, massprop.NewComponentError("motor", "mass", p.Mass, massprop.ErrDegenerateMassModel)
		}
	}
	return &SampledMotor{samples: s}, nil
}

func (m *SampledMotor) BurnTime() float64 {
	return m.samples[len(m.samples)-1].T - m.samples[0].T
}

func (m *SampledMotor) MassAt(t float64) (massprop.MassProperty, error) {
	if math.IsNaN(t) {
		return massprop.MassProperty{}, massprop.NewComponentError("motor", "t", t, massprop.ErrDegenerateMassModel)
	}
	s := m.samples
	i := sort.Search(len(s), func(i int) bool { return s[i].T >= t })
	var p MotorSample
	switch {
	case i == 0:
		p = s[0]
	case i == len(s):
		p = s[len(s)-1]
	default:
		a, b := s[i-1], s[i]
		f := (t - a.T) / (b.T - a.T)
		p = MotorSample{
			T:    t,
			Mass: lerp(a.Mass, b.Mass, f),
			CG:   lerp(a.CG, b.CG, f),
			Ixx:  lerp(a.Ixx, b.Ixx, f),
			Iyy:  lerp(a.Iyy, b.Iyy, f),
		}
	}
	if p.Mass == 0 {
		return massprop.Zero(massprop.OnAxis(p.CG)), nil
	}
	return massprop.MassProperty{
		Mass:    p.Mass,
		CG:      massprop.OnAxis(p.CG),
		Inertia: massprop.Diag(p.Ixx, p.Iyy, p.Iyy),
	}, nil
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}
