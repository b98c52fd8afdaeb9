package massprop

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Tensor is a 3×3 inertia tensor stored row-major. It is a value type: every
// operation returns a new Tensor.
type Tensor [3][3]float64

// Diag returns a tensor with the given principal moments on its diagonal.
func Diag(xx, yy, zz float64) Tensor {
	var t Tensor
	t[0][0], t[1][1], t[2][2] = xx, yy, zz
	return t
}

// Mat copies the tensor into a freshly allocated r3.Mat.
func (t Tensor) Mat() *r3.Mat {
	return r3.NewMat([]float64{
		t[0][0], t[0][1], t[0][2],
		t[1][0], t[1][1], t[1][2],
		t[2][0], t[2][1], t[2][2],
	})
}

func tensorOf(m *r3.Mat) Tensor {
	var t Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = m.At(i, j)
		}
	}
	return t
}

func (t Tensor) Diagonal() [3]float64 {
	return [3]float64{t[0][0], t[1][1], t[2][2]}
}

func (t Tensor) IsZero() bool {
	return t == Tensor{}
}

func (t Tensor) IsSymmetric(tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(t[i][j]-t[j][i]) > tol {
				return false
			}
		}
	}
	return true
}

func (t Tensor) IsValid() bool {
	for i := range t {
		for _, v := range t[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// MassProperty is the mass, center of gravity and inertia tensor (about the
// CG, body-aligned axes) of one rigid part or of a composite.
type MassProperty struct {
	Mass    float64
	CG      r3.Vec
	Inertia Tensor
}

// OnAxis returns a body-frame point on the longitudinal axis.
func OnAxis(x float64) r3.Vec {
	return r3.Vec{X: x}
}

// PointMass returns a record with no rotational inertia about its own CG.
func PointMass(mass float64, cg r3.Vec) MassProperty {
	return MassProperty{Mass: mass, CG: cg}
}

// Zero returns a massless record located at cg.
func Zero(cg r3.Vec) MassProperty {
	return MassProperty{CG: cg}
}

// Translate returns a copy of p moved by offset. Inertia about the CG is
// unchanged by a pure translation.
func (p MassProperty) Translate(offset r3.Vec) MassProperty {
	p.CG = r3.Add(p.CG, offset)
	return p
}

// Validate checks the record invariants: finite values, non-negative mass,
// a symmetric tensor, and a zero tensor whenever the mass is zero.
func (p MassProperty) Validate() error {
	if math.IsNaN(p.Mass) || math.IsInf(p.Mass, 0) {
		return fmt.Errorf("%w: mass is not finite", ErrDegenerateMassModel)
	}
	if p.Mass < 0 {
		return fmt.Errorf("%w: negative mass %g", ErrDegenerateMassModel, p.Mass)
	}
	for _, c := range []float64{p.CG.X, p.CG.Y, p.CG.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: cg is not finite", ErrDegenerateMassModel)
		}
	}
	if !p.Inertia.IsValid() {
		return fmt.Errorf("%w: inertia is not finite", ErrDegenerateMassModel)
	}
	if !p.Inertia.IsSymmetric(symmetryTol(p.Inertia)) {
		return fmt.Errorf("%w: inertia tensor is not symmetric", ErrDegenerateMassModel)
	}
	if p.Mass == 0 && !p.Inertia.IsZero() {
		return fmt.Errorf("%w: massless part carries inertia", ErrDegenerateMassModel)
	}
	return nil
}

func symmetryTol(t Tensor) float64 {
	scale := 0.0
	for i := range t {
		for _, v := range t[i] {
			scale = math.Max(scale, math.Abs(v))
		}
	}
	return 1e-12 * math.Max(scale, 1)
}
