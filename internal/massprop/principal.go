package massprop

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Principal returns the principal moments of t in ascending order.
func Principal(t Tensor) ([3]float64, error) {
	sym := mat.NewSymDense(3, []float64{
		t[0][0], t[0][1], t[0][2],
		t[1][0], t[1][1], t[1][2],
		t[2][0], t[2][1], t[2][2],
	})

	var es mat.EigenSym
	if ok := es.Factorize(sym, false); !ok {
		return [3]float64{}, fmt.Errorf("%w: eigen decomposition failed", ErrDegenerateMassModel)
	}
	vals := es.Values(nil)
	return [3]float64{vals[0], vals[1], vals[2]}, nil
}

// IsPositiveSemiDefinite reports whether every principal moment of t is
// non-negative to within tol relative to the largest moment.
func IsPositiveSemiDefinite(t Tensor, tol float64) bool {
	if !t.IsSymmetric(symmetryTol(t)) {
		return false
	}
	vals, err := Principal(t)
	if err != nil {
		return false
	}
	scale := math.Max(math.Abs(vals[2]), 1)
	return vals[0] >= -tol*scale
}
