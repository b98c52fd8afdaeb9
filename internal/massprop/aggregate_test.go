package massprop_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/airframe/internal/massprop"
)

const relTol = 1e-9

func randomPart(rng *rand.Rand) massprop.MassProperty {
	var a [3][3]float64
	for i := range a {
		for j := range a[i] {
			a[i][j] = rng.Float64() - 0.5
		}
	}
	// A·Aᵀ is symmetric positive semi-definite.
	var t massprop.Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				t[i][j] += a[i][k] * a[j][k]
			}
		}
	}
	return massprop.MassProperty{
		Mass:    0.1 + 5*rng.Float64(),
		CG:      r3.Vec{X: 3 * rng.Float64(), Y: 0.1 * (rng.Float64() - 0.5), Z: 0.1 * (rng.Float64() - 0.5)},
		Inertia: t,
	}
}

func beClose(expected float64) OmegaMatcher {
	return BeNumerically("~", expected, relTol*math.Max(1, math.Abs(expected)))
}

func expectSame(got, want massprop.MassProperty) {
	ExpectWithOffset(1, got.Mass).To(beClose(want.Mass))
	ExpectWithOffset(1, got.CG.X).To(beClose(want.CG.X))
	ExpectWithOffset(1, got.CG.Y).To(beClose(want.CG.Y))
	ExpectWithOffset(1, got.CG.Z).To(beClose(want.CG.Z))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ExpectWithOffset(1, got.Inertia[i][j]).To(beClose(want.Inertia[i][j]))
		}
	}
}

var _ = Describe("Aggregate", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(7))
	})

	It("is independent of part order", func() {
		parts := make([]massprop.MassProperty, 6)
		for i := range parts {
			parts[i] = randomPart(rng)
		}
		want, err := massprop.Aggregate(parts)
		Expect(err).NotTo(HaveOccurred())

		for trial := 0; trial < 20; trial++ {
			shuffled := append([]massprop.MassProperty(nil), parts...)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			got, err := massprop.Aggregate(shuffled)
			Expect(err).NotTo(HaveOccurred())
			expectSame(got, want)
		}
	})

	It("is associative", func() {
		for trial := 0; trial < 20; trial++ {
			a, b, c := randomPart(rng), randomPart(rng), randomPart(rng)

			direct, err := massprop.Aggregate([]massprop.MassProperty{a, b, c})
			Expect(err).NotTo(HaveOccurred())

			ab, err := massprop.Aggregate([]massprop.MassProperty{a, b})
			Expect(err).NotTo(HaveOccurred())
			nested, err := massprop.Aggregate([]massprop.MassProperty{ab, c})
			Expect(err).NotTo(HaveOccurred())

			expectSame(nested, direct)
		}
	})

	It("treats a massless part as a no-op", func() {
		parts := []massprop.MassProperty{randomPart(rng), randomPart(rng), randomPart(rng)}
		want, err := massprop.Aggregate(parts)
		Expect(err).NotTo(HaveOccurred())

		withZero := append([]massprop.MassProperty{massprop.Zero(r3.Vec{X: 42})}, parts...)
		got, err := massprop.Aggregate(withZero)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	})

	It("returns a single part unchanged", func() {
		p := randomPart(rng)
		got, err := massprop.Aggregate([]massprop.MassProperty{p})
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(p))
	})

	It("places the composite CG at the mass-weighted centroid", func() {
		a := massprop.PointMass(1, massprop.OnAxis(0))
		b := massprop.PointMass(3, massprop.OnAxis(4))
		got, err := massprop.Aggregate([]massprop.MassProperty{a, b})
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Mass).To(beClose(4))
		Expect(got.CG.X).To(beClose(3))
		// Two point masses on X: Iyy = Izz = Σ m·d², Ixx = 0.
		Expect(got.Inertia[0][0]).To(beClose(0))
		Expect(got.Inertia[1][1]).To(beClose(1*9 + 3*1))
		Expect(got.Inertia[2][2]).To(beClose(12))
	})

	It("keeps the composite tensor symmetric positive semi-definite", func() {
		parts := make([]massprop.MassProperty, 10)
		for i := range parts {
			parts[i] = randomPart(rng)
		}
		got, err := massprop.Aggregate(parts)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Inertia.IsSymmetric(1e-12)).To(BeTrue())
		Expect(massprop.IsPositiveSemiDefinite(got.Inertia, 1e-12)).To(BeTrue())
	})

	DescribeTable("rejects degenerate inputs",
		func(parts []massprop.MassProperty) {
			_, err := massprop.Aggregate(parts)
			Expect(errors.Is(err, massprop.ErrDegenerateMassModel)).To(BeTrue())
		},
		Entry("empty list", []massprop.MassProperty{}),
		Entry("only massless parts", []massprop.MassProperty{massprop.Zero(massprop.OnAxis(1)), massprop.Zero(massprop.OnAxis(2))}),
		Entry("negative mass", []massprop.MassProperty{massprop.PointMass(-1, massprop.OnAxis(0)), massprop.PointMass(2, massprop.OnAxis(1))}),
		Entry("massless part with inertia", []massprop.MassProperty{{CG: massprop.OnAxis(0), Inertia: massprop.Diag(1, 1, 1)}}),
	)

	It("reports the offending part index", func() {
		_, err := massprop.Aggregate([]massprop.MassProperty{
			massprop.PointMass(1, massprop.OnAxis(0)),
			massprop.PointMass(math.NaN(), massprop.OnAxis(0)),
		})
		var ce *massprop.ComponentError
		Expect(errors.As(err, &ce)).To(BeTrue())
		Expect(ce.Component).To(Equal("part[1]"))
	})
})

var _ = Describe("Principal", func() {
	It("returns ascending principal moments of a diagonal tensor", func() {
		vals, err := massprop.Principal(massprop.Diag(3, 1, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(vals[0]).To(beClose(1))
		Expect(vals[1]).To(beClose(2))
		Expect(vals[2]).To(beClose(3))
	})

	It("flags indefinite tensors", func() {
		Expect(massprop.IsPositiveSemiDefinite(massprop.Diag(1, -1, 1), 1e-12)).To(BeFalse())
		Expect(massprop.IsPositiveSemiDefinite(massprop.Diag(1, 0, 1), 1e-12)).To(BeTrue())
	})
})

var _ = Describe("MassProperty", func() {
	It("translates without touching inertia", func() {
		p := massprop.MassProperty{Mass: 2, CG: massprop.OnAxis(1), Inertia: massprop.Diag(1, 2, 2)}
		moved := p.Translate(r3.Vec{X: 0.5})
		Expect(moved.CG.X).To(beClose(1.5))
		Expect(moved.Inertia).To(Equal(p.Inertia))
		Expect(p.CG.X).To(beClose(1))
	})

	It("shifts inertia to a reference point", func() {
		p := massprop.PointMass(2, massprop.OnAxis(1))
		got := massprop.InertiaAbout(p, massprop.OnAxis(0))
		Expect(got[1][1]).To(beClose(2))
		Expect(got[0][0]).To(beClose(0))
	})
})
