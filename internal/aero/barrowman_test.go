package aero

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/san-kum/airframe/internal/fins"
	"github.com/san-kum/airframe/internal/massprop"
	"github.com/san-kum/airframe/internal/parts"
)

func TestNoseContribution(t *testing.T) {
	nose, err := NoseContribution(parts.Conical, 0.55829, 2.0)
	if err != nil {
		t.Fatalf("nose contribution failed: %v", err)
	}
	if nose.CNAlpha != 2.0 {
		t.Errorf("expected CNα 2.0, got %f", nose.CNAlpha)
	}
	if math.Abs(nose.Position-1.6278) > 1e-4 {
		t.Errorf("expected nose cp 1.6278, got %f", nose.Position)
	}

	cp, err := Combine(nose, Contribution{Name: "fins", CNAlpha: 6.0, Position: 1.0})
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}
	if math.Abs(cp-1.1570) > 1e-3 {
		t.Errorf("expected composite cp 1.1570, got %f", cp)
	}
}

func TestNoseSlopeUnsupported(t *testing.T) {
	_, err := NoseNormalForceSlope(parts.NoseconeKind(42))
	if !errors.Is(err, massprop.ErrUnsupportedGeometryKind) {
		t.Errorf("expected ErrUnsupportedGeometryKind, got %v", err)
	}
}

func TestCombineUndefined(t *testing.T) {
	tests := []struct {
		name string
		cs   []Contribution
	}{
		{"no surfaces", nil},
		{"zero slopes", []Contribution{{CNAlpha: 0, Position: 1}, {CNAlpha: 0, Position: 2}}},
		{"cancelling slopes", []Contribution{{CNAlpha: 2, Position: 1}, {CNAlpha: -2, Position: 2}}},
		{"nan position", []Contribution{{Name: "nosecone", CNAlpha: 2, Position: 1.6}, {Name: "fins", CNAlpha: 0, Position: math.NaN()}}},
		{"infinite position", []Contribution{{CNAlpha: 2, Position: 1}, {CNAlpha: 1, Position: math.Inf(-1)}}},
		{"nan slope", []Contribution{{CNAlpha: 2, Position: 1}, {CNAlpha: math.NaN(), Position: 0.3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Combine(tt.cs...)
			if !errors.Is(err, massprop.ErrUndefinedCenterOfPressure) {
				t.Errorf("expected ErrUndefinedCenterOfPressure, got %v", err)
			}
		})
	}
}

func TestFinLiftSlope(t *testing.T) {
	pf, err := fins.NewPlanform(0.2, 0.1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(pf.AspectRatio(), 2, 1e-12) {
		t.Fatalf("expected AR 2, got %f", pf.AspectRatio())
	}

	sub := FinLiftSlope(pf, 0.3)
	if math.Abs(sub-2.56257) > 1e-4 {
		t.Errorf("expected subsonic slope 2.56257, got %f", sub)
	}
	// β = 1 again at M = √2.
	if got := FinLiftSlope(pf, math.Sqrt2); !scalar.EqualWithinRel(got, sub, 1e-9) {
		t.Errorf("expected slope %f at M=√2, got %f", sub, got)
	}
	if super := FinLiftSlope(pf, 2.0); super >= sub {
		t.Errorf("expected lower slope at M=2, got %f >= %f", super, sub)
	}
}

func TestFinACOffset(t *testing.T) {
	pf, _ := fins.NewPlanform(0.2, 0.1, 0.1)
	if got := FinACOffset(pf); !scalar.EqualWithinAbs(got, 0.075, 1e-12) {
		t.Errorf("expected offset 0.075, got %f", got)
	}

	c, err := FinContribution(pf, 4, 0.05, 0.4, DefaultMach)
	if err != nil {
		t.Fatalf("fin contribution failed: %v", err)
	}
	if !scalar.EqualWithinAbs(c.Position, 0.325, 1e-12) {
		t.Errorf("expected fin cp 0.325, got %f", c.Position)
	}
	want := 4 * FinLiftSlope(pf, DefaultMach) * 0.02 / (math.Pi * 0.0025)
	if !scalar.EqualWithinRel(c.CNAlpha, want, 1e-12) {
		t.Errorf("expected CNα %f, got %f", want, c.CNAlpha)
	}
}

func TestFinContributionInvalid(t *testing.T) {
	pf, _ := fins.NewPlanform(0.2, 0.1, 0.05)
	tests := []struct {
		name   string
		pf     fins.Planform
		count  int
		radius float64
		mach   float64
		field  string
	}{
		{"zero planform", fins.Planform{}, 4, 0.05, 0.3, "planform"},
		{"no fins", pf, 0, 0.05, 0.3, "count"},
		{"no body", pf, 4, 0, 0.3, "tube_radius"},
		{"negative mach", pf, 4, 0.05, -1, "mach"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FinContribution(tt.pf, tt.count, tt.radius, 0.4, tt.mach)
			var ce *massprop.ComponentError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Fatalf("expected %s error, got %v", tt.field, err)
			}
			if !errors.Is(err, massprop.ErrInvalidFinGeometry) {
				t.Errorf("expected ErrInvalidFinGeometry, got %v", err)
			}
		})
	}
}

func TestCPMovesTowardFinsWithCount(t *testing.T) {
	const perFin = 0.006
	prev := math.Inf(1)
	for count := 1; count <= 8; count++ {
		pf, err := fins.Solve(perFin*float64(count), count, 2.5, 0.6)
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		cp, _, err := EstimateCP(Estimate{
			Nose:        parts.VonKarman,
			NoseLength:  0.55829,
			TotalLength: 2.0,
			Planform:    pf,
			FinCount:    count,
			TubeRadius:  0.0699,
			FinRootLE:   0.3,
		})
		if err != nil {
			t.Fatalf("estimate failed for %d fins: %v", count, err)
		}
		if cp >= prev {
			t.Errorf("cp did not move aft at %d fins: %f >= %f", count, cp, prev)
		}
		prev = cp
	}
}

func TestEstimateCPDefaultMach(t *testing.T) {
	pf, _ := fins.Solve(0.024, 4, 2.5, 0.6)
	e := Estimate{Nose: parts.Ogive, NoseLength: 0.5, TotalLength: 2.0, Planform: pf, FinCount: 4, TubeRadius: 0.07, FinRootLE: 0.25}
	implicit, cs, err := EstimateCP(e)
	if err != nil {
		t.Fatal(err)
	}
	e.Mach = DefaultMach
	explicit, _, _ := EstimateCP(e)
	if implicit != explicit {
		t.Errorf("expected zero mach to mean %g, got %f vs %f", DefaultMach, implicit, explicit)
	}
	if len(cs) != 2 || cs[0].Name != "nosecone" || cs[1].Name != "fins" {
		t.Errorf("unexpected contributions %+v", cs)
	}
	if implicit <= cs[1].Position || implicit >= cs[0].Position {
		t.Errorf("cp %f not between fins %f and nose %f", implicit, cs[1].Position, cs[0].Position)
	}
}

func TestEstimateCPZeroPlanform(t *testing.T) {
	cp, cs, err := EstimateCP(Estimate{
		Nose:        parts.Conical,
		NoseLength:  0.5,
		TotalLength: 2.0,
		Planform:    fins.Planform{},
		FinCount:    4,
		TubeRadius:  0.07,
		FinRootLE:   0.3,
	})
	if !errors.Is(err, massprop.ErrInvalidFinGeometry) {
		t.Fatalf("expected ErrInvalidFinGeometry, got cp=%f err=%v", cp, err)
	}
	if cp != 0 || cs != nil {
		t.Errorf("expected no partial result, got cp=%f contributions=%+v", cp, cs)
	}
}
