package config

import (
	"errors"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/san-kum/airframe/internal/massprop"
	"github.com/san-kum/airframe/internal/parts"
	"github.com/san-kum/airframe/internal/vehicle"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Convention != "tail_to_nose" {
		t.Errorf("expected tail_to_nose, got %s", cfg.Convention)
	}
	if cfg.Mach != DefaultMach {
		t.Errorf("expected mach %f, got %f", DefaultMach, cfg.Mach)
	}
	if cfg.Mission.MinStaticMargin != 1.5 {
		t.Errorf("expected min margin 1.5, got %f", cfg.Mission.MinStaticMargin)
	}

	d, err := cfg.Design()
	if err != nil {
		t.Fatalf("design failed: %v", err)
	}
	if d.Nose.Kind != parts.Conical || d.Fins.Airfoil != parts.FlatPlate || d.Tail.Kind != parts.NoTail {
		t.Errorf("unexpected enums %v %v %v", d.Nose.Kind, d.Fins.Airfoil, d.Tail.Kind)
	}
	if d.TubeRadius != parts.Tube5p5In/2 {
		t.Errorf("expected radius %f, got %f", parts.Tube5p5In/2, d.TubeRadius)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.yaml")
	cfg := DefaultConfig()
	cfg.Fins.Count = 3
	cfg.Nose.Kind = "ogive"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Fins.Count != 3 || got.Nose.Kind != "ogive" {
		t.Errorf("round trip lost fields: %+v", got.Fins)
	}
	if len(got.Motors) != 1 || len(got.Motors[0].Samples) != 2 {
		t.Errorf("expected one motor with two samples, got %+v", got.Motors)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDesignConvention(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Convention = "nose_to_tail"
	cfg.Fins.Position = 2.25
	cfg.Motor.Position = 2.35

	d, err := cfg.Design()
	if err != nil {
		t.Fatalf("design failed: %v", err)
	}
	if !scalar.EqualWithinAbs(d.Fins.Position, 0.10, 1e-12) {
		t.Errorf("expected fin station 0.10, got %f", d.Fins.Position)
	}
	if !scalar.EqualWithinAbs(d.Motor.Position, 0, 1e-12) {
		t.Errorf("expected motor at the tail, got %f", d.Motor.Position)
	}

	cfg.Convention = "upside_down"
	if _, err := cfg.Design(); err == nil {
		t.Error("expected error for unknown convention")
	}
}

func TestDesignUnknownNames(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"nose", func(c *Config) { c.Nose.Kind = "elliptical" }, "nose.kind"},
		{"material", func(c *Config) { c.Upper.Material = "balsa" }, "upper.material"},
		{"airfoil", func(c *Config) { c.Fins.Airfoil = "supercritical" }, "fins.airfoil"},
		{"tail", func(c *Config) { c.Tail.Kind = "flare" }, "tail.kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			_, err := cfg.Design()
			if !errors.Is(err, massprop.ErrUnsupportedGeometryKind) {
				t.Fatalf("expected ErrUnsupportedGeometryKind, got %v", err)
			}
			var ce *massprop.ComponentError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("expected field %s, got %v", tt.field, err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Tube = "7in"
	if _, err := cfg.Design(); !errors.Is(err, massprop.ErrUnsupportedGeometryKind) {
		t.Errorf("expected unknown tube rejection, got %v", err)
	}
	cfg.TubeRadius = 0.08
	if _, err := cfg.Design(); err != nil {
		t.Errorf("explicit radius should override tube name: %v", err)
	}
}

func TestCatalog(t *testing.T) {
	cat, err := DefaultConfig().Catalog()
	if err != nil {
		t.Fatalf("catalog failed: %v", err)
	}
	m, err := cat.Lookup("M1790")
	if err != nil {
		t.Fatal(err)
	}
	p, err := m.MassAt(0)
	if err != nil || p.Mass != 9.98 {
		t.Errorf("expected liftoff mass 9.98, got %+v (%v)", p, err)
	}

	cfg := DefaultConfig()
	cfg.Motors = append(cfg.Motors, MotorEntry{Name: "empty"})
	if _, err := cfg.Catalog(); err == nil {
		t.Error("expected error for motor without samples")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("boattail")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Tail.Kind != "conical" {
		t.Errorf("expected conical tail, got %s", cfg.Tail.Kind)
	}
	cfg.Fins.Count = 99
	if Presets["boattail"].Fins.Count == 99 {
		t.Error("preset was mutated through GetPreset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsSynthesize(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			d, err := GetPreset(name).Design()
			if err != nil {
				t.Fatalf("design failed: %v", err)
			}
			v, err := vehicle.Derive(d)
			if err != nil {
				t.Fatalf("derive failed: %v", err)
			}
			r, err := vehicle.Synthesize(v, DefaultMach)
			if err != nil {
				t.Fatalf("synthesize failed: %v", err)
			}
			if r.DryTotal.Mass <= 0 {
				t.Errorf("expected positive mass, got %f", r.DryTotal.Mass)
			}
		})
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Error("presets not sorted")
		}
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("AIRFRAME_DATA", "/tmp/airframe")
	t.Setenv("AIRFRAME_WORKERS", "8")
	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env failed: %v", err)
	}
	if e.DataDir != "/tmp/airframe" || e.Workers != 8 || e.LogLevel != "info" {
		t.Errorf("unexpected env %+v", e)
	}

	t.Setenv("AIRFRAME_WORKERS", "lots")
	if _, err := LoadEnv(); err == nil {
		t.Error("expected parse error")
	}
	t.Setenv("AIRFRAME_WORKERS", "0")
	if _, err := LoadEnv(); err == nil {
		t.Error("expected error for zero workers")
	}
}
