package automation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/airframe/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadScenarioResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	writeFile(t, path, `
name: trade
steps:
  - design: designs/a.yaml
  - preset: boattail
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Steps[0].Design != filepath.Join(dir, "designs", "a.yaml") {
		t.Errorf("expected path relative to scenario, got %s", sc.Steps[0].Design)
	}
	if sc.Steps[1].Preset != "boattail" {
		t.Errorf("expected preset boattail, got %s", sc.Steps[1].Preset)
	}
}

func TestLoadScenarioEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	writeFile(t, path, "name: nothing\n")
	if _, err := LoadScenario(path); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	design := filepath.Join(dir, "ref.yaml")
	if err := config.Save(design, config.DefaultConfig()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	path := filepath.Join(dir, "scenario.yaml")
	writeFile(t, path, `
name: fins
steps:
  - name: small-fins
    design: ref.yaml
    params:
      fin_area: 0.012
  - name: large-fins
    design: ref.yaml
    params:
      fin_area: 0.048
  - preset: carbon-6in
    mach: 0.5
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	results, err := NewRunner(nil).Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Result.Name != "small-fins" {
		t.Errorf("expected step name to rename design, got %s", results[0].Result.Name)
	}
	if !(results[1].Result.StaticMargin > results[0].Result.StaticMargin) {
		t.Errorf("expected larger fins to raise margin: %g vs %g",
			results[1].Result.StaticMargin, results[0].Result.StaticMargin)
	}
	if results[2].Result.Mach != 0.5 {
		t.Errorf("expected mach override, got %g", results[2].Result.Mach)
	}
}

func TestRunScenarioStopsOnFailure(t *testing.T) {
	sc := &Scenario{Name: "bad", Steps: []ScenarioStep{
		{Preset: "reference"},
		{Preset: "reference", Params: map[string]float64{"fin_taper_ratio": 2}},
		{Preset: "reference"},
	}}
	results, err := NewRunner(nil).Run(context.Background(), sc)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "step 2") {
		t.Errorf("expected failing step in error, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 completed step, got %d", len(results))
	}
}

func TestRunScenarioStepErrors(t *testing.T) {
	cases := []ScenarioStep{
		{Preset: "missing"},
		{Preset: "reference", Design: "x.yaml"},
		{Params: map[string]float64{"wingspan": 1}},
	}
	for _, step := range cases {
		sc := &Scenario{Steps: []ScenarioStep{step}}
		if _, err := NewRunner(nil).Run(context.Background(), sc); err == nil {
			t.Errorf("expected error for %+v", step)
		}
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc := &Scenario{Steps: []ScenarioStep{{Preset: "reference"}}}
	if _, err := NewRunner(nil).Run(ctx, sc); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
