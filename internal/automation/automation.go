// Package automation runs scripted batches of syntheses from YAML scenario
// files.
package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/airframe/internal/config"
	"github.com/san-kum/airframe/internal/logging"
	"github.com/san-kum/airframe/internal/sweep"
	"github.com/san-kum/airframe/internal/vehicle"
)

// Scenario is an ordered list of designs to synthesize.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep names a design file or a preset and the parameter overrides
// applied to it. Design paths are relative to the scenario file.
type ScenarioStep struct {
	Name   string             `yaml:"name"`
	Design string             `yaml:"design,omitempty"`
	Preset string             `yaml:"preset,omitempty"`
	Mach   float64            `yaml:"mach,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result vehicle.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	dir := filepath.Dir(path)
	for i := range sc.Steps {
		if d := sc.Steps[i].Design; d != "" && !filepath.IsAbs(d) {
			sc.Steps[i].Design = filepath.Join(dir, d)
		}
	}
	return &sc, nil
}

// Runner executes scenario steps in order and stops at the first failure.
type Runner struct {
	Registry *sweep.Registry
	Log      logging.Logger
}

func NewRunner(log logging.Logger) *Runner {
	if log == nil {
		log = logging.Noop()
	}
	return &Runner{Registry: sweep.NewRegistry(), Log: log}
}

func (r *Runner) Run(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.runStep(step)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.label(), err)
		}
		r.Log.Info(ctx, "scenario step done",
			logging.String("scenario", sc.Name),
			logging.Int("step", i+1),
			logging.String("design", step.label()),
			logging.Float("static_margin", res.Result.StaticMargin))
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runStep(step ScenarioStep) (StepResult, error) {
	cfg, err := step.config()
	if err != nil {
		return StepResult{}, err
	}
	if step.Mach > 0 {
		cfg.Mach = step.Mach
	}
	if step.Name != "" {
		cfg.Name = step.Name
	}

	d, err := cfg.Design()
	if err != nil {
		return StepResult{}, err
	}
	for _, name := range sortedKeys(step.Params) {
		if err := r.Registry.Apply(&d, name, step.Params[name]); err != nil {
			return StepResult{}, err
		}
	}
	v, err := vehicle.Derive(d)
	if err != nil {
		return StepResult{}, err
	}
	res, err := vehicle.Synthesize(v, cfg.Mach)
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Step: step, Config: cfg, Result: res}, nil
}

func (s ScenarioStep) config() (*config.Config, error) {
	switch {
	case s.Design != "" && s.Preset != "":
		return nil, fmt.Errorf("step sets both design and preset")
	case s.Design != "":
		return config.Load(s.Design)
	case s.Preset != "":
		if cfg := config.GetPreset(s.Preset); cfg != nil {
			return cfg, nil
		}
		return nil, fmt.Errorf("unknown preset: %s", s.Preset)
	}
	return config.DefaultConfig(), nil
}

func (s ScenarioStep) label() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Design != "":
		return filepath.Base(s.Design)
	case s.Preset != "":
		return s.Preset
	}
	return "default"
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
