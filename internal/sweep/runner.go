package sweep

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/airframe/internal/history"
	"github.com/san-kum/airframe/internal/logging"
	"github.com/san-kum/airframe/internal/vehicle"
)

const DefaultWorkers = 4

type Evaluation struct {
	Index    int
	Point    Point
	Result   vehicle.Result
	Score    float64
	Feasible bool
	Err      error
}

// Record converts e for the history store.
func (e Evaluation) Record() history.Evaluation {
	rec := history.Evaluation{
		Index:    e.Index,
		Params:   e.Point,
		Score:    e.Score,
		Feasible: e.Feasible,
	}
	if e.Err != nil {
		rec.Err = e.Err.Error()
		return rec
	}
	rec.DryMass = e.Result.DryTotal.Mass
	rec.CG = e.Result.DryTotal.CG.X
	rec.CP = e.Result.CP
	rec.StaticMargin = e.Result.StaticMargin
	return rec
}

type Runner struct {
	Workers   int
	Mach      float64
	MinMargin float64
	Objective Objective
	Registry  *Registry
	Metrics   *Metrics
	Log       logging.Logger
}

func NewRunner(workers int, obj Objective) *Runner {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if obj == nil {
		obj = MinimizeMass{}
	}
	return &Runner{
		Workers:   workers,
		Objective: obj,
		Registry:  NewRegistry(),
		Log:       logging.Noop(),
	}
}

// Run synthesizes base with every point applied. A point that fails to
// synthesize is kept as an Evaluation with Err set. Only cancellation of ctx
// stops the sweep early; the evaluations finished so far are returned with
// the context error.
func (r *Runner) Run(ctx context.Context, base vehicle.Design, points []Point) ([]Evaluation, error) {
	run := r.withDefaults()
	evals := make([]Evaluation, len(points))
	done := make([]bool, len(points))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(run.Workers)

	start := time.Now()
	for i, p := range points {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			evals[i] = run.evaluate(base, i, p)
			done[i] = true
			if run.Metrics != nil {
				run.Metrics.observe(evals[i])
			}
			return nil
		})
	}
	err := g.Wait()

	out := evals[:0]
	failed := 0
	for i, e := range evals {
		if !done[i] {
			continue
		}
		if e.Err != nil {
			failed++
		}
		out = append(out, e)
	}
	if err == nil && len(out) < len(points) {
		err = ctx.Err()
	}
	run.Log.Info(ctx, "sweep finished",
		logging.Int("points", len(points)),
		logging.Int("evaluated", len(out)),
		logging.Int("failed", failed),
		logging.Any("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return out, err
}

// withDefaults fills the zero fields of a Runner built without NewRunner.
func (r *Runner) withDefaults() Runner {
	run := *r
	if run.Workers < 1 {
		run.Workers = DefaultWorkers
	}
	if run.Objective == nil {
		run.Objective = MinimizeMass{}
	}
	if run.Registry == nil {
		run.Registry = NewRegistry()
	}
	if run.Log == nil {
		run.Log = logging.Noop()
	}
	return run
}

func (r Runner) evaluate(base vehicle.Design, idx int, p Point) Evaluation {
	e := Evaluation{Index: idx, Point: p}
	d := base
	for name, v := range p {
		if err := r.Registry.Apply(&d, name, v); err != nil {
			e.Err = err
			return e
		}
	}
	v, err := vehicle.Derive(d)
	if err != nil {
		e.Err = err
		return e
	}
	res, err := vehicle.Synthesize(v, r.Mach)
	if err != nil {
		e.Err = err
		return e
	}
	e.Result = res
	e.Score, e.Feasible = r.Objective.Score(res, r.MinMargin)
	return e
}

// Best returns up to n feasible evaluations, lowest score first.
func Best(evals []Evaluation, n int) []Evaluation {
	var ok []Evaluation
	for _, e := range evals {
		if e.Err == nil && e.Feasible {
			ok = append(ok, e)
		}
	}
	sort.SliceStable(ok, func(i, j int) bool { return ok[i].Score < ok[j].Score })
	if n > 0 && len(ok) > n {
		ok = ok[:n]
	}
	return ok
}
