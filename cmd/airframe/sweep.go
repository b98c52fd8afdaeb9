package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/airframe/internal/history"
	"github.com/san-kum/airframe/internal/logging"
	"github.com/san-kum/airframe/internal/sweep"
	"github.com/san-kum/airframe/internal/viz"
)

const historyFile = "history.db"

var (
	sweepParams  []string
	objective    string
	targetMargin float64
	topN         int
	metricsOut   string
	plotSweep    bool
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [design.yaml]",
		Short: "evaluate a grid of design variations",
		Long: "sweep applies every combination of --param values to the base design.\n" +
			"Parameters: " + fmt.Sprint(sweep.NewRegistry().List()),
		Args: cobra.MaximumNArgs(1),
		RunE: runSweep,
	}
	cmd.Flags().StringVar(&preset, "preset", "", "use preset design as the base")
	cmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=min:max:steps or name=v1,v2 (repeatable)")
	cmd.Flags().IntVar(&workers, "workers", sweep.DefaultWorkers, "parallel evaluations")
	cmd.Flags().StringVar(&objective, "objective", "mass", "objective (mass, margin)")
	cmd.Flags().Float64Var(&targetMargin, "target-margin", 2.0, "target static margin for the margin objective")
	cmd.Flags().IntVar(&topN, "top", 10, "number of best candidates to print")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "write prometheus textfile metrics to this path")
	cmd.Flags().BoolVar(&plotSweep, "plot", false, "plot static margin over the grid")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [sweep_id]",
		Short: "list sweeps or show the best candidates of one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showHistory,
	}
	cmd.Flags().IntVar(&topN, "top", 10, "number of best candidates to print")
	return cmd
}

func parseObjective() (sweep.Objective, error) {
	switch objective {
	case "mass":
		return sweep.MinimizeMass{}, nil
	case "margin":
		return sweep.TargetMargin{Target: targetMargin}, nil
	}
	return nil, fmt.Errorf("unknown objective: %s (available: mass, margin)", objective)
}

func openHistory() (*history.Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return history.Open(filepath.Join(dataDir, historyFile))
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	base, err := cfg.Design()
	if err != nil {
		return err
	}
	obj, err := parseObjective()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("workers") {
		workers = env.Workers
	}

	runner := sweep.NewRunner(workers, obj)
	params := make([]sweep.Param, 0, len(sweepParams))
	for _, s := range sweepParams {
		p, err := sweep.ParseParam(s)
		if err != nil {
			return err
		}
		if !runner.Registry.Has(p.Name) {
			return fmt.Errorf("unknown parameter: %s (available: %v)", p.Name, runner.Registry.List())
		}
		params = append(params, p)
	}
	points := sweep.Grid(params)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, runLog, sweepID := logging.WithRun(ctx, log, "")

	metrics, err := sweep.NewMetrics(nil)
	if err != nil {
		return err
	}
	runner.Mach = cfg.Mach
	runner.MinMargin = cfg.Mission.MinStaticMargin
	runner.Metrics = metrics
	runner.Log = runLog

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.CreateSweep(ctx, history.Sweep{
		ID:        sweepID,
		Design:    cfg.Name,
		Objective: obj.Name(),
		Points:    len(points),
		StartedAt: time.Now(),
	}); err != nil {
		return err
	}

	fmt.Printf("sweeping %s over %d points with %d workers...\n", cfg.Name, len(points), runner.Workers)
	start := time.Now()
	evals, runErr := runner.Run(ctx, base, points)

	records := make([]history.Evaluation, len(evals))
	for i, e := range evals {
		records[i] = e.Record()
	}
	// Partial sweeps are still recorded.
	if err := store.Record(context.WithoutCancel(ctx), sweepID, records); err != nil {
		return err
	}
	if metricsOut != "" {
		if err := metrics.WriteTextfile(metricsOut); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("sweep %s stopped after %d of %d points: %w", sweepID, len(evals), len(points), runErr)
	}

	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("sweep id: %s\n\n", sweepID)

	best := sweep.Best(evals, topN)
	if len(best) == 0 {
		fmt.Println("no feasible candidates")
	} else {
		rows := make([]history.Evaluation, len(best))
		for i, e := range best {
			rows[i] = e.Record()
		}
		fmt.Print(viz.RenderEvaluations(rows))
	}

	if plotSweep {
		margins := make([]float64, len(evals))
		for i, e := range evals {
			margins[i] = math.NaN()
			if e.Err == nil {
				margins[i] = e.Result.StaticMargin
			}
		}
		if plot := viz.PlotSweep(margins, "static margin (cal) by point"); plot != "" {
			fmt.Println()
			fmt.Println(plot)
		}
	}
	return nil
}

func showHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := context.Background()

	if len(args) == 0 {
		sweeps, err := store.Sweeps(ctx)
		if err != nil {
			return err
		}
		if len(sweeps) == 0 {
			fmt.Println("no sweeps found")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDESIGN\tOBJECTIVE\tPOINTS\tSTARTED")
		for _, sw := range sweeps {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				sw.ID, sw.Design, sw.Objective, sw.Points, sw.StartedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	}

	id := args[0]
	total, failed, err := store.Counts(ctx, id)
	if err != nil {
		return err
	}
	if total == 0 {
		return fmt.Errorf("no evaluations for sweep %s", id)
	}
	best, err := store.Best(ctx, id, topN)
	if err != nil {
		return err
	}
	fmt.Printf("%d evaluations, %d failed\n\n", total, failed)
	if len(best) == 0 {
		fmt.Println("no feasible candidates")
		return nil
	}
	fmt.Print(viz.RenderEvaluations(best))
	return nil
}
