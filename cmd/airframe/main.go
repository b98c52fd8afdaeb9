package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/airframe/internal/config"
	"github.com/san-kum/airframe/internal/logging"
	"github.com/san-kum/airframe/internal/storage"
	"github.com/san-kum/airframe/internal/tui"
	"github.com/san-kum/airframe/internal/vehicle"
	"github.com/san-kum/airframe/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	logFormat  string
	workers    int
	preset     string
	mach       float64
	motorTime  float64
	convention string
	saveRun    bool
	jsonOut    bool
	showParts  bool

	env config.Env
	log logging.Logger = logging.Noop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "airframe",
		Short:         "sounding rocket mass and stability synthesis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e, err := config.LoadEnv()
			if err != nil {
				return err
			}
			env = e
			if !cmd.Flags().Changed("data") {
				dataDir = env.DataDir
			}
			if !cmd.Flags().Changed("log-level") {
				logLevel = env.LogLevel
			}
			if !cmd.Flags().Changed("log-format") {
				logFormat = env.LogFormat
			}
			log = logging.New(logging.Config{Level: logLevel, Format: logFormat})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	synthCmd := &cobra.Command{
		Use:   "synth [design.yaml]",
		Short: "synthesize mass properties and static margin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSynth,
	}
	synthCmd.Flags().StringVar(&preset, "preset", "", "use preset design")
	synthCmd.Flags().Float64Var(&mach, "mach", config.DefaultMach, "mach number for the fin lift slope")
	synthCmd.Flags().Float64Var(&motorTime, "motor-time", 0, "also report wet mass and margin t seconds after ignition")
	synthCmd.Flags().StringVar(&convention, "convention", "", "report stations as tail_to_nose or nose_to_tail")
	synthCmd.Flags().BoolVar(&saveRun, "save", false, "store the run under the data directory")
	synthCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	synthCmd.Flags().BoolVar(&showParts, "parts", false, "print the per-part table")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset designs",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a design file",
		Args:  cobra.ExactArgs(1),
		RunE:  initDesign,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from preset design")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [design.yaml]",
		Short: "interactive design tweaker",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && preset == "" {
				return tui.Run(nil)
			}
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}
	tuiCmd.Flags().StringVar(&preset, "preset", "", "open preset design")

	rootCmd.AddCommand(synthCmd, presetsCmd, initCmd, listCmd, showCmd, tuiCmd, newSweepCmd(), newHistoryCmd(), newSizeCmd(), newExportSVGCmd(), newScenarioCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads a design file, a preset or the default design, in that
// order of precedence.
func loadConfig(args []string) (*config.Config, error) {
	switch {
	case len(args) > 0:
		cfg, err := config.Load(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load design: %w", err)
		}
		return cfg, nil
	case preset != "":
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func synthesize(cfg *config.Config) (vehicle.Result, error) {
	d, err := cfg.Design()
	if err != nil {
		return vehicle.Result{}, err
	}
	v, err := vehicle.Derive(d)
	if err != nil {
		return vehicle.Result{}, err
	}
	return vehicle.Synthesize(v, cfg.Mach)
}

func runSynth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("mach") {
		cfg.Mach = mach
	}
	conv, err := vehicle.ParseConvention(cfg.Convention)
	if err != nil {
		return err
	}
	if convention != "" {
		if conv, err = vehicle.ParseConvention(convention); err != nil {
			return err
		}
	}

	ctx, runLog, _ := logging.WithRun(context.Background(), log, "")
	runLog.Debug(ctx, "synthesizing", logging.String("design", cfg.Name), logging.Float("mach", cfg.Mach))

	r, err := synthesize(cfg)
	if err != nil {
		runLog.Error(ctx, "synthesis failed", logging.Err(err))
		return err
	}
	runLog.Info(ctx, "synthesized",
		logging.String("design", r.Name),
		logging.Float("dry_mass", r.DryTotal.Mass),
		logging.Float("static_margin", r.StaticMargin))

	if jsonOut {
		return storage.ExportJSON(os.Stdout, r)
	}

	fmt.Print(viz.RenderReport(r, conv, cfg.Mission.MinStaticMargin))
	fmt.Println()
	fmt.Println("  " + viz.SideView(r, 60))
	if showParts {
		fmt.Println()
		fmt.Print(viz.RenderParts(r, conv))
	}

	if cmd.Flags().Changed("motor-time") {
		catalog, err := cfg.Catalog()
		if err != nil {
			return err
		}
		wet, err := r.WetTotalAt(catalog, motorTime)
		if err != nil {
			return err
		}
		wetMargin, err := r.WetMarginAt(catalog, motorTime)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s at t=%.2fs\n", viz.Title.Render("with "+r.Motor.Name), motorTime)
		fmt.Printf("  wet mass       %.3f kg\n", wet.Mass)
		fmt.Printf("  wet cg         %.4f m\n", conv.FromInternal(wet.CG.X, r.TotalLength))
		fmt.Printf("  static margin  %.2f cal %s\n", wetMargin, viz.Status(wetMargin, cfg.Mission.MinStaticMargin))
	}

	if saveRun {
		st := storage.New(dataDir, runLog)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(ctx, cfg, r)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", id)
	}
	return nil
}

func initDesign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", args[0], cfg.Name)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	runs, err := st.List(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tMASS\tMARGIN\tSTABLE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.2f\t%t\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Metrics["dry_mass"],
			run.Metrics["static_margin"],
			run.Stable,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir, log)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cfg, err := st.LoadDesign(runID)
	if err != nil {
		return err
	}
	conv, err := vehicle.ParseConvention(meta.Convention)
	if err != nil {
		return err
	}

	r, err := synthesize(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n\n", viz.Subtle.Render(meta.ID), viz.Subtle.Render(meta.Timestamp.Format("2006-01-02 15:04:05")))
	fmt.Print(viz.RenderReport(r, conv, cfg.Mission.MinStaticMargin))
	fmt.Println()
	fmt.Print(viz.RenderParts(r, conv))
	return nil
}
