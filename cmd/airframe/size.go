package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/airframe/internal/export"
	"github.com/san-kum/airframe/internal/logging"
	"github.com/san-kum/airframe/internal/optim"
	"github.com/san-kum/airframe/internal/vehicle"
	"github.com/san-kum/airframe/internal/viz"
)

var (
	sizeParam string
	sizeLo    float64
	sizeHi    float64
	sizeTol   float64
	minMargin float64
	svgWidth  int
	svgOut    string
)

func newSizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size [design.yaml]",
		Short: "find the smallest parameter value that meets the minimum static margin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSize,
	}
	cmd.Flags().StringVar(&preset, "preset", "", "use preset design")
	cmd.Flags().StringVar(&sizeParam, "param", "fin_area", "parameter to size")
	cmd.Flags().Float64Var(&sizeLo, "lo", 0.002, "lower bound")
	cmd.Flags().Float64Var(&sizeHi, "hi", 0.2, "upper bound")
	cmd.Flags().Float64Var(&sizeTol, "tol", optim.DefaultTolerance, "bound tolerance")
	cmd.Flags().Float64Var(&minMargin, "min-margin", 0, "required margin in calibers (default from design)")
	return cmd
}

func newExportSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-svg [design.yaml]",
		Short: "draw the vehicle side profile as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	cmd.Flags().StringVar(&preset, "preset", "", "use preset design")
	cmd.Flags().IntVar(&svgWidth, "width", 900, "image width in pixels")
	cmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")
	return cmd
}

func runSize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	base, err := cfg.Design()
	if err != nil {
		return err
	}
	target := cfg.Mission.MinStaticMargin
	if cmd.Flags().Changed("min-margin") {
		target = minMargin
	}

	ctx, runLog, _ := logging.WithRun(context.Background(), log, "")
	s := optim.Sizing{
		Param:     sizeParam,
		Lo:        sizeLo,
		Hi:        sizeHi,
		MinMargin: target,
		Mach:      cfg.Mach,
		Tol:       sizeTol,
	}
	got, err := s.Run(ctx, base)
	if err != nil {
		runLog.Error(ctx, "sizing failed", logging.String("param", sizeParam), logging.Err(err))
		return err
	}
	runLog.Info(ctx, "sized",
		logging.String("param", sizeParam),
		logging.Float("value", got.Value),
		logging.Int("evaluations", got.Evals))

	conv, err := vehicle.ParseConvention(cfg.Convention)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %.6g (%d evaluations)\n\n", sizeParam, got.Value, got.Evals)
	fmt.Print(viz.RenderReport(got.Result, conv, target))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	d, err := cfg.Design()
	if err != nil {
		return err
	}
	v, err := vehicle.Derive(d)
	if err != nil {
		return err
	}
	r, err := vehicle.Synthesize(v, cfg.Mach)
	if err != nil {
		return err
	}

	svg := export.ProfileSVG(v, r, svgWidth)
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}
