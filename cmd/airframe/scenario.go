package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/airframe/internal/automation"
	"github.com/san-kum/airframe/internal/logging"
	"github.com/san-kum/airframe/internal/storage"
)

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario [scenario.yaml]",
		Short: "synthesize every design listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	cmd.Flags().BoolVar(&saveRun, "save", false, "store every step as a run")
	return cmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, runLog, _ := logging.WithRun(ctx, log, "")

	results, runErr := automation.NewRunner(runLog).Run(ctx, sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tDESIGN\tMASS\tCG\tCP\tMARGIN\tSTABLE")
	for i, res := range results {
		r := res.Result
		fmt.Fprintf(w, "%d\t%s\t%.3f\t%.4f\t%.4f\t%.2f\t%t\n",
			i+1, r.Name, r.DryTotal.Mass, r.DryTotal.CG.X, r.CP, r.StaticMargin,
			r.Stable(res.Config.Mission.MinStaticMargin))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if saveRun && len(results) > 0 {
		st := storage.New(dataDir, runLog)
		if err := st.Init(); err != nil {
			return err
		}
		for _, res := range results {
			id, err := st.Save(ctx, res.Config, res.Result)
			if err != nil {
				return err
			}
			fmt.Printf("saved %s\n", id)
		}
	}
	return runErr
}
