package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/airframe/internal/history"
)

// PlotSweep plots values in evaluation order. Non-finite entries are the
// failed points and are skipped.
func PlotSweep(values []float64, caption string) string {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// RenderEvaluations tabulates evaluations with one column per swept
// parameter.
func RenderEvaluations(evals []history.Evaluation) string {
	names := map[string]struct{}{}
	for _, e := range evals {
		for k := range e.Params {
			names[k] = struct{}{}
		}
	}
	params := make([]string, 0, len(names))
	for k := range names {
		params = append(params, k)
	}
	sort.Strings(params)

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	header := append([]string{"#"}, params...)
	header = append(header, "MASS", "MARGIN", "SCORE", "STATUS")
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, e := range evals {
		cols := []string{fmt.Sprintf("%d", e.Index)}
		for _, p := range params {
			cols = append(cols, fmt.Sprintf("%.4g", e.Params[p]))
		}
		switch {
		case e.Err != "":
			cols = append(cols, "-", "-", "-", "error: "+e.Err)
		case e.Feasible:
			cols = append(cols, fmt.Sprintf("%.3f", e.DryMass), fmt.Sprintf("%.2f", e.StaticMargin), fmt.Sprintf("%.4g", e.Score), "ok")
		default:
			cols = append(cols, fmt.Sprintf("%.3f", e.DryMass), fmt.Sprintf("%.2f", e.StaticMargin), fmt.Sprintf("%.4g", e.Score), "infeasible")
		}
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	w.Flush()
	return b.String()
}
