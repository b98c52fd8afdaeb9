package viz

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/airframe/internal/vehicle"
)

// RenderReport summarizes one synthesis: dry totals, stations, margin and
// the solved planform.
func RenderReport(r vehicle.Result, conv vehicle.Convention, minMargin float64) string {
	var b strings.Builder
	at := func(x float64) float64 { return conv.FromInternal(x, r.TotalLength) }
	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n", MetricLabel.Render(fmt.Sprintf("%-14s", label)), MetricValue.Render(value)))
	}

	b.WriteString(HeaderStyle.Render(strings.ToUpper(r.Name)) + "\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("  stations %s, mach %.2f", conv, r.Mach)) + "\n\n")

	mass, inertia, _ := r.SimulatorTuple()
	row("dry mass", fmt.Sprintf("%.3f kg", mass))
	row("length", fmt.Sprintf("%.3f m", r.TotalLength))
	row("caliber", fmt.Sprintf("%.4f m", 2*r.TubeRadius))
	row("cg", fmt.Sprintf("%.4f m", at(r.DryTotal.CG.X)))
	row("cp", fmt.Sprintf("%.4f m", at(r.CP)))
	row("inertia", fmt.Sprintf("%.4f %.4f %.4f kg·m²", inertia[0], inertia[1], inertia[2]))
	row("static margin", fmt.Sprintf("%.2f cal", r.StaticMargin))
	b.WriteString(fmt.Sprintf("  %s %s %s\n\n",
		MetricLabel.Render(fmt.Sprintf("%-14s", "stability")),
		MarginBar(r.StaticMargin, minMargin, 24),
		Status(r.StaticMargin, minMargin)))

	pf := r.Planform
	b.WriteString(Title.Render("fins") + "\n")
	row("span", fmt.Sprintf("%.4f m", pf.Span()))
	row("root chord", fmt.Sprintf("%.4f m", pf.RootChord()))
	row("tip chord", fmt.Sprintf("%.4f m", pf.TipChord()))
	row("sweep", fmt.Sprintf("%.4f m (%.1f°)", pf.SweepLength(), pf.SweepAngleDegrees()))
	b.WriteString("\n")

	b.WriteString(Title.Render("normal force") + "\n")
	for _, c := range r.Contributions {
		row(c.Name, fmt.Sprintf("CNα %.4f at %.4f m", c.CNAlpha, at(c.Position)))
	}
	return b.String()
}

// RenderParts tabulates every dry part followed by the dry total.
func RenderParts(r vehicle.Result, conv vehicle.Convention) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PART\tMASS\tCG\tIXX\tIYY\tIZZ")
	for _, p := range r.Parts {
		d := p.Props.Inertia.Diagonal()
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.5f\t%.5f\t%.5f\n",
			p.Name, p.Props.Mass, conv.FromInternal(p.Props.CG.X, r.TotalLength), d[0], d[1], d[2])
	}
	d := r.DryTotal.Inertia.Diagonal()
	fmt.Fprintf(w, "dry_total\t%.4f\t%.4f\t%.5f\t%.5f\t%.5f\n",
		r.DryTotal.Mass, conv.FromInternal(r.DryTotal.CG.X, r.TotalLength), d[0], d[1], d[2])
	w.Flush()
	return b.String()
}

// SideView draws the body as a line of width cells, nose on the left. G
// marks the CG and P the CP; a shared cell shows X.
func SideView(r vehicle.Result, width int) string {
	if width < 3 || !(r.TotalLength > 0) {
		return ""
	}
	cells := []rune(strings.Repeat("=", width))
	cells[0] = '<'
	cells[width-1] = '|'

	cell := func(x float64) int {
		fromNose := vehicle.NoseToTail.FromInternal(x, r.TotalLength)
		i := int(math.Round(fromNose / r.TotalLength * float64(width-1)))
		return max(0, min(i, width-1))
	}
	g, p := cell(r.DryTotal.CG.X), cell(r.CP)
	cells[g] = 'G'
	cells[p] = 'P'
	if g == p {
		cells[g] = 'X'
	}
	return string(cells)
}
