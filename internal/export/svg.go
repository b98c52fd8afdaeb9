// Package export draws vehicles for use outside the terminal.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/airframe/internal/parts"
	"github.com/san-kum/airframe/internal/vehicle"
)

type point struct{ X, Y float64 }

// ProfileSVG draws the side profile of v, nose on the left, with two
// opposing fins and markers at the dry CG and the CP of r.
func ProfileSVG(v vehicle.Vehicle, r vehicle.Result, width int) string {
	total := v.TotalLength()
	if width <= 0 || !(total > 0) {
		return ""
	}
	d := v.Design()
	pf := v.Planform()
	radius := d.TubeRadius

	halfSpan := radius + pf.Span()
	pad := 0.1 * total
	scale := float64(width) / (total + 2*pad)
	height := int((2*halfSpan + 2*pad) * scale)
	mid := float64(height) / 2

	// x is measured from the nose tip, y upward from the axis.
	px := func(p point) (float64, float64) {
		return (p.X + pad) * scale, mid - p.Y*scale
	}
	station := func(x float64) float64 { return vehicle.NoseToTail.FromInternal(x, total) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	bt := 0.0
	aft := radius
	if d.Tail.Kind != parts.NoTail {
		bt = d.Tail.Length
		aft = d.Tail.AftRadius
	}
	shoulder := d.Nose.Length
	tailStart := total - bt

	sb.WriteString(`<path fill="#1a1a2e" stroke="#00ffff" stroke-width="1.5" d="`)
	tipX, tipY := px(point{0, 0})
	sb.WriteString(fmt.Sprintf("M%.1f,%.1f", tipX, tipY))
	if d.Nose.Kind == parts.Conical {
		writeLine(&sb, px, point{shoulder, radius})
	} else {
		cx, cy := px(point{0.15 * shoulder, radius})
		ex, ey := px(point{shoulder, radius})
		sb.WriteString(fmt.Sprintf(" Q%.1f,%.1f %.1f,%.1f", cx, cy, ex, ey))
	}
	writeLine(&sb, px, point{tailStart, radius})
	writeLine(&sb, px, point{total, aft})
	writeLine(&sb, px, point{total, -aft})
	writeLine(&sb, px, point{tailStart, -radius})
	writeLine(&sb, px, point{shoulder, -radius})
	if d.Nose.Kind == parts.Conical {
		writeLine(&sb, px, point{0, 0})
	} else {
		cx, cy := px(point{0.15 * shoulder, -radius})
		sb.WriteString(fmt.Sprintf(" Q%.1f,%.1f %.1f,%.1f", cx, cy, tipX, tipY))
	}
	sb.WriteString(` Z"/>
`)

	le := station(d.Fins.Position)
	for _, sign := range []float64{1, -1} {
		fin := []point{
			{le, sign * radius},
			{le + pf.SweepLength(), sign * halfSpan},
			{le + pf.SweepLength() + pf.TipChord(), sign * halfSpan},
			{le + pf.RootChord(), sign * radius},
		}
		sb.WriteString(`<path fill="#2e1a2e" stroke="#ff88ff" stroke-width="1.5" d="`)
		for i, p := range fin {
			x, y := px(p)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString(` Z"/>
`)
	}

	marker := func(label, color string, x float64, filled bool) {
		cx, cy := px(point{station(x), 0})
		fill := "none"
		if filled {
			fill = color
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>
<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="12" text-anchor="middle">%s</text>
`, cx, cy, 0.5*radius*scale, fill, color, cx, cy-radius*scale-4, color, label))
	}
	marker("CG", "#00ff88", r.DryTotal.CG.X, false)
	marker("CP", "#ffaa00", r.CP, true)

	sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="#888899" font-family="monospace" font-size="12">%s  margin %.2f cal</text>
`, height-8, r.Name, r.StaticMargin))
	sb.WriteString("</svg>")
	return sb.String()
}

func writeLine(sb *strings.Builder, px func(point) (float64, float64), p point) {
	x, y := px(p)
	sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
}
