// Package viz renders synthesis results for the terminal.
//
// Reports are plain strings styled with lipgloss so they can be printed by
// the CLI or embedded in the interactive tweaker:
//
//   - [RenderReport]: totals, stations, margin and planform of one result
//   - [RenderParts]: per-part mass property table
//   - [SideView]: a one-line body profile with the CG and CP marked
//   - [PlotSweep]: asciigraph plot of a swept quantity
//
// Stations are printed in the caller's axial convention.
package viz
