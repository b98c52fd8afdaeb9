package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/airframe/internal/vehicle"
)

type ExportPart struct {
	Name    string     `json:"name"`
	Mass    float64    `json:"mass"`
	CG      [3]float64 `json:"cg"`
	Inertia [3]float64 `json:"inertia_diagonal"`
}

type ExportData struct {
	Name          string             `json:"name"`
	Mach          float64            `json:"mach"`
	Motor         string             `json:"motor,omitempty"`
	Metrics       map[string]float64 `json:"metrics"`
	Parts         []ExportPart       `json:"parts"`
	Contributions []ExportCNAlpha    `json:"cn_alpha"`
}

type ExportCNAlpha struct {
	Name     string  `json:"name"`
	CNAlpha  float64 `json:"cn_alpha"`
	Position float64 `json:"position"`
}

// ExportJSON writes a self-contained JSON description of r. Stations are in
// the internal tail-to-nose frame.
func ExportJSON(w io.Writer, r vehicle.Result) error {
	data := ExportData{
		Name:    r.Name,
		Mach:    r.Mach,
		Motor:   r.Motor.Name,
		Metrics: Metrics(r),
		Parts:   make([]ExportPart, len(r.Parts)),
	}
	for i, p := range r.Parts {
		data.Parts[i] = ExportPart{
			Name:    p.Name,
			Mass:    p.Props.Mass,
			CG:      [3]float64{p.Props.CG.X, p.Props.CG.Y, p.Props.CG.Z},
			Inertia: p.Props.Inertia.Diagonal(),
		}
	}
	for _, c := range r.Contributions {
		data.Contributions = append(data.Contributions, ExportCNAlpha{Name: c.Name, CNAlpha: c.CNAlpha, Position: c.Position})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
