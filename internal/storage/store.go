package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/airframe/internal/config"
	"github.com/san-kum/airframe/internal/logging"
	"github.com/san-kum/airframe/internal/massprop"
	"github.com/san-kum/airframe/internal/vehicle"
)

const (
	metadataFile = "metadata.json"
	partsFile    = "parts.csv"
	designFile   = "design.yaml"
)

// ErrInvalidRunID is returned for ids that are not a single directory name.
var ErrInvalidRunID = errors.New("storage: invalid run id")

// Store keeps one directory per synthesis run.
type Store struct {
	baseDir string
	log     logging.Logger
}

func New(baseDir string, log logging.Logger) *Store {
	if log == nil {
		log = logging.Noop()
	}
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Mach       float64            `json:"mach"`
	Convention string             `json:"convention"`
	Motor      string             `json:"motor"`
	Stable     bool               `json:"stable"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Metrics flattens the headline numbers of a result.
func Metrics(r vehicle.Result) map[string]float64 {
	mass, diag, cg := r.SimulatorTuple()
	pf := r.Planform
	return map[string]float64{
		"dry_mass":        mass,
		"cg":              cg,
		"cp":              r.CP,
		"static_margin":   r.StaticMargin,
		"total_length":    r.TotalLength,
		"ixx":             diag[0],
		"iyy":             diag[1],
		"izz":             diag[2],
		"fin_span":        pf.Span(),
		"fin_root_chord":  pf.RootChord(),
		"fin_tip_chord":   pf.TipChord(),
		"fin_sweep_angle": pf.SweepAngleDegrees(),
	}
}

// slug reduces a design name to characters safe for a single path element.
func slug(name string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
	out = strings.TrimLeft(out, "._")
	if out == "" {
		return "run"
	}
	return out
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) || filepath.Base(runID) != runID {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Save(ctx context.Context, cfg *config.Config, r vehicle.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", slug(r.Name), now.UnixNano())
	runDir, err := s.runDir(runID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       r.Name,
		Timestamp:  now,
		Mach:       r.Mach,
		Convention: cfg.Convention,
		Motor:      r.Motor.Name,
		Stable:     r.Stable(cfg.Mission.MinStaticMargin),
		Metrics:    Metrics(r),
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, designFile), cfg); err != nil {
		return "", err
	}
	if err := writeParts(filepath.Join(runDir, partsFile), r); err != nil {
		return "", err
	}

	s.log.Info(ctx, "run saved", logging.String("run", runID), logging.String("dir", runDir))
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var partsHeader = []string{"name", "mass", "cg_x", "cg_y", "cg_z", "ixx", "iyy", "izz"}

func writeParts(path string, r vehicle.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(partsHeader); err != nil {
		return err
	}
	rows := append(append([]vehicle.Part(nil), r.Parts...), vehicle.Part{Name: "dry_total", Props: r.DryTotal})
	for _, p := range rows {
		d := p.Props.Inertia.Diagonal()
		row := []string{p.Name}
		for _, v := range []float64{p.Props.Mass, p.Props.CG.X, p.Props.CG.Y, p.Props.CG.Z, d[0], d[1], d[2]} {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List(ctx context.Context) ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Warn(ctx, "skipping run", logging.String("run", entry.Name()), logging.Err(err))
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadDesign(runID string) (*config.Config, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	return config.Load(filepath.Join(dir, designFile))
}

// LoadParts reads back the part table, including the dry_total row.
func (s *Store) LoadParts(runID string) ([]vehicle.Part, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, partsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(partsHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []vehicle.Part{}, nil
	}

	out := make([]vehicle.Part, 0, len(records)-1)
	for i, rec := range records[1:] {
		vals := make([]float64, len(rec)-1)
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", partsFile, i+2, err)
			}
			vals[j] = v
		}
		p := massprop.MassProperty{Mass: vals[0], Inertia: massprop.Diag(vals[4], vals[5], vals[6])}
		p.CG.X, p.CG.Y, p.CG.Z = vals[1], vals[2], vals[3]
		out = append(out, vehicle.Part{Name: rec[0], Props: p})
	}
	return out, nil
}
