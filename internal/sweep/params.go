// Package sweep evaluates a vehicle design over a grid of design-variable
// values in parallel.
package sweep

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/airframe/internal/parts"
	"github.com/san-kum/airframe/internal/vehicle"
)

// Param is one swept design variable and the values it takes.
type Param struct {
	Name   string
	Values []float64
}

// Axis spaces steps values evenly over [min, max].
func Axis(name string, min, max float64, steps int) (Param, error) {
	if steps < 1 {
		return Param{}, fmt.Errorf("%s: steps must be positive, got %d", name, steps)
	}
	if steps == 1 {
		return Param{Name: name, Values: []float64{min}}, nil
	}
	vals := make([]float64, steps)
	for i := range vals {
		vals[i] = min + (max-min)*float64(i)/float64(steps-1)
	}
	return Param{Name: name, Values: vals}, nil
}

// ParseParam reads "name=min:max:steps" or "name=v1,v2,...".
func ParseParam(arg string) (Param, error) {
	name, rest, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || rest == "" {
		return Param{}, fmt.Errorf("invalid parameter %q: want name=min:max:steps or name=v1,v2", arg)
	}

	if fields := strings.Split(rest, ":"); len(fields) == 3 {
		lo, err1 := strconv.ParseFloat(fields[0], 64)
		hi, err2 := strconv.ParseFloat(fields[1], 64)
		n, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return Param{}, fmt.Errorf("invalid range in %q", arg)
		}
		return Axis(name, lo, hi, n)
	}

	var vals []float64
	for _, f := range strings.Split(rest, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Param{}, fmt.Errorf("invalid value in %q: %w", arg, err)
		}
		vals = append(vals, v)
	}
	return Param{Name: name, Values: vals}, nil
}

type Setter func(d *vehicle.Design, v float64) error

// Registry maps swept parameter names to design setters.
type Registry struct {
	setters map[string]Setter
}

func NewRegistry() *Registry {
	r := &Registry{setters: make(map[string]Setter)}

	r.setters["fin_area"] = func(d *vehicle.Design, v float64) error { d.Fins.TotalArea = v; return nil }
	r.setters["fin_aspect_ratio"] = func(d *vehicle.Design, v float64) error { d.Fins.AspectRatio = v; return nil }
	r.setters["fin_taper_ratio"] = func(d *vehicle.Design, v float64) error { d.Fins.TaperRatio = v; return nil }
	r.setters["fin_position"] = func(d *vehicle.Design, v float64) error { d.Fins.Position = v; return nil }
	r.setters["fin_count"] = func(d *vehicle.Design, v float64) error {
		if v != math.Trunc(v) {
			return fmt.Errorf("fin_count must be whole, got %g", v)
		}
		d.Fins.Count = int(v)
		return nil
	}
	r.setters["nose_length"] = func(d *vehicle.Design, v float64) error { d.Nose.Length = v; return nil }
	r.setters["upper_length"] = func(d *vehicle.Design, v float64) error { d.Upper.Length = v; return nil }
	r.setters["lower_length"] = func(d *vehicle.Design, v float64) error { d.Lower.Length = v; return nil }
	r.setters["boattail_length"] = func(d *vehicle.Design, v float64) error {
		if d.Tail.Kind == parts.NoTail {
			return fmt.Errorf("boattail_length needs a tail, design has none")
		}
		d.Tail.Length = v
		return nil
	}
	r.setters["payload_mass"] = func(d *vehicle.Design, v float64) error { d.Reqs.PayloadMass = v; return nil }

	return r
}

func (r *Registry) Apply(d *vehicle.Design, name string, v float64) error {
	fn, ok := r.setters[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return fn(d, v)
}

func (r *Registry) Has(name string) bool {
	_, ok := r.setters[name]
	return ok
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.setters))
	for name := range r.setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Point is one assignment of every swept parameter.
type Point map[string]float64

// Grid enumerates the cartesian product of params. The last parameter varies
// fastest.
func Grid(params []Param) []Point {
	if len(params) == 0 {
		return nil
	}
	var out []Point
	grid(params, 0, Point{}, &out)
	return out
}

func grid(params []Param, depth int, current Point, out *[]Point) {
	if depth == len(params) {
		p := make(Point, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}
	for _, v := range params[depth].Values {
		current[params[depth].Name] = v
		grid(params, depth+1, current, out)
	}
}
