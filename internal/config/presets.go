package config

import "sort"

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"boattail": func() *Config {
		c := DefaultConfig()
		c.Name = "boattail"
		c.Tail = TailConfig{Kind: "conical", Length: 0.175, AftRadius: 0.05, Thickness: 0.003, Material: "aluminum"}
		c.Fins.Position = 0.30
		return c
	}(),
	"carbon-6in": func() *Config {
		c := DefaultConfig()
		c.Name = "carbon-6in"
		c.Tube = "6.0in"
		c.Nose = NoseConfig{Kind: "von_karman", Length: 0.78359, Thickness: 0.003, Material: "carbon_fiber"}
		c.Upper = SegmentConfig{Length: 1.2, Thickness: 0.002, Material: "carbon_fiber"}
		c.Lower = SegmentConfig{Length: 1.0, Thickness: 0.002, Material: "carbon_fiber"}
		c.Fins = FinConfig{
			Count: 3, TotalArea: 0.036, AspectRatio: 2.0, TaperRatio: 0.5,
			Position: 0.20, Thickness: 0.005, Airfoil: "diamond", Material: "carbon_fiber",
		}
		return c
	}(),
	"haack-4in": func() *Config {
		c := DefaultConfig()
		c.Name = "haack-4in"
		c.Tube = "4.5in"
		c.Nose = NoseConfig{Kind: "lv_haack", Length: 0.45, Thickness: 0.003, Material: "fiberglass"}
		c.Upper = SegmentConfig{Length: 0.9, Thickness: 0.002, Material: "fiberglass"}
		c.Lower = SegmentConfig{Length: 0.7, Thickness: 0.002, Material: "fiberglass"}
		c.Fins.Material = "fiberglass"
		c.Mission.PayloadVolume = 0.002
		c.Mission.RecoveryVolume = 0.003
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	c, ok := Presets[name]
	if !ok {
		return nil
	}
	return c.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
