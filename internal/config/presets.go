package config

var presets = map[string]*Config{
	"gas-small": func() *Config {
		c := DefaultConfig()
		c.Particles.Count = 8
		c.Particles.Spacing = 2.0
		return c
	}(),
	"gas-dense": func() *Config {
		c := DefaultConfig()
		c.Particles.Count = 125
		c.Particles.Spacing = 1.1
		c.BoxL = [3]float64{8, 8, 8}
		return c
	}(),
	"brownian": func() *Config {
		c := DefaultConfig()
		c.Scheme = "brownian"
		c.Thermostat = "brownian"
		return c
	}(),
	"minimize": func() *Config {
		c := DefaultConfig()
		c.Scheme = "steepest_descent"
		c.Thermostat = "off"
		c.Steps = 200
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
