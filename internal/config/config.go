package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeStep = 0.01
	DefaultSkin     = 0.4
	DefaultBoxL     = 10.0
	DefaultSteps    = 1000
	DefaultKT       = 1.0
	DefaultGamma    = 1.0
	DefaultEpsilon  = 1.0
	DefaultSigma    = 1.0
)

type Config struct {
	Scheme      string           `yaml:"scheme"`
	Thermostat  string           `yaml:"thermostat"`
	TimeStep    float64          `yaml:"time_step"`
	Skin        float64          `yaml:"skin"`
	BoxL        [3]float64       `yaml:"box_l"`
	Periodicity [3]bool          `yaml:"periodicity"`
	Steps       int              `yaml:"steps"`
	Seed        int64            `yaml:"seed"`
	Particles   ParticlesConfig  `yaml:"particles"`
	Thermo      ThermostatConfig `yaml:"thermostat_params"`
	SchemeP     SchemeConfig     `yaml:"scheme_params"`
	WCA         WCAConfig        `yaml:"wca"`
}

type ParticlesConfig struct {
	Count   int     `yaml:"count"`
	Type    int     `yaml:"type"`
	Mass    float64 `yaml:"mass"`
	Spacing float64 `yaml:"spacing"`
}

type ThermostatConfig struct {
	KT     float64 `yaml:"kt"`
	Gamma  float64 `yaml:"gamma"`
	Gamma0 float64 `yaml:"gamma0"`
	GammaV float64 `yaml:"gammav"`
}

type SchemeConfig struct {
	ExtPressure     float64 `yaml:"ext_pressure"`
	Piston          float64 `yaml:"piston"`
	Viscosity       float64 `yaml:"viscosity"`
	Radius          float64 `yaml:"radius"`
	FMax            float64 `yaml:"f_max"`
	Gamma           float64 `yaml:"gamma"`
	MaxDisplacement float64 `yaml:"max_displacement"`
}

type WCAConfig struct {
	Epsilon float64 `yaml:"epsilon"`
	Sigma   float64 `yaml:"sigma"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme:      "vv",
		Thermostat:  "langevin",
		TimeStep:    DefaultTimeStep,
		Skin:        DefaultSkin,
		BoxL:        [3]float64{DefaultBoxL, DefaultBoxL, DefaultBoxL},
		Periodicity: [3]bool{true, true, true},
		Steps:       DefaultSteps,
		Seed:        42,
		Particles: ParticlesConfig{
			Count:   27,
			Mass:    1.0,
			Spacing: 1.5,
		},
		Thermo: ThermostatConfig{
			KT:    DefaultKT,
			Gamma: DefaultGamma,
		},
		SchemeP: SchemeConfig{
			Gamma:           0.1,
			MaxDisplacement: 0.1,
			Piston:          1.0,
			ExtPressure:     1.0,
			Viscosity:       1.0,
			Radius:          1.0,
		},
		WCA: WCAConfig{
			Epsilon: DefaultEpsilon,
			Sigma:   DefaultSigma,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
