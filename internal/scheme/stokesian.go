package scheme

import (
	"math"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/thermostat"
)

// StokesianStepper drifts particles at their Stokes terminal velocity,
// v = F / (6 pi eta a), with thermal displacements from the Stokesian
// thermostat when kT > 0. Hydrodynamic radii are declared per particle type.
type StokesianStepper struct {
	Viscosity float64
	Radii     map[int]float64
}

func NewStokesianStepper(viscosity float64, radii map[int]float64) (*StokesianStepper, error) {
	if viscosity <= 0 {
		return nil, md.InvalidParam("viscosity must be > 0, got %g", viscosity)
	}
	if len(radii) == 0 {
		return nil, md.InvalidParam("radii must name at least one particle type")
	}
	for t, r := range radii {
		if r <= 0 {
			return nil, md.InvalidParam("radius for type %d must be > 0, got %g", t, r)
		}
	}
	own := make(map[int]float64, len(radii))
	for t, r := range radii {
		own[t] = r
	}
	return &StokesianStepper{Viscosity: viscosity, Radii: own}, nil
}

func (s *StokesianStepper) Kind() Kind { return StokesianDynamics }

func (s *StokesianStepper) Step(env *Env) error {
	dt := env.TimeStep
	th, _ := env.Thermostats.Get(thermostat.Stokesian)

	return env.Store.ForEach(func(p *md.Particle) error {
		radius, ok := s.Radii[p.Type]
		if !ok {
			return md.InvalidParam("no hydrodynamic radius declared for particle type %d", p.Type)
		}
		mobility := 1.0 / (6.0 * math.Pi * s.Viscosity * radius)
		p.Vel = p.Force.Scale(mobility)
		disp := p.Vel.Scale(dt)
		if th.KT > 0 {
			noisePref := math.Sqrt(2.0 * th.KT * mobility * dt)
			for d := 0; d < 3; d++ {
				disp[d] += noisePref * env.Rand.NormFloat64()
			}
		}
		p.Pos = env.fold(p.Pos.Add(disp))
		return nil
	})
}
