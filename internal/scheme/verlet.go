package scheme

import (
	"math"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/thermostat"
)

// VelocityVerletStepper performs the standard half-kick / drift / half-kick
// update. When a Langevin thermostat is active, friction and thermal noise
// are applied after the second force evaluation.
type VelocityVerletStepper struct{}

func NewVelocityVerletStepper() *VelocityVerletStepper {
	return &VelocityVerletStepper{}
}

func (v *VelocityVerletStepper) Kind() Kind { return VelocityVerlet }

func (v *VelocityVerletStepper) Step(env *Env) error {
	dt := env.TimeStep

	err := env.Store.ForEach(func(p *md.Particle) error {
		p.Vel = p.Vel.Add(p.Force.Scale(0.5 * dt / p.Mass))
		p.Pos = env.fold(p.Pos.Add(p.Vel.Scale(dt)))
		return nil
	})
	if err != nil {
		return err
	}

	if err := env.Forces.ComputeForces(env.Store); err != nil {
		return err
	}

	lang, hasLang := env.Thermostats.Get(thermostat.Langevin)

	return env.Store.ForEach(func(p *md.Particle) error {
		p.Vel = p.Vel.Add(p.Force.Scale(0.5 * dt / p.Mass))
		if hasLang {
			pref := math.Sqrt(2.0 * lang.KT * lang.Gamma / dt)
			for d := 0; d < 3; d++ {
				kick := -lang.Gamma*p.Vel[d] + pref*env.Rand.NormFloat64()
				p.Vel[d] += kick * dt / p.Mass
			}
		}
		return nil
	})
}
