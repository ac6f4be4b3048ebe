package scheme

import (
	"math"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/thermostat"
)

// nptRequired is the declared parameter contract for SetIsotropicNPT.
var nptRequired = []string{"ext_pressure", "piston"}

// NPTStepper couples a velocity Verlet update to an isotropic piston degree
// of freedom. The piston momentum is scheme-local state: re-selecting the
// scheme starts from a resting piston.
type NPTStepper struct {
	ExtPressure float64
	Piston      float64

	pistonMomentum float64
}

func NewNPTStepper(p md.Params) (*NPTStepper, error) {
	if err := md.CheckKeys("set_isotropic_npt", nptRequired, p); err != nil {
		return nil, err
	}
	if p["piston"] <= 0 {
		return nil, md.InvalidParam("piston must be > 0, got %g", p["piston"])
	}
	return &NPTStepper{ExtPressure: p["ext_pressure"], Piston: p["piston"]}, nil
}

func (n *NPTStepper) Kind() Kind { return IsotropicNPT }

// PistonMomentum exposes the accumulated piston momentum for observables.
func (n *NPTStepper) PistonMomentum() float64 { return n.pistonMomentum }

func (n *NPTStepper) Step(env *Env) error {
	dt := env.TimeStep
	th, _ := env.Thermostats.Get(thermostat.NPT)

	// Instantaneous virial pressure estimate over the current box volume.
	volume := env.BoxLength[0] * env.BoxLength[1] * env.BoxLength[2]
	virial := 0.0
	kinetic := 0.0
	_ = env.Store.ForEach(func(p *md.Particle) error {
		virial += p.Force.Dot(p.Pos)
		kinetic += p.Mass * p.Vel.Norm2()
		return nil
	})
	pressure := (kinetic + virial) / (3.0 * volume)

	// Piston half-step with box friction and thermal noise on the volume
	// degree of freedom.
	noise := math.Sqrt(2.0*th.KT*th.GammaV*dt) * env.Rand.NormFloat64()
	n.pistonMomentum += (pressure-n.ExtPressure)*dt - th.GammaV*n.pistonMomentum*dt/n.Piston + noise

	noisePref := math.Sqrt(2.0 * th.KT * th.Gamma0 / dt)
	err := env.Store.ForEach(func(p *md.Particle) error {
		p.Vel = p.Vel.Add(p.Force.Scale(0.5 * dt / p.Mass))
		for d := 0; d < 3; d++ {
			kick := -th.Gamma0*p.Vel[d] + noisePref*env.Rand.NormFloat64()
			p.Vel[d] += kick * dt / p.Mass
		}
		p.Pos = env.fold(p.Pos.Add(p.Vel.Scale(dt)))
		return nil
	})
	if err != nil {
		return err
	}

	if err := env.Forces.ComputeForces(env.Store); err != nil {
		return err
	}

	return env.Store.ForEach(func(p *md.Particle) error {
		p.Vel = p.Vel.Add(p.Force.Scale(0.5 * dt / p.Mass))
		return nil
	})
}
