package scheme

import (
	"math"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/thermostat"
)

// BrownianStepper performs the overdamped position update. The friction and
// temperature come from the Brownian thermostat entry; the compatibility
// check guarantees it is present before Step runs.
type BrownianStepper struct{}

func NewBrownianStepper() *BrownianStepper {
	return &BrownianStepper{}
}

func (b *BrownianStepper) Kind() Kind { return BrownianDynamics }

func (b *BrownianStepper) Step(env *Env) error {
	th, _ := env.Thermostats.Get(thermostat.Brownian)
	dt := env.TimeStep
	noisePref := math.Sqrt(2.0 * th.KT * dt / th.Gamma)

	return env.Store.ForEach(func(p *md.Particle) error {
		drift := p.Force.Scale(dt / th.Gamma)
		for d := 0; d < 3; d++ {
			drift[d] += noisePref * env.Rand.NormFloat64()
		}
		p.Pos = env.fold(p.Pos.Add(drift))
		// Terminal velocity, not an inertial one.
		p.Vel = p.Force.Scale(1.0 / th.Gamma)
		return nil
	})
}
