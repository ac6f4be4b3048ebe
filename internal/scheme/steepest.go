package scheme

import (
	"github.com/san-kum/mdsim/internal/md"
)

// steepestRequired is the declared parameter contract for SetSteepestDescent.
var steepestRequired = []string{"f_max", "gamma", "max_displacement"}

// SteepestDescentStepper relaxes particles along the force direction with a
// per-component displacement clamp. Velocities are zeroed; the minimizer is
// only valid with no thermostat active.
type SteepestDescentStepper struct {
	FMax            float64
	Gamma           float64
	MaxDisplacement float64

	lastMaxForce float64
}

func NewSteepestDescentStepper(p md.Params) (*SteepestDescentStepper, error) {
	if err := md.CheckKeys("set_steepest_descent", steepestRequired, p); err != nil {
		return nil, err
	}
	if p["f_max"] < 0 {
		return nil, md.InvalidParam("f_max must be >= 0, got %g", p["f_max"])
	}
	if p["gamma"] <= 0 {
		return nil, md.InvalidParam("gamma must be > 0, got %g", p["gamma"])
	}
	if p["max_displacement"] <= 0 {
		return nil, md.InvalidParam("max_displacement must be > 0, got %g", p["max_displacement"])
	}
	return &SteepestDescentStepper{
		FMax:            p["f_max"],
		Gamma:           p["gamma"],
		MaxDisplacement: p["max_displacement"],
	}, nil
}

func (s *SteepestDescentStepper) Kind() Kind { return SteepestDescent }

// Converged reports whether the largest force component seen in the last
// step dropped to f_max or below. False until the first step runs.
func (s *SteepestDescentStepper) Converged() bool {
	return s.lastMaxForce > 0 && s.lastMaxForce <= s.FMax
}

func (s *SteepestDescentStepper) Step(env *Env) error {
	maxForce := 0.0

	err := env.Store.ForEach(func(p *md.Particle) error {
		if f := p.Force.MaxAbs(); f > maxForce {
			maxForce = f
		}
		disp := p.Force.Scale(s.Gamma)
		for d := 0; d < 3; d++ {
			if disp[d] > s.MaxDisplacement {
				disp[d] = s.MaxDisplacement
			} else if disp[d] < -s.MaxDisplacement {
				disp[d] = -s.MaxDisplacement
			}
		}
		p.Pos = env.fold(p.Pos.Add(disp))
		p.Vel = md.Vec3{}
		return nil
	})
	if err != nil {
		return err
	}

	s.lastMaxForce = maxForce
	return nil
}
