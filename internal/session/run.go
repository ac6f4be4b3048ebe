package session

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/scheme"
)

// runState tracks the executor through one Run invocation:
// Idle -> Validating -> Stepping -> (Idle | Faulted). Faulted is terminal
// for the invocation only; the session stays usable and the next Run
// revalidates from scratch.
type runState int

const (
	stateIdle runState = iota
	stateValidating
	stateStepping
	stateFaulted
)

func (s runState) String() string {
	switch s {
	case stateValidating:
		return "validating"
	case stateStepping:
		return "stepping"
	case stateFaulted:
		return "faulted"
	default:
		return "idle"
	}
}

// RunOpts are the per-invocation step flags. RecalcForces forces a fresh
// force evaluation before the first update; ReuseForces keeps whatever
// forces are standing. Setting both is a contradiction and rejected.
type RunOpts struct {
	RecalcForces bool
	ReuseForces  bool
}

// State returns the executor state as of the last Run invocation.
func (s *Session) State() string {
	return s.state.String()
}

// LastFault returns the error that faulted the last Run, or nil.
func (s *Session) LastFault() error {
	return s.lastFault
}

func (s *Session) fault(err error) error {
	s.state = stateFaulted
	s.lastFault = err
	return err
}

// Run validates the current configuration and executes the requested number
// of integration steps. steps == 0 still validates everything, computes
// forces, and runs the constraint check without advancing state. On a fault
// the remaining steps of this invocation are abandoned; already-applied
// steps are not rolled back.
func (s *Session) Run(ctx context.Context, steps int, opts RunOpts) error {
	s.state = stateValidating
	s.lastFault = nil

	if steps < 0 {
		return s.fault(md.InvalidParam("steps must be positive, got %d", steps))
	}
	if opts.RecalcForces && opts.ReuseForces {
		return s.fault(fmt.Errorf("%w: cannot reuse old forces and recalculate forces", md.ErrConflictingOptions))
	}
	if !s.skinSet {
		return s.fault(fmt.Errorf("%w: cannot automatically determine skin, please set it manually", md.ErrConfigurationIncomplete))
	}
	if s.forces == nil {
		return s.fault(fmt.Errorf("%w: no force field attached", md.ErrConfigurationIncomplete))
	}
	if err := checkCompatibility(s.selector.Kind(), s.thermostats, s.periodicity, s.protocol); err != nil {
		return s.fault(err)
	}

	s.state = stateStepping
	stepper := s.selector.Current()
	env := &scheme.Env{
		Store:       s.store,
		Forces:      s.forces,
		Thermostats: s.thermostats,
		TimeStep:    s.timeStep,
		BoxLength:   s.boxLength,
		Periodicity: s.periodicity,
		Rand:        rand.New(rand.NewSource(s.noiseSeed())),
	}

	// Velocity-Verlet-family kernels re-evaluate forces at the updated
	// positions inside Step, so the standing forces are already fresh at
	// the top of the next iteration.
	selfRefreshing := stepper.Kind() == scheme.VelocityVerlet || stepper.Kind() == scheme.IsotropicNPT

	forcesFresh := opts.ReuseForces
	if steps == 0 {
		if !forcesFresh {
			if err := s.forces.ComputeForces(s.store); err != nil {
				return s.fault(err)
			}
		}
		if err := s.constraints.CheckViolations(s.store); err != nil {
			return s.fault(err)
		}
		s.state = stateIdle
		return nil
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return s.fault(ctx.Err())
		default:
		}

		if !forcesFresh {
			if err := s.forces.ComputeForces(s.store); err != nil {
				return s.fault(err)
			}
		}
		forcesFresh = selfRefreshing

		if err := stepper.Step(env); err != nil {
			return s.fault(err)
		}
		if err := s.constraints.CheckViolations(s.store); err != nil {
			return s.fault(err)
		}
		if s.fluid != nil {
			if err := s.fluid.CoupledStep(s.store, s.timeStep); err != nil {
				return s.fault(err)
			}
		}

		s.time += s.timeStep
		for _, o := range s.observers {
			o.OnStep(s.store, s.time)
		}
	}

	s.state = stateIdle
	return nil
}

// noiseSeed derives the thermal noise seed from the active thermostat so a
// seeded thermostat gives reproducible trajectories.
func (s *Session) noiseSeed() int64 {
	for _, k := range s.thermostats.Kinds() {
		if e, ok := s.thermostats.Get(k); ok {
			return e.Seed
		}
	}
	return 0
}
