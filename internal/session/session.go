// Package session owns the mutable state of one simulation: the
// configuration registry (time step, skin, periodicity, box geometry), the
// thermostat set, the integration scheme selector, the constraint set, the
// optional Lees-Edwards protocol and lattice-fluid coupling, and the step
// executor that advances it all while enforcing their compatibility.
package session

import (
	"github.com/san-kum/mdsim/internal/constraint"
	"github.com/san-kum/mdsim/internal/leesedwards"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/scheme"
	"github.com/san-kum/mdsim/internal/thermostat"
)

const defaultTimeStep = 0.01

// Session is one simulation instance. It is not safe for concurrent use:
// Run blocks and owns all contained state for its duration.
type Session struct {
	timeStep    float64
	skin        float64
	skinSet     bool
	periodicity [3]bool
	boxLength   md.Vec3

	thermostats *thermostat.Set
	selector    *scheme.Selector
	constraints *constraint.Set
	store       *md.Store
	forces      md.ForceEvaluator
	fluid       md.FluidCoupler
	protocol    leesedwards.Protocol
	observers   []md.Observer

	time      float64
	state     runState
	lastFault error
}

// New creates a session with velocity Verlet selected, full periodicity, a
// unit box, the default time step, and no skin. The force evaluator must be
// attached before running; skin must be set explicitly.
func New() *Session {
	return &Session{
		timeStep:    defaultTimeStep,
		periodicity: [3]bool{true, true, true},
		boxLength:   md.Vec3{1, 1, 1},
		thermostats: thermostat.NewSet(),
		selector:    scheme.NewSelector(),
		constraints: constraint.NewSet(),
		store:       md.NewStore(),
	}
}

// SetTimeStep validates and stores the integration time step.
func (s *Session) SetTimeStep(dt float64) error {
	if dt <= 0 {
		return md.InvalidParam("time_step must be > 0, got %g", dt)
	}
	s.timeStep = dt
	return nil
}

func (s *Session) TimeStep() float64 {
	return s.timeStep
}

// SetSkin stores the neighbor-list margin. It is never derived
// automatically; leaving it unset blocks stepping.
func (s *Session) SetSkin(skin float64) error {
	if skin < 0 {
		return md.InvalidParam("skin must be >= 0, got %g", skin)
	}
	s.skin = skin
	s.skinSet = true
	return nil
}

// Skin returns the skin and whether it has been set.
func (s *Session) Skin() (float64, bool) {
	return s.skin, s.skinSet
}

// SetPeriodicity stores the per-axis boundary flags. Always succeeds.
func (s *Session) SetPeriodicity(x, y, z bool) {
	s.periodicity = [3]bool{x, y, z}
}

func (s *Session) Periodicity() [3]bool {
	return s.periodicity
}

// SetBoxLength validates and stores the simulation box dimensions.
func (s *Session) SetBoxLength(l md.Vec3) error {
	for d := 0; d < 3; d++ {
		if l[d] <= 0 {
			return md.InvalidParam("box_l must be > 0 in every direction, got %v", l)
		}
	}
	s.boxLength = l
	return nil
}

func (s *Session) BoxLength() md.Vec3 {
	return s.boxLength
}

// Thermostat exposes the thermostat set.
func (s *Session) Thermostat() *thermostat.Set {
	return s.thermostats
}

// Scheme exposes the integration scheme selector.
func (s *Session) Scheme() *scheme.Selector {
	return s.selector
}

// Constraints exposes the constraint set.
func (s *Session) Constraints() *constraint.Set {
	return s.constraints
}

// Particles exposes the particle storage.
func (s *Session) Particles() *md.Store {
	return s.store
}

// SetForceField attaches the force evaluator used by the step pipeline.
func (s *Session) SetForceField(f md.ForceEvaluator) {
	s.forces = f
}

// SetLeesEdwards installs a Lees-Edwards protocol. A nil protocol removes
// it; note the explicit Off variant still counts as set for the NpT
// compatibility rule.
func (s *Session) SetLeesEdwards(p leesedwards.Protocol) {
	s.protocol = p
}

func (s *Session) LeesEdwards() leesedwards.Protocol {
	return s.protocol
}

// AttachFluid couples a lattice fluid to the step pipeline. nil detaches.
func (s *Session) AttachFluid(f md.FluidCoupler) {
	s.fluid = f
}

func (s *Session) Fluid() md.FluidCoupler {
	return s.fluid
}

// AddObserver registers an observer notified after each completed step.
func (s *Session) AddObserver(o md.Observer) {
	s.observers = append(s.observers, o)
}

// Time returns the accumulated simulation time.
func (s *Session) Time() float64 {
	return s.time
}

// Reset restores the session to its post-construction defaults so it can be
// reused: thermostats off, constraints and particles cleared, Lees-Edwards
// removed, velocity Verlet selected, skin unset, clock zeroed. The time
// step, box geometry, periodicity, force field and fluid coupling are kept.
func (s *Session) Reset() {
	s.thermostats.TurnOff()
	s.constraints.Clear()
	s.store.Clear()
	s.protocol = nil
	s.selector = scheme.NewSelector()
	s.skinSet = false
	s.skin = 0
	s.time = 0
	s.state = stateIdle
	s.lastFault = nil
}
