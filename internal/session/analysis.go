package session

import (
	"fmt"

	"github.com/san-kum/mdsim/internal/md"
)

// Analysis answers observable queries between runs. Queries that depend on
// particle positions re-check constraint violation first, since positions
// may have been perturbed externally since the last Run.
type Analysis struct {
	s *Session
}

func (s *Session) Analysis() *Analysis {
	return &Analysis{s: s}
}

// Energy returns total kinetic plus potential energy of the current
// configuration.
func (a *Analysis) Energy() (float64, error) {
	if err := a.s.constraints.CheckViolations(a.s.store); err != nil {
		return 0, err
	}

	kinetic := 0.0
	_ = a.s.store.ForEach(func(p *md.Particle) error {
		kinetic += 0.5 * p.Mass * p.Vel.Norm2()
		return nil
	})

	potential := 0.0
	if pe, ok := a.s.forces.(md.PotentialEnergy); ok {
		potential = pe.PotentialEnergy(a.s.store)
	}
	return kinetic + potential, nil
}

// Temperature returns the instantaneous kinetic temperature
// 2 E_kin / (3 N).
func (a *Analysis) Temperature() (float64, error) {
	if err := a.s.constraints.CheckViolations(a.s.store); err != nil {
		return 0, err
	}
	n := a.s.store.Len()
	if n == 0 {
		return 0, nil
	}
	kinetic := 0.0
	_ = a.s.store.ForEach(func(p *md.Particle) error {
		kinetic += 0.5 * p.Mass * p.Vel.Norm2()
		return nil
	})
	return 2.0 * kinetic / (3.0 * float64(n)), nil
}

// PressureTensor returns the whole-domain fluid pressure tensor.
func (a *Analysis) PressureTensor() ([3][3]float64, error) {
	if a.s.fluid == nil {
		return [3][3]float64{}, fmt.Errorf("%w: no lattice fluid attached", md.ErrConfigurationIncomplete)
	}
	return a.s.fluid.PressureTensor(), nil
}

// PressureTensorNode returns the pressure tensor of a single fluid node.
func (a *Analysis) PressureTensorNode(node int) ([3][3]float64, error) {
	if a.s.fluid == nil {
		return [3][3]float64{}, fmt.Errorf("%w: no lattice fluid attached", md.ErrConfigurationIncomplete)
	}
	return a.s.fluid.PressureTensorNode(node)
}
