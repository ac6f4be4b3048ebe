package metrics

import (
	"math"

	"github.com/san-kum/mdsim/internal/md"
)

// EnergyDrift tracks relative total-energy drift against the first observed
// step. The potential source is optional; without one only kinetic energy is
// tracked.
type EnergyDrift struct {
	potential md.PotentialEnergy

	initial float64
	set     bool
	drift   float64
	History []float64
}

func NewEnergyDrift(potential md.PotentialEnergy) *EnergyDrift {
	return &EnergyDrift{potential: potential}
}

func (m *EnergyDrift) Name() string { return "energy_drift" }

func (m *EnergyDrift) total(s *md.Store) float64 {
	e := 0.0
	_ = s.ForEach(func(p *md.Particle) error {
		e += 0.5 * p.Mass * p.Vel.Norm2()
		return nil
	})
	if m.potential != nil {
		e += m.potential.PotentialEnergy(s)
	}
	return e
}

func (m *EnergyDrift) OnStep(s *md.Store, t float64) {
	e := m.total(s)
	m.History = append(m.History, e)
	if !m.set {
		m.initial = e
		m.set = true
		return
	}
	if m.initial != 0 {
		m.drift = math.Abs(e-m.initial) / math.Abs(m.initial)
	}
}

func (m *EnergyDrift) Value() float64 {
	return m.drift
}

func (m *EnergyDrift) Reset() {
	m.initial = 0
	m.set = false
	m.drift = 0
	m.History = nil
}
