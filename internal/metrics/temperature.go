// Package metrics provides observables that watch the step pipeline through
// the md.Observer interface and reduce to a single value after a run.
package metrics

import (
	"github.com/san-kum/mdsim/internal/md"
)

// KineticTemperature averages the instantaneous kinetic temperature
// 2 E_kin / (3 N) over the observed steps.
type KineticTemperature struct {
	samples int
	sum     float64
}

func NewKineticTemperature() *KineticTemperature {
	return &KineticTemperature{}
}

func (m *KineticTemperature) Name() string { return "kinetic_temperature" }

func (m *KineticTemperature) OnStep(s *md.Store, t float64) {
	n := s.Len()
	if n == 0 {
		return
	}
	kinetic := 0.0
	_ = s.ForEach(func(p *md.Particle) error {
		kinetic += 0.5 * p.Mass * p.Vel.Norm2()
		return nil
	})
	m.samples++
	m.sum += 2.0 * kinetic / (3.0 * float64(n))
}

func (m *KineticTemperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *KineticTemperature) Reset() {
	m.samples = 0
	m.sum = 0
}
