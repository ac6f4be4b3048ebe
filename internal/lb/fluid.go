// Package lb provides the lattice-fluid coupling collaborator: a coarse
// fluid grid advanced once per integration step, exchanging momentum with
// particles through friction coupling and exposing pressure tensor queries
// for the analysis layer.
package lb

import (
	"github.com/san-kum/mdsim/internal/md"
)

type node struct {
	velocity md.Vec3
	stress   [3][3]float64
}

// Fluid is a minimal lattice fluid: a regular grid of cells carrying a flow
// velocity and a stress accumulator. The friction coupling applies
// -gamma*(v_particle - u_fluid) to particles and the opposite momentum to
// the hosting cell.
type Fluid struct {
	Agrid     float64
	Density   float64
	Viscosity float64
	Gamma     float64

	box   md.Vec3
	dims  [3]int
	nodes []node
}

// NewFluid builds a fluid grid covering the given box with cell size agrid.
func NewFluid(box md.Vec3, agrid, density, viscosity, gamma float64) (*Fluid, error) {
	if agrid <= 0 {
		return nil, md.InvalidParam("agrid must be > 0, got %g", agrid)
	}
	if density <= 0 {
		return nil, md.InvalidParam("density must be > 0, got %g", density)
	}
	if viscosity <= 0 {
		return nil, md.InvalidParam("viscosity must be > 0, got %g", viscosity)
	}
	if gamma <= 0 {
		return nil, md.InvalidParam("gamma must be > 0, got %g", gamma)
	}
	var dims [3]int
	total := 1
	for d := 0; d < 3; d++ {
		n := int(box[d] / agrid)
		if n < 1 {
			n = 1
		}
		dims[d] = n
		total *= n
	}
	return &Fluid{
		Agrid:     agrid,
		Density:   density,
		Viscosity: viscosity,
		Gamma:     gamma,
		box:       box,
		dims:      dims,
		nodes:     make([]node, total),
	}, nil
}

// NumNodes returns the number of lattice cells.
func (f *Fluid) NumNodes() int {
	return len(f.nodes)
}

func (f *Fluid) nodeAt(pos md.Vec3) *node {
	var idx [3]int
	for d := 0; d < 3; d++ {
		i := int(pos[d] / f.Agrid)
		if i < 0 {
			i = 0
		}
		if i >= f.dims[d] {
			i = f.dims[d] - 1
		}
		idx[d] = i
	}
	flat := (idx[2]*f.dims[1]+idx[1])*f.dims[0] + idx[0]
	return &f.nodes[flat]
}

// CoupledStep advances the fluid one time step: particle-fluid friction
// exchange, then viscous relaxation of the cell velocities. Particle forces
// are adjusted in place.
func (f *Fluid) CoupledStep(s *md.Store, dt float64) error {
	err := s.ForEach(func(p *md.Particle) error {
		cell := f.nodeAt(p.Pos)
		drag := p.Vel.Sub(cell.velocity).Scale(-f.Gamma)
		p.Force = p.Force.Add(drag)

		cellMass := f.Density * f.Agrid * f.Agrid * f.Agrid
		cell.velocity = cell.velocity.Sub(drag.Scale(dt / cellMass))

		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				cell.stress[a][b] += 0.5 * (drag[a]*p.Vel[b] + drag[b]*p.Vel[a]) * dt
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	relax := f.Viscosity * dt / (f.Agrid * f.Agrid)
	if relax > 1 {
		relax = 1
	}
	for i := range f.nodes {
		f.nodes[i].velocity = f.nodes[i].velocity.Scale(1 - relax)
	}
	return nil
}

// PressureTensorNode returns the 3x3 symmetric stress tensor of one cell.
func (f *Fluid) PressureTensorNode(i int) ([3][3]float64, error) {
	if i < 0 || i >= len(f.nodes) {
		return [3][3]float64{}, md.InvalidParam("node index %d out of range [0, %d)", i, len(f.nodes))
	}
	t := f.nodes[i].stress
	vol := f.Agrid * f.Agrid * f.Agrid
	n := f.nodes[i]
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			t[a][b] = t[a][b]/vol + f.Density*n.velocity[a]*n.velocity[b]
		}
	}
	return t, nil
}

// PressureTensor returns the whole-domain average of the per-node tensors.
func (f *Fluid) PressureTensor() [3][3]float64 {
	var avg [3][3]float64
	if len(f.nodes) == 0 {
		return avg
	}
	for i := range f.nodes {
		t, _ := f.PressureTensorNode(i)
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				avg[a][b] += t[a][b]
			}
		}
	}
	inv := 1.0 / float64(len(f.nodes))
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			avg[a][b] *= inv
		}
	}
	return avg
}
