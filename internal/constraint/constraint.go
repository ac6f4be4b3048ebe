// Package constraint holds geometric constraints and the violation scan the
// integrator runs after each position update.
package constraint

import (
	"github.com/san-kum/mdsim/internal/md"
)

// Constraint binds a shape to a particle type. Penetrable constraints only
// contribute interaction forces; non-penetrable ones additionally make any
// particle on the negative-distance side a hard fault.
type Constraint struct {
	Shape        md.Shape
	ParticleType int
	Penetrable   bool
}

// Set is the active constraint collection. Constraints are immutable once
// added; the set is cleared explicitly or on session teardown.
type Set struct {
	constraints []Constraint
}

func NewSet() *Set {
	return &Set{}
}

func (s *Set) Add(shape md.Shape, particleType int, penetrable bool) {
	s.constraints = append(s.constraints, Constraint{
		Shape:        shape,
		ParticleType: particleType,
		Penetrable:   penetrable,
	})
}

func (s *Set) Clear() {
	s.constraints = s.constraints[:0]
}

func (s *Set) Len() int {
	return len(s.constraints)
}

// CheckViolations scans every particle against every non-penetrable
// constraint and returns a ConstraintViolationError for the first particle
// found on the forbidden side.
func (s *Set) CheckViolations(store *md.Store) error {
	for _, c := range s.constraints {
		if c.Penetrable {
			continue
		}
		shape := c.Shape
		err := store.ForEach(func(p *md.Particle) error {
			if dist := shape.SignedDistance(p.Pos); dist < 0 {
				return &md.ConstraintViolationError{Particle: p.ID, Distance: dist}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
