package md

// ForceEvaluator computes forces for all particles in a store. Evaluation
// overwrites Particle.Force; it never moves particles. Implementations may
// fail with ErrNumericalInstability when the configuration produces
// non-finite forces.
type ForceEvaluator interface {
	ComputeForces(s *Store) error
}

// PotentialEnergy is an optional upgrade on a ForceEvaluator used by energy
// observables.
type PotentialEnergy interface {
	PotentialEnergy(s *Store) float64
}

// Shape is a geometric constraint surface. SignedDistance is negative on the
// forbidden side.
type Shape interface {
	SignedDistance(pos Vec3) float64
}

// FluidCoupler is the optional lattice-fluid collaborator. CoupledStep
// advances the fluid one time step and may adjust particle forces; the
// pressure tensor queries are read-only and consumed by the analysis layer.
type FluidCoupler interface {
	CoupledStep(s *Store, dt float64) error
	PressureTensor() [3][3]float64
	PressureTensorNode(node int) ([3][3]float64, error)
}

// Observer is notified after every completed integration step.
type Observer interface {
	OnStep(s *Store, t float64)
}
