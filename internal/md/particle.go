package md

type Particle struct {
	ID    int
	Type  int
	Mass  float64
	Pos   Vec3
	Vel   Vec3
	Force Vec3
}

// Store owns particle state for one simulation session. The integrator
// mutates positions, velocities and forces through it but never reallocates
// behind the caller's back; IDs are stable until Clear.
type Store struct {
	nextID    int
	particles []Particle
}

func NewStore() *Store {
	return &Store{}
}

// Add inserts a particle and returns its assigned id. Zero mass defaults
// to 1.
func (s *Store) Add(p Particle) int {
	p.ID = s.nextID
	s.nextID++
	if p.Mass == 0 {
		p.Mass = 1.0
	}
	s.particles = append(s.particles, p)
	return p.ID
}

func (s *Store) Len() int {
	return len(s.particles)
}

// Get returns a mutable reference to the particle with the given id, or nil.
func (s *Store) Get(id int) *Particle {
	for i := range s.particles {
		if s.particles[i].ID == id {
			return &s.particles[i]
		}
	}
	return nil
}

// ForEach visits every particle in insertion order, stopping at the first
// error.
func (s *Store) ForEach(fn func(p *Particle) error) error {
	for i := range s.particles {
		if err := fn(&s.particles[i]); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes all particles and resets id assignment.
func (s *Store) Clear() {
	s.particles = s.particles[:0]
	s.nextID = 0
}
