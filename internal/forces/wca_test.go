package forces

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/mdsim/internal/md"
)

func openBox() *Field {
	return NewField(md.Vec3{100, 100, 100}, [3]bool{false, false, false})
}

func TestWCARepulsion(t *testing.T) {
	f := openBox()
	if err := f.SetWCA(0, 0, 1.0, 1.0); err != nil {
		t.Fatal(err)
	}

	s := md.NewStore()
	s.Add(md.Particle{Pos: md.Vec3{0, 0, 0}})
	s.Add(md.Particle{Pos: md.Vec3{0.9, 0, 0}})

	if err := f.ComputeForces(s); err != nil {
		t.Fatal(err)
	}

	// Particles closer than the WCA minimum repel along the pair axis.
	if got := s.Get(0).Force[0]; got >= 0 {
		t.Errorf("expected particle 0 pushed in -x, got %g", got)
	}
	if got := s.Get(1).Force[0]; got <= 0 {
		t.Errorf("expected particle 1 pushed in +x, got %g", got)
	}
	sum := s.Get(0).Force.Add(s.Get(1).Force)
	if sum.Norm() > 1e-12 {
		t.Errorf("expected forces to cancel, residual %v", sum)
	}
}

func TestWCAZeroBeyondCutoff(t *testing.T) {
	f := openBox()
	_ = f.SetWCA(0, 0, 1.0, 1.0)

	s := md.NewStore()
	s.Add(md.Particle{Pos: md.Vec3{0, 0, 0}})
	s.Add(md.Particle{Pos: md.Vec3{3, 0, 0}})

	if err := f.ComputeForces(s); err != nil {
		t.Fatal(err)
	}
	if got := s.Get(0).Force.Norm(); got != 0 {
		t.Errorf("expected zero force beyond cutoff, got %g", got)
	}
	if e := f.PotentialEnergy(s); e != 0 {
		t.Errorf("expected zero energy beyond cutoff, got %g", e)
	}
}

func TestWCAMinimumImage(t *testing.T) {
	f := NewField(md.Vec3{10, 10, 10}, [3]bool{true, true, true})
	_ = f.SetWCA(0, 0, 1.0, 1.0)

	s := md.NewStore()
	s.Add(md.Particle{Pos: md.Vec3{0.2, 0, 0}})
	s.Add(md.Particle{Pos: md.Vec3{9.8, 0, 0}})

	if err := f.ComputeForces(s); err != nil {
		t.Fatal(err)
	}
	// Across the boundary the pair is only 0.4 apart and must interact.
	if got := s.Get(0).Force[0]; got <= 0 {
		t.Errorf("expected particle 0 pushed in +x across boundary, got %g", got)
	}
}

func TestWCAOverlapIsUnstable(t *testing.T) {
	f := openBox()
	_ = f.SetWCA(0, 0, 1.0, 1.0)

	s := md.NewStore()
	s.Add(md.Particle{Pos: md.Vec3{1, 1, 1}})
	s.Add(md.Particle{Pos: md.Vec3{1, 1, 1}})

	err := f.ComputeForces(s)
	if !errors.Is(err, md.ErrNumericalInstability) {
		t.Errorf("expected ErrNumericalInstability, got %v", err)
	}
}

func TestWCAEnergyPositive(t *testing.T) {
	f := openBox()
	_ = f.SetWCA(0, 0, 1.0, 1.0)

	s := md.NewStore()
	s.Add(md.Particle{Pos: md.Vec3{0, 0, 0}})
	s.Add(md.Particle{Pos: md.Vec3{1.0, 0, 0}})

	e := f.PotentialEnergy(s)
	if e <= 0 || math.IsNaN(e) {
		t.Errorf("expected positive shifted WCA energy, got %g", e)
	}
}

func TestSetWCAValidation(t *testing.T) {
	f := openBox()
	if err := f.SetWCA(0, 0, -1, 1); !errors.Is(err, md.ErrInvalidParameter) {
		t.Errorf("expected invalid epsilon, got %v", err)
	}
	if err := f.SetWCA(0, 0, 1, 0); !errors.Is(err, md.ErrInvalidParameter) {
		t.Errorf("expected invalid sigma, got %v", err)
	}
}
