package md

import (
	"errors"
	"testing"
)

func TestStoreAddAssignsIDs(t *testing.T) {
	s := NewStore()

	id0 := s.Add(Particle{Pos: Vec3{0, 0, 0}})
	id1 := s.Add(Particle{Pos: Vec3{1, 0, 0}})

	if id0 != 0 || id1 != 1 {
		t.Errorf("expected ids 0 and 1, got %d and %d", id0, id1)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 particles, got %d", s.Len())
	}
}

func TestStoreDefaultMass(t *testing.T) {
	s := NewStore()
	id := s.Add(Particle{})
	if p := s.Get(id); p.Mass != 1.0 {
		t.Errorf("expected default mass 1, got %f", p.Mass)
	}
}

func TestStoreGetMutates(t *testing.T) {
	s := NewStore()
	id := s.Add(Particle{})

	s.Get(id).Pos = Vec3{1, 2, 3}

	if got := s.Get(id).Pos; got != (Vec3{1, 2, 3}) {
		t.Errorf("expected mutation to persist, got %v", got)
	}
}

func TestStoreForEachStopsOnError(t *testing.T) {
	s := NewStore()
	s.Add(Particle{})
	s.Add(Particle{})

	sentinel := errors.New("stop")
	visited := 0
	err := s.ForEach(func(p *Particle) error {
		visited++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel, got %v", err)
	}
	if visited != 1 {
		t.Errorf("expected 1 visit, got %d", visited)
	}
}

func TestStoreClearResetsIDs(t *testing.T) {
	s := NewStore()
	s.Add(Particle{})
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
	if id := s.Add(Particle{}); id != 0 {
		t.Errorf("expected id assignment to restart at 0, got %d", id)
	}
}
