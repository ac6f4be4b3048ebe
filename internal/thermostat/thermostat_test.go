package thermostat

import (
	"errors"
	"testing"

	"github.com/san-kum/mdsim/internal/md"
)

func TestSetLangevin(t *testing.T) {
	s := NewSet()
	if err := s.SetLangevin(1.0, 1.0, 42); err != nil {
		t.Fatalf("set langevin failed: %v", err)
	}
	if !s.Has(Langevin) {
		t.Error("expected langevin active")
	}

	e, _ := s.Get(Langevin)
	if e.KT != 1.0 || e.Gamma != 1.0 || e.Seed != 42 {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestSetterValidation(t *testing.T) {
	s := NewSet()

	tests := []struct {
		name string
		call func() error
	}{
		{"langevin negative kT", func() error { return s.SetLangevin(-1, 1, 0) }},
		{"langevin zero gamma", func() error { return s.SetLangevin(1, 0, 0) }},
		{"brownian negative kT", func() error { return s.SetBrownian(-0.5, 1, 0) }},
		{"npt zero gamma0", func() error { return s.SetNPT(1, 0, 0.04, 0) }},
		{"npt negative gammav", func() error { return s.SetNPT(1, 2, -1, 0) }},
		{"lb zero gamma", func() error { return s.SetLBCoupled(0, 0) }},
		{"stokesian negative kT", func() error { return s.SetStokesian(-1, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, md.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			if s.Active() {
				t.Error("failed setter must not activate a thermostat")
			}
		})
	}
}

func TestPrimarySlotExclusivity(t *testing.T) {
	s := NewSet()

	if err := s.SetLangevin(1.0, 1.0, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBrownian(1.0, 1.0, 2); err != nil {
		t.Fatal(err)
	}

	if s.Has(Langevin) {
		t.Error("langevin should have been replaced")
	}
	if !s.Only(Brownian) {
		t.Errorf("expected only brownian, got %v", s.Kinds())
	}
}

func TestTurnOffIdempotent(t *testing.T) {
	s := NewSet()

	s.TurnOff()
	if s.Active() {
		t.Error("empty set should stay empty")
	}

	_ = s.SetNPT(1.0, 2.0, 0.04, 42)
	s.TurnOff()
	if s.Active() {
		t.Error("turn off should clear the set")
	}
	s.TurnOff()
	if s.Active() {
		t.Error("second turn off should be a no-op")
	}
}
