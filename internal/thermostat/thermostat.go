// Package thermostat manages the set of active thermostats for a simulation
// session. The five supported kinds all occupy the primary thermostat slot:
// setting one replaces whatever held the slot before, and TurnOff empties the
// set unconditionally.
package thermostat

import (
	"github.com/san-kum/mdsim/internal/md"
)

type Kind int

const (
	None Kind = iota
	Langevin
	Brownian
	NPT
	LBCoupled
	Stokesian
)

func (k Kind) String() string {
	switch k {
	case Langevin:
		return "langevin"
	case Brownian:
		return "brownian"
	case NPT:
		return "npt"
	case LBCoupled:
		return "lb"
	case Stokesian:
		return "stokesian"
	default:
		return "none"
	}
}

// Entry is one active thermostat with its parameter record. Fields not used
// by a kind stay zero.
type Entry struct {
	Kind   Kind
	KT     float64
	Gamma  float64
	Gamma0 float64 // NPT particle friction
	GammaV float64 // NPT box friction
	Seed   int64
}

// Set holds the active thermostats. At most one entry per kind; the kinds
// handled here are mutually exclusive, so in practice the set holds zero or
// one entry.
type Set struct {
	entries map[Kind]Entry
}

func NewSet() *Set {
	return &Set{entries: make(map[Kind]Entry)}
}

// SetLangevin activates a Langevin thermostat, replacing the primary slot.
func (s *Set) SetLangevin(kT, gamma float64, seed int64) error {
	if err := validateKTGamma(kT, gamma); err != nil {
		return err
	}
	s.replace(Entry{Kind: Langevin, KT: kT, Gamma: gamma, Seed: seed})
	return nil
}

// SetBrownian activates a Brownian thermostat, replacing the primary slot.
func (s *Set) SetBrownian(kT, gamma float64, seed int64) error {
	if err := validateKTGamma(kT, gamma); err != nil {
		return err
	}
	s.replace(Entry{Kind: Brownian, KT: kT, Gamma: gamma, Seed: seed})
	return nil
}

// SetNPT activates the NpT thermostat with separate particle and box
// friction coefficients.
func (s *Set) SetNPT(kT, gamma0, gammav float64, seed int64) error {
	if kT < 0 {
		return md.InvalidParam("kT must be >= 0, got %g", kT)
	}
	if gamma0 <= 0 {
		return md.InvalidParam("gamma0 must be > 0, got %g", gamma0)
	}
	if gammav <= 0 {
		return md.InvalidParam("gammav must be > 0, got %g", gammav)
	}
	s.replace(Entry{Kind: NPT, KT: kT, Gamma0: gamma0, GammaV: gammav, Seed: seed})
	return nil
}

// SetLBCoupled activates the lattice-fluid friction coupling thermostat.
func (s *Set) SetLBCoupled(gamma float64, seed int64) error {
	if gamma <= 0 {
		return md.InvalidParam("gamma must be > 0, got %g", gamma)
	}
	s.replace(Entry{Kind: LBCoupled, Gamma: gamma, Seed: seed})
	return nil
}

// SetStokesian activates the Stokesian thermostat.
func (s *Set) SetStokesian(kT float64, seed int64) error {
	if kT < 0 {
		return md.InvalidParam("kT must be >= 0, got %g", kT)
	}
	s.replace(Entry{Kind: Stokesian, KT: kT, Seed: seed})
	return nil
}

// TurnOff empties the set. Calling it on an empty set is a no-op.
func (s *Set) TurnOff() {
	for k := range s.entries {
		delete(s.entries, k)
	}
}

// replace installs e as the sole occupant of the primary slot.
func (s *Set) replace(e Entry) {
	s.TurnOff()
	s.entries[e.Kind] = e
}

// Active reports whether any thermostat is active.
func (s *Set) Active() bool {
	return len(s.entries) > 0
}

// Has reports whether a thermostat of the given kind is active.
func (s *Set) Has(k Kind) bool {
	_, ok := s.entries[k]
	return ok
}

// Get returns the entry for the given kind.
func (s *Set) Get(k Kind) (Entry, bool) {
	e, ok := s.entries[k]
	return e, ok
}

// Kinds returns the active kinds. Order is unspecified.
func (s *Set) Kinds() []Kind {
	kinds := make([]Kind, 0, len(s.entries))
	for k := range s.entries {
		kinds = append(kinds, k)
	}
	return kinds
}

// Only reports whether the set contains exactly the given kind and nothing
// else.
func (s *Set) Only(k Kind) bool {
	return len(s.entries) == 1 && s.Has(k)
}

func validateKTGamma(kT, gamma float64) error {
	if kT < 0 {
		return md.InvalidParam("kT must be >= 0, got %g", kT)
	}
	if gamma <= 0 {
		return md.InvalidParam("gamma must be > 0, got %g", gamma)
	}
	return nil
}
