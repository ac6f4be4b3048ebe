package session

import (
	"github.com/san-kum/mdsim/internal/leesedwards"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/scheme"
	"github.com/san-kum/mdsim/internal/thermostat"
)

// checkCompatibility is the fixed scheme/thermostat/periodicity/Lees-Edwards
// compatibility table, evaluated before any force computation so a rejected
// configuration never applies a partial step.
//
//	velocity Verlet    none, Langevin or LB coupling only
//	Brownian dynamics  exactly the Brownian thermostat
//	NpT                exactly the NpT thermostat, no Lees-Edwards (even Off)
//	Stokesian dynamics exactly the Stokesian thermostat, periodicity disabled
//	steepest descent   no thermostat at all
func checkCompatibility(k scheme.Kind, th *thermostat.Set, periodicity [3]bool, le leesedwards.Protocol) error {
	switch k {
	case scheme.VelocityVerlet:
		for _, kind := range th.Kinds() {
			if kind != thermostat.Langevin && kind != thermostat.LBCoupled {
				return &md.IncompatibilityError{
					Scheme: k.String(),
					Rule:   "is incompatible with the currently active combination of thermostats",
				}
			}
		}

	case scheme.BrownianDynamics:
		if !th.Only(thermostat.Brownian) {
			return &md.IncompatibilityError{
				Scheme: k.String(),
				Rule:   "requires the Brownian thermostat",
			}
		}

	case scheme.IsotropicNPT:
		if !th.Only(thermostat.NPT) {
			return &md.IncompatibilityError{
				Scheme: k.String(),
				Rule:   "requires the NpT thermostat",
			}
		}
		if le != nil {
			return &md.IncompatibilityError{
				Scheme: k.String(),
				Rule:   "cannot use Lees-Edwards",
			}
		}

	case scheme.StokesianDynamics:
		if periodicity[0] || periodicity[1] || periodicity[2] {
			return &md.IncompatibilityError{
				Scheme: k.String(),
				Rule:   "requires periodicity to be fully disabled",
			}
		}
		if !th.Only(thermostat.Stokesian) {
			return &md.IncompatibilityError{
				Scheme: k.String(),
				Rule:   "requires the Stokesian thermostat",
			}
		}

	case scheme.SteepestDescent:
		if th.Active() {
			return &md.IncompatibilityError{
				Scheme: k.String(),
				Rule:   "is incompatible with thermostats",
			}
		}
	}
	return nil
}
