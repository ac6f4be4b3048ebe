package main

import (
	"fmt"
	"math"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/forces"
	"github.com/san-kum/mdsim/internal/lb"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/session"
)

// buildSession assembles a ready-to-run session from a resolved config:
// registry values, force field, lattice particle placement, thermostat and
// scheme selection, and the lattice fluid when requested.
func buildSession(cfg *config.Config) (*session.Session, *forces.Field, error) {
	sess := session.New()

	if err := sess.SetTimeStep(cfg.TimeStep); err != nil {
		return nil, nil, err
	}
	if err := sess.SetSkin(cfg.Skin); err != nil {
		return nil, nil, err
	}
	box := md.Vec3{cfg.BoxL[0], cfg.BoxL[1], cfg.BoxL[2]}
	if err := sess.SetBoxLength(box); err != nil {
		return nil, nil, err
	}
	sess.SetPeriodicity(cfg.Periodicity[0], cfg.Periodicity[1], cfg.Periodicity[2])

	field := forces.NewField(box, cfg.Periodicity)
	if cfg.WCA.Epsilon > 0 {
		if err := field.SetWCA(cfg.Particles.Type, cfg.Particles.Type, cfg.WCA.Epsilon, cfg.WCA.Sigma); err != nil {
			return nil, nil, err
		}
	}
	sess.SetForceField(field)

	placeLattice(sess, cfg)

	if err := applyThermostat(sess, cfg); err != nil {
		return nil, nil, err
	}
	if err := applyScheme(sess, cfg); err != nil {
		return nil, nil, err
	}
	return sess, field, nil
}

// placeLattice fills the box with a simple cubic arrangement.
func placeLattice(sess *session.Session, cfg *config.Config) {
	count := cfg.Particles.Count
	if count <= 0 {
		return
	}
	spacing := cfg.Particles.Spacing
	if spacing <= 0 {
		spacing = 1.0
	}
	side := int(math.Ceil(math.Cbrt(float64(count))))

	placed := 0
	for ix := 0; ix < side && placed < count; ix++ {
		for iy := 0; iy < side && placed < count; iy++ {
			for iz := 0; iz < side && placed < count; iz++ {
				sess.Particles().Add(md.Particle{
					Type: cfg.Particles.Type,
					Mass: cfg.Particles.Mass,
					Pos: md.Vec3{
						(float64(ix) + 0.5) * spacing,
						(float64(iy) + 0.5) * spacing,
						(float64(iz) + 0.5) * spacing,
					},
				})
				placed++
			}
		}
	}
}

func applyThermostat(sess *session.Session, cfg *config.Config) error {
	th := sess.Thermostat()
	switch cfg.Thermostat {
	case "off", "":
		th.TurnOff()
		return nil
	case "langevin":
		return th.SetLangevin(cfg.Thermo.KT, cfg.Thermo.Gamma, cfg.Seed)
	case "brownian":
		return th.SetBrownian(cfg.Thermo.KT, cfg.Thermo.Gamma, cfg.Seed)
	case "npt":
		return th.SetNPT(cfg.Thermo.KT, cfg.Thermo.Gamma0, cfg.Thermo.GammaV, cfg.Seed)
	case "lb":
		fluid, err := lb.NewFluid(sess.BoxLength(), 1.0, 1.0, cfg.SchemeP.Viscosity, cfg.Thermo.Gamma)
		if err != nil {
			return err
		}
		sess.AttachFluid(fluid)
		return th.SetLBCoupled(cfg.Thermo.Gamma, cfg.Seed)
	case "stokesian":
		return th.SetStokesian(cfg.Thermo.KT, cfg.Seed)
	default:
		return fmt.Errorf("unknown thermostat: %s", cfg.Thermostat)
	}
}

func applyScheme(sess *session.Session, cfg *config.Config) error {
	sel := sess.Scheme()
	switch cfg.Scheme {
	case "vv", "":
		sel.SetVelocityVerlet()
		return nil
	case "brownian":
		sel.SetBrownianDynamics()
		return nil
	case "npt":
		return sel.SetIsotropicNPT(md.Params{
			"ext_pressure": cfg.SchemeP.ExtPressure,
			"piston":       cfg.SchemeP.Piston,
		})
	case "stokesian":
		return sel.SetStokesianDynamics(cfg.SchemeP.Viscosity, map[int]float64{
			cfg.Particles.Type: cfg.SchemeP.Radius,
		})
	case "steepest_descent":
		return sel.SetSteepestDescent(md.Params{
			"f_max":            cfg.SchemeP.FMax,
			"gamma":            cfg.SchemeP.Gamma,
			"max_displacement": cfg.SchemeP.MaxDisplacement,
		})
	default:
		return fmt.Errorf("unknown scheme: %s", cfg.Scheme)
	}
}
