package session_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mdsim/internal/constraint"
	"github.com/san-kum/mdsim/internal/leesedwards"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/session"
)

// countingField is a force evaluator that records how often it runs.
type countingField struct {
	calls int
}

func (f *countingField) ComputeForces(s *md.Store) error {
	f.calls++
	return s.ForEach(func(p *md.Particle) error {
		p.Force = md.Vec3{}
		return nil
	})
}

var _ = Describe("Integrator", func() {
	var (
		sess  *session.Session
		field *countingField
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		sess = session.New()
		field = &countingField{}
		sess.SetForceField(field)
		sess.Particles().Add(md.Particle{Pos: md.Vec3{0, 0, 0}})
	})

	Describe("common interface", func() {
		It("rejects non-positive time steps", func() {
			Expect(sess.SetTimeStep(-2.0)).To(MatchError(md.ErrInvalidParameter))
			Expect(sess.SetTimeStep(0.0)).To(MatchError(md.ErrInvalidParameter))
			Expect(sess.SetTimeStep(0.01)).To(Succeed())
			Expect(sess.TimeStep()).To(Equal(0.01))
		})

		It("rejects negative steps before any force computation", func() {
			err := sess.Run(ctx, -1, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrInvalidParameter))
			Expect(err.Error()).To(ContainSubstring("steps must be positive"))
			Expect(field.calls).To(BeZero())
		})

		It("demands an explicit skin, even for zero steps", func() {
			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrConfigurationIncomplete))
			Expect(err.Error()).To(ContainSubstring("cannot automatically determine skin, please set it manually"))
			Expect(field.calls).To(BeZero())
		})

		It("rejects reusing and recalculating forces at once", func() {
			Expect(sess.SetSkin(0.4)).To(Succeed())
			err := sess.Run(ctx, 10, session.RunOpts{RecalcForces: true, ReuseForces: true})
			Expect(err).To(MatchError(md.ErrConflictingOptions))
			Expect(err.Error()).To(ContainSubstring("cannot reuse old forces and recalculate forces"))
			Expect(field.calls).To(BeZero())
		})

		It("checks conflicting flags before the skin", func() {
			err := sess.Run(ctx, 0, session.RunOpts{RecalcForces: true, ReuseForces: true})
			Expect(err).To(MatchError(md.ErrConflictingOptions))
		})

		It("detects constraint violation on a zero-step run", func() {
			Expect(sess.SetSkin(0.4)).To(Succeed())
			wall := constraint.Wall{Normal: md.Vec3{0, 0, 1}, Dist: 100}
			sess.Constraints().Add(wall, 0, false)

			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrConstraintViolation))
			Expect(err.Error()).To(ContainSubstring("constraint violated by particle 0 dist -100"))

			var cv *md.ConstraintViolationError
			Expect(errors.As(err, &cv)).To(BeTrue())
			Expect(cv.Particle).To(Equal(0))
			Expect(cv.Distance).To(Equal(-100.0))
		})

		It("re-checks constraints on energy queries", func() {
			Expect(sess.SetSkin(0.4)).To(Succeed())
			wall := constraint.Wall{Normal: md.Vec3{0, 0, 1}, Dist: 100}
			sess.Constraints().Add(wall, 0, false)

			_, err := sess.Analysis().Energy()
			Expect(err).To(MatchError(md.ErrConstraintViolation))
			Expect(err.Error()).To(ContainSubstring("constraint violated by particle 0"))
		})
	})

	Describe("velocity Verlet", func() {
		BeforeEach(func() {
			Expect(sess.SetSkin(0.4)).To(Succeed())
			sess.Scheme().SetVelocityVerlet()
		})

		It("rejects the Brownian thermostat", func() {
			Expect(sess.Thermostat().SetBrownian(1.0, 1.0, 42)).To(Succeed())
			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrIncompatibleConfiguration))
			Expect(err.Error()).To(ContainSubstring("the velocity Verlet integrator is incompatible with the currently active combination of thermostats"))
		})

		It("accepts no thermostat", func() {
			Expect(sess.Run(ctx, 0, session.RunOpts{})).To(Succeed())
		})

		It("accepts the Langevin thermostat", func() {
			Expect(sess.Thermostat().SetLangevin(1.0, 1.0, 42)).To(Succeed())
			Expect(sess.Run(ctx, 0, session.RunOpts{})).To(Succeed())
		})
	})

	Describe("Brownian dynamics", func() {
		BeforeEach(func() {
			Expect(sess.SetSkin(0.4)).To(Succeed())
			sess.Scheme().SetBrownianDynamics()
		})

		It("requires the Brownian thermostat", func() {
			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrIncompatibleConfiguration))
			Expect(err.Error()).To(ContainSubstring("the Brownian dynamics integrator requires the Brownian thermostat"))
		})

		It("rejects any other thermostat", func() {
			Expect(sess.Thermostat().SetLangevin(1.0, 1.0, 42)).To(Succeed())
			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrIncompatibleConfiguration))
		})

		It("runs with the Brownian thermostat", func() {
			Expect(sess.Thermostat().SetBrownian(1.0, 1.0, 42)).To(Succeed())
			Expect(sess.Run(ctx, 0, session.RunOpts{})).To(Succeed())
		})
	})

	Describe("NpT", func() {
		BeforeEach(func() {
			Expect(sess.SetSkin(0.4)).To(Succeed())
			Expect(sess.Scheme().SetIsotropicNPT(md.Params{"ext_pressure": 1.0, "piston": 1.0})).To(Succeed())
		})

		It("requires the NpT thermostat", func() {
			Expect(sess.Thermostat().SetBrownian(1.0, 1.0, 42)).To(Succeed())
			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrIncompatibleConfiguration))
			Expect(err.Error()).To(ContainSubstring("the NpT integrator requires the NpT thermostat"))
		})

		It("cannot use Lees-Edwards", func() {
			Expect(sess.Thermostat().SetNPT(1.0, 2.0, 0.04, 42)).To(Succeed())

			sess.SetLeesEdwards(leesedwards.LinearShear{ShearVelocity: 1.0})
			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrIncompatibleConfiguration))
			Expect(err.Error()).To(ContainSubstring("the NpT integrator cannot use Lees-Edwards"))

			sess.SetLeesEdwards(leesedwards.Off{})
			err = sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrIncompatibleConfiguration))
			Expect(err.Error()).To(ContainSubstring("cannot use Lees-Edwards"))
		})

		It("runs once Lees-Edwards is removed", func() {
			Expect(sess.Thermostat().SetNPT(1.0, 2.0, 0.04, 42)).To(Succeed())
			sess.SetLeesEdwards(leesedwards.Off{})
			Expect(sess.Run(ctx, 0, session.RunOpts{})).NotTo(Succeed())

			sess.SetLeesEdwards(nil)
			Expect(sess.Run(ctx, 0, session.RunOpts{})).To(Succeed())
		})
	})

	Describe("Stokesian dynamics", func() {
		BeforeEach(func() {
			Expect(sess.SetSkin(0.4)).To(Succeed())
			Expect(sess.Scheme().SetStokesianDynamics(1.0, map[int]float64{0: 1.0})).To(Succeed())
		})

		It("requires the Stokesian thermostat", func() {
			sess.SetPeriodicity(false, false, false)
			Expect(sess.Thermostat().SetLangevin(1.0, 1.0, 42)).To(Succeed())

			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrIncompatibleConfiguration))
			Expect(err.Error()).To(ContainSubstring("the Stokesian dynamics integrator requires the Stokesian thermostat"))
		})

		It("rejects periodic boundaries even with the right thermostat", func() {
			sess.SetPeriodicity(true, true, true)
			Expect(sess.Thermostat().SetStokesian(1.0, 42)).To(Succeed())

			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrIncompatibleConfiguration))
			Expect(err.Error()).To(ContainSubstring("requires periodicity to be fully disabled"))
		})

		It("runs with periodicity off and the Stokesian thermostat", func() {
			sess.SetPeriodicity(false, false, false)
			Expect(sess.Thermostat().SetStokesian(1.0, 42)).To(Succeed())
			Expect(sess.Run(ctx, 0, session.RunOpts{})).To(Succeed())
		})
	})

	Describe("steepest descent", func() {
		BeforeEach(func() {
			Expect(sess.SetSkin(0.4)).To(Succeed())
		})

		It("enforces its exact parameter keys", func() {
			err := sess.Scheme().SetSteepestDescent(md.Params{"f_max": 0, "gamma": 0.1, "max_d": 5})
			Expect(err).To(MatchError(md.ErrMissingOrUnknownParameter))
			Expect(err.Error()).To(ContainSubstring("missing [max_displacement]"))
		})

		It("is incompatible with thermostats", func() {
			Expect(sess.Thermostat().SetLangevin(1.0, 1.0, 42)).To(Succeed())
			Expect(sess.Scheme().SetSteepestDescent(md.Params{"f_max": 0, "gamma": 0.1, "max_displacement": 0.1})).To(Succeed())

			err := sess.Run(ctx, 0, session.RunOpts{})
			Expect(err).To(MatchError(md.ErrIncompatibleConfiguration))
			Expect(err.Error()).To(ContainSubstring("the steepest descent integrator is incompatible with thermostats"))
		})

		It("runs without a thermostat", func() {
			Expect(sess.Scheme().SetSteepestDescent(md.Params{"f_max": 0, "gamma": 0.1, "max_displacement": 0.1})).To(Succeed())
			Expect(sess.Run(ctx, 0, session.RunOpts{})).To(Succeed())
		})
	})

	Describe("thermostat set", func() {
		It("turns off idempotently", func() {
			sess.Thermostat().TurnOff()
			Expect(sess.Thermostat().Active()).To(BeFalse())
			sess.Thermostat().TurnOff()
			Expect(sess.Thermostat().Active()).To(BeFalse())
		})
	})
})
