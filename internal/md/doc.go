// Package md provides core molecular-dynamics primitives shared by the
// session, scheme, and thermostat packages:
//
//   - [Vec3]: 3-component vector with the usual arithmetic
//   - [Particle], [Store]: particle state and its owning storage
//   - [ForceEvaluator], [FluidCoupler], [Shape]: collaborator interfaces
//   - the error taxonomy for integration faults ([ErrInvalidParameter],
//     [ErrIncompatibleConfiguration], [ErrConstraintViolation], ...)
//   - [Params] and [CheckKeys]: exact required-key validation for
//     parameterized setters
//
// # Error Handling
//
// Every fault is classified by a package-level sentinel and checked with
// errors.Is. Faults that carry diagnostic payload (offending particle,
// measured distance, required vs. given keys) are structured types that
// unwrap to their sentinel:
//
//	err := sess.Run(ctx, 100, session.RunOpts{})
//	if errors.Is(err, md.ErrConstraintViolation) {
//	    var cv *md.ConstraintViolationError
//	    errors.As(err, &cv) // cv.Particle, cv.Distance
//	}
//
// # Thread Safety
//
// Store instances are NOT thread-safe. A simulation session owns its store
// exclusively and mutates it only inside a blocking Run call.
package md
