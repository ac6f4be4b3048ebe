package md

import (
	"errors"
	"fmt"
	"strings"
)

// Fault classification for integration and setup operations. Callers match
// with errors.Is; payload-carrying faults additionally expose structured
// fields via errors.As.
var (
	// ErrInvalidParameter indicates a single scalar failed its range check.
	ErrInvalidParameter = errors.New("md: invalid parameter")

	// ErrMissingOrUnknownParameter indicates a setter was called with a key
	// set that does not exactly match its declared required keys.
	ErrMissingOrUnknownParameter = errors.New("md: missing or unknown parameter")

	// ErrConflictingOptions indicates mutually exclusive run flags.
	ErrConflictingOptions = errors.New("md: conflicting options")

	// ErrConfigurationIncomplete indicates a stepping precondition is unset.
	ErrConfigurationIncomplete = errors.New("md: configuration incomplete")

	// ErrIncompatibleConfiguration indicates the scheme/thermostat/periodicity
	// compatibility table is violated.
	ErrIncompatibleConfiguration = errors.New("md: incompatible configuration")

	// ErrConstraintViolation indicates a particle crossed a non-penetrable
	// constraint surface.
	ErrConstraintViolation = errors.New("md: constraint violation")

	// ErrNumericalInstability indicates the force evaluation produced
	// non-finite values.
	ErrNumericalInstability = errors.New("md: numerical instability")
)

// InvalidParam wraps ErrInvalidParameter with a reason.
func InvalidParam(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// KeyMismatchError reports an exact-key-set validation failure. Required is
// the declared key list in declaration order; Given, Missing and Unknown are
// sorted.
type KeyMismatchError struct {
	Setter   string
	Required []string
	Given    []string
	Missing  []string
	Unknown  []string
}

func (e *KeyMismatchError) Error() string {
	msg := fmt.Sprintf("%s: the following keys have to be given: [%s], got [%s] (missing [%s])",
		e.Setter,
		strings.Join(e.Required, " "),
		strings.Join(e.Given, " "),
		strings.Join(e.Missing, " "))
	if len(e.Unknown) > 0 {
		msg += fmt.Sprintf(" (unknown [%s])", strings.Join(e.Unknown, " "))
	}
	return msg
}

func (e *KeyMismatchError) Unwrap() error {
	return ErrMissingOrUnknownParameter
}

// ConstraintViolationError names the first particle found on the forbidden
// side of a non-penetrable constraint, with its measured signed distance.
type ConstraintViolationError struct {
	Particle int
	Distance float64
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint violated by particle %d dist %g", e.Particle, e.Distance)
}

func (e *ConstraintViolationError) Unwrap() error {
	return ErrConstraintViolation
}

// IncompatibilityError names the compatibility rule rejected before stepping.
// Scheme is the integrator name; Rule reads as the predicate it failed, so
// the message comes out as e.g. "the NpT integrator cannot use Lees-Edwards".
type IncompatibilityError struct {
	Scheme string
	Rule   string
}

func (e *IncompatibilityError) Error() string {
	return fmt.Sprintf("the %s integrator %s", e.Scheme, e.Rule)
}

func (e *IncompatibilityError) Unwrap() error {
	return ErrIncompatibleConfiguration
}
