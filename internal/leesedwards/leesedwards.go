// Package leesedwards models the sheared-boundary-condition protocol. A nil
// protocol means Lees-Edwards is not in use; the explicit Off variant still
// counts as "the protocol is set" for compatibility purposes, matching the
// NpT exclusion rule.
package leesedwards

type Protocol interface {
	// Offset returns the boundary image offset at time t.
	Offset(t float64) float64
	Name() string
}

// Off is the explicit do-nothing protocol.
type Off struct{}

func (Off) Offset(float64) float64 { return 0 }
func (Off) Name() string           { return "off" }

// LinearShear slides the boundary image at constant velocity.
type LinearShear struct {
	ShearVelocity    float64
	InitialPosOffset float64
	Time0            float64
}

func (p LinearShear) Offset(t float64) float64 {
	return p.InitialPosOffset + p.ShearVelocity*(t-p.Time0)
}

func (p LinearShear) Name() string { return "linear_shear" }
