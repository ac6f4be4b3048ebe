package constraint

import (
	"github.com/san-kum/mdsim/internal/md"
)

// Wall is an infinite plane with unit-ish Normal and offset Dist along it.
// Signed distance is negative behind the plane.
type Wall struct {
	Normal md.Vec3
	Dist   float64
}

func (w Wall) SignedDistance(pos md.Vec3) float64 {
	n := w.Normal.Norm()
	if n == 0 {
		return 0
	}
	return pos.Dot(w.Normal)/n - w.Dist
}

// Sphere is a spherical surface. Direction +1 keeps particles outside the
// sphere, -1 keeps them inside.
type Sphere struct {
	Center    md.Vec3
	Radius    float64
	Direction float64
}

func (s Sphere) SignedDistance(pos md.Vec3) float64 {
	dir := s.Direction
	if dir == 0 {
		dir = 1
	}
	return dir * (pos.Sub(s.Center).Norm() - s.Radius)
}
