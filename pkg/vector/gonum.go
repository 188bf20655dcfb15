package vector

import (
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// R3 converts v to a gonum r3.Vec
func (v *Vector3) R3() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// FromR3 overwrites v with the components of a gonum r3.Vec
func (v *Vector3) FromR3(r r3.Vec) *Vector3 {
	return v.Set(r.X, r.Y, r.Z)
}

// ApproxEquals reports whether each component of v is within tol of the
// matching component of o, either absolutely or relative to its magnitude.
func (v *Vector3) ApproxEquals(o *Vector3, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(v.X, o.X, tol, tol) &&
		scalar.EqualWithinAbsOrRel(v.Y, o.Y, tol, tol) &&
		scalar.EqualWithinAbsOrRel(v.Z, o.Z, tol, tol)
}
