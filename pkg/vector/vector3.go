// Package vector provides a mutable 3-component vector for geometry code.
//
// Mutating methods change the receiver in place and return it so calls can be
// chained:
//
//	v := vector.New(1, 2, 3)
//	v.Sub(origin).Normalize().MultiplyScalar(speed)
package vector

import (
	"fmt"
	"math"
)

// Vector3 represents a point or direction in 3-space
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// New returns a vector built from up to three components. Omitted components
// are zero.
func New(components ...float64) *Vector3 {
	if len(components) > 3 {
		panic(fmt.Sprintf("vector: New called with %d components", len(components)))
	}
	var c [3]float64
	copy(c[:], components)
	return &Vector3{X: c[0], Y: c[1], Z: c[2]}
}

// Set overwrites all three components
func (v *Vector3) Set(x, y, z float64) *Vector3 {
	v.X = x
	v.Y = y
	v.Z = z
	return v
}

// Clone returns an independent copy of v
func (v *Vector3) Clone() *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// Copy overwrites v with the components of o
func (v *Vector3) Copy(o *Vector3) *Vector3 {
	v.X = o.X
	v.Y = o.Y
	v.Z = o.Z
	return v
}

func (v *Vector3) Add(o *Vector3) *Vector3 {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
	return v
}

func (v *Vector3) AddScalar(s float64) *Vector3 {
	v.X += s
	v.Y += s
	v.Z += s
	return v
}

// AddVectors sets v to a + b
func (v *Vector3) AddVectors(a, b *Vector3) *Vector3 {
	v.X = a.X + b.X
	v.Y = a.Y + b.Y
	v.Z = a.Z + b.Z
	return v
}

// AddScaledVector adds o scaled by s to v
func (v *Vector3) AddScaledVector(o *Vector3, s float64) *Vector3 {
	v.X += o.X * s
	v.Y += o.Y * s
	v.Z += o.Z * s
	return v
}

func (v *Vector3) Sub(o *Vector3) *Vector3 {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
	return v
}

func (v *Vector3) SubScalar(s float64) *Vector3 {
	v.X -= s
	v.Y -= s
	v.Z -= s
	return v
}

// SubVectors sets v to a - b
func (v *Vector3) SubVectors(a, b *Vector3) *Vector3 {
	v.X = a.X - b.X
	v.Y = a.Y - b.Y
	v.Z = a.Z - b.Z
	return v
}

// Multiply scales v componentwise by o
func (v *Vector3) Multiply(o *Vector3) *Vector3 {
	v.X *= o.X
	v.Y *= o.Y
	v.Z *= o.Z
	return v
}

// MultiplyScalar scales v by s. A non-finite s (±Inf or NaN) sets v to the
// zero vector instead.
func (v *Vector3) MultiplyScalar(s float64) *Vector3 {
	if isFinite(s) {
		v.X *= s
		v.Y *= s
		v.Z *= s
	} else {
		v.X = 0
		v.Y = 0
		v.Z = 0
	}
	return v
}

// MultiplyVectors sets v to the componentwise product of a and b
func (v *Vector3) MultiplyVectors(a, b *Vector3) *Vector3 {
	v.X = a.X * b.X
	v.Y = a.Y * b.Y
	v.Z = a.Z * b.Z
	return v
}

// DivideScalar scales v by 1/s. Dividing by zero yields the zero vector.
func (v *Vector3) DivideScalar(s float64) *Vector3 {
	return v.MultiplyScalar(1 / s)
}

func (v *Vector3) Min(o *Vector3) *Vector3 {
	v.X = math.Min(v.X, o.X)
	v.Y = math.Min(v.Y, o.Y)
	v.Z = math.Min(v.Z, o.Z)
	return v
}

func (v *Vector3) Max(o *Vector3) *Vector3 {
	v.X = math.Max(v.X, o.X)
	v.Y = math.Max(v.Y, o.Y)
	v.Z = math.Max(v.Z, o.Z)
	return v
}

// Clamp limits each component of v to the range given by the matching
// components of lo and hi.
func (v *Vector3) Clamp(lo, hi *Vector3) *Vector3 {
	v.X = clamp(v.X, lo.X, hi.X)
	v.Y = clamp(v.Y, lo.Y, hi.Y)
	v.Z = clamp(v.Z, lo.Z, hi.Z)
	return v
}

// ClampScalar limits every component of v to [lo, hi]
func (v *Vector3) ClampScalar(lo, hi float64) *Vector3 {
	v.X = clamp(v.X, lo, hi)
	v.Y = clamp(v.Y, lo, hi)
	v.Z = clamp(v.Z, lo, hi)
	return v
}

// ClampLength rescales v so its length lies in [lo, hi]. The ratio is not
// guarded against a zero length; it reaches MultiplyScalar as NaN or Inf.
func (v *Vector3) ClampLength(lo, hi float64) *Vector3 {
	l := v.Length()
	return v.MultiplyScalar(clamp(l, lo, hi) / l)
}

func (v *Vector3) Floor() *Vector3 {
	v.X = math.Floor(v.X)
	v.Y = math.Floor(v.Y)
	v.Z = math.Floor(v.Z)
	return v
}

func (v *Vector3) Ceil() *Vector3 {
	v.X = math.Ceil(v.X)
	v.Y = math.Ceil(v.Y)
	v.Z = math.Ceil(v.Z)
	return v
}

// Round rounds each component to the nearest integer, with halves going
// toward positive infinity (-1.5 becomes -1).
func (v *Vector3) Round() *Vector3 {
	v.X = roundHalfUp(v.X)
	v.Y = roundHalfUp(v.Y)
	v.Z = roundHalfUp(v.Z)
	return v
}

// RoundToZero truncates each component toward zero
func (v *Vector3) RoundToZero() *Vector3 {
	v.X = roundToZero(v.X)
	v.Y = roundToZero(v.Y)
	v.Z = roundToZero(v.Z)
	return v
}

func (v *Vector3) Negate() *Vector3 {
	v.X = -v.X
	v.Y = -v.Y
	v.Z = -v.Z
	return v
}

func (v *Vector3) Dot(o *Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LengthSq returns the squared Euclidean length
func (v *Vector3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the Euclidean length
func (v *Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthManhattan returns |x| + |y| + |z|
func (v *Vector3) LengthManhattan() float64 {
	return math.Abs(v.X) + math.Abs(v.Y) + math.Abs(v.Z)
}

// Normalize scales v to unit length. The zero vector stays zero.
func (v *Vector3) Normalize() *Vector3 {
	return v.DivideScalar(v.Length())
}

// SetLength scales v to length l, keeping its direction
func (v *Vector3) SetLength(l float64) *Vector3 {
	return v.MultiplyScalar(l / v.Length())
}

// Lerp moves v toward o by alpha. Alpha is not clamped, so values outside
// [0, 1] extrapolate.
func (v *Vector3) Lerp(o *Vector3, alpha float64) *Vector3 {
	v.X += (o.X - v.X) * alpha
	v.Y += (o.Y - v.Y) * alpha
	v.Z += (o.Z - v.Z) * alpha
	return v
}

// LerpVectors sets v to a + (b - a) * alpha
func (v *Vector3) LerpVectors(a, b *Vector3, alpha float64) *Vector3 {
	// a may alias v; keep it before SubVectors overwrites v
	ax, ay, az := a.X, a.Y, a.Z
	v.SubVectors(b, a)
	v.MultiplyScalar(alpha)
	v.X += ax
	v.Y += ay
	v.Z += az
	return v
}

// Cross sets v to v × o
func (v *Vector3) Cross(o *Vector3) *Vector3 {
	x, y, z := v.X, v.Y, v.Z
	v.X = y*o.Z - z*o.Y
	v.Y = z*o.X - x*o.Z
	v.Z = x*o.Y - y*o.X
	return v
}

// CrossVectors sets v to a × b. Either operand may be v itself.
func (v *Vector3) CrossVectors(a, b *Vector3) *Vector3 {
	ax, ay, az := a.X, a.Y, a.Z
	bx, by, bz := b.X, b.Y, b.Z
	v.X = ay*bz - az*by
	v.Y = az*bx - ax*bz
	v.Z = ax*by - ay*bx
	return v
}

// AngleTo returns the angle between v and o in radians
func (v *Vector3) AngleTo(o *Vector3) float64 {
	theta := v.Dot(o) / (v.Length() * o.Length())
	// rounding can push theta just outside the domain of Acos
	return math.Acos(clamp(theta, -1, 1))
}

func (v *Vector3) DistanceTo(o *Vector3) float64 {
	return math.Sqrt(v.DistanceToSquared(o))
}

func (v *Vector3) DistanceToSquared(o *Vector3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return dx*dx + dy*dy + dz*dz
}

// Equals reports exact componentwise equality
func (v *Vector3) Equals(o *Vector3) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}

// IsZero checks if all components are zero
func (v *Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// FromArray reads three consecutive elements of array starting at offset.
// There is no bounds check: a short array panics like any out of range index.
func (v *Vector3) FromArray(array []float64, offset int) *Vector3 {
	v.X = array[offset]
	v.Y = array[offset+1]
	v.Z = array[offset+2]
	return v
}

// ToArray writes v into array at offset, growing array if it is too short,
// and returns the resulting slice. A nil array is allowed.
func (v *Vector3) ToArray(array []float64, offset int) []float64 {
	if need := offset + 3; len(array) < need {
		array = append(array, make([]float64, need-len(array))...)
	}
	array[offset] = v.X
	array[offset+1] = v.Y
	array[offset+2] = v.Z
	return array
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// clamp mirrors max(lo, min(hi, f)), including its NaN behavior
func clamp(f, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, f))
}

func roundHalfUp(f float64) float64 {
	r := math.Floor(f)
	if f-r >= 0.5 {
		r++
	}
	if r == 0 {
		// -0.5 <= f < 0 rounds to -0
		return math.Copysign(0, f)
	}
	return r
}

func roundToZero(f float64) float64 {
	if f < 0 {
		return math.Ceil(f)
	}
	return math.Floor(f)
}
