package ops

import "github.com/oxygene76/vector3/pkg/vector"

// Report holds the pure measurements of a vector, and of its relation to a
// second vector when one is given.
type Report struct {
	Vector          vector.Vector3  `json:"vector" yaml:"vector"`
	Length          float64         `json:"length" yaml:"length"`
	LengthSq        float64         `json:"length_sq" yaml:"length_sq"`
	LengthManhattan float64         `json:"length_manhattan" yaml:"length_manhattan"`
	Against         *vector.Vector3 `json:"against,omitempty" yaml:"against,omitempty"`
	Dot             *float64        `json:"dot,omitempty" yaml:"dot,omitempty"`
	Distance        *float64        `json:"distance,omitempty" yaml:"distance,omitempty"`
	DistanceSq      *float64        `json:"distance_sq,omitempty" yaml:"distance_sq,omitempty"`
	Angle           *float64        `json:"angle,omitempty" yaml:"angle,omitempty"`
	Equal           *bool           `json:"equal,omitempty" yaml:"equal,omitempty"`
}

// Measure computes a Report for v. other may be nil.
func Measure(v, other *vector.Vector3) Report {
	r := Report{
		Vector:          *v.Clone(),
		Length:          v.Length(),
		LengthSq:        v.LengthSq(),
		LengthManhattan: v.LengthManhattan(),
	}
	if other == nil {
		return r
	}
	dot := v.Dot(other)
	dist := v.DistanceTo(other)
	distSq := v.DistanceToSquared(other)
	angle := v.AngleTo(other)
	equal := v.Equals(other)

	r.Against = other.Clone()
	r.Dot = &dot
	r.Distance = &dist
	r.DistanceSq = &distSq
	r.Angle = &angle
	r.Equal = &equal
	return r
}
