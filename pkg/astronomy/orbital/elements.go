package orbital

import (
	"math"

	"github.com/oxygene76/vector3/pkg/vector"
)

// OrbitalElements represents Keplerian orbital elements
type OrbitalElements struct {
	SemiMajorAxis          float64 `json:"a" yaml:"a" mapstructure:"a"`             // AU
	Eccentricity           float64 `json:"e" yaml:"e" mapstructure:"e"`             // 0-1
	Inclination            float64 `json:"i" yaml:"i" mapstructure:"i"`             // radians
	LongitudeAscendingNode float64 `json:"node" yaml:"node" mapstructure:"node"`    // radians
	ArgumentPerihelion     float64 `json:"peri" yaml:"peri" mapstructure:"peri"`    // radians
	MeanAnomaly            float64 `json:"m" yaml:"m" mapstructure:"m"`             // radians at epoch
	Epoch                  float64 `json:"epoch" yaml:"epoch" mapstructure:"epoch"` // JD
}

// ToCartesian converts orbital elements to cartesian position and velocity.
// mu is the gravitational parameter (G * M) in AU³/day².
func (oe OrbitalElements) ToCartesian(mu float64) (pos, vel *vector.Vector3) {
	E := oe.solveKeplersEquation()
	cosE, sinE := math.Cos(E), math.Sin(E)

	nu := 2.0 * math.Atan2(
		math.Sqrt(1+oe.Eccentricity)*math.Sin(E/2),
		math.Sqrt(1-oe.Eccentricity)*math.Cos(E/2),
	)
	r := oe.SemiMajorAxis * (1 - oe.Eccentricity*cosE)

	// Position and velocity in the orbital plane
	planePos := vector.New(r*math.Cos(nu), r*math.Sin(nu))
	root := math.Sqrt(1 - oe.Eccentricity*oe.Eccentricity)
	factor := math.Sqrt(mu/oe.SemiMajorAxis) / (1 - oe.Eccentricity*cosE)
	planeVel := vector.New(-factor*sinE, factor*root*cosE)

	// Columns of the rotation into the inertial frame
	p, q := oe.basis()

	pos = vector.New().AddScaledVector(p, planePos.X).AddScaledVector(q, planePos.Y)
	vel = vector.New().AddScaledVector(p, planeVel.X).AddScaledVector(q, planeVel.Y)
	return pos, vel
}

// basis returns the unit vectors toward perihelion (p) and 90° ahead of it
// in the orbital plane (q).
func (oe OrbitalElements) basis() (p, q *vector.Vector3) {
	cosO, sinO := math.Cos(oe.LongitudeAscendingNode), math.Sin(oe.LongitudeAscendingNode)
	cosI, sinI := math.Cos(oe.Inclination), math.Sin(oe.Inclination)
	cosW, sinW := math.Cos(oe.ArgumentPerihelion), math.Sin(oe.ArgumentPerihelion)

	p = vector.New(
		cosO*cosW-sinO*sinW*cosI,
		sinO*cosW+cosO*sinW*cosI,
		sinW*sinI,
	)
	q = vector.New(
		-cosO*sinW-sinO*cosW*cosI,
		-sinO*sinW+cosO*cosW*cosI,
		cosW*sinI,
	)
	return p, q
}

// solveKeplersEquation solves M = E - e*sin(E) for E by Newton-Raphson
func (oe OrbitalElements) solveKeplersEquation() float64 {
	E := oe.MeanAnomaly
	if oe.Eccentricity > 0.8 {
		E = math.Pi
	}

	const (
		tolerance     = 1e-12
		maxIterations = 50
	)
	for i := 0; i < maxIterations; i++ {
		f := E - oe.Eccentricity*math.Sin(E) - oe.MeanAnomaly
		fp := 1 - oe.Eccentricity*math.Cos(E)
		deltaE := f / fp
		E -= deltaE
		if math.Abs(deltaE) < tolerance {
			break
		}
	}
	return E
}

// Perihelion returns the perihelion distance
func (oe OrbitalElements) Perihelion() float64 {
	return oe.SemiMajorAxis * (1 - oe.Eccentricity)
}

// Aphelion returns the aphelion distance
func (oe OrbitalElements) Aphelion() float64 {
	return oe.SemiMajorAxis * (1 + oe.Eccentricity)
}

// OrbitalPeriod returns the orbital period in days
func (oe OrbitalElements) OrbitalPeriod(mu float64) float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(oe.SemiMajorAxis, 3)/mu)
}

// LongitudeOfPerihelion returns Ω + ω wrapped to [0, 2π)
func (oe OrbitalElements) LongitudeOfPerihelion() float64 {
	return wrapAngle(oe.LongitudeAscendingNode + oe.ArgumentPerihelion)
}

// CartesianToOrbital converts a position and velocity to orbital elements.
// Neither argument is modified.
func CartesianToOrbital(pos, vel *vector.Vector3, mu float64) OrbitalElements {
	// Specific angular momentum
	h := vector.New().CrossVectors(pos, vel)

	r := pos.Length()
	v := vel.Length()

	// Eccentricity vector: (v × h)/mu - r̂
	eVec := vector.New().CrossVectors(vel, h).DivideScalar(mu)
	eVec.Sub(pos.Clone().DivideScalar(r))
	e := eVec.Length()

	a := 1.0 / (2.0/r - v*v/mu)
	i := math.Acos(h.Z / h.Length())

	// Node vector
	n := vector.New().CrossVectors(vector.New(0, 0, 1), h)

	node := 0.0
	if n.Length() > 1e-10 {
		node = wrapAngle(math.Atan2(n.Y, n.X))
	}

	peri := 0.0
	if n.Length() > 1e-10 && e > 1e-10 {
		peri = n.AngleTo(eVec)
		if eVec.Z < 0 {
			peri = 2*math.Pi - peri
		}
	}

	E := 0.0
	if cosE := (1 - r/a) / e; math.Abs(cosE) <= 1.0 {
		E = math.Acos(cosE)
		if pos.Dot(vel) < 0 {
			E = 2*math.Pi - E
		}
	}

	return OrbitalElements{
		SemiMajorAxis:          a,
		Eccentricity:           e,
		Inclination:            i,
		LongitudeAscendingNode: node,
		ArgumentPerihelion:     peri,
		MeanAnomaly:            E - e*math.Sin(E),
	}
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
