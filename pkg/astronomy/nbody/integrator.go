package nbody

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/oxygene76/vector3/pkg/vector"
)

// GaussianG is the gravitational constant in AU³/(M☉·day²)
const GaussianG = 2.959122e-4

// softening is the separation below which two bodies stop attracting
const softening = 1e-10

// Body represents a celestial body in the N-body system
type Body struct {
	ID       string         // Identifier
	Mass     float64        // Mass in solar masses
	Position vector.Vector3 // Position in AU
	Velocity vector.Vector3 // Velocity in AU/day
}

type bodyJSON struct {
	ID       string    `json:"id"`
	Mass     float64   `json:"mass"`
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity"`
}

// MarshalJSON encodes position and velocity as [x, y, z] arrays
func (b Body) MarshalJSON() ([]byte, error) {
	return json.Marshal(bodyJSON{
		ID:       b.ID,
		Mass:     b.Mass,
		Position: b.Position.ToArray(nil, 0),
		Velocity: b.Velocity.ToArray(nil, 0),
	})
}

func (b *Body) UnmarshalJSON(data []byte) error {
	var raw bodyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Position) != 3 || len(raw.Velocity) != 3 {
		return fmt.Errorf("body %q: position and velocity need 3 components", raw.ID)
	}
	b.ID = raw.ID
	b.Mass = raw.Mass
	b.Position.FromArray(raw.Position, 0)
	b.Velocity.FromArray(raw.Velocity, 0)
	return nil
}

// System represents the N-body system
type System struct {
	Bodies []Body
	Time   float64 // Elapsed time in days
	G      float64 // Gravitational constant

	acc []vector.Vector3
}

// NewSystem creates a new N-body system in solar system units
func NewSystem(bodies ...Body) *System {
	return &System{
		Bodies: append([]Body(nil), bodies...),
		G:      GaussianG,
	}
}

// Copy creates a deep copy of the system
func (s *System) Copy() *System {
	return &System{
		Bodies: append([]Body(nil), s.Bodies...),
		Time:   s.Time,
		G:      s.G,
	}
}

// Integrate advances the system by duration using fixed leapfrog steps of dt.
// The initial state, every snapEvery-th step and the final step are passed to
// sink. A nil sink disables snapshots.
func (s *System) Integrate(duration, dt float64, sink SnapshotSink, snapEvery int) error {
	if dt <= 0 {
		return fmt.Errorf("timestep must be positive, got %g", dt)
	}
	if snapEvery < 1 {
		snapEvery = 1
	}
	numSteps := int(duration / dt)

	if err := s.snapshot(sink); err != nil {
		return err
	}
	for step := 0; step < numSteps; step++ {
		s.Step(dt)
		if (step+1)%snapEvery == 0 || step == numSteps-1 {
			if err := s.snapshot(sink); err != nil {
				return err
			}
		}
	}
	return s.finish(sink)
}

// IntegrateAdaptive advances the system by duration, sizing each step by step
// doubling: one leapfrog step of dt is compared with two steps of dt/2, and the
// step is accepted when the largest position difference is at most tolerance
// (AU). A rejected step halves dt down to minStep, and a step of minStep is
// always accepted. Steps whose difference stays below tolerance/10 grow dt by
// half, up to maxStep. Snapshots follow Integrate, counting accepted steps.
// It returns the number of accepted steps.
func (s *System) IntegrateAdaptive(duration, minStep, maxStep, tolerance float64, sink SnapshotSink, snapEvery int) (int, error) {
	if minStep <= 0 || maxStep < minStep {
		return 0, fmt.Errorf("need 0 < minStep <= maxStep, got %g and %g", minStep, maxStep)
	}
	if tolerance <= 0 {
		return 0, fmt.Errorf("tolerance must be positive, got %g", tolerance)
	}
	if snapEvery < 1 {
		snapEvery = 1
	}

	if err := s.snapshot(sink); err != nil {
		return 0, err
	}

	accepted := 0
	elapsed := 0.0
	dt := maxStep
	for elapsed < duration {
		last := false
		if dt >= duration-elapsed {
			dt = duration - elapsed
			last = true
		}

		full := s.Copy()
		full.Step(dt)
		halves := s.Copy()
		halves.Step(dt / 2)
		halves.Step(dt / 2)

		deviation := halves.maxDeviation(full)
		if deviation > tolerance && dt > minStep {
			dt = math.Max(dt*0.5, minStep)
			continue
		}

		s.Bodies = halves.Bodies
		s.Time = halves.Time
		elapsed += dt
		if last {
			elapsed = duration
		}
		accepted++

		if accepted%snapEvery == 0 || last {
			if err := s.snapshot(sink); err != nil {
				return accepted, err
			}
		}
		if deviation < tolerance*0.1 {
			dt = math.Min(dt*1.5, maxStep)
		}
	}
	return accepted, s.finish(sink)
}

// maxDeviation returns the largest distance between matching bodies of s and o
func (s *System) maxDeviation(o *System) float64 {
	worst := 0.0
	for i := range s.Bodies {
		if d := s.Bodies[i].Position.DistanceTo(&o.Bodies[i].Position); d > worst {
			worst = d
		}
	}
	return worst
}

func (s *System) snapshot(sink SnapshotSink) error {
	if sink == nil {
		return nil
	}
	if err := sink.OnSnapshot(s.Time, s.Bodies); err != nil {
		return fmt.Errorf("snapshot at t=%g: %w", s.Time, err)
	}
	return nil
}

func (s *System) finish(sink SnapshotSink) error {
	if sink == nil {
		return nil
	}
	if err := sink.OnEnd(s.Time); err != nil {
		return fmt.Errorf("snapshot end: %w", err)
	}
	return nil
}

// Step performs one kick-drift-kick leapfrog step
func (s *System) Step(dt float64) {
	s.kick(dt * 0.5)
	for i := range s.Bodies {
		b := &s.Bodies[i]
		b.Position.AddScaledVector(&b.Velocity, dt)
	}
	s.kick(dt * 0.5)
	s.Time += dt
}

func (s *System) kick(dt float64) {
	acc := s.accelerations()
	for i := range s.Bodies {
		s.Bodies[i].Velocity.AddScaledVector(&acc[i], dt)
	}
}

// accelerations computes the gravitational acceleration on every body.
// Massless bodies feel gravity but exert none.
func (s *System) accelerations() []vector.Vector3 {
	n := len(s.Bodies)
	if cap(s.acc) < n {
		s.acc = make([]vector.Vector3, n)
	}
	acc := s.acc[:n]

	var r vector.Vector3
	for i := range acc {
		acc[i].Set(0, 0, 0)
		for j := range s.Bodies {
			if i == j || s.Bodies[j].Mass == 0 {
				continue
			}
			// Vector from body i to body j
			r.SubVectors(&s.Bodies[j].Position, &s.Bodies[i].Position)
			d := r.Length()
			if d < softening {
				continue
			}
			// a = G * M_j * r / |r|³
			acc[i].AddScaledVector(&r, s.G*s.Bodies[j].Mass/(d*d*d))
		}
	}
	return acc
}

// KineticEnergy calculates total kinetic energy of the system
func (s *System) KineticEnergy() float64 {
	energy := 0.0
	for i := range s.Bodies {
		b := &s.Bodies[i]
		energy += 0.5 * b.Mass * b.Velocity.LengthSq()
	}
	return energy
}

// PotentialEnergy calculates total gravitational potential energy
func (s *System) PotentialEnergy() float64 {
	energy := 0.0
	for i := 0; i < len(s.Bodies)-1; i++ {
		bi := &s.Bodies[i]
		if bi.Mass == 0 {
			continue
		}
		for j := i + 1; j < len(s.Bodies); j++ {
			bj := &s.Bodies[j]
			if bj.Mass == 0 {
				continue
			}
			if r := bi.Position.DistanceTo(&bj.Position); r > softening {
				energy -= s.G * bi.Mass * bj.Mass / r
			}
		}
	}
	return energy
}

// TotalEnergy returns the total energy, which leapfrog nearly conserves
func (s *System) TotalEnergy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}

// AngularMomentum calculates the total angular momentum
func (s *System) AngularMomentum() *vector.Vector3 {
	total := vector.New()
	var l vector.Vector3
	for i := range s.Bodies {
		b := &s.Bodies[i]
		l.CrossVectors(&b.Position, &b.Velocity)
		total.AddScaledVector(&l, b.Mass)
	}
	return total
}

// CenterOfMass returns the mass-weighted mean position of the system
func (s *System) CenterOfMass() *vector.Vector3 {
	com := vector.New()
	mass := 0.0
	for i := range s.Bodies {
		b := &s.Bodies[i]
		com.AddScaledVector(&b.Position, b.Mass)
		mass += b.Mass
	}
	return com.DivideScalar(mass)
}
