package nbody

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxygene76/vector3/pkg/astronomy/orbital"
	"github.com/oxygene76/vector3/pkg/vector"
)

func sunEarth() *System {
	const earthMass = 3.0e-6
	pos, vel := orbital.OrbitalElements{SemiMajorAxis: 1}.ToCartesian(GaussianG * (1 + earthMass))
	return NewSystem(
		Body{ID: "sun", Mass: 1},
		Body{ID: "earth", Mass: earthMass, Position: *pos, Velocity: *vel},
	)
}

type recordingSink struct {
	ended    bool
	times    []float64
	snapshot [][]Body
}

func (r *recordingSink) OnSnapshot(t float64, bodies []Body) error {
	r.times = append(r.times, t)
	r.snapshot = append(r.snapshot, append([]Body(nil), bodies...))
	return nil
}

func (r *recordingSink) OnEnd(float64) error {
	r.ended = true
	return nil
}

func TestLeapfrogConservation(t *testing.T) {
	s := sunEarth()
	e0 := s.TotalEnergy()
	l0 := s.AngularMomentum()

	require.NoError(t, s.Integrate(365.25, 0.5, nil, 0))

	assert.InDelta(t, 365.0, s.Time, 1e-9)
	assert.Less(t, math.Abs((s.TotalEnergy()-e0)/e0), 1e-4)
	assert.True(t, s.AngularMomentum().ApproxEquals(l0, 1e-10))

	d := s.Bodies[1].Position.DistanceTo(&s.Bodies[0].Position)
	assert.InDelta(t, 1.0, d, 1e-2)
}

func TestMasslessBodiesFeelButDoNotPull(t *testing.T) {
	s := NewSystem(
		Body{ID: "sun", Mass: 1},
		Body{ID: "probe", Position: *vector.New(2, 0, 0)},
	)
	acc := s.accelerations()
	assert.True(t, acc[0].IsZero())
	assert.InDelta(t, -GaussianG/4, acc[1].X, 1e-18)
	assert.Equal(t, 0.0, s.PotentialEnergy())
}

func TestIntegrateSnapshots(t *testing.T) {
	s := sunEarth()
	sink := &recordingSink{}
	require.NoError(t, s.Integrate(10, 1, sink, 4))

	assert.True(t, sink.ended)
	assert.Equal(t, []float64{0, 4, 8, 10}, sink.times)
	assert.True(t, sink.snapshot[0][1].Position.Equals(vector.New(1, 0, 0)))
	assert.False(t, sink.snapshot[3][1].Position.Equals(vector.New(1, 0, 0)))

	assert.Error(t, s.Integrate(10, 0, sink, 1))
}

func TestCopyIsIndependent(t *testing.T) {
	s := sunEarth()
	c := s.Copy()
	c.Step(1)
	assert.True(t, s.Bodies[1].Position.Equals(vector.New(1, 0, 0)))
	assert.Equal(t, 0.0, s.Time)
	assert.Equal(t, 1.0, c.Time)
}

func TestCenterOfMass(t *testing.T) {
	s := NewSystem(
		Body{Mass: 1, Position: *vector.New(0, 0, 0)},
		Body{Mass: 3, Position: *vector.New(4, 8, -4)},
	)
	assert.True(t, s.CenterOfMass().Equals(vector.New(3, 6, -3)))
}

func TestJSONLSnapshotWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.jsonl")
	w, err := CreateJSONLSnapshotFile(path)
	require.NoError(t, err)

	s := sunEarth()
	require.NoError(t, s.Integrate(3, 1, w, 1))
	require.NoError(t, w.Close())
	assert.Equal(t, 4, w.Records())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var snaps []snapshotRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var snap snapshotRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &snap))
		snaps = append(snaps, snap)
	}
	require.NoError(t, sc.Err())
	require.Len(t, snaps, 4)
	assert.Equal(t, 3.0, snaps[3].TimeDays)
	assert.Equal(t, "earth", snaps[3].Bodies[1].ID)
	assert.True(t, snaps[3].Bodies[1].Position.Equals(&s.Bodies[1].Position))
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestJSONLSnapshotWriterReportsWriteErrors(t *testing.T) {
	diskFull := errors.New("disk full")
	w := NewJSONLSnapshotWriter(failingWriter{err: diskFull})

	s := sunEarth()
	err := s.Integrate(2, 1, w, 1)
	assert.ErrorIs(t, err, diskFull)
	assert.ErrorIs(t, w.Close(), diskFull)
}

func TestJSONLSnapshotWriterCloseReportsFlushError(t *testing.T) {
	diskFull := errors.New("disk full")
	w := NewJSONLSnapshotWriter(failingWriter{err: diskFull})

	// the record fits in the buffer, so nothing fails until the flush
	require.NoError(t, w.OnSnapshot(0, sunEarth().Bodies))
	assert.Equal(t, 1, w.Records())
	assert.ErrorIs(t, w.Close(), diskFull)
}

func TestJSONLSnapshotWriterRejectsNonFiniteState(t *testing.T) {
	var out bytes.Buffer
	w := NewJSONLSnapshotWriter(&out)

	bodies := []Body{{ID: "lost", Position: *vector.New(math.NaN(), 0, 0)}}
	assert.Error(t, w.OnSnapshot(0, bodies))
	assert.Equal(t, 0, w.Records())
	require.NoError(t, w.Close())
	assert.Empty(t, out.String())
}

func TestCreateJSONLSnapshotFileMissingDir(t *testing.T) {
	_, err := CreateJSONLSnapshotFile(filepath.Join(t.TempDir(), "missing", "snap.jsonl"))
	assert.Error(t, err)
}

func TestIntegrateAdaptiveFixedWhenTolerant(t *testing.T) {
	s := sunEarth()
	sink := &recordingSink{}
	accepted, err := s.IntegrateAdaptive(365.25, 0.01, 5, 1e3, sink, 10)
	require.NoError(t, err)

	// 73 steps of 5 days, then one of 0.25
	assert.Equal(t, 74, accepted)
	assert.InDelta(t, 365.25, s.Time, 1e-9)
	assert.True(t, sink.ended)
	require.Len(t, sink.times, 9)
	assert.Equal(t, 0.0, sink.times[0])
	assert.InDelta(t, 50.0, sink.times[1], 1e-9)
	assert.InDelta(t, 365.25, sink.times[8], 1e-9)
}

func TestIntegrateAdaptiveShrinksSteps(t *testing.T) {
	s := sunEarth()
	e0 := s.TotalEnergy()
	accepted, err := s.IntegrateAdaptive(365.25, 1e-3, 5, 1e-6, nil, 1)
	require.NoError(t, err)

	assert.Greater(t, accepted, 74)
	assert.Less(t, accepted, 365250)
	assert.InDelta(t, 365.25, s.Time, 1e-9)
	assert.Less(t, math.Abs((s.TotalEnergy()-e0)/e0), 1e-4)

	d := s.Bodies[1].Position.DistanceTo(&s.Bodies[0].Position)
	assert.InDelta(t, 1.0, d, 1e-2)
}

func TestIntegrateAdaptiveArguments(t *testing.T) {
	s := sunEarth()
	_, err := s.IntegrateAdaptive(10, 0, 1, 1e-6, nil, 1)
	assert.Error(t, err)
	_, err = s.IntegrateAdaptive(10, 2, 1, 1e-6, nil, 1)
	assert.Error(t, err)
	_, err = s.IntegrateAdaptive(10, 0.1, 1, 0, nil, 1)
	assert.Error(t, err)
	assert.Equal(t, 0.0, s.Time)
}

func TestBodyJSON(t *testing.T) {
	b := Body{ID: "x", Mass: 2, Position: *vector.New(1, 2, 3), Velocity: *vector.New(-1, 0, 1)}
	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","mass":2,"position":[1,2,3],"velocity":[-1,0,1]}`, string(data))

	var back Body
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, b, back)

	assert.Error(t, json.Unmarshal([]byte(`{"id":"y","position":[1,2],"velocity":[0,0,0]}`), &back))
}
