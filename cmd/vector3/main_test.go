package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/vector3/pkg/ops"
	"github.com/oxygene76/vector3/pkg/vector"
)

func execute(t *testing.T, args ...string) (stdout, logs string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, logBuf bytes.Buffer
	cmd := newRootCmd(&logBuf)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), logBuf.String(), err
}

func TestApply(t *testing.T) {
	out, _, err := execute(t, "apply", "4,5,1", "sub 1,1,1", "multiplyScalar 2")
	require.NoError(t, err)
	assert.Equal(t, "(6, 8, 0)\n", out)
}

func TestApplyNegativeLiteral(t *testing.T) {
	out, _, err := execute(t, "apply", "(-1.5,1.5,-0.5)", "roundToZero")
	require.NoError(t, err)
	assert.Equal(t, "(-1, 1, -0)\n", out)
}

func TestApplyFormats(t *testing.T) {
	out, _, err := execute(t, "apply", "--format", "json", "1,2,3", "normalize", "setLength 2")
	require.NoError(t, err)
	var v struct{ X, Y, Z float64 }
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.InDelta(t, 2/3.7416573867739413, v.X, 1e-12)

	out, _, err = execute(t, "apply", "--format", "fixed", "1.5,0,-2")
	require.NoError(t, err)
	assert.Equal(t, "1.500000000000000000,0.000000000000000000,-2.000000000000000000\n", out)

	out, _, err = execute(t, "apply", "--precision", "2", "1,2,3", "divideScalar 3")
	require.NoError(t, err)
	assert.Equal(t, "(0.33, 0.67, 1.00)\n", out)
}

func TestApplyVerboseLogsSteps(t *testing.T) {
	_, logs, err := execute(t, "apply", "-v", "1,0,0", "cross 0,1,0")
	require.NoError(t, err)
	assert.Contains(t, logs, "applied step")
}

func TestApplyErrors(t *testing.T) {
	_, _, err := execute(t, "apply", "1,2,3", "explode")
	assert.ErrorIs(t, err, ops.ErrUnknownOp)

	_, _, err = execute(t, "apply", "1,2,3", "add 1,1,1 2")
	assert.ErrorIs(t, err, ops.ErrBadArgs)

	_, _, err = execute(t, "apply", "1,2,3", "multiplyScalar x")
	assert.ErrorIs(t, err, ops.ErrBadArgs)

	_, _, err = execute(t, "apply", "--format", "xml", "1,2,3")
	assert.Error(t, err)
}

func TestOps(t *testing.T) {
	out, _, err := execute(t, "ops")
	require.NoError(t, err)
	assert.Equal(t, ops.Names(), strings.Fields(out))
}

func TestMeasure(t *testing.T) {
	out, _, err := execute(t, "measure", "--format", "json", "--against", "(-1,0,0)", "1,0,0")
	require.NoError(t, err)

	var r ops.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 1.0, r.Length)
	require.NotNil(t, r.Distance)
	assert.Equal(t, 2.0, *r.Distance)
	require.NotNil(t, r.Angle)
	assert.InDelta(t, 3.141592653589793, *r.Angle, 1e-15)
}

func TestCentroid(t *testing.T) {
	out, _, err := execute(t, "centroid", "--format", "yaml", "0,0,0", "2,4,6", "(-2,8,3)")
	require.NoError(t, err)

	var res centroidResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Count)
	assert.True(t, res.Centroid.Equals(vector.New(0, 4, 3)))
	assert.True(t, res.Min.Equals(vector.New(-2, 0, 0)))
	assert.True(t, res.Max.Equals(vector.New(2, 8, 6)))
}

func TestSimulate(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "snap.jsonl")
	out, logs, err := execute(t, "simulate", "--format", "json", "--duration", "10", "--timestep", "1", "--out", snap)
	require.NoError(t, err)
	assert.Contains(t, logs, "integration finished")

	var summary simulationSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 10.0, summary.TimeDays)
	require.Len(t, summary.Bodies, 1)
	assert.Equal(t, "earth", summary.Bodies[0].ID)
	assert.InDelta(t, 1.0, summary.Bodies[0].Distance, 0.02)
	assert.Less(t, summary.EnergyDrift, 1e-4)

	f, err := os.Open(snap)
	require.NoError(t, err)
	defer f.Close()
	lines := 0
	for sc := bufio.NewScanner(f); sc.Scan(); {
		lines++
	}
	// initial state plus the final step; the default interval is 30 steps
	assert.Equal(t, 2, lines)
}

func TestSimulateAdaptive(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "snap.jsonl")
	out, _, err := execute(t, "simulate", "--format", "json", "--duration", "30", "--timestep", "2",
		"--tolerance", "1e-7", "--out", snap)
	require.NoError(t, err)

	var summary simulationSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.InDelta(t, 30.0, summary.TimeDays, 1e-9)
	assert.Less(t, summary.EnergyDrift, 1e-4)

	data, err := os.ReadFile(snap)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSimulateSnapshotErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "snap.jsonl")
	_, _, err := execute(t, "simulate", "--duration", "2", "--out", missing)
	assert.ErrorContains(t, err, "failed to open snapshot file")

	_, _, err = execute(t, "simulate", "--tolerance", "-1")
	assert.Error(t, err)
}
