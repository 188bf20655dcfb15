package vector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxygene76/vector3/pkg/vector"
)

func TestBufferFromShape(t *testing.T) {
	_, err := vector.BufferFrom([]float64{1, 2, 3, 4})
	assert.ErrorIs(t, err, vector.ErrBufferShape)

	b, err := vector.BufferFrom([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.True(t, b.At(1, nil).Equals(vector.New(4, 5, 6)))
}

func TestBufferReadWrite(t *testing.T) {
	b := vector.NewBuffer(2)
	b.SetAt(1, vector.New(7, 8, 9))
	b.Append(vector.New(-1, -2, -3))

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []float64{0, 0, 0, 7, 8, 9, -1, -2, -3}, b.Data())

	var dst vector.Vector3
	assert.Same(t, &dst, b.At(2, &dst))
	assert.True(t, dst.Equals(vector.New(-1, -2, -3)))

	assert.Panics(t, func() { b.At(3, nil) })
	assert.Panics(t, func() { b.SetAt(3, vector.New()) })
}

func TestBufferDenseSharesStorage(t *testing.T) {
	assert.Nil(t, vector.NewBuffer(0).Dense())

	b := vector.NewBuffer(2)
	m := b.Dense()
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)

	m.Set(1, 2, 42)
	assert.Equal(t, 42.0, b.At(1, nil).Z)
}

func TestBufferCentroidAndBounds(t *testing.T) {
	_, err := vector.NewBuffer(0).Centroid()
	assert.ErrorIs(t, err, vector.ErrEmptyBuffer)
	_, _, err = vector.NewBuffer(0).Bounds()
	assert.ErrorIs(t, err, vector.ErrEmptyBuffer)

	b, err := vector.BufferFrom([]float64{0, 0, 0, 2, 4, 6, -2, 8, 3})
	require.NoError(t, err)

	c, err := b.Centroid()
	require.NoError(t, err)
	assert.True(t, c.ApproxEquals(vector.New(0, 4, 3), 1e-12))

	lo, hi, err := b.Bounds()
	require.NoError(t, err)
	assert.True(t, lo.Equals(vector.New(-2, 0, 0)))
	assert.True(t, hi.Equals(vector.New(2, 8, 6)))
}

func TestR3Interop(t *testing.T) {
	v := vector.New(1, 2, 3)
	r := v.R3()
	assert.Equal(t, 2.0, r.Y)
	assert.True(t, vector.New().FromR3(r).Equals(v))

	assert.True(t, v.ApproxEquals(vector.New(1+1e-10, 2, 3), 1e-9))
	assert.False(t, v.ApproxEquals(vector.New(1.1, 2, 3), 1e-9))
}
