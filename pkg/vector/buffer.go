package vector

import (
	errorsmod "cosmossdk.io/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Buffer stores vectors as a flat slice of repeating [x, y, z] triples, the
// layout used by vertex and position buffers.
type Buffer struct {
	data []float64
}

// NewBuffer returns a buffer holding n zero vectors
func NewBuffer(n int) *Buffer {
	return &Buffer{data: make([]float64, 3*n)}
}

// BufferFrom wraps data without copying it
func BufferFrom(data []float64) (*Buffer, error) {
	if len(data)%3 != 0 {
		return nil, errorsmod.Wrapf(ErrBufferShape, "got %d values", len(data))
	}
	return &Buffer{data: data}, nil
}

// Len returns the number of vectors in the buffer
func (b *Buffer) Len() int {
	return len(b.data) / 3
}

// Data returns the backing slice
func (b *Buffer) Data() []float64 {
	return b.data
}

// At reads the i-th vector into dst and returns it. A nil dst allocates.
func (b *Buffer) At(i int, dst *Vector3) *Vector3 {
	if dst == nil {
		dst = &Vector3{}
	}
	return dst.FromArray(b.data, 3*i)
}

// SetAt stores v as the i-th vector. Like At, it panics when i is out of range.
func (b *Buffer) SetAt(i int, v *Vector3) {
	v.ToArray(b.data[3*i:3*i+3:len(b.data)], 0)
}

// Append adds v to the end of the buffer
func (b *Buffer) Append(v *Vector3) {
	b.data = v.ToArray(b.data, len(b.data))
}

// Dense returns an n×3 matrix view sharing the buffer's storage, or nil when
// the buffer is empty.
func (b *Buffer) Dense() *mat.Dense {
	if b.Len() == 0 {
		return nil
	}
	return mat.NewDense(b.Len(), 3, b.data)
}

// Centroid returns the mean of all vectors in the buffer
func (b *Buffer) Centroid() (*Vector3, error) {
	m := b.Dense()
	if m == nil {
		return nil, ErrEmptyBuffer
	}
	var c [3]float64
	col := make([]float64, b.Len())
	for j := range c {
		c[j] = stat.Mean(mat.Col(col, j, m), nil)
	}
	return New(c[:]...), nil
}

// Bounds returns the componentwise minimum and maximum over the buffer
func (b *Buffer) Bounds() (lo, hi *Vector3, err error) {
	if b.Len() == 0 {
		return nil, nil, ErrEmptyBuffer
	}
	lo = b.At(0, nil)
	hi = lo.Clone()
	var cur Vector3
	for i := 1; i < b.Len(); i++ {
		b.At(i, &cur)
		lo.Min(&cur)
		hi.Max(&cur)
	}
	return lo, hi, nil
}
