package vector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxygene76/vector3/pkg/vector"
)

func TestParse(t *testing.T) {
	cases := map[string]*vector.Vector3{
		"1,2,3":          vector.New(1, 2, 3),
		" 1.5 , -2 , 0 ": vector.New(1.5, -2, 0),
		"(4, 5, 6)":      vector.New(4, 5, 6),
		"7":              vector.New(7),
		"0,8":            vector.New(0, 8),
		"1e3,0,-2":       vector.New(1000, 0, -2),
	}

	for in, want := range cases {
		got, err := vector.Parse(in)
		require.NoError(t, err, in)
		assert.Truef(t, want.Equals(got), "%q: want %v, got %v", in, want, got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "  ", "()", "1,2,3,4", "a,b,c", "1,,3"} {
		_, err := vector.Parse(in)
		assert.ErrorIsf(t, err, vector.ErrParse, "%q", in)
	}
	assert.Panics(t, func() { vector.MustParse("x") })
}
