package vector

import (
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// Parse reads a vector literal of the form "x,y,z". Surrounding parentheses
// and spaces are ignored; omitted trailing components are zero.
func Parse(s string) (*Vector3, error) {
	body := strings.TrimSpace(s)
	body = strings.TrimPrefix(body, "(")
	body = strings.TrimSuffix(body, ")")
	if strings.TrimSpace(body) == "" {
		return nil, errorsmod.Wrapf(ErrParse, "empty literal %q", s)
	}

	fields := strings.Split(body, ",")
	if len(fields) > 3 {
		return nil, errorsmod.Wrapf(ErrParse, "%q has %d components", s, len(fields))
	}

	components := make([]float64, 0, 3)
	for i, f := range fields {
		c, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrParse, "component %d of %q: %v", i, s, err)
		}
		components = append(components, c)
	}
	return New(components...), nil
}

// MustParse is like Parse but panics on error
func MustParse(s string) *Vector3 {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}
