package vector

import (
	"math"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// Fixed is a vector with 18-decimal fixed-point components. Unlike Vector3
// its text form is deterministic across platforms, which makes it suitable
// for hashing or storing coordinates.
type Fixed struct {
	X, Y, Z sdkmath.LegacyDec
}

// ToFixed converts v to fixed-point. NaN and infinite components cannot be
// represented and fail with ErrNonFinite.
func (v *Vector3) ToFixed() (Fixed, error) {
	var out Fixed
	dst := []*sdkmath.LegacyDec{&out.X, &out.Y, &out.Z}
	for i, c := range []float64{v.X, v.Y, v.Z} {
		if !isFinite(c) {
			return Fixed{}, errorsmod.Wrapf(ErrNonFinite, "component %d is %v", i, c)
		}
		d, err := sdkmath.LegacyNewDecFromStr(strconv.FormatFloat(c, 'f', sdkmath.LegacyPrecision, 64))
		if err != nil {
			return Fixed{}, errorsmod.Wrapf(ErrOutOfRange, "component %d (%g): %v", i, c, err)
		}
		*dst[i] = d
	}
	return out, nil
}

// Vector converts f back to floating point
func (f Fixed) Vector() (*Vector3, error) {
	var c [3]float64
	for i, d := range []sdkmath.LegacyDec{f.X, f.Y, f.Z} {
		if d.IsNil() {
			return nil, errorsmod.Wrapf(ErrParse, "component %d is unset", i)
		}
		fl, err := d.Float64()
		if err != nil {
			return nil, errorsmod.Wrapf(ErrOutOfRange, "component %d: %v", i, err)
		}
		if math.IsInf(fl, 0) {
			return nil, errorsmod.Wrapf(ErrOutOfRange, "component %d overflows float64", i)
		}
		c[i] = fl
	}
	return New(c[:]...), nil
}

// String returns "x,y,z" with every component printed to 18 decimals
func (f Fixed) String() string {
	return f.X.String() + "," + f.Y.String() + "," + f.Z.String()
}

// ParseFixed reads the form produced by Fixed.String
func ParseFixed(s string) (Fixed, error) {
	fields := strings.Split(strings.TrimSpace(s), ",")
	if len(fields) != 3 {
		return Fixed{}, errorsmod.Wrapf(ErrParse, "fixed vector %q needs 3 components", s)
	}
	var out Fixed
	dst := []*sdkmath.LegacyDec{&out.X, &out.Y, &out.Z}
	for i, field := range fields {
		d, err := sdkmath.LegacyNewDecFromStr(strings.TrimSpace(field))
		if err != nil {
			return Fixed{}, errorsmod.Wrapf(ErrParse, "component %d of %q: %v", i, s, err)
		}
		*dst[i] = d
	}
	return out, nil
}
