package vector

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace is the error codespace for conversions in this package
const Codespace = "vector"

var (
	ErrParse       = errorsmod.Register(Codespace, 2, "invalid vector literal")
	ErrNonFinite   = errorsmod.Register(Codespace, 3, "non-finite component")
	ErrOutOfRange  = errorsmod.Register(Codespace, 4, "component out of range")
	ErrBufferShape = errorsmod.Register(Codespace, 5, "buffer length is not a multiple of 3")
	ErrEmptyBuffer = errorsmod.Register(Codespace, 6, "empty buffer")
)
