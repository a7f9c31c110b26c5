package serial

import "errors"

// Decode errors. ErrTypeNotResolved and ErrDecode are the two failure classes of
// a decode call; the remaining values describe the structural cause joined with ErrDecode.
var (
	ErrTypeNotResolved = errors.New("serial: type name not resolved in injected or ambient context")
	ErrDecode          = errors.New("serial: failed to decode object graph")

	ErrTruncatedFrame    = errors.New("serial: truncated frame")
	ErrFrameTooLarge     = errors.New("serial: frame exceeds maximum size")
	ErrMalformed         = errors.New("serial: malformed node tree")
	ErrDanglingReference = errors.New("serial: reference to undefined pointer")
	ErrKindMismatch      = errors.New("serial: encoded kind does not match target type")
	ErrMaxDepthExceeded  = errors.New("serial: maximum nesting depth exceeded")
)

// Encode errors.
var (
	ErrEncode          = errors.New("serial: failed to encode object graph")
	ErrNilValue        = errors.New("serial: cannot encode nil value")
	ErrUnsupportedType = errors.New("serial: unsupported type")
)

// Registry errors.
var (
	ErrTypeNotRegistered = errors.New("serial: type not registered")
	ErrUnnamedType       = errors.New("serial: type has no resolvable name")
)
