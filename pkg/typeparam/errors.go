package typeparam

import "errors"

var (
	// ErrNilType is returned when resolution is requested for a nil type descriptor.
	ErrNilType = errors.New("typeparam: nil type descriptor")

	// ErrNotGeneric is returned when the subtype does not embed a generic base.
	ErrNotGeneric = errors.New("typeparam: base type is not generic")

	// ErrIndexOutOfRange is returned when the parameter position is outside [0, N).
	ErrIndexOutOfRange = errors.New("typeparam: index exceeds range of type parameters")

	// ErrNotConstructible is returned when the bound type has no default construction
	// or its initializer fails.
	ErrNotConstructible = errors.New("typeparam: could not instantiate bound type")

	// ErrTypeMismatch is returned when the constructed value does not satisfy the
	// type requested by the caller.
	ErrTypeMismatch = errors.New("typeparam: constructed value does not match requested type")
)
