package typeparam

import (
	"errors"
	"fmt"
	"reflect"
)

// Resolver locates the type bound at a parameter position of the generic base
// declared by a subtype and instantiates it.
// The zero index is used unless At is called before Build.
type Resolver struct {
	subtype reflect.Type
	index   int
}

// For returns a resolver for the given subtype at index 0.
// Pointer subtypes are dereferenced before inspection.
func For(subtype reflect.Type) Resolver {
	return Resolver{subtype: subtype}
}

// ForType is For with the subtype given as a type argument.
func ForType[S any]() Resolver {
	return For(reflect.TypeFor[S]())
}

// At returns a copy of the resolver targeting the given parameter position.
// The position is validated when the resolver is used.
func (r Resolver) At(index int) Resolver {
	r.index = index
	return r
}

// Index returns the configured parameter position.
func (r Resolver) Index() int {
	return r.index
}

// TypeArgument returns the type bound at the configured position without
// constructing anything.
func (r Resolver) TypeArgument() (reflect.Type, error) {
	if r.subtype == nil {
		return nil, ErrNilType
	}

	subtype := r.subtype
	for subtype.Kind() == reflect.Pointer {
		subtype = subtype.Elem()
	}

	// Methods promoted from an embedded base are reachable through the pointer
	// regardless of receiver kind.
	p, ok := reflect.New(subtype).Interface().(Parameterized)
	if !ok {
		return nil, errors.Join(ErrNotGeneric, fmt.Errorf("%s does not embed a generic base", subtype))
	}

	args := p.TypeArguments()
	if r.index < 0 || r.index >= len(args) {
		return nil, errors.Join(ErrIndexOutOfRange,
			fmt.Errorf("index %d, %s captures %d type parameters", r.index, subtype, len(args)))
	}

	return args[r.index], nil
}

// Build resolves the bound type and returns a new default-constructed instance of it.
// The dynamic type of the result equals the bound type exactly.
func (r Resolver) Build() (any, error) {
	arg, err := r.TypeArgument()
	if err != nil {
		return nil, err
	}

	v, err := construct(arg)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Build is the typed form of Resolver.Build. When the bound type itself does not
// satisfy T but a pointer to it does, the pointer is returned.
func Build[T any](r Resolver) (T, error) {
	var zero T

	arg, err := r.TypeArgument()
	if err != nil {
		return zero, err
	}

	v, err := construct(arg)
	if err != nil {
		return zero, err
	}

	want := reflect.TypeFor[T]()
	switch {
	case v.Type().AssignableTo(want):
		return v.Interface().(T), nil
	case v.CanAddr() && v.Addr().Type().AssignableTo(want):
		return v.Addr().Interface().(T), nil
	}

	return zero, errors.Join(ErrTypeMismatch, fmt.Errorf("%s is not assignable to %s", arg, want))
}

// New instantiates the type bound at index of the generic base declared by subtype.
//
// Example:
//
//	type BaseString struct {
//		typeparam.Of2[string, Object]
//	}
//
//	s, err := typeparam.New[string](reflect.TypeFor[BaseString](), 0)
func New[T any](subtype reflect.Type, index int) (T, error) {
	return Build[T](For(subtype).At(index))
}
