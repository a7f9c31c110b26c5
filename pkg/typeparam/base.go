package typeparam

import "reflect"

// Parameterized is implemented by pointers to the generic bases of this package
// and promoted to every struct that embeds a base, by value or by pointer.
// The methods never read their receiver, so a nil embedded base still reports
// its type arguments.
type Parameterized interface {
	TypeArguments() []reflect.Type
}

// Of1 is a generic base capturing a single type argument.
type Of1[A any] struct{}

// TypeArguments returns the captured type arguments in declaration order.
func (*Of1[A]) TypeArguments() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A]()}
}

// Of2 is a generic base capturing two type arguments.
type Of2[A, B any] struct{}

// TypeArguments returns the captured type arguments in declaration order.
func (*Of2[A, B]) TypeArguments() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

// Of3 is a generic base capturing three type arguments.
type Of3[A, B, C any] struct{}

// TypeArguments returns the captured type arguments in declaration order.
func (*Of3[A, B, C]) TypeArguments() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
}

// Of4 is a generic base capturing four type arguments.
type Of4[A, B, C, D any] struct{}

// TypeArguments returns the captured type arguments in declaration order.
func (*Of4[A, B, C, D]) TypeArguments() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
}
