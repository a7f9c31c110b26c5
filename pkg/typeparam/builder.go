package typeparam

import (
	"fmt"
	"reflect"
)

// Builder captures T as the single type argument of its generic base, so a
// composite literal is enough to obtain a new T:
//
//	sb, err := typeparam.Builder[*strings.Builder]{}.Make()
//
// Make goes through the same Resolver as the explicit form, fixed at index 0.
type Builder[T any] struct {
	Of1[T]
}

// Make returns a new default-constructed T.
func (b Builder[T]) Make() (T, error) {
	return Build[T](For(reflect.TypeOf(b)))
}

// MustMake works like Make but panics if T cannot be constructed.
func (b Builder[T]) MustMake() T {
	v, err := b.Make()
	if err != nil {
		panic(fmt.Sprintf("typeparam: %v", err))
	}
	return v
}
