package typeparam

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// Initializer is implemented by bound types that need more than their zero value.
// Init is called on a pointer to the freshly allocated value.
type Initializer interface {
	Init() error
}

// construct allocates a default instance of t and returns it as an addressable value.
func construct(t reflect.Type) (reflect.Value, error) {
	return constructVisiting(t, nil)
}

// constructVisiting tracks the pointer types on the current allocation path so a
// pointer type that reaches itself is reported instead of recursing forever.
func constructVisiting(t reflect.Type, pointers []reflect.Type) (reflect.Value, error) {
	ptr := reflect.New(t)
	v := ptr.Elem()

	switch t.Kind() {
	case reflect.Interface, reflect.Func, reflect.UnsafePointer:
		return reflect.Value{}, errors.Join(ErrNotConstructible,
			fmt.Errorf("%s (%s) has no default construction", t, t.Kind()))
	case reflect.Map:
		v.Set(reflect.MakeMap(t))
	case reflect.Slice:
		v.Set(reflect.MakeSlice(t, 0, 0))
	case reflect.Chan:
		v.Set(reflect.MakeChan(t, 0))
	case reflect.Pointer:
		if slices.Contains(pointers, t) {
			return reflect.Value{}, errors.Join(ErrNotConstructible,
				fmt.Errorf("%s points to itself", t))
		}
		elem, err := constructVisiting(t.Elem(), append(pointers, t))
		if err != nil {
			return reflect.Value{}, err
		}
		v.Set(elem.Addr())
	}

	if init, ok := ptr.Interface().(Initializer); ok {
		if err := init.Init(); err != nil {
			return reflect.Value{}, errors.Join(ErrNotConstructible, fmt.Errorf("%s: %w", t, err))
		}
	}

	return v, nil
}
