package serial

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// anyName is the stream name of the empty interface.
const anyName = "interface {}"

// TypeName returns the name under which t is written into a stream.
// Named types use their import path and name, predeclared types their bare name.
// Pointers, slices, arrays and maps are composed from their element names.
// An empty string means the type cannot be named (anonymous structs, funcs, channels).
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}

	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return anyName
		}
	case reflect.Pointer:
		if elem := TypeName(t.Elem()); elem != "" {
			return "*" + elem
		}
	case reflect.Slice:
		if elem := TypeName(t.Elem()); elem != "" {
			return "[]" + elem
		}
	case reflect.Array:
		if elem := TypeName(t.Elem()); elem != "" {
			return "[" + strconv.Itoa(t.Len()) + "]" + elem
		}
	case reflect.Map:
		key, elem := TypeName(t.Key()), TypeName(t.Elem())
		if key != "" && elem != "" {
			return "map[" + key + "]" + elem
		}
	}
	return ""
}

// resolveName resolves composite names structurally and hands named leaves to lookup.
func resolveName(name string, lookup func(string) (reflect.Type, error)) (reflect.Type, error) {
	switch {
	case name == "":
		return nil, errors.Join(ErrMalformed, errors.New("empty type name"))

	case name == anyName:
		return reflect.TypeFor[any](), nil

	case strings.HasPrefix(name, "*"):
		elem, err := resolveName(name[1:], lookup)
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil

	case strings.HasPrefix(name, "[]"):
		elem, err := resolveName(name[2:], lookup)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil

	case strings.HasPrefix(name, "map["):
		end := closingBracket(name, len("map"))
		if end < 0 {
			return nil, errors.Join(ErrMalformed, fmt.Errorf("unbalanced map type %q", name))
		}
		key, err := resolveName(name[len("map["):end], lookup)
		if err != nil {
			return nil, err
		}
		elem, err := resolveName(name[end+1:], lookup)
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, errors.Join(ErrMalformed, fmt.Errorf("map key %s is not comparable", key))
		}
		return reflect.MapOf(key, elem), nil

	case strings.HasPrefix(name, "["):
		end := strings.IndexByte(name, ']')
		if end < 0 {
			return nil, errors.Join(ErrMalformed, fmt.Errorf("unbalanced array type %q", name))
		}
		n, err := strconv.Atoi(name[1:end])
		if err != nil || n < 0 {
			return nil, errors.Join(ErrMalformed, fmt.Errorf("invalid array length in %q", name))
		}
		elem, err := resolveName(name[end+1:], lookup)
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(n, elem), nil
	}

	return lookup(name)
}

// closingBracket returns the index of the ']' matching the '[' at open.
func closingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
