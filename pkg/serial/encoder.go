package serial

import (
	"encoding"
	"errors"
	"fmt"
	"io"
	"reflect"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Encode writes v and everything reachable from it as a single frame.
// The dynamic type name of v is recorded so that decoding needs no target type.
func Encode(v any) ([]byte, error) {
	if v == nil {
		return nil, errors.Join(ErrEncode, ErrNilValue)
	}

	rv := reflect.ValueOf(v)
	name := TypeName(rv.Type())
	if name == "" {
		return nil, errors.Join(ErrEncode, ErrUnsupportedType, fmt.Errorf("root type %s has no name", rv.Type()))
	}

	enc := &encoder{refs: make(map[refKey]int64), maxDepth: DefaultMaxDepth}
	root, err := enc.encode(rv)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	root.Type = name

	data, err := bson.Marshal(root)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return data, nil
}

// EncodeTo writes the frame produced by Encode to w.
func EncodeTo(w io.Writer, v any) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Join(ErrEncode, err)
	}
	return nil
}

// refKey identifies a pointer; the type is part of the key because a struct and its
// first field share an address.
type refKey struct {
	ptr uintptr
	typ reflect.Type
}

type encoder struct {
	refs     map[refKey]int64
	next     int64
	depth    int
	maxDepth int
}

func (e *encoder) encode(v reflect.Value) (node, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.maxDepth {
		return node{}, ErrMaxDepthExceeded
	}

	t := v.Type()
	if isBinary(t) {
		data, err := v.Interface().(encoding.BinaryMarshaler).MarshalBinary()
		if err != nil {
			return node{}, fmt.Errorf("%s: %w", t, err)
		}
		return node{Kind: kindBinary, Bytes: data}, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return node{Kind: kindBool, Bool: v.Bool()}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return node{Kind: kindInt, Int: v.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return node{Kind: kindUint, Int: int64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return node{Kind: kindFloat, Float: v.Float()}, nil
	case reflect.String:
		return node{Kind: kindString, String: v.String()}, nil

	case reflect.Slice:
		if v.IsNil() {
			return node{Kind: kindSlice, Nil: true}, nil
		}
		if t.Elem().Kind() == reflect.Uint8 && !isBinary(t.Elem()) {
			return node{Kind: kindBytes, Bytes: v.Bytes()}, nil
		}
		return e.sequence(kindSlice, v)

	case reflect.Array:
		return e.sequence(kindArray, v)

	case reflect.Map:
		if v.IsNil() {
			return node{Kind: kindMap, Nil: true}, nil
		}
		n := node{Kind: kindMap, Items: make([]node, 0, 2*v.Len())}
		iter := v.MapRange()
		for iter.Next() {
			key, err := e.encode(iter.Key())
			if err != nil {
				return node{}, err
			}
			val, err := e.encode(iter.Value())
			if err != nil {
				return node{}, err
			}
			n.Items = append(n.Items, key, val)
		}
		return n, nil

	case reflect.Struct:
		n := node{Kind: kindStruct, Items: make([]node, 0, t.NumField())}
		for i := range t.NumField() {
			f := t.Field(i)
			if fieldSkipped(f) {
				continue
			}
			item, err := e.encode(v.Field(i))
			if err != nil {
				return node{}, fmt.Errorf("field %s.%s: %w", t, f.Name, err)
			}
			item.Field = f.Name
			n.Items = append(n.Items, item)
		}
		return n, nil

	case reflect.Pointer:
		if v.IsNil() {
			return node{Kind: kindPointer, Nil: true}, nil
		}
		key := refKey{ptr: v.Pointer(), typ: t}
		if id, ok := e.refs[key]; ok {
			return node{Kind: kindPointer, Ref: id}, nil
		}
		e.next++
		id := e.next
		e.refs[key] = id
		elem, err := e.encode(v.Elem())
		if err != nil {
			return node{}, err
		}
		return node{Kind: kindPointer, Ref: id, Items: []node{elem}}, nil

	case reflect.Interface:
		if v.IsNil() {
			return node{Kind: kindInterface, Nil: true}, nil
		}
		concrete := v.Elem()
		name := TypeName(concrete.Type())
		if name == "" {
			return node{}, errors.Join(ErrUnsupportedType,
				fmt.Errorf("%s stored in %s has no name", concrete.Type(), t))
		}
		elem, err := e.encode(concrete)
		if err != nil {
			return node{}, err
		}
		return node{Kind: kindInterface, Type: name, Items: []node{elem}}, nil
	}

	return node{}, errors.Join(ErrUnsupportedType, fmt.Errorf("%s (%s)", t, t.Kind()))
}

func (e *encoder) sequence(kind nodeKind, v reflect.Value) (node, error) {
	n := node{Kind: kind, Items: make([]node, v.Len())}
	for i := range v.Len() {
		item, err := e.encode(v.Index(i))
		if err != nil {
			return node{}, err
		}
		n.Items[i] = item
	}
	return n, nil
}
