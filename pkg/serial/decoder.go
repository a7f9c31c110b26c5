package serial

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/typekit/pkg/logger"
)

// Decoder turns frames produced by Encode back into object graphs.
// Every type name in a frame is looked up in the resolver passed to the call first
// and in the decoder's ambient resolver second.
// A Decoder is immutable and safe for concurrent use as long as its resolvers are.
type Decoder struct {
	ambient      TypeResolver
	maxFrameSize int
	maxDepth     int
	logger       *slog.Logger
}

// NewDecoder creates a decoder whose ambient context is ambient.
// A nil ambient resolver is replaced by NewRegistry, which only knows predeclared types.
func NewDecoder(ambient TypeResolver, opts ...Option) *Decoder {
	if ambient == nil {
		ambient = NewRegistry()
	}
	d := &Decoder{
		ambient:      ambient,
		maxFrameSize: DefaultMaxFrameSize,
		maxDepth:     DefaultMaxDepth,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With(logger.Component("serial.decoder"))
	return d
}

// Decode decodes a single frame held in data. A nil types resolver means the
// ambient context alone is used. Bytes after the frame are an error.
func (d *Decoder) Decode(data []byte, types TypeResolver) (any, error) {
	r := bytes.NewReader(data)
	v, err := d.DecodeReader(r, types)
	if err != nil {
		return nil, err
	}
	if r.Len() > 0 {
		return nil, errors.Join(ErrDecode, ErrMalformed, fmt.Errorf("%d trailing bytes after frame", r.Len()))
	}
	return v, nil
}

// DecodeReader reads and decodes the next frame from r. The reader is left
// positioned after the frame and is not closed.
//
// Failures are either ErrTypeNotResolved, naming the type missing from both
// contexts, or ErrDecode joined with the structural cause.
func (d *Decoder) DecodeReader(r io.Reader, types TypeResolver) (any, error) {
	f, err := readFrame(r, d.maxFrameSize)
	if err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	defer f.release()

	if err := checkNesting(f.bytes(), nestingLimit(d.maxDepth)); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}

	var root node
	if err := bson.Unmarshal(f.bytes(), &root); err != nil {
		return nil, errors.Join(ErrDecode, ErrMalformed, err)
	}

	g := &graph{
		decoder:  d,
		types:    types,
		resolved: make(map[string]reflect.Type),
		refs:     make(map[int64]reflect.Value),
	}

	t, err := g.resolve(root.Type)
	if err != nil {
		return nil, g.fail(err)
	}
	v := reflect.New(t).Elem()
	if err := g.build(&root, v, 1); err != nil {
		return nil, g.fail(err)
	}
	return v.Interface(), nil
}

// graph holds the per-call state of a decode: resolved names and pointers by id.
type graph struct {
	decoder  *Decoder
	types    TypeResolver
	resolved map[string]reflect.Type
	refs     map[int64]reflect.Value
}

func (g *graph) fail(err error) error {
	if errors.Is(err, ErrTypeNotResolved) {
		return err
	}
	return errors.Join(ErrDecode, err)
}

func (g *graph) resolve(name string) (reflect.Type, error) {
	return resolveName(name, g.lookup)
}

func (g *graph) lookup(name string) (reflect.Type, error) {
	if t, ok := g.resolved[name]; ok {
		return t, nil
	}

	var injectedErr error
	if g.types != nil {
		t, err := g.types.ResolveType(name)
		if err == nil && t != nil {
			g.resolved[name] = t
			return t, nil
		}
		injectedErr = err
	}

	t, err := g.decoder.ambient.ResolveType(name)
	if err == nil && t != nil {
		if g.types != nil {
			g.decoder.logger.Debug("type resolved from ambient context",
				logger.TypeName(name), logger.Error(injectedErr))
		}
		g.resolved[name] = t
		return t, nil
	}

	return nil, errors.Join(ErrTypeNotResolved, fmt.Errorf("type %q", name), injectedErr, err)
}

func mismatch(n *node, t reflect.Type) error {
	return errors.Join(ErrKindMismatch, fmt.Errorf("%s node cannot populate %s", n.Kind, t))
}

// build populates the addressable value v from n.
func (g *graph) build(n *node, v reflect.Value, depth int) error {
	if depth > g.decoder.maxDepth {
		return ErrMaxDepthExceeded
	}

	t := v.Type()
	if isBinary(t) {
		if n.Kind != kindBinary {
			return mismatch(n, t)
		}
		u := v.Addr().Interface().(encoding.BinaryUnmarshaler)
		if err := u.UnmarshalBinary(bytes.Clone(n.Bytes)); err != nil {
			return errors.Join(ErrMalformed, fmt.Errorf("%s: %w", t, err))
		}
		return nil
	}

	switch t.Kind() {
	case reflect.Bool:
		if n.Kind != kindBool {
			return mismatch(n, t)
		}
		v.SetBool(n.Bool)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n.Kind != kindInt {
			return mismatch(n, t)
		}
		if v.OverflowInt(n.Int) {
			return errors.Join(ErrMalformed, fmt.Errorf("%d overflows %s", n.Int, t))
		}
		v.SetInt(n.Int)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n.Kind != kindUint {
			return mismatch(n, t)
		}
		u := uint64(n.Int)
		if v.OverflowUint(u) {
			return errors.Join(ErrMalformed, fmt.Errorf("%d overflows %s", u, t))
		}
		v.SetUint(u)

	case reflect.Float32, reflect.Float64:
		if n.Kind != kindFloat {
			return mismatch(n, t)
		}
		if v.OverflowFloat(n.Float) {
			return errors.Join(ErrMalformed, fmt.Errorf("%g overflows %s", n.Float, t))
		}
		v.SetFloat(n.Float)

	case reflect.String:
		if n.Kind != kindString {
			return mismatch(n, t)
		}
		v.SetString(n.String)

	case reflect.Slice:
		if n.Kind == kindBytes && t.Elem().Kind() == reflect.Uint8 {
			b := make([]byte, len(n.Bytes))
			copy(b, n.Bytes)
			v.SetBytes(b)
			return nil
		}
		if n.Kind != kindSlice {
			return mismatch(n, t)
		}
		if n.Nil {
			v.SetZero()
			return nil
		}
		s := reflect.MakeSlice(t, len(n.Items), len(n.Items))
		for i := range n.Items {
			if err := g.build(&n.Items[i], s.Index(i), depth+1); err != nil {
				return err
			}
		}
		v.Set(s)

	case reflect.Array:
		if n.Kind != kindArray {
			return mismatch(n, t)
		}
		if len(n.Items) != t.Len() {
			return errors.Join(ErrMalformed, fmt.Errorf("%d items for %s", len(n.Items), t))
		}
		for i := range n.Items {
			if err := g.build(&n.Items[i], v.Index(i), depth+1); err != nil {
				return err
			}
		}

	case reflect.Map:
		if n.Kind != kindMap {
			return mismatch(n, t)
		}
		if n.Nil {
			v.SetZero()
			return nil
		}
		if len(n.Items)%2 != 0 {
			return errors.Join(ErrMalformed, fmt.Errorf("odd number of map items for %s", t))
		}
		m := reflect.MakeMapWithSize(t, len(n.Items)/2)
		for i := 0; i < len(n.Items); i += 2 {
			key := reflect.New(t.Key()).Elem()
			if err := g.build(&n.Items[i], key, depth+1); err != nil {
				return err
			}
			elem := reflect.New(t.Elem()).Elem()
			if err := g.build(&n.Items[i+1], elem, depth+1); err != nil {
				return err
			}
			m.SetMapIndex(key, elem)
		}
		v.Set(m)

	case reflect.Struct:
		if n.Kind != kindStruct {
			return mismatch(n, t)
		}
		fields := structFields(t)
		for i := range n.Items {
			item := &n.Items[i]
			idx, ok := fields[item.Field]
			if !ok {
				// Fields unknown to the target type are dropped.
				continue
			}
			if err := g.build(item, v.Field(idx), depth+1); err != nil {
				return fmt.Errorf("field %s.%s: %w", t, item.Field, err)
			}
		}

	case reflect.Pointer:
		if n.Kind != kindPointer {
			return mismatch(n, t)
		}
		if n.Nil {
			v.SetZero()
			return nil
		}
		if len(n.Items) == 0 {
			p, ok := g.refs[n.Ref]
			if !ok {
				return errors.Join(ErrDanglingReference, fmt.Errorf("pointer id %d", n.Ref))
			}
			if !p.Type().AssignableTo(t) {
				return errors.Join(ErrKindMismatch, fmt.Errorf("pointer id %d is %s, want %s", n.Ref, p.Type(), t))
			}
			v.Set(p)
			return nil
		}
		if len(n.Items) != 1 {
			return errors.Join(ErrMalformed, fmt.Errorf("pointer node with %d items", len(n.Items)))
		}
		p := reflect.New(t.Elem())
		if n.Ref != 0 {
			if _, dup := g.refs[n.Ref]; dup {
				return errors.Join(ErrMalformed, fmt.Errorf("pointer id %d defined twice", n.Ref))
			}
			g.refs[n.Ref] = p
		}
		// Set before descending so cycles back to p resolve.
		v.Set(p)
		return g.build(&n.Items[0], p.Elem(), depth+1)

	case reflect.Interface:
		if n.Kind != kindInterface {
			return mismatch(n, t)
		}
		if n.Nil {
			v.SetZero()
			return nil
		}
		if len(n.Items) != 1 {
			return errors.Join(ErrMalformed, fmt.Errorf("interface node with %d items", len(n.Items)))
		}
		ct, err := g.resolve(n.Type)
		if err != nil {
			return err
		}
		if !ct.AssignableTo(t) {
			return errors.Join(ErrKindMismatch, fmt.Errorf("%s does not implement %s", ct, t))
		}
		concrete := reflect.New(ct).Elem()
		if err := g.build(&n.Items[0], concrete, depth+1); err != nil {
			return err
		}
		v.Set(concrete)

	default:
		return errors.Join(ErrUnsupportedType, fmt.Errorf("%s (%s)", t, t.Kind()))
	}

	return nil
}

var fieldCache sync.Map // map[reflect.Type]map[string]int

// structFields maps encodable field names of t to their index.
func structFields(t reflect.Type) map[string]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]int)
	}
	fields := make(map[string]int, t.NumField())
	for i := range t.NumField() {
		if f := t.Field(i); !fieldSkipped(f) {
			fields[f.Name] = i
		}
	}
	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.(map[string]int)
}
