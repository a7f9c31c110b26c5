package serial

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"
)

// TypeResolver maps a type name found in a stream to a loadable type.
// Implementations used across goroutines must be safe for concurrent reads.
type TypeResolver interface {
	ResolveType(name string) (reflect.Type, error)
}

// TypeResolverFunc adapts a function to TypeResolver.
type TypeResolverFunc func(name string) (reflect.Type, error)

// ResolveType calls f(name).
func (f TypeResolverFunc) ResolveType(name string) (reflect.Type, error) {
	return f(name)
}

// Registry is a TypeResolver backed by a name-to-type map.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// predeclared is the seed of every registry created by NewRegistry.
var predeclared = []reflect.Type{
	reflect.TypeFor[bool](),
	reflect.TypeFor[string](),
	reflect.TypeFor[int](),
	reflect.TypeFor[int8](),
	reflect.TypeFor[int16](),
	reflect.TypeFor[int32](),
	reflect.TypeFor[int64](),
	reflect.TypeFor[uint](),
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[uintptr](),
	reflect.TypeFor[float32](),
	reflect.TypeFor[float64](),
	reflect.TypeFor[time.Time](),
	reflect.TypeFor[time.Duration](),
}

// NewRegistry creates a registry holding the predeclared scalar types,
// time.Time and time.Duration.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]reflect.Type, len(predeclared))}
	for _, t := range predeclared {
		r.types[TypeName(t)] = t
	}
	return r
}

// Register adds the dynamic type of v under its TypeName and returns that name.
func (r *Registry) Register(v any) (string, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return "", ErrNilValue
	}
	return r.RegisterType(t)
}

// RegisterType adds t under its TypeName. Pointer types are registered by their
// element type, since pointer prefixes are resolved structurally.
func (r *Registry) RegisterType(t reflect.Type) (string, error) {
	if t == nil {
		return "", ErrNilValue
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := TypeName(t)
	if name == "" || t.Name() == "" {
		return "", errors.Join(ErrUnnamedType, fmt.Errorf("%s", t))
	}

	r.RegisterName(name, t)
	return name, nil
}

// RegisterName binds name to t, replacing any previous binding. It is used to
// decode a stream written with one type into another compatible type.
func (r *Registry) RegisterName(name string, t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.types == nil {
		r.types = make(map[string]reflect.Type)
	}
	r.types[name] = t
}

// Unregister removes the binding for name, if any.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.types, name)
}

// ResolveType implements TypeResolver.
func (r *Registry) ResolveType(name string) (reflect.Type, error) {
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Join(ErrTypeNotRegistered, fmt.Errorf("type %q", name))
	}
	return t, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Register adds T to r and returns the name it was registered under.
func Register[T any](r *Registry) (string, error) {
	return r.RegisterType(reflect.TypeFor[T]())
}
