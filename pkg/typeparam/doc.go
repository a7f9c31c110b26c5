// Package typeparam recovers the concrete types bound to a generic base and
// instantiates them by default construction.
//
// A type "declares a generic base" by embedding one of Of1, Of2, Of3 or Of4. The
// embedded base reports its own type arguments through the Parameterized interface,
// which Go promotes to the embedding type. Types may also implement Parameterized
// directly to register their bound types by hand.
//
// # Explicit form
//
//	type Object struct{}
//
//	type BaseString struct {
//		typeparam.Of2[string, Object]
//	}
//
//	s, err := typeparam.Build[string](typeparam.ForType[BaseString]())          // ""
//	o, err := typeparam.Build[Object](typeparam.ForType[BaseString]().At(1))    // Object{}
//
// The position defaults to 0 and is validated before anything is constructed.
//
// # Anonymous form
//
// Builder embeds Of1[T], so a composite literal captures the type argument:
//
//	sb := typeparam.Builder[*strings.Builder]{}.MustMake()
//
// # Construction
//
// The zero value of the bound type is allocated. Maps, slices and channels are made
// non-nil and empty, pointers get a freshly allocated pointee. Interface, func and
// unsafe pointer types cannot be constructed. When *T implements Initializer, Init
// runs after allocation and its failure is reported as ErrNotConstructible.
//
// # Errors
//
//   - ErrNotGeneric: the subtype does not expose a generic base
//   - ErrIndexOutOfRange: the position is outside [0, N)
//   - ErrNotConstructible: the bound type has no default construction
//   - ErrTypeMismatch: the instance does not satisfy the caller's requested type
package typeparam
