// Package serial encodes object graphs into self-describing frames and decodes
// them back while resolving the embedded type names through a caller-supplied
// context before the decoder's ambient one.
//
// A frame is a single BSON document (go.mongodb.org/mongo-driver/v2/bson). It
// records the dynamic type name of the root and of every value stored behind an
// interface, so no target type is needed to decode it. Shared and cyclic pointers
// are written once and referenced afterwards, so the decoded graph has the same
// shape as the encoded one.
//
// # Type resolution
//
// Names are produced by TypeName: "example.com/app/model.User", "int",
// "*example.com/app/model.User", "[]string", "map[string]int". Pointer, slice,
// array and map names are resolved structurally; named types are looked up in
// the injected TypeResolver first and in the decoder's ambient resolver second.
// A name neither knows fails the decode with ErrTypeNotResolved.
//
//	ambient := serial.NewRegistry()
//	serial.Register[model.User](ambient)
//
//	dec := serial.NewDecoder(ambient, serial.WithLogger(log))
//
//	data, err := serial.Encode(&model.User{Name: "ann"})
//
//	// Decode with the ambient registry only.
//	v, err := dec.Decode(data, nil)
//
//	// Decode users into a newer type without touching the ambient registry.
//	override := serial.NewRegistry()
//	override.RegisterName(serial.TypeName(reflect.TypeFor[model.User]()), reflect.TypeFor[model.UserV2]())
//	u, err := serial.DecodeAs[*model.UserV2](dec, data, override)
//
// # Response shapes
//
// Decode and DecodeReader return errors. The OrNil variants return nil and the
// OrDefault variants return the caller's fallback when decoding fails; they wrap
// the error form and never return a partially built graph. DecodeAs,
// DecodeAsOrNil and DecodeAsOrDefault add a type assertion on the root.
//
// # Supported values
//
// Booleans, integers, floats, strings, byte slices, slices, arrays, maps,
// structs (exported fields, `serial:"-"` skips a field), pointers, interfaces and
// any type implementing encoding.BinaryMarshaler and encoding.BinaryUnmarshaler,
// such as time.Time. Fields present in the frame but unknown to the decoded type
// are ignored.
//
// Identity is kept for pointers only. A map or slice reachable from several places
// is written at every occurrence and decodes as independent copies, and a map or
// slice that contains itself fails to encode with ErrMaxDepthExceeded. Share such
// values through a pointer when identity matters.
//
// # Limits
//
// DefaultMaxFrameSize and DefaultMaxDepth bound a decode. They can be changed with
// WithMaxFrameSize, WithMaxDepth or WithConfig together with LoadConfig, which
// reads SERIAL_MAX_FRAME_SIZE and SERIAL_MAX_DEPTH.
//
// # Errors
//
//   - ErrTypeNotResolved: a type name is unknown to both contexts
//   - ErrDecode: structural failure, joined with ErrTruncatedFrame, ErrFrameTooLarge,
//     ErrMalformed, ErrDanglingReference, ErrKindMismatch or ErrMaxDepthExceeded
//   - ErrEncode: joined with ErrNilValue, ErrUnsupportedType or ErrMaxDepthExceeded
package serial
