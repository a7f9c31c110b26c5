package serial

import (
	"encoding"
	"reflect"
)

// nodeKind identifies how a node populates its target value.
type nodeKind uint8

const (
	kindInvalid nodeKind = iota
	kindBool
	kindInt
	kindUint
	kindFloat
	kindString
	kindBytes
	kindBinary
	kindSlice
	kindArray
	kindMap
	kindStruct
	kindPointer
	kindInterface
)

var kindNames = [...]string{
	kindInvalid:   "invalid",
	kindBool:      "bool",
	kindInt:       "int",
	kindUint:      "uint",
	kindFloat:     "float",
	kindString:    "string",
	kindBytes:     "bytes",
	kindBinary:    "binary",
	kindSlice:     "slice",
	kindArray:     "array",
	kindMap:       "map",
	kindStruct:    "struct",
	kindPointer:   "pointer",
	kindInterface: "interface",
}

func (k nodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// node is one value of the encoded object graph. The root node is the BSON
// document written to the stream. Unsigned integers are stored bit-for-bit in Int
// because BSON has no unsigned 64-bit type.
type node struct {
	Kind   nodeKind `bson:"k"`
	Type   string   `bson:"t,omitempty"`
	Field  string   `bson:"f,omitempty"`
	Ref    int64    `bson:"r,omitempty"`
	Nil    bool     `bson:"n,omitempty"`
	Bool   bool     `bson:"b,omitempty"`
	Int    int64    `bson:"i,omitempty"`
	Float  float64  `bson:"d,omitempty"`
	String string   `bson:"s,omitempty"`
	Bytes  []byte   `bson:"y,omitempty"`
	Items  []node   `bson:"c,omitempty"`
}

var (
	binaryMarshalerType   = reflect.TypeFor[encoding.BinaryMarshaler]()
	binaryUnmarshalerType = reflect.TypeFor[encoding.BinaryUnmarshaler]()
)

// isBinary reports whether values of t travel as opaque MarshalBinary output.
func isBinary(t reflect.Type) bool {
	return t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface &&
		t.Implements(binaryMarshalerType) && reflect.PointerTo(t).Implements(binaryUnmarshalerType)
}

// fieldSkipped reports whether a struct field takes part in encoding.
func fieldSkipped(f reflect.StructField) bool {
	return !f.IsExported() || f.Tag.Get("serial") == "-"
}
