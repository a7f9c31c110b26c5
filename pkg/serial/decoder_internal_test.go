package serial

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type link struct {
	Value int
	Next  *link
}

type pair[K comparable, V any] struct {
	Key K
	Val V
}

func marshalNode(t *testing.T, n node) []byte {
	t.Helper()
	data, err := bson.Marshal(n)
	require.NoError(t, err)
	return data
}

func linkRegistry() *Registry {
	r := NewRegistry()
	r.RegisterName(TypeName(reflect.TypeFor[link]()), reflect.TypeFor[link]())
	return r
}

func TestDecodeNodeTrees(t *testing.T) {
	t.Parallel()

	linkName := "*" + TypeName(reflect.TypeFor[link]())
	dec := NewDecoder(linkRegistry())

	tests := []struct {
		name  string
		root  node
		cause error
	}{
		{
			name: "dangling reference",
			root: node{Kind: kindPointer, Type: linkName, Ref: 1, Items: []node{{
				Kind: kindStruct, Items: []node{
					{Kind: kindInt, Field: "Value", Int: 1},
					{Kind: kindPointer, Field: "Next", Ref: 7},
				},
			}}},
			cause: ErrDanglingReference,
		},
		{
			name: "duplicate pointer id",
			root: node{Kind: kindPointer, Type: linkName, Ref: 1, Items: []node{{
				Kind: kindStruct, Items: []node{
					{Kind: kindPointer, Field: "Next", Ref: 1, Items: []node{{Kind: kindStruct}}},
				},
			}}},
			cause: ErrMalformed,
		},
		{
			name:  "reference without id",
			root:  node{Kind: kindPointer, Type: linkName},
			cause: ErrDanglingReference,
		},
		{
			name:  "pointer with two items",
			root:  node{Kind: kindPointer, Type: linkName, Ref: 1, Items: []node{{Kind: kindStruct}, {Kind: kindStruct}}},
			cause: ErrMalformed,
		},
		{
			name:  "overflow",
			root:  node{Kind: kindInt, Type: "int8", Int: 300},
			cause: ErrMalformed,
		},
		{
			name:  "unsigned overflow",
			root:  node{Kind: kindUint, Type: "uint8", Int: 256},
			cause: ErrMalformed,
		},
		{
			name:  "kind mismatch",
			root:  node{Kind: kindString, Type: "int", String: "1"},
			cause: ErrKindMismatch,
		},
		{
			name:  "array length",
			root:  node{Kind: kindArray, Type: "[2]int", Items: []node{{Kind: kindInt}}},
			cause: ErrMalformed,
		},
		{
			name:  "odd map items",
			root:  node{Kind: kindMap, Type: "map[string]int", Items: []node{{Kind: kindString}}},
			cause: ErrMalformed,
		},
		{
			name:  "empty root type",
			root:  node{Kind: kindInt, Int: 1},
			cause: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := dec.Decode(marshalNode(t, tt.root), nil)
			require.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestDecodeInterfaceNodeWithoutValue(t *testing.T) {
	t.Parallel()

	// []any has no stream name of its own, so it is bound to an alias.
	r := linkRegistry()
	r.RegisterName("anys", reflect.TypeFor[[]any]())

	root := node{Kind: kindSlice, Type: "anys", Items: []node{{Kind: kindInterface, Type: "int"}}}
	_, err := NewDecoder(r).Decode(marshalNode(t, root), nil)
	require.ErrorIs(t, err, ErrDecode)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeCycle(t *testing.T) {
	t.Parallel()

	a := &link{Value: 1}
	a.Next = &link{Value: 2, Next: a}

	data, err := Encode(a)
	require.NoError(t, err)

	v, err := NewDecoder(linkRegistry()).Decode(data, nil)
	require.NoError(t, err)

	got := v.(*link)
	assert.Equal(t, 1, got.Value)
	assert.Equal(t, 2, got.Next.Value)
	assert.Same(t, got, got.Next.Next)
}

func TestResolveName(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := Register[link](r)
	require.NoError(t, err)
	_, err = Register[pair[string, int]](r)
	require.NoError(t, err)

	for _, typ := range []reflect.Type{
		reflect.TypeFor[int](),
		reflect.TypeFor[*link](),
		reflect.TypeFor[**link](),
		reflect.TypeFor[[]*link](),
		reflect.TypeFor[[4][]string](),
		reflect.TypeFor[map[string]map[int]bool](),
		reflect.TypeFor[map[pair[string, int]][]pair[string, int]](),
		reflect.TypeFor[map[[2]int]*link](),
		reflect.TypeFor[[]any](),
	} {
		name := TypeName(typ)
		require.NotEmpty(t, name, typ.String())
		got, err := resolveName(name, r.ResolveType)
		require.NoError(t, err, name)
		assert.Equal(t, typ, got, name)
	}
}

func TestResolveNameMalformed(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, name := range []string{"", "map[int", "[x]int", "[-1]int", "*", "[]", "map[[]int]string"} {
		_, err := resolveName(name, r.ResolveType)
		require.ErrorIs(t, err, ErrMalformed, name)
	}

	_, err := resolveName("[]example.com/missing.Type", r.ResolveType)
	require.ErrorIs(t, err, ErrTypeNotRegistered)
}

func TestReadFrame(t *testing.T) {
	t.Parallel()

	data, err := Encode(42)
	require.NoError(t, err)

	f, err := readFrame(bytes.NewReader(data), 0)
	require.NoError(t, err)
	assert.Equal(t, data, f.bytes())

	f.release()
	assert.Nil(t, f.buf)
	assert.NotPanics(t, f.release)

	_, err = readFrame(bytes.NewReader(data), len(data)-1)
	require.ErrorIs(t, err, ErrFrameTooLarge)

	_, err = readFrame(bytes.NewReader(data[:len(data)-1]), 0)
	require.ErrorIs(t, err, ErrTruncatedFrame)
}

func TestNodeKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pointer", kindPointer.String())
	assert.Equal(t, "unknown", nodeKind(200).String())
}

// nestedPointers builds a frame of levels pointer nodes, each holding the next
// one in its items array. bson.Marshal cannot produce frames this deep.
func nestedPointers(levels int) []byte {
	const (
		leafSize  = 12 // {k: int32}
		levelSize = 23 // {k: int32, c: [<child>]} around the child
	)
	kind := uint32(kindPointer)

	data := make([]byte, 0, leafSize+levelSize*levels)
	for i := levels; i > 0; i-- {
		child := leafSize + levelSize*(i-1)
		data = binary.LittleEndian.AppendUint32(data, uint32(child+levelSize))
		data = append(data, 0x10, 'k', 0x00)
		data = binary.LittleEndian.AppendUint32(data, kind)
		data = append(data, 0x04, 'c', 0x00)
		data = binary.LittleEndian.AppendUint32(data, uint32(child+8))
		data = append(data, 0x03, '0', 0x00)
	}
	data = binary.LittleEndian.AppendUint32(data, leafSize)
	data = append(data, 0x10, 'k', 0x00)
	data = binary.LittleEndian.AppendUint32(data, kind)
	data = append(data, 0x00)
	for range levels {
		data = append(data, 0x00, 0x00)
	}
	return data
}

func TestCheckNesting(t *testing.T) {
	t.Parallel()

	data := nestedPointers(3)
	require.NoError(t, checkNesting(data, 7))

	err := checkNesting(data, 6)
	require.ErrorIs(t, err, ErrMaxDepthExceeded)

	err = checkNesting(data[:len(data)-1], 7)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeDeeplyNestedFrame(t *testing.T) {
	t.Parallel()

	data := nestedPointers(700_000)
	require.LessOrEqual(t, len(data), DefaultMaxFrameSize)

	dec := NewDecoder(nil)
	v, err := dec.Decode(data, nil)
	require.ErrorIs(t, err, ErrDecode)
	require.ErrorIs(t, err, ErrMaxDepthExceeded)
	assert.Nil(t, v)

	assert.Nil(t, dec.DecodeOrNil(data, nil))
	assert.Equal(t, "fallback", dec.DecodeOrDefault(data, nil, "fallback"))
}
