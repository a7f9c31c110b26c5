package serial

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	// frameHeaderSize is the BSON document length prefix.
	frameHeaderSize = 4
	// minFrameSize is the size of an empty BSON document.
	minFrameSize = 5
	// maxPooledFrame keeps oversized buffers out of the pool.
	maxPooledFrame = 1 << 20
)

var framePool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// frame is one BSON document read from a stream into a pooled buffer.
// Callers must release it once the graph is built.
type frame struct {
	buf *bytes.Buffer
}

func (f *frame) bytes() []byte {
	return f.buf.Bytes()
}

func (f *frame) release() {
	if f.buf == nil {
		return
	}
	if f.buf.Cap() <= maxPooledFrame {
		f.buf.Reset()
		framePool.Put(f.buf)
	}
	f.buf = nil
}

// readFrame reads exactly one length-prefixed document from r.
func readFrame(r io.Reader, maxSize int) (*frame, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errors.Join(ErrTruncatedFrame, err)
	}

	size := int64(binary.LittleEndian.Uint32(header[:]))
	if size < minFrameSize {
		return nil, errors.Join(ErrMalformed, fmt.Errorf("frame length %d", size))
	}
	if maxSize > 0 && size > int64(maxSize) {
		return nil, errors.Join(ErrFrameTooLarge, fmt.Errorf("frame length %d, limit %d", size, maxSize))
	}

	buf := framePool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Grow(int(size))
	buf.Write(header[:])

	f := &frame{buf: buf}
	if _, err := io.CopyN(buf, r, size-frameHeaderSize); err != nil {
		f.release()
		return nil, errors.Join(ErrTruncatedFrame, err)
	}
	return f, nil
}

// checkNesting rejects documents nested deeper than limit. It walks the raw
// document with an explicit stack so hostile frames cannot exhaust the goroutine
// stack before the recursive bson decoder runs.
func checkNesting(doc bson.Raw, limit int) error {
	type level struct {
		doc   bson.Raw
		depth int
	}

	stack := []level{{doc: doc, depth: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.depth > limit {
			return errors.Join(ErrMaxDepthExceeded, fmt.Errorf("document nesting exceeds %d", limit))
		}

		elems, err := top.doc.Elements()
		if err != nil {
			return errors.Join(ErrMalformed, err)
		}
		for _, el := range elems {
			val := el.Value()
			switch val.Type {
			case bson.TypeEmbeddedDocument:
				stack = append(stack, level{doc: val.Document(), depth: top.depth + 1})
			case bson.TypeArray:
				stack = append(stack, level{doc: bson.Raw(val.Array()), depth: top.depth + 1})
			}
		}
	}
	return nil
}

// nestingLimit is the document depth of a node tree maxDepth levels deep:
// every node is a document and its items an array.
func nestingLimit(maxDepth int) int {
	return 2*maxDepth + 2
}
