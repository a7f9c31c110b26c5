package serial

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/dmitrymomot/typekit/pkg/logger"
)

// DecodeOrNil works like Decode but returns nil instead of an error.
func (d *Decoder) DecodeOrNil(data []byte, types TypeResolver) any {
	v, err := d.Decode(data, types)
	if err != nil {
		d.swallowed(err)
		return nil
	}
	return v
}

// DecodeOrDefault works like Decode but returns fallback instead of an error.
func (d *Decoder) DecodeOrDefault(data []byte, types TypeResolver, fallback any) any {
	v, err := d.Decode(data, types)
	if err != nil {
		d.swallowed(err)
		return fallback
	}
	return v
}

// DecodeReaderOrNil works like DecodeReader but returns nil instead of an error.
func (d *Decoder) DecodeReaderOrNil(r io.Reader, types TypeResolver) any {
	v, err := d.DecodeReader(r, types)
	if err != nil {
		d.swallowed(err)
		return nil
	}
	return v
}

// DecodeReaderOrDefault works like DecodeReader but returns fallback instead of an error.
func (d *Decoder) DecodeReaderOrDefault(r io.Reader, types TypeResolver, fallback any) any {
	v, err := d.DecodeReader(r, types)
	if err != nil {
		d.swallowed(err)
		return fallback
	}
	return v
}

func (d *Decoder) swallowed(err error) {
	d.logger.Debug("decode failed, substituting result", logger.Error(err))
}

// DecodeAs decodes data and asserts the root to T.
// A root of another type is reported as ErrDecode joined with ErrKindMismatch.
func DecodeAs[T any](d *Decoder, data []byte, types TypeResolver) (T, error) {
	var zero T
	v, err := d.Decode(data, types)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.Join(ErrDecode, ErrKindMismatch,
			fmt.Errorf("decoded %T, want %s", v, reflect.TypeFor[T]()))
	}
	return t, nil
}

// DecodeAsOrNil works like DecodeAs but returns nil instead of an error.
func DecodeAsOrNil[T any](d *Decoder, data []byte, types TypeResolver) *T {
	t, err := DecodeAs[T](d, data, types)
	if err != nil {
		d.swallowed(err)
		return nil
	}
	return &t
}

// DecodeAsOrDefault works like DecodeAs but returns fallback instead of an error.
func DecodeAsOrDefault[T any](d *Decoder, data []byte, types TypeResolver, fallback T) T {
	t, err := DecodeAs[T](d, data, types)
	if err != nil {
		d.swallowed(err)
		return fallback
	}
	return t
}
