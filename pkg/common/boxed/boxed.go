// Package boxed provides a type-erased single-value container with checked
// retrieval.
//
// A Box holds exactly one value of a statically-known type. The value is
// retrieved with Cast, which fails with a TypeMismatchError when the
// requested type differs from the stored one. There are no implicit
// conversions; a Box holding an int will not yield an int64.
//
// Boxes are always passed by pointer and hold at most one value. An empty
// Box (None) is used as the sentinel for rejected or dropped work.
package boxed

import (
	"fmt"
	"reflect"

	tperrors "github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/errors"
)

// Box is a type-erased container for a single value.
type Box struct {
	value any
	full  bool
}

// Of wraps a value in a Box, preserving its dynamic type.
func Of[T any](value T) *Box {
	return &Box{value: value, full: true}
}

// None returns an empty Box. Casting it always fails with ErrEmptyBox.
func None() *Box {
	return &Box{}
}

// Empty reports whether the box holds no value.
func (b *Box) Empty() bool {
	return b == nil || !b.full
}

// Type returns the name of the stored value's dynamic type, or "" for an
// empty box. Intended for diagnostics.
func (b *Box) Type() string {
	if b.Empty() {
		return ""
	}
	return fmt.Sprintf("%T", b.value)
}

// Cast returns the stored value as T. It fails with ErrEmptyBox when the
// box holds nothing and with a TypeMismatchError when the stored dynamic
// type is not T. The box keeps its value; repeated casts see the same one.
func Cast[T any](b *Box) (T, error) {
	var zero T
	if b.Empty() {
		return zero, tperrors.ErrEmptyBox
	}
	v, ok := b.value.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Requested: reflect.TypeOf((*T)(nil)).Elem().String(),
			Stored:    fmt.Sprintf("%T", b.value),
		}
	}
	return v, nil
}

// TypeMismatchError reports a Cast with the wrong type parameter. It wraps
// ErrTypeMismatch so callers can match the class with errors.Is.
type TypeMismatchError struct {
	Requested string
	Stored    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot cast box holding %s to %s", e.Stored, e.Requested)
}

func (e *TypeMismatchError) Unwrap() error {
	return tperrors.ErrTypeMismatch
}
