package core

import (
	"errors"
	"fmt"
)

var (
	// ErrRangeBounds matches every *RangeBoundsError.
	ErrRangeBounds = errors.New("index out of range")
	// ErrPathResolution matches every *PathResolutionError.
	ErrPathResolution = errors.New("path does not resolve against the tree")
	// ErrUnsupportedVariant matches every *UnsupportedVariantError.
	ErrUnsupportedVariant = errors.New("operation not supported by component variant")
	// ErrSelfInsert is returned when content would be inserted into itself or
	// into one of its own descendants.
	ErrSelfInsert = errors.New("core: content inserted into itself")
)

// RangeBoundsError is returned when an index lies outside [0, Length]. It is
// always a caller error.
type RangeBoundsError struct {
	Op     string
	Index  int
	Length int
}

func (e *RangeBoundsError) Error() string {
	return fmt.Sprintf("core: %s: index %d out of range [0, %d]", e.Op, e.Index, e.Length)
}

func (e *RangeBoundsError) Is(target error) bool {
	return target == ErrRangeBounds
}

// PathResolutionError is returned when a persisted path no longer matches the
// shape of the tree it is resolved against. Callers replaying history are
// expected to handle it, typically by discarding the entry.
type PathResolutionError struct {
	Path []int
	// Step is the position in Path where resolution failed.
	Step   int
	Reason string
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("core: resolve path %v at step %d: %s", e.Path, e.Step, e.Reason)
}

func (e *PathResolutionError) Is(target error) bool {
	return target == ErrPathResolution
}

// UnsupportedVariantError is returned when a structural operation is invoked
// on a component variant that does not provide it.
type UnsupportedVariantError struct {
	Op      string
	Variant Variant
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("core: %s is not supported by %s components", e.Op, e.Variant)
}

func (e *UnsupportedVariantError) Is(target error) bool {
	return target == ErrUnsupportedVariant
}

func boundsErr(op string, index, length int) error {
	return &RangeBoundsError{Op: op, Index: index, Length: length}
}
