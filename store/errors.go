package store

import (
	"errors"
	"fmt"

	"github.com/gogpu/uniforms/location"
)

// ErrorKind categorizes runtime uniform access errors.
type ErrorKind uint8

const (
	// ErrInvalidOperation indicates a setter or getter whose shape does not
	// fit the uniform, or a non-integer write to a sampler.
	ErrInvalidOperation ErrorKind = iota

	// ErrInvalidValue indicates a bad argument value: a negative count, a
	// short value slice or a texture unit out of range.
	ErrInvalidValue

	// ErrInvalidLocation indicates a read from a location no uniform owns.
	ErrInvalidLocation
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidOperation:
		return "InvalidOperation"
	case ErrInvalidValue:
		return "InvalidValue"
	case ErrInvalidLocation:
		return "InvalidLocation"
	default:
		return "Unknown"
	}
}

// Error is a runtime uniform access error. The store is left unchanged.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Location is the location passed to the failing call.
	Location location.Location

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("uniform %s at location %d: %s", e.Kind, e.Location, e.Message)
}

func newError(kind ErrorKind, loc location.Location, format string, args ...any) *Error {
	return &Error{Kind: kind, Location: loc, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a store error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsInvalidOperation reports whether err is an ErrInvalidOperation error.
func IsInvalidOperation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == ErrInvalidOperation
}

// IsInvalidValue reports whether err is an ErrInvalidValue error.
func IsInvalidValue(err error) bool {
	k, ok := KindOf(err)
	return ok && k == ErrInvalidValue
}

// IsInvalidLocation reports whether err is an ErrInvalidLocation error.
func IsInvalidLocation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == ErrInvalidLocation
}
