package ir

import (
	"errors"
	"fmt"
	"strings"
)

// LinkErrorKind categorizes link failures of the default uniform block.
type LinkErrorKind uint8

const (
	// ErrConflictingLocation indicates two uniforms claim the same location,
	// or one uniform is given two different explicit locations.
	ErrConflictingLocation LinkErrorKind = iota

	// ErrTypeMismatchAcrossStages indicates a uniform is declared with
	// different types or array sizes in different stages.
	ErrTypeMismatchAcrossStages

	// ErrInvalidDeclaration indicates a malformed declaration.
	ErrInvalidDeclaration

	// ErrLocationOutOfRange indicates an explicit span past the location limit.
	ErrLocationOutOfRange

	// ErrTooManyLocations indicates automatic assignment ran out of locations.
	ErrTooManyLocations
)

// String returns a human-readable error kind name.
func (k LinkErrorKind) String() string {
	switch k {
	case ErrConflictingLocation:
		return "ConflictingLocation"
	case ErrTypeMismatchAcrossStages:
		return "TypeMismatchAcrossStages"
	case ErrInvalidDeclaration:
		return "InvalidDeclaration"
	case ErrLocationOutOfRange:
		return "LocationOutOfRange"
	case ErrTooManyLocations:
		return "TooManyLocations"
	default:
		return "Unknown"
	}
}

// LinkError is a link-time failure. No allocation survives it.
type LinkError struct {
	// Kind categorizes the error.
	Kind LinkErrorKind

	// Message provides details about the error.
	Message string

	// Names lists the uniforms involved.
	Names []string
}

// Error implements the error interface.
func (e *LinkError) Error() string {
	if len(e.Names) > 0 {
		return fmt.Sprintf("link %s (%s): %s", e.Kind, strings.Join(e.Names, ", "), e.Message)
	}
	return fmt.Sprintf("link %s: %s", e.Kind, e.Message)
}

// NewLinkError creates a link error for the given uniforms.
func NewLinkError(kind LinkErrorKind, message string, names ...string) *LinkError {
	return &LinkError{
		Kind:    kind,
		Message: message,
		Names:   names,
	}
}

// IsLinkError reports whether err is a *LinkError of the given kind.
func IsLinkError(err error, kind LinkErrorKind) bool {
	var le *LinkError
	return errors.As(err, &le) && le.Kind == kind
}
