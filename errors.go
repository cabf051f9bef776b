package uniforms

import (
	"fmt"

	"github.com/gogpu/uniforms/location"
	"github.com/gogpu/uniforms/store"
)

// Runtime error kinds, shared with the store package.
const (
	ErrInvalidOperation = store.ErrInvalidOperation
	ErrInvalidValue     = store.ErrInvalidValue
	ErrInvalidLocation  = store.ErrInvalidLocation
)

// IsInvalidOperation reports whether err is an ErrInvalidOperation error.
func IsInvalidOperation(err error) bool { return store.IsInvalidOperation(err) }

// IsInvalidValue reports whether err is an ErrInvalidValue error.
func IsInvalidValue(err error) bool { return store.IsInvalidValue(err) }

// IsInvalidLocation reports whether err is an ErrInvalidLocation error.
func IsInvalidLocation(err error) bool { return store.IsInvalidLocation(err) }

func invalidOperation(loc location.Location, msg string) error {
	return &store.Error{Kind: store.ErrInvalidOperation, Location: loc, Message: msg}
}

func invalidProgram(id ProgramID) error {
	return &store.Error{
		Kind:     store.ErrInvalidValue,
		Location: location.Invalid,
		Message:  fmt.Sprintf("unknown program %d", id),
	}
}

// record keeps err as the pending error unless one is already pending.
// Reads from unowned locations are not recorded.
func (c *Context) record(err error) error {
	if err == nil || store.IsInvalidLocation(err) {
		return err
	}
	if c.pending == nil {
		c.pending = err
	}
	return err
}

// GetError returns the first error recorded since the previous call and
// clears it. Every method still returns its own error; GetError serves
// callers that check a sticky flag instead.
func (c *Context) GetError() error {
	err := c.pending
	c.pending = nil
	return err
}
