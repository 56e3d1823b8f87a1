package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrBadShape          = errors.New("tensor: invalid shape")
	ErrOutOfRange        = errors.New("tensor: index out of range")
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")
	ErrNotRoot           = errors.New("tensor: operation requires a root tensor, not a view")
)

// BoundsError reports a sub-tensor request that does not fit inside its
// parent along one dimension.
type BoundsError struct {
	Dim   int // Offending dimension
	From  int // Requested start index
	Len   int // Requested extent
	Width int // Parent extent along Dim
}

// Error implements the error interface.
func (e *BoundsError) Error() string {
	return fmt.Sprintf("tensor: sub-tensor out of range in dimension %d: from=%d len=%d width=%d",
		e.Dim, e.From, e.Len, e.Width)
}

// Unwrap lets errors.Is match ErrOutOfRange.
func (e *BoundsError) Unwrap() error {
	return ErrOutOfRange
}
