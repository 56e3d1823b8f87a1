package table

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrOutOfRange     = errors.New("table: index out of range")
	ErrWidthMismatch  = errors.New("table: row width mismatch")
	ErrFieldCount     = errors.New("table: wrong number of fields")
	ErrUnknownField   = errors.New("table: unknown field")
	ErrDuplicateField = errors.New("table: duplicate field name")
	ErrUnmappedString = errors.New("table: string has no code")
	ErrBadValue       = errors.New("table: value is not a number")
	ErrFieldType      = errors.New("table: field type does not support operation")
	ErrNoMapping      = errors.New("table: table has no string mapping")
	ErrNoTokenizer    = errors.New("table: tokens field without a tokenizer")
	ErrReadOnly       = errors.New("table: table is read-only")
	ErrEmptyTable     = errors.New("table: table is empty")
	ErrUnknownType    = errors.New("table: unknown field type")
	ErrCodeClash      = errors.New("table: number equals the code of a string")
)

// RangeError reports a row or column index outside [0, Len).
type RangeError struct {
	What  string // "row" or "column"
	Index int
	Len   int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("table: %s %d out of range [0, %d)", e.What, e.Index, e.Len)
}

// Unwrap lets errors.Is match ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// FieldCountError reports a data line whose number of fields differs from
// the header's.
type FieldCountError struct {
	Row  int // Data row index, 0-based
	Line int // Line number in the source, 1-based
	Want int
	Got  int
}

// Error implements the error interface.
func (e *FieldCountError) Error() string {
	return fmt.Sprintf("table: row %d (line %d): expected %d fields, got %d", e.Row, e.Line, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrFieldCount.
func (e *FieldCountError) Unwrap() error {
	return ErrFieldCount
}

func checkRow(i, length int) error {
	if i < 0 || i >= length {
		return &RangeError{What: "row", Index: i, Len: length}
	}
	return nil
}

func checkCol(j, width int) error {
	if j < 0 || j >= width {
		return &RangeError{What: "column", Index: j, Len: width}
	}
	return nil
}

func checkDst(n, width int) error {
	if n != width {
		return fmt.Errorf("%w: buffer holds %d values, row has %d", ErrWidthMismatch, n, width)
	}
	return nil
}
