// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package table provides row tables of values addressed by row and column.
//
// A Table may live in memory (Memory, Matrix, StringTable), be read lazily
// from a memory-mapped text file (TextTable) or be a view over another
// table (column and row selections, transposition, sorting, encoding).
// String tables carry a per-column mapping from strings to numbers.
//
// Example:
//
//	st, err := table.LoadStringTable("data.txt", table.DefaultTextOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	row, _ := st.Row(0)
//	v, _ := st.TransformStringToValue(1, row[1])
package table

import (
	"cmp"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/strider/internal/parallel"
	"github.com/born-ml/strider/internal/table"
	"github.com/born-ml/strider/internal/tensor"
)

// Type aliases for public API

// Table is a length x width grid of values.
type Table[T any] = table.Table[T]

// Mapper turns the strings of a table into numbers.
type Mapper = table.Mapper

// Field describes a column.
type Field = table.Field

// FieldType tells how the strings of a column turn into numbers.
type FieldType = table.FieldType

// Field types.
const (
	FieldAuto        = table.FieldAuto
	FieldNumeric     = table.FieldNumeric
	FieldCategorical = table.FieldCategorical
	FieldTokens      = table.FieldTokens
)

// Memory is a growable in-memory table.
type Memory[T any] = table.Memory[T]

// Pair names the value of one field in AppendRow.
type Pair[T any] = table.Pair[T]

// Matrix is an in-memory table of reals whose missing value is NaN.
type Matrix = table.Matrix

// StringTable is an in-memory table of strings with a string mapping.
type StringTable = table.StringTable

// TextTable is a read-only table over a memory-mapped text file.
type TextTable = table.TextTable

// TextOptions configures how delimited text is read.
type TextOptions = table.TextOptions

// View types.
type (
	Columns[T any]    = table.Columns[T]
	Rows[T any]       = table.Rows[T]
	Transposed[T any] = table.Transposed[T]
	Encoded           = table.Encoded
)

// Error types.
type (
	RangeError      = table.RangeError
	FieldCountError = table.FieldCountError
)

// Errors returned by table operations.
var (
	ErrOutOfRange     = table.ErrOutOfRange
	ErrWidthMismatch  = table.ErrWidthMismatch
	ErrFieldCount     = table.ErrFieldCount
	ErrUnknownField   = table.ErrUnknownField
	ErrDuplicateField = table.ErrDuplicateField
	ErrUnmappedString = table.ErrUnmappedString
	ErrBadValue       = table.ErrBadValue
	ErrFieldType      = table.ErrFieldType
	ErrNoMapping      = table.ErrNoMapping
	ErrNoTokenizer    = table.ErrNoTokenizer
	ErrReadOnly       = table.ErrReadOnly
	ErrEmptyTable     = table.ErrEmptyTable
	ErrCodeClash      = table.ErrCodeClash
)

// IsMissing reports whether v is the missing numeric value (NaN).
func IsMissing(v float64) bool {
	return table.IsMissing(v)
}

// DefaultTextOptions returns ";"-separated fields with a "#:" header.
func DefaultTextOptions() TextOptions {
	return table.DefaultTextOptions()
}

// NewMemory creates a table of length rows with every cell set to missing.
func NewMemory[T any](length int, fields []Field, missing T) (*Memory[T], error) {
	return table.NewMemory(length, fields, missing)
}

// NewMatrix creates a length x width matrix of missing values.
func NewMatrix(length, width int) (*Matrix, error) {
	return table.NewMatrix(length, width)
}

// MatrixFromTensor makes a matrix sharing the (width, length) tensor t.
func MatrixFromTensor(t *tensor.Tensor[float64]) (*Matrix, error) {
	return table.MatrixFromTensor(t)
}

// NewStringTable creates an empty string table with the given columns.
func NewStringTable(fields ...Field) (*StringTable, error) {
	return table.NewStringTable(fields...)
}

// ReadStringTable reads delimited text from r into memory.
func ReadStringTable(r io.Reader, opts TextOptions) (*StringTable, error) {
	return table.ReadStringTable(r, opts)
}

// LoadStringTable reads the delimited text file at path into memory.
func LoadStringTable(path string, opts TextOptions) (*StringTable, error) {
	return table.LoadStringTable(path, opts)
}

// OpenTextTable maps the text file at path. Close it when done.
func OpenTextTable(path string, opts TextOptions) (*TextTable, error) {
	return table.OpenTextTable(path, opts)
}

// FieldIndex returns the column of the field called name.
func FieldIndex[T any](t Table[T], name string) (int, error) {
	return table.FieldIndex(t, name)
}

// SelectColumns returns a view of t restricted to cols.
func SelectColumns[T any](t Table[T], cols ...int) (*Columns[T], error) {
	return table.SelectColumns(t, cols...)
}

// SelectColumnsByName returns a view of t restricted to the named fields.
func SelectColumnsByName[T any](t Table[T], names ...string) (*Columns[T], error) {
	return table.SelectColumnsByName(t, names...)
}

// SubRows returns the view of rows [start, start+n) of t.
func SubRows[T any](t Table[T], start, n int) (*Rows[T], error) {
	return table.SubRows(t, start, n)
}

// SelectRows returns the view of the listed rows of t.
func SelectRows[T any](t Table[T], rows ...int) (*Rows[T], error) {
	return table.SelectRows(t, rows...)
}

// SortRows returns a view of t ordered by column col, ascending. Ties keep
// their original row order.
func SortRows[T cmp.Ordered](t Table[T], col int) (*Rows[T], error) {
	return table.SortRows(t, col)
}

// Transpose returns the transposed view of t.
func Transpose[T any](t Table[T]) *Transposed[T] {
	return table.Transpose(t)
}

// Encode returns the numeric view of a string table.
func Encode(t Table[string]) (*Encoded, error) {
	return table.Encode(t)
}

// ToDense copies a numeric table into a gonum matrix.
func ToDense(t Table[float64]) (*mat.Dense, error) {
	return table.ToDense(t)
}

// FromDense copies a gonum matrix into a new Matrix.
func FromDense(m mat.Matrix) (*Matrix, error) {
	return table.FromDense(m)
}

// ColumnStats summarizes the non-missing values of a column.
type ColumnStats = table.ColumnStats

// Stats summarizes every column of t, one column per worker goroutine.
// t must allow concurrent reads.
func Stats(t Table[float64]) ([]ColumnStats, error) {
	return table.Stats(t, parallel.DefaultConfig())
}

// Column returns a copy of column j of t.
func Column[T any](t Table[T], j int) ([]T, error) {
	return table.Column(t, j)
}
