package table

import (
	"fmt"
	"math"
)

// Missing is the value of an absent numeric cell.
var Missing = math.NaN()

// IsMissing reports whether v is the missing sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Table is a length x width grid of values addressed by row and column.
//
// Consumers must not assume any particular backing: a Table may live in
// memory, be read lazily from a file or be a view over another Table.
// Every row has exactly Width values, in column order.
type Table[T any] interface {
	// Length returns the number of rows.
	Length() int
	// Width returns the number of columns.
	Width() int
	// Fields describes the columns; len(Fields()) == Width().
	Fields() []Field
	// Row returns a copy of row i.
	Row(i int) ([]T, error)
	// RowInto copies row i into dst, which must hold Width values.
	RowInto(i int, dst []T) error
	// Get returns the value at row i, column j.
	Get(i, j int) (T, error)
	// Put stores v at row i, column j. Views write to the table they
	// were derived from.
	Put(i, j int, v T) error
}

// Mapper turns the strings of a table into numbers.
//
// Codes are assigned per column, on first sight, starting at 0, and are
// never reassigned for the lifetime of the table.
type Mapper interface {
	// TransformStringToValue returns the numeric value(s) of s in column
	// col, assigning a new code when s has not been seen before. Token
	// columns yield one value per token, other columns exactly one.
	TransformStringToValue(col int, s string) ([]float64, error)
	// Code returns the value of s in column col without assigning codes;
	// unseen strings fail with ErrUnmappedString.
	Code(col int, s string) (float64, error)
	// CodeOrMissing is Code returning Missing instead of failing.
	CodeOrMissing(col int, s string) float64
}

// FieldIndex returns the column of the field called name.
func FieldIndex[T any](t Table[T], name string) (int, error) {
	for j, f := range t.Fields() {
		if f.Name == name {
			return j, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Column returns a copy of column j.
func Column[T any](t Table[T], j int) ([]T, error) {
	if err := checkCol(j, t.Width()); err != nil {
		return nil, err
	}
	col := make([]T, t.Length())
	for i := range col {
		v, err := t.Get(i, j)
		if err != nil {
			return nil, err
		}
		col[i] = v
	}
	return col, nil
}

// mapperOf returns t as a Mapper, or ErrNoMapping.
func mapperOf[T any](t Table[T]) (Mapper, error) {
	m, ok := any(t).(Mapper)
	if !ok {
		return nil, ErrNoMapping
	}
	return m, nil
}
