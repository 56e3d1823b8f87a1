package table

import (
	"fmt"

	"github.com/born-ml/strider/internal/tokenizer"
)

// StringTable is an in-memory table of strings with a string to value
// mapping per column. Empty cells are the missing value.
type StringTable struct {
	*Memory[string]
	mapping *mapping
}

// NewStringTable creates an empty string table with the given columns.
func NewStringTable(fields ...Field) (*StringTable, error) {
	return newStringTable(0, fields, nil)
}

func newStringTable(length int, fields []Field, tok tokenizer.Tokenizer) (*StringTable, error) {
	mem, err := NewMemory(length, fields, "")
	if err != nil {
		return nil, err
	}
	return &StringTable{
		Memory:  mem,
		mapping: newMapping(tok),
	}, nil
}

// TextFields returns row i split into its fields.
func (s *StringTable) TextFields(i int) ([]string, error) {
	return s.Row(i)
}

// SetFieldType changes the type of column j. Codes already assigned in
// the column are kept.
func (s *StringTable) SetFieldType(j int, ft FieldType) error {
	return s.setFieldType(j, ft)
}

// SetTokenizer sets the tokenizer used by tokens columns.
func (s *StringTable) SetTokenizer(tok tokenizer.Tokenizer) {
	s.mapping.tok = tok
}

// TransformStringToValue implements Mapper.
func (s *StringTable) TransformStringToValue(col int, v string) ([]float64, error) {
	if err := checkCol(col, s.Width()); err != nil {
		return nil, err
	}
	return s.mapping.transform(s.fields[col].Type, col, v)
}

// Code implements Mapper.
func (s *StringTable) Code(col int, v string) (float64, error) {
	if err := checkCol(col, s.Width()); err != nil {
		return Missing, err
	}
	return s.mapping.code(s.fields[col].Type, col, v)
}

// CodeOrMissing implements Mapper.
func (s *StringTable) CodeOrMissing(col int, v string) float64 {
	c, err := s.Code(col, v)
	if err != nil {
		return Missing
	}
	return c
}

// Codes returns a copy of the codes assigned so far in column col.
func (s *StringTable) Codes(col int) (map[string]float64, error) {
	if err := checkCol(col, s.Width()); err != nil {
		return nil, err
	}
	return s.mapping.snapshot(col), nil
}

// Value returns the numeric value of the cell at row i, column j.
func (s *StringTable) Value(i, j int) (float64, error) {
	cell, err := s.Get(i, j)
	if err != nil {
		return Missing, err
	}
	values, err := s.TransformStringToValue(j, cell)
	if err != nil {
		return Missing, err
	}
	if len(values) != 1 {
		return Missing, fmt.Errorf("%w: column %d yields %d values", ErrFieldType, j, len(values))
	}
	return values[0], nil
}
