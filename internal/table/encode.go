package table

import "fmt"

// Encoded is a read-only numeric view of a string table: every cell goes
// through the parent's string to value mapping, so reading a row may
// assign new codes. Token columns yield several values per cell and are
// rejected.
type Encoded struct {
	parent Table[string]
	mapper Mapper
}

// Encode returns the numeric view of t, which must implement Mapper.
func Encode(t Table[string]) (*Encoded, error) {
	m, err := mapperOf(t)
	if err != nil {
		return nil, err
	}
	for j, f := range t.Fields() {
		if f.Type == FieldTokens {
			return nil, fmt.Errorf("%w: column %d (%q) holds tokens", ErrFieldType, j, f.Name)
		}
	}
	return &Encoded{parent: t, mapper: m}, nil
}

// Length returns the number of rows of the parent.
func (e *Encoded) Length() int {
	return e.parent.Length()
}

// Width returns the number of columns of the parent.
func (e *Encoded) Width() int {
	return e.parent.Width()
}

// Fields returns the parent's column descriptions.
func (e *Encoded) Fields() []Field {
	return e.parent.Fields()
}

// Row returns the values of row i.
func (e *Encoded) Row(i int) ([]float64, error) {
	row := make([]float64, e.parent.Width())
	if err := e.RowInto(i, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RowInto writes the values of row i into dst.
func (e *Encoded) RowInto(i int, dst []float64) error {
	if err := checkDst(len(dst), e.parent.Width()); err != nil {
		return err
	}
	cells, err := e.parent.Row(i)
	if err != nil {
		return err
	}
	for j, s := range cells {
		v, err := e.value(j, s)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		dst[j] = v
	}
	return nil
}

// Get returns the value at row i, column j.
func (e *Encoded) Get(i, j int) (float64, error) {
	s, err := e.parent.Get(i, j)
	if err != nil {
		return Missing, err
	}
	return e.value(j, s)
}

// Put fails: values are derived from the parent's strings.
func (e *Encoded) Put(i, j int, _ float64) error {
	return fmt.Errorf("%w: encoded view (row %d, column %d)", ErrReadOnly, i, j)
}

func (e *Encoded) value(j int, s string) (float64, error) {
	values, err := e.mapper.TransformStringToValue(j, s)
	if err != nil {
		return Missing, err
	}
	if len(values) != 1 {
		return Missing, fmt.Errorf("%w: column %d yields %d values", ErrFieldType, j, len(values))
	}
	return values[0], nil
}
