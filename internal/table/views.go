package table

import (
	"cmp"
	"fmt"
	"slices"
)

// Columns is a view exposing a subset of the columns of another table, in
// a chosen order. Rows, writes and string mappings are forwarded to the
// parent with the column index remapped.
type Columns[T any] struct {
	parent Table[T]
	cols   []int
}

// SelectColumns returns a view of t restricted to cols.
func SelectColumns[T any](t Table[T], cols ...int) (*Columns[T], error) {
	for _, j := range cols {
		if err := checkCol(j, t.Width()); err != nil {
			return nil, err
		}
	}
	return &Columns[T]{parent: t, cols: slices.Clone(cols)}, nil
}

// SelectColumnsByName returns a view of t restricted to the named fields.
func SelectColumnsByName[T any](t Table[T], names ...string) (*Columns[T], error) {
	cols := make([]int, len(names))
	for k, name := range names {
		j, err := FieldIndex(t, name)
		if err != nil {
			return nil, err
		}
		cols[k] = j
	}
	return &Columns[T]{parent: t, cols: cols}, nil
}

// Length returns the number of rows of the parent.
func (c *Columns[T]) Length() int {
	return c.parent.Length()
}

// Width returns the number of selected columns.
func (c *Columns[T]) Width() int {
	return len(c.cols)
}

// Fields returns the descriptions of the selected columns.
func (c *Columns[T]) Fields() []Field {
	parent := c.parent.Fields()
	fields := make([]Field, len(c.cols))
	for k, j := range c.cols {
		fields[k] = parent[j]
	}
	return fields
}

// Row returns the selected columns of row i.
func (c *Columns[T]) Row(i int) ([]T, error) {
	row := make([]T, len(c.cols))
	if err := c.RowInto(i, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RowInto copies the selected columns of row i into dst.
func (c *Columns[T]) RowInto(i int, dst []T) error {
	if err := checkDst(len(dst), len(c.cols)); err != nil {
		return err
	}
	full, err := c.parent.Row(i)
	if err != nil {
		return err
	}
	for k, j := range c.cols {
		dst[k] = full[j]
	}
	return nil
}

// Get returns the value at row i, selected column j.
func (c *Columns[T]) Get(i, j int) (T, error) {
	if err := checkCol(j, len(c.cols)); err != nil {
		var zero T
		return zero, err
	}
	return c.parent.Get(i, c.cols[j])
}

// Put stores v in the parent at row i, selected column j.
func (c *Columns[T]) Put(i, j int, v T) error {
	if err := checkCol(j, len(c.cols)); err != nil {
		return err
	}
	return c.parent.Put(i, c.cols[j], v)
}

// TransformStringToValue forwards to the parent's mapping.
func (c *Columns[T]) TransformStringToValue(col int, s string) ([]float64, error) {
	m, j, err := c.mapper(col)
	if err != nil {
		return nil, err
	}
	return m.TransformStringToValue(j, s)
}

// Code forwards to the parent's mapping.
func (c *Columns[T]) Code(col int, s string) (float64, error) {
	m, j, err := c.mapper(col)
	if err != nil {
		return Missing, err
	}
	return m.Code(j, s)
}

// CodeOrMissing forwards to the parent's mapping.
func (c *Columns[T]) CodeOrMissing(col int, s string) float64 {
	v, err := c.Code(col, s)
	if err != nil {
		return Missing
	}
	return v
}

func (c *Columns[T]) mapper(col int) (Mapper, int, error) {
	if err := checkCol(col, len(c.cols)); err != nil {
		return nil, 0, err
	}
	m, err := mapperOf(c.parent)
	if err != nil {
		return nil, 0, err
	}
	return m, c.cols[col], nil
}

// Rows is a view exposing a selection of the rows of another table, in a
// chosen order.
type Rows[T any] struct {
	parent Table[T]
	rows   []int
}

// SubRows returns the view of rows [start, start+n) of t.
func SubRows[T any](t Table[T], start, n int) (*Rows[T], error) {
	if start < 0 || n < 0 || start+n > t.Length() {
		return nil, fmt.Errorf("%w: rows [%d, %d) of a table with %d rows",
			ErrOutOfRange, start, start+n, t.Length())
	}
	rows := make([]int, n)
	for k := range rows {
		rows[k] = start + k
	}
	return &Rows[T]{parent: t, rows: rows}, nil
}

// SelectRows returns the view of the listed rows of t. Rows may repeat.
func SelectRows[T any](t Table[T], rows ...int) (*Rows[T], error) {
	for _, i := range rows {
		if err := checkRow(i, t.Length()); err != nil {
			return nil, err
		}
	}
	return &Rows[T]{parent: t, rows: slices.Clone(rows)}, nil
}

// SortRows returns a view of t ordered by the values of column col,
// ascending. Rows with equal keys keep their original relative order.
func SortRows[T cmp.Ordered](t Table[T], col int) (*Rows[T], error) {
	keys, err := Column(t, col)
	if err != nil {
		return nil, err
	}
	rows := make([]int, len(keys))
	for i := range rows {
		rows[i] = i
	}
	slices.SortStableFunc(rows, func(a, b int) int {
		return cmp.Compare(keys[a], keys[b])
	})
	return &Rows[T]{parent: t, rows: rows}, nil
}

// Source returns the parent row shown at row i of the view.
func (r *Rows[T]) Source(i int) (int, error) {
	if err := checkRow(i, len(r.rows)); err != nil {
		return -1, err
	}
	return r.rows[i], nil
}

// Length returns the number of selected rows.
func (r *Rows[T]) Length() int {
	return len(r.rows)
}

// Width returns the width of the parent.
func (r *Rows[T]) Width() int {
	return r.parent.Width()
}

// Fields returns the parent's column descriptions.
func (r *Rows[T]) Fields() []Field {
	return r.parent.Fields()
}

// Row returns selected row i.
func (r *Rows[T]) Row(i int) ([]T, error) {
	src, err := r.Source(i)
	if err != nil {
		return nil, err
	}
	return r.parent.Row(src)
}

// RowInto copies selected row i into dst.
func (r *Rows[T]) RowInto(i int, dst []T) error {
	src, err := r.Source(i)
	if err != nil {
		return err
	}
	return r.parent.RowInto(src, dst)
}

// Get returns the value at selected row i, column j.
func (r *Rows[T]) Get(i, j int) (T, error) {
	src, err := r.Source(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.parent.Get(src, j)
}

// Put stores v in the parent at selected row i, column j.
func (r *Rows[T]) Put(i, j int, v T) error {
	src, err := r.Source(i)
	if err != nil {
		return err
	}
	return r.parent.Put(src, j, v)
}

// TransformStringToValue forwards to the parent's mapping.
func (r *Rows[T]) TransformStringToValue(col int, s string) ([]float64, error) {
	m, err := mapperOf(r.parent)
	if err != nil {
		return nil, err
	}
	return m.TransformStringToValue(col, s)
}

// Code forwards to the parent's mapping.
func (r *Rows[T]) Code(col int, s string) (float64, error) {
	m, err := mapperOf(r.parent)
	if err != nil {
		return Missing, err
	}
	return m.Code(col, s)
}

// CodeOrMissing forwards to the parent's mapping.
func (r *Rows[T]) CodeOrMissing(col int, s string) float64 {
	v, err := r.Code(col, s)
	if err != nil {
		return Missing
	}
	return v
}

// Transposed is a view swapping the rows and columns of another table.
// Its columns are unnamed.
type Transposed[T any] struct {
	parent Table[T]
}

// Transpose returns the transposed view of t.
func Transpose[T any](t Table[T]) *Transposed[T] {
	return &Transposed[T]{parent: t}
}

// Length returns the width of the parent.
func (t *Transposed[T]) Length() int {
	return t.parent.Width()
}

// Width returns the length of the parent.
func (t *Transposed[T]) Width() int {
	return t.parent.Length()
}

// Fields returns Width unnamed fields.
func (t *Transposed[T]) Fields() []Field {
	return unnamed(t.parent.Length())
}

// Row returns column i of the parent.
func (t *Transposed[T]) Row(i int) ([]T, error) {
	if err := checkRow(i, t.Length()); err != nil {
		return nil, err
	}
	return Column(t.parent, i)
}

// RowInto copies column i of the parent into dst.
func (t *Transposed[T]) RowInto(i int, dst []T) error {
	if err := checkDst(len(dst), t.parent.Length()); err != nil {
		return err
	}
	col, err := t.Row(i)
	if err != nil {
		return err
	}
	copy(dst, col)
	return nil
}

// Get returns the parent's value at row j, column i.
func (t *Transposed[T]) Get(i, j int) (T, error) {
	if err := t.check(i, j); err != nil {
		var zero T
		return zero, err
	}
	return t.parent.Get(j, i)
}

// Put stores v in the parent at row j, column i.
func (t *Transposed[T]) Put(i, j int, v T) error {
	if err := t.check(i, j); err != nil {
		return err
	}
	return t.parent.Put(j, i, v)
}

// check reports bad indices in the view's own terms.
func (t *Transposed[T]) check(i, j int) error {
	if err := checkRow(i, t.Length()); err != nil {
		return err
	}
	return checkCol(j, t.Width())
}
