package table

import (
	"fmt"
	"slices"

	"github.com/born-ml/strider/internal/tensor"
)

// Pair names the value of one field in AppendRow.
type Pair[T any] struct {
	Name  string
	Value T
}

// Memory is an in-memory table backed by a tensor of shape
// (width, capacity): the column index varies fastest, so each row is a
// contiguous run of Width values and growing the row capacity keeps
// existing rows in place.
//
// Memory grows on demand. AppendRow adds a column the first time it sees a
// field name; cells that were never written hold the table's missing value.
type Memory[T any] struct {
	data    *tensor.Tensor[T] // nil until both width and capacity are > 0
	length  int
	fields  []Field
	index   map[string]int
	missing T
}

// NewMemory creates a table of length rows with the given fields, every
// cell set to missing.
func NewMemory[T any](length int, fields []Field, missing T) (*Memory[T], error) {
	if length < 0 {
		return nil, fmt.Errorf("table: negative length %d", length)
	}
	index, err := fieldIndex(fields)
	if err != nil {
		return nil, err
	}
	m := &Memory[T]{
		fields:  slices.Clone(fields),
		index:   index,
		missing: missing,
	}
	if err := m.relayout(len(fields), length); err != nil {
		return nil, err
	}
	m.length = length
	return m, nil
}

// Length returns the number of rows.
func (m *Memory[T]) Length() int {
	return m.length
}

// Width returns the number of columns.
func (m *Memory[T]) Width() int {
	return len(m.fields)
}

// Fields returns a copy of the column descriptions.
func (m *Memory[T]) Fields() []Field {
	return slices.Clone(m.fields)
}

// Missing returns the value of cells that were never written.
func (m *Memory[T]) Missing() T {
	return m.missing
}

// Row returns a copy of row i.
func (m *Memory[T]) Row(i int) ([]T, error) {
	row := make([]T, len(m.fields))
	if err := m.RowInto(i, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RowInto copies row i into dst.
func (m *Memory[T]) RowInto(i int, dst []T) error {
	if err := checkRow(i, m.length); err != nil {
		return err
	}
	if err := checkDst(len(dst), len(m.fields)); err != nil {
		return err
	}
	for j := range dst {
		dst[j] = m.data.At(j, i)
	}
	return nil
}

// Get returns the value at row i, column j.
func (m *Memory[T]) Get(i, j int) (T, error) {
	if err := m.check(i, j); err != nil {
		var zero T
		return zero, err
	}
	return m.data.At(j, i), nil
}

// Put stores v at row i, column j.
func (m *Memory[T]) Put(i, j int, v T) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	m.data.Set(v, j, i)
	return nil
}

func (m *Memory[T]) check(i, j int) error {
	if err := checkRow(i, m.length); err != nil {
		return err
	}
	return checkCol(j, len(m.fields))
}

// Tensor returns a (width, length) view of the table's cells. Writes
// through the view change the table. The view is stale once the table
// grows.
func (m *Memory[T]) Tensor() (*tensor.Tensor[T], error) {
	if m.data == nil || m.length == 0 {
		return nil, fmt.Errorf("%w: %d rows x %d columns", ErrEmptyTable, m.length, len(m.fields))
	}
	return m.data.SubTensor([]int{0, 0}, []int{len(m.fields), m.length})
}

// RowTensor returns row i as a one-dimensional view sharing the table's
// storage.
func (m *Memory[T]) RowTensor(i int) (*tensor.Tensor[T], error) {
	if err := checkRow(i, m.length); err != nil {
		return nil, err
	}
	if len(m.fields) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrEmptyTable)
	}
	return m.data.SubTensor([]int{0, i}, []int{len(m.fields), 0})
}

// DeclareFields registers column names ahead of AppendRow so that the
// backing storage is relaid out once rather than once per new name. Names
// that already exist are ignored.
//
// Every new column costs a copy of the whole table: call it before adding
// rows.
func (m *Memory[T]) DeclareFields(names ...string) error {
	var added []Field
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: empty field name", ErrUnknownField)
		}
		if _, ok := m.index[name]; ok || seen[name] {
			continue
		}
		seen[name] = true
		added = append(added, Field{Name: name})
	}
	if len(added) == 0 {
		return nil
	}
	if err := m.relayout(len(m.fields)+len(added), max(m.capacity(), m.length)); err != nil {
		return err
	}
	for _, f := range added {
		m.index[f.Name] = len(m.fields)
		m.fields = append(m.fields, f)
	}
	return nil
}

// AppendRow adds a row from (field name, value) pairs. Fields missing from
// pairs hold the missing value; unknown names add a column, in which the
// earlier rows hold the missing value.
func (m *Memory[T]) AppendRow(pairs ...Pair[T]) error {
	names := make([]string, len(pairs))
	for k, p := range pairs {
		names[k] = p.Name
	}
	if err := m.DeclareFields(names...); err != nil {
		return err
	}
	if err := m.grow(m.length + 1); err != nil {
		return err
	}
	i := m.length
	m.length++
	for _, p := range pairs {
		m.data.Set(p.Value, m.index[p.Name], i)
	}
	return nil
}

// AppendValues adds a row given in column order.
func (m *Memory[T]) AppendValues(row []T) error {
	if err := checkDst(len(row), len(m.fields)); err != nil {
		return err
	}
	if err := m.grow(m.length + 1); err != nil {
		return err
	}
	i := m.length
	m.length++
	for j, v := range row {
		m.data.Set(v, j, i)
	}
	return nil
}

// setFieldType changes the type of column j.
func (m *Memory[T]) setFieldType(j int, ft FieldType) error {
	if err := checkCol(j, len(m.fields)); err != nil {
		return err
	}
	m.fields[j].Type = ft
	return nil
}

func (m *Memory[T]) capacity() int {
	if m.data == nil {
		return 0
	}
	return m.data.Shape()[1]
}

// grow makes room for n rows, doubling the capacity.
func (m *Memory[T]) grow(n int) error {
	c := m.capacity()
	if n <= c {
		return nil
	}
	c = max(n, 2*c, 4)
	if m.data == nil || !m.data.IsRoot() {
		return m.relayout(len(m.fields), c)
	}

	old := m.data.Shape()[1]
	if err := m.data.ResizeCopy(tensor.Shape{len(m.fields), c}); err != nil {
		return err
	}
	tail, err := m.data.SubTensor([]int{0, old}, []int{len(m.fields), c - old})
	if err != nil {
		return err
	}
	tail.Fill(m.missing)
	tail.Release()
	return nil
}

// relayout moves the cells to a new (width, capacity) tensor. Cells inside
// both the old and new extents are copied, the others hold missing.
func (m *Memory[T]) relayout(width, capacity int) error {
	if width == 0 || capacity == 0 {
		if m.data != nil {
			m.data.Release()
		}
		m.data = nil
		return nil
	}
	next, err := tensor.Full(tensor.Shape{width, capacity}, m.missing)
	if err != nil {
		return err
	}
	if m.data != nil {
		shape := m.data.Shape()
		keep := []int{min(shape[0], width), min(shape[1], capacity)}
		src, err := m.data.SubTensor([]int{0, 0}, keep)
		if err != nil {
			return err
		}
		dst, err := next.SubTensor([]int{0, 0}, keep)
		if err != nil {
			return err
		}
		err = dst.CopyFrom(src)
		src.Release()
		dst.Release()
		if err != nil {
			return err
		}
		m.data.Release()
	}
	m.data = next
	return nil
}

// Matrix is an in-memory table of reals whose missing value is NaN.
type Matrix = Memory[float64]

// NewMatrix creates a length x width matrix of missing values with unnamed
// columns.
func NewMatrix(length, width int) (*Matrix, error) {
	if width < 0 {
		return nil, fmt.Errorf("table: negative width %d", width)
	}
	return NewMemory(length, unnamed(width), Missing)
}

// MatrixFromTensor makes a matrix of the (width, length) tensor t. The
// matrix shares t's storage until it grows; AppendRow or AppendValues
// move it to storage of its own.
func MatrixFromTensor(t *tensor.Tensor[float64]) (*Matrix, error) {
	if t.NDims() != 2 {
		return nil, fmt.Errorf("%w: need a 2-dimensional tensor, got shape %v", ErrWidthMismatch, t.Shape())
	}
	shape := t.Shape()
	view, err := t.SubTensor([]int{0, 0}, shape)
	if err != nil {
		return nil, err
	}
	return &Matrix{
		data:    view,
		length:  shape[1],
		fields:  unnamed(shape[0]),
		index:   map[string]int{},
		missing: Missing,
	}, nil
}
