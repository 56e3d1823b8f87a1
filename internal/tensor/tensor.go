// Package tensor implements strided N-dimensional views over shared storage.
package tensor

import (
	"fmt"
	"iter"
	"slices"

	"github.com/born-ml/strider/internal/storage"
)

// Tensor is a strided view over a Storage.
//
// The element at position pos lives at offset + Σ pos[i]*stride[i] in the
// storage. Sub-tensors, dimension selections and iterators share the
// storage of the tensor they come from: writing through any of them is
// visible through all the others.
//
// Example:
//
//	t, _ := tensor.New[float64](tensor.Shape{2, 3, 4})
//	s, _ := t.SubTensor([]int{0, 1, 0}, []int{2, 2, 0}) // 2x2 window at dim2 == 0
//	s.Set(5, 1, 1)
//	t.At(1, 2, 0) // 5
type Tensor[T any] struct {
	storage *storage.Storage[T]
	offset  int
	stride  []int
	width   Shape
	root    bool // Owns the layout of storage; only root tensors may Resize
}

// New allocates a tensor of the given shape filled with zero values.
func New[T any](shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Tensor[T]{
		storage: storage.New[T](shape.NumElements()),
		stride:  shape.ComputeStrides(),
		width:   shape.Clone(),
		root:    true,
	}, nil
}

// Full allocates a tensor of the given shape with every element set to value.
func Full[T any](shape Shape, value T) (*Tensor[T], error) {
	t, err := New[T](shape)
	if err != nil {
		return nil, err
	}
	data := t.storage.Data()
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// FromSlice wraps data as a root tensor of the given shape.
// The slice is shared, not copied.
func FromSlice[T any](data []T, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrBadShape, shape, shape.NumElements(), len(data))
	}
	return &Tensor[T]{
		storage: storage.Wrap(data),
		stride:  shape.ComputeStrides(),
		width:   shape.Clone(),
		root:    true,
	}, nil
}

// Shape returns the tensor's per-dimension extents.
func (t *Tensor[T]) Shape() Shape {
	return t.width
}

// Strides returns the tensor's per-dimension memory steps.
func (t *Tensor[T]) Strides() []int {
	return t.stride
}

// Offset returns the storage index of the element at position (0, ..., 0).
func (t *Tensor[T]) Offset() int {
	return t.offset
}

// NDims returns the number of dimensions.
func (t *Tensor[T]) NDims() int {
	return len(t.width)
}

// NumElements returns the number of elements reachable through the view.
func (t *Tensor[T]) NumElements() int {
	return t.width.NumElements()
}

// IsRoot reports whether the tensor owns its storage layout, as opposed to
// being a window derived from another tensor.
func (t *Tensor[T]) IsRoot() bool {
	return t.root
}

// IsContiguous reports whether the view has the layout of a freshly
// allocated tensor of the same shape.
func (t *Tensor[T]) IsContiguous() bool {
	return slices.Equal(t.stride, t.width.ComputeStrides())
}

// Storage returns the shared storage.
func (t *Tensor[T]) Storage() *storage.Storage[T] {
	return t.storage
}

// Data returns the storage slice starting at the view's offset.
// Elements of the view are not contiguous in general: use Strides to walk
// it or prefer At, Set and the iterators.
// Panics if the storage is unset.
func (t *Tensor[T]) Data() []T {
	if t.storage == nil {
		panic(storage.ErrUnallocated)
	}
	return t.storage.Data()[t.offset:]
}

// Release drops this view's hold on the shared storage.
func (t *Tensor[T]) Release() {
	if t.storage != nil {
		t.storage.Release()
	}
}

// Resize gives a root tensor a new shape and reallocates its storage.
// Content is not preserved and the offset is reset to 0. Views derived
// from the tensor before the call keep pointing at the new buffer with
// their old layout and must not be used afterwards.
func (t *Tensor[T]) Resize(shape Shape) error {
	if !t.root {
		return ErrNotRoot
	}
	if err := shape.Validate(); err != nil {
		return err
	}
	t.width = shape.Clone()
	t.stride = shape.ComputeStrides()
	t.offset = 0
	t.storage.Realloc(shape.NumElements())
	return nil
}

// ResizeCopy is Resize keeping the storage content: the first
// min(old, new) elements keep their storage index. Growing only the last
// dimension of a contiguous tensor therefore leaves every existing element
// at its position. Root tensors only.
func (t *Tensor[T]) ResizeCopy(shape Shape) error {
	if !t.root {
		return ErrNotRoot
	}
	if err := shape.Validate(); err != nil {
		return err
	}
	t.width = shape.Clone()
	t.stride = shape.ComputeStrides()
	t.offset = 0
	t.storage.Resize(shape.NumElements())
	return nil
}

// linearIndex maps a full position to a storage index, checking bounds.
// It is the only place where positions are turned into storage indices
// outside the element iterator.
func (t *Tensor[T]) linearIndex(pos []int) int {
	if len(pos) != len(t.width) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.width), len(pos)))
	}
	idx := t.offset
	for i, p := range pos {
		if p < 0 || p >= t.width[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", p, i, t.width[i]))
		}
		idx += p * t.stride[i]
	}
	return idx
}

// At returns the element at the given position.
// Panics if the position is out of bounds.
func (t *Tensor[T]) At(pos ...int) T {
	return t.storage.Data()[t.linearIndex(pos)]
}

// Set stores value at the given position.
// Panics if the position is out of bounds.
func (t *Tensor[T]) Set(value T, pos ...int) {
	t.storage.Data()[t.linearIndex(pos)] = value
}

// SubTensor returns a window of the tensor starting at from and spanning
// length elements along each dimension. The window shares storage with t.
//
// A dimension with length 0 is elided: it is fixed at from[i] and does not
// appear in the result. When every length is 0 the result is a
// one-dimensional tensor of width 1 holding the single selected element.
func (t *Tensor[T]) SubTensor(from, length []int) (*Tensor[T], error) {
	if len(from) != len(t.width) || len(length) != len(t.width) {
		return nil, fmt.Errorf("%w: tensor has %d dimensions, got from=%v len=%v",
			ErrDimensionMismatch, len(t.width), from, length)
	}

	offset := t.offset
	var keep []int
	for i := range t.width {
		f, n, w := from[i], length[i], t.width[i]
		if f < 0 || n < 0 || f+n > w || (n == 0 && f >= w) {
			return nil, &BoundsError{Dim: i, From: f, Len: n, Width: w}
		}
		offset += f * t.stride[i]
		if n > 0 {
			keep = append(keep, i)
		}
	}

	sub := &Tensor[T]{
		storage: t.storage,
		offset:  offset,
	}
	if len(keep) == 0 {
		sub.width = Shape{1}
		sub.stride = []int{1}
	} else {
		sub.width = make(Shape, len(keep))
		sub.stride = make([]int, len(keep))
		for k, i := range keep {
			sub.width[k] = length[i]
			sub.stride[k] = t.stride[i]
		}
	}
	t.storage.Retain()
	return sub, nil
}

// Index fixes dimension 0 at i and returns the remaining dimensions as a
// view. Indexing a one-dimensional tensor yields a width-1 tensor.
func (t *Tensor[T]) Index(i int) (*Tensor[T], error) {
	from := make([]int, len(t.width))
	length := t.width.Clone()
	from[0] = i
	length[0] = 0
	return t.SubTensor(from, length)
}

// SelectDimensions returns a view restricted to the listed dimensions, in
// the given order. Dimensions that are left out are fixed at index 0.
// Passing a permutation of all dimensions reorders them.
func (t *Tensor[T]) SelectDimensions(dims ...int) (*Tensor[T], error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: no dimensions selected", ErrDimensionMismatch)
	}
	seen := make([]bool, len(t.width))
	sel := &Tensor[T]{
		storage: t.storage,
		offset:  t.offset,
		stride:  make([]int, len(dims)),
		width:   make(Shape, len(dims)),
	}
	for k, d := range dims {
		if d < 0 || d >= len(t.width) {
			return nil, fmt.Errorf("%w: dimension %d, tensor has %d", ErrOutOfRange, d, len(t.width))
		}
		if seen[d] {
			return nil, fmt.Errorf("%w: dimension %d selected twice", ErrDimensionMismatch, d)
		}
		seen[d] = true
		sel.stride[k] = t.stride[d]
		sel.width[k] = t.width[d]
	}
	t.storage.Retain()
	return sel, nil
}

// Fill sets every element reachable through the view to value.
func (t *Tensor[T]) Fill(value T) {
	for it := t.Begin(); !it.IsPastEnd(); it.Next() {
		it.Set(value)
	}
}

// CopyFrom copies the elements of src into t. Both must have the same shape.
func (t *Tensor[T]) CopyFrom(src *Tensor[T]) error {
	if !t.width.Equal(src.width) {
		return fmt.Errorf("%w: copy from %v into %v", ErrDimensionMismatch, src.width, t.width)
	}
	dst := t.Begin()
	for it := src.Begin(); !it.IsPastEnd(); it.Next() {
		dst.Set(it.Value())
		dst.Next()
	}
	return nil
}

// Clone returns a contiguous root tensor holding a copy of the view.
func (t *Tensor[T]) Clone() *Tensor[T] {
	c := &Tensor[T]{
		storage: storage.New[T](t.NumElements()),
		stride:  t.width.ComputeStrides(),
		width:   t.width.Clone(),
		root:    true,
	}
	data := c.storage.Data()
	i := 0
	for it := t.Begin(); !it.IsPastEnd(); it.Next() {
		data[i] = it.Value()
		i++
	}
	return c
}

// Begin returns an element iterator positioned on (0, ..., 0).
func (t *Tensor[T]) Begin() *Iterator[T] {
	return newIterator(t, false)
}

// End returns an element iterator positioned on the last element, not one
// past it. Loops must stop on IsPastEnd rather than compare with End.
func (t *Tensor[T]) End() *Iterator[T] {
	return newIterator(t, true)
}

// All yields every position of the view with its value, dimension 0
// varying fastest. The position slice is reused between iterations.
func (t *Tensor[T]) All() iter.Seq2[[]int, T] {
	return func(yield func([]int, T) bool) {
		for it := t.Begin(); !it.IsPastEnd(); it.Next() {
			if !yield(it.pos, it.Value()) {
				return
			}
		}
	}
}

// SubTensors returns an iterator over the windows obtained by sweeping the
// dimensions whose selector entry is non-zero while the others span their
// whole range.
func (t *Tensor[T]) SubTensors(selector []int) (*SubTensorIterator[T], error) {
	if len(selector) != len(t.width) {
		return nil, fmt.Errorf("%w: tensor has %d dimensions, selector has %d",
			ErrDimensionMismatch, len(t.width), len(selector))
	}
	return newSubTensorIterator(t, selector), nil
}

// String returns a short description of the view.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%T]%v stride=%v offset=%d", *new(T), t.width, t.stride, t.offset)
}
