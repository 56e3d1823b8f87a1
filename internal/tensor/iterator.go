package tensor

// Iterator visits every element of a tensor exactly once, dimension 0
// varying fastest.
//
// Strides of a view can be irregular, so the end of the traversal is a
// state of the iterator (IsPastEnd) and never a sentinel index.
//
//	for it := t.Begin(); !it.IsPastEnd(); it.Next() {
//	    sum += it.Value()
//	}
type Iterator[T any] struct {
	t    *Tensor[T]
	pos  []int
	cur  int   // Storage index of the current element
	jump []int // jump[k]: cursor step when dimension k advances and all lower dimensions wrap to 0
	done bool
}

func newIterator[T any](t *Tensor[T], last bool) *Iterator[T] {
	n := len(t.width)
	it := &Iterator[T]{
		t:    t,
		pos:  make([]int, n),
		jump: make([]int, n),
	}

	back := 0 // Σ_{j<k} (width[j]-1) * stride[j]
	for k := 0; k < n; k++ {
		it.jump[k] = t.stride[k] - back
		back += (t.width[k] - 1) * t.stride[k]
	}

	if last {
		for k := range it.pos {
			it.pos[k] = t.width[k] - 1
		}
	}
	it.cur = t.linearIndex(it.pos)
	return it
}

// Next moves to the following element, or to the past-end state after the
// last one.
func (it *Iterator[T]) Next() {
	if it.done {
		return
	}
	w := it.t.width

	if it.pos[0]+1 < w[0] {
		it.pos[0]++
		it.cur += it.t.stride[0]
		return
	}

	k := 1
	for k < len(w) && it.pos[k] == w[k]-1 {
		k++
	}
	if k == len(w) {
		it.done = true
		return
	}
	for j := 0; j < k; j++ {
		it.pos[j] = 0
	}
	it.pos[k]++
	it.cur += it.jump[k]
}

// IsPastEnd reports whether the iterator has moved past the last element.
func (it *Iterator[T]) IsPastEnd() bool {
	return it.done
}

// Value returns the current element.
// Panics when the iterator is past the end.
func (it *Iterator[T]) Value() T {
	if it.done {
		panic("tensor: iterator is past the end")
	}
	return it.t.storage.Data()[it.cur]
}

// Set overwrites the current element in the shared storage.
// Panics when the iterator is past the end.
func (it *Iterator[T]) Set(value T) {
	if it.done {
		panic("tensor: iterator is past the end")
	}
	it.t.storage.Data()[it.cur] = value
}

// Position returns a copy of the current multi-index.
func (it *Iterator[T]) Position() []int {
	return append([]int(nil), it.pos...)
}
