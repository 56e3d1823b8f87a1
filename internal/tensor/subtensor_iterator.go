package tensor

// free marks a dimension that spans its whole range in every window.
const free = -1

// SubTensorIterator walks the family of windows of a tensor obtained by
// fixing some dimensions index by index while the remaining ones keep
// their full range. Walking all 2D slices of a (h, w, c) tensor:
//
//	it, _ := t.SubTensors([]int{0, 0, 1})
//	for ; !it.IsPastEnd(); it.Next() {
//	    slice := it.Value() // shape (h, w)
//	}
type SubTensorIterator[T any] struct {
	t    *Tensor[T]
	pos  []int // free for spanning dimensions, current index otherwise
	done bool
}

func newSubTensorIterator[T any](t *Tensor[T], selector []int) *SubTensorIterator[T] {
	it := &SubTensorIterator[T]{
		t:   t,
		pos: make([]int, len(selector)),
	}
	for i, s := range selector {
		if s == 0 {
			it.pos[i] = free
		}
	}
	return it
}

// Next advances the lowest fixed dimension that is not at its last index
// and rewinds the fixed dimensions below it. Without such a dimension the
// iterator moves past the end.
func (it *SubTensorIterator[T]) Next() {
	if it.done {
		return
	}
	for k, p := range it.pos {
		if p == free || p == it.t.width[k]-1 {
			continue
		}
		for j := 0; j < k; j++ {
			if it.pos[j] != free {
				it.pos[j] = 0
			}
		}
		it.pos[k]++
		return
	}
	it.done = true
}

// IsPastEnd reports whether every window has been visited.
func (it *SubTensorIterator[T]) IsPastEnd() bool {
	return it.done
}

// Value returns the current window. It shares storage with the tensor.
// Panics when the iterator is past the end.
func (it *SubTensorIterator[T]) Value() *Tensor[T] {
	if it.done {
		panic("tensor: sub-tensor iterator is past the end")
	}
	from := make([]int, len(it.pos))
	length := make([]int, len(it.pos))
	for i, p := range it.pos {
		if p == free {
			length[i] = it.t.width[i]
		} else {
			from[i] = p
		}
	}
	sub, err := it.t.SubTensor(from, length)
	if err != nil {
		// Positions never leave [0, width) so this is a broken invariant.
		panic(err)
	}
	return sub
}

// Position returns a copy of the current position; spanning dimensions
// are reported as -1.
func (it *SubTensorIterator[T]) Position() []int {
	return append([]int(nil), it.pos...)
}
