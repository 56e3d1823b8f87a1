package tensor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorCompleteness(t *testing.T) {
	shapes := []Shape{
		{1},
		{7},
		{3, 1},
		{2, 3, 4},
		{1, 5, 1, 2},
	}

	for _, shape := range shapes {
		t.Run(fmt.Sprint(shape), func(t *testing.T) {
			x, err := New[int](shape)
			require.NoError(t, err)

			seen := make(map[string]bool)
			count := 0
			for it := x.Begin(); !it.IsPastEnd(); it.Next() {
				key := fmt.Sprint(it.Position())
				assert.False(t, seen[key], "position %s visited twice", key)
				seen[key] = true
				count++
			}
			assert.Equal(t, shape.NumElements(), count)

			// Every position of the cartesian product was visited.
			for i := 0; i < shape.NumElements(); i++ {
				pos := make([]int, len(shape))
				r := i
				for d := range shape {
					pos[d] = r % shape[d]
					r /= shape[d]
				}
				assert.True(t, seen[fmt.Sprint(pos)], "position %v not visited", pos)
			}
		})
	}
}

func TestIteratorOrderOnRoot(t *testing.T) {
	x := iota3(t)
	want := 0
	for it := x.Begin(); !it.IsPastEnd(); it.Next() {
		assert.Equal(t, want, it.Value())
		want++
	}
	assert.Equal(t, 24, want)
}

func TestIteratorOnStridedView(t *testing.T) {
	x := iota3(t)
	perm, err := x.SelectDimensions(2, 1, 0)
	require.NoError(t, err)
	sub, err := perm.SubTensor([]int{1, 0, 1}, []int{3, 3, 0})
	require.NoError(t, err)

	for it := sub.Begin(); !it.IsPastEnd(); it.Next() {
		p := it.Position()
		assert.Equal(t, x.At(1, p[1], p[0]+1), it.Value(), "position %v", p)
	}
}

func TestIteratorEndIsLastElement(t *testing.T) {
	x := iota3(t)
	end := x.End()
	require.False(t, end.IsPastEnd())
	assert.Equal(t, []int{1, 2, 3}, end.Position())
	assert.Equal(t, 23, end.Value())

	end.Next()
	assert.True(t, end.IsPastEnd())
	assert.Panics(t, func() { end.Value() })
	assert.Panics(t, func() { end.Set(0) })

	end.Next()
	assert.True(t, end.IsPastEnd())
}

func TestIteratorSetWritesThrough(t *testing.T) {
	x, err := New[int](Shape{3, 3})
	require.NoError(t, err)
	col, err := x.SubTensor([]int{0, 1}, []int{3, 0})
	require.NoError(t, err)

	for it := col.Begin(); !it.IsPastEnd(); it.Next() {
		it.Set(it.Position()[0] + 10)
	}
	assert.Equal(t, 10, x.At(0, 1))
	assert.Equal(t, 12, x.At(2, 1))
	assert.Equal(t, 0, x.At(2, 2))
}

func TestAllStopsEarly(t *testing.T) {
	x := iota3(t)
	n := 0
	for range x.All() {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestSubTensorIterator(t *testing.T) {
	x := iota3(t)

	it, err := x.SubTensors([]int{0, 0, 1})
	require.NoError(t, err)

	k := 0
	for ; !it.IsPastEnd(); it.Next() {
		assert.Equal(t, []int{-1, -1, k}, it.Position())
		slice := it.Value()
		assert.Equal(t, Shape{2, 3}, slice.Shape())
		assert.Equal(t, x.At(1, 2, k), slice.At(1, 2))
		k++
	}
	assert.Equal(t, 4, k)
	assert.Panics(t, func() { it.Value() })
}

func TestSubTensorIteratorSeveralFixed(t *testing.T) {
	x := iota3(t)

	it, err := x.SubTensors([]int{1, 0, 1})
	require.NoError(t, err)

	var got [][]int
	for ; !it.IsPastEnd(); it.Next() {
		got = append(got, it.Position())
		row := it.Value()
		p := it.Position()
		assert.Equal(t, Shape{3}, row.Shape())
		assert.Equal(t, x.At(p[0], 1, p[2]), row.At(1))
	}

	// Lowest fixed dimension varies fastest.
	require.Len(t, got, 8)
	assert.Equal(t, []int{0, -1, 0}, got[0])
	assert.Equal(t, []int{1, -1, 0}, got[1])
	assert.Equal(t, []int{0, -1, 1}, got[2])
	assert.Equal(t, []int{1, -1, 3}, got[7])
}

func TestSubTensorIteratorEdgeSelectors(t *testing.T) {
	x := iota3(t)

	whole, err := x.SubTensors([]int{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3, 4}, whole.Value().Shape())
	whole.Next()
	assert.True(t, whole.IsPastEnd())

	scalars, err := x.SubTensors([]int{1, 1, 1})
	require.NoError(t, err)
	n := 0
	for ; !scalars.IsPastEnd(); scalars.Next() {
		assert.Equal(t, n, scalars.Value().At(0))
		n++
	}
	assert.Equal(t, 24, n)

	_, err = x.SubTensors([]int{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSubTensorIteratorWindowsAlias(t *testing.T) {
	x, err := New[float64](Shape{2, 2, 3})
	require.NoError(t, err)

	it, err := x.SubTensors([]int{0, 0, 1})
	require.NoError(t, err)
	for ; !it.IsPastEnd(); it.Next() {
		it.Value().Fill(float64(it.Position()[2]))
	}
	assert.Equal(t, 2.0, x.At(1, 1, 2))
	assert.Equal(t, 1.0, x.At(0, 1, 1))
}
