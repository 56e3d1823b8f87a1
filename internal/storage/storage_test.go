package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New[float64](6)
	assert.Equal(t, 6, s.Size())
	assert.Equal(t, 1, s.Refs())
	assert.True(t, s.IsUnique())
	for _, v := range s.Data() {
		assert.Zero(t, v)
	}
}

func TestResizeKeepsPrefix(t *testing.T) {
	s := New[int](4)
	copy(s.Data(), []int{1, 2, 3, 4})

	s.Resize(6)
	assert.Equal(t, []int{1, 2, 3, 4, 0, 0}, s.Data())

	s.Resize(2)
	assert.Equal(t, []int{1, 2}, s.Data())
}

func TestResizeInvalidatesOldSlice(t *testing.T) {
	s := New[int](2)
	old := s.Data()
	s.Resize(3)
	old[0] = 7
	assert.Equal(t, 0, s.Data()[0], "writes to a stale slice must not reach the new buffer")
}

func TestRealloc(t *testing.T) {
	s := New[string](3)
	s.Data()[0] = "a"
	s.Realloc(5)
	assert.Equal(t, 5, s.Size())
}

func TestUnallocatedPanics(t *testing.T) {
	var s Storage[float32]
	require.PanicsWithValue(t, ErrUnallocated, func() { s.Data() })

	var nilStorage *Storage[float32]
	require.Panics(t, func() { nilStorage.Data() })
}

func TestRefCounting(t *testing.T) {
	s := New[float64](2)
	s.Retain()
	assert.Equal(t, 2, s.Refs())
	assert.False(t, s.IsUnique())

	s.Release()
	assert.True(t, s.IsUnique())
	assert.NotPanics(t, func() { s.Data() })

	s.Release()
	assert.Equal(t, 0, s.Refs())
	assert.Panics(t, func() { s.Data() })
}

func TestWrapShares(t *testing.T) {
	data := []int{1, 2, 3}
	s := Wrap(data)
	s.Data()[1] = 9
	assert.Equal(t, 9, data[1])
}
