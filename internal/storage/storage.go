// Package storage provides the flat, reference-counted buffer that every
// tensor and table view in strider is built on.
package storage

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrUnallocated is raised when the elements of a storage that was never
// allocated are requested.
var ErrUnallocated = errors.New("storage: buffer was never allocated")

// Storage is a flat, resizable buffer of elements of type T shared by
// several views. Views hold a pointer to the same Storage and describe
// their window with an offset and strides, so no element is ever copied
// when a view is created.
//
// Resize and Realloc replace the underlying slice: every slice previously
// returned by Data is stale afterwards and dependents must call Data again.
type Storage[T any] struct {
	data      []T
	allocated bool
	refCount  atomic.Int32
}

// New allocates a storage holding n zero elements with a reference count of 1.
func New[T any](n int) *Storage[T] {
	if n < 0 {
		panic(fmt.Sprintf("storage: negative size %d", n))
	}
	s := &Storage[T]{
		data:      make([]T, n),
		allocated: true,
	}
	s.refCount.Store(1)
	return s
}

// Wrap makes a storage around data without copying it.
func Wrap[T any](data []T) *Storage[T] {
	s := &Storage[T]{
		data:      data,
		allocated: true,
	}
	s.refCount.Store(1)
	return s
}

// Size returns the element capacity of the buffer.
func (s *Storage[T]) Size() int {
	return len(s.data)
}

// Data returns the base slice of the buffer.
// Panics with ErrUnallocated if the storage was never allocated.
func (s *Storage[T]) Data() []T {
	if s == nil || !s.allocated {
		panic(ErrUnallocated)
	}
	return s.data
}

// Resize changes the capacity to n elements, keeping the first min(old, n)
// elements.
func (s *Storage[T]) Resize(n int) {
	if n < 0 {
		panic(fmt.Sprintf("storage: negative size %d", n))
	}
	if s.allocated && n == len(s.data) {
		return
	}
	data := make([]T, n)
	copy(data, s.data)
	s.data = data
	s.allocated = true
}

// Realloc changes the capacity to n elements without preserving content.
// Callers must treat the new elements as undefined.
func (s *Storage[T]) Realloc(n int) {
	if n < 0 {
		panic(fmt.Sprintf("storage: negative size %d", n))
	}
	s.data = make([]T, n)
	s.allocated = true
}

// Retain registers one more holder of the buffer.
func (s *Storage[T]) Retain() {
	s.refCount.Add(1)
}

// Release drops one holder. The buffer is freed when the last holder
// releases it; later calls to Data panic.
func (s *Storage[T]) Release() {
	if s.refCount.Add(-1) == 0 {
		s.data = nil
		s.allocated = false
	}
}

// Refs returns the current number of holders.
func (s *Storage[T]) Refs() int {
	return int(s.refCount.Load())
}

// IsUnique reports whether a single holder references the buffer.
func (s *Storage[T]) IsUnique() bool {
	return s.refCount.Load() == 1
}
