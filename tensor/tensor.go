// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/strider/internal/storage"
	"github.com/born-ml/strider/internal/tensor"
)

// Type aliases for public API

// Shape represents the extents of a tensor, dimension 0 first.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a strided view over shared storage.
type Tensor[T any] = tensor.Tensor[T]

// Iterator walks the elements of a tensor, dimension 0 fastest.
type Iterator[T any] = tensor.Iterator[T]

// SubTensorIterator walks a family of windows of a tensor.
type SubTensorIterator[T any] = tensor.SubTensorIterator[T]

// Storage is the flat reference-counted buffer shared by views.
type Storage[T any] = storage.Storage[T]

// BoundsError reports a sub-tensor window that does not fit its parent.
type BoundsError = tensor.BoundsError

// Errors returned by tensor operations.
var (
	ErrBadShape          = tensor.ErrBadShape
	ErrOutOfRange        = tensor.ErrOutOfRange
	ErrDimensionMismatch = tensor.ErrDimensionMismatch
	ErrNotRoot           = tensor.ErrNotRoot
	ErrUnallocated       = storage.ErrUnallocated
)

// New allocates a tensor of the given shape filled with zero values.
func New[T any](shape Shape) (*Tensor[T], error) {
	return tensor.New[T](shape)
}

// Full allocates a tensor of the given shape with every element set to value.
func Full[T any](shape Shape, value T) (*Tensor[T], error) {
	return tensor.Full(shape, value)
}

// FromSlice wraps data as a tensor of the given shape without copying.
func FromSlice[T any](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}
