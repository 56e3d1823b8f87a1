// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides strided N-dimensional views over shared storage.
//
// # Overview
//
// A Tensor is a window (offset, strides, extents) onto a reference-counted
// Storage. Sub-tensors, dimension selections and iterators share the
// storage of the tensor they come from, so a write through any view is
// visible through all the others.
//
// Dimension 0 varies fastest in memory: a freshly allocated tensor of
// shape (w0, w1, w2) has strides (1, w0, w0*w1).
//
// # Basic Usage
//
//	import "github.com/born-ml/strider/tensor"
//
//	func main() {
//	    t, _ := tensor.New[float64](tensor.Shape{2, 3, 4})
//
//	    // 2x3 slice at index 1 of dimension 2 (length 0 elides it)
//	    s, _ := t.SubTensor([]int{0, 0, 1}, []int{2, 3, 0})
//	    s.Fill(1)
//
//	    for pos, v := range t.All() {
//	        fmt.Println(pos, v)
//	    }
//	}
//
// # Iteration
//
// Begin/Next/IsPastEnd walk the elements of a view through a precomputed
// jump table, SubTensors walks every window obtained by fixing a chosen
// set of dimensions.
//
// # Ownership
//
// Only root tensors (those created by New, Full or FromSlice) may be
// resized. Views call Release when they are no longer needed; the storage
// is dropped when the last holder releases it.
package tensor
