// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package table_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/born-ml/strider/table"
	"github.com/born-ml/strider/tensor"
)

// TestEndToEnd reads a small table and checks its rows.
func TestEndToEnd(t *testing.T) {
	st, err := table.ReadStringTable(strings.NewReader("#: x;y\n1;2\n3;4\n"), table.DefaultTextOptions())
	if err != nil {
		t.Fatalf("ReadStringTable failed: %v", err)
	}
	if st.Length() != 2 || st.Width() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", st.Length(), st.Width())
	}

	want := [][]string{{"1", "2"}, {"3", "4"}}
	for i, w := range want {
		row, err := st.Row(i)
		if err != nil {
			t.Fatalf("Row(%d) failed: %v", i, err)
		}
		if strings.Join(row, ";") != strings.Join(w, ";") {
			t.Errorf("Row(%d) = %v, want %v", i, row, w)
		}
	}

	if _, err := st.Row(2); !errors.Is(err, table.ErrOutOfRange) {
		t.Errorf("Row(2) error = %v, want ErrOutOfRange", err)
	}
}

// TestMatrixOverTensor verifies a matrix made from a tensor shares it.
func TestMatrixOverTensor(t *testing.T) {
	x, err := tensor.New[float64](tensor.Shape{2, 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m, err := table.MatrixFromTensor(x)
	if err != nil {
		t.Fatalf("MatrixFromTensor failed: %v", err)
	}
	if err := m.Put(1, 0, 3); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if got := x.At(0, 1); got != 3 {
		t.Errorf("x.At(0, 1) = %v, want 3", got)
	}

	sorted, err := table.SortRows[float64](m, 0)
	if err != nil {
		t.Fatalf("SortRows failed: %v", err)
	}
	if src, _ := sorted.Source(0); src != 0 {
		t.Errorf("Source(0) = %d, want 0", src)
	}
}
