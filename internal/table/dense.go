package table

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToDense copies a numeric table into a gonum matrix, one table row per
// matrix row.
func ToDense(t Table[float64]) (*mat.Dense, error) {
	r, c := t.Length(), t.Width()
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("%w: %d rows x %d columns", ErrEmptyTable, r, c)
	}
	d := mat.NewDense(r, c, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		if err := t.RowInto(i, row); err != nil {
			return nil, err
		}
		d.SetRow(i, row)
	}
	return d, nil
}

// FromDense copies a gonum matrix into a new Matrix.
func FromDense(m mat.Matrix) (*Matrix, error) {
	r, c := m.Dims()
	out, err := NewMatrix(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err := out.Put(i, j, m.At(i, j)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
