package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDenseRoundTrip(t *testing.T) {
	d := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	m, err := FromDense(d)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Length())
	assert.Equal(t, 3, m.Width())

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)

	back, err := ToDense(m)
	require.NoError(t, err)
	assert.True(t, mat.Equal(d, back))
}

func TestToDenseThroughViews(t *testing.T) {
	st := readString(t, "#: a;b\n1;x\n2;y\n", DefaultTextOptions())
	e, err := Encode(st)
	require.NoError(t, err)

	d, err := ToDense(Transpose[float64](e))
	require.NoError(t, err)
	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{1, 2}, mat.Row(nil, 0, d))
	assert.Equal(t, []float64{-1, -2}, mat.Row(nil, 1, d))
}

func TestToDenseEmpty(t *testing.T) {
	m, err := NewMatrix(0, 3)
	require.NoError(t, err)
	_, err = ToDense(m)
	assert.ErrorIs(t, err, ErrEmptyTable)
}
