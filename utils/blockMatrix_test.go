package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockMatrix(t *testing.T) {
	// Flatten with an absent block
	{
		bm := NewBlockMatrix([]int{2, 1}, []int{2, 1})
		bm.Set(0, 0, NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		}))
		bm.Set(1, 1, NewMatrix(1, 1, []float64{5}))
		R := bm.Flatten()
		nr, nc := R.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 3, nc)
		assert.Equal(t, []float64{
			1, 2, 0,
			3, 4, 0,
			0, 0, 5,
		}, R.DataP)
	}
	// zero block dimensions flatten to an empty matrix
	{
		bm := NewBlockMatrix([]int{0, 0}, []int{0, 0})
		R := bm.Flatten()
		nr, nc := R.Dims()
		assert.Equal(t, 0, nr)
		assert.Equal(t, 0, nc)
	}
	// mismatched cell dims panic
	{
		bm := NewBlockMatrix([]int{2}, []int{2})
		assert.Panics(t, func() { bm.Set(0, 0, NewMatrix(1, 2)) })
	}
}

func TestDOK(t *testing.T) {
	dok := NewDOK(2, 2)
	dok.Accum(0, 0, 1).Accum(0, 0, 1).Set(1, 0, -1)
	M := dok.ToMatrix()
	assert.Equal(t, []float64{
		2, 0,
		-1, 0,
	}, M.DataP)
	// CSR conversion sees the same entries
	csr := dok.ToCSR()
	assert.Equal(t, 2., csr.At(0, 0))
	assert.Equal(t, -1., csr.At(1, 0))
}
