package utils

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK wraps a sparse dictionary-of-keys matrix, used while assembling
// discrete operators before conversion to dense or CSR form.
type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{sparse.NewDOK(nr, nc)}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) DOK {
	m.M.Set(i, j, val)
	return m
}

func (m DOK) Accum(i, j int, val float64) DOK {
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

func (m DOK) ToCSR() *sparse.CSR {
	return m.M.ToCSR()
}

// ToMatrix converts to the dense Matrix type used by the block operator
// machinery. Only the stored non-zeros are visited.
func (m DOK) ToMatrix() (R Matrix) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	m.M.DoNonZero(func(i, j int, val float64) {
		R.DataP[i*nc+j] = val
	})
	return
}
