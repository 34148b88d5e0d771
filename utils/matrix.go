package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Matrix wraps a *mat.Dense with chainable methods and raw data access. A
// Matrix may carry zero rows or columns (M is then nil, only the dims are
// stored), which is what a block projected onto an empty basis produces.
type Matrix struct {
	M      *mat.Dense
	DataP  []float64
	nr, nc int
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	if nr == 0 || nc == 0 {
		return Matrix{nr: nr, nc: nc}
	}
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:     m,
		DataP: m.RawMatrix().Data,
		nr:    nr,
		nc:    nc,
	}
	return
}

func NewEye(n int) (R Matrix) {
	R = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		R.Set(i, i, 1)
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int) { return m.nr, m.nc }
func (m Matrix) At(i, j int) float64 {
	return m.M.At(i, j)
}
func (m Matrix) T() mat.Matrix { return m.Transpose() }
func (m Matrix) RawMatrix() blas64.General {
	return m.M.RawMatrix()
}

func (m Matrix) IsEmpty() bool { return m.M == nil && m.nr == 0 && m.nc == 0 }

func (m Matrix) Set(i, j int, val float64) Matrix {
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	R = NewMatrix(m.nr, m.nc)
	copy(R.DataP, m.DataP)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			R.DataP[j*nr+i] = m.DataP[i*nc+j]
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, ncM = m.Dims()
		nrA, ncA = A.Dims()
	)
	if ncM != nrA {
		panic(fmt.Errorf("dimension mismatch in Mul: [%d,%d] x [%d,%d]", nrM, ncM, nrA, ncA))
	}
	R = NewMatrix(nrM, ncA)
	if nrM == 0 || ncA == 0 || ncM == 0 {
		// inner dimension zero contributes nothing; outer zero stays empty
		return
	}
	R.M.Mul(m.M, A.M)
	return
}

func (m Matrix) MulVec(v Vector) (R Vector) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	if nc != v.Len() {
		panic(fmt.Errorf("dimension mismatch in MulVec: [%d,%d] x [%d]", nr, nc, v.Len()))
	}
	R = NewVector(nr)
	if nr == 0 || nc == 0 {
		return
	}
	R.V.MulVec(m.M, v.V)
	return
}

func (m Matrix) Add(A Matrix) Matrix { // Changes receiver
	m.checkDims(A, "Add")
	for i, val := range A.DataP {
		m.DataP[i] += val
	}
	return m
}

func (m Matrix) Subtract(A Matrix) Matrix { // Changes receiver
	m.checkDims(A, "Subtract")
	for i, val := range A.DataP {
		m.DataP[i] -= val
	}
	return m
}

func (m Matrix) Scale(val float64) Matrix { // Changes receiver
	for i := range m.DataP {
		m.DataP[i] *= val
	}
	return m
}

func (m Matrix) checkDims(A Matrix, label string) {
	var (
		nrM, ncM = m.Dims()
		nrA, ncA = A.Dims()
	)
	if nrM != nrA || ncM != ncA {
		panic(fmt.Errorf("dimension mismatch in %s: [%d,%d] vs [%d,%d]", label, nrM, ncM, nrA, ncA))
	}
}

// LUSolve solves m*x = b by dense LU decomposition. A zero-dimensional
// system has the empty vector as its solution.
func (m Matrix) LUSolve(b Vector) (x Vector, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("matrix must be square, is [%d,%d]", nr, nc)
		return
	}
	if nr != b.Len() {
		err = fmt.Errorf("dimension mismatch in LUSolve: [%d,%d] with rhs [%d]", nr, nc, b.Len())
		return
	}
	x = NewVector(nc)
	if nr == 0 {
		return
	}
	var lu mat.LU
	lu.Factorize(m.M)
	if err = lu.SolveVecTo(x.V, false, b.V); err != nil {
		err = fmt.Errorf("linear solve failed: %w", err)
	}
	return
}

func (m Matrix) Print(labelO ...string) (out string) {
	var label string
	if len(labelO) != 0 {
		label = labelO[0]
	}
	if m.M == nil {
		return fmt.Sprintf("%s = empty [%d,%d]\n", label, m.nr, m.nc)
	}
	return fmt.Sprintf("%s =\n%8.5f\n", label, mat.Formatted(m.M, mat.Squeeze()))
}
