package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Vector wraps a *mat.VecDense. Zero-length vectors are legal (V is nil);
// they arise as blocks of a zero-dimensional reduced model.
type Vector struct {
	V     *mat.VecDense
	DataP []float64
	n     int
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	if n == 0 {
		return Vector{}
	}
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{
		V:     v,
		DataP: v.RawVector().Data,
		n:     n,
	}
	return
}

func NewVectorConst(n int, val float64) (R Vector) {
	R = NewVector(n)
	for i := range R.DataP {
		R.DataP[i] = val
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.n, 1 }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.n }

func (v Vector) Set(i int, val float64) Vector {
	v.V.SetVec(i, val)
	return v
}

func (v Vector) Copy() (R Vector) { // Does not change receiver
	R = NewVector(v.n)
	copy(R.DataP, v.DataP)
	return
}

func (v Vector) Add(a Vector) Vector { // Changes receiver
	v.checkLen(a, "Add")
	for i, val := range a.DataP {
		v.DataP[i] += val
	}
	return v
}

func (v Vector) Subtract(a Vector) Vector { // Changes receiver
	v.checkLen(a, "Subtract")
	for i, val := range a.DataP {
		v.DataP[i] -= val
	}
	return v
}

func (v Vector) Scale(val float64) Vector { // Changes receiver
	for i := range v.DataP {
		v.DataP[i] *= val
	}
	return v
}

func (v Vector) Dot(a Vector) (d float64) {
	v.checkLen(a, "Dot")
	for i, val := range v.DataP {
		d += val * a.DataP[i]
	}
	return
}

func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vector) checkLen(a Vector, label string) {
	if v.n != a.n {
		panic(fmt.Errorf("dimension mismatch in %s: [%d] vs [%d]", label, v.n, a.n))
	}
}

// ConcatVectors stacks vectors into one; SplitVector is its inverse given
// the block lengths.
func ConcatVectors(vs ...Vector) (R Vector) {
	var n int
	for _, v := range vs {
		n += v.Len()
	}
	R = NewVector(n)
	var ofs int
	for _, v := range vs {
		copy(R.DataP[ofs:ofs+v.Len()], v.DataP)
		ofs += v.Len()
	}
	return
}

func SplitVector(v Vector, dims []int) (R []Vector) {
	var total int
	for _, d := range dims {
		total += d
	}
	if total != v.Len() {
		panic(fmt.Errorf("dimension mismatch in SplitVector: [%d] into %v", v.Len(), dims))
	}
	R = make([]Vector, len(dims))
	var ofs int
	for i, d := range dims {
		R[i] = NewVector(d)
		copy(R[i].DataP, v.DataP[ofs:ofs+d])
		ofs += d
	}
	return
}
