package reductor

import (
	"fmt"

	"github.com/morlab/ipldg/utils"
)

// extendTol is the relative defect below which a candidate vector counts
// as linearly dependent on the basis.
const extendTol = 1.e-10

// Basis is an ordered set of orthonormal vectors spanning a subdomain's
// reduced space. It starts empty and only ever grows.
type Basis struct {
	spaceDim int
	vecs     []utils.Vector
}

func NewBasis(spaceDim int) *Basis {
	return &Basis{spaceDim: spaceDim}
}

func (b *Basis) Len() int      { return len(b.vecs) }
func (b *Basis) SpaceDim() int { return b.spaceDim }

func (b *Basis) Vector(k int) utils.Vector { return b.vecs[k] }

// AsMatrix lays the basis out column-wise, spaceDim x Len. An empty basis
// yields a spaceDim x 0 matrix, which projects any block to an empty one.
func (b *Basis) AsMatrix() (R utils.Matrix) {
	R = utils.NewMatrix(b.spaceDim, b.Len())
	for k, v := range b.vecs {
		for i := 0; i < b.spaceDim; i++ {
			R.DataP[i*b.Len()+k] = v.DataP[i]
		}
	}
	return
}

// Lincomb expands reduced coefficients into the full local space. Zero
// coefficients (the empty basis) give the zero vector.
func (b *Basis) Lincomb(coeffs utils.Vector) (R utils.Vector) {
	if coeffs.Len() != b.Len() {
		panic(fmt.Errorf("basis has %d vectors, got %d coefficients", b.Len(), coeffs.Len()))
	}
	R = utils.NewVector(b.spaceDim)
	for k, v := range b.vecs {
		c := coeffs.DataP[k]
		for i := range R.DataP {
			R.DataP[i] += c * v.DataP[i]
		}
	}
	return
}

func (b *Basis) Copy() (R *Basis) {
	R = NewBasis(b.spaceDim)
	R.vecs = make([]utils.Vector, b.Len())
	for k, v := range b.vecs {
		R.vecs[k] = v.Copy()
	}
	return
}

// ExtendBasis orthogonalizes v against the basis (twice, for numerical
// stability), normalizes and appends it. When the orthogonalized defect is
// negligible relative to v the extension fails with an error; the basis is
// left unchanged in that case.
func ExtendBasis(b *Basis, v utils.Vector) (err error) {
	if v.Len() != b.spaceDim {
		return fmt.Errorf("vector of length %d cannot extend a basis over a %d-dimensional space",
			v.Len(), b.spaceDim)
	}
	var (
		w     = v.Copy()
		vNorm = v.Norm()
	)
	if vNorm == 0 {
		return fmt.Errorf("cannot extend basis with the zero vector")
	}
	for iter := 0; iter < 2; iter++ {
		for _, q := range b.vecs {
			w.Subtract(q.Copy().Scale(q.Dot(w)))
		}
	}
	wNorm := w.Norm()
	if wNorm <= extendTol*vNorm {
		return fmt.Errorf("new vector is numerically linearly dependent (defect %.3e)", wNorm/vNorm)
	}
	b.vecs = append(b.vecs, w.Scale(1/wNorm))
	return nil
}
