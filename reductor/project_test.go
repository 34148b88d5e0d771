package reductor

import (
	"testing"

	"github.com/morlab/ipldg/blockop"
	"github.com/morlab/ipldg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basisFrom(spaceDim int, vecs ...[]float64) *Basis {
	b := NewBasis(spaceDim)
	for _, v := range vecs {
		if err := ExtendBasis(b, utils.NewVector(spaceDim, v)); err != nil {
			panic(err)
		}
	}
	return b
}

func twoBlockOp(seed float64) *blockop.Operator {
	cell := func(name string, vals ...float64) *blockop.Operator {
		return blockop.NewMatrixOp(name, utils.NewMatrix(2, 2, vals))
	}
	return blockop.NewBlockOp([][]*blockop.Operator{
		{cell("d0", seed, 1, 2, seed+3), cell("c01", 0, seed, 1, 0)},
		{cell("c10", 1, 0, 0, seed), cell("d1", seed + 1, 0, 1, seed)},
	})
}

func TestProjectorLinearity(t *testing.T) {
	var (
		op1    = twoBlockOp(2)
		op2    = twoBlockOp(-1)
		bases  = []*Basis{
			basisFrom(2, []float64{1, 1}, []float64{1, -1}),
			basisFrom(2, []float64{0, 1}),
		}
		c1, c2 = 0.75, -2.5
	)
	comb := blockop.NewLincombOp([]*blockop.Operator{op1, op2},
		[]blockop.Functional{blockop.Constant(c1), blockop.Constant(c2)})

	projComb, err := ProjectBlockOperator(comb, bases, bases)
	require.NoError(t, err)
	proj1, err := ProjectBlockOperator(op1, bases, bases)
	require.NoError(t, err)
	proj2, err := ProjectBlockOperator(op2, bases, bases)
	require.NoError(t, err)

	// projection commutes with the affine combination
	lhs := projComb.Assemble(nil)
	rhs := proj1.Assemble(nil).Scale(c1).Add(proj2.Assemble(nil).Scale(c2))
	assert.InDeltaSlice(t, rhs.DataP, lhs.DataP, 1.e-12)

	// block sparsity survives and dimensions follow the bases
	assert.Equal(t, []int{2, 1}, projComb.RangeDims())
}

func TestProjectEmptyBasis(t *testing.T) {
	var (
		op    = twoBlockOp(1)
		bases = []*Basis{
			NewBasis(2), // empty: projects to zero-dimensional blocks
			basisFrom(2, []float64{1, 0}),
		}
	)
	proj, err := ProjectBlockOperator(op, bases, bases)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, proj.RangeDims())
	R := proj.Assemble(nil)
	nr, nc := R.Dims()
	assert.Equal(t, 1, nr)
	assert.Equal(t, 1, nc)
}

func TestProjectIdentity(t *testing.T) {
	bases := []*Basis{
		basisFrom(3, []float64{1, 0, 0}, []float64{0, 1, 0}),
		basisFrom(3, []float64{0, 0, 1}),
	}
	proj, err := ProjectBlockOperator(blockop.NewIdentityOp(6), bases, bases)
	require.NoError(t, err)
	// orthonormal bases project the identity to the identity
	R := proj.Assemble(nil)
	assert.InDeltaSlice(t, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}, R.DataP, 1.e-12)
}

func TestProjectBlockRHS(t *testing.T) {
	var (
		rhs = blockop.NewBlockColumnOp([]*blockop.Operator{
			blockop.NewVectorOp("f0", utils.NewVector(2, []float64{1, 2})),
			blockop.NewVectorOp("f1", utils.NewVector(2, []float64{3, 4})),
		})
		bases = []*Basis{
			basisFrom(2, []float64{1, 0}),
			NewBasis(2),
		}
	)
	proj, err := ProjectBlockRHS(rhs, bases)
	require.NoError(t, err)
	v := proj.AsVector(nil)
	// row 0 projects onto its basis, row 1 onto nothing
	assert.Equal(t, 1, v.Len())
	assert.InDelta(t, 1., v.AtVec(0), 1.e-12)
}

func TestProjectUnsupportedShape(t *testing.T) {
	bases := []*Basis{basisFrom(1, []float64{1})}
	// a bare vector is not a block operator
	_, err := ProjectBlockOperator(blockop.NewVectorOp("v", utils.NewVector(1, []float64{1})), bases, bases)
	assert.Error(t, err)
	// a block operator is not a right-hand side
	_, err = ProjectBlockRHS(twoBlockOp(1), bases)
	assert.Error(t, err)
}
