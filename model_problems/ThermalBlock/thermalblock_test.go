package ThermalBlock

import (
	"testing"

	"github.com/morlab/ipldg/blockop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	fom, g := New(2, 3, 10)
	assert.Equal(t, 4, g.NumSubdomains())
	assert.Equal(t, []int{9, 9, 9, 9}, fom.Dims)
	assert.Equal(t, 36, fom.TotalDim())
	assert.Equal(t, map[string]int{DiffusionKey: 4}, fom.ParameterShape)
}

func TestTermNames(t *testing.T) {
	fom, _ := New(2, 2, 10)
	var (
		diag  = fom.Operator.Blocks[0][0]
		names []string
	)
	require.Equal(t, blockop.OpLincomb, diag.Kind)
	for _, term := range diag.Ops {
		names = append(names, term.Name)
	}
	assert.ElementsMatch(t, []string{"volume_0", "boundary_0", "coupling_0_1", "coupling_0_2"}, names)

	// off-diagonal coupling blocks carry the min_max pair name both ways
	assert.Equal(t, "coupling_0_1", fom.Operator.Blocks[0][1].Name)
	assert.Equal(t, "coupling_0_1", fom.Operator.Blocks[1][0].Name)
	assert.Nil(t, fom.Operator.Blocks[0][3])

	// the interior subdomain of a 3x3 layout has no boundary term
	fom9, _ := New(3, 2, 10)
	names = names[:0]
	for _, term := range fom9.Operator.Blocks[4][4].Ops {
		names = append(names, term.Name)
	}
	assert.NotContains(t, names, "boundary_4")
	assert.Contains(t, names, "volume_4")
	assert.Contains(t, names, "coupling_1_4")
}

func TestAssembledSymmetry(t *testing.T) {
	fom, _ := New(2, 2, 10)
	mu, err := fom.ParseMu(1.0)
	require.NoError(t, err)
	A := fom.Operator.Assemble(mu)
	nr, nc := A.Dims()
	require.Equal(t, nr, nc)
	for i := 0; i < nr; i++ {
		for j := i + 1; j < nc; j++ {
			assert.InDelta(t, A.At(i, j), A.At(j, i), 1.e-14)
		}
	}
}

func TestSolveAndProduct(t *testing.T) {
	fom, _ := New(2, 3, 10)
	u, err := fom.Solve([]float64{1, 2, 0.5, 1})
	require.NoError(t, err)
	// diffusion with a positive source keeps the solution positive
	for I := 0; I < 4; I++ {
		for i := 0; i < u.Block(I).Len(); i++ {
			assert.Greater(t, u.Block(I).AtVec(i), 0.)
		}
	}

	// the energy product is block diagonal and parameter independent
	h1 := fom.Products["h1"]
	require.NotNil(t, h1)
	for I := 0; I < 4; I++ {
		for J := 0; J < 4; J++ {
			if I != J {
				assert.Nil(t, h1.Blocks[I][J])
			}
		}
	}
	P := h1.Assemble(nil)
	v := u.Concat()
	assert.Greater(t, v.Dot(P.MulVec(v)), 0.)
}
