package reductor

import (
	"math"
	"testing"

	"github.com/morlab/ipldg/blockop"
	"github.com/morlab/ipldg/model_problems/ThermalBlock"
	"github.com/morlab/ipldg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceRejectsSubbasisDims(t *testing.T) {
	fom, g := ThermalBlock.New(2, 2, 10)
	r := NewReductor(fom, g)
	_, err := r.Reduce(3)
	assert.Error(t, err)
}

func TestReduceCaching(t *testing.T) {
	fom, g := ThermalBlock.New(2, 2, 10)
	r := NewReductor(fom, g)

	rom1, err := r.Reduce()
	require.NoError(t, err)
	rom2, err := r.Reduce()
	require.NoError(t, err)
	assert.Same(t, rom1, rom2)
	assert.Equal(t, 1, r.Rebuilds())

	{ // a grown basis invalidates the cache
		r.AddLocalSolution(0, utils.NewVectorConst(fom.Dims[0], 1))
		rom3, err := r.Reduce()
		require.NoError(t, err)
		assert.NotSame(t, rom1, rom3)
		assert.Equal(t, 2, r.Rebuilds())
		assert.Equal(t, []int{1, 0, 0, 0}, r.BasisLength())
	}
	{ // a failed extension leaves basis and cache alone
		r.AddLocalSolution(0, utils.NewVectorConst(fom.Dims[0], 2))
		assert.Equal(t, []int{1, 0, 0, 0}, r.BasisLength())
		_, err := r.Reduce()
		require.NoError(t, err)
		assert.Equal(t, 2, r.Rebuilds())
	}
}

func TestEnrichmentCycle(t *testing.T) {
	var (
		fom, g = ThermalBlock.New(2, 3, 10)
		r      = NewReductor(fom, g)
		mu     = 1.0
	)
	rom0, err := r.Reduce()
	require.NoError(t, err)
	assert.Equal(t, 0, rom0.TotalDim())

	u0, err := rom0.Solve(mu)
	require.NoError(t, err)
	for I := 0; I < 4; I++ {
		assert.Equal(t, 0, u0.Block(I).Len())
	}

	require.NoError(t, r.EnrichAllLocally(mu))
	assert.Equal(t, []int{1, 1, 1, 1}, r.BasisLength())

	rom1, err := r.Reduce()
	require.NoError(t, err)
	assert.NotSame(t, rom0, rom1)
	assert.Equal(t, []int{1, 1, 1, 1}, rom1.Dims)

	muP, err := fom.ParseMu(mu)
	require.NoError(t, err)
	residualNorm := func(u blockop.BlockVector) float64 {
		return fom.Operator.Apply(u, muP).Concat().Subtract(fom.RHS.AsVector(muP)).Norm()
	}
	uROM, err := rom1.Solve(mu)
	require.NoError(t, err)
	uH := r.Reconstruct(uROM)
	assert.Less(t, residualNorm(uH), residualNorm(blockop.NewBlockVector(fom.Dims)))

	{ // energy error shrinks against the exact solution as well
		uFOM, err := fom.Solve(mu)
		require.NoError(t, err)
		var (
			A     = fom.Operator.Assemble(muP)
			eFull = uFOM.Concat()
			eRed  = uFOM.Concat().Subtract(uH.Concat())
			normA = func(v utils.Vector) float64 { return math.Sqrt(v.Dot(A.MulVec(v))) }
		)
		assert.Less(t, normA(eRed), normA(eFull))
	}

	{ // a second round never shrinks any basis
		before := r.BasisLength()
		require.NoError(t, r.EnrichAllLocally(mu))
		for I, n := range r.BasisLength() {
			assert.GreaterOrEqual(t, n, before[I])
		}
	}
}

func TestEnrichLocallyGlobalMatrix(t *testing.T) {
	var (
		fom, g = ThermalBlock.New(2, 2, 10)
		r      = NewReductor(fom, g)
	)
	phi, err := r.EnrichLocally(0, 1.0, true)
	require.NoError(t, err)
	assert.Equal(t, len(r.ElementPatches[0]), phi.NumBlocks())
	assert.Greater(t, phi.Norm(), 0.)
	assert.Equal(t, []int{1, 0, 0, 0}, r.BasisLength())
}

func TestFromPatchToGlobal(t *testing.T) {
	var (
		fom, g = ThermalBlock.New(2, 2, 10)
		r      = NewReductor(fom, g)
		pmap   = r.PatchMaps[0]
		uPatch = blockop.NewBlockVector(r.PatchModels[0].Dims)
	)
	for iLoc := 0; iLoc < pmap.Len(); iLoc++ {
		uPatch.B[iLoc].Set(0, float64(iLoc+1))
	}
	u := r.FromPatchToGlobal(0, uPatch)
	assert.Equal(t, 4, u.NumBlocks())
	for _, I := range r.ElementPatches[0] {
		assert.InDelta(t, float64(pmap.GlobalToLocal(I)+1), u.Block(I).AtVec(0), 1.e-14)
	}
}
