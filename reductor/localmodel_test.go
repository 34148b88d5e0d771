package reductor

import (
	"testing"

	"github.com/morlab/ipldg/model_problems/ThermalBlock"
	"github.com/morlab/ipldg/utils"
	"github.com/stretchr/testify/assert"
)

func TestPatchMap(t *testing.T) {
	pm := NewPatchMap(utils.Index{0, 1, 3, 4})
	assert.Equal(t, 4, pm.Len())
	assert.Equal(t, utils.Index{0, 1, 3, 4}, pm.Elements())
	// round trip over every member
	for iLoc := 0; iLoc < pm.Len(); iLoc++ {
		assert.Equal(t, iLoc, pm.GlobalToLocal(pm.LocalToGlobal(iLoc)))
	}
	assert.Equal(t, 3, pm.LocalToGlobal(2))
	assert.Equal(t, -1, pm.GlobalToLocal(2))
	assert.Equal(t, -1, pm.GlobalToLocal(8))
}

func TestConstructLocalModel(t *testing.T) {
	var (
		fom, g = ThermalBlock.New(3, 4, 10.)
		patch  = utils.Index{0, 1, 3, 4} // element patch of subdomain 0
	)
	local, pm := ConstructLocalModel(patch, fom, g)
	assert.Equal(t, 4, local.NumBlocks())
	assert.Equal(t, []int{16, 16, 16, 16}, local.Dims)

	blocks := local.Operator.Blocks
	// diagonal blocks are copied from the global operator
	for iLoc, I := range patch {
		assert.Same(t, fom.Operator.Blocks[I][I], blocks[iLoc][iLoc])
	}
	// coupling inside the patch survives: global pair (1,4)
	assert.Same(t, fom.Operator.Blocks[1][4], blocks[pm.GlobalToLocal(1)][pm.GlobalToLocal(4)])
	// global 1 couples to 0, 2 and 4; 2 lies outside the patch and its
	// coupling is dropped entirely, so row 1 holds exactly the diagonal
	// plus the couplings to 0 and 4
	row := blocks[pm.GlobalToLocal(1)]
	var present []int
	for jj, cell := range row {
		if cell != nil {
			present = append(present, pm.LocalToGlobal(jj))
		}
	}
	assert.Equal(t, []int{0, 1, 4}, present)
	// subdomains 1 and 3 are not adjacent, no block between them
	assert.Nil(t, blocks[pm.GlobalToLocal(1)][pm.GlobalToLocal(3)])

	// the patch model solves on its own
	u, err := local.Solve(1.)
	assert.NoError(t, err)
	assert.Equal(t, 4, u.NumBlocks())
	assert.Greater(t, u.Norm(), 0.)
}
