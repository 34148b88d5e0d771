package reductor

import (
	"github.com/morlab/ipldg/DD2D"
	"github.com/morlab/ipldg/blockop"
	"github.com/morlab/ipldg/model"
	"github.com/morlab/ipldg/utils"
)

// ConstructLocalModel restricts the global block operator and right-hand
// side to the given subdomain subset, producing an independent stationary
// block system together with its local<->global mapping.
//
// Coupling blocks are copied only when the neighbor lies inside the patch.
// Couplings pointing outside are dropped entirely; no boundary treatment
// replaces them. Whether a Dirichlet-type correction should be folded into
// the diagonal instead is an open research question, so the dropping
// behavior is kept as is.
func ConstructLocalModel(elements utils.Index, fom *model.Stationary,
	g DD2D.Grid) (patch *model.Stationary, pm PatchMap) {
	pm = NewPatchMap(elements)
	var (
		sPatch   = pm.Len()
		blocks   = fom.Operator.Blocks
		rhsCol   = fom.RHS.Col
		patchOp  = make([][]*blockop.Operator, sPatch)
		patchRHS = make([]*blockop.Operator, sPatch)
	)
	for ii := 0; ii < sPatch; ii++ {
		patchOp[ii] = make([]*blockop.Operator, sPatch)
		I := pm.LocalToGlobal(ii)
		patchOp[ii][ii] = blocks[I][I]
		patchRHS[ii] = rhsCol[I]
		for _, J := range g.Neighbors(I) {
			if jj := pm.GlobalToLocal(J); jj >= 0 {
				patchOp[ii][jj] = blocks[I][J]
			}
		}
	}
	patch = model.NewStationary(blockop.NewBlockOp(patchOp),
		blockop.NewBlockColumnOp(patchRHS), nil, fom.ParameterShape)
	return
}
