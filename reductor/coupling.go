package reductor

import (
	"fmt"
	"strings"

	"github.com/morlab/ipldg/blockop"
)

// RemoveIrrelevantCoupling strips, from each diagonal block of a patch
// operator that is an affine combination of named terms, every coupling
// term pointing outside the patch. A term survives when its name contains
// "volume" or "boundary", or encodes a subdomain pair of the patch as the
// canonical "min_max" string. Off-diagonal blocks stay untouched, as do
// the coefficients of the surviving terms. The filtering is purely
// name-based.
func RemoveIrrelevantCoupling(patchOp *blockop.Operator, pm PatchMap) *blockop.Operator {
	var (
		sPatch = pm.Len()
		blocks = make([][]*blockop.Operator, sPatch)
	)
	pairStrings := make([]string, sPatch)
	makePairs := func(I int) []string {
		for l := 0; l < sPatch; l++ {
			J := pm.LocalToGlobal(l)
			if I < J {
				pairStrings[l] = fmt.Sprintf("%d_%d", I, J)
			} else {
				pairStrings[l] = fmt.Sprintf("%d_%d", J, I)
			}
		}
		return pairStrings
	}
	for i := 0; i < sPatch; i++ {
		blocks[i] = make([]*blockop.Operator, sPatch)
		for j := 0; j < sPatch; j++ {
			cell := patchOp.Blocks[i][j]
			if cell == nil {
				continue
			}
			if i != j || cell.Kind != blockop.OpLincomb {
				blocks[i][j] = cell
				continue
			}
			pairs := makePairs(pm.LocalToGlobal(i))
			var (
				ops    []*blockop.Operator
				coeffs []blockop.Functional
			)
			for k, term := range cell.Ops {
				if keepTerm(term.Name, pairs) {
					ops = append(ops, term)
					coeffs = append(coeffs, cell.Coeffs[k])
				}
			}
			blocks[i][j] = blockop.NewLincombOp(ops, coeffs)
		}
	}
	return blockop.NewBlockOp(blocks)
}

func keepTerm(name string, pairs []string) bool {
	if strings.Contains(name, "volume") || strings.Contains(name, "boundary") {
		return true
	}
	for _, s := range pairs {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}
