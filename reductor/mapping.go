package reductor

import "github.com/morlab/ipldg/utils"

// PatchMap is the bidirectional index mapping between a patch's local
// block numbering and the global subdomain numbering. It is an explicit
// value, immutable after construction, shared read-only by every
// enrichment call on the patch.
type PatchMap struct {
	elements utils.Index
}

func NewPatchMap(elements utils.Index) PatchMap {
	return PatchMap{elements: elements.Copy()}
}

func (pm PatchMap) Len() int { return len(pm.elements) }

func (pm PatchMap) Elements() utils.Index { return pm.elements }

// LocalToGlobal is a plain array lookup; no bounds checking, patches are
// always built from valid adjacency.
func (pm PatchMap) LocalToGlobal(i int) int { return pm.elements[i] }

// GlobalToLocal scans linearly and returns -1 when I lies outside the
// patch. O(patch size), acceptable for the small patches involved.
func (pm PatchMap) GlobalToLocal(I int) int {
	for iLoc, J := range pm.elements {
		if J == I {
			return iLoc
		}
	}
	return -1
}
