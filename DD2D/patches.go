package DD2D

import (
	"math"
	"sort"

	"github.com/morlab/ipldg/utils"
)

// ConstructElementPatches builds, for every subdomain I, the 2-ring closure
// {I} + neighbors(I) + diagonally adjacent subdomains. A second-ring
// candidate is admitted only when exactly two of its neighbors already lie
// in the patch, which selects the corner-adjacent subdomains of a
// quadrilateral layout and nothing else. Only valid for such layouts.
func ConstructElementPatches(g Grid) (patches []utils.Index) {
	patches = make([]utils.Index, g.NumSubdomains())
	for ss := 0; ss < g.NumSubdomains(); ss++ {
		nh := map[int]bool{ss: true}
		for _, nn := range g.Neighbors(ss) {
			nh[nn] = true
		}
		for _, nn := range g.Neighbors(ss) {
			for _, nnn := range g.Neighbors(nn) {
				if nh[nnn] {
					continue
				}
				count := 0
				for _, k := range g.Neighbors(nnn) {
					if nh[k] {
						count++
					}
				}
				if count == 2 {
					nh[nnn] = true
				}
			}
		}
		patches[ss] = utils.IndexSetToSorted(nh)
	}
	return
}

// ConstructInnerNodePatches returns, for every interior corner node of a
// sqrt(S) x sqrt(S) row-major layout, the 4 subdomains meeting at that
// node, keyed by i*n + j of the corner's (row, col) position. The result
// is silently wrong when S is not a perfect square.
func ConstructInnerNodePatches(g Grid) (nodePatches map[int]utils.Index) {
	var (
		n = int(math.Sqrt(float64(g.NumSubdomains())))
	)
	nodePatches = make(map[int]utils.Index)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1; j++ {
			nodePatches[i*n+j] = utils.Index{
				i*n + j, i*n + j + 1,
				(i+1)*n + j, (i+1)*n + j + 1,
			}
		}
	}
	return
}

// AddElementNeighbors expands each domain by the union of the neighbor sets
// of its members, deduplicated and sorted. Applied to node patches this
// yields the estimator domains.
func AddElementNeighbors(g Grid, domains map[int]utils.Index) (expanded map[int]utils.Index) {
	expanded = make(map[int]utils.Index, len(domains))
	for key, elements := range domains {
		set := make(map[int]bool)
		for _, el := range elements {
			for _, nn := range g.Neighbors(el) {
				set[nn] = true
			}
		}
		expanded[key] = utils.IndexSetToSorted(set)
	}
	return
}

// SortedKeys gives a deterministic iteration order over patch maps.
func SortedKeys(domains map[int]utils.Index) (keys []int) {
	keys = make([]int, 0, len(domains))
	for k := range domains {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return
}
