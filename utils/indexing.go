package utils

import "sort"

type Index []int

func NewIndex(n int) (I Index) {
	return make(Index, n)
}

func (I Index) Contains(i int) bool {
	for _, ind := range I {
		if ind == i {
			return true
		}
	}
	return false
}

func (I Index) Copy() (R Index) {
	R = make(Index, len(I))
	copy(R, I)
	return
}

// IndexSetToSorted converts a membership set into a sorted index list.
func IndexSetToSorted(set map[int]bool) (I Index) {
	I = make(Index, 0, len(set))
	for i := range set {
		I = append(I, i)
	}
	sort.Ints(I)
	return
}
