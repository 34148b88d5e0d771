package DD2D

import (
	"testing"

	"github.com/morlab/ipldg/utils"
	"github.com/stretchr/testify/assert"
)

func TestCartesianGrid(t *testing.T) {
	g := NewCartesianGrid(3)
	assert.Equal(t, 9, g.NumSubdomains())
	assert.Equal(t, []int{1, 3}, g.Neighbors(0))
	assert.Equal(t, []int{1, 3, 5, 7}, g.Neighbors(4))
	assert.Equal(t, []int{2, 4, 8}, g.Neighbors(5))
	assert.Equal(t, []int{5, 7}, g.Neighbors(8))
}

func TestConstructElementPatches(t *testing.T) {
	g := NewCartesianGrid(3)
	patches := ConstructElementPatches(g)
	assert.Equal(t, utils.Index{0, 1, 3, 4}, patches[0])
	assert.Equal(t, utils.Index{0, 1, 2, 3, 4, 5, 6, 7, 8}, patches[4])
	assert.Equal(t, utils.Index{1, 2, 4, 5}, patches[2])
	// every patch contains its center and only subdomains within two
	// neighbor hops
	for ss, patch := range patches {
		assert.True(t, patch.Contains(ss))
		for _, member := range patch {
			assert.True(t, withinTwoHops(g, ss, member), "subdomain %d not within 2 hops of %d", member, ss)
		}
	}
}

func withinTwoHops(g Grid, from, to int) bool {
	if from == to {
		return true
	}
	for _, nn := range g.Neighbors(from) {
		if nn == to {
			return true
		}
		for _, nnn := range g.Neighbors(nn) {
			if nnn == to {
				return true
			}
		}
	}
	return false
}

func TestConstructInnerNodePatches(t *testing.T) {
	// S = 4: exactly one interior node shared by all 4 subdomains
	{
		g := NewCartesianGrid(2)
		nps := ConstructInnerNodePatches(g)
		assert.Len(t, nps, 1)
		assert.Equal(t, utils.Index{0, 1, 2, 3}, nps[0])
	}
	// S = 9: four interior nodes
	{
		g := NewCartesianGrid(3)
		nps := ConstructInnerNodePatches(g)
		assert.Len(t, nps, 4)
		assert.Equal(t, []int{0, 1, 3, 4}, SortedKeys(nps))
		assert.Equal(t, utils.Index{0, 1, 3, 4}, nps[0])
		assert.Equal(t, utils.Index{4, 5, 7, 8}, nps[4])
	}
}

func TestAddElementNeighbors(t *testing.T) {
	// expanding the single node patch of a 2x2 layout reproduces it
	{
		g := NewCartesianGrid(2)
		ed := AddElementNeighbors(g, ConstructInnerNodePatches(g))
		assert.Equal(t, utils.Index{0, 1, 2, 3}, ed[0])
	}
	// one neighbor ring around the upper-left node patch of a 3x3 layout
	{
		g := NewCartesianGrid(3)
		ed := AddElementNeighbors(g, ConstructInnerNodePatches(g))
		assert.Equal(t, utils.Index{0, 1, 2, 3, 4, 5, 6, 7}, ed[0])
	}
}
