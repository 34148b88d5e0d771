package DD2D

import "sort"

// Grid exposes the domain-decomposition topology consumed by the reductor:
// the number of subdomains and the edge-adjacency between them.
type Grid interface {
	NumSubdomains() int
	Neighbors(I int) []int
}

// CartesianGrid is an n x n quadrilateral subdomain layout with row-major
// numbering and edge (von Neumann) adjacency.
type CartesianGrid struct {
	N         int
	neighbors [][]int
}

func NewCartesianGrid(n int) (g *CartesianGrid) {
	g = &CartesianGrid{N: n}
	g.neighbors = make([][]int, n*n)
	for I := 0; I < n*n; I++ {
		var (
			row, col = I / n, I % n
			nbs      []int
		)
		if row > 0 {
			nbs = append(nbs, I-n)
		}
		if col > 0 {
			nbs = append(nbs, I-1)
		}
		if col < n-1 {
			nbs = append(nbs, I+1)
		}
		if row < n-1 {
			nbs = append(nbs, I+n)
		}
		sort.Ints(nbs)
		g.neighbors[I] = nbs
	}
	return
}

func (g *CartesianGrid) NumSubdomains() int { return g.N * g.N }

func (g *CartesianGrid) Neighbors(I int) []int { return g.neighbors[I] }
