// Package ThermalBlock builds the domain-decomposed thermal-block model
// problem: an n x n arrangement of unit subdomains, each carrying its own
// diffusion parameter, discretized subdomain-wise with interface-penalty
// coupling in the manner of an interior-penalty DG method. It serves as
// the full-order model for the localized reduced-basis reductor.
package ThermalBlock

import (
	"fmt"

	"github.com/morlab/ipldg/DD2D"
	"github.com/morlab/ipldg/blockop"
	"github.com/morlab/ipldg/model"
	"github.com/morlab/ipldg/utils"
)

const DiffusionKey = "diffusion"

type ThermalBlock struct {
	N       int     // subdomains per side
	Fine    int     // cells per side within one subdomain
	Penalty float64 // interface/boundary penalty weight
}

// New assembles the block FOM and its matching grid. Every diagonal block
// is an affine combination of a "volume_I" stiffness term weighted by the
// subdomain's diffusion component, a "boundary_I" penalty where the
// subdomain touches the outer boundary, and one "coupling_min_max" penalty
// per edge neighbor; off-diagonal blocks carry the matching cross-penalty
// under the same pair name. The "h1" product is the parameter-independent
// assembly at unit diffusion.
func New(n, fine int, penalty float64) (fom *model.Stationary, g *DD2D.CartesianGrid) {
	tb := &ThermalBlock{N: n, Fine: fine, Penalty: penalty}
	g = DD2D.NewCartesianGrid(n)
	var (
		S    = n * n
		dof  = fine * fine
		h    = 1. / float64(n*fine)
		rows = make([][]*blockop.Operator, S)
		col  = make([]*blockop.Operator, S)
	)
	for I := 0; I < S; I++ {
		rows[I] = make([]*blockop.Operator, S)
		var (
			ops    []*blockop.Operator
			coeffs []blockop.Functional
		)
		ops = append(ops, blockop.NewMatrixOp(fmt.Sprintf("volume_%d", I), tb.volumeBlock()))
		coeffs = append(coeffs, blockop.ParamComponent{Key: DiffusionKey, Index: I})
		if bdofs := tb.boundaryDofs(I); len(bdofs) != 0 {
			ops = append(ops, blockop.NewMatrixOp(fmt.Sprintf("boundary_%d", I), tb.penaltyDiag(bdofs)))
			coeffs = append(coeffs, blockop.Constant(1))
		}
		for _, J := range g.Neighbors(I) {
			name := couplingName(I, J)
			ops = append(ops, blockop.NewMatrixOp(name, tb.penaltyDiag(tb.interfaceDofs(I, J))))
			coeffs = append(coeffs, blockop.Constant(1))
			rows[I][J] = blockop.NewMatrixOp(name, tb.crossPenalty(I, J))
		}
		rows[I][I] = blockop.NewLincombOp(ops, coeffs)

		col[I] = blockop.NewVectorOp(fmt.Sprintf("rhs_%d", I), utils.NewVectorConst(dof, h*h))
	}

	// parameter-independent energy product, block diagonal
	prodBlocks := make([][]*blockop.Operator, S)
	for I := 0; I < S; I++ {
		prodBlocks[I] = make([]*blockop.Operator, S)
		P := tb.volumeBlock()
		if bdofs := tb.boundaryDofs(I); len(bdofs) != 0 {
			P.Add(tb.penaltyDiag(bdofs))
		}
		for _, J := range g.Neighbors(I) {
			P.Add(tb.penaltyDiag(tb.interfaceDofs(I, J)))
		}
		prodBlocks[I][I] = blockop.NewMatrixOp(fmt.Sprintf("h1_%d", I), P)
	}

	fom = model.NewStationary(
		blockop.NewBlockOp(rows),
		blockop.NewBlockColumnOp(col),
		map[string]*blockop.Operator{"h1": blockop.NewBlockOp(prodBlocks)},
		map[string]int{DiffusionKey: S},
	)
	return
}

func couplingName(I, J int) string {
	if I < J {
		return fmt.Sprintf("coupling_%d_%d", I, J)
	}
	return fmt.Sprintf("coupling_%d_%d", J, I)
}

// volumeBlock assembles the subdomain-local graph Laplacian over the
// fine x fine cell grid, sparse first, then densified for the block
// operator machinery.
func (tb *ThermalBlock) volumeBlock() utils.Matrix {
	var (
		fine = tb.Fine
		dok  = utils.NewDOK(fine*fine, fine*fine)
	)
	idx := func(i, j int) int { return i*fine + j }
	for i := 0; i < fine; i++ {
		for j := 0; j < fine; j++ {
			k := idx(i, j)
			if j < fine-1 {
				l := idx(i, j+1)
				dok.Accum(k, k, 1).Accum(l, l, 1).Accum(k, l, -1).Accum(l, k, -1)
			}
			if i < fine-1 {
				l := idx(i+1, j)
				dok.Accum(k, k, 1).Accum(l, l, 1).Accum(k, l, -1).Accum(l, k, -1)
			}
		}
	}
	return dok.ToMatrix()
}

func (tb *ThermalBlock) penaltyDiag(dofs utils.Index) utils.Matrix {
	var (
		dof = tb.Fine * tb.Fine
		dok = utils.NewDOK(dof, dof)
	)
	for _, k := range dofs {
		dok.Accum(k, k, tb.Penalty)
	}
	return dok.ToMatrix()
}

// boundaryDofs lists the local dofs of subdomain I lying on the outer
// domain boundary.
func (tb *ThermalBlock) boundaryDofs(I int) (dofs utils.Index) {
	var (
		n, fine  = tb.N, tb.Fine
		row, col = I / n, I % n
		set      = make(map[int]bool)
	)
	for k := 0; k < fine; k++ {
		if row == 0 {
			set[k] = true // top row, i = 0
		}
		if row == n-1 {
			set[(fine-1)*fine+k] = true
		}
		if col == 0 {
			set[k*fine] = true // left column, j = 0
		}
		if col == n-1 {
			set[k*fine+fine-1] = true
		}
	}
	return utils.IndexSetToSorted(set)
}

// interfaceDofs lists I's local dofs on the interface towards its edge
// neighbor J, ordered so that they pair up with J's mirrored list.
func (tb *ThermalBlock) interfaceDofs(I, J int) (dofs utils.Index) {
	var (
		n, fine = tb.N, tb.Fine
	)
	dofs = make(utils.Index, fine)
	for k := 0; k < fine; k++ {
		switch J {
		case I + 1: // right neighbor: column j = fine-1
			dofs[k] = k*fine + fine - 1
		case I - 1: // left neighbor: column j = 0
			dofs[k] = k * fine
		case I + n: // lower neighbor: row i = fine-1
			dofs[k] = (fine-1)*fine + k
		case I - n: // upper neighbor: row i = 0
			dofs[k] = k
		default:
			panic(fmt.Errorf("subdomains %d and %d are not edge neighbors", I, J))
		}
	}
	return
}

// crossPenalty builds the off-diagonal coupling block (I,J): -penalty at
// each matched pair of interface dofs.
func (tb *ThermalBlock) crossPenalty(I, J int) utils.Matrix {
	var (
		dof   = tb.Fine * tb.Fine
		dok   = utils.NewDOK(dof, dof)
		mine  = tb.interfaceDofs(I, J)
		yours = tb.interfaceDofs(J, I)
	)
	for k := range mine {
		dok.Accum(mine[k], yours[k], -tb.Penalty)
	}
	return dok.ToMatrix()
}
