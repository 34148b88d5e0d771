package reductor

import (
	"fmt"

	"github.com/morlab/ipldg/blockop"
	"github.com/morlab/ipldg/utils"
)

// ProjectBlockOperator projects a block-structured, possibly affinely
// parameter-combined operator onto per-subdomain reduced bases. Block
// sparsity is preserved: absent couplings stay absent. Projection is
// linear, so an affine combination is projected term by term with the
// coefficient functionals carried over unchanged; that invariant is what
// makes the recursion over Lincomb correct.
func ProjectBlockOperator(op *blockop.Operator, rangeBases, sourceBases []*Basis) (*blockop.Operator, error) {
	if op.Kind == blockop.OpLincomb {
		ops := make([]*blockop.Operator, len(op.Ops))
		for k, term := range op.Ops {
			p, err := projectBlockOperator(term, rangeBases, sourceBases)
			if err != nil {
				return nil, err
			}
			ops[k] = p
		}
		return blockop.NewLincombOp(ops, op.Coeffs), nil
	}
	return projectBlockOperator(op, rangeBases, sourceBases)
}

func projectBlockOperator(op *blockop.Operator, rangeBases, sourceBases []*Basis) (*blockop.Operator, error) {
	switch op.Kind {
	case blockop.OpIdentity:
		blocks := make([][]*blockop.Operator, len(rangeBases))
		for I := range rangeBases {
			blocks[I] = make([]*blockop.Operator, len(sourceBases))
			W := rangeBases[I].AsMatrix()
			blocks[I][I] = blockop.NewMatrixOp("identity", W.Transpose().Mul(W))
		}
		return blockop.NewBlockOp(blocks), nil
	case blockop.OpBlock:
		blocks := make([][]*blockop.Operator, len(rangeBases))
		for I := range rangeBases {
			blocks[I] = make([]*blockop.Operator, len(sourceBases))
			for J := range sourceBases {
				if op.Blocks[I][J] == nil {
					continue
				}
				p, err := projectCell(op.Blocks[I][J], rangeBases[I], sourceBases[J])
				if err != nil {
					return nil, err
				}
				blocks[I][J] = p
			}
		}
		return blockop.NewBlockOp(blocks), nil
	}
	return nil, fmt.Errorf("projection of %s operators is not implemented", op.Kind)
}

// projectCell computes the Petrov-Galerkin restriction W^T A V of a single
// block, recursing into affine combinations.
func projectCell(cell *blockop.Operator, rangeBasis, sourceBasis *Basis) (*blockop.Operator, error) {
	switch cell.Kind {
	case blockop.OpMatrix:
		var (
			W = rangeBasis.AsMatrix()
			V = sourceBasis.AsMatrix()
		)
		return blockop.NewMatrixOp(cell.Name, W.Transpose().Mul(cell.Mat).Mul(V)), nil
	case blockop.OpIdentity:
		var (
			W = rangeBasis.AsMatrix()
			V = sourceBasis.AsMatrix()
		)
		return blockop.NewMatrixOp(cell.Name, W.Transpose().Mul(V)), nil
	case blockop.OpLincomb:
		ops := make([]*blockop.Operator, len(cell.Ops))
		for k, term := range cell.Ops {
			p, err := projectCell(term, rangeBasis, sourceBasis)
			if err != nil {
				return nil, err
			}
			ops[k] = p
		}
		return blockop.NewLincombOp(ops, cell.Coeffs), nil
	}
	return nil, fmt.Errorf("projection of %s blocks is not implemented", cell.Kind)
}

// ProjectBlockRHS mirrors ProjectBlockOperator for right-hand sides,
// projecting each subdomain row onto its own basis only.
func ProjectBlockRHS(rhs *blockop.Operator, rangeBases []*Basis) (*blockop.Operator, error) {
	switch rhs.Kind {
	case blockop.OpLincomb:
		ops := make([]*blockop.Operator, len(rhs.Ops))
		for k, term := range rhs.Ops {
			p, err := ProjectBlockRHS(term, rangeBases)
			if err != nil {
				return nil, err
			}
			ops[k] = p
		}
		return blockop.NewLincombOp(ops, rhs.Coeffs), nil
	case blockop.OpBlockColumn:
		col := make([]*blockop.Operator, len(rhs.Col))
		for I, cell := range rhs.Col {
			p, err := projectRHSCell(cell, rangeBases[I])
			if err != nil {
				return nil, err
			}
			col[I] = p
		}
		return blockop.NewBlockColumnOp(col), nil
	case blockop.OpVector:
		// one flat vector over the block space, split by the bases' dims
		dims := make([]int, len(rangeBases))
		for I, b := range rangeBases {
			dims[I] = b.SpaceDim()
		}
		parts := utils.SplitVector(rhs.Vec, dims)
		col := make([]*blockop.Operator, len(rangeBases))
		for I := range rangeBases {
			p, err := projectRHSCell(blockop.NewVectorOp(rhs.Name, parts[I]), rangeBases[I])
			if err != nil {
				return nil, err
			}
			col[I] = p
		}
		return blockop.NewBlockColumnOp(col), nil
	}
	return nil, fmt.Errorf("projection of %s right-hand sides is not implemented", rhs.Kind)
}

func projectRHSCell(cell *blockop.Operator, rangeBasis *Basis) (*blockop.Operator, error) {
	switch cell.Kind {
	case blockop.OpVector:
		W := rangeBasis.AsMatrix()
		return blockop.NewVectorOp(cell.Name, W.Transpose().MulVec(cell.Vec)), nil
	case blockop.OpLincomb:
		ops := make([]*blockop.Operator, len(cell.Ops))
		for k, term := range cell.Ops {
			p, err := projectRHSCell(term, rangeBasis)
			if err != nil {
				return nil, err
			}
			ops[k] = p
		}
		return blockop.NewLincombOp(ops, cell.Coeffs), nil
	}
	return nil, fmt.Errorf("projection of %s right-hand side blocks is not implemented", cell.Kind)
}
