package blockop

import (
	"fmt"

	"github.com/morlab/ipldg/utils"
)

// Kind tags the closed set of operator shapes the reductor understands.
// Dispatch over the tag replaces the isinstance chains of typical MOR
// codes; every algorithm below states one rule per kind.
type Kind uint8

const (
	OpMatrix Kind = iota // dense leaf
	OpIdentity
	OpVector // column leaf (a right-hand side block)
	OpBlock
	OpBlockColumn
	OpLincomb // affine combination with Functional coefficients
)

func (k Kind) String() string {
	switch k {
	case OpMatrix:
		return "Matrix"
	case OpIdentity:
		return "Identity"
	case OpVector:
		return "Vector"
	case OpBlock:
		return "Block"
	case OpBlockColumn:
		return "BlockColumn"
	case OpLincomb:
		return "Lincomb"
	}
	return "Unknown"
}

// Operator is a tagged variant over the Kind enumeration. Exactly the
// fields of the tagged kind are meaningful.
type Operator struct {
	Kind   Kind
	Name   string
	Mat    utils.Matrix  // OpMatrix
	Vec    utils.Vector  // OpVector
	Dim    int           // OpIdentity
	Blocks [][]*Operator // OpBlock, nil cells are absent couplings
	Col    []*Operator   // OpBlockColumn
	Ops    []*Operator   // OpLincomb
	Coeffs []Functional  // OpLincomb
}

func NewMatrixOp(name string, M utils.Matrix) *Operator {
	return &Operator{Kind: OpMatrix, Name: name, Mat: M}
}

func NewIdentityOp(dim int) *Operator {
	return &Operator{Kind: OpIdentity, Dim: dim}
}

func NewVectorOp(name string, v utils.Vector) *Operator {
	return &Operator{Kind: OpVector, Name: name, Vec: v}
}

func NewBlockOp(blocks [][]*Operator) *Operator {
	for _, row := range blocks {
		if len(row) != len(blocks[0]) {
			panic(fmt.Errorf("ragged block structure: %d vs %d columns", len(row), len(blocks[0])))
		}
	}
	return &Operator{Kind: OpBlock, Blocks: blocks}
}

func NewBlockColumnOp(col []*Operator) *Operator {
	return &Operator{Kind: OpBlockColumn, Col: col}
}

func NewLincombOp(ops []*Operator, coeffs []Functional) *Operator {
	if len(ops) != len(coeffs) {
		panic(fmt.Errorf("lincomb needs one coefficient per operator, got %d and %d", len(ops), len(coeffs)))
	}
	return &Operator{Kind: OpLincomb, Ops: ops, Coeffs: coeffs}
}

// RangeDim/SourceDim report the dimensions of a non-block operator.
func (op *Operator) RangeDim() int {
	switch op.Kind {
	case OpMatrix:
		nr, _ := op.Mat.Dims()
		return nr
	case OpIdentity:
		return op.Dim
	case OpVector:
		return op.Vec.Len()
	case OpLincomb:
		return op.Ops[0].RangeDim()
	}
	panic(fmt.Errorf("RangeDim undefined for %s operator", op.Kind))
}

func (op *Operator) SourceDim() int {
	switch op.Kind {
	case OpMatrix:
		_, nc := op.Mat.Dims()
		return nc
	case OpIdentity:
		return op.Dim
	case OpVector:
		return 1
	case OpLincomb:
		return op.Ops[0].SourceDim()
	}
	panic(fmt.Errorf("SourceDim undefined for %s operator", op.Kind))
}

// RangeDims/SourceDims report the per-subdomain dimensions of a block
// operator. Every row and column must carry at least one present block,
// which holds by construction since diagonal blocks are always present.
func (op *Operator) RangeDims() (dims []int) {
	switch op.Kind {
	case OpBlock:
		dims = make([]int, len(op.Blocks))
		for i, row := range op.Blocks {
			for _, cell := range row {
				if cell != nil {
					dims[i] = cell.RangeDim()
					break
				}
			}
		}
		return
	case OpBlockColumn:
		dims = make([]int, len(op.Col))
		for i, cell := range op.Col {
			dims[i] = cell.RangeDim()
		}
		return
	case OpLincomb:
		return op.Ops[0].RangeDims()
	}
	panic(fmt.Errorf("RangeDims undefined for %s operator", op.Kind))
}

func (op *Operator) SourceDims() (dims []int) {
	switch op.Kind {
	case OpBlock:
		dims = make([]int, len(op.Blocks[0]))
		for j := range op.Blocks[0] {
			for i := range op.Blocks {
				if op.Blocks[i][j] != nil {
					dims[j] = op.Blocks[i][j].SourceDim()
					break
				}
			}
		}
		return
	case OpLincomb:
		return op.Ops[0].SourceDims()
	}
	panic(fmt.Errorf("SourceDims undefined for %s operator", op.Kind))
}

// Assemble evaluates a matrix-valued operator at mu into one dense Matrix.
// Block structure is flattened with zeros for absent couplings.
func (op *Operator) Assemble(mu Mu) (R utils.Matrix) {
	switch op.Kind {
	case OpMatrix:
		return op.Mat.Copy()
	case OpIdentity:
		return utils.NewEye(op.Dim)
	case OpLincomb:
		R = op.Ops[0].Assemble(mu).Scale(op.Coeffs[0].Evaluate(mu))
		for k := 1; k < len(op.Ops); k++ {
			R.Add(op.Ops[k].Assemble(mu).Scale(op.Coeffs[k].Evaluate(mu)))
		}
		return
	case OpBlock:
		bm := utils.NewBlockMatrix(op.RangeDims(), op.SourceDims())
		for i, row := range op.Blocks {
			for j, cell := range row {
				if cell != nil {
					bm.Set(i, j, cell.Assemble(mu))
				}
			}
		}
		return bm.Flatten()
	}
	panic(fmt.Errorf("cannot assemble %s operator", op.Kind))
}

// AsVector evaluates a vector-valued (right-hand side) operator at mu.
func (op *Operator) AsVector(mu Mu) (R utils.Vector) {
	switch op.Kind {
	case OpVector:
		return op.Vec.Copy()
	case OpBlockColumn:
		vs := make([]utils.Vector, len(op.Col))
		for i, cell := range op.Col {
			vs[i] = cell.AsVector(mu)
		}
		return utils.ConcatVectors(vs...)
	case OpLincomb:
		R = op.Ops[0].AsVector(mu).Scale(op.Coeffs[0].Evaluate(mu))
		for k := 1; k < len(op.Ops); k++ {
			R.Add(op.Ops[k].AsVector(mu).Scale(op.Coeffs[k].Evaluate(mu)))
		}
		return
	}
	panic(fmt.Errorf("cannot evaluate %s operator as a vector", op.Kind))
}

// Apply evaluates op(u) at mu blockwise, preserving block sparsity.
func (op *Operator) Apply(u BlockVector, mu Mu) (R BlockVector) {
	switch op.Kind {
	case OpBlock:
		R = NewBlockVector(op.RangeDims())
		for i, row := range op.Blocks {
			for j, cell := range row {
				if cell != nil {
					R.B[i].Add(cell.Assemble(mu).MulVec(u.B[j]))
				}
			}
		}
		return
	case OpIdentity:
		return u.Copy()
	case OpLincomb:
		R = op.Ops[0].Apply(u, mu).Scale(op.Coeffs[0].Evaluate(mu))
		for k := 1; k < len(op.Ops); k++ {
			R.Add(op.Ops[k].Apply(u, mu).Scale(op.Coeffs[k].Evaluate(mu)))
		}
		return
	}
	panic(fmt.Errorf("cannot apply %s operator to a block vector", op.Kind))
}
