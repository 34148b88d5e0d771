package reductor

import (
	"github.com/morlab/ipldg/blockop"
	"github.com/morlab/ipldg/model"
)

// ResidualOperator evaluates r = A(u, mu) - b(mu) blockwise for a
// stationary block model.
type ResidualOperator struct {
	Op  *blockop.Operator
	RHS *blockop.Operator
}

func NewResidualOperator(m *model.Stationary) *ResidualOperator {
	return &ResidualOperator{Op: m.Operator, RHS: m.RHS}
}

func (ro *ResidualOperator) Apply(u blockop.BlockVector, mu blockop.Mu) (r blockop.BlockVector) {
	r = ro.Op.Apply(u, mu)
	b := blockop.Split(ro.RHS.AsVector(mu), r.Dims())
	r.Subtract(b)
	return
}
