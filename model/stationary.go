// Package model holds the stationary block model shared by the full-order
// problem, the localized patch problems and the reduced-order model: a
// parameterized block operator, a right-hand side and named products over
// a block solution space.
package model

import (
	"github.com/morlab/ipldg/blockop"
)

type Stationary struct {
	Operator *blockop.Operator
	RHS      *blockop.Operator
	Products map[string]*blockop.Operator
	// Dims are the per-subdomain solution space dimensions.
	Dims []int
	// ParameterShape maps parameter keys to their component counts.
	ParameterShape map[string]int
}

func NewStationary(op, rhs *blockop.Operator, products map[string]*blockop.Operator,
	parameterShape map[string]int) (m *Stationary) {
	m = &Stationary{
		Operator:       op,
		RHS:            rhs,
		Products:       products,
		Dims:           op.RangeDims(),
		ParameterShape: parameterShape,
	}
	return
}

func (m *Stationary) NumBlocks() int { return len(m.Dims) }

func (m *Stationary) TotalDim() (n int) {
	for _, d := range m.Dims {
		n += d
	}
	return
}

func (m *Stationary) ParseMu(muRaw interface{}) (blockop.Mu, error) {
	return blockop.ParseMu(muRaw, m.ParameterShape)
}

// WithRHS derives a model sharing everything but the right-hand side; the
// receiver is not modified. Used to form the corrected patch problem.
func (m *Stationary) WithRHS(rhs *blockop.Operator) (R *Stationary) {
	R = &Stationary{
		Operator:       m.Operator,
		RHS:            rhs,
		Products:       m.Products,
		Dims:           m.Dims,
		ParameterShape: m.ParameterShape,
	}
	return
}

// Solve assembles the flattened system at mu and solves it by dense LU.
// A zero-dimensional model yields the empty solution.
func (m *Stationary) Solve(muRaw interface{}) (u blockop.BlockVector, err error) {
	mu, err := m.ParseMu(muRaw)
	if err != nil {
		return
	}
	if m.TotalDim() == 0 {
		u = blockop.NewBlockVector(m.Dims)
		return
	}
	var (
		A = m.Operator.Assemble(mu)
		b = m.RHS.AsVector(mu)
	)
	x, err := A.LUSolve(b)
	if err != nil {
		return
	}
	u = blockop.Split(x, m.Dims)
	return
}
