package blockop

import (
	"math"

	"github.com/morlab/ipldg/utils"
)

// BlockVector is an element of a block solution space, one sub-vector per
// subdomain.
type BlockVector struct {
	B []utils.Vector
}

func NewBlockVector(dims []int) (R BlockVector) {
	R.B = make([]utils.Vector, len(dims))
	for i, d := range dims {
		R.B[i] = utils.NewVector(d)
	}
	return
}

func NewBlockVectorFrom(blocks []utils.Vector) (R BlockVector) {
	R.B = blocks
	return
}

func (bv BlockVector) NumBlocks() int           { return len(bv.B) }
func (bv BlockVector) Block(i int) utils.Vector { return bv.B[i] }

func (bv BlockVector) Dims() (dims []int) {
	dims = make([]int, len(bv.B))
	for i, b := range bv.B {
		dims[i] = b.Len()
	}
	return
}

func (bv BlockVector) Copy() (R BlockVector) {
	R.B = make([]utils.Vector, len(bv.B))
	for i, b := range bv.B {
		R.B[i] = b.Copy()
	}
	return
}

func (bv BlockVector) Add(a BlockVector) BlockVector { // Changes receiver
	for i := range bv.B {
		bv.B[i].Add(a.B[i])
	}
	return bv
}

func (bv BlockVector) Subtract(a BlockVector) BlockVector { // Changes receiver
	for i := range bv.B {
		bv.B[i].Subtract(a.B[i])
	}
	return bv
}

func (bv BlockVector) Scale(val float64) BlockVector { // Changes receiver
	for i := range bv.B {
		bv.B[i].Scale(val)
	}
	return bv
}

func (bv BlockVector) Norm() (n float64) {
	for _, b := range bv.B {
		nb := b.Norm()
		n += nb * nb
	}
	return math.Sqrt(n)
}

// Concat flattens the blocks into a single vector; Split is the inverse.
func (bv BlockVector) Concat() utils.Vector {
	return utils.ConcatVectors(bv.B...)
}

func Split(v utils.Vector, dims []int) (R BlockVector) {
	R.B = utils.SplitVector(v, dims)
	return
}
