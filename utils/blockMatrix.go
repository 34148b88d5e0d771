package utils

import (
	"bytes"
	"fmt"
)

// BlockMatrix is a Nr x Nc arrangement of sub-matrices with fixed per-row
// and per-column dimensions. Cells left unset stay empty and flatten to
// zeros, which is how absent coupling blocks are represented.
type BlockMatrix struct {
	M                [][]Matrix
	Nr, Nc           int
	RowDims, ColDims []int
}

func NewBlockMatrix(rowDims, colDims []int) (R BlockMatrix) {
	R = BlockMatrix{
		Nr:      len(rowDims),
		Nc:      len(colDims),
		RowDims: rowDims,
		ColDims: colDims,
	}
	R.M = make([][]Matrix, R.Nr)
	for n := range R.M {
		R.M[n] = make([]Matrix, R.Nc)
	}
	return R
}

func (bm BlockMatrix) Set(i, j int, A Matrix) {
	var (
		nr, nc = A.Dims()
	)
	if nr != bm.RowDims[i] || nc != bm.ColDims[j] {
		panic(fmt.Errorf("block [%d:%d] must be [%d,%d], is [%d,%d]",
			i, j, bm.RowDims[i], bm.ColDims[j], nr, nc))
	}
	bm.M[i][j] = A
}

func (bm BlockMatrix) TotalDims() (nr, nc int) {
	for _, d := range bm.RowDims {
		nr += d
	}
	for _, d := range bm.ColDims {
		nc += d
	}
	return
}

// Flatten assembles the block structure into a single dense Matrix.
func (bm BlockMatrix) Flatten() (R Matrix) {
	var (
		nr, nc = bm.TotalDims()
	)
	R = NewMatrix(nr, nc)
	if nr == 0 || nc == 0 {
		return
	}
	rowOfs := 0
	for i := 0; i < bm.Nr; i++ {
		colOfs := 0
		for j := 0; j < bm.Nc; j++ {
			if !bm.M[i][j].IsEmpty() {
				A := bm.M[i][j]
				for ii := 0; ii < bm.RowDims[i]; ii++ {
					for jj := 0; jj < bm.ColDims[j]; jj++ {
						R.DataP[(rowOfs+ii)*nc+colOfs+jj] = A.DataP[ii*bm.ColDims[j]+jj]
					}
				}
			}
			colOfs += bm.ColDims[j]
		}
		rowOfs += bm.RowDims[i]
	}
	return
}

func (bm BlockMatrix) Print() (out string) {
	buf := bytes.Buffer{}
	for n, row := range bm.M {
		for m, cell := range row {
			label := fmt.Sprintf("[%d:%d]", n, m)
			if cell.IsEmpty() {
				buf.WriteString(label + " nil ")
			} else {
				buf.WriteString(cell.Print(label))
			}
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
