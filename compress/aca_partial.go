package compress

import (
	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/kernel"
	"github.com/aurelienfalco/hrank/scalar"
)

// compressACAPartial implements partial adaptive cross approximation:
// rows and columns are sampled on demand through the kernel adapter, with
// no full assembly of the block.
func compressACAPartial[T scalar.Number](adapter *kernel.Adapter[T], rows, cols *cluster.IndexSet, epsilon float64, kMax int) (Rk[T], error) {
	rowsN, colsN := rows.Size(), cols.Size()

	minRC := rowsN
	if colsN < minRC {
		minRC = colsN
	}
	kCap := minRC
	if kMax > 0 && kMax < kCap {
		kCap = kMax
	}

	rowFree := make([]bool, rowsN)
	colFree := make([]bool, colsN)
	for i := range rowFree {
		rowFree[i] = true
	}
	for j := range colFree {
		colFree[j] = true
	}

	aCols := make([]*dense.Vector[T], 0, kCap)
	bCols := make([]*dense.Vector[T], 0, kCap)

	var normSqr float64
	I := 0
	rowPivotCount := 0
	k := 0

	for rowPivotCount < minRC && k < kCap {
		bCol := adapter.GetRow(I)
		deflateRow(bCol, I, aCols, bCols)

		rowFree[I] = false
		rowPivotCount++

		J := argmaxFree(bCol, colFree)
		if J < 0 || scalar.Abs(bCol.At(J)) == 0 {
			// Deliberately reproduced rather than normalized away: the
			// freshly fetched row is discarded without contributing a
			// pivot, and the next free row is tried at the top of the
			// loop.
			next, ok := firstFree(rowFree)
			if !ok {
				break
			}
			I = next
			continue
		}

		pivot := bCol.At(J)
		bCol.Scale(scalar.One[T]() / pivot)
		bCols = append(bCols, bCol)

		aCol := adapter.GetCol(J)
		deflateCol(aCol, J, aCols, bCols[:len(bCols)-1])
		colFree[J] = false
		aCols = append(aCols, aCol)
		k++

		var abNormSqr float64
		normSqr, abNormSqr = updateNormEstimate(normSqr, aCol, bCol, aCols[:len(aCols)-1], bCols[:len(bCols)-1])
		if stoppingTestMet(abNormSqr, normSqr, epsilon) {
			break
		}

		next := argmaxFree(aCol, rowFree)
		if next < 0 {
			break
		}
		I = next
	}

	if k == 0 {
		return NewEmptyRk[T](rows, cols, MethodAcaPartial), nil
	}
	return Rk[T]{A: concatCols[T](aCols, rowsN), B: concatCols[T](bCols, colsN), Rows: rows, Cols: cols, Method: MethodAcaPartial}, nil
}

// deflateRow subtracts ∑_l aₗ[i]·bₗ from v in place, where v is a freshly
// fetched row i.
func deflateRow[T scalar.Number](v *dense.Vector[T], i int, priorA, priorB []*dense.Vector[T]) {
	for l := range priorA {
		coeff := priorA[l].At(i)
		if coeff == scalar.Zero[T]() {
			continue
		}
		v.Axpy(-coeff, priorB[l])
	}
}

// deflateCol subtracts ∑_l bₗ[j]·aₗ from v in place, where v is a freshly
// fetched column j.
func deflateCol[T scalar.Number](v *dense.Vector[T], j int, priorA, priorB []*dense.Vector[T]) {
	for l := range priorB {
		coeff := priorB[l].At(j)
		if coeff == scalar.Zero[T]() {
			continue
		}
		v.Axpy(-coeff, priorA[l])
	}
}

// argmaxFree returns the index of the largest-modulus entry of v among
// the indices still marked free, or -1 if none are free.
func argmaxFree[T scalar.Number](v *dense.Vector[T], free []bool) int {
	best, bestAbs := -1, -1.0
	for i := 0; i < v.Rows(); i++ {
		if !free[i] {
			continue
		}
		abs := scalar.Abs(v.At(i))
		if abs > bestAbs {
			bestAbs, best = abs, i
		}
	}
	return best
}

// firstFree returns the smallest index still marked free.
func firstFree(free []bool) (int, bool) {
	for i, f := range free {
		if f {
			return i, true
		}
	}
	return 0, false
}

// concatCols stacks a list of length-n vectors side by side into an n x
// len(vs) matrix.
func concatCols[T scalar.Number](vs []*dense.Vector[T], n int) *dense.Matrix[T] {
	m := dense.NewMatrix[T](n, len(vs))
	for col, v := range vs {
		for i := 0; i < n; i++ {
			m.Set(i, col, v.At(i))
		}
	}
	return m
}
