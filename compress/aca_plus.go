package compress

import (
	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/kernel"
	"github.com/aurelienfalco/hrank/scalar"
)

// compressACAPlus implements ACA+: a reference row and reference column
// are maintained and refreshed across iterations to pick pivots more
// robustly than plain partial ACA.
func compressACAPlus[T scalar.Number](adapter *kernel.Adapter[T], rows, cols *cluster.IndexSet, epsilon float64, kMax int) (Rk[T], error) {
	rowsN, colsN := rows.Size(), cols.Size()

	kCap := rowsN
	if colsN < kCap {
		kCap = colsN
	}
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

	jRef, aRef, ok := findCol(adapter, colFree, nil, nil)
	if !ok {
		return NewEmptyRk[T](rows, cols, MethodAcaPlus), nil
	}
	iRef, bRef, ok := findMinRow(adapter, aRef, rowFree, nil, nil)
	if !ok {
		return NewEmptyRk[T](rows, cols, MethodAcaPlus), nil
	}

	var normSqr float64
	k := 0

outer:
	for k < kCap {
		iStar := argmaxAll(aRef)
		jStar := argmaxAll(bRef)

		var aVec, bVec *dense.Vector[T]
		if scalar.SquaredNorm(aRef.At(iStar)) > scalar.SquaredNorm(bRef.At(jStar)) {
			bVec = adapter.GetRow(iStar)
			deflateRow(bVec, iStar, aCols, bCols)
			jStar = argmaxAll(bVec)
			pivot := bVec.At(jStar)
			if pivot == scalar.Zero[T]() {
				panic("compress: ACA+ pivot is zero")
			}
			aVec = adapter.GetCol(jStar)
			deflateCol(aVec, jStar, aCols, bCols)
			aVec.Scale(scalar.One[T]() / pivot)
		} else {
			aVec = adapter.GetCol(jStar)
			deflateCol(aVec, jStar, aCols, bCols)
			iStar = argmaxAll(aVec)
			pivot := aVec.At(iStar)
			if pivot == scalar.Zero[T]() {
				panic("compress: ACA+ pivot is zero")
			}
			bVec = adapter.GetRow(iStar)
			deflateRow(bVec, iStar, aCols, bCols)
			bVec.Scale(scalar.One[T]() / pivot)
		}

		rowFree[iStar] = false
		colFree[jStar] = false

		var abNormSqr float64
		normSqr, abNormSqr = updateNormEstimate(normSqr, aVec, bVec, aCols, bCols)
		aCols = append(aCols, aVec)
		bCols = append(bCols, bVec)
		k++

		if stoppingTestMet(abNormSqr, normSqr, epsilon) {
			break
		}

		aRef.Axpy(-bVec.At(jRef), aVec)
		bRef.Axpy(-aVec.At(iRef), bVec)

		needNewA := aRef.NormSqr() == 0 || jStar == jRef
		needNewB := bRef.NormSqr() == 0 || iStar == iRef

		switch {
		case needNewA && needNewB:
			newJRef, newARef, ok := findCol(adapter, colFree, aCols, bCols)
			if !ok {
				break outer
			}
			jRef, aRef = newJRef, newARef
			newIRef, newBRef, ok := findMinRow(adapter, aRef, rowFree, aCols, bCols)
			if !ok {
				break outer
			}
			iRef, bRef = newIRef, newBRef
		case needNewB:
			newIRef, newBRef, ok := findMinRow(adapter, aRef, rowFree, aCols, bCols)
			if !ok {
				break outer
			}
			iRef, bRef = newIRef, newBRef
		case needNewA:
			newJRef, newARef, ok := findMinCol(adapter, bRef, colFree, aCols, bCols)
			if !ok {
				break outer
			}
			jRef, aRef = newJRef, newARef
		}
	}

	if k == 0 {
		return NewEmptyRk[T](rows, cols, MethodAcaPlus), nil
	}
	return Rk[T]{A: concatCols[T](aCols, rowsN), B: concatCols[T](bCols, colsN), Rows: rows, Cols: cols, Method: MethodAcaPlus}, nil
}

// argmaxAll returns the index of the largest-modulus entry of v, no free
// restriction.
func argmaxAll[T scalar.Number](v *dense.Vector[T]) int {
	best, bestAbs := 0, -1.0
	for i := 0; i < v.Rows(); i++ {
		abs := scalar.Abs(v.At(i))
		if abs > bestAbs {
			bestAbs, best = abs, i
		}
	}
	return best
}

// argminFree returns the index minimizing |v[i]|² among the indices still
// marked free, or -1 if none are free.
func argminFree[T scalar.Number](v *dense.Vector[T], free []bool) int {
	best, bestSqr := -1, 0.0
	for i := 0; i < v.Rows(); i++ {
		if !free[i] {
			continue
		}
		sqr := scalar.SquaredNorm(v.At(i))
		if best < 0 || sqr < bestSqr {
			bestSqr, best = sqr, i
		}
	}
	return best
}

// findCol scans free columns in order, deflating each against the current
// pivot set and marking it visited, until a non-zero column is found. A
// column already marked used (not free) is never returned.
func findCol[T scalar.Number](adapter *kernel.Adapter[T], colFree []bool, priorA, priorB []*dense.Vector[T]) (int, *dense.Vector[T], bool) {
	for j := 0; j < len(colFree); j++ {
		if !colFree[j] {
			continue
		}
		colFree[j] = false
		col := adapter.GetCol(j)
		deflateCol(col, j, priorA, priorB)
		if col.NormSqr() != 0 {
			return j, col, true
		}
	}
	return 0, nil, false
}

// findMinRow repeatedly selects the free row minimizing |aRef[i]|², fetches
// and deflates it, and marks it used, until a non-zero row turns up or the
// free set is exhausted.
func findMinRow[T scalar.Number](adapter *kernel.Adapter[T], aRef *dense.Vector[T], rowFree []bool, priorA, priorB []*dense.Vector[T]) (int, *dense.Vector[T], bool) {
	for {
		i := argminFree(aRef, rowFree)
		if i < 0 {
			return 0, nil, false
		}
		rowFree[i] = false
		row := adapter.GetRow(i)
		deflateRow(row, i, priorA, priorB)
		if row.NormSqr() != 0 {
			return i, row, true
		}
	}
}

// findMinCol is the column-axis symmetric counterpart of findMinRow.
func findMinCol[T scalar.Number](adapter *kernel.Adapter[T], bRef *dense.Vector[T], colFree []bool, priorA, priorB []*dense.Vector[T]) (int, *dense.Vector[T], bool) {
	for {
		j := argminFree(bRef, colFree)
		if j < 0 {
			return 0, nil, false
		}
		colFree[j] = false
		col := adapter.GetCol(j)
		deflateCol(col, j, priorA, priorB)
		if col.NormSqr() != 0 {
			return j, col, true
		}
	}
}
