package compress

import (
	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/kernel"
	"github.com/aurelienfalco/hrank/scalar"
)

// compressACAFull implements full adaptive cross approximation: the whole
// block is assembled up front, and each step pivots on the globally
// largest-modulus remaining entry before a rank-1 deflation.
func compressACAFull[T scalar.Number](adapter *kernel.Adapter[T], rows, cols *cluster.IndexSet, epsilon float64, kMax int) (Rk[T], error) {
	m := adapter.Assemble()
	rowsN, colsN := m.Rows(), m.Cols()

	kCap := rowsN
	if colsN < kCap {
		kCap = colsN
	}
	if kMax > 0 && kMax < kCap {
		kCap = kMax
	}

	tmpA := dense.NewMatrix[T](rowsN, kCap)
	tmpB := dense.NewMatrix[T](colsN, kCap)
	priorA := make([]*dense.Vector[T], 0, kCap)
	priorB := make([]*dense.Vector[T], 0, kCap)

	var normSqr float64
	nu := 0
	for nu < kCap {
		iStar, jStar, maxAbs := findMaxEntry(m)
		if maxAbs == 0 {
			break
		}
		delta := m.At(iStar, jStar)

		aVec := dense.NewVector[T](rowsN)
		for i := 0; i < rowsN; i++ {
			aVec.Set(i, m.At(i, jStar))
		}
		bVec := dense.NewVector[T](colsN)
		invDelta := scalar.One[T]() / delta
		for j := 0; j < colsN; j++ {
			bVec.Set(j, m.At(iStar, j)*invDelta)
		}

		for i := 0; i < rowsN; i++ {
			for j := 0; j < colsN; j++ {
				m.Set(i, j, m.At(i, j)-aVec.At(i)*bVec.At(j))
			}
		}

		for i := 0; i < rowsN; i++ {
			tmpA.Set(i, nu, aVec.At(i))
		}
		for j := 0; j < colsN; j++ {
			tmpB.Set(j, nu, bVec.At(j))
		}

		var abNormSqr float64
		normSqr, abNormSqr = updateNormEstimate(normSqr, aVec, bVec, priorA, priorB)
		priorA = append(priorA, aVec)
		priorB = append(priorB, bVec)
		nu++

		if stoppingTestMet(abNormSqr, normSqr, epsilon) {
			break
		}
	}

	if nu == 0 {
		return NewEmptyRk[T](rows, cols, MethodAcaFull), nil
	}

	a := dense.NewMatrix[T](rowsN, nu)
	a.CopyAt(tmpA, 0, 0, rowsN, nu)
	b := dense.NewMatrix[T](colsN, nu)
	b.CopyAt(tmpB, 0, 0, colsN, nu)

	return Rk[T]{A: a, B: b, Rows: rows, Cols: cols, Method: MethodAcaFull}, nil
}

// findMaxEntry scans m for the entry of largest modulus, returning its
// coordinates and the modulus itself.
func findMaxEntry[T scalar.Number](m *dense.Matrix[T]) (iStar, jStar int, maxAbs float64) {
	for j := 0; j < m.Cols(); j++ {
		for i := 0; i < m.Rows(); i++ {
			abs := scalar.Abs(m.At(i, j))
			if abs > maxAbs {
				maxAbs, iStar, jStar = abs, i, j
			}
		}
	}
	return iStar, jStar, maxAbs
}
