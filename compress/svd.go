package compress

import (
	"github.com/aurelienfalco/hrank/backend"
	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/kernel"
	"github.com/aurelienfalco/hrank/scalar"
)

// compressSVD implements the full-minimum-dimension SVD strategy: assemble
// the whole block, factor it, and keep the leading k singular triples
// whose tail energy falls below ε² of the total. "Truncated" here is
// historical naming — no truncation happens before the factorization
// itself.
func compressSVD[T scalar.Number](adapter *kernel.Adapter[T], rows, cols *cluster.IndexSet, epsilon float64) (Rk[T], error) {
	m := adapter.Assemble()
	if m.NormSqr() == 0 {
		return NewEmptyRk[T](rows, cols, MethodSvd), nil
	}

	rowsN, colsN := m.Rows(), m.Cols()
	minDim := rowsN
	if colsN < minDim {
		minDim = colsN
	}

	s := make([]float64, minDim)
	u := dense.NewMatrix[T](rowsN, rowsN)
	vt := dense.NewMatrix[T](colsN, colsN)
	if info := backend.For[T]().Gesvd(rowsN, colsN, m.Data(), m.Lda(), s, u.Data(), u.Lda(), vt.Data(), vt.Lda()); info != 0 {
		return Rk[T]{}, &backend.LapackError{Routine: "gesvd", Info: info}
	}

	k := findK(s, epsilon)
	if k == 0 {
		return NewEmptyRk[T](rows, cols, MethodSvd), nil
	}

	a := dense.NewMatrix[T](rowsN, k)
	for j := 0; j < k; j++ {
		sigma := realToScalar[T](s[j])
		for i := 0; i < rowsN; i++ {
			a.Set(i, j, u.At(i, j)*sigma)
		}
	}

	b := dense.NewMatrix[T](colsN, k)
	for j := 0; j < k; j++ {
		for i := 0; i < colsN; i++ {
			// B·ᵗ must equal Vᴴ; vt(j, i) = Vᴴ(j, i) = conj(V(i, j)),
			// which is exactly the B(i, j) the A·Bᵗ convention needs — no
			// extra conjugation here.
			b.Set(i, j, vt.At(j, i))
		}
	}

	return Rk[T]{A: a, B: b, Rows: rows, Cols: cols, Method: MethodSvd}, nil
}

// findK picks the smallest k such that the tail energy ∑_{i>=k} σᵢ² is at
// most ε² times the total energy ∑ σᵢ² — chosen over the equivalent
// per-singular-value ratio test for its direct parallel with the ACA
// family's own running-norm stopping test.
func findK(s []float64, epsilon float64) int {
	total := 0.0
	for _, sigma := range s {
		total += sigma * sigma
	}
	if total == 0 {
		return 0
	}
	threshold := epsilon * epsilon * total
	tail := 0.0
	k := len(s)
	for i := len(s) - 1; i >= 0; i-- {
		next := tail + s[i]*s[i]
		if next > threshold {
			break
		}
		tail = next
		k = i
	}
	return k
}

// realToScalar lifts a float64 magnitude into T, the scalar kind used for
// the factorization's A/B data.
func realToScalar[T scalar.Number](x float64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(x)).(T)
	case float64:
		return any(x).(T)
	case complex64:
		return any(complex(float32(x), 0)).(T)
	case complex128:
		return any(complex(x, 0)).(T)
	default:
		panic("compress: unsupported scalar kind")
	}
}
