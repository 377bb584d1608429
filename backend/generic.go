package backend

import (
	"math"

	"github.com/aurelienfalco/hrank/scalar"
)

// genericProvider is the hand-rolled implementation used for the three
// scalar kinds gonum's dense linear-algebra packages do not cover
// (float32, complex64, complex128). It hand-rolls Gaussian elimination
// with partial pivoting rather than calling a library, and is kept
// deliberately simple: these blocks are modest-sized dense kernel blocks,
// not the ill-conditioned, huge matrices a production LAPACK replacement
// would need to handle.
type genericProvider[T scalar.Number] struct{}

func at[T scalar.Number](a []T, ld, i, j int) T { return a[i+j*ld] }

func set[T scalar.Number](a []T, ld, i, j int, v T) { a[i+j*ld] = v }

func (genericProvider[T]) Gemm(transposeA, transposeB bool, m, n, k int, alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int) {
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			cij := c[i+j*ldc]
			if beta == scalar.Zero[T]() {
				cij = scalar.Zero[T]()
			} else {
				cij = beta * cij
			}
			var sum T
			for p := 0; p < k; p++ {
				var av, bv T
				if transposeA {
					av = at(a, lda, p, i)
				} else {
					av = at(a, lda, i, p)
				}
				if transposeB {
					bv = at(b, ldb, j, p)
				} else {
					bv = at(b, ldb, p, j)
				}
				sum += av * bv
			}
			c[i+j*ldc] = cij + alpha*sum
		}
	}
}

func (genericProvider[T]) Gemv(transposeA bool, m, n int, alpha T, a []T, lda int, x []T, incX int, beta T, y []T, incY int) {
	rows, cols := m, n
	if transposeA {
		rows, cols = n, m
	}
	for i := 0; i < rows; i++ {
		var sum T
		for j := 0; j < cols; j++ {
			var av T
			if transposeA {
				av = at(a, lda, j, i)
			} else {
				av = at(a, lda, i, j)
			}
			sum += av * x[j*incX]
		}
		yi := y[i*incY]
		if beta == scalar.Zero[T]() {
			yi = scalar.Zero[T]()
		} else {
			yi = beta * yi
		}
		y[i*incY] = yi + alpha*sum
	}
}

func (genericProvider[T]) Trsm(left, upper, transposeA, unitDiag bool, m, n int, alpha T, a []T, lda int, b []T, ldb int) {
	// Both sides are used by the dense primitive: SolveLowerLeft solves on
	// the left, SolveUpperRight on the right. op(a) is effectively lower
	// triangular exactly when upper == transposeA.
	scaleCol := func(col int) {
		for i := 0; i < m; i++ {
			b[i+col*ldb] = alpha * b[i+col*ldb]
		}
	}
	for col := 0; col < n; col++ {
		scaleCol(col)
		if left {
			if upper == transposeA {
				// Effective system is lower triangular: forward substitution.
				for i := 0; i < m; i++ {
					var sum T
					for k := 0; k < i; k++ {
						var aik T
						if transposeA {
							aik = at(a, lda, k, i)
						} else {
							aik = at(a, lda, i, k)
						}
						sum += aik * b[k+col*ldb]
					}
					v := b[i+col*ldb] - sum
					if !unitDiag {
						v /= at(a, lda, i, i)
					}
					b[i+col*ldb] = v
				}
			} else {
				// Effective system is upper triangular: back substitution.
				for i := m - 1; i >= 0; i-- {
					var sum T
					for k := i + 1; k < m; k++ {
						var aik T
						if transposeA {
							aik = at(a, lda, k, i)
						} else {
							aik = at(a, lda, i, k)
						}
						sum += aik * b[k+col*ldb]
					}
					v := b[i+col*ldb] - sum
					if !unitDiag {
						v /= at(a, lda, i, i)
					}
					b[i+col*ldb] = v
				}
			}
		}
	}
	if !left {
		// x*op(A) = alpha*b, solved row by row (b is m x n, a is n x n).
		for row := 0; row < m; row++ {
			if upper == transposeA {
				for j := n - 1; j >= 0; j-- {
					var sum T
					for k := j + 1; k < n; k++ {
						var ajk T
						if transposeA {
							ajk = at(a, lda, j, k)
						} else {
							ajk = at(a, lda, k, j)
						}
						sum += b[row+k*ldb] * ajk
					}
					v := b[row+j*ldb] - sum
					if !unitDiag {
						v /= at(a, lda, j, j)
					}
					b[row+j*ldb] = v
				}
			} else {
				for j := 0; j < n; j++ {
					var sum T
					for k := 0; k < j; k++ {
						var ajk T
						if transposeA {
							ajk = at(a, lda, j, k)
						} else {
							ajk = at(a, lda, k, j)
						}
						sum += b[row+k*ldb] * ajk
					}
					v := b[row+j*ldb] - sum
					if !unitDiag {
						v /= at(a, lda, j, j)
					}
					b[row+j*ldb] = v
				}
			}
		}
	}
}

func (genericProvider[T]) Axpy(n int, alpha T, x []T, incX int, y []T, incY int) {
	for i := 0; i < n; i++ {
		y[i*incY] += alpha * x[i*incX]
	}
}

func (genericProvider[T]) Scal(n int, alpha T, x []T, incX int) {
	for i := 0; i < n; i++ {
		x[i*incX] *= alpha
	}
}

func (genericProvider[T]) Copy(n int, x []T, incX int, y []T, incY int) {
	for i := 0; i < n; i++ {
		y[i*incY] = x[i*incX]
	}
}

func (genericProvider[T]) Dot(n int, x []T, incX int, y []T, incY int) T {
	var sum T
	for i := 0; i < n; i++ {
		sum += scalar.Conj(x[i*incX]) * y[i*incY]
	}
	return sum
}

func (genericProvider[T]) Iamax(n int, x []T, incX int) int {
	best := 0
	bestNorm := scalar.SquaredNorm(x[0])
	for i := 1; i < n; i++ {
		v := scalar.SquaredNorm(x[i*incX])
		if v > bestNorm {
			bestNorm = v
			best = i
		}
	}
	return best
}

func (genericProvider[T]) Getrf(m, n int, a []T, lda int, ipiv []int) int {
	minDim := m
	if n < minDim {
		minDim = n
	}
	for k := 0; k < minDim; k++ {
		maxRow := k
		maxAbs := scalar.Abs(at(a, lda, k, k))
		for i := k + 1; i < m; i++ {
			if v := scalar.Abs(at(a, lda, i, k)); v > maxAbs {
				maxAbs = v
				maxRow = i
			}
		}
		ipiv[k] = maxRow + 1 // LAPACK convention: 1-based row index.
		if maxAbs == 0 {
			return k + 1
		}
		if maxRow != k {
			for j := 0; j < n; j++ {
				tmp := at(a, lda, k, j)
				set(a, lda, k, j, at(a, lda, maxRow, j))
				set(a, lda, maxRow, j, tmp)
			}
		}
		pivot := at(a, lda, k, k)
		for i := k + 1; i < m; i++ {
			factor := at(a, lda, i, k) / pivot
			set(a, lda, i, k, factor)
			for j := k + 1; j < n; j++ {
				set(a, lda, i, j, at(a, lda, i, j)-factor*at(a, lda, k, j))
			}
		}
	}
	return 0
}

func (genericProvider[T]) Getrs(transpose bool, n, nrhs int, a []T, lda int, ipiv []int, b []T, ldb int) int {
	if !transpose {
		// Apply row interchanges to b, in the order Getrf recorded them.
		for k := 0; k < n; k++ {
			piv := ipiv[k] - 1
			if piv != k {
				for j := 0; j < nrhs; j++ {
					tmp := b[k+j*ldb]
					b[k+j*ldb] = b[piv+j*ldb]
					b[piv+j*ldb] = tmp
				}
			}
		}
		// Forward solve Ly = Pb (L unit lower triangular).
		for j := 0; j < nrhs; j++ {
			for i := 0; i < n; i++ {
				var sum T
				for k := 0; k < i; k++ {
					sum += at(a, lda, i, k) * b[k+j*ldb]
				}
				b[i+j*ldb] -= sum
			}
			// Back solve Ux = y.
			for i := n - 1; i >= 0; i-- {
				var sum T
				for k := i + 1; k < n; k++ {
					sum += at(a, lda, i, k) * b[k+j*ldb]
				}
				diag := at(a, lda, i, i)
				if diag == scalar.Zero[T]() {
					return i + 1
				}
				b[i+j*ldb] = (b[i+j*ldb] - sum) / diag
			}
		}
		return 0
	}
	// Transposed system: Aᵗx = b, A = P⁻¹LU so Aᵗ = UᵗLᵗP.
	for j := 0; j < nrhs; j++ {
		// Solve Uᵗz = b (Uᵗ is lower triangular).
		for i := 0; i < n; i++ {
			var sum T
			for k := 0; k < i; k++ {
				sum += at(a, lda, k, i) * b[k+j*ldb]
			}
			diag := at(a, lda, i, i)
			if diag == scalar.Zero[T]() {
				return i + 1
			}
			b[i+j*ldb] = (b[i+j*ldb] - sum) / diag
		}
		// Solve Lᵗw = z (Lᵗ is unit upper triangular).
		for i := n - 1; i >= 0; i-- {
			var sum T
			for k := i + 1; k < n; k++ {
				sum += at(a, lda, k, i) * b[k+j*ldb]
			}
			b[i+j*ldb] -= sum
		}
		// x = Pw: undo the interchanges in reverse order.
		for k := n - 1; k >= 0; k-- {
			piv := ipiv[k] - 1
			if piv != k {
				tmp := b[k+j*ldb]
				b[k+j*ldb] = b[piv+j*ldb]
				b[piv+j*ldb] = tmp
			}
		}
	}
	return 0
}

func (genericProvider[T]) Getri(n int, a []T, lda int, ipiv []int) int {
	p := For[T]()
	inv := make([]T, n*n)
	for j := 0; j < n; j++ {
		rhs := make([]T, n)
		rhs[j] = scalar.One[T]()
		if info := p.Getrs(false, n, 1, a, lda, ipiv, rhs, n); info != 0 {
			return info
		}
		for i := 0; i < n; i++ {
			inv[i+j*n] = rhs[i]
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			set(a, lda, i, j, inv[i+j*n])
		}
	}
	return 0
}

func (genericProvider[T]) Laswp(n int, a []T, lda int, k1, k2 int, ipiv []int) {
	for k := k1; k <= k2; k++ {
		piv := ipiv[k] - 1
		if piv != k {
			for j := 0; j < n; j++ {
				tmp := at(a, lda, k, j)
				set(a, lda, k, j, at(a, lda, piv, j))
				set(a, lda, piv, j, tmp)
			}
		}
	}
}

func (genericProvider[T]) Potrf(lower bool, n int, a []T, lda int) int {
	if lower {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < j; k++ {
				sum += scalar.SquaredNorm(at(a, lda, j, k))
			}
			diag := scalar.Real(at(a, lda, j, j)) - sum
			if diag <= 0 {
				return j + 1
			}
			d := math.Sqrt(diag)
			set(a, lda, j, j, realCast[T](d))
			for i := j + 1; i < n; i++ {
				var s T
				for k := 0; k < j; k++ {
					s += at(a, lda, i, k) * scalar.Conj(at(a, lda, j, k))
				}
				set(a, lda, i, j, (at(a, lda, i, j)-s)/realCast[T](d))
			}
		}
		return 0
	}
	for j := 0; j < n; j++ {
		var sum float64
		for k := 0; k < j; k++ {
			sum += scalar.SquaredNorm(at(a, lda, k, j))
		}
		diag := scalar.Real(at(a, lda, j, j)) - sum
		if diag <= 0 {
			return j + 1
		}
		d := math.Sqrt(diag)
		set(a, lda, j, j, realCast[T](d))
		for i := j + 1; i < n; i++ {
			var s T
			for k := 0; k < j; k++ {
				s += scalar.Conj(at(a, lda, k, j)) * at(a, lda, k, i)
			}
			set(a, lda, j, i, (at(a, lda, j, i)-s)/realCast[T](d))
		}
	}
	return 0
}

func realCast[T scalar.Number](v float64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(v)).(T)
	case float64:
		return any(v).(T)
	case complex64:
		return any(complex(float32(v), 0)).(T)
	case complex128:
		return any(complex(v, 0)).(T)
	default:
		panic("backend: unsupported type")
	}
}
