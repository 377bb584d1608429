package backend

import (
	"math"
	"sort"

	"github.com/aurelienfalco/hrank/scalar"
)

// Gesvd for the three hand-rolled kinds is computed via a one-sided Jacobi
// eigendecomposition of the Gram matrix, rather than Golub-Kahan
// bidiagonalization: the classical cyclic Jacobi eigenvalue sweep
// generalizes to Hermitian matrices by exact diagonalization of each
// active 2x2 submatrix, which keeps the complex case as simple as the real
// one (no separate bidiagonal-reduction step per scalar kind).
func (genericProvider[T]) Gesvd(m, n int, a []T, lda int, s []float64, u []T, ldu int, vt []T, ldvt int) int {
	if m >= n {
		sigma, vFull, uPartial, rank := thinSVDTall(a, m, n, lda)
		for i := 0; i < n; i++ {
			s[i] = sigma[i]
		}
		completeOrthonormal(uPartial, m, rank)
		for j := 0; j < m; j++ {
			for i := 0; i < m; i++ {
				set(u, ldu, i, j, uPartial[i+j*m])
			}
		}
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				// vt holds Vᴴ; vFull holds V.
				set(vt, ldvt, i, j, scalar.Conj(vFull[j+i*n]))
			}
		}
		return 0
	}
	// Wide case: SVD(Aᴴ) = Ut*St*VTt, then A = VTtᴴ*St*Utᴴ.
	aT := make([]T, n*m)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			aT[j+i*n] = scalar.Conj(a[i+j*lda])
		}
	}
	sigma, vtFull, utPartial, rank := thinSVDTall(aT, n, m, n)
	for i := 0; i < m; i++ {
		s[i] = sigma[i]
	}
	completeOrthonormal(utPartial, n, rank)
	// U_final = VTtᴴ (m x m), which is Vt itself: vtFull holds Vt's "V"
	// (m x m already, since Aᴴ is n x m with n>=m so its own V has size
	// m x m), copied over unchanged.
	for j := 0; j < m; j++ {
		for i := 0; i < m; i++ {
			set(u, ldu, i, j, vtFull[i+j*m])
		}
	}
	// VT_final = Utᴴ (n x n).
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			set(vt, ldvt, i, j, scalar.Conj(utPartial[j+i*n]))
		}
	}
	return 0
}

// thinSVDTall handles m x n input with m >= n. Returns the n singular
// values (descending), the full n x n V (column-major, flat), an m x m
// partial U (flat, column-major, ld = m; only the first rank columns are
// filled and orthonormal, ready for completeOrthonormal), and rank (count of non-negligible singular
// values).
func thinSVDTall[T scalar.Number](a []T, m, n, lda int) (sigma []float64, v []T, uPartial []T, rank int) {
	gram := make([]T, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for k := 0; k < m; k++ {
				sum += scalar.Conj(at(a, lda, k, i)) * at(a, lda, k, j)
			}
			gram[i+j*n] = sum
		}
	}
	eigvals, eigvecs := hermitianEigen(gram, n)

	sigma = make([]float64, n)
	v = make([]T, n*n)
	tol := 1e-12
	maxEig := 0.0
	for _, e := range eigvals {
		if e > maxEig {
			maxEig = e
		}
	}
	for i := 0; i < n; i++ {
		ev := eigvals[i]
		if ev < 0 {
			ev = 0
		}
		sigma[i] = math.Sqrt(ev)
		for k := 0; k < n; k++ {
			v[k+i*n] = eigvecs[k+i*n]
		}
		if sigma[i] > tol*math.Sqrt(maxEig+1) {
			rank++
		}
	}

	uPartial = make([]T, m*m)
	for i := 0; i < rank; i++ {
		for row := 0; row < m; row++ {
			var sum T
			for k := 0; k < n; k++ {
				sum += at(a, lda, row, k) * v[k+i*n]
			}
			uPartial[row+i*m] = sum / realCast[T](sigma[i])
		}
	}
	return sigma, v, uPartial, rank
}

// hermitianEigen runs a cyclic Jacobi sweep over a Hermitian n x n matrix
// g (flat, column-major, ld = n; destroyed), returning its eigenvalues in
// descending order and the corresponding eigenvectors as columns of a
// fresh n x n matrix.
func hermitianEigen[T scalar.Number](g []T, n int) ([]float64, []T) {
	v := make([]T, n*n)
	for i := 0; i < n; i++ {
		v[i+i*n] = scalar.One[T]()
	}
	const maxSweeps = 60
	for sweep := 0; sweep < maxSweeps; sweep++ {
		offDiag := 0.0
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				offDiag += scalar.SquaredNorm(g[p+q*n])
			}
		}
		if offDiag < 1e-28 {
			break
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				b := g[p+q*n]
				if scalar.SquaredNorm(b) < 1e-30 {
					continue
				}
				aPP := scalar.Real(g[p+p*n])
				aQQ := scalar.Real(g[q+q*n])
				lambda1, lambda2, v1, v2 := jacobi2x2Hermitian(aPP, aQQ, b)

				oldColP := make([]T, n)
				oldColQ := make([]T, n)
				for i := 0; i < n; i++ {
					oldColP[i] = g[i+p*n]
					oldColQ[i] = g[i+q*n]
				}
				for i := 0; i < n; i++ {
					g[i+p*n] = oldColP[i]*v1[0] + oldColQ[i]*v1[1]
					g[i+q*n] = oldColP[i]*v2[0] + oldColQ[i]*v2[1]
				}
				oldRowP := make([]T, n)
				oldRowQ := make([]T, n)
				for j := 0; j < n; j++ {
					oldRowP[j] = g[p+j*n]
					oldRowQ[j] = g[q+j*n]
				}
				for j := 0; j < n; j++ {
					g[p+j*n] = scalar.Conj(v1[0])*oldRowP[j] + scalar.Conj(v1[1])*oldRowQ[j]
					g[q+j*n] = scalar.Conj(v2[0])*oldRowP[j] + scalar.Conj(v2[1])*oldRowQ[j]
				}
				g[p+p*n] = realCast[T](lambda1)
				g[q+q*n] = realCast[T](lambda2)
				g[p+q*n] = scalar.Zero[T]()
				g[q+p*n] = scalar.Zero[T]()

				oldVColP := make([]T, n)
				oldVColQ := make([]T, n)
				for i := 0; i < n; i++ {
					oldVColP[i] = v[i+p*n]
					oldVColQ[i] = v[i+q*n]
				}
				for i := 0; i < n; i++ {
					v[i+p*n] = oldVColP[i]*v1[0] + oldVColQ[i]*v1[1]
					v[i+q*n] = oldVColP[i]*v2[0] + oldVColQ[i]*v2[1]
				}
			}
		}
	}

	eigvals := make([]float64, n)
	for i := 0; i < n; i++ {
		eigvals[i] = scalar.Real(g[i+i*n])
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return eigvals[order[a]] > eigvals[order[b]] })

	sortedVals := make([]float64, n)
	sortedVecs := make([]T, n*n)
	for newPos, oldPos := range order {
		sortedVals[newPos] = eigvals[oldPos]
		for i := 0; i < n; i++ {
			sortedVecs[i+newPos*n] = v[i+oldPos*n]
		}
	}
	return sortedVals, sortedVecs
}

// jacobi2x2Hermitian exactly diagonalizes the Hermitian 2x2 matrix
// [[a, b], [conj(b), d]], returning its eigenvalues (lambda1 >= lambda2)
// and an orthonormal pair of eigenvectors (2-element each).
func jacobi2x2Hermitian[T scalar.Number](a, d float64, b T) (lambda1, lambda2 float64, v1, v2 [2]T) {
	absB := scalar.Abs(b)
	mid := (a + d) / 2
	half := (a - d) / 2
	r := math.Sqrt(half*half + absB*absB)
	lambda1 = mid + r
	lambda2 = mid - r

	if absB < 1e-300 {
		if a >= d {
			v1 = [2]T{scalar.One[T](), scalar.Zero[T]()}
			v2 = [2]T{scalar.Zero[T](), scalar.One[T]()}
		} else {
			lambda1, lambda2 = lambda2, lambda1
			v1 = [2]T{scalar.Zero[T](), scalar.One[T]()}
			v2 = [2]T{scalar.One[T](), scalar.Zero[T]()}
		}
		return
	}

	y1 := (realCast[T](lambda1) - realCast[T](a)) / b
	n1 := math.Sqrt(1 + scalar.SquaredNorm(y1))
	v1 = [2]T{scalar.One[T]() / realCast[T](n1), y1 / realCast[T](n1)}
	// v2 orthogonal to v1: (-conj(y1), 1) normalized.
	v2raw0 := scalar.MinusOne[T]() * scalar.Conj(y1)
	n2 := math.Sqrt(1 + scalar.SquaredNorm(y1))
	v2 = [2]T{v2raw0 / realCast[T](n2), scalar.One[T]() / realCast[T](n2)}
	return
}

// completeOrthonormal extends the first rank columns of an m x m
// (flat, column-major, ld = m) matrix — already orthonormal — to a full
// orthonormal basis, via Gram-Schmidt against the standard basis.
func completeOrthonormal[T scalar.Number](u []T, m, rank int) {
	col := rank
	for e := 0; e < m && col < m; e++ {
		cand := make([]T, m)
		cand[e] = scalar.One[T]()
		for k := 0; k < col; k++ {
			var proj T
			for i := 0; i < m; i++ {
				proj += scalar.Conj(u[i+k*m]) * cand[i]
			}
			for i := 0; i < m; i++ {
				cand[i] -= proj * u[i+k*m]
			}
		}
		norm := 0.0
		for i := 0; i < m; i++ {
			norm += scalar.SquaredNorm(cand[i])
		}
		if norm < 1e-20 {
			continue
		}
		normT := realCast[T](math.Sqrt(norm))
		for i := 0; i < m; i++ {
			u[i+col*m] = cand[i] / normT
		}
		col++
	}
}
