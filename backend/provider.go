// Package backend is the BLAS/LAPACK-equivalent boundary the rest of this
// module treats as "assumed available" and out of scope for the core
// compression logic. This module still has to run end to end, so this
// package supplies a concrete implementation: a gonum-backed path for
// float64 (the one kind gonum's dense linear-algebra packages cover) and
// a hand-rolled generic path, written in a manual linear-algebra idiom,
// for the other three scalar kinds.
package backend

import (
	"fmt"

	"github.com/aurelienfalco/hrank/scalar"
)

// LapackError reports a non-zero LAPACK-style info code from a
// factorization routine; it propagates up through compress unchanged.
type LapackError struct {
	Routine string
	Info    int
}

func (e *LapackError) Error() string {
	return fmt.Sprintf("backend: %s failed with info=%d", e.Routine, e.Info)
}

// Provider is the operation set this module needs from a BLAS/LAPACK
// boundary: gemm, gemv, trsm, axpy, scal, copy, dot/dotc, i_amax, getrf,
// getri, getrs, laswp, potrf, gesvd. All matrix/vector
// arguments are flat column-major slices, matching the dense primitive's
// storage layout (element (i, j) at offset i + j*ld).
type Provider[T scalar.Number] interface {
	// Gemm computes c <- alpha*op(a)*op(b) + beta*c, with op(x) = x or xᵗ
	// (transposeA/transposeB), over an m x k by k x n product.
	Gemm(transposeA, transposeB bool, m, n, k int, alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int)

	// Gemv computes y <- alpha*op(a)*x + beta*y.
	Gemv(transposeA bool, m, n int, alpha T, a []T, lda int, x []T, incX int, beta T, y []T, incY int)

	// Trsm solves op(a)*x = alpha*b (side == left) or x*op(a) = alpha*b
	// (side == right) for triangular a, overwriting b with x.
	Trsm(left, upper, transposeA, unitDiag bool, m, n int, alpha T, a []T, lda int, b []T, ldb int)

	// Axpy computes y <- alpha*x + y.
	Axpy(n int, alpha T, x []T, incX int, y []T, incY int)

	// Scal computes x <- alpha*x.
	Scal(n int, alpha T, x []T, incX int)

	// Copy copies x into y.
	Copy(n int, x []T, incX int, y []T, incY int)

	// Dot computes sum_i conj(x_i)*y_i, honoring the conjugate-first-argument
	// convention used throughout this module for complex kinds (identical
	// to a plain dot product for the two real kinds).
	Dot(n int, x []T, incX int, y []T, incY int) T

	// Iamax returns the index of the entry of largest modulus.
	Iamax(n int, x []T, incX int) int

	// Getrf factorizes a (m x n, column-major, leading dimension lda)
	// in place as P*A = L*U with partial pivoting. ipiv has length
	// min(m,n); ipiv[i] is the (1-based, LAPACK convention) row that row i
	// was swapped with. info != 0 indicates an exactly-zero pivot at
	// column info (1-based); U is still returned, singular.
	Getrf(m, n int, a []T, lda int, ipiv []int) (info int)

	// Getri computes the inverse of a from its Getrf factorization.
	Getri(n int, a []T, lda int, ipiv []int) (info int)

	// Getrs solves op(a)*x = b using a's Getrf factorization, overwriting
	// b (n x nrhs, leading dimension ldb) with the solution.
	Getrs(transpose bool, n, nrhs int, a []T, lda int, ipiv []int, b []T, ldb int) (info int)

	// Laswp applies the row interchanges described by ipiv[k1:k2+1] to the
	// rows of a (n columns, leading dimension lda), in the order recorded
	// by Getrf.
	Laswp(n int, a []T, lda int, k1, k2 int, ipiv []int)

	// Potrf computes the Cholesky factorization a = L*Lᴴ (lower=true) or
	// a = Uᴴ*U (lower=false) of the Hermitian positive-definite a (n x n),
	// in place; info != 0 at the (1-based) leading minor that is not
	// positive definite.
	Potrf(lower bool, n int, a []T, lda int) (info int)

	// Gesvd computes the full SVD a = U*Sigma*Vᴴ of a (m x n). s has
	// length min(m,n); u is m x m; vt is n x n and holds Vᴴ (not V). a is
	// destroyed. info != 0 means the algorithm failed to converge.
	Gesvd(m, n int, a []T, lda int, s []float64, u []T, ldu int, vt []T, ldvt int) (info int)
}

// For returns the Provider for T: the gonum-backed implementation when
// T == float64, the hand-rolled generic implementation otherwise. See
// DESIGN.md for the rationale behind not hand-rolling float64 too.
func For[T scalar.Number]() Provider[T] {
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(float64Provider{}).(Provider[T])
	default:
		return genericProvider[T]{}
	}
}
