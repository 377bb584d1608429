package backend

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/lapack64"
)

// float64Provider wires gonum's blas64/lapack64 packages behind Provider.
// Those packages use row-major General/Symmetric storage (stride spans
// rows), while the dense primitive this package serves is column-major
// (element (i,j) at i+j*ld). Level-1 BLAS calls
// (Axpy/Scal/Copy/Dot/Iamax) operate on flat strided vectors and need no
// conversion; everything touching a blas64.General or blas64.Symmetric
// transposes into a row-major scratch buffer first and copies the result
// back, trading a copy for a implementation that is obviously correct
// rather than a layout trick that would need a test run to trust.
type float64Provider struct{}

func toRowMajor(col []float64, rows, cols, ld int) []float64 {
	row := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[i*cols+j] = col[i+j*ld]
		}
	}
	return row
}

func fromRowMajor(col []float64, ld int, row []float64, rows, cols int) {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			col[i+j*ld] = row[i*cols+j]
		}
	}
}

func transFlag(t bool) blas.Transpose {
	if t {
		return blas.Trans
	}
	return blas.NoTrans
}

func (float64Provider) Gemm(transposeA, transposeB bool, m, n, k int, alpha float64, a []float64, lda int, b []float64, ldb int, beta float64, c []float64, ldc int) {
	ar, ac := m, k
	if transposeA {
		ar, ac = k, m
	}
	br, bc := k, n
	if transposeB {
		br, bc = n, k
	}
	rmA := toRowMajor(a, ar, ac, lda)
	rmB := toRowMajor(b, br, bc, ldb)
	rmC := toRowMajor(c, m, n, ldc)
	blas64.Gemm(transFlag(transposeA), transFlag(transposeB), alpha,
		blas64.General{Rows: ar, Cols: ac, Stride: ac, Data: rmA},
		blas64.General{Rows: br, Cols: bc, Stride: bc, Data: rmB},
		beta, blas64.General{Rows: m, Cols: n, Stride: n, Data: rmC})
	fromRowMajor(c, ldc, rmC, m, n)
}

func (float64Provider) Gemv(transposeA bool, m, n int, alpha float64, a []float64, lda int, x []float64, incX int, beta float64, y []float64, incY int) {
	rmA := toRowMajor(a, m, n, lda)
	blas64.Gemv(transFlag(transposeA), alpha,
		blas64.General{Rows: m, Cols: n, Stride: n, Data: rmA},
		blas64.Vector{N: vecLen(transposeA, m, n, false), Inc: incX, Data: x},
		beta, blas64.Vector{N: vecLen(transposeA, m, n, true), Inc: incY, Data: y})
}

func vecLen(transposeA bool, m, n int, isY bool) int {
	// x has length n, y has length m for op(A)=A; swapped for op(A)=Aᵗ.
	if !transposeA {
		if isY {
			return m
		}
		return n
	}
	if isY {
		return n
	}
	return m
}

func (float64Provider) Trsm(left, upper, transposeA, unitDiag bool, m, n int, alpha float64, a []float64, lda int, b []float64, ldb int) {
	side := blas.Left
	an := m
	if !left {
		side = blas.Right
		an = n
	}
	ul := blas.Lower
	if upper {
		ul = blas.Upper
	}
	diag := blas.NonUnit
	if unitDiag {
		diag = blas.Unit
	}
	rmA := toRowMajor(a, an, an, lda)
	rmB := toRowMajor(b, m, n, ldb)
	blas64.Trsm(side, transFlag(transposeA), alpha,
		blas64.Triangular{Uplo: ul, Diag: diag, N: an, Stride: an, Data: rmA},
		blas64.General{Rows: m, Cols: n, Stride: n, Data: rmB})
	fromRowMajor(b, ldb, rmB, m, n)
}

func (float64Provider) Axpy(n int, alpha float64, x []float64, incX int, y []float64, incY int) {
	blas64.Implementation().Daxpy(n, alpha, x, incX, y, incY)
}

func (float64Provider) Scal(n int, alpha float64, x []float64, incX int) {
	blas64.Implementation().Dscal(n, alpha, x, incX)
}

func (float64Provider) Copy(n int, x []float64, incX int, y []float64, incY int) {
	blas64.Implementation().Dcopy(n, x, incX, y, incY)
}

func (float64Provider) Dot(n int, x []float64, incX int, y []float64, incY int) float64 {
	return blas64.Implementation().Ddot(n, x, incX, y, incY)
}

func (float64Provider) Iamax(n int, x []float64, incX int) int {
	return blas64.Implementation().Idamax(n, x, incX)
}

func (float64Provider) Getrf(m, n int, a []float64, lda int, ipiv []int) int {
	rm := toRowMajor(a, m, n, lda)
	ipiv0 := make([]int, min(m, n))
	ok := lapack64.Getrf(blas64.General{Rows: m, Cols: n, Stride: n, Data: rm}, ipiv0)
	fromRowMajor(a, lda, rm, m, n)
	for i, p := range ipiv0 {
		ipiv[i] = p + 1
	}
	if ok {
		return 0
	}
	// gonum reports only success/failure, not the failing index; report the
	// first exactly-zero pivot on the diagonal of the returned U.
	for i := 0; i < min(m, n); i++ {
		if a[i+i*lda] == 0 {
			return i + 1
		}
	}
	return min(m, n)
}

func (float64Provider) Getri(n int, a []float64, lda int, ipiv []int) int {
	rm := toRowMajor(a, n, n, lda)
	ipiv0 := make([]int, n)
	for i, p := range ipiv {
		ipiv0[i] = p - 1
	}
	work := make([]float64, n*n)
	ok := lapack64.Getri(blas64.General{Rows: n, Cols: n, Stride: n, Data: rm}, ipiv0, work, len(work))
	fromRowMajor(a, lda, rm, n, n)
	if ok {
		return 0
	}
	return n
}

func (float64Provider) Getrs(transpose bool, n, nrhs int, a []float64, lda int, ipiv []int, b []float64, ldb int) int {
	rmA := toRowMajor(a, n, n, lda)
	rmB := toRowMajor(b, n, nrhs, ldb)
	ipiv0 := make([]int, len(ipiv))
	for i, p := range ipiv {
		ipiv0[i] = p - 1
	}
	lapack64.Getrs(transFlag(transpose),
		blas64.General{Rows: n, Cols: n, Stride: n, Data: rmA},
		blas64.General{Rows: n, Cols: nrhs, Stride: nrhs, Data: rmB},
		ipiv0)
	fromRowMajor(b, ldb, rmB, n, nrhs)
	return 0
}

func (float64Provider) Laswp(n int, a []float64, lda int, k1, k2 int, ipiv []int) {
	for k := k1; k <= k2; k++ {
		piv := ipiv[k] - 1
		if piv != k {
			for j := 0; j < n; j++ {
				tmp := a[k+j*lda]
				a[k+j*lda] = a[piv+j*lda]
				a[piv+j*lda] = tmp
			}
		}
	}
}

func (float64Provider) Potrf(lower bool, n int, a []float64, lda int) int {
	uplo := blas.Lower
	if !lower {
		uplo = blas.Upper
	}
	rm := toRowMajor(a, n, n, lda)
	_, ok := lapack64.Potrf(blas64.Symmetric{N: n, Stride: n, Data: rm, Uplo: uplo})
	fromRowMajor(a, lda, rm, n, n)
	if lower {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a[i+j*lda] = 0
			}
		}
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				a[i+j*lda] = 0
			}
		}
	}
	if ok {
		return 0
	}
	return 1
}

func (float64Provider) Gesvd(m, n int, a []float64, lda int, s []float64, u []float64, ldu int, vt []float64, ldvt int) int {
	rmA := toRowMajor(a, m, n, lda)
	rmU := make([]float64, m*m)
	rmVT := make([]float64, n*n)
	work := make([]float64, 10*(m+n)+64)
	ok := lapack64.Gesvd(lapack.SVDAll, lapack.SVDAll,
		blas64.General{Rows: m, Cols: n, Stride: n, Data: rmA},
		blas64.General{Rows: m, Cols: m, Stride: m, Data: rmU},
		blas64.General{Rows: n, Cols: n, Stride: n, Data: rmVT},
		s, work, len(work))
	fromRowMajor(u, ldu, rmU, m, m)
	fromRowMajor(vt, ldvt, rmVT, n, n)
	if ok {
		return 0
	}
	return 1
}
