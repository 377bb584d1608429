// Package dense implements the column-major dense matrix and vector
// primitives the compression engine is built on, following a
// borrowed-vs-owned storage discipline and a panic-on-misuse style.
package dense

import (
	"fmt"

	"github.com/aurelienfalco/hrank/backend"
	"github.com/aurelienfalco/hrank/scalar"
)

// Matrix is a column-major dense matrix: element (i, j) lives at offset
// i + j*lda. A Matrix either owns its backing storage or borrows someone
// else's; Owns reports which. Neither kind is freed explicitly in Go.
//
// Optional factorization state (pivots, diagonal, triUpper/triLower) is
// attached by LU/LLT/LDLT and consumed by the solve methods; at most one of
// triUpper/triLower is ever true.
type Matrix[T scalar.Number] struct {
	rows, cols, lda int
	data            []T
	owns            bool

	pivots   []int
	diagonal []T
	triUpper bool
	triLower bool
}

// NewMatrix allocates a zero-initialized, owned rows x cols matrix with
// lda == rows.
func NewMatrix[T scalar.Number](rows, cols int) *Matrix[T] {
	if rows < 0 || cols < 0 {
		panic("dense: negative matrix dimension")
	}
	return &Matrix[T]{rows: rows, cols: cols, lda: rows, data: make([]T, rows*cols), owns: true}
}

// NewMatrixFrom wraps externally owned storage as a borrowed matrix. data
// must have length >= lda*cols (or rows*cols if rows == lda), and is never
// released by this matrix.
func NewMatrixFrom[T scalar.Number](data []T, rows, cols, lda int) *Matrix[T] {
	if lda < rows {
		panic("dense: lda must be >= rows")
	}
	return &Matrix[T]{rows: rows, cols: cols, lda: lda, data: data}
}

func (m *Matrix[T]) Rows() int { return m.rows }
func (m *Matrix[T]) Cols() int { return m.cols }
func (m *Matrix[T]) Lda() int  { return m.lda }
func (m *Matrix[T]) Data() []T { return m.data }
func (m *Matrix[T]) Owns() bool { return m.owns }

func (m *Matrix[T]) checkBounds(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("dense: index (%d,%d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

func (m *Matrix[T]) At(i, j int) T {
	m.checkBounds(i, j)
	return m.data[i+j*m.lda]
}

func (m *Matrix[T]) Set(i, j int, v T) {
	m.checkBounds(i, j)
	m.data[i+j*m.lda] = v
}

// Pivots returns the permutation recorded by LU, or nil if the matrix has
// not been LU-factored.
func (m *Matrix[T]) Pivots() []int { return m.pivots }

// Diagonal returns the separate diagonal vector recorded by LDLT, or nil.
func (m *Matrix[T]) Diagonal() []T { return m.diagonal }

func (m *Matrix[T]) IsUpperTriangular() bool { return m.triUpper }
func (m *Matrix[T]) IsLowerTriangular() bool { return m.triLower }

// Scale multiplies every element (and the diagonal vector, if present) by
// alpha, honoring a non-contiguous lda.
func (m *Matrix[T]) Scale(alpha T) {
	for j := 0; j < m.cols; j++ {
		backend.For[T]().Scal(m.rows, alpha, m.data[j*m.lda:], 1)
	}
	if m.diagonal != nil {
		backend.For[T]().Scal(len(m.diagonal), alpha, m.diagonal, 1)
	}
}

// Transpose returns the transpose of m. For a square matrix this is done
// in place and m is returned; otherwise a new matrix is allocated. Either
// way, triUpper/triLower are swapped on the result.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	if m.rows == m.cols {
		for i := 0; i < m.rows; i++ {
			for j := i + 1; j < m.cols; j++ {
				tmp := m.At(i, j)
				m.Set(i, j, m.At(j, i))
				m.Set(j, i, tmp)
			}
		}
		m.triUpper, m.triLower = m.triLower, m.triUpper
		return m
	}
	out := NewMatrix[T](m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	out.triUpper, out.triLower = m.triLower, m.triUpper
	return out
}

// Gemm computes m <- alpha*op(a)*op(b) + beta*m.
func (m *Matrix[T]) Gemm(transposeA, transposeB bool, alpha T, a, b *Matrix[T], beta T) {
	k := a.cols
	if transposeA {
		k = a.rows
	}
	backend.For[T]().Gemm(transposeA, transposeB, m.rows, m.cols, k, alpha, a.data, a.lda, b.data, b.lda, beta, m.data, m.lda)
}

// Axpy computes m <- m + alpha*a, element-wise; both operands must share
// shape. A fast path is used when both are fully contiguous (lda == rows).
func (m *Matrix[T]) Axpy(alpha T, a *Matrix[T]) {
	if m.rows != a.rows || m.cols != a.cols {
		panic("dense: Axpy shape mismatch")
	}
	if m.lda == m.rows && a.lda == a.rows {
		backend.For[T]().Axpy(m.rows*m.cols, alpha, a.data, 1, m.data, 1)
		return
	}
	for j := 0; j < m.cols; j++ {
		backend.For[T]().Axpy(m.rows, alpha, a.data[j*a.lda:], 1, m.data[j*m.lda:], 1)
	}
}

// NormSqr returns the squared Frobenius norm, using the conjugated dot
// product convention on each column.
func (m *Matrix[T]) NormSqr() float64 {
	var total float64
	for j := 0; j < m.cols; j++ {
		col := m.data[j*m.lda : j*m.lda+m.rows]
		total += scalar.Real(backend.For[T]().Dot(m.rows, col, 1, col, 1))
	}
	return total
}

// LU factorizes m in place as P*m = L*U with partial pivoting, recording
// pivots. Panics if m is not square; this factorization is defined over
// square blocks only.
func (m *Matrix[T]) LU() error {
	if m.rows != m.cols {
		panic("dense: LU requires a square matrix")
	}
	m.pivots = make([]int, m.rows)
	info := backend.For[T]().Getrf(m.rows, m.cols, m.data, m.lda, m.pivots)
	m.triLower, m.triUpper = false, false
	if info != 0 {
		return &backend.LapackError{Routine: "getrf", Info: info}
	}
	return nil
}

// LLT computes the Cholesky factorization m = L*Lᴴ (lower) or m = Uᴴ*U
// (!lower) in place, setting the corresponding triangle flag.
func (m *Matrix[T]) LLT(lower bool) error {
	if m.rows != m.cols {
		panic("dense: LLT requires a square matrix")
	}
	info := backend.For[T]().Potrf(lower, m.rows, m.data, m.lda)
	m.triLower, m.triUpper = lower, !lower
	if info != 0 {
		return &backend.LapackError{Routine: "potrf", Info: info}
	}
	return nil
}

// LDLT computes a non-pivoted LDLᴴ factorization in place: the unit-lower
// triangle overwrites the strict lower triangle of m (diagonal forced to
// one), and the diagonal is split out into its own vector. This is
// hand-rolled, since no backend.Provider routine covers it.
func (m *Matrix[T]) LDLT() error {
	if m.rows != m.cols {
		panic("dense: LDLT requires a square matrix")
	}
	n := m.rows
	d := make([]T, n)
	for j := 0; j < n; j++ {
		var sum T
		for k := 0; k < j; k++ {
			ljk := m.At(j, k)
			sum += ljk * scalar.Conj(ljk) * d[k]
		}
		djj := m.At(j, j) - sum
		if scalar.Abs(djj) == 0 {
			return &backend.LapackError{Routine: "ldlt", Info: j + 1}
		}
		d[j] = djj
		for i := j + 1; i < n; i++ {
			var s T
			for k := 0; k < j; k++ {
				s += m.At(i, k) * scalar.Conj(m.At(j, k)) * d[k]
			}
			m.Set(i, j, (m.At(i, j)-s)/djj)
		}
	}
	for j := 0; j < n; j++ {
		m.Set(j, j, scalar.One[T]())
		for k := j + 1; k < n; k++ {
			m.Set(j, k, scalar.Zero[T]())
		}
	}
	m.diagonal = d
	m.triLower = true
	m.triUpper = false
	return nil
}

// SolveLowerLeft applies m's recorded pivots to x (if any), then solves
// L*y = x in place via a triangular solve, treating m's stored lower
// triangle as L (unit diagonal if unit is true).
func (m *Matrix[T]) SolveLowerLeft(x *Matrix[T], unit bool) {
	if m.pivots != nil {
		backend.For[T]().Laswp(x.cols, x.data, x.lda, 0, len(m.pivots)-1, m.pivots)
	}
	backend.For[T]().Trsm(true, false, false, unit, x.rows, x.cols, scalar.One[T](), m.data, m.lda, x.data, x.lda)
}

// SolveUpperRight back-substitutes x*U = x in place, where U is m's stored
// upper triangle, or (if lowerStored) the transpose of m's stored lower
// triangle.
func (m *Matrix[T]) SolveUpperRight(x *Matrix[T], unit bool, lowerStored bool) {
	backend.For[T]().Trsm(false, !lowerStored, lowerStored, unit, x.rows, x.cols, scalar.One[T](), m.data, m.lda, x.data, x.lda)
}

// Inverse returns a freshly allocated matrix holding m's inverse, computed
// via LU factorization followed by a LAPACK-style Getri.
func (m *Matrix[T]) Inverse() (*Matrix[T], error) {
	if m.rows != m.cols {
		panic("dense: Inverse requires a square matrix")
	}
	out := copyReshaped(m)
	pivots := make([]int, m.rows)
	if info := backend.For[T]().Getrf(m.rows, m.rows, out.data, out.lda, pivots); info != 0 {
		return nil, &backend.LapackError{Routine: "getrf", Info: info}
	}
	if info := backend.For[T]().Getri(m.rows, out.data, out.lda, pivots); info != 0 {
		return nil, &backend.LapackError{Routine: "getri", Info: info}
	}
	return out, nil
}

func copyReshaped[T scalar.Number](m *Matrix[T]) *Matrix[T] {
	out := NewMatrix[T](m.rows, m.cols)
	for j := 0; j < m.cols; j++ {
		copy(out.data[j*out.lda:j*out.lda+m.rows], m.data[j*m.lda:j*m.lda+m.rows])
	}
	return out
}

// CopyAt copies a's top-left rows x cols submatrix (or all of a, if rows/
// cols are omitted via CopyAtFull) into m starting at (r, c). A fast
// memcpy-equivalent path is used when both sides are contiguous columns of
// identical height.
func (m *Matrix[T]) CopyAt(a *Matrix[T], r, c, rows, cols int) {
	if r+rows > m.rows || c+cols > m.cols {
		panic("dense: CopyAt destination out of range")
	}
	for j := 0; j < cols; j++ {
		if m.rows == rows && a.rows == rows {
			copy(m.data[(c+j)*m.lda+r:(c+j)*m.lda+r+rows], a.data[j*a.lda:j*a.lda+rows])
			continue
		}
		for i := 0; i < rows; i++ {
			m.Set(r+i, c+j, a.At(i, j))
		}
	}
}

// CopyAtFull copies all of a into m at (r, c).
func (m *Matrix[T]) CopyAtFull(a *Matrix[T], r, c int) {
	m.CopyAt(a, r, c, a.rows, a.cols)
}
