package compress

import (
	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/scalar"
)

// Rk is a low-rank factorization A*Bᵗ of a block, or the empty (rank-0)
// factorization when A and B are both nil. When present, A.Rows() ==
// Rows.Size(), B.Rows() == Cols.Size(), and A.Cols() == B.Cols() == K().
type Rk[T scalar.Number] struct {
	A, B   *dense.Matrix[T]
	Rows   *cluster.IndexSet
	Cols   *cluster.IndexSet
	Method Method
}

// NewEmptyRk returns the rank-0 factorization for the given index sets.
func NewEmptyRk[T scalar.Number](rows, cols *cluster.IndexSet, method Method) Rk[T] {
	return Rk[T]{Rows: rows, Cols: cols, Method: method}
}

// IsEmpty reports whether this is the rank-0 factorization.
func (r Rk[T]) IsEmpty() bool { return r.A == nil && r.B == nil }

// K returns the rank, 0 for the empty factorization.
func (r Rk[T]) K() int {
	if r.IsEmpty() {
		return 0
	}
	return r.A.Cols()
}

// Evaluate materializes the full rows.Size() x cols.Size() product A*Bᵗ.
func (r Rk[T]) Evaluate() *dense.Matrix[T] {
	rows, cols := r.Rows.Size(), r.Cols.Size()
	out := dense.NewMatrix[T](rows, cols)
	if r.IsEmpty() {
		return out
	}
	bt := r.B.Transpose()
	out.Gemm(false, false, scalar.One[T](), r.A, bt, scalar.Zero[T]())
	return out
}
