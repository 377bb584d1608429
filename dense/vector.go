package dense

import (
	"fmt"

	"github.com/aurelienfalco/hrank/backend"
	"github.com/aurelienfalco/hrank/scalar"
)

// Vector is a dense vector with the same borrowed/owned storage discipline
// as Matrix.
type Vector[T scalar.Number] struct {
	rows int
	data []T
	owns bool
}

// NewVector allocates a zero-initialized, owned vector of length n.
func NewVector[T scalar.Number](n int) *Vector[T] {
	if n < 0 {
		panic("dense: negative vector length")
	}
	return &Vector[T]{rows: n, data: make([]T, n), owns: true}
}

// NewVectorFrom wraps externally owned storage as a borrowed vector.
func NewVectorFrom[T scalar.Number](data []T) *Vector[T] {
	return &Vector[T]{rows: len(data), data: data}
}

func (v *Vector[T]) Rows() int   { return v.rows }
func (v *Vector[T]) Data() []T   { return v.data }
func (v *Vector[T]) Owns() bool  { return v.owns }

func (v *Vector[T]) checkBounds(i int) {
	if i < 0 || i >= v.rows {
		panic(fmt.Sprintf("dense: index %d out of range for vector of length %d", i, v.rows))
	}
}

func (v *Vector[T]) At(i int) T {
	v.checkBounds(i)
	return v.data[i]
}

func (v *Vector[T]) Set(i int, x T) {
	v.checkBounds(i)
	v.data[i] = x
}

// Gemv computes v <- alpha*op(a)*x + beta*v.
func (v *Vector[T]) Gemv(transposeA bool, alpha T, a *Matrix[T], x *Vector[T], beta T) {
	backend.For[T]().Gemv(transposeA, a.rows, a.cols, alpha, a.data, a.lda, x.data, 1, beta, v.data, 1)
}

// Axpy computes v <- v + alpha*x.
func (v *Vector[T]) Axpy(alpha T, x *Vector[T]) {
	if v.rows != x.rows {
		panic("dense: Axpy length mismatch")
	}
	backend.For[T]().Axpy(v.rows, alpha, x.data, 1, v.data, 1)
}

// Dot computes ∑ conj(vᵢ)·xᵢ, conjugating the receiver (the left operand).
func (v *Vector[T]) Dot(x *Vector[T]) T {
	if v.rows != x.rows {
		panic("dense: Dot length mismatch")
	}
	return backend.For[T]().Dot(v.rows, v.data, 1, x.data, 1)
}

// AbsoluteMaxIndex returns the index of the entry of largest modulus.
func (v *Vector[T]) AbsoluteMaxIndex() int {
	return backend.For[T]().Iamax(v.rows, v.data, 1)
}

// NormSqr returns ‖v‖² as a float64.
func (v *Vector[T]) NormSqr() float64 {
	return scalar.Real(backend.For[T]().Dot(v.rows, v.data, 1, v.data, 1))
}

// Scale computes v <- alpha*v.
func (v *Vector[T]) Scale(alpha T) {
	backend.For[T]().Scal(v.rows, alpha, v.data, 1)
}

// Clear zeroes every element.
func (v *Vector[T]) Clear() {
	var zero T
	for i := range v.data {
		v.data[i] = zero
	}
}
