// Package scalar holds the four numeric kinds the compression engine is
// specialized over, and the handful of generic helpers (Real, SquaredNorm,
// ConjDot) that every other package builds on.
package scalar

import (
	"math"
	"math/cmplx"
)

// Number is the constraint satisfied by the four scalar kinds the engine
// supports: single/double precision real and complex.
type Number interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// Kind identifies one of the four supported scalar types at runtime, mostly
// for diagnostics and for the debug-dump header's element-size tag.
type Kind int

const (
	KindF32 Kind = iota
	KindF64
	KindC64
	KindC128
)

// String names a Kind for logging.
func (k Kind) String() string {
	switch k {
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindC64:
		return "c64"
	case KindC128:
		return "c128"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind tag for T. It is used where a runtime value is
// needed (e.g. the debug dump header) and T is not known at the call site
// without a type switch.
func KindOf[T Number]() Kind {
	var zero T
	switch any(zero).(type) {
	case float32:
		return KindF32
	case float64:
		return KindF64
	case complex64:
		return KindC64
	case complex128:
		return KindC128
	default:
		panic("scalar: unsupported type")
	}
}

// The engine accumulates in T itself; no separate mixed-precision
// accumulator type is declared. Go has no generically available
// higher-precision complex/float type without pulling in an
// arbitrary-precision dependency, and a Go type alias cannot have its own
// type parameter as its right-hand side.

// Zero, One and MinusOne are generic constants. Go generics do not let a
// type parameter carry literal constants directly, so these are functions
// rather than package-level vars.

// Zero returns the additive identity of T.
func Zero[T Number]() T {
	var z T
	return z
}

// One returns the multiplicative identity of T.
func One[T Number]() T {
	switch any(zeroOf[T]()).(type) {
	case float32:
		return any(float32(1)).(T)
	case float64:
		return any(float64(1)).(T)
	case complex64:
		return any(complex64(1)).(T)
	case complex128:
		return any(complex128(1)).(T)
	default:
		panic("scalar: unsupported type")
	}
}

// MinusOne returns the additive inverse of One.
func MinusOne[T Number]() T {
	return Zero[T]() - One[T]()
}

func zeroOf[T Number]() T {
	var z T
	return z
}

// Real returns the real part of v, which is v itself for the two real
// kinds.
func Real[T Number](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case complex64:
		return float64(real(x))
	case complex128:
		return real(x)
	default:
		panic("scalar: unsupported type")
	}
}

// SquaredNorm returns |v|^2 as a float64: the real-kind path is a plain
// square, the complex-kind path is the magnitude squared (re² + im²), not
// the Euclidean vector norm of a multi-component value.
func SquaredNorm[T Number](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		r := float64(x)
		return r * r
	case float64:
		return x * x
	case complex64:
		c := complex128(x)
		return real(c)*real(c) + imag(c)*imag(c)
	case complex128:
		return real(x)*real(x) + imag(x)*imag(x)
	default:
		panic("scalar: unsupported type")
	}
}

// Abs returns |v| as a float64.
func Abs[T Number](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		if x < 0 {
			return float64(-x)
		}
		return float64(x)
	case float64:
		if x < 0 {
			return -x
		}
		return x
	case complex64:
		return cmplx.Abs(complex128(x))
	case complex128:
		return cmplx.Abs(x)
	default:
		panic("scalar: unsupported type")
	}
}

// Conj returns the complex conjugate of v, the identity for real kinds.
func Conj[T Number](v T) T {
	switch x := any(v).(type) {
	case float32:
		return v
	case float64:
		return v
	case complex64:
		return any(complex64(cmplx.Conj(complex128(x)))).(T)
	case complex128:
		return any(cmplx.Conj(x)).(T)
	default:
		panic("scalar: unsupported type")
	}
}

// IsNaN reports whether v carries a NaN component.
func IsNaN[T Number](v T) bool {
	switch x := any(v).(type) {
	case float32:
		return math.IsNaN(float64(x))
	case float64:
		return math.IsNaN(x)
	case complex64:
		return math.IsNaN(float64(real(x))) || math.IsNaN(float64(imag(x)))
	case complex128:
		return math.IsNaN(real(x)) || math.IsNaN(imag(x))
	default:
		panic("scalar: unsupported type")
	}
}

// ConjDot computes sum_i conj(x_i) * y_i. The conjugate always applies to
// the *first* argument; swapping the arguments silently flips the
// imaginary part of the result for complex kinds, so every call site must
// respect this ordering.
func ConjDot[T Number](x, y []T) T {
	if len(x) != len(y) {
		panic("scalar: ConjDot length mismatch")
	}
	var sum T
	for i := range x {
		sum += Conj(x[i]) * y[i]
	}
	return sum
}
