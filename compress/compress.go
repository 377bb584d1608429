package compress

import (
	"math"

	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/kernel"
	"github.com/aurelienfalco/hrank/scalar"
)

// Params collects the approximation parameters a Compress call reads.
// This package does not import config itself (config imports compress
// for its Method alias); a caller translates a config.Settings snapshot
// into Params at the call site.
type Params[T scalar.Number] struct {
	Epsilon float64
	KMax    int

	Validate                 bool
	ValidationErrorThreshold float64
	ValidationRerun          bool
	// Dump, if non-nil, is invoked with the assembled block and the
	// evaluated approximation when validation trips the error threshold or
	// finds a NaN in the factors.
	// A caller typically wires this to debugdump.WriteFile; compress does
	// not import debugdump itself, since file I/O for debug matrices is
	// out of this package's scope.
	Dump func(m, approx *dense.Matrix[T])
}

// ValidationLogger is the subset of diag.Logger's surface Compress's
// validation pass needs. Kept as a local interface (rather than importing
// diag directly) to avoid a dependency compress has no other reason to
// carry.
type ValidationLogger interface {
	LogValidationMismatch(method string, k int, relError, threshold float64)
	LogNaN(method string, k int)
}

// Compress dispatches to one of the four compression strategies and, when
// params.Validate is set, runs a validation pass comparing the factored
// result against the assembled block. logger may be nil, in which case
// validation diagnostics are discarded.
func Compress[T scalar.Number](method Method, f kernel.Kernel[T], rows, cols *cluster.IndexSet, params Params[T], logger ValidationLogger) (Rk[T], error) {
	adapter := kernel.NewAdapter[T](f, rows, cols)
	defer adapter.Close()

	if adapter.IsNull() {
		return NewEmptyRk[T](rows, cols, method), nil
	}

	result, err := runMethod(method, adapter, rows, cols, params)
	if err != nil {
		return Rk[T]{}, err
	}

	if !params.Validate {
		return result, nil
	}
	return validate(method, adapter, rows, cols, result, params, logger)
}

func runMethod[T scalar.Number](method Method, adapter *kernel.Adapter[T], rows, cols *cluster.IndexSet, params Params[T]) (Rk[T], error) {
	switch method {
	case MethodNone:
		return NewEmptyRk[T](rows, cols, MethodNone), nil
	case MethodSvd:
		return compressSVD(adapter, rows, cols, params.Epsilon)
	case MethodAcaFull:
		return compressACAFull(adapter, rows, cols, params.Epsilon, params.KMax)
	case MethodAcaPartial:
		return compressACAPartial(adapter, rows, cols, params.Epsilon, params.KMax)
	case MethodAcaPlus:
		return compressACAPlus(adapter, rows, cols, params.Epsilon, params.KMax)
	default:
		panic("compress: unknown method")
	}
}

// validate assembles the full block and the evaluated approximation,
// compares Frobenius norms, and — on a threshold violation — logs a
// diagnostic, optionally dumps both matrices, and optionally re-runs
// compression once more, returning the re-run's result. A NaN anywhere in
// the factors is always fatal, after the optional dump.
func validate[T scalar.Number](method Method, adapter *kernel.Adapter[T], rows, cols *cluster.IndexSet, result Rk[T], params Params[T], logger ValidationLogger) (Rk[T], error) {
	if hasNaN(result) {
		if logger != nil {
			logger.LogNaN(method.String(), result.K())
		}
		if params.Dump != nil {
			params.Dump(adapter.Assemble(), result.Evaluate())
		}
		panic("compress: NaN detected in compressed factors")
	}

	m := adapter.Assemble()
	approx := result.Evaluate()

	mNorm := math.Sqrt(m.NormSqr())
	relError := frobeniusRelativeError(m, approx, mNorm)

	if relError > params.ValidationErrorThreshold {
		if logger != nil {
			logger.LogValidationMismatch(method.String(), result.K(), relError, params.ValidationErrorThreshold)
		}
		if params.Dump != nil {
			params.Dump(m, approx)
		}
		if params.ValidationRerun {
			return runMethod(method, adapter, rows, cols, params)
		}
	}
	return result, nil
}

// frobeniusRelativeError returns ‖m - approx‖_F / mNorm, or 0 if mNorm is
// zero (both sides are then necessarily the zero matrix, by the zero-
// idempotence law).
func frobeniusRelativeError[T scalar.Number](m, approx *dense.Matrix[T], mNorm float64) float64 {
	if mNorm == 0 {
		return 0
	}
	var diffSqr float64
	for j := 0; j < m.Cols(); j++ {
		for i := 0; i < m.Rows(); i++ {
			d := m.At(i, j) - approx.At(i, j)
			diffSqr += scalar.SquaredNorm(d)
		}
	}
	return math.Sqrt(diffSqr) / mNorm
}

func hasNaN[T scalar.Number](r Rk[T]) bool {
	if r.IsEmpty() {
		return false
	}
	return matrixHasNaN(r.A) || matrixHasNaN(r.B)
}

func matrixHasNaN[T scalar.Number](m *dense.Matrix[T]) bool {
	for j := 0; j < m.Cols(); j++ {
		for i := 0; i < m.Rows(); i++ {
			if scalar.IsNaN(m.At(i, j)) {
				return true
			}
		}
	}
	return false
}
