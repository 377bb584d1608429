package compress

import (
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/scalar"
)

// updateNormEstimate folds a newly accepted pair (aK, bK) into the running
// Frobenius-norm-squared estimate of the partial factorization, given the
// prior accepted pairs. This is the one routine all three cross-
// approximation variants (ACA-full, ACA-partial, ACA+) share, rather than
// triplicating it.
//
// Every inner product here goes through dense.Vector.Dot, which
// conjugates its receiver — the first argument; swapping the arguments
// would silently flip the sign of the cross term for complex scalar
// kinds.
func updateNormEstimate[T scalar.Number](priorNormSqr float64, aK, bK *dense.Vector[T], priorA, priorB []*dense.Vector[T]) (normSqr, abNormSqr float64) {
	var cross T
	for l := range priorA {
		cross += aK.Dot(priorA[l]) * bK.Dot(priorB[l])
	}
	abNormSqr = aK.NormSqr() * bK.NormSqr()
	normSqr = priorNormSqr + 2*scalar.Real(cross) + abNormSqr
	return normSqr, abNormSqr
}

// stoppingTestMet reports whether the shared stopping criterion
// ‖aₖ‖²·‖bₖ‖² < ε²·‖S_k‖² holds.
func stoppingTestMet(abNormSqr, normSqr, epsilon float64) bool {
	return abNormSqr < epsilon*epsilon*normSqr
}
