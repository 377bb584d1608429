// Package compress implements the block compression engine: four
// algorithms (SVD, ACA-full, ACA-partial, ACA+) that reduce a dense kernel
// block to a low-rank factorization.
package compress

// Method tags which compression strategy produced (or should produce) an
// Rk factorization.
type Method int

const (
	MethodNone Method = iota
	MethodSvd
	MethodAcaFull
	MethodAcaPartial
	MethodAcaPlus
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodSvd:
		return "svd"
	case MethodAcaFull:
		return "aca_full"
	case MethodAcaPartial:
		return "aca_partial"
	case MethodAcaPlus:
		return "aca_plus"
	default:
		return "unknown"
	}
}

// IsFullMatrixBased reports whether m requires assembling the full dense
// block up front (Svd, AcaFull), as opposed to sampling rows/columns on
// demand (AcaPartial, AcaPlus).
func (m Method) IsFullMatrixBased() bool {
	return m == MethodSvd || m == MethodAcaFull
}
