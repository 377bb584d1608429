package backend_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelienfalco/hrank/backend"
)

func TestGemmAgreesAcrossKinds(t *testing.T) {
	// A = [[1,2],[3,4]], B = [[5,6],[7,8]], column-major.
	a64 := []float64{1, 3, 2, 4}
	b64 := []float64{5, 7, 6, 8}
	c64 := make([]float64, 4)
	backend.For[float64]().Gemm(false, false, 2, 2, 2, 1, a64, 2, b64, 2, 0, c64, 2)
	// Expected: [[19,22],[43,50]] column-major -> {19,43,22,50}
	assert.InDelta(t, 19, c64[0], 1e-9)
	assert.InDelta(t, 43, c64[1], 1e-9)
	assert.InDelta(t, 22, c64[2], 1e-9)
	assert.InDelta(t, 50, c64[3], 1e-9)

	aG := []float32{1, 3, 2, 4}
	bG := []float32{5, 7, 6, 8}
	cG := make([]float32, 4)
	backend.For[float32]().Gemm(false, false, 2, 2, 2, 1, aG, 2, bG, 2, 0, cG, 2)
	assert.InDelta(t, 19, float64(cG[0]), 1e-4)
	assert.InDelta(t, 50, float64(cG[3]), 1e-4)
}

func TestAxpyScalCopyDot(t *testing.T) {
	p := backend.For[float64]()
	x := []float64{1, 2, 3}
	y := []float64{10, 20, 30}
	p.Axpy(3, 2, x, 1, y, 1)
	assert.Equal(t, []float64{12, 24, 36}, y)

	p.Scal(3, 0.5, y, 1)
	assert.Equal(t, []float64{6, 12, 18}, y)

	z := make([]float64, 3)
	p.Copy(3, y, 1, z, 1)
	assert.Equal(t, y, z)

	d := p.Dot(3, x, 1, y, 1)
	assert.InDelta(t, 1*6+2*12+3*18, d, 1e-9)

	assert.Equal(t, 2, p.Iamax(3, y, 1))
}

func TestComplexDotConjugatesFirstArgument(t *testing.T) {
	p := backend.For[complex128]()
	x := []complex128{complex(0, 1)}
	y := []complex128{complex(1, 0)}
	got := p.Dot(1, x, 1, y, 1)
	assert.InDelta(t, 0, real(got), 1e-12)
	assert.InDelta(t, -1, imag(got), 1e-12)
}

func TestGetrfGetrsSolvesLinearSystem(t *testing.T) {
	// A = [[4,3],[6,3]] (column-major: {4,6,3,3}), solve A x = [1, 2]ᵗ.
	a := []float64{4, 6, 3, 3}
	ipiv := make([]int, 2)
	p := backend.For[float64]()
	info := p.Getrf(2, 2, a, 2, ipiv)
	require.Equal(t, 0, info)

	b := []float64{1, 2}
	info = p.Getrs(false, 2, 1, a, 2, ipiv, b, 2)
	require.Equal(t, 0, info)

	// Verify against the original system using a fresh copy of A.
	a2 := []float64{4, 6, 3, 3}
	r0 := a2[0]*b[0] + a2[2]*b[1]
	r1 := a2[1]*b[0] + a2[3]*b[1]
	assert.InDelta(t, 1, r0, 1e-9)
	assert.InDelta(t, 2, r1, 1e-9)
}

func TestGetrfGetrsGenericSolvesFloat32System(t *testing.T) {
	a := []float32{4, 6, 3, 3}
	ipiv := make([]int, 2)
	p := backend.For[float32]()
	require.Equal(t, 0, p.Getrf(2, 2, a, 2, ipiv))

	b := []float32{1, 2}
	require.Equal(t, 0, p.Getrs(false, 2, 1, a, 2, ipiv, b, 2))

	a2 := []float32{4, 6, 3, 3}
	r0 := a2[0]*b[0] + a2[2]*b[1]
	r1 := a2[1]*b[0] + a2[3]*b[1]
	assert.InDelta(t, 1, float64(r0), 1e-4)
	assert.InDelta(t, 2, float64(r1), 1e-4)
}

func TestPotrfLowerReconstructsMatrix(t *testing.T) {
	// A = [[4,2],[2,3]] SPD, column-major {4,2,2,3}.
	a := []float64{4, 2, 2, 3}
	p := backend.For[float64]()
	require.Equal(t, 0, p.Potrf(true, 2, a, 2))
	// L*Lᵗ should reconstruct A.
	l00, l10, l11 := a[0], a[1], a[3]
	assert.InDelta(t, 4, l00*l00, 1e-9)
	assert.InDelta(t, 2, l00*l10, 1e-9)
	assert.InDelta(t, 3, l10*l10+l11*l11, 1e-9)
}

func TestGesvdGenericRecoversSingularValuesOfDiagonalMatrix(t *testing.T) {
	// A = diag(3, 1), already its own SVD up to column scaling.
	a := []complex64{3, 0, 0, 1}
	s := make([]float64, 2)
	u := make([]complex64, 4)
	vt := make([]complex64, 4)
	p := backend.For[complex64]()
	info := p.Gesvd(2, 2, a, 2, s, u, 2, vt, 2)
	require.Equal(t, 0, info)
	assert.InDelta(t, 3, s[0], 1e-3)
	assert.InDelta(t, 1, s[1], 1e-3)
}

func TestGesvdFloat64RectangularShapesMatch(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6} // 3x2, column-major
	s := make([]float64, 2)
	u := make([]float64, 9)
	vt := make([]float64, 4)
	p := backend.For[float64]()
	info := p.Gesvd(3, 2, a, 3, s, u, 3, vt, 2)
	require.Equal(t, 0, info)
	assert.Greater(t, s[0], s[1])
	assert.True(t, s[1] >= -1e-9)
	assert.False(t, math.IsNaN(s[0]))
}

func TestLapackErrorMessage(t *testing.T) {
	err := &backend.LapackError{Routine: "getrf", Info: 3}
	assert.Contains(t, err.Error(), "getrf")
	assert.Contains(t, err.Error(), "3")
}
