package compress_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/compress"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/geometry"
	"github.com/aurelienfalco/hrank/kernel"
	"github.com/aurelienfalco/hrank/scalar"
)

// funcKernel wraps a single-entry evaluation function via kernel.EntryKernel,
// the convenience path for kernels without a bulk row/column formula.
type funcKernel[T scalar.Number] struct {
	kernel.EntryKernel[T]
}

func newFuncKernel[T scalar.Number](fn func(i, j int) T) funcKernel[T] {
	return funcKernel[T]{EntryKernel: kernel.EntryKernel[T]{Entry: fn}}
}

func (k funcKernel[T]) PrepareBlock(rows, cols *cluster.IndexSet) kernel.BlockInfo {
	return kernel.BlockInfo{Type: kernel.BlockDense}
}
func (k funcKernel[T]) ReleaseBlock(kernel.BlockInfo) {}

// rowFormulaKernel implements GetRow/GetCol/Assemble directly from the
// rank-1 formula u⊗v, the way a kernel with a closed-form row expansion
// would, instead of looping entry-by-entry through EntryKernel.
type rowFormulaKernel struct {
	u, v []float64
}

func (k rowFormulaKernel) PrepareBlock(rows, cols *cluster.IndexSet) kernel.BlockInfo {
	return kernel.BlockInfo{Type: kernel.BlockDense}
}
func (k rowFormulaKernel) ReleaseBlock(kernel.BlockInfo) {}

func (k rowFormulaKernel) GetRow(rows, cols *cluster.IndexSet, info kernel.BlockInfo, i int, out *dense.Vector[float64]) {
	for j := 0; j < cols.Size(); j++ {
		out.Set(j, k.u[i]*k.v[j])
	}
}

func (k rowFormulaKernel) GetCol(rows, cols *cluster.IndexSet, info kernel.BlockInfo, j int, out *dense.Vector[float64]) {
	for i := 0; i < rows.Size(); i++ {
		out.Set(i, k.u[i]*k.v[j])
	}
}

func (k rowFormulaKernel) Assemble(rows, cols *cluster.IndexSet, info kernel.BlockInfo) *dense.Matrix[float64] {
	m := dense.NewMatrix[float64](rows.Size(), cols.Size())
	for i := 0; i < rows.Size(); i++ {
		for j := 0; j < cols.Size(); j++ {
			m.Set(i, j, k.u[i]*k.v[j])
		}
	}
	return m
}

func idx(n int) *cluster.IndexSet {
	indices := make([]int, n)
	coords := make([]geometry.Point3, n)
	for i := range indices {
		indices[i] = i
	}
	return cluster.NewIndexSet(indices, coords)
}

func relError(r compress.Rk[float64], m func(i, j int) float64, rows, cols int) float64 {
	diffSqr, mSqr := 0.0, 0.0
	approx := r.Evaluate()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			v := m(i, j)
			mSqr += v * v
			d := v - approx.At(i, j)
			diffSqr += d * d
		}
	}
	if mSqr == 0 {
		return 0
	}
	return math.Sqrt(diffSqr / mSqr)
}

var allMethods = []compress.Method{
	compress.MethodSvd, compress.MethodAcaFull, compress.MethodAcaPartial, compress.MethodAcaPlus,
}

func TestZeroBlockReturnsEmptyRkForAllMethods(t *testing.T) {
	zero := newFuncKernel(func(i, j int) float64 { return 0 })
	rows, cols := idx(8), idx(8)
	for _, method := range allMethods {
		r, err := compress.Compress[float64](method, zero, rows, cols, compress.Params[float64]{Epsilon: 1e-6}, nil)
		require.NoError(t, err)
		assert.Truef(t, r.IsEmpty(), "method %s should yield an empty Rk on a zero block", method)
		assert.Equal(t, method, r.Method)
	}
}

func TestRankOneBlockExactReconstruction(t *testing.T) {
	u := []float64{1, 2, 3, 4, 5, 6}
	v := []float64{1, 2, 3, 4}
	m := func(i, j int) float64 { return u[i] * v[j] }
	k := newFuncKernel(m)
	rows, cols := idx(6), idx(4)

	r, err := compress.Compress[float64](compress.MethodAcaFull, k, rows, cols, compress.Params[float64]{Epsilon: 1e-10}, nil)
	require.NoError(t, err)
	require.False(t, r.IsEmpty())
	assert.Equal(t, 1, r.K())
	assert.LessOrEqual(t, relError(r, m, 6, 4), 1e-8)
}

func TestDecayKernelBlockACAPartial(t *testing.T) {
	m := func(i, j int) float64 { return 1 / (1 + math.Abs(float64(i-j)) + 5) }
	k := newFuncKernel(m)
	rows, cols := idx(10), idx(10)

	r, err := compress.Compress[float64](compress.MethodAcaPartial, k, rows, cols, compress.Params[float64]{Epsilon: 1e-6}, nil)
	require.NoError(t, err)
	require.False(t, r.IsEmpty())
	assert.LessOrEqual(t, r.K(), 10)
	assert.LessOrEqual(t, relError(r, m, 10, 10), 1e-5)
}

func TestEffectiveRankFourBlockAllMethods(t *testing.T) {
	weights := []float64{4, 3, 2, 1}
	m := func(i, j int) float64 {
		total := 0.0
		for r, w := range weights {
			rr := float64(r + 1)
			total += w * math.Sin(float64(i+1)*rr) * math.Cos(float64(j+1)*rr+rr)
		}
		return total
	}
	k := newFuncKernel(m)
	rows, cols := idx(20), idx(20)

	for _, method := range allMethods {
		r, err := compress.Compress[float64](method, k, rows, cols, compress.Params[float64]{Epsilon: 1e-4}, nil)
		require.NoError(t, err)
		require.Falsef(t, r.IsEmpty(), "method %s should find a nonzero-rank factorization", method)
		assert.LessOrEqualf(t, r.K(), 8, "method %s rank", method)
		assert.LessOrEqualf(t, relError(r, m, 20, 20), 1e-2, "method %s relative error", method)
	}
}

func TestACAPartialHandlesEntirelyZeroInitialPivotRow(t *testing.T) {
	u := []float64{0, 2, 3, 4, 5}
	v := []float64{1, 2, 3, 4}
	m := func(i, j int) float64 { return u[i] * v[j] }
	k := newFuncKernel(m)
	rows, cols := idx(5), idx(4)

	r, err := compress.Compress[float64](compress.MethodAcaPartial, k, rows, cols, compress.Params[float64]{Epsilon: 1e-10}, nil)
	require.NoError(t, err)
	require.False(t, r.IsEmpty())
	assert.Equal(t, 1, r.K())
	assert.LessOrEqual(t, relError(r, m, 5, 4), 1e-8)
}

func TestCompressReturnsEmptyRkOnNullBlock(t *testing.T) {
	nk := nullFuncKernel{}
	rows, cols := idx(4), idx(4)
	r, err := compress.Compress[float64](compress.MethodAcaPlus, nk, rows, cols, compress.Params[float64]{Epsilon: 1e-6}, nil)
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())
}

type nullFuncKernel struct{}

func (nullFuncKernel) PrepareBlock(rows, cols *cluster.IndexSet) kernel.BlockInfo {
	return kernel.BlockInfo{Type: kernel.BlockNull}
}
func (nullFuncKernel) ReleaseBlock(kernel.BlockInfo) {}

func (nullFuncKernel) GetRow(rows, cols *cluster.IndexSet, info kernel.BlockInfo, i int, out *dense.Vector[float64]) {
	panic("should not be called on a null block")
}
func (nullFuncKernel) GetCol(rows, cols *cluster.IndexSet, info kernel.BlockInfo, j int, out *dense.Vector[float64]) {
	panic("should not be called on a null block")
}
func (nullFuncKernel) Assemble(rows, cols *cluster.IndexSet, info kernel.BlockInfo) *dense.Matrix[float64] {
	panic("should not be called on a null block")
}

func TestRowFormulaKernelBypassesEntryLooping(t *testing.T) {
	u := []float64{1, 2, 3, 4, 5, 6}
	v := []float64{1, 2, 3, 4}
	k := rowFormulaKernel{u: u, v: v}
	rows, cols := idx(6), idx(4)

	r, err := compress.Compress[float64](compress.MethodAcaFull, k, rows, cols, compress.Params[float64]{Epsilon: 1e-10}, nil)
	require.NoError(t, err)
	require.False(t, r.IsEmpty())
	assert.Equal(t, 1, r.K())
	m := func(i, j int) float64 { return u[i] * v[j] }
	assert.LessOrEqual(t, relError(r, m, 6, 4), 1e-8)
}
