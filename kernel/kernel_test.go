package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/geometry"
	"github.com/aurelienfalco/hrank/kernel"
)

type denseKernel struct {
	kernel.EntryKernel[float64]
	prepared, released int
}

func newDenseKernel() *denseKernel {
	k := &denseKernel{}
	k.Entry = func(i, j int) float64 { return float64(i*10 + j) }
	return k
}

func (k *denseKernel) PrepareBlock(rows, cols *cluster.IndexSet) kernel.BlockInfo {
	k.prepared++
	return kernel.BlockInfo{Type: kernel.BlockDense}
}
func (k *denseKernel) ReleaseBlock(info kernel.BlockInfo) { k.released++ }

type sparseKernel struct {
	kernel.EntryKernel[float64]
}

func newSparseKernel() sparseKernel {
	k := sparseKernel{}
	k.Entry = func(i, j int) float64 { return 1 }
	return k
}

func (sparseKernel) PrepareBlock(rows, cols *cluster.IndexSet) kernel.BlockInfo {
	return kernel.BlockInfo{
		Type:      kernel.BlockSparse,
		IsNullRow: func(i int) bool { return i == 1 },
	}
}
func (sparseKernel) ReleaseBlock(kernel.BlockInfo) {}

func idx(n int) *cluster.IndexSet {
	indices := make([]int, n)
	coords := make([]geometry.Point3, n)
	for i := range indices {
		indices[i] = i
	}
	return cluster.NewIndexSet(indices, coords)
}

func TestAdapterLifecycle(t *testing.T) {
	k := newDenseKernel()
	rows, cols := idx(2), idx(2)
	a := kernel.NewAdapter[float64](k, rows, cols)
	require.Equal(t, 1, k.prepared)
	a.Close()
	assert.Equal(t, 1, k.released)
}

func TestAdapterAssembleDense(t *testing.T) {
	k := newDenseKernel()
	rows, cols := idx(2), idx(2)
	a := kernel.NewAdapter[float64](k, rows, cols)
	defer a.Close()
	m := a.Assemble()
	assert.Equal(t, 0.0, m.At(0, 0))
	assert.Equal(t, 11.0, m.At(1, 1))
}

func TestAdapterSparseNullRowShortCircuits(t *testing.T) {
	a := kernel.NewAdapter[float64](newSparseKernel(), idx(3), idx(3))
	defer a.Close()
	row := a.GetRow(1)
	for i := 0; i < row.Rows(); i++ {
		assert.Equal(t, 0.0, row.At(i))
	}
	normalRow := a.GetRow(0)
	assert.Equal(t, 1.0, normalRow.At(0))
}

func TestAdapterNullBlockReturnsZeroMatrix(t *testing.T) {
	nk := nullKernel{}
	a := kernel.NewAdapter[float64](nk, idx(2), idx(2))
	defer a.Close()
	assert.True(t, a.IsNull())
	m := a.Assemble()
	assert.Equal(t, 0.0, m.At(0, 0))
	assert.Equal(t, 0.0, m.At(1, 1))
}

type nullKernel struct{}

func (nullKernel) PrepareBlock(rows, cols *cluster.IndexSet) kernel.BlockInfo {
	return kernel.BlockInfo{Type: kernel.BlockNull}
}
func (nullKernel) ReleaseBlock(kernel.BlockInfo) {}
func (nullKernel) GetRow(rows, cols *cluster.IndexSet, info kernel.BlockInfo, i int, out *dense.Vector[float64]) {
	panic("should not be called on a null block")
}
func (nullKernel) GetCol(rows, cols *cluster.IndexSet, info kernel.BlockInfo, j int, out *dense.Vector[float64]) {
	panic("should not be called on a null block")
}
func (nullKernel) Assemble(rows, cols *cluster.IndexSet, info kernel.BlockInfo) *dense.Matrix[float64] {
	panic("should not be called on a null block")
}
