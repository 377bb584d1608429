// Package kernel defines the user-supplied kernel contract and the scoped
// adapter the compression engine assembles blocks through.
package kernel

import (
	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/scalar"
)

// BlockType hints how a block should be handled before it is assembled.
type BlockType int

const (
	BlockDense BlockType = iota
	BlockSparse
	BlockNull
)

// BlockInfo carries block-type hints and, for sparse blocks, a
// null-predicate per index. Prepared once at block start and released once
// at block end (scoped acquisition).
type BlockInfo struct {
	Type      BlockType
	IsNullRow func(i int) bool
	IsNullCol func(j int) bool
	Payload   any
}

// Kernel is the user-supplied entry point the compression engine pulls
// matrix rows, columns and whole blocks from. A kernel with a closed-form
// row or column expansion (a boundary-integral kernel, say) computes the
// whole row or column in one call here instead of being driven
// element-by-element through a virtual call; EntryKernel is provided for
// the simpler case where only a single-entry evaluation is available.
type Kernel[T scalar.Number] interface {
	PrepareBlock(rows, cols *cluster.IndexSet) BlockInfo
	ReleaseBlock(info BlockInfo)

	// GetRow fills out (length cols.Size()) with block row i, in local
	// block coordinates (0 <= i < rows.Size()).
	GetRow(rows, cols *cluster.IndexSet, info BlockInfo, i int, out *dense.Vector[T])

	// GetCol is the column-axis counterpart of GetRow.
	GetCol(rows, cols *cluster.IndexSet, info BlockInfo, j int, out *dense.Vector[T])

	// Assemble materializes the whole block directly, letting a kernel
	// batch the computation rather than being driven through GetRow/GetCol.
	Assemble(rows, cols *cluster.IndexSet, info BlockInfo) *dense.Matrix[T]
}

// EntryKernel is an embeddable convenience base for kernels that only
// have a single-entry evaluation available. Embed it, set Entry, and
// supply PrepareBlock/ReleaseBlock to satisfy Kernel[T]; GetRow, GetCol
// and Assemble are then implemented by looping over Entry and honoring
// the sparse null-row/null-col hints in info.
type EntryKernel[T scalar.Number] struct {
	Entry func(i, j int) T
}

func (e EntryKernel[T]) GetRow(rows, cols *cluster.IndexSet, info BlockInfo, i int, out *dense.Vector[T]) {
	for j := 0; j < cols.Size(); j++ {
		if info.Type == BlockSparse && info.IsNullCol != nil && info.IsNullCol(j) {
			continue
		}
		out.Set(j, e.Entry(i, j))
	}
}

func (e EntryKernel[T]) GetCol(rows, cols *cluster.IndexSet, info BlockInfo, j int, out *dense.Vector[T]) {
	for i := 0; i < rows.Size(); i++ {
		if info.Type == BlockSparse && info.IsNullRow != nil && info.IsNullRow(i) {
			continue
		}
		out.Set(i, e.Entry(i, j))
	}
}

func (e EntryKernel[T]) Assemble(rows, cols *cluster.IndexSet, info BlockInfo) *dense.Matrix[T] {
	m := dense.NewMatrix[T](rows.Size(), cols.Size())
	for i := 0; i < rows.Size(); i++ {
		if info.Type == BlockSparse && info.IsNullRow != nil && info.IsNullRow(i) {
			continue
		}
		for j := 0; j < cols.Size(); j++ {
			if info.Type == BlockSparse && info.IsNullCol != nil && info.IsNullCol(j) {
				continue
			}
			m.Set(i, j, e.Entry(i, j))
		}
	}
	return m
}

// Adapter is the scoped kernel-assembly adapter: construction calls
// f.PrepareBlock, and Close calls f.ReleaseBlock. Callers must Close an
// Adapter once done with it (typically via defer).
type Adapter[T scalar.Number] struct {
	kernel Kernel[T]
	rows   *cluster.IndexSet
	cols   *cluster.IndexSet
	info   BlockInfo
}

// NewAdapter constructs the adapter, invoking f.PrepareBlock.
func NewAdapter[T scalar.Number](f Kernel[T], rows, cols *cluster.IndexSet) *Adapter[T] {
	return &Adapter[T]{
		kernel: f,
		rows:   rows,
		cols:   cols,
		info:   f.PrepareBlock(rows, cols),
	}
}

// Close releases the block via f.ReleaseBlock. Must be called exactly once.
func (a *Adapter[T]) Close() {
	a.kernel.ReleaseBlock(a.info)
}

// IsNull reports whether the whole block is hinted null.
func (a *Adapter[T]) IsNull() bool { return a.info.Type == BlockNull }

// GetRow fetches row i (0-based, local block coordinates) as a vector of
// length cols.Size(). If the block is hinted null, or it is sparse and
// info.IsNullRow(i) holds, the zero vector is returned without calling the
// kernel; otherwise the call is forwarded to the kernel's own GetRow.
func (a *Adapter[T]) GetRow(i int) *dense.Vector[T] {
	v := dense.NewVector[T](a.cols.Size())
	if a.info.Type == BlockNull {
		return v
	}
	if a.info.Type == BlockSparse && a.info.IsNullRow != nil && a.info.IsNullRow(i) {
		return v
	}
	a.kernel.GetRow(a.rows, a.cols, a.info, i, v)
	return v
}

// GetCol fetches column j analogously, short-circuiting on a null block or
// a sparse block whose info.IsNullCol(j) holds.
func (a *Adapter[T]) GetCol(j int) *dense.Vector[T] {
	v := dense.NewVector[T](a.rows.Size())
	if a.info.Type == BlockNull {
		return v
	}
	if a.info.Type == BlockSparse && a.info.IsNullCol != nil && a.info.IsNullCol(j) {
		return v
	}
	a.kernel.GetCol(a.rows, a.cols, a.info, j, v)
	return v
}

// Assemble materializes the whole dense block, or returns a zeroed block
// when the hint is null.
func (a *Adapter[T]) Assemble() *dense.Matrix[T] {
	if a.info.Type == BlockNull {
		return dense.NewMatrix[T](a.rows.Size(), a.cols.Size())
	}
	return a.kernel.Assemble(a.rows, a.cols, a.info)
}
