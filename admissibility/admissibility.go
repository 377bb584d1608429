// Package admissibility decides whether a pair of clusters is "far enough
// apart" to admit a low-rank block approximation, per the Hackbusch
// admissibility criterion.
package admissibility

import (
	"fmt"

	"github.com/aurelienfalco/hrank/cluster"
	"github.com/aurelienfalco/hrank/compress"
	"github.com/aurelienfalco/hrank/geometry"
)

// Condition is the interface StandardHackbusch satisfies. TallSkinny does
// not implement it (it has no IsInert or Clean). StandardHackbusch's
// IsAdmissible takes an explicit method parameter, so it is not folded
// into the interface either.
type Condition interface {
	IsInert() bool
	Clean(node *cluster.Node)
}

// StandardHackbusch implements the classical admissibility test: a block
// is admissible when the smaller cluster's bounding-box diameter is at
// most eta times the distance between the two boxes, subject to size
// gates that exclude oversized full-matrix blocks and singleton clusters.
type StandardHackbusch struct {
	Eta                    float64
	MaxElementsPerBlock    int
	MaxElementsPerBlockAca int
	Always                 bool
}

// IsAdmissible evaluates admissibility for rows/cols under method. This
// takes method explicitly, rather than reading a process-wide compression
// method setting, to keep admissibility decisions free of hidden global
// state and independently testable.
func (h *StandardHackbusch) IsAdmissible(method compress.Method, rowsNode, colsNode *cluster.Node) bool {
	rows, cols := rowsNode.Indices, colsNode.Indices

	if method.IsFullMatrixBased() {
		if rows.Size()*cols.Size() > h.MaxElementsPerBlock {
			return false
		}
	} else if h.MaxElementsPerBlockAca > 0 {
		if rows.Size()*cols.Size() > h.MaxElementsPerBlockAca {
			return false
		}
	}
	if rows.Size() < 2 || cols.Size() < 2 {
		return false
	}

	rowsBox := h.cachedBox(rowsNode)
	colsBox := h.cachedBox(colsNode)

	if h.Always {
		return true
	}

	dist := rowsBox.DistanceTo(colsBox)
	minDiam := rowsBox.Diameter()
	if d := colsBox.Diameter(); d < minDiam {
		minDiam = d
	}
	return minDiam <= h.Eta*dist
}

// cachedBox lazily computes and caches node's bounding box in its
// side-channel slot.
func (h *StandardHackbusch) cachedBox(node *cluster.Node) geometry.BoundingBox {
	if cached, ok := node.Cache().(geometry.BoundingBox); ok {
		return cached
	}
	box := node.Indices.BoundingBox()
	node.SetCache(box)
	return box
}

// IsInert is always false for StandardHackbusch.
func (h *StandardHackbusch) IsInert() bool { return false }

// Clean releases the cached bounding box on node.
func (h *StandardHackbusch) Clean(node *cluster.Node) {
	node.Clean()
}

// Describe reports the condition's parameters for diagnostic logging.
func (h *StandardHackbusch) Describe() string {
	return fmt.Sprintf("StandardHackbusch(eta=%g, always=%v)", h.Eta, h.Always)
}
