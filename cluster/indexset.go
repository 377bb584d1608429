// Package cluster holds the index-set and cluster-tree-node types the
// admissibility conditions and the compression engine operate over.
package cluster

import (
	"fmt"

	"github.com/aurelienfalco/hrank/geometry"
)

// IndexSet is an ordered list of global indices, each carrying a 3-D
// coordinate payload used by admissibility conditions to build bounding
// boxes.
type IndexSet struct {
	Indices     []int
	Coordinates []geometry.Point3
}

// NewIndexSet builds an index set from parallel indices/coordinates
// slices. Panics on a length mismatch.
func NewIndexSet(indices []int, coordinates []geometry.Point3) *IndexSet {
	if len(indices) != len(coordinates) {
		panic("cluster: indices and coordinates length mismatch")
	}
	return &IndexSet{Indices: indices, Coordinates: coordinates}
}

// Size returns the number of indices in the set.
func (s *IndexSet) Size() int { return len(s.Indices) }

// Description returns a short diagnostic string.
func (s *IndexSet) Description() string {
	return fmt.Sprintf("IndexSet(size=%d)", s.Size())
}

// BoundingBox computes the axis-aligned bounding box of the set's
// coordinates. Panics on an empty set.
func (s *IndexSet) BoundingBox() geometry.BoundingBox {
	return geometry.NewBoundingBox(s.Coordinates)
}
