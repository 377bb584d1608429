// Package geometry holds the axis-aligned bounding box admissibility
// conditions are evaluated against.
package geometry

import "math"

// Point3 is a single 3-D coordinate, the payload type index sets carry.
type Point3 struct {
	X, Y, Z float64
}

// BoundingBox is an axis-aligned bounding box over a set of points.
type BoundingBox struct {
	Min, Max Point3
}

// NewBoundingBox computes the bounding box of points. Panics on an empty
// slice — admissibility never evaluates a cluster with zero indices (the
// minimum cluster size gate rejects anything below two).
func NewBoundingBox(points []Point3) BoundingBox {
	if len(points) == 0 {
		panic("geometry: NewBoundingBox requires at least one point")
	}
	bb := BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bb.Min.X = math.Min(bb.Min.X, p.X)
		bb.Min.Y = math.Min(bb.Min.Y, p.Y)
		bb.Min.Z = math.Min(bb.Min.Z, p.Z)
		bb.Max.X = math.Max(bb.Max.X, p.X)
		bb.Max.Y = math.Max(bb.Max.Y, p.Y)
		bb.Max.Z = math.Max(bb.Max.Z, p.Z)
	}
	return bb
}

// Diameter returns the Euclidean length of the box's main diagonal.
func (b BoundingBox) Diameter() float64 {
	dx := b.Max.X - b.Min.X
	dy := b.Max.Y - b.Min.Y
	dz := b.Max.Z - b.Min.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistanceTo returns the Euclidean distance between b and other: zero if
// the boxes overlap on an axis, otherwise the gap on that axis.
func (b BoundingBox) DistanceTo(other BoundingBox) float64 {
	dx := axisGap(b.Min.X, b.Max.X, other.Min.X, other.Max.X)
	dy := axisGap(b.Min.Y, b.Max.Y, other.Min.Y, other.Max.Y)
	dz := axisGap(b.Min.Z, b.Max.Z, other.Min.Z, other.Max.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func axisGap(aMin, aMax, bMin, bMax float64) float64 {
	if aMax < bMin {
		return bMin - aMax
	}
	if bMax < aMin {
		return aMin - bMax
	}
	return 0
}
