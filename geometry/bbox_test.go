package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aurelienfalco/hrank/geometry"
)

func TestBoundingBoxDiameter(t *testing.T) {
	bb := geometry.NewBoundingBox([]geometry.Point3{{X: 0, Y: 0, Z: 0}, {X: 3, Y: 4, Z: 0}})
	assert.InDelta(t, 5, bb.Diameter(), 1e-9)
}

func TestBoundingBoxDistanceSeparated(t *testing.T) {
	a := geometry.NewBoundingBox([]geometry.Point3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}})
	b := geometry.NewBoundingBox([]geometry.Point3{{X: 5, Y: 0, Z: 0}, {X: 6, Y: 1, Z: 0}})
	assert.InDelta(t, 4, a.DistanceTo(b), 1e-9)
}

func TestBoundingBoxDistanceOverlapping(t *testing.T) {
	a := geometry.NewBoundingBox([]geometry.Point3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 2, Z: 0}})
	b := geometry.NewBoundingBox([]geometry.Point3{{X: 1, Y: 1, Z: 0}, {X: 3, Y: 3, Z: 0}})
	assert.Equal(t, 0.0, a.DistanceTo(b))
}

func TestNewBoundingBoxPanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { geometry.NewBoundingBox(nil) })
}
