package geometry

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// HittableList is the scene aggregate: an unordered set of shapes
// searched linearly for the nearest intersection.
type HittableList struct {
	Shapes []Shape
}

// NewHittableList creates an aggregate holding the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	return &HittableList{Shapes: shapes}
}

// Add appends shapes to the aggregate
func (h *HittableList) Add(shapes ...Shape) {
	h.Shapes = append(h.Shapes, shapes...)
}

// Clear removes all shapes
func (h *HittableList) Clear() {
	h.Shapes = nil
}

// Len returns the number of shapes in the aggregate
func (h *HittableList) Len() int {
	return len(h.Shapes)
}

// Hit returns the closest hit among all shapes with t in [tMin, tMax]
func (h *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range h.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
