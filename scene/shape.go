// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package scene holds the world-facing entity registry: shapes
// shared by reference, entities that place a shape in 4D space,
// and the flat, dirty-flag-driven World that owns them.
package scene

import "github.com/fourslice/tesseract/geom"

// Shape wraps a geom.ConvexShape behind a refcounted handle so
// that entities sharing the same tessellation (many identical
// hypercubes, for instance) can dedupe the underlying vertex and
// pentatope data instead of copying it per entity.
type Shape struct {
	shape geom.ConvexShape
	refs  int
}

// NewShapeRef wraps shape in a new Shape reference with a single
// owner. The caller must call Release when done with it.
func NewShapeRef(shape geom.ConvexShape) *Shape {
	return &Shape{shape: shape, refs: 1}
}

// Retain increments the reference count and returns s, so that
// callers can chain it directly into an Entity field.
func (s *Shape) Retain() *Shape {
	s.refs++
	return s
}

// Release decrements the reference count. It is a no-op once the
// count reaches zero; the underlying geom.ConvexShape is left for
// the garbage collector once the last reference is released.
func (s *Shape) Release() {
	if s.refs > 0 {
		s.refs--
	}
}

// Shape returns the wrapped geom.ConvexShape.
func (s *Shape) Shape() geom.ConvexShape { return s.shape }
