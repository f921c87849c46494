// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package geom implements the 4D geometry representation of the
// slicing pipeline: vertices, pentatopes (4-simplices) and the
// convex shapes that tessellate into them.
package geom

import "errors"

// Vec4 is a 4D position, x, y, z, w, laid out as four contiguous
// 32-bit floats so that it can be uploaded to a GPU buffer
// verbatim (16-byte stride, no padding).
type Vec4 [4]float32

// Vertex is a single 4D vertex: a position plus a per-vertex
// tint color. Normals are not stored here; 3D normals are
// derived per output triangle by the slice kernel.
type Vertex struct {
	Pos  Vec4
	Tint [4]float32
}

// Pentatope is a 4-simplex: five indices into a Vertex array.
// The vertex order is significant — it carries the orientation
// inherited from the tessellation procedure that produced it.
type Pentatope [5]uint32

// Edges lists the 10 edges of a pentatope, numbered by
// lexicographic vertex-pair order. Edge k of a Pentatope p
// connects p[Edges[k][0]] and p[Edges[k][1]].
var Edges = [10][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 2}, {1, 3}, {1, 4},
	{2, 3}, {2, 4},
	{3, 4},
}

// ConvexShape produces the (vertex, pentatope) data of a
// tessellated 4D convex shape. Tessellation is computed once,
// at construction time, and is thereafter immutable.
type ConvexShape interface {
	// Vertices returns the shape's vertex array.
	Vertices() []Vertex

	// Pentatopes returns the shape's pentatope array. Every
	// index referenced by a Pentatope is valid within
	// Vertices.
	Pentatopes() []Pentatope
}

var (
	errIndex    = errors.New("geom: pentatope references out-of-range vertex index")
	errDegen    = errors.New("geom: pentatope vertices are not affinely independent")
	errDistinct = errors.New("geom: pentatope contains duplicate vertex indices")
)
