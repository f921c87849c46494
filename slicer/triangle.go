// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package slicer

// TriVertex is a single vertex of an output triangle, already in
// camera space: position and face normal are 3D, WDepth carries the
// removed fourth coordinate for depth-cue shading, and Tint is
// inherited from the source pentatope's vertex colors.
type TriVertex struct {
	Position [3]float32
	Normal   [3]float32
	WDepth   float32
	Tint     [4]float32
}

const triVertexByteSize = 4 * 11 // 3+3+1+4 float32 fields

// Triangle is one output triangle: three TriVertex records. Winding
// is significant — it is what the case tables bake orientation
// consistency into.
type Triangle [3]TriVertex
