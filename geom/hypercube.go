// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package geom

// Hypercube returns the Shape of a 4D hypercube of edge length
// s, centered at the origin: 16 vertices at the corners of
// [-s/2, s/2]^4, Kuhn-triangulated into 24 pentatopes.
//
// A zero or negative s produces an empty shape, per the
// tessellator's "tessellation never fails" contract.
func Hypercube(s float32) *Shape {
	if s <= 0 {
		return &Shape{}
	}
	half := s / 2
	origin := Vec4{-half, -half, -half, -half}
	extent := Vec4{s, s, s, s}
	verts := cellCorners(origin, extent, [4]float32{1, 1, 1, 1})
	pents := kuhnCell(0, make([]Pentatope, 0, 24))
	return &Shape{verts: verts[:], pents: pents}
}
