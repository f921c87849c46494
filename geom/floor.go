// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package geom

// HyperplanarFloor returns the Shape of a hyperplanar floor
// centered at world Y = y0: a cubic grid of subdivisions^3 axis-
// aligned (x, z, w) cells of side cellSize, each extruded in Y
// by thickness to form a thin 4-rectangular parallelepiped, each
// Kuhn-triangulated into 24 pentatopes by the same procedure as
// Hypercube.
//
// Cells share corner vertices conceptually, but this
// implementation does not deduplicate them across cells (the
// dedup pass is optional per the tessellator's contract; the
// case-table-driven kernel downstream is indifferent to it).
//
// Non-positive subdivisions, cellSize or thickness produce an
// empty shape.
func HyperplanarFloor(y0 float32, subdivisions int, cellSize, thickness float32) *Shape {
	if subdivisions <= 0 || cellSize <= 0 || thickness <= 0 {
		return &Shape{}
	}
	extent := float32(subdivisions) * cellSize
	half := extent / 2
	yOrigin := y0 - thickness/2

	var verts []Vertex
	var pents []Pentatope
	tint := [4]float32{1, 1, 1, 1}

	for ix := 0; ix < subdivisions; ix++ {
		x0 := -half + float32(ix)*cellSize
		for iz := 0; iz < subdivisions; iz++ {
			z0 := -half + float32(iz)*cellSize
			for iw := 0; iw < subdivisions; iw++ {
				w0 := -half + float32(iw)*cellSize
				origin := Vec4{x0, yOrigin, z0, w0}
				extents := Vec4{cellSize, thickness, cellSize, cellSize}
				corners := cellCorners(origin, extents, tint)
				base := uint32(len(verts))
				verts = append(verts, corners[:]...)
				pents = kuhnCell(base, pents)
			}
		}
	}
	return &Shape{verts: verts, pents: pents}
}
