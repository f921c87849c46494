// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package stage implements geometry staging: flattening a dirty
// scene.World into the vertex and pentatope arrays ready for
// upload to the device's storage buffers.
package stage

import (
	"github.com/fourslice/tesseract/geom"
	"github.com/fourslice/tesseract/linear"
	"github.com/fourslice/tesseract/scene"
)

// Staged is the flat, GPU-uploadable result of a staging pass: a
// global vertex array and a global pentatope array whose indices
// have been rebased against it. This is the exact layout a
// driver.Buffer.Bytes() receives verbatim.
type Staged struct {
	Vertices   []geom.Vertex
	Pentatopes []geom.Pentatope
}

// Rebuild produces the flat (vertex, pentatope) arrays for every
// live entity in w, applying each entity's transform (scale, then
// rotation, then translation) to its shape's source vertices and
// rebasing its pentatope indices against the running vertex
// count. It returns (nil, false) without doing any work if no
// entity in w is dirty.
//
// Rebuild clears every entity's dirty flag as its last step, so
// calling it twice in a row on an unchanged World produces
// byte-identical output the first time and (nil, false) the
// second.
func Rebuild(w *scene.World) (*Staged, bool) {
	if !w.Dirty() {
		return nil, false
	}

	st := &Staged{}
	w.Each(func(_ scene.Handle, e *scene.Entity) {
		shape := e.Shape().Shape()
		srcVerts := shape.Vertices()
		base := uint32(len(st.Vertices))

		pos := e.Position()
		rot := e.Rotation()
		scale := e.Scale()
		tint := e.Tint()

		for _, v := range srcVerts {
			var scaled linear.V4
			for i := range scaled {
				scaled[i] = v.Pos[i] * scale
			}
			var rotated linear.V4
			rotated.Mul(&rot, &scaled)
			var world geom.Vec4
			for i := range world {
				world[i] = rotated[i] + pos[i]
			}
			st.Vertices = append(st.Vertices, geom.Vertex{Pos: world, Tint: tint})
		}

		for _, p := range shape.Pentatopes() {
			var rebased geom.Pentatope
			for i, idx := range p {
				rebased[i] = idx + base
			}
			st.Pentatopes = append(st.Pentatopes, rebased)
		}
	})

	w.ClearDirty()
	return st, true
}
