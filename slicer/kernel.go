// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package slicer

import (
	"math/bits"

	"github.com/fourslice/tesseract/casetable"
	"github.com/fourslice/tesseract/geom"
	"github.com/fourslice/tesseract/linear"
)

// parallelTol is the |Δw| threshold below which an edge is treated
// as parallel to the slice plane; below it, t falls back to 0.5
// instead of dividing by a near-zero denominator.
const parallelTol = 1e-4

type camVertex struct {
	rotated geom.Vec4 // rot · (v.Pos - camPos); xyz is the output position, w drives classification and the edge parameter t
	preRotW float32   // (v.Pos - camPos).w, before rotation; carried as the WDepth source
	tint    [4]float32
}

func toCamSpace(v geom.Vertex, rot *linear.M4, camPos *linear.V4) camVertex {
	var delta linear.V4
	for i := range delta {
		delta[i] = v.Pos[i] - camPos[i]
	}
	var rotated linear.V4
	rotated.Mul(rot, &delta)
	return camVertex{
		rotated: geom.Vec4(rotated),
		preRotW: delta[3],
		tint:    v.Tint,
	}
}

func lerp3(a, b [3]float32, t float32) [3]float32 {
	var out [3]float32
	for i := range out {
		out[i] = a[i] + t*(b[i]-a[i])
	}
	return out
}

func lerp4(a, b [4]float32, t float32) [4]float32 {
	var out [4]float32
	for i := range out {
		out[i] = a[i] + t*(b[i]-a[i])
	}
	return out
}

func lerp1(a, b, t float32) float32 { return a + t*(b-a) }

// SlicePentatope intersects a single pentatope with the hyperplane
// w = sliceW in camera space and returns its cross-section as 3D
// triangles, already carrying camera-space positions, face normals,
// W-depth and tint. It is the exact per-thread procedure the
// WGSL source in kernel.wgsl.go mirrors.
func SlicePentatope(verts []geom.Vertex, pent geom.Pentatope, rot *linear.M4, camPos *linear.V4, sliceW float32) []Triangle {
	var cv [5]camVertex
	c := 0
	for i, idx := range pent {
		cv[i] = toCamSpace(verts[idx], rot, camPos)
		if cv[i].rotated[3] > sliceW {
			c |= 1 << uint(i)
		}
	}

	pop := bits.OnesCount32(uint32(c))
	if pop == 0 || pop == 5 {
		return nil
	}

	mask := casetable.EdgeMask[c]
	var points [6]struct {
		pos  [3]float32
		w    float32
		tint [4]float32
	}
	slot := 0
	for k, e := range geom.Edges {
		if mask&(1<<uint(k)) == 0 {
			continue
		}
		a, b := cv[e[0]], cv[e[1]]
		dw := b.rotated[3] - a.rotated[3]
		t := float32(0.5)
		if dw > parallelTol || dw < -parallelTol {
			t = (sliceW - a.rotated[3]) / dw
		}
		points[slot].pos = lerp3(
			[3]float32{a.rotated[0], a.rotated[1], a.rotated[2]},
			[3]float32{b.rotated[0], b.rotated[1], b.rotated[2]},
			t,
		)
		points[slot].w = lerp1(a.preRotW, b.preRotW, t)
		points[slot].tint = lerp4(a.tint, b.tint, t)
		slot++
	}

	tris := casetable.TriTable[c]
	out := make([]Triangle, 0, len(tris)/3)
	for i := 0; i < len(tris); i += 3 {
		i0, i1, i2 := tris[i], tris[i+1], tris[i+2]
		p0, p1, p2 := points[i0].pos, points[i1].pos, points[i2].pos

		e1 := linear.V3{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := linear.V3{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		var n linear.V3
		n.Cross(&e1, &e2)
		if l := n.Len(); l > 0 {
			n.Scale(1/l, &n)
		}
		normal := [3]float32{n[0], n[1], n[2]}

		tri := Triangle{
			{Position: p0, Normal: normal, WDepth: points[i0].w, Tint: points[i0].tint},
			{Position: p1, Normal: normal, WDepth: points[i1].w, Tint: points[i1].tint},
			{Position: p2, Normal: normal, WDepth: points[i2].w, Tint: points[i2].tint},
		}
		out = append(out, tri)
	}
	return out
}

// RunKernel runs SlicePentatope over every pentatope in pents,
// reproducing the GPU kernel's clamped-atomic-counter discipline: a
// triangle is kept only while the running count is below
// maxTriangles, after which further triangles are dropped silently
// and the counter stays pinned at maxTriangles. It returns the kept
// triangles and the final counter value.
func RunKernel(verts []geom.Vertex, pents []geom.Pentatope, rot *linear.M4, camPos *linear.V4, sliceW float32, maxTriangles int) ([]Triangle, uint32) {
	var out []Triangle
	counter := 0
	for _, p := range pents {
		for _, tri := range SlicePentatope(verts, p, rot, camPos, sliceW) {
			if counter >= maxTriangles {
				counter = maxTriangles
				continue
			}
			out = append(out, tri)
			counter++
		}
	}
	if counter > maxTriangles {
		counter = maxTriangles
	}
	return out, uint32(counter)
}
