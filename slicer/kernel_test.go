// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package slicer

import (
	"math"
	"testing"

	"github.com/fourslice/tesseract/geom"
	"github.com/fourslice/tesseract/linear"
)

func identity() linear.M4 {
	var m linear.M4
	m.I()
	return m
}

func TestSliceUnitHypercubeAtCenter(t *testing.T) {
	sh := geom.Hypercube(2)
	rot := identity()
	pos := linear.V4{}
	tris, counter := RunKernel(sh.Vertices(), sh.Pentatopes(), &rot, &pos, 0, 1<<20)
	if len(tris) == 0 {
		t.Fatal("expected a nonzero cross-section at w=0")
	}
	if int(counter) != len(tris) {
		t.Fatalf("counter = %d, want %d", counter, len(tris))
	}
	// Every vertex of the cross-section must lie within the cube's
	// [-1,1]^3 spatial extent.
	for _, tri := range tris {
		for _, v := range tri {
			for i := 0; i < 3; i++ {
				if v.Position[i] < -1.0001 || v.Position[i] > 1.0001 {
					t.Fatalf("vertex coordinate %v out of [-1,1]", v.Position[i])
				}
			}
		}
	}
}

func TestSliceUnitHypercubeAboveRange(t *testing.T) {
	sh := geom.Hypercube(2)
	rot := identity()
	pos := linear.V4{}
	tris, counter := RunKernel(sh.Vertices(), sh.Pentatopes(), &rot, &pos, 1.5, 1<<20)
	if len(tris) != 0 || counter != 0 {
		t.Fatalf("expected no triangles outside [-1,1], got %d (counter %d)", len(tris), counter)
	}
}

func TestSliceTwoSeparatedHypercubes(t *testing.T) {
	center := geom.Hypercube(2)
	far := geom.Hypercube(2)
	rot := identity()
	pos := linear.V4{}

	verts := append([]geom.Vertex{}, center.Vertices()...)
	base := uint32(len(verts))
	for _, v := range far.Vertices() {
		v.Pos[3] += 2 // translate by (0,0,0,2)
		verts = append(verts, v)
	}
	var pents []geom.Pentatope
	pents = append(pents, center.Pentatopes()...)
	for _, p := range far.Pentatopes() {
		var rebased geom.Pentatope
		for i, idx := range p {
			rebased[i] = idx + base
		}
		pents = append(pents, rebased)
	}

	tris, _ := RunKernel(verts, pents, &rot, &pos, 0, 1<<20)
	if len(tris) == 0 {
		t.Fatal("expected the center cube's cross-section to be nonempty")
	}

	// The far cube's w range is [1,3], so it contributes nothing at
	// w=0: the combined world must produce exactly the same triangle
	// count as the center cube alone.
	alone, _ := RunKernel(center.Vertices(), center.Pentatopes(), &rot, &pos, 0, 1<<20)
	if len(tris) != len(alone) {
		t.Fatalf("got %d triangles with the far cube present, want %d (center cube alone)",
			len(tris), len(alone))
	}
}

func TestSliceRotationPeriodicity(t *testing.T) {
	sh := geom.Hypercube(2)
	pos := linear.V4{}
	counts := make([]int, 0, 64)
	for i := 0; i < 64; i++ {
		theta := float32(i) * float32(math.Pi) / 63
		rot := linear.RotXW(theta)
		tris, _ := RunKernel(sh.Vertices(), sh.Pentatopes(), &rot, &pos, 0, 1<<20)
		counts = append(counts, len(tris))
	}
	for i, c := range counts {
		if c == 0 {
			t.Fatalf("frame %d: expected a nonzero triangle count throughout the rotation", i)
		}
	}
	// The hypercube's w extent is periodic in the rotation: a half
	// turn maps it back onto itself.
	if counts[63] != counts[0] {
		t.Fatalf("triangle count after a half turn = %d, want %d (the initial count)",
			counts[63], counts[0])
	}
}

func TestCounterBoundedByEightTimesPentatopeCount(t *testing.T) {
	sh := geom.Hypercube(2)
	rot := identity()
	pos := linear.V4{}
	_, counter := RunKernel(sh.Vertices(), sh.Pentatopes(), &rot, &pos, 0, 1<<20)
	n := len(sh.Pentatopes())
	if int(counter) > 8*n {
		t.Fatalf("counter %d exceeds 8*pentatopeCount (%d)", counter, 8*n)
	}
}

func TestOverflowClampsCounterToMaxTriangles(t *testing.T) {
	sh := geom.Hypercube(2)
	rot := identity()
	pos := linear.V4{}
	const max = 3
	tris, counter := RunKernel(sh.Vertices(), sh.Pentatopes(), &rot, &pos, 0, max)
	if len(tris) != max || counter != max {
		t.Fatalf("got %d triangles / counter %d, want both == %d", len(tris), counter, max)
	}
}

// TestSliceSlabInvariance checks that the cross-section of a
// hypercube of edge 2 at w=0 is a cube of side 2. Each pentatope's
// emitted triangles form a coherently wound closed surface (a
// tetrahedron or prism boundary), so the divergence theorem
// recovers its enclosed volume from the triangle list alone; those
// per-pentatope cross-sections partition the cube, so their volumes
// must sum to 2^3 = 8.
func TestSliceSlabInvariance(t *testing.T) {
	sh := geom.Hypercube(2)
	rot := identity()
	pos := linear.V4{}
	var volume float64
	for _, p := range sh.Pentatopes() {
		var signed float64
		for _, tri := range SlicePentatope(sh.Vertices(), p, &rot, &pos, 0) {
			p0, p1, p2 := tri[0].Position, tri[1].Position, tri[2].Position
			v0 := linear.V3{p0[0], p0[1], p0[2]}
			e1 := linear.V3{p1[0], p1[1], p1[2]}
			e2 := linear.V3{p2[0], p2[1], p2[2]}
			var x linear.V3
			x.Cross(&e1, &e2)
			signed += float64(v0.Dot(&x)) / 6
		}
		volume += math.Abs(signed)
	}
	if math.Abs(volume-8) > 1e-3 {
		t.Fatalf("cross-section volume = %v, want 8", volume)
	}
}

// TestSliceFloor slices a hyperplanar floor at y=-2 (subdivisions 2,
// cell size 1, thickness 0.01) at w=0 and checks every output vertex
// stays within the floor's thin y slab — no cross-contamination
// across cells.
func TestSliceFloor(t *testing.T) {
	const y0, thick = -2.0, 0.01
	sh := geom.HyperplanarFloor(y0, 2, 1, thick)
	rot := identity()
	pos := linear.V4{}
	tris, _ := RunKernel(sh.Vertices(), sh.Pentatopes(), &rot, &pos, 0, 1<<20)
	if len(tris) == 0 {
		t.Fatal("expected a nonzero cross-section through the floor at w=0")
	}
	for _, tri := range tris {
		for _, v := range tri {
			if v.Position[1] < y0-thick/2-1e-4 || v.Position[1] > y0+thick/2+1e-4 {
				t.Fatalf("vertex y = %v outside the floor slab around %v", v.Position[1], y0)
			}
		}
	}
}

func TestIntersectionRoundTrip(t *testing.T) {
	a := geom.Vertex{Pos: geom.Vec4{0, 0, 0, -1}}
	b := geom.Vertex{Pos: geom.Vec4{2, 0, 0, 1}}
	sliceW := float32(0)
	dw := b.Pos[3] - a.Pos[3]
	tt := (sliceW - a.Pos[3]) / dw
	x := a.Pos[0] + tt*(b.Pos[0]-a.Pos[0])
	if math.Abs(float64(x-1)) > 1e-5 {
		t.Fatalf("interpolated x = %v, want 1", x)
	}
	w := a.Pos[3] + tt*(b.Pos[3]-a.Pos[3])
	if math.Abs(float64(w-sliceW)) > 1e-5 {
		t.Fatalf("interpolated w = %v, want %v", w, sliceW)
	}
}
