// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package casetable builds the marching-pentatopes case tables:
// for each of the 32 possible vertex-sign configurations of a
// pentatope relative to a slice plane, which edges the plane
// crosses and how the resulting intersection points triangulate.
// The tables are generated once, at package initialization, from
// the combinatorics of the pentatope's fixed vertex order (not
// hand-authored per case), with orientation baked in so that no
// runtime centroid-based normal flip is ever needed.
package casetable

import (
	"errors"
	"math/bits"

	"github.com/fourslice/tesseract/geom"
)

// EdgeMask holds, per case (bit i set when pentatope vertex i is
// classified "above" the slice plane), a 10-bit mask of which of
// the pentatope's 10 edges (geom.Edges order) the plane crosses.
var EdgeMask [32]uint16

// TriTable holds, per case, the triangle list produced by that
// case's cross-section: flat triples of indices into the case's
// local intersection-point array. A point's index in that array
// is its slot — its position among the case's crossed edges in
// ascending geom.Edges order, not the edge's global number. The
// table's native shader form terminates each case's triangle list
// with a sentinel -1; this Go representation uses slice length
// instead, which is the idiomatic equivalent.
var TriTable [32][]int8

func init() {
	for c := 0; c < 32; c++ {
		buildCase(c)
	}
}

type xedge struct {
	a, b int // pentatope-local indices, a < b
	slot int
}

func buildCase(c int) {
	var above [5]bool
	pop := 0
	for i := 0; i < 5; i++ {
		if c&(1<<uint(i)) != 0 {
			above[i] = true
			pop++
		}
	}
	if pop == 0 || pop == 5 {
		return
	}

	var mask uint16
	var xs []xedge
	for k, e := range geom.Edges {
		if above[e[0]] != above[e[1]] {
			xs = append(xs, xedge{a: e[0], b: e[1], slot: len(xs)})
			mask |= 1 << uint(k)
		}
	}
	EdgeMask[c] = mask

	switch pop {
	case 1, 4:
		buildTetra(c, above, xs)
	case 2, 3:
		buildPrism(c, above, xs)
	}
}

// buildTetra handles the popcount-1 and popcount-4 cases: a
// single pentatope vertex s differs from the other four, so the
// cross-section is the tetrahedron whose vertices are the
// intersection points on the 4 edges from s to each other
// vertex. Its 4 triangular faces are the full omit-one boundary
// of that tetrahedron, taken in ascending "other vertex" order
// (which, for any singleton s, is exactly the order its crossed
// edges appear in geom.Edges — see the geom package edge-order
// convention).
func buildTetra(c int, above [5]bool, xs []xedge) {
	var s int
	if bits.OnesCount32(uint32(c)) == 1 {
		for i := 0; i < 5; i++ {
			if above[i] {
				s = i
			}
		}
	} else {
		for i := 0; i < 5; i++ {
			if !above[i] {
				s = i
			}
		}
	}

	var pt [4]int8
	idx := 0
	for i := 0; i < 5; i++ {
		if i == s {
			continue
		}
		a, b := s, i
		if a > b {
			a, b = b, a
		}
		for _, x := range xs {
			if x.a == a && x.b == b {
				pt[idx] = int8(x.slot)
				break
			}
		}
		idx++
	}

	tris := [4][3]int8{
		{pt[1], pt[2], pt[3]},
		{pt[0], pt[3], pt[2]},
		{pt[0], pt[1], pt[3]},
		{pt[0], pt[2], pt[1]},
	}
	// The two possible singleton assignments (s is the lone
	// "above" vertex, or the lone "below" one) are geometric
	// mirror images of each other; reverse the winding for one
	// of them so that the two cases don't collide on a shared
	// orientation convention.
	if above[s] {
		for i := range tris {
			tris[i][1], tris[i][2] = tris[i][2], tris[i][1]
		}
	}
	TriTable[c] = flatten(tris[:])
}

// buildPrism handles the popcount-2 and popcount-3 cases: the
// five vertices split into a group of two (M) and a group of
// three (T); the cross-section is a triangular prism with one
// triangular cap per M vertex (the 3 intersection points to each
// T vertex) and 3 quad side faces (split into 2 triangles each)
// connecting corresponding T-indexed points between the two caps.
func buildPrism(c int, above [5]bool, xs []xedge) {
	var m, t []int
	aboveCount := bits.OnesCount32(uint32(c))
	for i := 0; i < 5; i++ {
		if aboveCount == 2 {
			if above[i] {
				m = append(m, i)
			} else {
				t = append(t, i)
			}
		} else {
			if above[i] {
				t = append(t, i)
			} else {
				m = append(m, i)
			}
		}
	}

	var p [2][3]int8
	for _, x := range xs {
		mi, ti := -1, -1
		for i, v := range m {
			if v == x.a || v == x.b {
				mi = i
			}
		}
		for j, v := range t {
			if v == x.a || v == x.b {
				ti = j
			}
		}
		p[mi][ti] = int8(x.slot)
	}

	var tris [][3]int8
	tris = append(tris, [3]int8{p[0][0], p[0][1], p[0][2]})
	tris = append(tris, [3]int8{p[1][0], p[1][2], p[1][1]})
	for j := 0; j < 3; j++ {
		j2 := (j + 1) % 3
		tris = append(tris, [3]int8{p[0][j], p[1][j], p[1][j2]})
		tris = append(tris, [3]int8{p[0][j], p[1][j2], p[0][j2]})
	}
	TriTable[c] = flatten(tris)
}

func flatten(tris [][3]int8) []int8 {
	out := make([]int8, 0, len(tris)*3)
	for _, t := range tris {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

var errExhaustive = errors.New("casetable: case table is not exhaustive")

// Validate checks that EdgeMask and TriTable together describe a
// valid triangulation of the topology implied by each case's
// popcount: empty for 0 and 31, a closed tetrahedron boundary (4
// triangles over 4 crossed edges) for popcount 1 and 4, and a
// closed triangular-prism boundary (8 triangles over 6 crossed
// edges) for popcount 2 and 3.
func Validate() error {
	for c := 0; c < 32; c++ {
		pop := bits.OnesCount32(uint32(c))
		edgePop := bits.OnesCount16(EdgeMask[c])
		switch {
		case pop == 0 || pop == 5:
			if edgePop != 0 || len(TriTable[c]) != 0 {
				return errExhaustive
			}
		case pop == 1 || pop == 4:
			if edgePop != 4 || len(TriTable[c]) != 12 {
				return errExhaustive
			}
		default: // 2 or 3
			if edgePop != 6 || len(TriTable[c]) != 24 {
				return errExhaustive
			}
		}
	}
	return nil
}
