// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package geom

// Shape is a concrete ConvexShape: an immutable pair of vertex
// and pentatope arrays produced by a tessellation procedure.
// Hypercube and HyperplanarFloor both return a *Shape.
type Shape struct {
	verts []Vertex
	pents []Pentatope
}

// Vertices implements ConvexShape.
func (s *Shape) Vertices() []Vertex { return s.verts }

// Pentatopes implements ConvexShape.
func (s *Shape) Pentatopes() []Pentatope { return s.pents }

// Validate checks the two invariants every pentatope in the
// shape must satisfy: its five indices are valid and distinct,
// and its five vertices are affinely independent (no degenerate
// simplex). Tessellation itself never fails, so Validate is a
// separate, optional pass callers may run once at construction.
func (s *Shape) Validate() error {
	n := uint32(len(s.verts))
	for _, p := range s.pents {
		var seen [5]uint32
		for i, idx := range p {
			if idx >= n {
				return errIndex
			}
			for j := 0; j < i; j++ {
				if seen[j] == idx {
					return errDistinct
				}
			}
			seen[i] = idx
		}
		if !affineIndependent(s.verts, p) {
			return errDegen
		}
	}
	return nil
}

// affineIndependent reports whether the five vertices of p span
// a non-degenerate 4-simplex, i.e., whether the four edge
// vectors from p[0] to p[1..4] are linearly independent. It
// computes the determinant of the 4x4 matrix whose rows are
// those edge vectors.
func affineIndependent(verts []Vertex, p Pentatope) bool {
	var e [4]Vec4
	origin := verts[p[0]].Pos
	for i := 0; i < 4; i++ {
		v := verts[p[i+1]].Pos
		for k := range e[i] {
			e[i][k] = v[k] - origin[k]
		}
	}
	const tol = 1e-12
	d := det4(e)
	return d > tol || d < -tol
}

// det4 computes the determinant of the 4x4 matrix whose rows
// are m[0..3], via cofactor expansion along the first row.
func det4(m [4]Vec4) float32 {
	sub := func(skipRow, skipCol int) [3][3]float32 {
		var s [3][3]float32
		ri := 0
		for r := 0; r < 4; r++ {
			if r == skipRow {
				continue
			}
			ci := 0
			for c := 0; c < 4; c++ {
				if c == skipCol {
					continue
				}
				s[ri][ci] = m[r][c]
				ci++
			}
			ri++
		}
		return s
	}
	det3 := func(s [3][3]float32) float32 {
		return s[0][0]*(s[1][1]*s[2][2]-s[1][2]*s[2][1]) -
			s[0][1]*(s[1][0]*s[2][2]-s[1][2]*s[2][0]) +
			s[0][2]*(s[1][0]*s[2][1]-s[1][1]*s[2][0])
	}
	var d float32
	sign := float32(1)
	for c := 0; c < 4; c++ {
		d += sign * m[0][c] * det3(sub(0, c))
		sign = -sign
	}
	return d
}
