// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package geom

// permute4 returns the 24 permutations of (0, 1, 2, 3).
func permute4() [][4]int {
	var out [][4]int
	var a [4]int
	used := [4]bool{}
	var rec func(depth int)
	rec = func(depth int) {
		if depth == 4 {
			out = append(out, a)
			return
		}
		for v := 0; v < 4; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			a[depth] = v
			rec(depth + 1)
			used[v] = false
		}
	}
	rec(0)
	return out
}

// kuhnCell Kuhn-triangulates a single 4D cell into 24 pentatopes,
// given the 16 corner positions indexed by bit pattern b (bit 0
// is X, bit 1 is Y, bit 2 is Z, bit 3 is W) and a base offset
// into the caller's global vertex array (corner[b] is at global
// index base+b). The result is appended to dst.
func kuhnCell(base uint32, dst []Pentatope) []Pentatope {
	for _, perm := range permute4() {
		var p Pentatope
		corner := uint32(0)
		p[0] = base + corner
		for k, axis := range perm {
			corner ^= 1 << uint(axis)
			p[k+1] = base + corner
		}
		dst = append(dst, p)
	}
	return dst
}

// cellCorners returns the 16 corner positions of an axis-aligned
// 4D box with the given origin (minimum corner) and per-axis
// extents, indexed by bit pattern (bit 0 is X, ... bit 3 is W).
func cellCorners(origin Vec4, extent Vec4, tint [4]float32) [16]Vertex {
	var vs [16]Vertex
	for b := 0; b < 16; b++ {
		var pos Vec4
		for axis := 0; axis < 4; axis++ {
			pos[axis] = origin[axis]
			if b&(1<<uint(axis)) != 0 {
				pos[axis] += extent[axis]
			}
		}
		vs[b] = Vertex{Pos: pos, Tint: tint}
	}
	return vs
}
