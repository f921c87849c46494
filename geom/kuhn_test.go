// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package geom

import "testing"

func TestPermute4Count(t *testing.T) {
	perms := permute4()
	if len(perms) != 24 {
		t.Fatalf("permute4: got %d permutations, want 24", len(perms))
	}
	seen := map[[4]int]bool{}
	for _, p := range perms {
		var mask [4]bool
		for _, v := range p {
			if v < 0 || v > 3 || mask[v] {
				t.Fatalf("permute4: %v is not a permutation of 0..3", p)
			}
			mask[v] = true
		}
		if seen[p] {
			t.Fatalf("permute4: duplicate permutation %v", p)
		}
		seen[p] = true
	}
}

func TestKuhnCellCount(t *testing.T) {
	pents := kuhnCell(0, nil)
	if len(pents) != 24 {
		t.Fatalf("kuhnCell: got %d pentatopes, want 24", len(pents))
	}
	for _, p := range pents {
		seen := map[uint32]bool{}
		for _, idx := range p {
			if idx > 15 {
				t.Fatalf("kuhnCell: index %d out of [0,15]", idx)
			}
			if seen[idx] {
				t.Fatalf("kuhnCell: pentatope %v has duplicate index", p)
			}
			seen[idx] = true
		}
	}
}

func TestKuhnCellBaseOffset(t *testing.T) {
	pents := kuhnCell(100, nil)
	for _, p := range pents {
		for _, idx := range p {
			if idx < 100 || idx > 115 {
				t.Fatalf("kuhnCell(100): index %d out of [100,115]", idx)
			}
		}
	}
}
