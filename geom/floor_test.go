// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package geom

import "testing"

func TestHyperplanarFloorCounts(t *testing.T) {
	f := HyperplanarFloor(-2, 2, 1, 0.01)
	wantCells := 2 * 2 * 2
	if got := len(f.Vertices()); got != wantCells*16 {
		t.Fatalf("HyperplanarFloor: got %d vertices, want %d", got, wantCells*16)
	}
	if got := len(f.Pentatopes()); got != wantCells*24 {
		t.Fatalf("HyperplanarFloor: got %d pentatopes, want %d", got, wantCells*24)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("HyperplanarFloor: Validate failed: %v", err)
	}
}

func TestHyperplanarFloorYExtent(t *testing.T) {
	const y0, thick = -2.0, 0.01
	f := HyperplanarFloor(y0, 2, 1, thick)
	for _, v := range f.Vertices() {
		y := v.Pos[1]
		if y < y0-thick/2-1e-6 || y > y0+thick/2+1e-6 {
			t.Fatalf("HyperplanarFloor: vertex y=%v out of [%v,%v]", y, y0-thick/2, y0+thick/2)
		}
	}
}

func TestHyperplanarFloorDegenerate(t *testing.T) {
	cases := []struct {
		subdiv      int
		cell, thick float32
	}{
		{0, 1, 0.01},
		{2, 0, 0.01},
		{2, 1, 0},
	}
	for _, c := range cases {
		f := HyperplanarFloor(0, c.subdiv, c.cell, c.thick)
		if len(f.Vertices()) != 0 || len(f.Pentatopes()) != 0 {
			t.Errorf("HyperplanarFloor(subdiv=%d,cell=%v,thick=%v): want empty shape",
				c.subdiv, c.cell, c.thick)
		}
	}
}
