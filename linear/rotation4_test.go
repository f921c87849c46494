// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"
)

func TestRotOrthonormal(t *testing.T) {
	fns := map[string]func(float32) M4{
		"XW": RotXW,
		"ZW": RotZW,
		"YW": RotYW,
		"XZ": RotXZ,
		"XY": RotXY,
		"YZ": RotYZ,
	}
	for name, fn := range fns {
		for _, theta := range []float32{0, 0.3, 1, float32(math.Pi / 2), float32(math.Pi)} {
			m := fn(theta)
			if !m.Orthonormal(1e-5) {
				t.Errorf("%s(%v): not orthonormal", name, theta)
			}
		}
	}
}

func TestRotXWFixesYZ(t *testing.T) {
	m := RotXW(float32(math.Pi / 2))
	v := V4{0, 5, -3, 0}
	var r V4
	r.Mul(&m, &v)
	if r[1] != 5 || r[2] != -3 {
		t.Errorf("RotXW must fix Y,Z: got %v", r)
	}
}

func TestRotXWQuarterTurn(t *testing.T) {
	m := RotXW(float32(math.Pi / 2))
	v := V4{1, 0, 0, 0}
	var r V4
	r.Mul(&m, &v)
	want := V4{0, 0, 0, 1}
	for i := range want {
		if d := r[i] - want[i]; d > 1e-5 || d < -1e-5 {
			t.Errorf("RotXW(pi/2)*(1,0,0,0) = %v, want %v", r, want)
			break
		}
	}
}

func TestOrthonormalRejectsSkewed(t *testing.T) {
	var m M4
	m.I()
	m[0][0] = 2
	if m.Orthonormal(1e-5) {
		t.Error("expected non-orthonormal matrix to be rejected")
	}
}
