// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import "math"

// planeRot builds the M4 that rotates by theta radians in the
// plane spanned by axes i and j, leaving the other two axes
// fixed. i and j must be distinct indices in [0,3].
func planeRot(i, j int, theta float32) M4 {
	var m M4
	m.I()
	c := float32(math.Cos(float64(theta)))
	s := float32(math.Sin(float64(theta)))
	m[i][i] = c
	m[j][j] = c
	m[i][j] = s
	m[j][i] = -s
	return m
}

// Axis indices used by the plane rotation constructors.
const (
	axisX = iota
	axisY
	axisZ
	axisW
)

// RotXW returns the M4 that rotates by theta radians in the
// XW plane.
func RotXW(theta float32) M4 { return planeRot(axisX, axisW, theta) }

// RotZW returns the M4 that rotates by theta radians in the
// ZW plane.
func RotZW(theta float32) M4 { return planeRot(axisZ, axisW, theta) }

// RotYW returns the M4 that rotates by theta radians in the
// YW plane.
func RotYW(theta float32) M4 { return planeRot(axisY, axisW, theta) }

// RotXZ returns the M4 that rotates by theta radians in the
// XZ plane.
func RotXZ(theta float32) M4 { return planeRot(axisX, axisZ, theta) }

// RotXY returns the M4 that rotates by theta radians in the
// XY plane.
func RotXY(theta float32) M4 { return planeRot(axisX, axisY, theta) }

// RotYZ returns the M4 that rotates by theta radians in the
// YZ plane.
func RotYZ(theta float32) M4 { return planeRot(axisY, axisZ, theta) }

// Orthonormal reports whether m is orthonormal to within tol,
// i.e., whether m transposed times m equals the identity with
// each element differing by no more than tol.
func (m *M4) Orthonormal(tol float32) bool {
	var t, p M4
	t.Transpose(m)
	p.Mul(&t, m)
	var i M4
	i.I()
	for c := range p {
		for r := range p[c] {
			d := p[c][r] - i[c][r]
			if d < 0 {
				d = -d
			}
			if d > tol {
				return false
			}
		}
	}
	return true
}
