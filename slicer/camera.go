// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package slicer

import "github.com/fourslice/tesseract/linear"

// Camera is the external 4D camera collaborator. Each frame, Context
// reads its rotation and position to build the camera-space
// transform `rot · (v - position)` applied to every vertex inside
// the slice kernel.
//
// Rotation must be orthonormal; Context.Frame rejects a matrix
// that fails linear.M4.Orthonormal.
type Camera interface {
	Rotation() *linear.M4
	Position() *linear.V4
}
