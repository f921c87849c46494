// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import "github.com/fourslice/tesseract/linear"

// Entity is an instance of a shape in the world: a reference to a
// shared Shape, a 4D transform (position, rotation, uniform
// scale), a material tint and a dirty flag. Transforms are
// applied on the CPU during staging, not inside the slice kernel,
// so entity mutation is rare relative to the per-frame camera
// motion that drives the kernel.
//
// Entity fields are mutated only through World, which is what
// keeps the dirty flag and the World-level aggregate in sync; the
// accessor methods here are read-only.
type Entity struct {
	shape *Shape
	pos   linear.V4
	rot   linear.M4
	scale float32
	tint  [4]float32
	dirty bool
}

// Shape returns the entity's shape reference.
func (e *Entity) Shape() *Shape { return e.shape }

// Position returns the entity's world-space position.
func (e *Entity) Position() linear.V4 { return e.pos }

// Rotation returns the entity's 4D rotation matrix.
func (e *Entity) Rotation() linear.M4 { return e.rot }

// Scale returns the entity's uniform scale factor.
func (e *Entity) Scale() float32 { return e.scale }

// Tint returns the entity's material tint.
func (e *Entity) Tint() [4]float32 { return e.tint }

// Dirty reports whether the entity has changed since the last
// call to World.ClearDirty.
func (e *Entity) Dirty() bool { return e.dirty }
