// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"errors"

	"github.com/fourslice/tesseract/internal/bitm"
	"github.com/fourslice/tesseract/linear"
)

// Handle identifies an Entity within a World.
type Handle int

var errInvalidHandle = errors.New("scene: invalid entity handle")

// World is the flat entity registry: a bitm-backed slot
// allocator (grounded on the same allocation strategy as a node
// graph, but without parent/child traversal, since entities here
// are not hierarchical) plus the "any entity dirty" aggregate
// that lets the staging pass skip entirely on a static frame.
type World struct {
	slots bitm.Bitm[uint32]
	ents  []Entity
	dirty bool
}

// NewWorld creates an empty World.
func NewWorld() *World { return &World{} }

// Insert adds a new entity referencing shape (retaining it) with
// the given initial transform and tint, and returns its handle.
// The new entity starts dirty.
func (w *World) Insert(shape *Shape, pos linear.V4, rot linear.M4, scale float32, tint [4]float32) Handle {
	idx, ok := w.slots.Search()
	if !ok {
		idx = w.slots.Grow(1)
	}
	w.slots.Set(idx)
	if idx >= len(w.ents) {
		ents := make([]Entity, idx+1)
		copy(ents, w.ents)
		w.ents = ents
	}
	w.ents[idx] = Entity{
		shape: shape.Retain(),
		pos:   pos,
		rot:   rot,
		scale: scale,
		tint:  tint,
		dirty: true,
	}
	w.dirty = true
	return Handle(idx)
}

// Remove releases the entity's shape reference and frees its
// slot for reuse.
func (w *World) Remove(h Handle) error {
	if !w.valid(h) {
		return errInvalidHandle
	}
	w.ents[h].shape.Release()
	w.ents[h] = Entity{}
	w.slots.Unset(int(h))
	w.dirty = true
	return nil
}

func (w *World) valid(h Handle) bool {
	return h >= 0 && int(h) < w.slots.Len() && w.slots.IsSet(int(h))
}

// Get returns a read-only view of the entity at h.
func (w *World) Get(h Handle) (*Entity, error) {
	if !w.valid(h) {
		return nil, errInvalidHandle
	}
	return &w.ents[h], nil
}

// SetTransform updates an entity's position, rotation and scale,
// marking it (and the World) dirty.
func (w *World) SetTransform(h Handle, pos linear.V4, rot linear.M4, scale float32) error {
	if !w.valid(h) {
		return errInvalidHandle
	}
	e := &w.ents[h]
	e.pos, e.rot, e.scale = pos, rot, scale
	e.dirty = true
	w.dirty = true
	return nil
}

// SetTint updates an entity's material tint, marking it (and the
// World) dirty.
func (w *World) SetTint(h Handle, tint [4]float32) error {
	if !w.valid(h) {
		return errInvalidHandle
	}
	e := &w.ents[h]
	e.tint = tint
	e.dirty = true
	w.dirty = true
	return nil
}

// Dirty reports whether any entity has changed since the last
// call to ClearDirty. The staging pass uses this to skip
// rebuilding the flat geometry arrays entirely on a static frame.
func (w *World) Dirty() bool { return w.dirty }

// Each calls fn once for every live entity, in handle order.
func (w *World) Each(fn func(Handle, *Entity)) {
	for i := range w.ents {
		if w.slots.IsSet(i) {
			fn(Handle(i), &w.ents[i])
		}
	}
}

// EachDirty calls fn once for every live, dirty entity.
func (w *World) EachDirty(fn func(Handle, *Entity)) {
	for i := range w.ents {
		if w.slots.IsSet(i) && w.ents[i].dirty {
			fn(Handle(i), &w.ents[i])
		}
	}
}

// ClearDirty clears every entity's dirty flag and the World
// aggregate. Called by the staging pass once it has rebuilt the
// flat geometry arrays.
func (w *World) ClearDirty() {
	for i := range w.ents {
		if w.slots.IsSet(i) {
			w.ents[i].dirty = false
		}
	}
	w.dirty = false
}
