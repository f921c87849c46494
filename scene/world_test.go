// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"testing"

	"github.com/fourslice/tesseract/geom"
	"github.com/fourslice/tesseract/linear"
)

func identity() linear.M4 {
	var m linear.M4
	m.I()
	return m
}

func TestWorldInsertStartsDirty(t *testing.T) {
	w := NewWorld()
	sh := NewShapeRef(geom.Hypercube(2))
	h := w.Insert(sh, linear.V4{}, identity(), 1, [4]float32{1, 1, 1, 1})
	if !w.Dirty() {
		t.Fatal("World must be dirty after Insert")
	}
	e, err := w.Get(h)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !e.Dirty() {
		t.Fatal("new entity must start dirty")
	}
}

func TestWorldClearDirty(t *testing.T) {
	w := NewWorld()
	sh := NewShapeRef(geom.Hypercube(2))
	h1 := w.Insert(sh, linear.V4{}, identity(), 1, [4]float32{1, 1, 1, 1})
	w.Insert(sh, linear.V4{2, 0, 0, 0}, identity(), 1, [4]float32{1, 1, 1, 1})
	w.ClearDirty()
	if w.Dirty() {
		t.Fatal("World must not be dirty after ClearDirty")
	}
	e, _ := w.Get(h1)
	if e.Dirty() {
		t.Fatal("entity must not be dirty after ClearDirty")
	}
	if err := w.SetTint(h1, [4]float32{0, 1, 0, 1}); err != nil {
		t.Fatalf("SetTint: %v", err)
	}
	if !w.Dirty() {
		t.Fatal("World must be dirty after SetTint")
	}
	count := 0
	w.EachDirty(func(h Handle, e *Entity) { count++ })
	if count != 1 {
		t.Fatalf("EachDirty: got %d dirty entities, want 1", count)
	}
}

func TestWorldRemoveReleasesSlot(t *testing.T) {
	w := NewWorld()
	sh := NewShapeRef(geom.Hypercube(2))
	h := w.Insert(sh, linear.V4{}, identity(), 1, [4]float32{1, 1, 1, 1})
	if err := w.Remove(h); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := w.Get(h); err == nil {
		t.Fatal("Get after Remove must fail")
	}
	h2 := w.Insert(sh, linear.V4{}, identity(), 1, [4]float32{1, 1, 1, 1})
	if h2 != h {
		t.Fatalf("Insert after Remove: want reused handle %d, got %d", h, h2)
	}
}

func TestWorldEachCountsAllLiveEntities(t *testing.T) {
	w := NewWorld()
	sh := NewShapeRef(geom.Hypercube(2))
	for i := 0; i < 5; i++ {
		w.Insert(sh, linear.V4{}, identity(), 1, [4]float32{1, 1, 1, 1})
	}
	count := 0
	w.Each(func(h Handle, e *Entity) { count++ })
	if count != 5 {
		t.Fatalf("Each: got %d entities, want 5", count)
	}
}
