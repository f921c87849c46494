// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package slicer_test

import (
	"encoding/binary"
	"testing"

	"github.com/fourslice/tesseract/driver"
	_ "github.com/fourslice/tesseract/driver/cpu"
	"github.com/fourslice/tesseract/geom"
	"github.com/fourslice/tesseract/linear"
	"github.com/fourslice/tesseract/scene"
	"github.com/fourslice/tesseract/slicer"
)

// fixedCamera is the simplest possible camera collaborator: a
// constant rotation and position.
type fixedCamera struct {
	rot linear.M4
	pos linear.V4
}

func (c *fixedCamera) Rotation() *linear.M4 { return &c.rot }
func (c *fixedCamera) Position() *linear.V4 { return &c.pos }

func identityCamera() *fixedCamera {
	var c fixedCamera
	c.rot.I()
	return &c
}

func openCPU(t *testing.T) driver.GPU {
	t.Helper()
	for _, d := range driver.Drivers() {
		if d.Name() != "cpu" {
			continue
		}
		gpu, err := d.Open()
		if err != nil {
			t.Fatalf("cpu driver Open: %v", err)
		}
		return gpu
	}
	t.Fatal("cpu driver not registered")
	return nil
}

func hypercubeWorld(edge float32) *scene.World {
	w := scene.NewWorld()
	sh := scene.NewShapeRef(geom.Hypercube(edge))
	var rot linear.M4
	rot.I()
	w.Insert(sh, linear.V4{}, rot, 1, [4]float32{1, 1, 1, 1})
	return w
}

func indirectArgs(t *testing.T, buf driver.Buffer) (vertexCount, instanceCount uint32) {
	t.Helper()
	b := buf.Bytes()
	if b == nil {
		t.Fatal("indirect buffer is not host visible")
	}
	return binary.LittleEndian.Uint32(b[0:]), binary.LittleEndian.Uint32(b[4:])
}

func TestFrameIndirectConsistency(t *testing.T) {
	gpu := openCPU(t)
	cfg := slicer.DefaultConfig()
	cfg.MaxTriangles = 1024
	ctx, err := slicer.New(gpu, cfg, hypercubeWorld(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := ctx.Frame(identityCamera(), 0)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	counter, capacity := ctx.Saturation()
	if counter == 0 {
		t.Fatal("expected a nonzero triangle count for a hypercube sliced at its center")
	}
	if counter > capacity {
		t.Fatalf("counter %d exceeds capacity %d", counter, capacity)
	}
	vc, ic := indirectArgs(t, res.Indirect)
	if vc != 3*counter {
		t.Fatalf("indirect vertex count = %d, want 3*counter = %d", vc, 3*counter)
	}
	if ic != 1 {
		t.Fatalf("indirect instance count = %d, want 1", ic)
	}
	if res.Capacity != int(capacity) {
		t.Fatalf("FrameResult capacity = %d, want %d", res.Capacity, capacity)
	}
}

func TestFrameEmptySliceOutsideRange(t *testing.T) {
	gpu := openCPU(t)
	cfg := slicer.DefaultConfig()
	cfg.MaxTriangles = 1024
	ctx, err := slicer.New(gpu, cfg, hypercubeWorld(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := ctx.Frame(identityCamera(), 1.5)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	counter, _ := ctx.Saturation()
	if counter != 0 {
		t.Fatalf("counter = %d, want 0 for a slice outside the hypercube's w range", counter)
	}
	vc, _ := indirectArgs(t, res.Indirect)
	if vc != 0 {
		t.Fatalf("indirect vertex count = %d, want 0", vc)
	}
}

func TestFrameOverflowSaturatesCounter(t *testing.T) {
	gpu := openCPU(t)
	cfg := slicer.DefaultConfig()
	cfg.MaxTriangles = 4 // far fewer than the hypercube slice produces
	ctx, err := slicer.New(gpu, cfg, hypercubeWorld(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := ctx.Frame(identityCamera(), 0)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	counter, capacity := ctx.Saturation()
	if capacity != 4 {
		t.Fatalf("capacity = %d, want 4", capacity)
	}
	if counter != 4 {
		t.Fatalf("counter = %d, want exactly the capacity on overflow", counter)
	}
	vc, _ := indirectArgs(t, res.Indirect)
	if vc != 12 {
		t.Fatalf("indirect vertex count = %d, want 12", vc)
	}
}

func TestFrameStaticWorldIsStable(t *testing.T) {
	gpu := openCPU(t)
	cfg := slicer.DefaultConfig()
	cfg.MaxTriangles = 1024
	ctx, err := slicer.New(gpu, cfg, hypercubeWorld(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cam := identityCamera()
	if _, err := ctx.Frame(cam, 0); err != nil {
		t.Fatalf("Frame 1: %v", err)
	}
	c1, _ := ctx.Saturation()
	// No entity changed: the second frame skips staging and must
	// produce the same count.
	if _, err := ctx.Frame(cam, 0); err != nil {
		t.Fatalf("Frame 2: %v", err)
	}
	c2, _ := ctx.Saturation()
	if c1 != c2 {
		t.Fatalf("static world changed counts across frames: %d then %d", c1, c2)
	}
}

func TestFrameRejectsNonOrthonormalCamera(t *testing.T) {
	gpu := openCPU(t)
	cfg := slicer.DefaultConfig()
	cfg.MaxTriangles = 64
	ctx, err := slicer.New(gpu, cfg, hypercubeWorld(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cam := identityCamera()
	cam.rot[0][0] = 2 // scale, not a rotation
	if _, err := ctx.Frame(cam, 0); err == nil {
		t.Fatal("expected Frame to reject a non-orthonormal camera rotation")
	}
}
