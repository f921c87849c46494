// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Slicedemo runs the 4D slicing pipeline headlessly for a fixed
// number of frames and reports the per-frame triangle counts. It is
// the smallest complete wiring of the module: a world with a
// hypercube and a floor, a camera rotating through the XW plane, and
// the context driving the slice and bridge kernels on whichever
// driver ctxt selected.
package main

import (
	"flag"
	"log"
	"math"

	"github.com/fourslice/tesseract/geom"
	"github.com/fourslice/tesseract/internal/ctxt"
	"github.com/fourslice/tesseract/linear"
	"github.com/fourslice/tesseract/scene"
	"github.com/fourslice/tesseract/slicer"
)

var (
	frames = flag.Int("frames", 64, "number of frames to slice")
	sliceW = flag.Float64("slicew", 0, "slice plane w coordinate")
)

type orbitCamera struct {
	rot linear.M4
	pos linear.V4
}

func (c *orbitCamera) Rotation() *linear.M4 { return &c.rot }
func (c *orbitCamera) Position() *linear.V4 { return &c.pos }

func main() {
	log.SetFlags(0)
	log.SetPrefix("slicedemo: ")
	flag.Parse()

	gpu := ctxt.GPU()
	log.Printf("driver '%s'", ctxt.Driver().Name())

	w := scene.NewWorld()
	var ident linear.M4
	ident.I()

	cube := scene.NewShapeRef(geom.Hypercube(2))
	w.Insert(cube, linear.V4{}, ident, 1, [4]float32{0.9, 0.6, 0.2, 1})
	floor := scene.NewShapeRef(geom.HyperplanarFloor(-2, 4, 1, 0.05))
	w.Insert(floor, linear.V4{}, ident, 1, [4]float32{0.4, 0.4, 0.5, 1})

	ctx, err := slicer.New(gpu, slicer.DefaultConfig(), w)
	if err != nil {
		log.Fatal(err)
	}

	cam := &orbitCamera{}
	for i := 0; i < *frames; i++ {
		var theta float32
		if *frames > 1 {
			theta = float32(i) * float32(math.Pi) / float32(*frames-1)
		}
		cam.rot = linear.RotXW(theta)
		if _, err := ctx.Frame(cam, float32(*sliceW)); err != nil {
			log.Fatal(err)
		}
		counter, capacity := ctx.Saturation()
		if counter == capacity {
			log.Printf("frame %3d: %d triangles (saturated)", i, counter)
		} else {
			log.Printf("frame %3d: %d triangles", i, counter)
		}
	}
}
