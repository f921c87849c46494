// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package slicer implements the marching-pentatopes slicing kernel and
// the GPU dispatch orchestrator that drives it once per frame.
package slicer

import "github.com/fourslice/tesseract/driver"

// Binding numbers shared by the slice kernel's WGSL source, the
// compute pipelines built from it, and both driver/cpu and
// driver/webgpu's descriptor-table wiring.
const (
	BindingVertex    = 0
	BindingPentatope = 1
	BindingUniform   = 2
	BindingOutput    = 3
	BindingCounter   = 4
	BindingIndirect  = 5
)

// TriangleByteSize is the per-triangle footprint of the output
// buffer: three TriVertex records (see triangle.go), each
// triVertexByteSize bytes.
const TriangleByteSize = 3 * triVertexByteSize

const (
	dflMaxTriangles   = 200000
	dflWorkgroupSize  = 64
	dflUniformBuffers = 3
)

// Config configures a Context.
type Config struct {
	// The maximum number of triangles the output buffer can hold.
	// Clamped against the device's MaxDBufferRange limit divided by
	// TriangleByteSize.
	//
	// Default is 200000.
	MaxTriangles int

	// The number of pentatopes assigned to each compute workgroup.
	// This must match the workgroup size the slice kernel's shader
	// source was built with (64), so it only exists as a knob for
	// backends whose kernels are not compiled from that source.
	//
	// Default is 64.
	WorkgroupSize int

	// Prefer double-buffering the per-frame uniform, counter and
	// indirect-argument buffers rather than the default
	// triple-buffering.
	//
	// Default is false.
	DoubleBuffered bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxTriangles:  dflMaxTriangles,
		WorkgroupSize: dflWorkgroupSize,
	}
}

// frameCount returns the number of per-frame buffer copies to keep
// for the uniform, counter and indirect-argument buffers.
func (c *Config) frameCount() int {
	if c.DoubleBuffered {
		return 2
	}
	return dflUniformBuffers
}

// clampMaxTriangles lowers MaxTriangles, if necessary, so that the
// output buffer fits within the device's storage-buffer range limit.
func (c *Config) clampMaxTriangles(lim driver.Limits) int {
	max := c.MaxTriangles
	if lim.MaxDBufferRange > 0 {
		byRange := int(lim.MaxDBufferRange / TriangleByteSize)
		if byRange < max {
			max = byRange
		}
	}
	if max < 0 {
		max = 0
	}
	return max
}

// workgroups returns the number of workgroups needed to dispatch one
// thread per pentatope.
func (c *Config) workgroups(pentatopeCount int) int {
	ws := c.WorkgroupSize
	if ws <= 0 {
		ws = dflWorkgroupSize
	}
	return (pentatopeCount + ws - 1) / ws
}
