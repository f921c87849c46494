// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package cpu implements a software driver.Driver backend: buffers
// are plain Go byte slices, and compute dispatch runs a fixed number
// of logical threads against a Go closure standing in for the
// compute program, grounded on the BufferDescriptor/DispatchContext
// shape of a vendored software GPU driver (gioui.org/cpu) but
// entirely cgo-free. It exists so the slicing pipeline's correctness
// can be exercised by go test without a GPU, and is the backend the
// test suite registers and selects.
package cpu

import (
	"github.com/fourslice/tesseract/driver"
)

const driverName = "cpu"

type cpuDriver struct {
	gpu *gpuImpl
}

func (d *cpuDriver) Open() (driver.GPU, error) {
	if d.gpu == nil {
		d.gpu = &gpuImpl{drv: d}
	}
	return d.gpu, nil
}

func (d *cpuDriver) Name() string { return driverName }

func (d *cpuDriver) Close() { d.gpu = nil }

func init() {
	driver.Register(&cpuDriver{})
}
