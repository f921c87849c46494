// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package webgpu implements a driver.Driver backend on top of
// github.com/go-webgpu/webgpu, a cgo-free WebGPU binding. It is the
// slicer's production backend: storage buffers for the vertex/
// pentatope/output/counter data, a uniform buffer for the per-frame
// camera block, and compute pipelines built from the slice and
// bridge kernels' WGSL source in the slicer package.
package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/fourslice/tesseract/driver"
)

const driverName = "webgpu"

// webgpuDriver opens at most one gpuImpl, matching driver/cpu:
// repeated Open calls return the same GPU instance.
type webgpuDriver struct {
	gpu *gpuImpl
}

func (d *webgpuDriver) Name() string { return driverName }

// Open initializes the wgpu-native library, requests an adapter and
// device synchronously, and wraps them as a driver.GPU. Any failure
// along this chain is a Setup error in the core's terms: the device
// lacks compute support, or the platform wgpu-native library is not
// installed.
func (d *webgpuDriver) Open() (driver.GPU, error) {
	if d.gpu != nil {
		return d.gpu, nil
	}
	if err := wgpu.Init(); err != nil {
		return nil, driver.ErrNotInstalled
	}
	instance, err := wgpu.CreateInstance(nil)
	if err != nil || instance == nil {
		return nil, driver.ErrNotInstalled
	}
	adapter, err := instance.RequestAdapter(nil)
	if err != nil || adapter == nil {
		instance.Release()
		return nil, driver.ErrNoDevice
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil || device == nil {
		adapter.Release()
		instance.Release()
		return nil, driver.ErrNoDevice
	}
	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, driver.ErrNoDevice
	}

	d.gpu = newGPU(d, instance, adapter, device, queue)
	return d.gpu, nil
}

func (d *webgpuDriver) Close() {
	if d.gpu != nil {
		d.gpu.release()
		d.gpu = nil
	}
}

func init() {
	driver.Register(&webgpuDriver{})
}
