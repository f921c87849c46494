// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package webgpu

import (
	"errors"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/gogpu/gputypes"
)

var errReadback = errors.New("webgpu: buffer readback failed")

// bufferImpl pairs a real device buffer with an optional host-side
// mirror. Host-visible buffers (visible=true) expose the mirror
// through Bytes, matching driver.Buffer's contract that non-visible
// buffers return nil.
type bufferImpl struct {
	gpu      *gpuImpl
	buf      *wgpu.Buffer
	mirror   []byte
	size     uint64
	visible  bool
	writable bool // true if the shader can write this buffer
}

func (b *bufferImpl) Destroy() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
	b.mirror = nil
}

func (b *bufferImpl) Visible() bool { return b.visible }

func (b *bufferImpl) Bytes() []byte {
	if !b.visible {
		return nil
	}
	return b.mirror
}

func (b *bufferImpl) Cap() int64 { return int64(b.size) }

// readback copies the device buffer's current contents into mirror
// via a temporary MapRead staging buffer: copy, submit, poll,
// MapAsync, GetMappedRange, Unmap — the same round trip
// go-webgpu-webgpu's compute example uses to recover GPU-written
// results.
func (b *bufferImpl) readback() error {
	dev := b.gpu.device
	staging := dev.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		Size:  b.size,
	})
	if staging == nil {
		return errReadback
	}
	defer staging.Release()

	enc := dev.CreateCommandEncoder(nil)
	enc.CopyBufferToBuffer(b.buf, 0, staging, 0, b.size)
	cmdBuf := enc.Finish(nil)
	enc.Release()

	b.gpu.queue.Submit(cmdBuf)
	cmdBuf.Release()
	dev.Poll(true)

	if err := staging.MapAsync(dev, wgpu.MapModeRead, 0, b.size); err != nil {
		return err
	}
	ptr := staging.GetMappedRange(0, b.size)
	if ptr == nil {
		return errReadback
	}
	copy(b.mirror, unsafe.Slice((*byte)(ptr), b.size))
	staging.Unmap()
	return nil
}

// shaderCodeImpl wraps a compiled WGSL shader module.
type shaderCodeImpl struct {
	module *wgpu.ShaderModule
}

func (s *shaderCodeImpl) Destroy() {
	if s.module != nil {
		s.module.Release()
		s.module = nil
	}
}

// pipelineImpl wraps a compute pipeline together with the
// descriptor table it was built against, so cmdBufferImpl.SetPipeline
// can recover the table the way driver/cpu's pipelineImpl does.
type pipelineImpl struct {
	pipeline *wgpu.ComputePipeline
	table    *descTableImpl
}

func (p *pipelineImpl) Destroy() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
}
