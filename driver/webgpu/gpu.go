// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/gogpu/gputypes"

	"github.com/fourslice/tesseract/driver"
)

// gpuImpl wraps a *wgpu.Device/*wgpu.Queue pair to implement
// driver.GPU. Buffers created with visible=true keep a host-side
// byte mirror, the same shape as driver/cpu's plain-slice buffers;
// the mirror is pushed to the device buffer at the start of every
// Commit, and, for buffers the shader itself writes (the atomic
// counter), read back afterwards through a mapped staging copy —
// the same MapAsync/GetMappedRange round trip go-webgpu-webgpu's
// compute example uses to recover GPU-written results.
type gpuImpl struct {
	drv      *webgpuDriver
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	limits   driver.Limits

	buffers []*bufferImpl
}

func newGPU(drv *webgpuDriver, inst *wgpu.Instance, ad *wgpu.Adapter, dev *wgpu.Device, q *wgpu.Queue) *gpuImpl {
	return &gpuImpl{
		drv:      drv,
		instance: inst,
		adapter:  ad,
		device:   dev,
		queue:    q,
		limits:   queryLimits(ad),
	}
}

// queryLimits translates the adapter's reported WebGPU limits into
// driver.Limits, falling back to conservative defaults for any field
// the adapter failed to report.
func queryLimits(ad *wgpu.Adapter) driver.Limits {
	lim := driver.Limits{
		MaxDescHeaps:            4,
		MaxDBuffer:              8,
		MaxDConstant:            4,
		MaxDBufferRange:         128 << 20,
		MaxDConstantRange:       64 << 10,
		MaxDispatch:             [3]int{65535, 65535, 65535},
		MaxWorkgroupInvocations: 256,
	}
	sup, err := ad.GetLimits()
	if err != nil || sup == nil {
		return lim
	}
	l := sup.Limits
	if l.MaxStorageBufferBindingSize > 0 {
		lim.MaxDBufferRange = int64(l.MaxStorageBufferBindingSize)
	}
	if l.MaxUniformBufferBindingSize > 0 {
		lim.MaxDConstantRange = int64(l.MaxUniformBufferBindingSize)
	}
	if l.MaxStorageBuffersPerShaderStage > 0 {
		lim.MaxDBuffer = int(l.MaxStorageBuffersPerShaderStage)
	}
	if l.MaxUniformBuffersPerShaderStage > 0 {
		lim.MaxDConstant = int(l.MaxUniformBuffersPerShaderStage)
	}
	if l.MaxComputeWorkgroupsPerDimension > 0 {
		n := int(l.MaxComputeWorkgroupsPerDimension)
		lim.MaxDispatch = [3]int{n, n, n}
	}
	if l.MaxComputeInvocationsPerWorkgroup > 0 {
		lim.MaxWorkgroupInvocations = int(l.MaxComputeInvocationsPerWorkgroup)
	}
	if l.MaxBindGroups > 0 {
		lim.MaxDescHeaps = int(l.MaxBindGroups)
	}
	return lim
}

func (g *gpuImpl) Driver() driver.Driver { return g.drv }

func (g *gpuImpl) Limits() driver.Limits { return g.limits }

func (g *gpuImpl) NewShaderCode(data []byte) (driver.ShaderCode, error) {
	mod := g.device.CreateShaderModuleWGSL(string(data))
	if mod == nil {
		return nil, driver.ErrFatal
	}
	return &shaderCodeImpl{module: mod}, nil
}

// NewBuffer creates a storage/uniform/indirect buffer sized and
// used according to usg. Every buffer is created CopyDst so its
// mirror can be pushed with Queue.WriteBuffer; host-visible buffers
// also get CopySrc so a writable one (the atomic counter) can be
// read back through a staging copy.
func (g *gpuImpl) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	if size <= 0 {
		size = 4
	}
	usage := translateUsage(usg) | gputypes.BufferUsageCopyDst
	if visible {
		usage |= gputypes.BufferUsageCopySrc
	}
	buf := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  uint64(size),
	})
	if buf == nil {
		return nil, driver.ErrNoDeviceMemory
	}
	b := &bufferImpl{
		gpu:      g,
		buf:      buf,
		size:     uint64(size),
		visible:  visible,
		writable: visible && usg&driver.UShaderWrite != 0,
	}
	if visible {
		b.mirror = make([]byte, size)
	}
	g.buffers = append(g.buffers, b)
	return b, nil
}

func translateUsage(usg driver.Usage) gputypes.BufferUsage {
	var u gputypes.BufferUsage
	if usg&driver.UShaderConst != 0 {
		u |= gputypes.BufferUsageUniform
	}
	if usg&(driver.UShaderRead|driver.UShaderWrite) != 0 {
		u |= gputypes.BufferUsageStorage
	}
	if usg&driver.UIndirect != 0 {
		u |= gputypes.BufferUsageIndirect
	}
	if u == 0 {
		u = gputypes.BufferUsageStorage
	}
	return u
}

func (g *gpuImpl) NewDescHeap(ds []driver.Descriptor) (driver.DescHeap, error) {
	return &descHeapImpl{descs: append([]driver.Descriptor(nil), ds...)}, nil
}

func (g *gpuImpl) NewDescTable(dh []driver.DescHeap) (driver.DescTable, error) {
	heaps := make([]*descHeapImpl, len(dh))
	for i, h := range dh {
		heaps[i] = h.(*descHeapImpl)
	}
	t := &descTableImpl{gpu: g, heaps: heaps}
	if err := t.buildLayout(); err != nil {
		return nil, err
	}
	return t, nil
}

func (g *gpuImpl) NewPipeline(state *driver.CompState) (driver.Pipeline, error) {
	table := state.Desc.(*descTableImpl)
	code := state.Func.Code.(*shaderCodeImpl)

	layout := g.device.CreatePipelineLayoutSimple([]*wgpu.BindGroupLayout{table.layout})
	if layout == nil {
		return nil, driver.ErrFatal
	}
	pl := g.device.CreateComputePipelineSimple(layout, code.module, state.Func.Name)
	layout.Release()
	if pl == nil {
		return nil, driver.ErrFatal
	}
	return &pipelineImpl{pipeline: pl, table: table}, nil
}

func (g *gpuImpl) NewCmdBuffer() (driver.CmdBuffer, error) {
	return &cmdBufferImpl{gpu: g}, nil
}

// Commit flushes every host-visible buffer's mirror to the device,
// encodes and submits the command buffers in order, waits for
// completion, and reads back any buffer the shader may have
// written (the atomic counter).
func (g *gpuImpl) Commit(cb []driver.CmdBuffer, ch chan<- error) {
	g.flushVisible()

	enc := g.device.CreateCommandEncoder(nil)
	var err error
	for _, c := range cb {
		if c == nil {
			continue
		}
		if e := c.(*cmdBufferImpl).record(enc); e != nil {
			err = e
			break
		}
	}

	var cmdBuf *wgpu.CommandBuffer
	if err == nil {
		cmdBuf = enc.Finish(nil)
	}
	enc.Release()

	if err == nil && cmdBuf != nil {
		g.queue.Submit(cmdBuf)
		cmdBuf.Release()
		g.device.Poll(true)
		err = g.readbackWritable()
	}

	if ch != nil {
		ch <- err
	}
}

func (g *gpuImpl) flushVisible() {
	for _, b := range g.buffers {
		if b.visible && b.mirror != nil {
			g.queue.WriteBuffer(b.buf, 0, b.mirror)
		}
	}
}

func (g *gpuImpl) readbackWritable() error {
	for _, b := range g.buffers {
		if b.writable {
			if err := b.readback(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *gpuImpl) release() {
	for _, b := range g.buffers {
		b.Destroy()
	}
	g.buffers = nil
	if g.queue != nil {
		g.queue.Release()
	}
	if g.device != nil {
		g.device.Release()
	}
	if g.adapter != nil {
		g.adapter.Release()
	}
	if g.instance != nil {
		g.instance.Release()
	}
}
