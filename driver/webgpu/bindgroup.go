// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/gogpu/gputypes"

	"github.com/fourslice/tesseract/driver"
)

// bufferBinding is the buffer currently bound to one descriptor
// number within one heap copy.
type bufferBinding struct {
	buf  *bufferImpl
	off  int64
	size int64
}

// descHeapImpl implements driver.DescHeap: a fixed set of descriptor
// slots (Descriptor.Nr), each rebindable per heap copy, mirroring
// driver/cpu's descHeapImpl but tracking bufferBinding instead of raw
// bytes.
type descHeapImpl struct {
	descs  []driver.Descriptor
	copies []map[int]bufferBinding
}

func (h *descHeapImpl) Destroy() {}

func (h *descHeapImpl) New(n int) error {
	if n == len(h.copies) {
		return nil
	}
	h.copies = make([]map[int]bufferBinding, n)
	for i := range h.copies {
		h.copies[i] = make(map[int]bufferBinding)
	}
	return nil
}

func (h *descHeapImpl) SetBuffer(cpy, nr, start int, buf []driver.Buffer, off, size []int64) {
	if cpy < 0 || cpy >= len(h.copies) || len(buf) == 0 {
		return
	}
	impl, ok := buf[0].(*bufferImpl)
	if !ok {
		return
	}
	var o, s int64
	if len(off) > 0 {
		o = off[0]
	}
	if len(size) > 0 {
		s = size[0]
	}
	h.copies[cpy][nr] = bufferBinding{buf: impl, off: o, size: s}
}

func (h *descHeapImpl) Count() int { return len(h.copies) }

func (h *descHeapImpl) binding(cpy, nr int) (bufferBinding, bool) {
	if cpy < 0 || cpy >= len(h.copies) {
		return bufferBinding{}, false
	}
	b, ok := h.copies[cpy][nr]
	return b, ok
}

// descTableImpl implements driver.DescTable: a single WebGPU
// @group(0) bind group layout built from every descriptor across all
// of its heaps, matching the cpu backend's flattening of multiple
// heaps into one search space.
type descTableImpl struct {
	gpu    *gpuImpl
	heaps  []*descHeapImpl
	layout *wgpu.BindGroupLayout
}

func (t *descTableImpl) Destroy() {
	if t.layout != nil {
		t.layout.Release()
		t.layout = nil
	}
}

func (t *descTableImpl) buildLayout() error {
	var entries []wgpu.BindGroupLayoutEntry
	for _, h := range t.heaps {
		for _, d := range h.descs {
			bindType := gputypes.BufferBindingTypeStorage
			switch d.Type {
			case driver.DBufferRO:
				bindType = gputypes.BufferBindingTypeReadOnlyStorage
			case driver.DConstant:
				bindType = gputypes.BufferBindingTypeUniform
			}
			entries = append(entries, wgpu.BindGroupLayoutEntry{
				Binding:    uint32(d.Nr),
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     wgpu.BufferBindingLayout{Type: bindType},
			})
		}
	}
	layout := t.gpu.device.CreateBindGroupLayoutSimple(entries)
	if layout == nil {
		return driver.ErrFatal
	}
	t.layout = layout
	return nil
}

// bindGroup builds a fresh *wgpu.BindGroup from whatever buffers are
// currently bound at heapCopy. The slicer's buffers change often
// enough (dirty-driven re-staging, per-frame multi-buffering) that
// rebuilding on every dispatch is simpler than invalidation tracking,
// and the binding count is small (at most six descriptors).
func (t *descTableImpl) bindGroup(heapCopy []int) (*wgpu.BindGroup, error) {
	var entries []wgpu.BindGroupEntry
	for i, h := range t.heaps {
		cpy := 0
		if i < len(heapCopy) {
			cpy = heapCopy[i]
		}
		for _, d := range h.descs {
			bd, ok := h.binding(cpy, d.Nr)
			if !ok || bd.buf == nil || bd.buf.buf == nil {
				return nil, errMissingBinding
			}
			size := bd.size
			if size == 0 {
				size = int64(bd.buf.size) - bd.off
			}
			entries = append(entries, wgpu.BufferBindingEntry(
				uint32(d.Nr), bd.buf.buf, uint64(bd.off), uint64(size)))
		}
	}
	bg := t.gpu.device.CreateBindGroupSimple(t.layout, entries)
	if bg == nil {
		return nil, errMissingBinding
	}
	return bg, nil
}
