// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package cpu

import (
	"github.com/fourslice/tesseract/driver"
)

type bufferImpl struct {
	data    []byte
	visible bool
}

func (b *bufferImpl) Destroy()      { b.data = nil }
func (b *bufferImpl) Visible() bool { return b.visible }
func (b *bufferImpl) Bytes() []byte {
	if !b.visible {
		return nil
	}
	return b.data
}
func (b *bufferImpl) Cap() int64 { return int64(len(b.data)) }

// raw returns the buffer's bytes regardless of visibility. Only the
// cmdbuffer dispatch logic in this package, which stands in for the
// device, is allowed to see through a non-visible buffer this way.
func (b *bufferImpl) raw() []byte { return b.data }

type shaderCodeImpl struct{ src []byte }

func (s *shaderCodeImpl) Destroy() {}

type descHeapImpl struct {
	descs []driver.Descriptor
	// buffers[cpy][nr] holds the bound buffer for descriptor Nr in
	// heap copy cpy.
	buffers []map[int]*bufferImpl
}

func (h *descHeapImpl) Destroy() {}

func (h *descHeapImpl) New(n int) error {
	if n == len(h.buffers) {
		return nil
	}
	h.buffers = make([]map[int]*bufferImpl, n)
	for i := range h.buffers {
		h.buffers[i] = make(map[int]*bufferImpl)
	}
	return nil
}

func (h *descHeapImpl) SetBuffer(cpy, nr, start int, buf []driver.Buffer, off, size []int64) {
	if cpy < 0 || cpy >= len(h.buffers) || len(buf) == 0 {
		return
	}
	impl, ok := buf[0].(*bufferImpl)
	if !ok {
		return
	}
	h.buffers[cpy][nr] = impl
}

func (h *descHeapImpl) Count() int { return len(h.buffers) }

func (h *descHeapImpl) buffer(cpy, nr int) *bufferImpl {
	if cpy < 0 || cpy >= len(h.buffers) {
		return nil
	}
	return h.buffers[cpy][nr]
}

type descTableImpl struct {
	heaps []*descHeapImpl
}

func (t *descTableImpl) Destroy() {}

func (t *descTableImpl) buffer(nr int, heapCopy []int) *bufferImpl {
	for i, h := range t.heaps {
		cpy := 0
		if i < len(heapCopy) {
			cpy = heapCopy[i]
		}
		if b := h.buffer(cpy, nr); b != nil {
			return b
		}
	}
	return nil
}

type pipelineImpl struct {
	entry string
	table *descTableImpl
}

func (p *pipelineImpl) Destroy() {}
