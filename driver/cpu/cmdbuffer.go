// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package cpu

import (
	"errors"

	"github.com/fourslice/tesseract/driver"
	"github.com/fourslice/tesseract/slicer"
)

var errMissingBinding = errors.New("cpu: pipeline dispatched with a required binding unset")

type command func() error

// cmdBufferImpl records commands during Begin/End and runs them, in
// order, when the owning gpuImpl commits it. Dispatch does not run
// a real parallel loop; each "thread" is just an iteration of a Go
// for-loop, which is sufficient because the kernel's correctness
// depends only on disjoint atomic slot allocation, not on genuine
// concurrency.
type cmdBufferImpl struct {
	cmds     []command
	pipeline *pipelineImpl
	table    *descTableImpl
	heapCopy []int
}

func (c *cmdBufferImpl) Destroy() {}

func (c *cmdBufferImpl) Begin() error {
	c.cmds = c.cmds[:0]
	return nil
}

func (c *cmdBufferImpl) BeginWork(wait bool) {}
func (c *cmdBufferImpl) EndWork()            {}
func (c *cmdBufferImpl) BeginBlit(wait bool) {}
func (c *cmdBufferImpl) EndBlit()            {}

func (c *cmdBufferImpl) SetPipeline(pl driver.Pipeline) {
	c.pipeline = pl.(*pipelineImpl)
	c.table = c.pipeline.table
}

func (c *cmdBufferImpl) SetDescTableComp(table driver.DescTable, start int, heapCopy []int) {
	c.table = table.(*descTableImpl)
	c.heapCopy = heapCopy
}

func (c *cmdBufferImpl) Dispatch(grpCountX, grpCountY, grpCountZ int) {
	pl, tbl, hc := c.pipeline, c.table, c.heapCopy
	c.cmds = append(c.cmds, func() error { return runPipeline(pl, tbl, hc) })
}

func (c *cmdBufferImpl) DispatchIndirect(buf driver.Buffer, off int64) {
	// The pentatope count is read from the uniform block rather
	// than the indirect group-count words, so the group count
	// itself is not needed here.
	pl, tbl, hc := c.pipeline, c.table, c.heapCopy
	c.cmds = append(c.cmds, func() error { return runPipeline(pl, tbl, hc) })
}

func (c *cmdBufferImpl) CopyBuffer(param *driver.BufferCopy) {
	c.cmds = append(c.cmds, func() error {
		from := param.From.(*bufferImpl).raw()
		to := param.To.(*bufferImpl).raw()
		copy(to[param.ToOff:param.ToOff+param.Size], from[param.FromOff:param.FromOff+param.Size])
		return nil
	})
}

func (c *cmdBufferImpl) Fill(buf driver.Buffer, off int64, value byte, size int64) {
	c.cmds = append(c.cmds, func() error {
		b := buf.(*bufferImpl).raw()
		for i := off; i < off+size; i++ {
			b[i] = value
		}
		return nil
	})
}

func (c *cmdBufferImpl) Barrier(b []driver.Barrier) {
	// Single-threaded execution already orders every recorded
	// command sequentially; no action is needed.
}

func (c *cmdBufferImpl) End() error { return nil }

func (c *cmdBufferImpl) Reset() error {
	c.cmds = nil
	return nil
}

func (c *cmdBufferImpl) execute() error {
	for _, fn := range c.cmds {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func runPipeline(pl *pipelineImpl, tbl *descTableImpl, hc []int) error {
	if pl == nil || tbl == nil {
		return errMissingBinding
	}
	switch pl.entry {
	case slicer.SliceKernelEntryPoint:
		return runSliceKernel(tbl, hc)
	case slicer.BridgeKernelEntryPoint:
		return runBridgeKernel(tbl, hc)
	}
	return nil
}

func runSliceKernel(tbl *descTableImpl, hc []int) error {
	uBuf := tbl.buffer(slicer.BindingUniform, hc)
	cBuf := tbl.buffer(slicer.BindingCounter, hc)
	if uBuf == nil || cBuf == nil {
		return errMissingBinding
	}

	rot, pos, sliceW, pentCount := slicer.DecodeUniform(uBuf.raw())
	if pentCount == 0 {
		return nil
	}

	vBuf := tbl.buffer(slicer.BindingVertex, hc)
	pBuf := tbl.buffer(slicer.BindingPentatope, hc)
	oBuf := tbl.buffer(slicer.BindingOutput, hc)
	if vBuf == nil || pBuf == nil || oBuf == nil {
		return errMissingBinding
	}

	verts := slicer.DecodeVertices(vBuf.raw(), len(vBuf.raw())/32)
	pents := slicer.DecodePentatopes(pBuf.raw(), int(pentCount))
	maxTriangles := len(oBuf.raw()) / slicer.TriangleByteSize

	tris, counter := slicer.RunKernel(verts, pents, &rot, &pos, sliceW, maxTriangles)
	out := oBuf.raw()
	for i, t := range tris {
		slicer.EncodeTriangle(out, i, t)
	}
	slicer.EncodeCounter(cBuf.raw(), counter)
	return nil
}

func runBridgeKernel(tbl *descTableImpl, hc []int) error {
	cBuf := tbl.buffer(slicer.BindingCounter, hc)
	iBuf := tbl.buffer(slicer.BindingIndirect, hc)
	if cBuf == nil || iBuf == nil {
		return errMissingBinding
	}
	counter := slicer.DecodeCounter(cBuf.raw())
	slicer.EncodeIndirectArgs(iBuf.raw(), counter*3, 1, 0, 0)
	return nil
}
