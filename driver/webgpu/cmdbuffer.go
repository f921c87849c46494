// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package webgpu

import (
	"errors"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/fourslice/tesseract/driver"
)

var errMissingBinding = errors.New("webgpu: pipeline dispatched with a required binding unset")

type recordFn func(enc *wgpu.CommandEncoder) error

// cmdBufferImpl records driver.CmdBuffer calls as closures over a
// *wgpu.CommandEncoder, the same command-closure shape driver/cpu
// uses, except each closure here encodes a real GPU command instead
// of running Go code directly.
type cmdBufferImpl struct {
	gpu      *gpuImpl
	recorded []recordFn

	pipeline *pipelineImpl
	table    *descTableImpl
	heapCopy []int
}

func (c *cmdBufferImpl) Destroy() {}

func (c *cmdBufferImpl) Begin() error {
	c.recorded = c.recorded[:0]
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
	c.heapCopy = append([]int(nil), heapCopy...)
}

func (c *cmdBufferImpl) dispatchRecord(x, y, z uint32, indirect *bufferImpl, indirectOff int64) recordFn {
	pl, tbl, hc := c.pipeline, c.table, c.heapCopy
	return func(enc *wgpu.CommandEncoder) error {
		if pl == nil || tbl == nil {
			return errMissingBinding
		}
		bg, err := tbl.bindGroup(hc)
		if err != nil {
			return err
		}
		pass := enc.BeginComputePass(nil)
		pass.SetPipeline(pl.pipeline)
		pass.SetBindGroup(0, bg, nil)
		if indirect != nil {
			pass.DispatchWorkgroupsIndirect(indirect.buf, uint64(indirectOff))
		} else {
			pass.DispatchWorkgroups(x, y, z)
		}
		pass.End()
		pass.Release()
		bg.Release()
		return nil
	}
}

func (c *cmdBufferImpl) Dispatch(grpCountX, grpCountY, grpCountZ int) {
	c.recorded = append(c.recorded,
		c.dispatchRecord(uint32(grpCountX), uint32(grpCountY), uint32(grpCountZ), nil, 0))
}

func (c *cmdBufferImpl) DispatchIndirect(buf driver.Buffer, off int64) {
	c.recorded = append(c.recorded, c.dispatchRecord(0, 0, 0, buf.(*bufferImpl), off))
}

func (c *cmdBufferImpl) CopyBuffer(param *driver.BufferCopy) {
	from := param.From.(*bufferImpl)
	to := param.To.(*bufferImpl)
	fromOff, toOff, size := param.FromOff, param.ToOff, param.Size
	c.recorded = append(c.recorded, func(enc *wgpu.CommandEncoder) error {
		enc.CopyBufferToBuffer(from.buf, uint64(fromOff), to.buf, uint64(toOff), uint64(size))
		return nil
	})
}

// Fill records a buffer fill. The slicer only ever fills with zero
// (resetting the atomic counter each frame), which maps directly
// onto ClearBuffer; a non-zero pattern falls back to writing through
// the host mirror immediately, since ClearBuffer only supports zero.
func (c *cmdBufferImpl) Fill(buf driver.Buffer, off int64, value byte, size int64) {
	b := buf.(*bufferImpl)
	if value == 0 {
		c.recorded = append(c.recorded, func(enc *wgpu.CommandEncoder) error {
			enc.ClearBuffer(b.buf, uint64(off), uint64(size))
			return nil
		})
		return
	}
	if b.mirror != nil {
		for i := off; i < off+size; i++ {
			b.mirror[i] = value
		}
	}
}

func (c *cmdBufferImpl) Barrier(b []driver.Barrier) {
	// wgpu tracks storage-buffer read/write hazards automatically
	// between passes recorded on the same command encoder; there is
	// no explicit barrier command in the WebGPU API surface.
}

func (c *cmdBufferImpl) End() error { return nil }

func (c *cmdBufferImpl) Reset() error {
	c.recorded = nil
	return nil
}

func (c *cmdBufferImpl) record(enc *wgpu.CommandEncoder) error {
	for _, fn := range c.recorded {
		if err := fn(enc); err != nil {
			return err
		}
	}
	return nil
}
