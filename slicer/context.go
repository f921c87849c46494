// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package slicer

import (
	"errors"

	"github.com/fourslice/tesseract/driver"
	"github.com/fourslice/tesseract/scene"
	"github.com/fourslice/tesseract/stage"
)

var (
	errNoDevice      = errors.New("slicer: gpu is nil")
	errBadCamera     = errors.New("slicer: camera rotation is not orthonormal")
	errShaderCompile = errors.New("slicer: failed to compile a kernel shader")
)

const orthoTol = 1e-4

// FrameResult is handed off to the external 3D render pass after a
// call to Context.Frame: a read-only triangle buffer, an
// indirect-draw-argument buffer, and the triangle capacity those
// buffers were sized for.
type FrameResult struct {
	Triangles driver.Buffer
	Indirect  driver.Buffer
	Capacity  int
}

// Context owns the device, buffers and compute pipelines that
// implement the per-frame slicing sequence: re-stage on dirty,
// upload the camera uniform, reset the counter, dispatch the slice
// kernel, bridge the counter into the indirect-draw argument buffer.
type Context struct {
	gpu   driver.GPU
	cfg   Config
	world *scene.World

	maxTriangles int
	frameCount   int
	frameIndex   int

	cmd driver.CmdBuffer

	sliceCode  driver.ShaderCode
	bridgeCode driver.ShaderCode

	sliceHeap  driver.DescHeap
	sliceTable driver.DescTable
	slicePL    driver.Pipeline

	bridgeHeap  driver.DescHeap
	bridgeTable driver.DescTable
	bridgePL    driver.Pipeline

	vertexBuf      driver.Buffer
	pentBuf        driver.Buffer
	outBuf         driver.Buffer
	pentatopeCount int

	uniformBufs  []driver.Buffer
	counterBufs  []driver.Buffer
	indirectBufs []driver.Buffer
}

// New creates a Context bound to gpu and w, compiling the slice and
// bridge kernels and allocating the output/counter/indirect buffers
// sized against cfg and the device's limits.
func New(gpu driver.GPU, cfg Config, w *scene.World) (*Context, error) {
	if gpu == nil {
		return nil, errNoDevice
	}

	c := &Context{
		gpu:          gpu,
		cfg:          cfg,
		world:        w,
		maxTriangles: cfg.clampMaxTriangles(gpu.Limits()),
		frameCount:   cfg.frameCount(),
	}

	var err error
	if c.sliceCode, err = gpu.NewShaderCode([]byte(SliceKernelWGSL)); err != nil {
		return nil, errShaderCompile
	}
	if c.bridgeCode, err = gpu.NewShaderCode([]byte(BridgeKernelWGSL)); err != nil {
		return nil, errShaderCompile
	}

	if err = c.buildSlicePipeline(); err != nil {
		return nil, err
	}
	if err = c.buildBridgePipeline(); err != nil {
		return nil, err
	}

	c.outBuf, err = gpu.NewBuffer(int64(c.maxTriangles)*TriangleByteSize, false,
		driver.UShaderRead|driver.UShaderWrite)
	if err != nil {
		return nil, err
	}

	c.uniformBufs = make([]driver.Buffer, c.frameCount)
	c.counterBufs = make([]driver.Buffer, c.frameCount)
	c.indirectBufs = make([]driver.Buffer, c.frameCount)
	for i := 0; i < c.frameCount; i++ {
		if c.uniformBufs[i], err = gpu.NewBuffer(UniformByteSize, true, driver.UShaderConst); err != nil {
			return nil, err
		}
		if c.counterBufs[i], err = gpu.NewBuffer(4, true, driver.UShaderRead|driver.UShaderWrite); err != nil {
			return nil, err
		}
		if c.indirectBufs[i], err = gpu.NewBuffer(IndirectArgsByteSize, true,
			driver.UIndirect|driver.UShaderWrite); err != nil {
			return nil, err
		}
	}

	if c.cmd, err = gpu.NewCmdBuffer(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Context) buildSlicePipeline() error {
	heap, err := c.gpu.NewDescHeap([]driver.Descriptor{
		{Type: driver.DBufferRO, Stages: driver.SCompute, Nr: BindingVertex, Len: 1},
		{Type: driver.DBufferRO, Stages: driver.SCompute, Nr: BindingPentatope, Len: 1},
		{Type: driver.DConstant, Stages: driver.SCompute, Nr: BindingUniform, Len: 1},
		{Type: driver.DBuffer, Stages: driver.SCompute, Nr: BindingOutput, Len: 1},
		{Type: driver.DBuffer, Stages: driver.SCompute, Nr: BindingCounter, Len: 1},
	})
	if err != nil {
		return err
	}
	if err = heap.New(1); err != nil {
		return err
	}
	table, err := c.gpu.NewDescTable([]driver.DescHeap{heap})
	if err != nil {
		return err
	}
	pl, err := c.gpu.NewPipeline(&driver.CompState{
		Func: driver.ShaderFunc{Code: c.sliceCode, Name: SliceKernelEntryPoint},
		Desc: table,
	})
	if err != nil {
		return err
	}
	c.sliceHeap, c.sliceTable, c.slicePL = heap, table, pl
	return nil
}

func (c *Context) buildBridgePipeline() error {
	heap, err := c.gpu.NewDescHeap([]driver.Descriptor{
		{Type: driver.DBufferRO, Stages: driver.SCompute, Nr: BindingCounter, Len: 1},
		{Type: driver.DBuffer, Stages: driver.SCompute, Nr: BindingIndirect, Len: 1},
	})
	if err != nil {
		return err
	}
	if err = heap.New(1); err != nil {
		return err
	}
	table, err := c.gpu.NewDescTable([]driver.DescHeap{heap})
	if err != nil {
		return err
	}
	pl, err := c.gpu.NewPipeline(&driver.CompState{
		Func: driver.ShaderFunc{Code: c.bridgeCode, Name: BridgeKernelEntryPoint},
		Desc: table,
	})
	if err != nil {
		return err
	}
	c.bridgeHeap, c.bridgeTable, c.bridgePL = heap, table, pl
	return nil
}

// ensureGeometryBuffers (re)creates the device vertex/pentatope
// buffers if the current ones are too small for st, and rebinds
// them into the slice pipeline's descriptor heap.
func (c *Context) ensureGeometryBuffers(st *stage.Staged) error {
	vertBytes := int64(len(st.Vertices)) * 32
	pentBytes := int64(len(st.Pentatopes)) * 20

	grew := false
	if c.vertexBuf == nil || c.vertexBuf.Cap() < vertBytes {
		if c.vertexBuf != nil {
			c.vertexBuf.Destroy()
		}
		buf, err := c.gpu.NewBuffer(vertBytes, true, driver.UShaderRead)
		if err != nil {
			return err
		}
		c.vertexBuf = buf
		grew = true
	}
	if c.pentBuf == nil || c.pentBuf.Cap() < pentBytes {
		if c.pentBuf != nil {
			c.pentBuf.Destroy()
		}
		buf, err := c.gpu.NewBuffer(pentBytes, true, driver.UShaderRead)
		if err != nil {
			return err
		}
		c.pentBuf = buf
		grew = true
	}

	EncodeVertices(c.vertexBuf.Bytes(), st.Vertices)
	EncodePentatopes(c.pentBuf.Bytes(), st.Pentatopes)

	if grew {
		c.sliceHeap.SetBuffer(0, BindingVertex, 0,
			[]driver.Buffer{c.vertexBuf}, []int64{0}, []int64{vertBytes})
		c.sliceHeap.SetBuffer(0, BindingPentatope, 0,
			[]driver.Buffer{c.pentBuf}, []int64{0}, []int64{pentBytes})
	}
	return nil
}

// Frame runs the six-step per-frame sequence described by the
// orchestrator's responsibility: re-stage on dirty, upload the
// camera uniform, reset the counter, dispatch the slice kernel,
// bridge the counter into the indirect-draw argument buffer, and
// return the buffers the 3D render pass needs.
func (c *Context) Frame(cam Camera, sliceW float32) (FrameResult, error) {
	rot := cam.Rotation()
	if !rot.Orthonormal(orthoTol) {
		return FrameResult{}, errBadCamera
	}
	pos := cam.Position()

	if st, ok := stage.Rebuild(c.world); ok {
		if err := c.ensureGeometryBuffers(st); err != nil {
			return FrameResult{}, err
		}
		c.pentatopeCount = len(st.Pentatopes)
	}

	i := c.frameIndex % c.frameCount
	c.frameIndex++

	EncodeUniform(c.uniformBufs[i].Bytes(), rot, pos, sliceW, uint32(c.pentatopeCount))

	c.sliceHeap.SetBuffer(0, BindingUniform, 0,
		[]driver.Buffer{c.uniformBufs[i]}, []int64{0}, []int64{UniformByteSize})
	c.sliceHeap.SetBuffer(0, BindingOutput, 0,
		[]driver.Buffer{c.outBuf}, []int64{0}, []int64{c.outBuf.Cap()})
	c.sliceHeap.SetBuffer(0, BindingCounter, 0,
		[]driver.Buffer{c.counterBufs[i]}, []int64{0}, []int64{4})
	c.bridgeHeap.SetBuffer(0, BindingCounter, 0,
		[]driver.Buffer{c.counterBufs[i]}, []int64{0}, []int64{4})
	c.bridgeHeap.SetBuffer(0, BindingIndirect, 0,
		[]driver.Buffer{c.indirectBufs[i]}, []int64{0}, []int64{IndirectArgsByteSize})

	if err := c.cmd.Reset(); err != nil {
		return FrameResult{}, err
	}
	if err := c.cmd.Begin(); err != nil {
		return FrameResult{}, err
	}

	c.cmd.BeginBlit(false)
	c.cmd.Fill(c.counterBufs[i], 0, 0, 4)
	c.cmd.EndBlit()

	c.cmd.BeginWork(true)
	c.cmd.SetPipeline(c.slicePL)
	c.cmd.SetDescTableComp(c.sliceTable, 0, []int{0})
	if groups := c.cfg.workgroups(c.pentatopeCount); groups > 0 {
		c.cmd.Dispatch(groups, 1, 1)
	}
	c.cmd.EndWork()

	c.cmd.Barrier([]driver.Barrier{{
		SyncBefore: driver.SComputeShading, SyncAfter: driver.SComputeShading,
		AccessBefore: driver.AShaderWrite, AccessAfter: driver.AShaderRead,
	}})

	c.cmd.BeginWork(true)
	c.cmd.SetPipeline(c.bridgePL)
	c.cmd.SetDescTableComp(c.bridgeTable, 0, []int{0})
	c.cmd.Dispatch(1, 1, 1)
	c.cmd.EndWork()

	c.cmd.Barrier([]driver.Barrier{{
		SyncBefore: driver.SComputeShading, SyncAfter: driver.SAll,
		AccessBefore: driver.AShaderWrite, AccessAfter: driver.AIndirectRead,
	}})

	if err := c.cmd.End(); err != nil {
		return FrameResult{}, err
	}

	ch := make(chan error, 1)
	c.gpu.Commit([]driver.CmdBuffer{c.cmd}, ch)
	if err := <-ch; err != nil {
		return FrameResult{}, err
	}

	return FrameResult{
		Triangles: c.outBuf,
		Indirect:  c.indirectBufs[i],
		Capacity:  c.maxTriangles,
	}, nil
}

// Saturation samples the most recently written counter buffer and
// returns it alongside the output buffer's triangle capacity, so
// callers can detect capacity saturation out-of-band as described
// by the core's diagnostic contract.
func (c *Context) Saturation() (counter, capacity uint32) {
	i := (c.frameIndex - 1 + c.frameCount) % c.frameCount
	if i < 0 || c.counterBufs[i] == nil {
		return 0, uint32(c.maxTriangles)
	}
	return DecodeCounter(c.counterBufs[i].Bytes()), uint32(c.maxTriangles)
}
