// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package cpu

import "github.com/fourslice/tesseract/driver"

type gpuImpl struct {
	drv *cpuDriver
}

func (g *gpuImpl) Driver() driver.Driver { return g.drv }

func (g *gpuImpl) Commit(cb []driver.CmdBuffer, ch chan<- error) {
	var err error
	for _, c := range cb {
		if c == nil {
			continue
		}
		if e := c.(*cmdBufferImpl).execute(); e != nil {
			err = e
			break
		}
	}
	if ch != nil {
		ch <- err
	}
}

func (g *gpuImpl) NewCmdBuffer() (driver.CmdBuffer, error) {
	return &cmdBufferImpl{}, nil
}

func (g *gpuImpl) NewShaderCode(data []byte) (driver.ShaderCode, error) {
	return &shaderCodeImpl{src: data}, nil
}

func (g *gpuImpl) NewDescHeap(ds []driver.Descriptor) (driver.DescHeap, error) {
	return &descHeapImpl{descs: ds}, nil
}

func (g *gpuImpl) NewDescTable(dh []driver.DescHeap) (driver.DescTable, error) {
	heaps := make([]*descHeapImpl, len(dh))
	for i, h := range dh {
		heaps[i] = h.(*descHeapImpl)
	}
	return &descTableImpl{heaps: heaps}, nil
}

func (g *gpuImpl) NewPipeline(state *driver.CompState) (driver.Pipeline, error) {
	return &pipelineImpl{entry: state.Func.Name, table: state.Desc.(*descTableImpl)}, nil
}

func (g *gpuImpl) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	return &bufferImpl{data: make([]byte, size), visible: visible}, nil
}

func (g *gpuImpl) Limits() driver.Limits {
	return driver.Limits{
		MaxDescHeaps:            4,
		MaxDBuffer:              16,
		MaxDConstant:            8,
		MaxDBufferRange:         1 << 30,
		MaxDConstantRange:       1 << 16,
		MaxDispatch:             [3]int{1 << 16, 1 << 16, 1 << 16},
		MaxWorkgroupInvocations: 1024,
	}
}
