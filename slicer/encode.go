// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package slicer

import (
	"encoding/binary"
	"math"

	"github.com/fourslice/tesseract/geom"
	"github.com/fourslice/tesseract/linear"
)

// UniformByteSize is the size, in bytes, of the uniform block read
// by the slice kernel: the camera rotation matrix (16 float32,
// column-major, matching linear.M4's m[col][row] convention), the
// camera position (4 float32), the slice-plane scalar, and the
// pentatope count, padded to a 16-byte multiple.
const UniformByteSize = 16*4 + 4*4 + 4 + 4 + 8 // = 96

func putFloat32(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
}

func getFloat32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

// EncodeUniform writes the per-frame uniform block into b, which
// must be at least UniformByteSize bytes long. Context writes every
// frame's uniform block with it, for any backend; driver/cpu reads
// the block back with DecodeUniform. The layout matches the Uniforms
// struct in the WGSL source in kernel.wgsl.go.
func EncodeUniform(b []byte, rot *linear.M4, pos *linear.V4, sliceW float32, pentatopeCount uint32) {
	off := 0
	for col := range rot {
		for row := range rot[col] {
			putFloat32(b, off, rot[col][row])
			off += 4
		}
	}
	for i := range pos {
		putFloat32(b, off, pos[i])
		off += 4
	}
	putFloat32(b, off, sliceW)
	off += 4
	binary.LittleEndian.PutUint32(b[off:], pentatopeCount)
}

// EncodeVertices writes vs into b in the layout the slice kernel
// reads: per vertex, 4 float32 position then 4 float32 tint.
func EncodeVertices(b []byte, vs []geom.Vertex) {
	off := 0
	for _, v := range vs {
		for i := range v.Pos {
			putFloat32(b, off, v.Pos[i])
			off += 4
		}
		for i := range v.Tint {
			putFloat32(b, off, v.Tint[i])
			off += 4
		}
	}
}

// EncodePentatopes writes ps into b as 5 consecutive uint32 indices
// per pentatope.
func EncodePentatopes(b []byte, ps []geom.Pentatope) {
	off := 0
	for _, p := range ps {
		for _, idx := range p {
			binary.LittleEndian.PutUint32(b[off:], idx)
			off += 4
		}
	}
}

// DecodeVertices is the inverse of EncodeVertices, used by
// driver/cpu to recover typed data from a raw device buffer.
func DecodeVertices(b []byte, n int) []geom.Vertex {
	const stride = 8 * 4
	out := make([]geom.Vertex, n)
	for i := range out {
		off := i * stride
		for j := range out[i].Pos {
			out[i].Pos[j] = getFloat32(b, off)
			off += 4
		}
		for j := range out[i].Tint {
			out[i].Tint[j] = getFloat32(b, off)
			off += 4
		}
	}
	return out
}

// DecodePentatopes is the inverse of EncodePentatopes.
func DecodePentatopes(b []byte, n int) []geom.Pentatope {
	const stride = 5 * 4
	out := make([]geom.Pentatope, n)
	for i := range out {
		off := i * stride
		for j := range out[i] {
			out[i][j] = binary.LittleEndian.Uint32(b[off:])
			off += 4
		}
	}
	return out
}

// DecodeUniform is the inverse of EncodeUniform.
func DecodeUniform(b []byte) (rot linear.M4, pos linear.V4, sliceW float32, pentatopeCount uint32) {
	off := 0
	for col := range rot {
		for row := range rot[col] {
			rot[col][row] = getFloat32(b, off)
			off += 4
		}
	}
	for i := range pos {
		pos[i] = getFloat32(b, off)
		off += 4
	}
	sliceW = getFloat32(b, off)
	off += 4
	pentatopeCount = binary.LittleEndian.Uint32(b[off:])
	return
}

// EncodeTriangle writes t into b at the given triangle slot.
func EncodeTriangle(b []byte, slot int, t Triangle) {
	off := slot * TriangleByteSize
	for _, tv := range t {
		for i := range tv.Position {
			putFloat32(b, off, tv.Position[i])
			off += 4
		}
		for i := range tv.Normal {
			putFloat32(b, off, tv.Normal[i])
			off += 4
		}
		putFloat32(b, off, tv.WDepth)
		off += 4
		for i := range tv.Tint {
			putFloat32(b, off, tv.Tint[i])
			off += 4
		}
	}
}

// DecodeCounter reads the single u32 atomic counter from b.
func DecodeCounter(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// EncodeCounter writes the single u32 atomic counter into b.
func EncodeCounter(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

// EncodeIndirectArgs writes the 4-u32 indirect-draw-argument block
// {vertexCount, instanceCount, firstVertex, firstInstance} into b.
func EncodeIndirectArgs(b []byte, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	binary.LittleEndian.PutUint32(b[0:], vertexCount)
	binary.LittleEndian.PutUint32(b[4:], instanceCount)
	binary.LittleEndian.PutUint32(b[8:], firstVertex)
	binary.LittleEndian.PutUint32(b[12:], firstInstance)
}

// IndirectArgsByteSize is the size, in bytes, of the indirect-draw
// argument buffer.
const IndirectArgsByteSize = 4 * 4
