// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package slicer

import (
	"fmt"
	"strings"

	"github.com/fourslice/tesseract/casetable"
	"github.com/fourslice/tesseract/geom"
)

// Entry point names shared by the compute pipelines built from the
// WGSL sources below and by driver/cpu, which dispatches by name
// instead of interpreting WGSL text.
const (
	SliceKernelEntryPoint  = "slice_main"
	BridgeKernelEntryPoint = "bridge_main"
)

// SliceKernelWGSL is the marching-pentatopes compute kernel: one
// thread per pentatope, case-table-driven triangulation of the
// cross-section with the w = u.sliceW hyperplane in camera space.
// It mirrors SlicePentatope in kernel.go field for field.
//
// The case tables are embedded as module-scope array literals,
// generated from casetable.EdgeMask/TriTable when this package is
// initialized, so the WGSL and the Go reference implementation can
// never disagree on a table entry. The output buffer is a flat f32
// array rather than an array of structs: the host-side triangle
// layout is tightly packed (11 floats per vertex) and a WGSL vec3
// struct member would be padded to 16 bytes.
var SliceKernelWGSL = buildSliceKernelWGSL()

const sliceKernelTemplate = `
struct Vertex {
	pos:  vec4<f32>,
	tint: vec4<f32>,
}

struct Uniforms {
	camRot:    mat4x4<f32>,
	camPos:    vec4<f32>,
	sliceW:    f32,
	pentCount: u32,
}

@group(0) @binding(0) var<storage, read> vertices: array<Vertex>;
@group(0) @binding(1) var<storage, read> pentatopes: array<u32>;
@group(0) @binding(2) var<uniform> u: Uniforms;
@group(0) @binding(3) var<storage, read_write> outTriangles: array<f32>;
@group(0) @binding(4) var<storage, read_write> counter: atomic<u32>;

// Pentatope edges in lexicographic vertex-pair order.
var<private> EDGE_A: array<u32, 10> = array<u32, 10>(%s);
var<private> EDGE_B: array<u32, 10> = array<u32, 10>(%s);

// Per case, which of the 10 edges the slice plane crosses.
var<private> EDGE_MASK: array<u32, 32> = array<u32, 32>(%s);

// Per case, up to 8 triangles as triples of intersection-point
// slots, padded with -1.
var<private> TRI_TABLE: array<i32, 768> = array<i32, 768>(
%s);

// 11 f32 per output vertex: position3, normal3, wDepth, tint4.
const VERTEX_FLOATS: u32 = 11u;

fn write_vertex(off: u32, p: vec3<f32>, n: vec3<f32>, w: f32, t: vec4<f32>) {
	outTriangles[off + 0u] = p.x;
	outTriangles[off + 1u] = p.y;
	outTriangles[off + 2u] = p.z;
	outTriangles[off + 3u] = n.x;
	outTriangles[off + 4u] = n.y;
	outTriangles[off + 5u] = n.z;
	outTriangles[off + 6u] = w;
	outTriangles[off + 7u] = t.x;
	outTriangles[off + 8u] = t.y;
	outTriangles[off + 9u] = t.z;
	outTriangles[off + 10u] = t.w;
}

@compute @workgroup_size(64)
fn slice_main(@builtin(global_invocation_id) gid: vec3<u32>) {
	let i = gid.x;
	if (i >= u.pentCount) {
		return;
	}

	var pos: array<vec4<f32>, 5>;
	var preW: array<f32, 5>;
	var tint: array<vec4<f32>, 5>;
	var c: u32 = 0u;
	for (var k = 0u; k < 5u; k = k + 1u) {
		let v = vertices[pentatopes[5u * i + k]];
		let rel = v.pos - u.camPos;
		let rotated = u.camRot * rel;
		pos[k] = rotated;
		preW[k] = rel.w;
		tint[k] = v.tint;
		if (rotated.w > u.sliceW) {
			c = c | (1u << k);
		}
	}
	if (c == 0u || c == 31u) {
		return;
	}

	// Intersection points, indexed by the edge's slot within the
	// case (its position among the crossed edges), not its global
	// edge number.
	let mask = EDGE_MASK[c];
	var px: array<vec3<f32>, 6>;
	var pw: array<f32, 6>;
	var pt: array<vec4<f32>, 6>;
	var nx = 0u;
	for (var k = 0u; k < 10u; k = k + 1u) {
		if ((mask & (1u << k)) == 0u) {
			continue;
		}
		let a = EDGE_A[k];
		let b = EDGE_B[k];
		let dw = pos[b].w - pos[a].w;
		var t: f32 = 0.5;
		if (abs(dw) > 1e-4) {
			t = (u.sliceW - pos[a].w) / dw;
		}
		px[nx] = mix(pos[a].xyz, pos[b].xyz, t);
		pw[nx] = mix(preW[a], preW[b], t);
		pt[nx] = mix(tint[a], tint[b], t);
		nx = nx + 1u;
	}

	let maxTris = arrayLength(&outTriangles) / (3u * VERTEX_FLOATS);
	let base = i32(c) * 24;
	for (var k = 0; k < 24; k = k + 3) {
		let i0 = TRI_TABLE[base + k];
		if (i0 < 0) {
			break;
		}
		let i1 = TRI_TABLE[base + k + 1];
		let i2 = TRI_TABLE[base + k + 2];
		let p0 = px[i0];
		let p1 = px[i1];
		let p2 = px[i2];
		var n = cross(p1 - p0, p2 - p0);
		let l = length(n);
		if (l > 0.0) {
			n = n / l;
		}

		let slot = atomicAdd(&counter, 1u);
		if (slot >= maxTris) {
			// The slot is lost; pin the counter back to capacity
			// so its final value reports exact saturation.
			atomicMin(&counter, maxTris);
			continue;
		}
		let off = slot * 3u * VERTEX_FLOATS;
		write_vertex(off, p0, n, pw[i0], pt[i0]);
		write_vertex(off + VERTEX_FLOATS, p1, n, pw[i1], pt[i1]);
		write_vertex(off + 2u * VERTEX_FLOATS, p2, n, pw[i2], pt[i2]);
	}
}
`

func buildSliceKernelWGSL() string {
	var ea, eb strings.Builder
	for k, e := range geom.Edges {
		if k > 0 {
			ea.WriteString(", ")
			eb.WriteString(", ")
		}
		fmt.Fprintf(&ea, "%du", e[0])
		fmt.Fprintf(&eb, "%du", e[1])
	}

	var em strings.Builder
	for c := 0; c < 32; c++ {
		if c > 0 {
			em.WriteString(", ")
		}
		fmt.Fprintf(&em, "%du", casetable.EdgeMask[c])
	}

	var tt strings.Builder
	for c := 0; c < 32; c++ {
		tt.WriteByte('\t')
		for k := 0; k < 24; k++ {
			v := int8(-1)
			if k < len(casetable.TriTable[c]) {
				v = casetable.TriTable[c][k]
			}
			fmt.Fprintf(&tt, "%d", v)
			if c < 31 || k < 23 {
				tt.WriteString(", ")
			}
		}
		tt.WriteByte('\n')
	}

	return fmt.Sprintf(sliceKernelTemplate, ea.String(), eb.String(), em.String(), tt.String())
}

// BridgeKernelWGSL is the indirect-draw bridge: one thread, one
// workgroup, run after the slice kernel completes. It reads the
// triangle counter and writes the 4-u32 indirect-draw-argument
// block {vertexCount=3*counter, instanceCount=1, firstVertex=0,
// firstInstance=0}.
const BridgeKernelWGSL = `
@group(0) @binding(4) var<storage, read> counter: u32;
@group(0) @binding(5) var<storage, read_write> indirectArgs: array<u32, 4>;

@compute @workgroup_size(1)
fn bridge_main() {
	indirectArgs[0] = counter * 3u;
	indirectArgs[1] = 1u;
	indirectArgs[2] = 0u;
	indirectArgs[3] = 0u;
}
`
