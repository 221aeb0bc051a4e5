// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native runs CRT filters on the GPU through gogpu/wgpu.
//
// A Compiler turns each filter's WGSL into SPIR-V with gogpu/naga and
// creates the render pipeline, bind group layout and uniform buffer the
// filter needs. Register it before building filters:
//
//	c := native.New(device, queue)
//	crt.RegisterCompiler(c)
//	defer c.Destroy()
//
//	p, err := crt.NewPipeline(crt.ArcadePreset())
//
// A Renderer executes filters on hal textures and implements crt.Host, so a
// whole pipeline can run through Pipeline.Apply:
//
//	r := native.NewRenderer(c)
//	src := r.WrapTexture(tex, view, width, height)
//	err = p.Apply(r, src, dst)
//
// All stages share one fullscreen-triangle vertex stage and the bind group
// layout uniform (binding 0), input texture (binding 1), sampler (binding 2).
package native
