// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/crt"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Texture is a GPU texture the renderer can read from and draw into.
type Texture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
	owned  bool
	owner  *Renderer

	// usage is the last usage recorded by the renderer, for barriers.
	usage gputypes.TextureUsage
}

// Size implements crt.Texture.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// HalTexture returns the underlying texture.
func (t *Texture) HalTexture() hal.Texture { return t.tex }

// View returns the full-texture view used for sampling and rendering.
func (t *Texture) View() hal.TextureView { return t.view }

// Renderer draws filters with programs compiled by a Compiler. It implements
// crt.Host. Each call records and submits its own command buffer and waits
// for the device to go idle before returning.
type Renderer struct {
	c    *Compiler
	live atomic.Int64
}

// NewRenderer creates a renderer for programs compiled by c.
func NewRenderer(c *Compiler) *Renderer {
	return &Renderer{c: c}
}

// WrapTexture wraps a texture owned by the caller, e.g. a surface texture.
// The texture must have been created with the compiler's target format and
// TextureBinding or RenderAttachment usage as needed. ReleaseTexture does not
// destroy wrapped textures.
func (r *Renderer) WrapTexture(tex hal.Texture, view hal.TextureView, width, height int) *Texture {
	return &Texture{tex: tex, view: view, width: width, height: height, owner: r}
}

// NewTexture implements crt.Host.
func (r *Renderer) NewTexture(width, height int) (crt.Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if r.c.device == nil {
		return nil, ErrNotInitialized
	}
	format := r.c.TargetFormat()
	tex, err := r.c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "crt_intermediate",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}, //nolint:gosec // checked positive
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage: gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture: %w", err)
	}
	view, err := r.c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "crt_intermediate_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("native: create texture view: %w", err)
	}
	r.live.Add(1)
	return &Texture{tex: tex, view: view, width: width, height: height, owned: true, owner: r}, nil
}

// Textures returns the number of textures created by NewTexture and not yet
// released.
func (r *Renderer) Textures() int { return int(r.live.Load()) }

// ReleaseTexture implements crt.Host.
func (r *Renderer) ReleaseTexture(t crt.Texture) {
	nt, ok := t.(*Texture)
	if !ok || nt.owner != r || !nt.owned || nt.tex == nil {
		return
	}
	r.live.Add(-1)
	if nt.view != nil {
		r.c.device.DestroyTextureView(nt.view)
		nt.view = nil
	}
	if nt.tex != nil {
		r.c.device.DestroyTexture(nt.tex)
		nt.tex = nil
	}
}

// Upload writes premultiplied RGBA pixels into t. The image must match the
// texture size.
func (r *Renderer) Upload(t *Texture, img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != t.width || b.Dy() != t.height {
		return fmt.Errorf("%w: image %dx%d, texture %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy(), t.width, t.height)
	}
	w, h := uint32(t.width), uint32(t.height) //nolint:gosec // texture sizes are positive
	err := r.c.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		img.Pix[img.PixOffset(b.Min.X, b.Min.Y):],
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(img.Stride), RowsPerImage: h}, //nolint:gosec // stride fits
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("native: upload texture: %w", err)
	}
	t.usage = gputypes.TextureUsageCopyDst
	return nil
}

func (r *Renderer) texture(t crt.Texture) (*Texture, error) {
	if t == nil {
		return nil, crt.ErrNilTexture
	}
	nt, ok := t.(*Texture)
	if !ok || nt.owner != r {
		return nil, ErrForeignTexture
	}
	return nt, nil
}

// CopyTexture implements crt.Host.
func (r *Renderer) CopyTexture(src, dst crt.Texture) error {
	s, err := r.texture(src)
	if err != nil {
		return err
	}
	d, err := r.texture(dst)
	if err != nil {
		return err
	}
	w := uint32(min(s.width, d.width))   //nolint:gosec // texture sizes are positive
	h := uint32(min(s.height, d.height)) //nolint:gosec // texture sizes are positive

	return r.submit("crt_copy", func(encoder hal.CommandEncoder) {
		encoder.TransitionTextures([]hal.TextureBarrier{
			r.barrier(s, gputypes.TextureUsageCopySrc),
			r.barrier(d, gputypes.TextureUsageCopyDst),
		})
		encoder.CopyTextureToTexture(s.tex, d.tex, []hal.TextureCopy{{
			SrcBase: hal.ImageCopyTexture{Texture: s.tex},
			DstBase: hal.ImageCopyTexture{Texture: d.tex},
			Size:    hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})
	})
}

// ApplyFilter implements crt.Renderer: it uploads the filter's uniforms and
// draws a fullscreen triangle sampling input into output. When input and
// output are the same texture, input is first copied to a temporary texture,
// so wrapped textures used this way need CopySrc usage.
func (r *Renderer) ApplyFilter(f crt.Filter, input, output crt.Texture, clear bool) error {
	p, err := ProgramOf(f)
	if err != nil {
		return err
	}
	in, err := r.texture(input)
	if err != nil {
		return err
	}
	out, err := r.texture(output)
	if err != nil {
		return err
	}
	if in.tex == out.tex {
		// A texture cannot be sampled while it is the render target.
		tmp, err := r.NewTexture(in.width, in.height)
		if err != nil {
			return err
		}
		defer r.ReleaseTexture(tmp)
		if err := r.CopyTexture(in, tmp); err != nil {
			return err
		}
		in = tmp.(*Texture)
	}
	if err := r.c.UploadUniforms(f); err != nil {
		return err
	}
	sampler, err := r.c.linearSampler()
	if err != nil {
		return err
	}

	bindGroup, err := r.c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  p.label + "_bind",
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: p.uniforms.NativeHandle(), Offset: 0, Size: p.uniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: in.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group %s: %w", p.label, err)
	}
	defer r.c.device.DestroyBindGroup(bindGroup)

	loadOp := gputypes.LoadOpLoad
	if clear {
		loadOp = gputypes.LoadOpClear
	}

	return r.submit(p.label, func(encoder hal.CommandEncoder) {
		encoder.TransitionTextures([]hal.TextureBarrier{
			r.barrier(in, gputypes.TextureUsageTextureBinding),
			r.barrier(out, gputypes.TextureUsageRenderAttachment),
		})
		rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: p.label + "_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:       out.view,
				LoadOp:     loadOp,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			}},
		})
		rp.SetPipeline(p.pipeline)
		rp.SetBindGroup(0, bindGroup, nil)
		rp.Draw(3, 1, 0, 0)
		rp.End()
	})
}

// barrier records a usage transition of t and returns it.
func (r *Renderer) barrier(t *Texture, usage gputypes.TextureUsage) hal.TextureBarrier {
	b := hal.TextureBarrier{
		Texture: t.tex,
		Usage:   hal.TextureUsageTransition{OldUsage: t.usage, NewUsage: usage},
	}
	t.usage = usage
	return b
}

// submit records commands with encode, submits them and waits for the GPU.
func (r *Renderer) submit(label string, encode func(hal.CommandEncoder)) error {
	device := r.c.device
	if device == nil {
		return ErrNotInitialized
	}
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label + "_encoder"})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}

	encode(encoder)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("native: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	if _, err := r.c.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("native: submit %s: %w", label, err)
	}
	if err := device.WaitIdle(); err != nil {
		return fmt.Errorf("native: wait for GPU: %w", err)
	}
	return nil
}
