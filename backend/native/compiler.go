// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/crt"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func slogger() *slog.Logger { return crt.Logger() }

// Program is the GPU side of a filter program. It is the handle stored in
// crt.Program by Compiler.CompileProgram.
type Program struct {
	label       string
	kind        crt.Kind
	uniformSize uint64

	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	uniforms   hal.Buffer
}

// Label returns the program label.
func (p *Program) Label() string { return p.label }

// Kind returns the stage the program draws.
func (p *Program) Kind() crt.Kind { return p.kind }

// Pipeline returns the render pipeline.
func (p *Program) Pipeline() hal.RenderPipeline { return p.pipeline }

// BindGroupLayout returns the layout of bind group 0.
func (p *Program) BindGroupLayout() hal.BindGroupLayout { return p.bindLayout }

// UniformBuffer returns the buffer bound at binding 0.
func (p *Program) UniformBuffer() hal.Buffer { return p.uniforms }

// Compiler implements crt.Compiler on a hal device.
type Compiler struct {
	mu       sync.Mutex
	device   hal.Device
	queue    hal.Queue
	format   gputypes.TextureFormat
	sampler  hal.Sampler
	programs []*Program
}

// New creates a compiler that renders into RGBA8 targets.
func New(device hal.Device, queue hal.Queue) *Compiler {
	return &Compiler{
		device: device,
		queue:  queue,
		format: gputypes.TextureFormatRGBA8Unorm,
	}
}

// NewFromProvider creates a compiler on the device of an external provider
// (e.g. a gogpu app). The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue. Programs target the
// provider's surface format.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Compiler, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}

	c := New(device, queue)
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		c.format = f
	}
	slogger().Debug("native: using shared GPU device", "format", c.format)
	return c, nil
}

// Name implements crt.Compiler.
func (c *Compiler) Name() string { return "native" }

// TargetFormat returns the color format render pipelines are created for.
func (c *Compiler) TargetFormat() gputypes.TextureFormat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format
}

// SetTargetFormat changes the color format for programs compiled afterwards.
func (c *Compiler) SetTargetFormat(format gputypes.TextureFormat) {
	c.mu.Lock()
	c.format = format
	c.mu.Unlock()
}

// Programs returns the number of live programs.
func (c *Compiler) Programs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.programs)
}

// CompileProgram implements crt.Compiler. It returns a *Program.
func (c *Compiler) CompileProgram(desc *crt.ProgramDescriptor) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return nil, ErrNotInitialized
	}

	spirv, err := CompileSPIRV(desc.Source)
	if err != nil {
		return nil, err
	}

	p := &Program{label: desc.Label, kind: desc.Kind, uniformSize: desc.UniformSize}
	if err := c.createPipeline(p, desc, spirv); err != nil {
		c.destroyProgram(p)
		return nil, err
	}
	c.programs = append(c.programs, p)

	slogger().Debug("native: program created", "label", p.label, "spirv_words", len(spirv))
	return p, nil
}

// createPipeline creates the GPU objects of p. Must be called with mu held.
func (c *Compiler) createPipeline(p *Program, desc *crt.ProgramDescriptor, spirv []uint32) error {
	var err error
	p.module, err = c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("native: create shader module %s: %w", desc.Label, err)
	}

	p.bindLayout, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: desc.Label + "_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group layout %s: %w", desc.Label, err)
	}

	p.pipeLayout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("native: create pipeline layout %s: %w", desc.Label, err)
	}

	premul := gputypes.BlendStatePremultiplied()
	p.pipeline, err = c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.module,
			EntryPoint: desc.VertexEntryPoint,
		},
		Fragment: &hal.FragmentState{
			Module:     p.module,
			EntryPoint: desc.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{{
				Format:    c.format,
				Blend:     &premul,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("native: create render pipeline %s: %w", desc.Label, err)
	}

	p.uniforms, err = c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label + "_uniforms",
		Size:  desc.UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("native: create uniform buffer %s: %w", desc.Label, err)
	}
	return nil
}

// ProgramOf returns the GPU program of a filter built while c was registered.
func ProgramOf(f crt.Filter) (*Program, error) {
	if f == nil || f.Program() == nil {
		return nil, ErrNoProgram
	}
	p, ok := f.Program().Handle().(*Program)
	if !ok || p == nil {
		return nil, ErrNoProgram
	}
	return p, nil
}

// UploadUniforms writes the current uniform values of f into its program's
// uniform buffer.
func (c *Compiler) UploadUniforms(f crt.Filter) error {
	p, err := ProgramOf(f)
	if err != nil {
		return err
	}
	data := f.UniformBytes()
	if uint64(len(data)) != p.uniformSize {
		return fmt.Errorf("native: %s uniforms are %d bytes, buffer holds %d", p.label, len(data), p.uniformSize)
	}
	if err := c.queue.WriteBuffer(p.uniforms, 0, data); err != nil {
		return fmt.Errorf("native: upload %s uniforms: %w", p.label, err)
	}
	return nil
}

// linearSampler returns the clamp-to-edge linear sampler shared by all
// stages, creating it on first use.
func (c *Compiler) linearSampler() (hal.Sampler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sampler != nil {
		return c.sampler, nil
	}
	if c.device == nil {
		return nil, ErrNotInitialized
	}
	s, err := c.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "crt_linear_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create sampler: %w", err)
	}
	c.sampler = s
	return s, nil
}

// destroyProgram releases the GPU objects of p in reverse creation order.
func (c *Compiler) destroyProgram(p *Program) {
	if p.uniforms != nil {
		c.device.DestroyBuffer(p.uniforms)
		p.uniforms = nil
	}
	if p.pipeline != nil {
		c.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		c.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		c.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		c.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

// Destroy releases every program and the shared sampler. Filters built with
// this compiler must not be rendered afterwards. The device is not destroyed.
func (c *Compiler) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return
	}
	for _, p := range c.programs {
		c.destroyProgram(p)
	}
	c.programs = nil
	if c.sampler != nil {
		c.device.DestroySampler(c.sampler)
		c.sampler = nil
	}
}
