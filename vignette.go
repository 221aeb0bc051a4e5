package crt

import "github.com/gogpu/crt/shader"

// VignetteOptions configures the vignette stage.
type VignetteOptions struct {
	// Intensity of the darkening. Negative values brighten the edges.
	Intensity *float64 `toml:"intensity,omitempty" yaml:"intensity,omitempty"`

	// Radius from the center where the vignette starts.
	Radius *float64 `toml:"radius,omitempty" yaml:"radius,omitempty"`

	// Softness of the vignette edge.
	Softness *float64 `toml:"softness,omitempty" yaml:"softness,omitempty"`
}

// VignetteSettings is the effective vignette configuration.
type VignetteSettings struct {
	Intensity float64
	Radius    float64
	Softness  float64
}

// DefaultVignetteSettings returns the vignette defaults.
func DefaultVignetteSettings() VignetteSettings {
	return VignetteSettings{
		Intensity: 0.4,
		Radius:    0.8,
		Softness:  0.5,
	}
}

// MergeVignetteOptions returns defaults with every set field of o applied.
func MergeVignetteOptions(defaults VignetteSettings, o VignetteOptions) VignetteSettings {
	s := defaults
	override(&s.Intensity, o.Intensity)
	override(&s.Radius, o.Radius)
	override(&s.Softness, o.Softness)
	return s
}

// Settings merges o over the defaults.
func (o VignetteOptions) Settings() VignetteSettings {
	return MergeVignetteOptions(DefaultVignetteSettings(), o)
}

// VignetteUniforms mirrors VignetteUniforms in vignette.wgsl.
type VignetteUniforms struct {
	Intensity float32
	Radius    float32
	Softness  float32
}

// Bytes packs the uniforms for upload.
func (u *VignetteUniforms) Bytes() []byte {
	var w uniformWriter
	w.f32(u.Intensity)
	w.f32(u.Radius)
	w.f32(u.Softness)
	return w.bytes()
}

// VignetteFilter darkens the screen towards its edges. Distances are in
// normalized coordinates, so the filter has no resize hook.
type VignetteFilter struct {
	Uniforms VignetteUniforms

	settings VignetteSettings
	program  *Program
}

// NewVignetteFilter creates a vignette stage.
func NewVignetteFilter(opts VignetteOptions) (*VignetteFilter, error) {
	s := opts.Settings()
	f := &VignetteFilter{
		Uniforms: VignetteUniforms{
			Intensity: float32(s.Intensity),
			Radius:    float32(s.Radius),
			Softness:  float32(s.Softness),
		},
		settings: s,
	}
	p, err := newProgram(KindVignette, shader.VignetteSource(), len(f.Uniforms.Bytes()))
	if err != nil {
		return nil, err
	}
	f.program = p
	return f, nil
}

// Kind implements Filter.
func (f *VignetteFilter) Kind() Kind { return KindVignette }

// Program implements Filter.
func (f *VignetteFilter) Program() *Program { return f.program }

// UniformBytes implements Filter.
func (f *VignetteFilter) UniformBytes() []byte { return f.Uniforms.Bytes() }

// Settings returns the effective options the filter was built with.
func (f *VignetteFilter) Settings() VignetteSettings { return f.settings }

// Apply implements Filter.
func (f *VignetteFilter) Apply(r Renderer, input, output Texture, clear bool) error {
	return applyFilter(f, nil, r, input, output, clear)
}
