package crt

import "github.com/gogpu/crt/shader"

// CurvatureOptions configures the curvature stage.
type CurvatureOptions struct {
	// CurvatureX is the horizontal curvature amount (0-1, typically 0.15).
	CurvatureX *float64 `toml:"curvature_x,omitempty" yaml:"curvature_x,omitempty"`

	// CurvatureY is the vertical curvature amount (0-1, typically 0.15).
	CurvatureY *float64 `toml:"curvature_y,omitempty" yaml:"curvature_y,omitempty"`

	// Multisampling enables 4x supersampling for smoother edges at the cost
	// of speed. It also blurs slightly. Compiled into the shader.
	Multisampling *bool `toml:"multisampling,omitempty" yaml:"multisampling,omitempty"`
}

// CurvatureSettings is the effective curvature configuration.
type CurvatureSettings struct {
	CurvatureX    float64
	CurvatureY    float64
	Multisampling bool
}

// DefaultCurvatureSettings returns the curvature defaults.
func DefaultCurvatureSettings() CurvatureSettings {
	return CurvatureSettings{
		CurvatureX:    0.15,
		CurvatureY:    0.15,
		Multisampling: true,
	}
}

// MergeCurvatureOptions returns defaults with every set field of o applied.
func MergeCurvatureOptions(defaults CurvatureSettings, o CurvatureOptions) CurvatureSettings {
	s := defaults
	override(&s.CurvatureX, o.CurvatureX)
	override(&s.CurvatureY, o.CurvatureY)
	override(&s.Multisampling, o.Multisampling)
	return s
}

// Settings merges o over the defaults.
func (o CurvatureOptions) Settings() CurvatureSettings {
	return MergeCurvatureOptions(DefaultCurvatureSettings(), o)
}

// CurvatureUniforms mirrors CurvatureUniforms in curvature.wgsl.
type CurvatureUniforms struct {
	Resolution [2]float32
	CurvatureX float32
	CurvatureY float32
}

// Bytes packs the uniforms for upload.
func (u *CurvatureUniforms) Bytes() []byte {
	var w uniformWriter
	w.vec2(u.Resolution)
	w.f32(u.CurvatureX)
	w.f32(u.CurvatureY)
	return w.bytes()
}

// CurvatureFilter bends the image like the glass of a CRT tube.
type CurvatureFilter struct {
	Uniforms CurvatureUniforms

	settings CurvatureSettings
	program  *Program
}

// NewCurvatureFilter creates a curvature stage. Multisampling is baked into
// the fragment source through the MULTISAMPLE placeholder.
func NewCurvatureFilter(opts CurvatureOptions) (*CurvatureFilter, error) {
	s := opts.Settings()
	f := &CurvatureFilter{
		Uniforms: CurvatureUniforms{
			CurvatureX: float32(s.CurvatureX),
			CurvatureY: float32(s.CurvatureY),
		},
		settings: s,
	}
	fragment := specialize(KindCurvature, shader.CurvatureSource(), shader.Values{
		shader.Multisample: s.Multisampling,
	})
	p, err := newProgram(KindCurvature, fragment, len(f.Uniforms.Bytes()))
	if err != nil {
		return nil, err
	}
	f.program = p
	return f, nil
}

// Kind implements Filter.
func (f *CurvatureFilter) Kind() Kind { return KindCurvature }

// Program implements Filter.
func (f *CurvatureFilter) Program() *Program { return f.program }

// UniformBytes implements Filter.
func (f *CurvatureFilter) UniformBytes() []byte { return f.Uniforms.Bytes() }

// Settings returns the effective options the filter was built with.
func (f *CurvatureFilter) Settings() CurvatureSettings { return f.settings }

// Resize implements Resizer.
func (f *CurvatureFilter) Resize(width, height int) {
	f.Uniforms.Resolution = resolution(width, height)
}

// Apply implements Filter.
func (f *CurvatureFilter) Apply(r Renderer, input, output Texture, clear bool) error {
	return applyFilter(f, f.Resize, r, input, output, clear)
}
