package crt

import "github.com/gogpu/crt/shader"

// ColorAdjustmentOptions configures the color-adjustment stage.
type ColorAdjustmentOptions struct {
	// Gamma correction (0.5-2.0, 1.0 = no correction).
	Gamma *float64 `toml:"gamma,omitempty" yaml:"gamma,omitempty"`

	// Saturation (0-2, 0 = grayscale, 1 = normal).
	Saturation *float64 `toml:"saturation,omitempty" yaml:"saturation,omitempty"`

	// Brightness (0-2, 1 = normal).
	Brightness *float64 `toml:"brightness,omitempty" yaml:"brightness,omitempty"`
}

// ColorAdjustmentSettings is the effective color-adjustment configuration.
type ColorAdjustmentSettings struct {
	Gamma      float64
	Saturation float64
	Brightness float64
}

// DefaultColorAdjustmentSettings returns the color-adjustment defaults, which
// leave colors unchanged.
func DefaultColorAdjustmentSettings() ColorAdjustmentSettings {
	return ColorAdjustmentSettings{
		Gamma:      1.0,
		Saturation: 1.0,
		Brightness: 1.0,
	}
}

// MergeColorAdjustmentOptions returns defaults with every set field of o applied.
func MergeColorAdjustmentOptions(defaults ColorAdjustmentSettings, o ColorAdjustmentOptions) ColorAdjustmentSettings {
	s := defaults
	override(&s.Gamma, o.Gamma)
	override(&s.Saturation, o.Saturation)
	override(&s.Brightness, o.Brightness)
	return s
}

// Settings merges o over the defaults.
func (o ColorAdjustmentOptions) Settings() ColorAdjustmentSettings {
	return MergeColorAdjustmentOptions(DefaultColorAdjustmentSettings(), o)
}

// ColorAdjustmentUniforms mirrors ColorAdjustmentUniforms in color_adjustment.wgsl.
type ColorAdjustmentUniforms struct {
	Gamma      float32
	Saturation float32
	Brightness float32
}

// Bytes packs the uniforms for upload.
func (u *ColorAdjustmentUniforms) Bytes() []byte {
	var w uniformWriter
	w.f32(u.Gamma)
	w.f32(u.Saturation)
	w.f32(u.Brightness)
	return w.bytes()
}

// ColorAdjustmentFilter applies the final color grade.
type ColorAdjustmentFilter struct {
	// Uniforms are the live shader parameters.
	Uniforms ColorAdjustmentUniforms

	settings ColorAdjustmentSettings
	program  *Program
}

// NewColorAdjustmentFilter creates a color-adjustment stage.
func NewColorAdjustmentFilter(opts ColorAdjustmentOptions) (*ColorAdjustmentFilter, error) {
	s := opts.Settings()
	f := &ColorAdjustmentFilter{
		Uniforms: ColorAdjustmentUniforms{
			Gamma:      float32(s.Gamma),
			Saturation: float32(s.Saturation),
			Brightness: float32(s.Brightness),
		},
		settings: s,
	}
	p, err := newProgram(KindColorAdjustment, shader.ColorAdjustmentSource(), len(f.Uniforms.Bytes()))
	if err != nil {
		return nil, err
	}
	f.program = p
	return f, nil
}

// Kind implements Filter.
func (f *ColorAdjustmentFilter) Kind() Kind { return KindColorAdjustment }

// Program implements Filter.
func (f *ColorAdjustmentFilter) Program() *Program { return f.program }

// UniformBytes implements Filter.
func (f *ColorAdjustmentFilter) UniformBytes() []byte { return f.Uniforms.Bytes() }

// Settings returns the effective options the filter was built with.
func (f *ColorAdjustmentFilter) Settings() ColorAdjustmentSettings { return f.settings }

// Apply implements Filter.
func (f *ColorAdjustmentFilter) Apply(r Renderer, input, output Texture, clear bool) error {
	return applyFilter(f, nil, r, input, output, clear)
}
