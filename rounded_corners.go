package crt

import "github.com/gogpu/crt/shader"

// RoundedCornersOptions configures the rounded-corners stage. Nil fields use
// the defaults from DefaultRoundedCornersSettings.
type RoundedCornersOptions struct {
	// CornerRadius is the corner radius as a fraction of the screen size.
	CornerRadius *float64 `toml:"corner_radius,omitempty" yaml:"corner_radius,omitempty"`
}

// RoundedCornersSettings is the effective rounded-corners configuration.
type RoundedCornersSettings struct {
	CornerRadius float64
}

// DefaultRoundedCornersSettings returns the rounded-corners defaults.
func DefaultRoundedCornersSettings() RoundedCornersSettings {
	return RoundedCornersSettings{CornerRadius: 0.025}
}

// MergeRoundedCornersOptions returns defaults with every set field of o applied.
func MergeRoundedCornersOptions(defaults RoundedCornersSettings, o RoundedCornersOptions) RoundedCornersSettings {
	s := defaults
	override(&s.CornerRadius, o.CornerRadius)
	return s
}

// Settings merges o over the defaults.
func (o RoundedCornersOptions) Settings() RoundedCornersSettings {
	return MergeRoundedCornersOptions(DefaultRoundedCornersSettings(), o)
}

// RoundedCornersUniforms mirrors RoundedCornersUniforms in rounded_corners.wgsl.
type RoundedCornersUniforms struct {
	CornerRadius float32
}

// Bytes packs the uniforms for upload.
func (u *RoundedCornersUniforms) Bytes() []byte {
	var w uniformWriter
	w.f32(u.CornerRadius)
	return w.bytes()
}

// RoundedCornersFilter clips the image to a rounded rectangle. It does not
// depend on the input size.
type RoundedCornersFilter struct {
	// Uniforms are the live shader parameters.
	Uniforms RoundedCornersUniforms

	settings RoundedCornersSettings
	program  *Program
}

// NewRoundedCornersFilter creates a rounded-corners stage.
func NewRoundedCornersFilter(opts RoundedCornersOptions) (*RoundedCornersFilter, error) {
	s := opts.Settings()
	f := &RoundedCornersFilter{
		Uniforms: RoundedCornersUniforms{CornerRadius: float32(s.CornerRadius)},
		settings: s,
	}
	p, err := newProgram(KindRoundedCorners, shader.RoundedCornersSource(), len(f.Uniforms.Bytes()))
	if err != nil {
		return nil, err
	}
	f.program = p
	return f, nil
}

// Kind implements Filter.
func (f *RoundedCornersFilter) Kind() Kind { return KindRoundedCorners }

// Program implements Filter.
func (f *RoundedCornersFilter) Program() *Program { return f.program }

// UniformBytes implements Filter.
func (f *RoundedCornersFilter) UniformBytes() []byte { return f.Uniforms.Bytes() }

// Settings returns the effective options the filter was built with.
func (f *RoundedCornersFilter) Settings() RoundedCornersSettings { return f.settings }

// Apply implements Filter.
func (f *RoundedCornersFilter) Apply(r Renderer, input, output Texture, clear bool) error {
	return applyFilter(f, nil, r, input, output, clear)
}
