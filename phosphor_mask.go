package crt

import "github.com/gogpu/crt/shader"

// PhosphorMaskOptions configures the phosphor-mask stage.
type PhosphorMaskOptions struct {
	// PixelWidth is the width of one RGB phosphor triad in pixels.
	PixelWidth *float64 `toml:"pixel_width,omitempty" yaml:"pixel_width,omitempty"`

	// MaskBrightness is the brightness of unlit phosphors (0-1).
	MaskBrightness *float64 `toml:"mask_brightness,omitempty" yaml:"mask_brightness,omitempty"`

	// NumSamples is the number of horizontal samples used for antialiasing
	// (1 = off, 2-8 recommended). It is compiled into the shader, so changing
	// it requires a new filter.
	NumSamples *int `toml:"num_samples,omitempty" yaml:"num_samples,omitempty"`

	// TransitionWidth is how smooth the transition between the R, G and B
	// phosphors is: 0 is a hard edge, 1 very smooth. A hard edge is more
	// authentic but shows moire with a small PixelWidth and few samples.
	TransitionWidth *float64 `toml:"transition_width,omitempty" yaml:"transition_width,omitempty"`
}

// PhosphorMaskSettings is the effective phosphor-mask configuration.
type PhosphorMaskSettings struct {
	PixelWidth      float64
	MaskBrightness  float64
	NumSamples      int
	TransitionWidth float64
}

// DefaultPhosphorMaskSettings returns the phosphor-mask defaults.
func DefaultPhosphorMaskSettings() PhosphorMaskSettings {
	return PhosphorMaskSettings{
		PixelWidth:      4,
		MaskBrightness:  0.7,
		NumSamples:      4,
		TransitionWidth: 0.3,
	}
}

// MergePhosphorMaskOptions returns defaults with every set field of o applied.
func MergePhosphorMaskOptions(defaults PhosphorMaskSettings, o PhosphorMaskOptions) PhosphorMaskSettings {
	s := defaults
	override(&s.PixelWidth, o.PixelWidth)
	override(&s.MaskBrightness, o.MaskBrightness)
	override(&s.NumSamples, o.NumSamples)
	override(&s.TransitionWidth, o.TransitionWidth)
	return s
}

// Settings merges o over the defaults.
func (o PhosphorMaskOptions) Settings() PhosphorMaskSettings {
	return MergePhosphorMaskOptions(DefaultPhosphorMaskSettings(), o)
}

// PhosphorMaskUniforms mirrors PhosphorMaskUniforms in phosphor_mask.wgsl.
// The sample count is not a uniform; it is substituted into the source.
type PhosphorMaskUniforms struct {
	Resolution      [2]float32
	PixelWidth      float32
	MaskBrightness  float32
	TransitionWidth float32
}

// Bytes packs the uniforms for upload.
func (u *PhosphorMaskUniforms) Bytes() []byte {
	var w uniformWriter
	w.vec2(u.Resolution)
	w.f32(u.PixelWidth)
	w.f32(u.MaskBrightness)
	w.f32(u.TransitionWidth)
	return w.bytes()
}

// PhosphorMaskFilter overlays an aperture-grille phosphor pattern.
type PhosphorMaskFilter struct {
	// Uniforms are the live shader parameters.
	Uniforms PhosphorMaskUniforms

	settings PhosphorMaskSettings
	program  *Program
}

// NewPhosphorMaskFilter creates a phosphor-mask stage. NumSamples is baked
// into the fragment source through the NUM_SAMPLES placeholder.
func NewPhosphorMaskFilter(opts PhosphorMaskOptions) (*PhosphorMaskFilter, error) {
	s := opts.Settings()
	f := &PhosphorMaskFilter{
		Uniforms: PhosphorMaskUniforms{
			PixelWidth:      float32(s.PixelWidth),
			MaskBrightness:  float32(s.MaskBrightness),
			TransitionWidth: float32(s.TransitionWidth),
		},
		settings: s,
	}
	fragment := specialize(KindPhosphorMask, shader.PhosphorMaskSource(), shader.Values{
		shader.NumSamples: s.NumSamples,
	})
	p, err := newProgram(KindPhosphorMask, fragment, len(f.Uniforms.Bytes()))
	if err != nil {
		return nil, err
	}
	f.program = p
	return f, nil
}

// Kind implements Filter.
func (f *PhosphorMaskFilter) Kind() Kind { return KindPhosphorMask }

// Program implements Filter.
func (f *PhosphorMaskFilter) Program() *Program { return f.program }

// UniformBytes implements Filter.
func (f *PhosphorMaskFilter) UniformBytes() []byte { return f.Uniforms.Bytes() }

// Settings returns the effective options, including the compiled sample count.
func (f *PhosphorMaskFilter) Settings() PhosphorMaskSettings { return f.settings }

// Resize implements Resizer.
func (f *PhosphorMaskFilter) Resize(width, height int) {
	f.Uniforms.Resolution = resolution(width, height)
}

// Apply implements Filter.
func (f *PhosphorMaskFilter) Apply(r Renderer, input, output Texture, clear bool) error {
	return applyFilter(f, f.Resize, r, input, output, clear)
}
